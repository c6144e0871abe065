package dungeon

import (
	"sort"

	"github.com/przecze/rooms-of-roaming/internal/rng"
)

// interiorMargin is the frame width (§4.3 step 4: "interior region
// [2, S-3]²") that no room may cross.
const interiorMargin = 2

// stubBuffer is the padding kept between a candidate room and any boundary
// stub, so rooms never swallow the fixed anchor points.
const stubBuffer = 1

type room struct {
	x, y, w, h int
}

func (r room) center() (int, int) {
	return r.x + r.w/2, r.y + r.h/2
}

func (r room) intersects(other room, padding int) bool {
	return !(r.x+r.w+padding <= other.x ||
		other.x+other.w+padding <= r.x ||
		r.y+r.h+padding <= other.y ||
		other.y+other.h+padding <= r.y)
}

func (r room) overlapsStub(s stub) bool {
	return s.tipX >= r.x-stubBuffer && s.tipX <= r.x+r.w-1+stubBuffer &&
		s.tipY >= r.y-stubBuffer && s.tipY <= r.y+r.h-1+stubBuffer
}

// roomCount picks n ∈ [RoomsMin, RoomsMax], biased by alpha and
// spatial_variation per §4.3 step 4, with a little extra RNG jitter so
// neighboring chunks with similar wavelengths don't all pick the exact
// same count.
func roomCount(stream *rng.Stream, cfg Config, w Wavelengths) int {
	if cfg.RoomsMax <= cfg.RoomsMin {
		return cfg.RoomsMin
	}
	spread := float64(cfg.RoomsMax - cfg.RoomsMin)
	bias := 0.5*w.Alpha + 0.5*w.SpatialVariation
	n := cfg.RoomsMin + int(bias*spread+0.5)
	n += stream.RandInt(-1, 1)
	if n < cfg.RoomsMin {
		n = cfg.RoomsMin
	}
	if n > cfg.RoomsMax {
		n = cfg.RoomsMax
	}
	return n
}

// generateRooms attempts up to cfg.PlacementAttempts axis-aligned rectangle
// placements, accepting those that fit the interior region, keep a WALL
// gap from previously accepted rooms, and don't swallow a boundary stub
// (§4.3 step 4). If none land, a fallback central room is added so I5
// still holds even under a degenerate spatial_variation.
func generateRooms(c *Chunk, stream *rng.Stream, cfg Config, w Wavelengths, stubs []stub) []room {
	target := roomCount(stream, cfg, w)
	var rooms []room

	maxAttempts := cfg.PlacementAttempts
	for attempts := 0; attempts < maxAttempts && len(rooms) < target; attempts++ {
		rw := stream.RandInt(cfg.RoomWidthMin, cfg.RoomWidthMax)
		rh := stream.RandInt(cfg.RoomHeightMin, cfg.RoomHeightMax)

		maxX := c.size - interiorMargin - 1 - rw
		maxY := c.size - interiorMargin - 1 - rh
		if maxX < interiorMargin || maxY < interiorMargin {
			continue
		}
		rx := stream.RandInt(interiorMargin, maxX)
		ry := stream.RandInt(interiorMargin, maxY)
		cand := room{x: rx, y: ry, w: rw, h: rh}

		if roomBlocksAnyStub(cand, stubs) {
			continue
		}
		if roomOverlapsAny(cand, rooms) {
			continue
		}
		rooms = append(rooms, cand)
	}

	if len(rooms) == 0 {
		rooms = append(rooms, fallbackCentralRoom(c))
	}
	return rooms
}

func roomBlocksAnyStub(cand room, stubs []stub) bool {
	for _, s := range stubs {
		if cand.overlapsStub(s) {
			return true
		}
	}
	return false
}

func roomOverlapsAny(cand room, rooms []room) bool {
	for _, r := range rooms {
		if cand.intersects(r, 1) {
			return true
		}
	}
	return false
}

// fallbackCentralRoom returns a room large enough, centered in the chunk,
// that boundary_connections can always reach every stub tip from it
// (§4.3 "Edge cases & policies").
func fallbackCentralRoom(c *Chunk) room {
	size := c.size - 2*interiorMargin - 1
	if size < 3 {
		size = 3
	}
	x := (c.size - size) / 2
	y := (c.size - size) / 2
	if x < interiorMargin {
		x = interiorMargin
	}
	if y < interiorMargin {
		y = interiorMargin
	}
	return room{x: x, y: y, w: size, h: size}
}

// carveRoomFloors carves every accepted room rectangle to FLOOR (§4.3 step 5).
func carveRoomFloors(c *Chunk, rooms []room) {
	for _, r := range rooms {
		for y := r.y; y < r.y+r.h; y++ {
			for x := r.x; x < r.x+r.w; x++ {
				if c.inBounds(x, y) {
					c.set(x, y, Floor)
				}
			}
		}
	}
}

// connectRoomsWithHallways builds the internal connectivity graph: rooms
// ordered by center coordinate, each consecutive pair joined by an
// L-shaped corridor, plus a handful of extra random edges for cycles
// (§4.3 step 6). Returns the rooms in the order they were connected, since
// later phases only care about the set, not the original placement order.
func connectRoomsWithHallways(c *Chunk, stream *rng.Stream, cfg Config, w Wavelengths, rooms []room) []room {
	ordered := make([]room, len(rooms))
	copy(ordered, rooms)
	sort.Slice(ordered, func(i, j int) bool {
		xi, yi := ordered[i].center()
		xj, yj := ordered[j].center()
		if xi != xj {
			return xi < xj
		}
		return yi < yj
	})

	for i := 0; i+1 < len(ordered); i++ {
		carveHallway(c, stream, ordered[i], ordered[i+1])
	}

	extra := int(w.Beta*float64(len(ordered)) + 0.5)
	for k := 0; k < extra && len(ordered) >= 3; k++ {
		i := stream.Intn(len(ordered))
		j := stream.Intn(len(ordered))
		if i == j {
			continue
		}
		carveHallway(c, stream, ordered[i], ordered[j])
	}

	return ordered
}

// carveHallway carves an L-shaped corridor between two rooms' centers, one
// horizontal and one vertical segment in an RNG-chosen order.
func carveHallway(c *Chunk, stream *rng.Stream, a, b room) {
	x1, y1 := a.center()
	x2, y2 := b.center()
	carveLPath(c, stream, x1, y1, x2, y2)
}

func carveLPath(c *Chunk, stream *rng.Stream, x1, y1, x2, y2 int) {
	if stream.Bool() {
		carveHorizontal(c, x1, x2, y1)
		carveVertical(c, y1, y2, x2)
	} else {
		carveVertical(c, y1, y2, x1)
		carveHorizontal(c, x1, x2, y2)
	}
}

func carveHorizontal(c *Chunk, x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if c.inBounds(x, y) {
			c.set(x, y, Floor)
		}
	}
}

func carveVertical(c *Chunk, y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if c.inBounds(x, y) {
			c.set(x, y, Floor)
		}
	}
}
