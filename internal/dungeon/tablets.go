package dungeon

import "github.com/przecze/rooms-of-roaming/internal/rng"

// tabletMargin keeps a tablet at least one cell inside a room's border, so
// it never sits on the room's outer floor ring — a cheap way to keep it
// visually "inside" a room rather than at its threshold.
const tabletMargin = 1

// placeTablets stamps up to cfg.TabletsMax TABLET cells, one candidate per
// room with probability p_t weighted by alpha (§4.3 step 8). Rooms are
// visited in the deterministic order connectRoomsWithHallways already
// produced, not map iteration order (I7).
func placeTablets(c *Chunk, stream *rng.Stream, cfg Config, w Wavelengths, rooms []room) {
	if cfg.TabletsMax <= 0 {
		return
	}
	prob := cfg.TabletProb * (0.5 + 0.5*w.Alpha)
	if prob > 1 {
		prob = 1
	}

	placed := 0
	for _, r := range rooms {
		if placed >= cfg.TabletsMax {
			return
		}
		if stream.Float64() >= prob {
			continue
		}
		x, y, ok := interiorFloorCell(r, stream)
		if !ok {
			continue
		}
		c.set(x, y, Tablet)
		c.Tablets = append(c.Tablets, TabletCoord{LocalX: x, LocalY: y})
		placed++
	}
}

// interiorFloorCell picks a cell strictly inside a room's border. Falls
// back to the room's center for rooms too small to have an interior ring
// (I6 only requires the cell be strictly interior to the *chunk* frame,
// which every room cell already is).
func interiorFloorCell(r room, stream *rng.Stream) (x, y int, ok bool) {
	if r.w > 2*tabletMargin+1 && r.h > 2*tabletMargin+1 {
		x = r.x + tabletMargin + stream.Intn(r.w-2*tabletMargin)
		y = r.y + tabletMargin + stream.Intn(r.h-2*tabletMargin)
		return x, y, true
	}
	cx, cy := r.center()
	return cx, cy, true
}
