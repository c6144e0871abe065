package dungeon

import (
	"time"

	"github.com/przecze/rooms-of-roaming/internal/rng"
)

// stubLengthMax is K in §4.3 step 3: boundary stubs extend inward by a
// deterministic length drawn from [2, K].
const stubLengthMax = 6

// stub is a fixed anchor point carved inward from one boundary opening; all
// later carving connects to these.
type stub struct {
	side Side
	tipX, tipY int
}

// Generator produces chunks for a fixed Config. It holds no per-chunk
// state: Generate is a pure pipeline, safe to call concurrently from many
// goroutines on distinct coordinates (§5).
type Generator struct {
	cfg Config
}

// NewGenerator constructs a Generator. cfg must already have passed
// Validate.
func NewGenerator(cfg Config) *Generator {
	return &Generator{cfg: cfg}
}

// Config returns the generator's configuration.
func (g *Generator) Config() Config { return g.cfg }

// Generate runs the full §4.3 pipeline for chunk (cx,cy) against its four
// boundary profiles, and returns the assembled, self-checked Chunk.
func (g *Generator) Generate(cx, cy int) (*Chunk, error) {
	start := time.Now()
	cfg := g.cfg

	profiles := [4]Profile{
		North: EdgeProfile(cfg, North, cx, cy),
		East:  EdgeProfile(cfg, East, cx, cy),
		South: EdgeProfile(cfg, South, cx, cy),
		West:  EdgeProfile(cfg, West, cx, cy),
	}

	var timings DebugTimings

	t0 := time.Now()
	stream := rng.New(cfg.WorldSeed, "chunk", int64(cx), int64(cy))
	wavelengths := computeWavelengths(cx, cy)
	chunk := newChunk(cx, cy, cfg.ChunkSize)
	timings.Setup = time.Since(t0)

	t0 = time.Now()
	stubs := initBoundaries(chunk, profiles)
	timings.Init = time.Since(t0)

	t0 = time.Now()
	carveBoundaryStubs(chunk, stream, stubs)
	timings.BoundaryCorridors = time.Since(t0)

	t0 = time.Now()
	rooms := generateRooms(chunk, stream, cfg, wavelengths, stubs)
	timings.RoomGeneration = time.Since(t0)

	t0 = time.Now()
	carveRoomFloors(chunk, rooms)
	timings.RoomFloors = time.Since(t0)

	t0 = time.Now()
	rooms = connectRoomsWithHallways(chunk, stream, cfg, wavelengths, rooms)
	timings.RoomHallways = time.Since(t0)

	t0 = time.Now()
	connectStubsToRooms(chunk, stubs, rooms)
	timings.BoundaryConnections = time.Since(t0)

	placeTablets(chunk, stream, cfg, wavelengths, rooms)

	timings.Total = time.Since(start)
	chunk.Wavelengths = wavelengths
	chunk.Timings = timings
	chunk.GenerationMS = timings.Total.Milliseconds()

	if err := selfCheck(chunk, profiles); err != nil {
		return nil, err
	}
	return chunk, nil
}

// initBoundaries stamps FLOOR at every boundary opening on the grid, which
// newChunk already allocates as all WALL (§4.3 step 2, I4). It returns the stub anchor points,
// one per opening, with direction but not yet carved length.
func initBoundaries(c *Chunk, profiles [4]Profile) []stub {
	var stubs []stub
	for _, side := range []Side{North, East, South, West} {
		p := profiles[side]
		for _, pos := range p.Openings {
			x, y := boundaryCell(c.size, side, pos)
			c.set(x, y, Floor)
			stubs = append(stubs, stub{side: side, tipX: x, tipY: y})
		}
	}
	return stubs
}

// boundaryCell maps a side + position-along-the-edge to a local (x,y).
func boundaryCell(size int, side Side, pos int) (x, y int) {
	switch side {
	case North:
		return pos, 0
	case South:
		return pos, size - 1
	case West:
		return 0, pos
	case East:
		return size - 1, pos
	default:
		panic("dungeon: unknown side")
	}
}

// inwardStep returns the unit vector pointing from the boundary into the
// chunk's interior for the given side.
func inwardStep(side Side) (dx, dy int) {
	switch side {
	case North:
		return 0, 1
	case South:
		return 0, -1
	case West:
		return 1, 0
	case East:
		return -1, 0
	default:
		panic("dungeon: unknown side")
	}
}

// carveBoundaryStubs carves a one-cell-wide FLOOR stub inward from every
// opening, advancing each stub's tip in place (§4.3 step 3).
func carveBoundaryStubs(c *Chunk, stream *rng.Stream, stubs []stub) {
	dxy := make([][2]int, len(stubs))
	for i, s := range stubs {
		dx, dy := inwardStep(s.side)
		dxy[i] = [2]int{dx, dy}
	}
	for i := range stubs {
		length := stream.RandInt(2, stubLengthMax)
		dx, dy := dxy[i][0], dxy[i][1]
		x, y := stubs[i].tipX, stubs[i].tipY
		for step := 0; step < length; step++ {
			nx, ny := x+dx, y+dy
			if !c.inBounds(nx, ny) {
				break
			}
			c.set(nx, ny, Floor)
			x, y = nx, ny
		}
		stubs[i].tipX, stubs[i].tipY = x, y
	}
}
