package dungeon

import "time"

// TabletCoord is the local position of a tablet marker within its chunk.
type TabletCoord struct {
	LocalX, LocalY int
}

// DebugTimings records the wall-clock cost of each named phase of the
// generation pipeline (§3, §4.3). Generate records them on every build; a
// cache hit returns the timings recorded on the chunk's first build (§4.4
// "Debug passthrough").
type DebugTimings struct {
	Setup               time.Duration
	Init                time.Duration
	BoundaryCorridors   time.Duration
	RoomGeneration      time.Duration
	RoomFloors          time.Duration
	RoomHallways        time.Duration
	BoundaryConnections time.Duration
	Total               time.Duration
}

// Wavelengths are the smooth scalar style-biasing fields sampled in §4.3
// step 1, reported in debug output as the "wavelengths" shown to clients.
type Wavelengths struct {
	Alpha            float64
	Beta             float64
	SpatialVariation float64
}

// Chunk is an immutable S×S grid fragment of the infinite world, addressed
// by its integer coordinate. Once built it is never mutated (§3 Lifecycle).
type Chunk struct {
	CX, CY int

	size int
	grid []Cell // row-major, size*size

	Tablets []TabletCoord

	Wavelengths  Wavelengths
	Timings      DebugTimings
	GenerationMS int64
}

func newChunk(cx, cy, size int) *Chunk {
	return &Chunk{
		CX:   cx,
		CY:   cy,
		size: size,
		grid: make([]Cell, size*size),
	}
}

// Size returns S, the side length of the chunk's grid.
func (c *Chunk) Size() int { return c.size }

func (c *Chunk) index(x, y int) int { return y*c.size + x }

// At returns the cell at local coordinate (x,y). Panics if out of bounds.
func (c *Chunk) At(x, y int) Cell {
	if !c.inBounds(x, y) {
		panic("dungeon: Chunk.At coordinate out of bounds")
	}
	return c.grid[c.index(x, y)]
}

func (c *Chunk) set(x, y int, v Cell) {
	c.grid[c.index(x, y)] = v
}

func (c *Chunk) inBounds(x, y int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size
}

// Row returns the cells of row y, left to right, as a freshly allocated
// slice safe for the caller to retain or mutate.
func (c *Chunk) Row(y int) []Cell {
	row := make([]Cell, c.size)
	copy(row, c.grid[y*c.size:(y+1)*c.size])
	return row
}

// Column returns the cells of column x, top to bottom.
func (c *Chunk) Column(x int) []Cell {
	col := make([]Cell, c.size)
	for y := 0; y < c.size; y++ {
		col[y] = c.At(x, y)
	}
	return col
}

// RowString renders row y as a glyph string, the wire form used by §6.1.
func (c *Chunk) RowString(y int) string {
	runes := make([]rune, c.size)
	for x := 0; x < c.size; x++ {
		runes[x] = c.At(x, y).Glyph()
	}
	return string(runes)
}

// Rows renders the whole grid as S strings of length S, top row first,
// exactly the §6.1 non-debug Response payload.
func (c *Chunk) Rows() []string {
	rows := make([]string, c.size)
	for y := 0; y < c.size; y++ {
		rows[y] = c.RowString(y)
	}
	return rows
}
