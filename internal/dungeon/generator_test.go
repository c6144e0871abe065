package dungeon

import "testing"

func generate(t *testing.T, cfg Config, cx, cy int) *Chunk {
	t.Helper()
	c, err := NewGenerator(cfg).Generate(cx, cy)
	if err != nil {
		t.Fatalf("Generate(%d,%d): %v", cx, cy, err)
	}
	return c
}

// P1 Determinism.
func TestGenerateIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	for _, coord := range [][2]int{{0, 0}, {7, 7}, {-3, 5}, {50, -50}} {
		a := generate(t, cfg, coord[0], coord[1])
		b := generate(t, cfg, coord[0], coord[1])
		if a.Rows()[0] != b.Rows()[0] {
			t.Fatalf("non-deterministic at %v: rows differ", coord)
		}
		for y := 0; y < cfg.ChunkSize; y++ {
			if a.RowString(y) != b.RowString(y) {
				t.Fatalf("non-deterministic at %v, row %d", coord, y)
			}
		}
		if len(a.Tablets) != len(b.Tablets) {
			t.Fatalf("non-deterministic tablet count at %v", coord)
		}
	}
}

// P2 Edge agreement.
func TestEdgeAgreementBetweenNeighbors(t *testing.T) {
	cfg := DefaultConfig()
	for _, pair := range [][2][2]int{
		{{0, 0}, {1, 0}}, // east/west
		{{0, 0}, {0, 1}}, // south/north
		{{-3, 5}, {-2, 5}},
		{{2, -1}, {2, 0}},
	} {
		a := generate(t, cfg, pair[0][0], pair[0][1])
		b := generate(t, cfg, pair[1][0], pair[1][1])

		if pair[1][0] == pair[0][0]+1 && pair[1][1] == pair[0][1] {
			// a's east column must equal b's west column.
			ea, eb := a.Column(cfg.ChunkSize-1), b.Column(0)
			for y := range ea {
				if ea[y] != eb[y] {
					t.Fatalf("east/west mismatch between %v and %v at row %d", pair[0], pair[1], y)
				}
			}
		}
		if pair[1][1] == pair[0][1]+1 && pair[1][0] == pair[0][0] {
			// a's south row must equal b's north row.
			sa, sb := a.Row(cfg.ChunkSize-1), b.Row(0)
			for x := range sa {
				if sa[x] != sb[x] {
					t.Fatalf("south/north mismatch between %v and %v at col %d", pair[0], pair[1], x)
				}
			}
		}
	}
}

// P3 Frame integrity.
func TestFrameIntegrity(t *testing.T) {
	cfg := DefaultConfig()
	for cx := -5; cx <= 5; cx++ {
		for cy := -5; cy <= 5; cy++ {
			c := generate(t, cfg, cx, cy)
			size := c.Size()
			for x := 0; x < size; x++ {
				if c.At(x, 0) == Tablet || c.At(x, size-1) == Tablet {
					t.Fatalf("tablet on north/south edge at chunk (%d,%d)", cx, cy)
				}
			}
			for y := 0; y < size; y++ {
				if c.At(0, y) == Tablet || c.At(size-1, y) == Tablet {
					t.Fatalf("tablet on west/east edge at chunk (%d,%d)", cx, cy)
				}
			}
		}
	}
}

// P4 Connectivity, including the rooms_max=0 and openings_min=openings_max=1
// scenarios from §8.
func TestConnectivityAcrossConfigurations(t *testing.T) {
	configs := []Config{
		DefaultConfig(),
		withRoomsMax0(DefaultConfig()),
		withSingleOpeningPerEdge(DefaultConfig()),
	}
	for i, cfg := range configs {
		for cx := -2; cx <= 2; cx++ {
			for cy := -2; cy <= 2; cy++ {
				if _, err := NewGenerator(cfg).Generate(cx, cy); err != nil {
					t.Fatalf("config %d, chunk (%d,%d): %v", i, cx, cy, err)
				}
			}
		}
	}
}

func withRoomsMax0(cfg Config) Config {
	cfg.RoomsMin = 0
	cfg.RoomsMax = 0
	return cfg
}

func withSingleOpeningPerEdge(cfg Config) Config {
	cfg.OpeningsMin = 1
	cfg.OpeningsMax = 1
	return cfg
}

func TestSingleOpeningPerEdgeHasExactlyOneOpening(t *testing.T) {
	cfg := withSingleOpeningPerEdge(DefaultConfig())
	for _, side := range []Side{North, East, South, West} {
		p := EdgeProfile(cfg, side, 4, -4)
		if p.Count != 1 {
			t.Fatalf("side %v: expected exactly 1 opening, got %d", side, p.Count)
		}
	}
}

// P5 Tablet discipline.
func TestTabletDiscipline(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TabletProb = 1.0
	cfg.TabletsMax = cfg.RoomsMax
	for cx := -3; cx <= 3; cx++ {
		for cy := -3; cy <= 3; cy++ {
			c := generate(t, cfg, cx, cy)
			for _, tb := range c.Tablets {
				if tb.LocalX < 1 || tb.LocalX > c.Size()-2 || tb.LocalY < 1 || tb.LocalY > c.Size()-2 {
					t.Fatalf("tablet (%d,%d) at chunk (%d,%d) outside [1,S-2]^2", tb.LocalX, tb.LocalY, cx, cy)
				}
				if c.At(tb.LocalX, tb.LocalY) != Tablet {
					t.Fatalf("tablet coordinate (%d,%d) at chunk (%d,%d) is not marked TABLET", tb.LocalX, tb.LocalY, cx, cy)
				}
			}
			if len(c.Tablets) > cfg.TabletsMax {
				t.Fatalf("chunk (%d,%d) has %d tablets, exceeds tablets_max=%d", cx, cy, len(c.Tablets), cfg.TabletsMax)
			}
		}
	}
}

// Composed 2x2 grid seam check (§8 scenario 3).
func TestComposed2x2GridHasNoSeams(t *testing.T) {
	cfg := DefaultConfig()
	chunks := map[[2]int]*Chunk{}
	for cx := 0; cx <= 1; cx++ {
		for cy := 0; cy <= 1; cy++ {
			chunks[[2]int{cx, cy}] = generate(t, cfg, cx, cy)
		}
	}

	checkHorizontalSeam := func(left, right *Chunk) {
		lc := left.Column(cfg.ChunkSize - 1)
		rc := right.Column(0)
		for y := range lc {
			if (lc[y] == Wall) != (rc[y] == Wall) {
				t.Fatalf("seam discontinuity between chunks at row %d", y)
			}
		}
	}
	checkVerticalSeam := func(top, bottom *Chunk) {
		tr := top.Row(cfg.ChunkSize - 1)
		br := bottom.Row(0)
		for x := range tr {
			if (tr[x] == Wall) != (br[x] == Wall) {
				t.Fatalf("seam discontinuity between chunks at col %d", x)
			}
		}
	}

	checkHorizontalSeam(chunks[[2]int{0, 0}], chunks[[2]int{1, 0}])
	checkHorizontalSeam(chunks[[2]int{0, 1}], chunks[[2]int{1, 1}])
	checkVerticalSeam(chunks[[2]int{0, 0}], chunks[[2]int{0, 1}])
	checkVerticalSeam(chunks[[2]int{1, 0}], chunks[[2]int{1, 1}])
}

// §8 scenario 4: wire round-trip.
func TestWireRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	c := generate(t, cfg, -3, 5)
	rows := c.Rows()
	if len(rows) != cfg.ChunkSize {
		t.Fatalf("expected %d rows, got %d", cfg.ChunkSize, len(rows))
	}
	for y, row := range rows {
		runes := []rune(row)
		if len(runes) != cfg.ChunkSize {
			t.Fatalf("row %d has width %d, want %d", y, len(runes), cfg.ChunkSize)
		}
		for x, r := range runes {
			var want Cell
			switch r {
			case Wall.Glyph():
				want = Wall
			case Floor.Glyph():
				want = Floor
			case Tablet.Glyph():
				want = Tablet
			default:
				t.Fatalf("unexpected glyph %q at (%d,%d)", r, x, y)
			}
			if got := c.At(x, y); got != want {
				t.Fatalf("round-trip mismatch at (%d,%d): grid has %v, wire glyph implies %v", x, y, got, want)
			}
		}
	}
}
