package dungeon

import (
	"sort"

	"github.com/przecze/rooms-of-roaming/internal/rng"
)

// minOpeningSpacing is the minimum gap (Δ in §4.2 step 4) enforced between
// two openings on the same edge.
const minOpeningSpacing = 2

// maxRedrawAttempts bounds the reject-and-redraw loop in §4.2 step 4 before
// the oracle degrades gracefully by reducing the opening count.
const maxRedrawAttempts = 64

// Profile is the deterministic edge profile shared by two chunks across one
// boundary: the sorted positions of corridor openings along that edge.
type Profile struct {
	Openings []int
	Count    int
	Length   int
}

// EdgeProfile computes the §4.2 Boundary Oracle for one side of chunk
// (cx,cy). Both chunks sharing that edge compute the same canonical key and
// therefore see the same Profile (the determinism guarantee in §4.2).
func EdgeProfile(cfg Config, side Side, cx, cy int) Profile {
	key := CanonicalEdge(side, cx, cy)
	s := rng.New(cfg.WorldSeed, "edge", int64(key.orientation), int64(key.x), int64(key.y))

	lo, hi := 2, cfg.ChunkSize-3
	count := s.RandInt(cfg.OpeningsMin, cfg.OpeningsMax)
	if count > hi-lo+1 {
		count = hi - lo + 1
	}

	openings := drawSpacedPositions(s, lo, hi, count, minOpeningSpacing)
	sort.Ints(openings)

	return Profile{
		Openings: openings,
		Count:    len(openings),
		Length:   cfg.ChunkSize,
	}
}

// drawSpacedPositions draws up to `count` distinct integers from [lo,hi]
// with a minimum pairwise spacing, using reject-and-redraw with a bounded
// attempt budget. If the budget is exhausted it returns fewer than `count`
// positions rather than looping forever (§4.3 "Failure semantics": the
// generator degrades gracefully, it never fails on valid input).
func drawSpacedPositions(s *rng.Stream, lo, hi, count, spacing int) []int {
	if count <= 0 || hi < lo {
		return nil
	}
	positions := make([]int, 0, count)
	for attempts := 0; len(positions) < count && attempts < maxRedrawAttempts*count; attempts++ {
		p := s.RandInt(lo, hi)
		ok := true
		for _, existing := range positions {
			if abs(p-existing) < spacing {
				ok = false
				break
			}
		}
		if ok {
			positions = append(positions, p)
		}
	}
	return positions
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
