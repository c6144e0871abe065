package dungeon

// connectStubsToRooms carves a path from every boundary stub's tip to the
// Manhattan-nearest room center (§4.3 step 7). Since the room graph itself
// is already connected by connectRoomsWithHallways, this is what makes
// every opening reachable from every other opening — the guarantee behind
// I3 and I5.
func connectStubsToRooms(c *Chunk, stubs []stub, rooms []room) {
	if len(rooms) == 0 {
		return
	}
	for _, s := range stubs {
		nearest := nearestRoom(s.tipX, s.tipY, rooms)
		cx, cy := nearest.center()
		carveStraightThenL(c, s.tipX, s.tipY, cx, cy)
	}
}

func nearestRoom(x, y int, rooms []room) room {
	best := rooms[0]
	bx, by := best.center()
	bestDist := manhattan(x, y, bx, by)
	for _, r := range rooms[1:] {
		cx, cy := r.center()
		d := manhattan(x, y, cx, cy)
		if d < bestDist {
			best, bestDist = r, d
		}
	}
	return best
}

func manhattan(x, y, cx, cy int) int {
	return abs(x-cx) + abs(y-cy)
}

// carveStraightThenL carves a straight or L-shaped path from a stub tip to
// a room center. Direction order is fixed (horizontal first) since the
// stub tip is already the fixed anchor — no RNG choice is needed here, and
// determinism doesn't need one either.
func carveStraightThenL(c *Chunk, x1, y1, x2, y2 int) {
	carveHorizontal(c, x1, x2, y1)
	carveVertical(c, y1, y2, x2)
}
