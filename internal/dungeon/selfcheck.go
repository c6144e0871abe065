package dungeon

// selfCheck is the §7 post-generation check: it must never fail for a
// correct implementation, but it exists so a bug degrades into a reported
// InternalConsistencyViolation instead of a silently wrong, cached chunk.
func selfCheck(c *Chunk, profiles [4]Profile) error {
	if err := checkFrame(c, profiles); err != nil {
		return err
	}
	if err := checkReachability(c, profiles); err != nil {
		return err
	}
	return nil
}

// checkFrame verifies I4: every border cell is WALL, except at a declared
// opening, which must be FLOOR.
func checkFrame(c *Chunk, profiles [4]Profile) error {
	size := c.size
	isOpening := make(map[[2]int]bool)
	for _, side := range []Side{North, East, South, West} {
		for _, pos := range profiles[side].Openings {
			x, y := boundaryCell(size, side, pos)
			isOpening[[2]int{x, y}] = true
		}
	}

	check := func(x, y int) error {
		want := Wall
		if isOpening[[2]int{x, y}] {
			want = Floor
		}
		got := c.At(x, y)
		if got == Tablet {
			return &InternalConsistencyViolation{CX: c.CX, CY: c.CY, Reason: "tablet placed on chunk border"}
		}
		if got != want {
			return &InternalConsistencyViolation{CX: c.CX, CY: c.CY, Reason: "boundary cell does not match its opening profile"}
		}
		return nil
	}

	for x := 0; x < size; x++ {
		if err := check(x, 0); err != nil {
			return err
		}
		if err := check(x, size-1); err != nil {
			return err
		}
	}
	for y := 0; y < size; y++ {
		if err := check(0, y); err != nil {
			return err
		}
		if err := check(size-1, y); err != nil {
			return err
		}
	}
	return nil
}

// checkReachability verifies I5: every FLOOR (and TABLET, which sits on
// what was a FLOOR cell) in the chunk is reachable from every boundary
// opening via 4-connected FLOOR/TABLET moves.
func checkReachability(c *Chunk, profiles [4]Profile) error {
	size := c.size
	visited := make([]bool, size*size)

	var openings [][2]int
	for _, side := range []Side{North, East, South, West} {
		for _, pos := range profiles[side].Openings {
			x, y := boundaryCell(size, side, pos)
			openings = append(openings, [2]int{x, y})
		}
	}
	if len(openings) == 0 {
		return nil
	}

	queue := make([][2]int, 0, size*size)
	start := openings[0]
	idx := start[1]*size + start[0]
	visited[idx] = true
	queue = append(queue, start)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		x, y := cur[0], cur[1]
		for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
			nx, ny := x+d[0], y+d[1]
			if !c.inBounds(nx, ny) {
				continue
			}
			ni := ny*size + nx
			if visited[ni] {
				continue
			}
			if c.At(nx, ny) == Wall {
				continue
			}
			visited[ni] = true
			queue = append(queue, [2]int{nx, ny})
		}
	}

	for _, o := range openings {
		if !visited[o[1]*size+o[0]] {
			return &InternalConsistencyViolation{CX: c.CX, CY: c.CY, Reason: "boundary opening not reachable from the room graph"}
		}
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if c.At(x, y) != Wall && !visited[y*size+x] {
				return &InternalConsistencyViolation{CX: c.CX, CY: c.CY, Reason: "floor cell not reachable from any boundary opening"}
			}
		}
	}
	return nil
}
