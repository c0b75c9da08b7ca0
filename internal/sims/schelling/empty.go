package schelling

// emptyIndex tracks the linear indices of empty cells with O(1) insertion and
// removal. Iteration order over cells carries no meaning; searches break ties
// on the index value itself.
type emptyIndex struct {
	cells []int
	pos   []int // pos[idx] is the position of idx in cells, or -1
}

func newEmptyIndex(total int) emptyIndex {
	pos := make([]int, total)
	for i := range pos {
		pos[i] = -1
	}
	return emptyIndex{pos: pos}
}

func (e *emptyIndex) rebuild(cells []uint8) {
	e.cells = e.cells[:0]
	for i, c := range cells {
		e.pos[i] = -1
		if Label(c) == Empty {
			e.pos[i] = len(e.cells)
			e.cells = append(e.cells, i)
		}
	}
}

func (e *emptyIndex) len() int { return len(e.cells) }

func (e *emptyIndex) contains(idx int) bool { return e.pos[idx] >= 0 }

func (e *emptyIndex) add(idx int) {
	if e.pos[idx] >= 0 {
		return
	}
	e.pos[idx] = len(e.cells)
	e.cells = append(e.cells, idx)
}

func (e *emptyIndex) remove(idx int) {
	at := e.pos[idx]
	if at < 0 {
		return
	}
	last := len(e.cells) - 1
	moved := e.cells[last]
	e.cells[at] = moved
	e.pos[moved] = at
	e.cells = e.cells[:last]
	e.pos[idx] = -1
}
