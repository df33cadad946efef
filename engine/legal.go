package engine

// ---------------------------------------------------------------------------
// Move generation
// ---------------------------------------------------------------------------

func (m *Move) push(cell uint8) {
	m.Path[m.PathLen] = cell
	m.PathLen++
}

func singleCellMove(id MarbleID, dest uint8, which WhichDie, src MoveSource) Move {
	mv := Move{Marble: id, Destination: dest, Which: which, Source: src}
	mv.push(dest)
	return mv
}

// advance adds the moves of v steps forward from index from: the straight
// move when it stays within the home row, and the Center variant when the
// last step leaves a center entrance. prefix is prepended to both paths.
func (l *MoveList) advance(id MarbleID, prefix []uint8, from, v uint8, which WhichDie) {
	if v == 0 {
		return
	}
	dest := int(from) + int(v)
	if dest <= int(LastHomeIndex) {
		mv := Move{Marble: id, Destination: uint8(dest), Which: which}
		for _, c := range prefix {
			mv.push(c)
		}
		for i := int(from) + 1; i <= dest; i++ {
			mv.push(uint8(i))
		}
		l.add(mv)
	}
	last := dest - 1
	if from < FirstHomeIndex && last <= int(LastTrackIndex) && isCenterEntrance(uint8(last)) {
		mv := Move{Marble: id, Destination: CenterIndex, Which: which}
		for _, c := range prefix {
			mv.push(c)
		}
		for i := int(from) + 1; i <= last; i++ {
			mv.push(uint8(i))
		}
		mv.push(CenterIndex)
		l.add(mv)
	}
}

// exitMoves adds the moves of a marble leaving base or center. A die
// showing face exactly moves it onto entry; the other die may then carry
// it further in the same move.
func (l *MoveList) exitMoves(id MarbleID, d *Dice, entry uint8, faces ...uint8) {
	one, okOne := d.One()
	two, okTwo := d.Two()
	prefix := []uint8{entry}
	exits := func(v uint8) bool {
		for _, f := range faces {
			if v == f {
				return true
			}
		}
		return false
	}
	if okOne && exits(one) {
		l.add(singleCellMove(id, entry, DieOne, SourceDice))
		if okTwo {
			l.advance(id, prefix, entry, two*d.Multiplier, DieBoth)
		}
	}
	if okTwo && exits(two) {
		l.add(singleCellMove(id, entry, DieTwo, SourceDice))
		if okOne {
			l.advance(id, prefix, entry, one*d.Multiplier, DieBoth)
		}
	}
}

// marbleMoves adds the dice moves of one marble.
func (l *MoveList) marbleMoves(id MarbleID, index uint8, d *Dice) {
	switch index {
	case BaseIndex:
		l.exitMoves(id, d, StartIndex, 1, 6)
	case CenterIndex:
		l.exitMoves(id, d, CenterExitIndex, 1)
	default:
		for _, dv := range d.Values() {
			l.advance(id, nil, index, dv.Value, dv.Which)
		}
	}
}

// homeRunMoves adds a move from every marble outside the home row to every
// open home cell.
func (g *Game) homeRunMoves(l *MoveList, p Player) {
	first := p.FirstMarble()
	var taken [LastHomeIndex - FirstHomeIndex + 1]bool
	for k := MarbleID(0); k < MarblesPerPlayer; k++ {
		if i := g.Marbles[first+k].Index; IsHomeIndex(i) {
			taken[i-FirstHomeIndex] = true
		}
	}
	for k := MarbleID(0); k < MarblesPerPlayer; k++ {
		id := first + k
		if IsHomeIndex(g.Marbles[id].Index) {
			continue
		}
		for h := FirstHomeIndex; h <= LastHomeIndex; h++ {
			if !taken[h-FirstHomeIndex] {
				l.add(singleCellMove(id, h, DieNeither, SourceHomeRun))
			}
		}
	}
}

// centerDistance returns the steps from outer-track index i into Center via
// the next center entrance.
func centerDistance(i uint8) (uint8, bool) {
	for _, e := range CenterEntrances {
		if i <= e {
			return e - i + 1, true
		}
	}
	return 0, false
}

// captureNearestMoves adds, for every marble on the board, a move onto the
// closest capturable opponent ahead of it.
func (g *Game) captureNearestMoves(l *MoveList, p Player) {
	first := p.FirstMarble()
	for k := MarbleID(0); k < MarblesPerPlayer; k++ {
		id := first + k
		from := g.Marbles[id].Index
		if from == BaseIndex || IsHomeIndex(from) {
			continue
		}
		best := uint8(0xFF)
		target := uint8(0)
		for o := MarbleID(0); o < NumMarbles; o++ {
			owner := o.Owner()
			at := g.Marbles[o].Index
			if owner == p || at == BaseIndex || IsHomeIndex(at) || g.IsEvading(owner) {
				continue
			}
			var dist uint8
			var local uint8
			switch {
			case at == CenterIndex:
				if from == CenterIndex {
					continue
				}
				d, ok := centerDistance(from)
				if !ok {
					continue
				}
				dist, local = d, CenterIndex
			case from == CenterIndex:
				local = ShiftIndex(at, owner, p)
				if local < CenterExitIndex {
					continue
				}
				dist = local - CenterExitIndex + 1
			default:
				local = ShiftIndex(at, owner, p)
				if local <= from {
					continue
				}
				dist = local - from
			}
			if dist < best {
				best, target = dist, local
			}
		}
		if best != 0xFF {
			l.add(singleCellMove(id, target, DieNeither, SourceCaptureNearest))
		}
	}
}

// generateMoves returns p's legal moves for dice d: every candidate from
// dice and active one-shot power-ups, filtered and sorted.
func (g *Game) generateMoves(p Player, d *Dice) MoveList {
	var l MoveList
	first := p.FirstMarble()
	for k := MarbleID(0); k < MarblesPerPlayer; k++ {
		id := first + k
		l.marbleMoves(id, g.Marbles[id].Index, d)
	}
	st := &g.Progress[p].Status
	if st.HomeRun {
		g.homeRunMoves(&l, p)
	}
	if st.CaptureNearest {
		g.captureNearestMoves(&l, p)
	}
	g.filterMoves(&l, p)
	l.sort()
	return l
}
