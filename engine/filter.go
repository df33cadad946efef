package engine

// filterMoves removes candidates that land on or pass over the player's own
// marbles, or land on a marble whose owner is evading capture.
func (g *Game) filterMoves(l *MoveList, p Player) {
	selfJump := g.Progress[p].Status.SelfJumpTurns > 0
	out := uint8(0)
	for i := uint8(0); i < l.Len; i++ {
		mv := &l.Moves[i]
		if g.blockedBySelf(mv, p, selfJump) || g.blockedByEvader(mv, p) {
			continue
		}
		if out != i {
			l.Moves[out] = *mv
		}
		out++
	}
	l.Len = out
}

func (g *Game) blockedBySelf(mv *Move, p Player, selfJump bool) bool {
	first := p.FirstMarble()
	for k := MarbleID(0); k < MarblesPerPlayer; k++ {
		id := first + k
		at := g.Marbles[id].Index
		if id == mv.Marble || at == BaseIndex {
			continue
		}
		if at == mv.Destination {
			return true
		}
		if selfJump {
			continue
		}
		cells := mv.Cells()
		for _, c := range cells[:len(cells)-1] {
			if c == at {
				return true
			}
		}
	}
	return false
}

func (g *Game) blockedByEvader(mv *Move, p Player) bool {
	if IsHomeIndex(mv.Destination) {
		return false
	}
	for o := MarbleID(0); o < NumMarbles; o++ {
		owner := o.Owner()
		if owner == p || !g.IsEvading(owner) {
			continue
		}
		at := g.Marbles[o].Index
		if at == BaseIndex || IsHomeIndex(at) {
			continue
		}
		if IsSameIndex(p, mv.Destination, owner, at) {
			return true
		}
	}
	return false
}
