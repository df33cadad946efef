package engine

// execute commits mv for the player on turn and waits for its animation.
func (g *Game) execute(tc *TurnContext, mv *Move) {
	m := &g.Marbles[mv.Marble]
	m.PrevIndex = m.Index
	m.Index = mv.Destination
	tc.Dice.Use(mv.Which)

	st := &g.Progress[tc.Player].Status
	switch mv.Source {
	case SourceHomeRun:
		st.HomeRun = false
	case SourceCaptureNearest:
		st.CaptureNearest = false
	}
	g.Progress[tc.Player].Moves++

	tc.LastMoved = mv.Marble
	tc.LastSource = mv.Source
	tc.LastCaptured = NoMarble
	tc.SelectedMarble = NoMarble
	if !g.Rules.Human[tc.Player] && !tc.Dice.IsEmpty() {
		// Computer seats keep playing the marble they moved while dice remain.
		tc.SelectedMarble = mv.Marble
	}

	g.emit(Signal{Kind: SignalHighlight, Player: tc.Player, Marble: NoMarble})
	g.emit(Signal{
		Kind:   SignalMarbleMoving,
		Player: tc.Player,
		Marble: mv.Marble,
		Index:  mv.Destination,
		At:     World(tc.Player, mv.Destination),
	})
	g.setPhase(PhaseWaitForAnimation)
}

// resolveCapture sends an opponent sharing the moved marble's cell back to
// base. It returns the captured marble, or NoMarble.
func (g *Game) resolveCapture(tc *TurnContext) MarbleID {
	mover := tc.LastMoved
	at := g.Marbles[mover].Index
	if IsHomeIndex(at) || at == BaseIndex {
		return NoMarble
	}
	for o := MarbleID(0); o < NumMarbles; o++ {
		owner := o.Owner()
		if owner == tc.Player {
			continue
		}
		victim := &g.Marbles[o]
		if victim.Index == BaseIndex || IsHomeIndex(victim.Index) {
			continue
		}
		if !IsSameIndex(tc.Player, at, owner, victim.Index) {
			continue
		}
		if g.IsEvading(owner) {
			return NoMarble
		}
		victim.Index = BaseIndex
		tc.LastCaptured = o
		g.Progress[tc.Player].Captures++
		g.Progress[owner].Captured++
		g.emit(Signal{
			Kind:   SignalMarbleCaptured,
			Player: owner,
			Marble: o,
			Other:  mover,
			Index:  BaseIndex,
			At:     BaseOrigin(o),
		})
		if g.Rules.PowerUps {
			g.addPower(tc.Player, g.Rules.CapturePower)
			g.addPower(owner, -g.Rules.CapturePower)
		}
		return o
	}
	return NoMarble
}
