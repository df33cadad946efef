package engine

// ---------------------------------------------------------------------------
// Power bar
// ---------------------------------------------------------------------------

// Update adds delta to the bar and reports whether a threshold was crossed.
// Power never drops below zero. The first two crossings carry the excess
// over; the third empties the bar. A bar holding three grants ignores
// further gains until one is spent.
func (b *PowerBar) Update(delta float32) bool {
	p := b.Power + delta
	if p < 0 {
		p = 0
	}
	if p >= MaxPower {
		switch b.Count {
		case 0, 1:
			b.Power = p - MaxPower
			b.Count++
			return true
		case 2:
			b.Power = 0
			b.Count++
			return true
		}
		return false
	}
	if b.Count < MaxPowerUps {
		b.Power = p
	}
	return false
}

// Distance returns the number of cells travelled from prev to index, with
// base and center exits counted from their entry cells. The second return
// is false for pairs no single move can produce.
func Distance(prev, index uint8) (uint8, bool) {
	if index == CenterIndex {
		switch {
		case prev == BaseIndex:
			return 7, true
		case prev <= CenterEntrances[0]:
			return CenterEntrances[0] - prev + 1, true
		case prev <= CenterEntrances[1]:
			return CenterEntrances[1] - prev + 1, true
		case prev <= CenterEntrances[2]:
			return CenterEntrances[2] - prev + 1, true
		}
		return 0, false
	}
	switch prev {
	case BaseIndex:
		return index + 1, true
	case CenterIndex:
		if index < CenterExitIndex {
			return 0, false
		}
		return index + 1 - CenterExitIndex, true
	}
	if index < prev {
		return 0, false
	}
	return index - prev, true
}

// MovePower returns the power earned by moving from prev to index. Moves
// ending in the home row earn double.
func MovePower(prev, index uint8) float32 {
	d, ok := Distance(prev, index)
	if !ok {
		return 0
	}
	factor := float32(1)
	if IsHomeIndex(index) {
		factor = 2
	}
	return factor * MaxPower * float32(d) / TrackLen
}

// addPower updates p's bar and drafts a power-up on a threshold crossing.
func (g *Game) addPower(p Player, delta float32) {
	prog := &g.Progress[p]
	up := prog.Bar.Update(delta)
	g.emit(Signal{Kind: SignalPowerBar, Player: p, Power: prog.Bar.Power, Count: prog.Bar.Count})
	if up {
		g.draft(p)
	}
}

// accrueMovePower credits the player on turn for the move just processed.
func (g *Game) accrueMovePower(tc *TurnContext) {
	if !g.Rules.PowerUps || tc.LastSource == SourceHomeRun {
		return
	}
	m := g.Marbles[tc.LastMoved]
	if pw := MovePower(m.PrevIndex, m.Index); pw > 0 {
		g.addPower(tc.Player, pw)
	}
}

// ---------------------------------------------------------------------------
// Drafting and activation
// ---------------------------------------------------------------------------

// draft places a weighted-random power-up in p's first open slot.
func (g *Game) draft(p Player) {
	prog := &g.Progress[p]
	slot := -1
	for i, pu := range prog.PowerUps {
		if pu == PowerUpNone {
			slot = i
			break
		}
	}
	total := g.Rules.draftTotal()
	if slot < 0 || total == 0 {
		return
	}
	r := g.randN(total)
	pu := PowerUpNone
	for i, w := range g.Rules.DraftWeights {
		if r < uint64(w) {
			pu = PowerUp(i + 1)
			break
		}
		r -= uint64(w)
	}
	prog.PowerUps[slot] = pu
	prog.Drafted++
	g.emit(Signal{Kind: SignalPowerDrafted, Player: p, PowerUp: pu, Slot: uint8(slot)})
}

// activate applies pu for the player on turn.
func (g *Game) activate(tc *TurnContext, pu PowerUp) {
	st := &g.Progress[tc.Player].Status
	switch pu {
	case PowerUpRollAgain:
		g.setPhase(PhaseDiceRoll)
	case PowerUpDoubleDice:
		tc.Dice.Multiplier = 2
		g.setPhase(PhaseTurnSetup)
	case PowerUpEvadeCapture:
		st.EvadeCaptureTurns = g.Rules.EvadeCaptureTurns
	case PowerUpSelfJump:
		st.SelfJumpTurns = g.Rules.SelfJumpTurns
		g.setPhase(PhaseTurnSetup)
	case PowerUpCaptureNearest:
		st.CaptureNearest = true
		g.setPhase(PhaseTurnSetup)
	case PowerUpHomeRun:
		st.HomeRun = true
		g.setPhase(PhaseTurnSetup)
	}
}

// finishTurn runs end-of-turn bookkeeping for the player on turn.
func (g *Game) finishTurn(tc *TurnContext) {
	prog := &g.Progress[tc.Player]
	st := &prog.Status
	if st.EvadeCaptureTurns > 0 {
		st.EvadeCaptureTurns--
	}
	if st.SelfJumpTurns > 0 {
		st.SelfJumpTurns--
	}
	st.CaptureNearest = false
	st.HomeRun = false

	if prog.TurnMoveCount == 0 {
		if prog.ConsecutiveEmptyTurns < 0xFF {
			prog.ConsecutiveEmptyTurns++
		}
	} else {
		prog.ConsecutiveEmptyTurns = 0
	}
	prog.TurnMoveCount = 0
	*tc = newTurnContext(tc.Player)
}
