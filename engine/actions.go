package engine

import "fmt"

// requireTurn checks that the game is waiting for a selection.
func (g *Game) requireTurn(human bool) error {
	if g.IsOver() {
		return ErrGameOver
	}
	switch {
	case g.Phase == PhaseHumanTurn && human:
		return nil
	case g.Phase == PhaseComputerTurn && !human:
		return nil
	}
	return fmt.Errorf("%w: %s", ErrWrongPhase, g.Phase)
}

// ClickMarble selects one of the current player's marbles and highlights
// its moves. Clicking the selected marble again does nothing.
func (g *Game) ClickMarble(m MarbleID) error {
	if err := g.requireTurn(true); err != nil {
		return err
	}
	if m >= NumMarbles {
		return fmt.Errorf("%w: %d", ErrUnknownMarble, m)
	}
	tc := &g.Turn
	if m.Owner() != tc.Player {
		return fmt.Errorf("%w: marble %d belongs to %s", ErrNotCurrentPlayer, m, m.Owner())
	}
	if m == tc.SelectedMarble {
		return nil
	}
	tc.SelectedMarble = m
	g.emit(Signal{Kind: SignalHighlight, Player: tc.Player, Marble: m})
	return nil
}

// ClickIndex handles a click on local index i of the current player's
// frame. An own marble there is selected; otherwise the selected marble
// moves to i if it legally can, else the selection is cleared.
func (g *Game) ClickIndex(i uint8) error {
	if err := g.requireTurn(true); err != nil {
		return err
	}
	tc := &g.Turn
	if id, ok := g.MarbleAt(tc.Player, i); ok && id.Owner() == tc.Player {
		return g.ClickMarble(id)
	}
	if tc.SelectedMarble != NoMarble {
		for n := uint8(0); n < tc.Moves.Len; n++ {
			mv := &tc.Moves.Moves[n]
			if mv.Marble == tc.SelectedMarble && mv.Destination == i {
				g.commit(tc, n)
				return nil
			}
		}
	}
	g.deselect(tc)
	return nil
}

// Deselect clears the current selection.
func (g *Game) Deselect() error {
	if err := g.requireTurn(true); err != nil {
		return err
	}
	g.deselect(&g.Turn)
	return nil
}

func (g *Game) deselect(tc *TurnContext) {
	if tc.SelectedMarble == NoMarble {
		return
	}
	tc.SelectedMarble = NoMarble
	g.emit(Signal{Kind: SignalHighlight, Player: tc.Player, Marble: NoMarble})
}

// SelectMove commits the n-th legal move of the turn in progress.
func (g *Game) SelectMove(n int) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if g.Phase != PhaseHumanTurn && g.Phase != PhaseComputerTurn {
		return fmt.Errorf("%w: %s", ErrWrongPhase, g.Phase)
	}
	tc := &g.Turn
	if n < 0 || n >= int(tc.Moves.Len) {
		return fmt.Errorf("%w: move %d of %d", ErrIllegalMove, n, tc.Moves.Len)
	}
	g.commit(tc, uint8(n))
	return nil
}

// ComputerMove picks a legal move uniformly at random, restricted to the
// selected marble's moves when it has any.
func (g *Game) ComputerMove() error {
	if err := g.requireTurn(false); err != nil {
		return err
	}
	tc := &g.Turn
	var candidates [MaxMoves]uint8
	n := 0
	if tc.SelectedMarble != NoMarble {
		for i := uint8(0); i < tc.Moves.Len; i++ {
			if tc.Moves.Moves[i].Marble == tc.SelectedMarble {
				candidates[n] = i
				n++
			}
		}
	}
	if n == 0 {
		for i := uint8(0); i < tc.Moves.Len; i++ {
			candidates[n] = i
			n++
		}
	}
	if n == 0 {
		// Unreachable: TurnSetup never routes an empty set here.
		return fmt.Errorf("%w: no legal moves", ErrIllegalMove)
	}
	g.commit(tc, candidates[g.randN(uint64(n))])
	return nil
}

// ComputerPowerUp activates one of the current computer player's held
// power-ups, chosen uniformly. It reports whether one was used.
func (g *Game) ComputerPowerUp() (bool, error) {
	if err := g.requireTurn(false); err != nil {
		return false, err
	}
	prog := &g.Progress[g.Turn.Player]
	var held [MaxPowerUps]int
	n := 0
	for i, pu := range prog.PowerUps {
		if pu != PowerUpNone {
			held[n] = i
			n++
		}
	}
	if n == 0 {
		return false, nil
	}
	return true, g.UsePowerUp(g.Turn.Player, held[g.randN(uint64(n))])
}

// Done ends the human player's selection: another roll after doubles,
// otherwise the end of the turn.
func (g *Game) Done() error {
	if err := g.requireTurn(true); err != nil {
		return err
	}
	tc := &g.Turn
	g.deselect(tc)
	if tc.Dice.Doubles {
		g.setPhase(PhaseDiceRoll)
	} else {
		g.setPhase(PhaseEndTurn)
	}
	return nil
}

// UsePowerUp spends the power-up in p's slot and applies its effect.
func (g *Game) UsePowerUp(p Player, slot int) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if g.Phase != PhaseHumanTurn && g.Phase != PhaseComputerTurn {
		return fmt.Errorf("%w: %s", ErrWrongPhase, g.Phase)
	}
	if p != g.Turn.Player {
		return fmt.Errorf("%w: %s", ErrNotCurrentPlayer, p)
	}
	prog := &g.Progress[p]
	if !g.Rules.PowerUps || slot < 0 || slot >= MaxPowerUps || prog.PowerUps[slot] == PowerUpNone {
		return fmt.Errorf("%w: %s slot %d", ErrNoPowerUp, p, slot)
	}
	pu := prog.PowerUps[slot]
	prog.PowerUps[slot] = PowerUpNone
	if prog.Bar.Count > 0 {
		prog.Bar.Count--
	}
	prog.Activated++
	g.emit(Signal{Kind: SignalPowerActivated, Player: p, PowerUp: pu, Slot: uint8(slot)})
	g.emit(Signal{Kind: SignalPowerBar, Player: p, Power: prog.Bar.Power, Count: prog.Bar.Count})
	g.activate(&g.Turn, pu)
	return nil
}

// AnimationDone reports that marble m finished moving. Only the marble
// moved by the pending move is accepted.
func (g *Game) AnimationDone(m MarbleID) error {
	if g.IsOver() {
		return ErrGameOver
	}
	if g.Phase != PhaseWaitForAnimation {
		return fmt.Errorf("%w: %s", ErrWrongPhase, g.Phase)
	}
	if m != g.Turn.LastMoved {
		return fmt.Errorf("%w: marble %d, waiting for %d", ErrUnexpectedAnimation, m, g.Turn.LastMoved)
	}
	g.setPhase(PhaseProcessMove)
	return nil
}

func (g *Game) commit(tc *TurnContext, n uint8) {
	tc.Selected = int8(n)
	mv := tc.Moves.Moves[n]
	g.execute(tc, &mv)
}
