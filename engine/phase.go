package engine

// maxRerolls caps the forced-reroll loop; a face of 1 ends it in practice
// long before.
const maxRerolls = 64

func (g *Game) setPhase(p Phase) {
	g.Phase = p
	g.emit(Signal{Kind: SignalPhase, Player: g.Turn.Player, Phase: p, Turn: g.TurnNumber})
}

// Step runs the handler of the current phase when that phase needs no
// external input, and reports whether it ran.
func (g *Game) Step() bool {
	tc := &g.Turn
	switch g.Phase {
	case PhaseNextPlayer:
		g.nextPlayer(tc)
	case PhaseDiceRoll:
		g.diceRoll(tc)
	case PhaseTurnSetup:
		g.turnSetup(tc)
	case PhaseProcessMove:
		g.processMove(tc)
	case PhaseEndTurn:
		g.endTurn(tc)
	default:
		return false
	}
	return true
}

// Advance steps until the game waits for input or ends, and returns the
// resulting phase.
func (g *Game) Advance() Phase {
	for g.Step() {
	}
	return g.Phase
}

func (g *Game) nextPlayer(tc *TurnContext) {
	*tc = newTurnContext(tc.Player.Next())
	g.TurnNumber++
	if g.Rules.MaxTurns > 0 && g.TurnNumber > g.Rules.MaxTurns {
		g.endGame(NoPlayer)
		return
	}
	g.setPhase(PhaseDiceRoll)
}

func (g *Game) diceRoll(tc *TurnContext) {
	var one, two uint8
	if g.forced[0] != 0 {
		one, two = g.forced[0], g.forced[1]
		g.forced = [2]uint8{}
	} else {
		one, two = g.rollDie(), g.rollDie()
		limit := g.Rules.EmptyTurnReroll
		if limit > 0 && g.Progress[tc.Player].ConsecutiveEmptyTurns >= limit {
			for i := 0; i < maxRerolls && one != 1 && two != 1 && g.isForcedEmpty(tc, one, two); i++ {
				one, two = g.rollDie(), g.rollDie()
			}
		}
	}
	tc.Dice.set(one, two)
	tc.SelectedMarble = NoMarble
	tc.Selected = -1
	g.emit(Signal{Kind: SignalDiceRolled, Player: tc.Player, Dice: tc.Dice.Faces})
	g.setPhase(PhaseTurnSetup)
}

// isForcedEmpty reports whether rolling one and two would leave the player
// with no legal move.
func (g *Game) isForcedEmpty(tc *TurnContext, one, two uint8) bool {
	d := tc.Dice
	d.set(one, two)
	l := g.generateMoves(tc.Player, &d)
	return l.Len == 0
}

func (g *Game) turnSetup(tc *TurnContext) {
	tc.Moves = g.generateMoves(tc.Player, &tc.Dice)
	tc.Selected = -1
	g.Progress[tc.Player].TurnMoveCount += uint16(tc.Moves.Len)

	if tc.SelectedMarble != NoMarble && !tc.hasMovesFor(tc.SelectedMarble) {
		tc.SelectedMarble = NoMarble
	}

	if tc.Moves.Len == 0 {
		if tc.Dice.Doubles {
			g.setPhase(PhaseDiceRoll)
			return
		}
		g.finishTurn(tc)
		g.setPhase(PhaseNextPlayer)
		return
	}
	if g.Rules.Human[tc.Player] {
		g.setPhase(PhaseHumanTurn)
	} else {
		g.setPhase(PhaseComputerTurn)
	}
}

func (g *Game) processMove(tc *TurnContext) {
	g.resolveCapture(tc)
	g.accrueMovePower(tc)

	if g.AllHome(tc.Player) {
		g.endGame(tc.Player)
		return
	}
	switch {
	case !tc.Dice.IsEmpty():
		g.setPhase(PhaseTurnSetup)
	case tc.Dice.Doubles:
		g.setPhase(PhaseDiceRoll)
	default:
		g.setPhase(PhaseEndTurn)
	}
}

func (g *Game) endTurn(tc *TurnContext) {
	g.finishTurn(tc)
	g.setPhase(PhaseNextPlayer)
}

func (g *Game) endGame(winner Player) {
	g.Winner = winner
	g.setPhase(PhaseGameEnd)
	g.emit(Signal{Kind: SignalGameEnd, Player: winner})
}

func (tc *TurnContext) hasMovesFor(m MarbleID) bool {
	for i := uint8(0); i < tc.Moves.Len; i++ {
		if tc.Moves.Moves[i].Marble == m {
			return true
		}
	}
	return false
}
