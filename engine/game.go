// Package engine implements the Vexation marble race rules.
//
// The engine is a flat value type driven as a phase state machine: Step and
// Advance run the automatic phases, and command methods (ClickMarble,
// ComputerMove, UsePowerUp, AnimationDone, ...) supply the external inputs
// the input phases wait for. Outbound notifications queue up as Signals.
// Games are reproducible from their seed.
package engine

const (
	NumPlayers       = 4
	MarblesPerPlayer = 5
	NumMarbles       = NumPlayers * MarblesPerPlayer
	MaxPowerUps      = 3
)

// Game holds the complete state of one Vexation game.
type Game struct {
	Marbles    [NumMarbles]Marble
	Progress   [NumPlayers]PlayerProgress
	Turn       TurnContext
	Phase      Phase
	Winner     Player
	TurnNumber uint16
	RNG        uint64
	Rules      Rules

	forced  [2]uint8
	signals signalQueue
}

// ---------------------------------------------------------------------------
// xorshift64 RNG
// ---------------------------------------------------------------------------

func (g *Game) nextRand() uint64 {
	x := g.RNG
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	g.RNG = x
	return x
}

// randN returns a random number in [0, n).
func (g *Game) randN(n uint64) uint64 {
	return g.nextRand() % n
}

func (g *Game) rollDie() uint8 { return uint8(g.randN(6)) + 1 }

// ---------------------------------------------------------------------------
// NewGame
// ---------------------------------------------------------------------------

// NewGame returns a game with every marble in base. The first Step begins
// the first player's turn.
func NewGame(seed uint64, rules Rules) Game {
	var g Game
	g.RNG = seed
	if g.RNG == 0 {
		g.RNG = 1 // xorshift can't start at 0
	}
	g.Rules = rules
	g.Winner = NoPlayer
	for i := range g.Marbles {
		g.Marbles[i] = Marble{Index: BaseIndex, PrevIndex: BaseIndex}
	}

	first := rules.FirstPlayer
	if first >= NumPlayers {
		first = Player(g.randN(NumPlayers))
	}
	// NextPlayer advances from the predecessor.
	g.Turn = newTurnContext(first.Prev())
	g.Phase = PhaseNextPlayer
	return g
}

// ForceNextRoll makes the next dice roll produce the given faces, bypassing
// the RNG and the reroll policy.
func (g *Game) ForceNextRoll(one, two uint8) {
	g.forced = [2]uint8{one, two}
}

// ---------------------------------------------------------------------------
// Query methods
// ---------------------------------------------------------------------------

// IsOver reports whether the game has ended.
func (g *Game) IsOver() bool { return g.Phase == PhaseGameEnd }

// CurrentPlayer returns the player on turn.
func (g *Game) CurrentPlayer() Player { return g.Turn.Player }

// IsHuman reports whether p's seat takes input.
func (g *Game) IsHuman(p Player) bool { return g.Rules.Human[p] }

// Marble returns the state of marble m.
func (g *Game) Marble(m MarbleID) Marble {
	if m >= NumMarbles {
		panic("engine: marble id out of range")
	}
	return g.Marbles[m]
}

// IsEvading reports whether p's marbles are immune to capture.
func (g *Game) IsEvading(p Player) bool { return g.Progress[p].Status.EvadeCaptureTurns > 0 }

// LegalMoves returns the legal moves of the turn in progress.
func (g *Game) LegalMoves() []Move { return g.Turn.Moves.Slice() }

// MovesFor returns the legal moves of marble m.
func (g *Game) MovesFor(m MarbleID) []Move {
	var out []Move
	for _, mv := range g.Turn.Moves.Slice() {
		if mv.Marble == m {
			out = append(out, mv)
		}
	}
	return out
}

// MarbleAt returns the marble of any player on p's local index i, if any.
// Home-row and base indices only match p's own marbles.
func (g *Game) MarbleAt(p Player, i uint8) (MarbleID, bool) {
	for id := MarbleID(0); id < NumMarbles; id++ {
		m := g.Marbles[id]
		owner := id.Owner()
		if owner == p {
			if m.Index == i && i != BaseIndex {
				return id, true
			}
			continue
		}
		if m.Index == BaseIndex || IsHomeIndex(m.Index) || i == BaseIndex || IsHomeIndex(i) {
			continue
		}
		if IsSameIndex(owner, m.Index, p, i) {
			return id, true
		}
	}
	return NoMarble, false
}

// AllHome reports whether all of p's marbles are in the home row.
func (g *Game) AllHome(p Player) bool {
	first := p.FirstMarble()
	for k := MarbleID(0); k < MarblesPerPlayer; k++ {
		if !IsHomeIndex(g.Marbles[first+k].Index) {
			return false
		}
	}
	return true
}

// ---------------------------------------------------------------------------
// Snapshot Undo (Save / Restore)
// ---------------------------------------------------------------------------

// Snapshot is a complete value-copy of Game.
type Snapshot Game

// Save returns a snapshot of the current game state.
func (g *Game) Save() Snapshot { return Snapshot(*g) }

// Restore replaces the game state with the given snapshot.
func (g *Game) Restore(s Snapshot) { *g = Game(s) }
