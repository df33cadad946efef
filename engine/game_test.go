package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGame returns a four-computer game that starts with Red.
func newTestGame(t *testing.T) Game {
	t.Helper()
	r := DefaultRules()
	r.FirstPlayer = Red
	return NewGame(42, r)
}

// place puts marble k of p on local index i.
func place(g *Game, p Player, k uint8, i uint8) MarbleID {
	id := p.FirstMarble() + MarbleID(k)
	g.Marbles[id] = Marble{Index: i, PrevIndex: i}
	return id
}

// placeAt puts marble k of p on the cell Red calls redIndex.
func placeAt(g *Game, p Player, k uint8, redIndex uint8) MarbleID {
	return place(g, p, k, ShiftIndex(redIndex, Red, p))
}

// startTurn begins the next player's turn with a forced roll and runs to
// the first input phase.
func startTurn(t *testing.T, g *Game, one, two uint8) {
	t.Helper()
	g.ForceNextRoll(one, two)
	g.Advance()
}

// finishMove completes the animation of the pending move and processes it.
func finishMove(t *testing.T, g *Game) {
	t.Helper()
	require.Equal(t, PhaseWaitForAnimation, g.Phase)
	require.NoError(t, g.AnimationDone(g.Turn.LastMoved))
	require.True(t, g.Step(), "ProcessMove should run")
}

func drained(g *Game, kind SignalKind) []Signal {
	var out []Signal
	for _, s := range g.DrainSignals(nil) {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

func TestNewGame(t *testing.T) {
	g := newTestGame(t)

	assert.Equal(t, PhaseNextPlayer, g.Phase)
	assert.Equal(t, NoPlayer, g.Winner)
	assert.Equal(t, Yellow, g.CurrentPlayer(), "NextPlayer advances from the predecessor")
	for id := MarbleID(0); id < NumMarbles; id++ {
		m := g.Marble(id)
		assert.Equal(t, BaseIndex, m.Index)
		assert.Equal(t, BaseIndex, m.PrevIndex)
	}
	for p := Red; p <= Yellow; p++ {
		assert.Equal(t, 0, g.Progress[p].HeldPowerUps())
	}
}

func TestNewGameZeroSeed(t *testing.T) {
	g := NewGame(0, DefaultRules())
	assert.NotZero(t, g.RNG, "xorshift state must never be zero")
}

func TestNewGameRandomFirstPlayerIsDeterministic(t *testing.T) {
	a := NewGame(7, DefaultRules())
	b := NewGame(7, DefaultRules())
	assert.Equal(t, a.CurrentPlayer(), b.CurrentPlayer())
	assert.Less(t, uint8(a.CurrentPlayer()), uint8(NumPlayers))
}

func TestMarbleIDOwnership(t *testing.T) {
	assert.Equal(t, Red, MarbleID(4).Owner())
	assert.Equal(t, Green, MarbleID(5).Owner())
	assert.Equal(t, Yellow, MarbleID(19).Owner())
	assert.Equal(t, uint8(2), MarbleID(12).Slot())
	assert.Panics(t, func() { MarbleID(20).Owner() })
}

func TestParsePlayer(t *testing.T) {
	p, ok := ParsePlayer("blue")
	require.True(t, ok)
	assert.Equal(t, Blue, p)
	_, ok = ParsePlayer("purple")
	assert.False(t, ok)
	assert.Equal(t, "yellow", Yellow.String())
	assert.Equal(t, Red, Yellow.Next())
	assert.Equal(t, Yellow, Red.Prev())
}

func TestMarbleAt(t *testing.T) {
	g := newTestGame(t)
	green := placeAt(&g, Green, 0, 20)
	red := place(&g, Red, 0, 49)

	id, ok := g.MarbleAt(Red, 20)
	require.True(t, ok)
	assert.Equal(t, green, id)

	id, ok = g.MarbleAt(Red, 49)
	require.True(t, ok)
	assert.Equal(t, red, id)

	_, ok = g.MarbleAt(Green, 49)
	assert.False(t, ok, "home rows are private")
	_, ok = g.MarbleAt(Red, BaseIndex)
	assert.False(t, ok)
}

func TestSaveRestore(t *testing.T) {
	g := newTestGame(t)
	startTurn(t, &g, 1, 6)
	snap := g.Save()
	rng := g.RNG

	require.NoError(t, g.ComputerMove())
	require.Equal(t, PhaseWaitForAnimation, g.Phase)

	g.Restore(snap)
	assert.Equal(t, PhaseComputerTurn, g.Phase)
	assert.Equal(t, rng, g.RNG)
	for id := MarbleID(0); id < NumMarbles; id++ {
		assert.Equal(t, BaseIndex, g.Marbles[id].Index)
	}
}

func TestSameSeedSameGame(t *testing.T) {
	play := func() Game {
		g := NewGame(99, DefaultRules())
		for i := 0; i < 200 && !g.IsOver(); i++ {
			switch g.Advance() {
			case PhaseComputerTurn:
				require.NoError(t, g.ComputerMove())
			case PhaseWaitForAnimation:
				require.NoError(t, g.AnimationDone(g.Turn.LastMoved))
			}
		}
		return g
	}
	a, b := play(), play()
	assert.Equal(t, a.Marbles, b.Marbles)
	assert.Equal(t, a.Progress, b.Progress)
	assert.Equal(t, a.TurnNumber, b.TurnNumber)
}

func TestSignalQueue(t *testing.T) {
	g := newTestGame(t)
	g.Rules.Human[Red] = true
	startTurn(t, &g, 1, 6)
	g.DrainSignals(nil)

	require.NoError(t, g.ClickMarble(0))
	require.NoError(t, g.ClickMarble(1))
	require.NoError(t, g.ClickMarble(2))
	sigs := g.DrainSignals(nil)
	require.Len(t, sigs, 1, "highlights coalesce")
	assert.Equal(t, SignalHighlight, sigs[0].Kind)
	assert.Equal(t, MarbleID(2), sigs[0].Marble)
	assert.Zero(t, g.PendingSignals())
}

func TestSignalQueueDropsOldest(t *testing.T) {
	var q signalQueue
	for i := 0; i < MaxSignals+10; i++ {
		q.push(Signal{Kind: SignalPhase, Index: uint8(i)})
	}
	require.Equal(t, MaxSignals, int(q.n))
	assert.Equal(t, uint8(10), q.buf[0].Index)
	assert.Equal(t, uint16(10), q.dropped)
}

func TestSignalQueueKeepsDurableSignalsOnOverflow(t *testing.T) {
	g := newTestGame(t)
	g.DrainSignals(nil)
	g.emit(Signal{Kind: SignalGameEnd, Player: Red})
	g.emit(Signal{Kind: SignalMarbleCaptured, Marble: 7})
	g.emit(Signal{Kind: SignalPowerBar, Power: 1})
	g.emit(Signal{Kind: SignalPowerBar, Power: 2})
	for i := 0; i < MaxSignals-4; i++ {
		g.emit(Signal{Kind: SignalPhase, Index: uint8(i)})
	}
	require.Equal(t, MaxSignals, g.PendingSignals())

	g.emit(Signal{Kind: SignalPhase, Index: 200})
	g.emit(Signal{Kind: SignalPhase, Index: 201})
	assert.Equal(t, 2, g.DroppedSignals())
	assert.Zero(t, g.DroppedSignals(), "count resets")

	sigs := g.DrainSignals(nil)
	require.Len(t, sigs, MaxSignals)
	assert.Equal(t, SignalGameEnd, sigs[0].Kind)
	assert.Equal(t, SignalMarbleCaptured, sigs[1].Kind)
	assert.Equal(t, SignalPhase, sigs[2].Kind, "power-bar refreshes dropped first")
	assert.Equal(t, uint8(201), sigs[len(sigs)-1].Index)

	g.emit(Signal{Kind: SignalPhase})
	for i := 0; i < MaxSignals; i++ {
		g.emit(Signal{Kind: SignalDiceRolled, Index: uint8(i)})
	}
	sigs = g.DrainSignals(nil)
	assert.Equal(t, SignalDiceRolled, sigs[0].Kind, "oldest of any kind once nothing is transient")
	assert.Equal(t, 1, g.DroppedSignals())
}
