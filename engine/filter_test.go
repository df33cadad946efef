package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func destinations(moves []Move) []uint8 {
	var out []uint8
	for _, mv := range moves {
		out = append(out, mv.Destination)
	}
	return out
}

func TestFilterRejectsPassingOwnMarble(t *testing.T) {
	g := newTestGame(t)
	a := place(&g, Red, 0, 10)
	place(&g, Red, 1, 12)
	d := newDice(3, 4)
	l := g.generateMoves(Red, &d)
	assert.Empty(t, movesOf(&l, a))
}

func TestFilterSelfJumpAllowsPassing(t *testing.T) {
	g := newTestGame(t)
	a := place(&g, Red, 0, 10)
	place(&g, Red, 1, 12)
	g.Progress[Red].Status.SelfJumpTurns = 3
	d := newDice(3, 4)
	l := g.generateMoves(Red, &d)
	assert.ElementsMatch(t, []uint8{13, 14, 17}, destinations(movesOf(&l, a)))
}

func TestFilterNeverLandsOnOwnMarble(t *testing.T) {
	g := newTestGame(t)
	a := place(&g, Red, 0, 10)
	place(&g, Red, 1, 12)
	g.Progress[Red].Status.SelfJumpTurns = 3
	d := newDice(2, 5)
	l := g.generateMoves(Red, &d)
	assert.ElementsMatch(t, []uint8{15, 17}, destinations(movesOf(&l, a)))
}

func TestFilterHomeRowBlocking(t *testing.T) {
	g := newTestGame(t)
	a := place(&g, Red, 0, 46)
	place(&g, Red, 1, 49)
	d := newDice(2, 5)
	l := g.generateMoves(Red, &d)
	assert.Equal(t, []uint8{48}, destinations(movesOf(&l, a)))
}

func TestFilterOwnMarbleOnCenter(t *testing.T) {
	g := newTestGame(t)
	a := place(&g, Red, 0, 3)
	place(&g, Red, 1, CenterIndex)
	d := newDice(3, 2)
	l := g.generateMoves(Red, &d)
	assert.NotContains(t, destinations(movesOf(&l, a)), CenterIndex)
}

func TestFilterEvasionImmunity(t *testing.T) {
	g := newTestGame(t)
	a := place(&g, Red, 0, 10)
	placeAt(&g, Green, 0, 13)
	d := newDice(3, 5)

	l := g.generateMoves(Red, &d)
	assert.Contains(t, destinations(movesOf(&l, a)), uint8(13), "capture is legal")

	g.Progress[Green].Status.EvadeCaptureTurns = 1
	l = g.generateMoves(Red, &d)
	assert.NotContains(t, destinations(movesOf(&l, a)), uint8(13))
	assert.Contains(t, destinations(movesOf(&l, a)), uint8(18), "passing an evader is fine")
}

func TestFilterEvasionAtCenter(t *testing.T) {
	g := newTestGame(t)
	a := place(&g, Red, 0, 3)
	place(&g, Yellow, 0, CenterIndex)
	g.Progress[Yellow].Status.EvadeCaptureTurns = 2
	d := newDice(3, 2)
	l := g.generateMoves(Red, &d)
	assert.NotContains(t, destinations(movesOf(&l, a)), CenterIndex)
}

func TestFilterIgnoresOpponentHomeRows(t *testing.T) {
	g := newTestGame(t)
	a := place(&g, Red, 0, 45)
	place(&g, Green, 0, 50)
	g.Progress[Green].Status.EvadeCaptureTurns = 2
	d := newDice(5, 6)
	l := g.generateMoves(Red, &d)
	assert.Contains(t, destinations(movesOf(&l, a)), uint8(50))
}
