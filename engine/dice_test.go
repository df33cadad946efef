package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDice(one, two uint8) Dice {
	var d Dice
	d.set(one, two)
	return d
}

func TestDiceValues(t *testing.T) {
	d := newDice(2, 5)
	assert.False(t, d.Doubles)
	assert.Equal(t, []DieValue{{2, DieOne}, {5, DieTwo}, {7, DieBoth}}, d.Values())

	d.Use(DieOne)
	assert.True(t, d.DidUseAny())
	assert.False(t, d.IsEmpty())
	assert.Equal(t, []DieValue{{5, DieTwo}}, d.Values())

	d.Use(DieTwo)
	assert.True(t, d.IsEmpty())
	assert.Empty(t, d.Values())
}

func TestDiceDoubles(t *testing.T) {
	d := newDice(4, 4)
	assert.True(t, d.Doubles)
	d.Use(DieBoth)
	assert.True(t, d.IsEmpty())
	assert.True(t, d.Doubles, "doubles is a property of the roll")
}

func TestDiceMultiplier(t *testing.T) {
	d := newDice(3, 4)
	d.Multiplier = 2
	assert.Equal(t, []DieValue{{6, DieOne}, {8, DieTwo}, {14, DieBoth}}, d.Values())

	d.Use(DieOne)
	assert.Equal(t, uint8(2), d.Multiplier, "kept until both dice are used")
	d.Use(DieTwo)
	assert.Equal(t, uint8(1), d.Multiplier)
}

func TestDiceMultiplierSurvivesReroll(t *testing.T) {
	d := newDice(3, 4)
	d.Multiplier = 2
	d.set(1, 1)
	assert.Equal(t, uint8(2), d.Multiplier)
	assert.False(t, d.DidUseAny())
}

func TestDiceUnrolled(t *testing.T) {
	d := Dice{Multiplier: 1}
	assert.True(t, d.IsEmpty())
	assert.Empty(t, d.Values())
	d.Use(DieNeither)
	assert.False(t, d.DidUseAny())
}

func TestRollDieRange(t *testing.T) {
	g := newTestGame(t)
	var seen [7]bool
	for i := 0; i < 600; i++ {
		v := g.rollDie()
		require.GreaterOrEqual(t, v, uint8(1))
		require.LessOrEqual(t, v, uint8(6))
		seen[v] = true
	}
	for v := 1; v <= 6; v++ {
		assert.True(t, seen[v], "face %d never rolled", v)
	}
}
