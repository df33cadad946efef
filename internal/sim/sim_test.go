// internal/sim/sim_test.go
package sim

import (
	"context"
	"io"
	"testing"

	"github.com/jason-s-yu/vexation/engine"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRunPlaysEveryGame(t *testing.T) {
	rep, err := Run(context.Background(), Options{
		Games:   12,
		Workers: 4,
		Seed:    1,
		Rules:   engine.DefaultRules(),
		Logger:  quiet(),
	})
	require.NoError(t, err)
	assert.Equal(t, 12, rep.Games)

	wins := 0
	for _, w := range rep.Wins {
		wins += w
	}
	assert.Equal(t, rep.Games, wins+rep.Stalled)
	assert.Positive(t, rep.MeanTurns())
	assert.Positive(t, rep.Drafted)
	assert.Zero(t, rep.Activated, "computers hold power-ups unless enabled")
	assert.Contains(t, rep.String(), "12 games")
}

func TestRunIsDeterministic(t *testing.T) {
	opts := Options{Games: 6, Workers: 3, Seed: 99, Rules: engine.DefaultRules(), ComputerPowerUps: true, Logger: quiet()}
	a, err := Run(context.Background(), opts)
	require.NoError(t, err)
	opts.Workers = 1
	b, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, a.Wins, b.Wins)
	assert.Equal(t, a.TotalTurns, b.TotalTurns)
	assert.Equal(t, a.Captures, b.Captures)
	assert.Equal(t, a.Activated, b.Activated)
	assert.Positive(t, a.Activated)
}

func TestRunForcesComputerSeats(t *testing.T) {
	rules := engine.DefaultRules()
	rules.Human = [engine.NumPlayers]bool{true, true, true, true}
	rep, err := Run(context.Background(), Options{Games: 2, Workers: 2, Rules: rules, Logger: quiet()})
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Games)
}

func TestRunTurnLimit(t *testing.T) {
	rules := engine.DefaultRules()
	rules.MaxTurns = 10
	rep, err := Run(context.Background(), Options{Games: 3, Workers: 2, Rules: rules, Logger: quiet()})
	require.NoError(t, err)
	assert.Equal(t, 3, rep.Stalled)
	assert.Equal(t, 33, rep.TotalTurns)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := Run(ctx, Options{Games: 100, Workers: 2, Rules: engine.DefaultRules(), Logger: quiet()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, rep.Games, 100)
}

func TestRunRejectsEmptyBatch(t *testing.T) {
	_, err := Run(context.Background(), Options{})
	assert.Error(t, err)
}

func TestReportRates(t *testing.T) {
	r := Report{Games: 4, Wins: [engine.NumPlayers]int{2, 1, 1, 0}, TotalTurns: 400}
	assert.InDelta(t, 100, r.MeanTurns(), 1e-9)
	assert.InDelta(t, 0.5, r.WinRate(engine.Red), 1e-9)
	assert.Zero(t, Report{}.MeanTurns())
}
