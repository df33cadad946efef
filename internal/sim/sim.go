// internal/sim/sim.go
package sim

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/vexation/engine"
	"github.com/jason-s-yu/vexation/internal/game"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxTurns bounds simulated games that set no turn limit.
const DefaultMaxTurns = 5000

// Options configures a batch of all-computer games.
type Options struct {
	Games            int
	Workers          int
	Seed             uint64 // game i uses Seed+i
	Rules            engine.Rules
	ComputerPowerUps bool
	Logger           *logrus.Logger
}

// Report aggregates the outcome of a batch.
type Report struct {
	Games      int
	Wins       [engine.NumPlayers]int
	Stalled    int // ended on the turn limit
	TotalTurns int
	Captures   int
	Drafted    int
	Activated  int
	Elapsed    time.Duration
}

// MeanTurns returns the average game length in turns.
func (r Report) MeanTurns() float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.TotalTurns) / float64(r.Games)
}

// WinRate returns p's share of finished games.
func (r Report) WinRate(p engine.Player) float64 {
	if r.Games == 0 {
		return 0
	}
	return float64(r.Wins[p]) / float64(r.Games)
}

func (r Report) String() string {
	s := fmt.Sprintf("%d games in %s, mean %.1f turns, %d stalled\n",
		r.Games, r.Elapsed.Round(time.Millisecond), r.MeanTurns(), r.Stalled)
	for p := engine.Red; p <= engine.Yellow; p++ {
		s += fmt.Sprintf("  %-6s %6d wins (%5.1f%%)\n", p, r.Wins[p], 100*r.WinRate(p))
	}
	s += fmt.Sprintf("captures %d, power-ups drafted %d, activated %d", r.Captures, r.Drafted, r.Activated)
	return s
}

// result is the outcome of one game.
type result struct {
	winner    engine.Player
	turns     int
	captures  int
	drafted   int
	activated int
}

// Run plays opts.Games games on at most opts.Workers goroutines. On
// cancellation it stops scheduling games and returns the partial report
// with the context error.
func Run(ctx context.Context, opts Options) (Report, error) {
	if opts.Games <= 0 {
		return Report{}, fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	rules := opts.Rules
	for p := range rules.Human {
		rules.Human[p] = false
	}
	if rules.MaxTurns == 0 {
		rules.MaxTurns = DefaultMaxTurns
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	gameLog := quietLogger(log)

	start := time.Now()
	var (
		mu  sync.Mutex
		rep Report
	)
	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)

	for i := 0; i < opts.Games; i++ {
		if gctx.Err() != nil {
			break
		}
		seed := opts.Seed + uint64(i)
		eg.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := playOne(seed, rules, opts.ComputerPowerUps, gameLog)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			mu.Lock()
			defer mu.Unlock()
			rep.add(res)
			return nil
		})
	}
	err := eg.Wait()
	if err == nil {
		err = ctx.Err()
	}
	rep.Elapsed = time.Since(start)

	log.WithFields(logrus.Fields{
		"games":   rep.Games,
		"workers": opts.Workers,
		"elapsed": rep.Elapsed,
	}).Info("Simulation finished.")
	return rep, err
}

// quietLogger keeps per-game info logs out of batch output unless debug
// logging is on.
func quietLogger(l *logrus.Logger) *logrus.Logger {
	if l.GetLevel() >= logrus.DebugLevel || l.GetLevel() <= logrus.WarnLevel {
		return l
	}
	q := logrus.New()
	q.SetOutput(l.Out)
	q.SetFormatter(l.Formatter)
	q.SetLevel(logrus.WarnLevel)
	return q
}

func (r *Report) add(res result) {
	r.Games++
	if res.winner == engine.NoPlayer {
		r.Stalled++
	} else {
		r.Wins[res.winner]++
	}
	r.TotalTurns += res.turns
	r.Captures += res.captures
	r.Drafted += res.drafted
	r.Activated += res.activated
}

// playOne runs a single game synchronously through a session.
func playOne(seed uint64, rules engine.Rules, powerUps bool, log *logrus.Logger) (result, error) {
	g := game.NewVexationGame(rules,
		game.WithSeed(seed),
		game.WithLogger(log),
		game.WithComputerPowerUps(powerUps),
	)
	res := result{winner: engine.NoPlayer}
	ended := false
	g.OnGameEnd = func(_ uuid.UUID, winner *game.Seat, turns int) {
		ended = true
		res.turns = turns
		if winner != nil {
			res.winner = winner.Color
		}
	}
	if err := g.Start(); err != nil {
		return res, err
	}
	if !ended {
		return res, fmt.Errorf("game stopped in phase %s", g.Engine.Phase)
	}
	for p := engine.Red; p <= engine.Yellow; p++ {
		prog := &g.Engine.Progress[p]
		res.captures += int(prog.Captures)
		res.drafted += int(prog.Drafted)
		res.activated += int(prog.Activated)
	}
	log.WithFields(logrus.Fields{
		"seed":   seed,
		"winner": res.winner,
		"turns":  res.turns,
	}).Debug("Game simulated.")
	return res, nil
}
