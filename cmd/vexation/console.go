// cmd/vexation/console.go
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jason-s-yu/vexation/engine"
	"github.com/jason-s-yu/vexation/internal/game"
	"github.com/sirupsen/logrus"
)

// playConsole runs a game with human seats driven by text commands.
// Computer seats move synchronously between commands.
func playConsole(in io.Reader, out io.Writer, rules engine.Rules, seed uint64, events bool, log *logrus.Logger) error {
	g := game.NewVexationGame(rules, game.WithSeed(seed), game.WithLogger(log))
	if events {
		g.BroadcastFn = func(ev game.GameEvent) {
			ev.State = nil
			b, err := json.Marshal(ev)
			if err != nil {
				log.WithError(err).Warn("Failed to encode event.")
				return
			}
			fmt.Fprintf(out, "  event %s\n", b)
		}
	}
	if err := g.Start(); err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for {
		st := g.PublicState()
		printState(out, st)
		if st.GameOver {
			return nil
		}
		seat, phase := g.Current()
		if phase != engine.PhaseHumanTurn {
			return fmt.Errorf("game stalled in phase %s", phase)
		}
		printMoves(out, g.LegalMoves())
		fmt.Fprintf(out, "%s> ", seat.Color)

		if !sc.Scan() {
			return sc.Err()
		}
		quit, err := runCommand(g, seat, sc.Text())
		if quit {
			fmt.Fprintln(out, "bye")
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

// runCommand applies one console command for seat.
func runCommand(g *game.VexationGame, seat game.Seat, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	arg := func() (int, error) {
		if len(fields) < 2 {
			return 0, fmt.Errorf("%s needs a number", fields[0])
		}
		return strconv.Atoi(fields[1])
	}

	switch fields[0] {
	case "quit", "q":
		return true, nil
	case "done", "d":
		return false, g.HandleDone(seat.ID)
	case "marble", "m":
		n, err := arg()
		if err != nil {
			return false, err
		}
		if n < 0 || n >= engine.NumMarbles {
			return false, fmt.Errorf("%w: %d", engine.ErrUnknownMarble, n)
		}
		return false, g.HandleClickMarble(seat.ID, engine.MarbleID(n))
	case "index", "i":
		n, err := arg()
		if err != nil {
			return false, err
		}
		if n < 0 || n > int(engine.CenterIndex) {
			return false, fmt.Errorf("index %d out of range", n)
		}
		return false, g.HandleClickIndex(seat.ID, uint8(n))
	case "move", "mv":
		n, err := arg()
		if err != nil {
			return false, err
		}
		return false, g.HandleSelectMove(seat.ID, n)
	case "power", "p":
		n, err := arg()
		if err != nil {
			return false, err
		}
		return false, g.HandlePowerUp(seat.ID, n)
	}
	return false, fmt.Errorf("unknown command %q (marble, index, move, power, done, quit)", fields[0])
}

func printState(out io.Writer, st game.PublicState) {
	fmt.Fprintf(out, "\nturn %d  %s  phase %s", st.Turn, st.Current, st.Phase)
	if st.Dice[0] != 0 {
		fmt.Fprintf(out, "  dice %d%s %d%s", st.Dice[0], used(st.DiceUsed[0]), st.Dice[1], used(st.DiceUsed[1]))
		if st.Multiplier > 1 {
			fmt.Fprintf(out, " x%d", st.Multiplier)
		}
	}
	fmt.Fprintln(out)

	for _, p := range st.Players {
		var cells []string
		for _, m := range st.Marbles {
			if m.Owner != p.Color {
				continue
			}
			switch {
			case m.InBase:
				cells = append(cells, fmt.Sprintf("%d:base", m.ID))
			case m.Index == int(engine.CenterIndex):
				cells = append(cells, fmt.Sprintf("%d:center", m.ID))
			default:
				cells = append(cells, fmt.Sprintf("%d:%d", m.ID, m.Index))
			}
		}
		kind := "cpu"
		if p.Human {
			kind = "you"
		}
		fmt.Fprintf(out, "  %-6s %-3s %s  power %.1f/%.0f %v\n",
			p.Color, kind, strings.Join(cells, " "), p.Power, engine.MaxPower, p.PowerUps)
	}
	if st.GameOver {
		if st.Winner != "" {
			fmt.Fprintf(out, "%s wins after %d turns\n", st.Winner, st.Turn)
		} else {
			fmt.Fprintf(out, "turn limit reached after %d turns\n", st.Turn)
		}
	}
}

func used(u bool) string {
	if u {
		return "*"
	}
	return ""
}

func printMoves(out io.Writer, moves []engine.Move) {
	for n, mv := range moves {
		fmt.Fprintf(out, "  [%d] marble %d -> %d (%s", n, mv.Marble, mv.Destination, mv.Which)
		if mv.Source != engine.SourceDice {
			fmt.Fprintf(out, ", %s", mv.Source)
		}
		fmt.Fprintln(out, ")")
	}
}
