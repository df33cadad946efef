// internal/game/state.go
package game

import (
	"github.com/jason-s-yu/vexation/engine"
)

// MarbleState is the render view of one marble.
type MarbleState struct {
	ID        int     `json:"id"`
	Owner     string  `json:"owner"`
	Index     int     `json:"index"`
	InBase    bool    `json:"inBase"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	Capturing bool    `json:"capturing,omitempty"`
	Captured  bool    `json:"captured,omitempty"`
	Evading   bool    `json:"evading,omitempty"`
	Selected  bool    `json:"selected,omitempty"`
}

// PlayerState is the public view of one seat.
type PlayerState struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Color       string   `json:"color"`
	Human       bool     `json:"human"`
	Power       float32  `json:"power"`
	PowerCount  int      `json:"powerCount"`
	PowerUps    []string `json:"powerUps"`
	EvadeTurns  int      `json:"evadeTurns,omitempty"`
	JumpTurns   int      `json:"selfJumpTurns,omitempty"`
	Captures    int      `json:"captures"`
	Captured    int      `json:"captured"`
	Moves       int      `json:"moves"`
	MarblesHome int      `json:"marblesHome"`
}

// PublicState is the full public snapshot of a game. Nothing in Vexation
// is hidden, so every listener receives the same view.
type PublicState struct {
	GameID       string        `json:"gameId"`
	Turn         int           `json:"turn"`
	Phase        string        `json:"phase"`
	Current      string        `json:"currentPlayer"`
	Dice         []int         `json:"dice"`
	DiceUsed     []bool        `json:"diceUsed"`
	Multiplier   int           `json:"multiplier"`
	Selected     *int          `json:"selectedMarble,omitempty"`
	Destinations []int         `json:"destinations"`
	Marbles      []MarbleState `json:"marbles"`
	Players      []PlayerState `json:"players"`
	Winner       string        `json:"winner,omitempty"`
	GameOver     bool          `json:"gameOver"`
}

// PublicState returns a snapshot of the game for rendering and sync.
func (g *VexationGame) PublicState() PublicState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.buildState()
}

// Assumes lock is held by caller.
func (g *VexationGame) statePtr() *PublicState {
	st := g.buildState()
	return &st
}

// buildState assembles the public snapshot.
// Assumes lock is held by caller.
func (g *VexationGame) buildState() PublicState {
	e := &g.Engine
	tc := &e.Turn
	st := PublicState{
		GameID:       g.ID.String(),
		Turn:         int(e.TurnNumber),
		Phase:        e.Phase.String(),
		Current:      tc.Player.String(),
		Dice:         []int{int(tc.Dice.Faces[0]), int(tc.Dice.Faces[1])},
		DiceUsed:     []bool{tc.Dice.Used[0], tc.Dice.Used[1]},
		Multiplier:   int(tc.Dice.Multiplier),
		Destinations: []int{},
		GameOver:     e.IsOver(),
	}
	if e.Phase.AwaitsInput() && tc.SelectedMarble != engine.NoMarble {
		m := int(tc.SelectedMarble)
		st.Selected = &m
		st.Destinations = g.destinations(tc.SelectedMarble)
	}
	if e.IsOver() && e.Winner != engine.NoPlayer {
		st.Winner = e.Winner.String()
	}

	st.Marbles = make([]MarbleState, 0, engine.NumMarbles)
	for id := engine.MarbleID(0); id < engine.NumMarbles; id++ {
		m := e.Marbles[id]
		owner := id.Owner()
		ms := MarbleState{
			ID:        int(id),
			Owner:     owner.String(),
			Index:     int(m.Index),
			InBase:    m.Index == engine.BaseIndex,
			Capturing: id == g.captor,
			Captured:  id == g.captive,
			Evading:   e.IsEvading(owner),
			Selected:  id == tc.SelectedMarble,
		}
		var at engine.Point
		if ms.InBase {
			at = engine.BaseOrigin(id)
		} else {
			at = engine.World(owner, m.Index)
		}
		ms.X, ms.Y = at.X, at.Y
		st.Marbles = append(st.Marbles, ms)
	}

	st.Players = make([]PlayerState, 0, engine.NumPlayers)
	for p := engine.Red; p <= engine.Yellow; p++ {
		prog := &e.Progress[p]
		seat := g.Seats[p]
		ps := PlayerState{
			ID:         seat.ID.String(),
			Name:       seat.Name,
			Color:      p.String(),
			Human:      seat.Human,
			Power:      prog.Bar.Power,
			PowerCount: int(prog.Bar.Count),
			PowerUps:   []string{},
			EvadeTurns: int(prog.Status.EvadeCaptureTurns),
			JumpTurns:  int(prog.Status.SelfJumpTurns),
			Captures:   int(prog.Captures),
			Captured:   int(prog.Captured),
			Moves:      int(prog.Moves),
		}
		for _, pu := range prog.PowerUps {
			if pu != engine.PowerUpNone {
				ps.PowerUps = append(ps.PowerUps, pu.String())
			}
		}
		for k := engine.MarbleID(0); k < engine.MarblesPerPlayer; k++ {
			if engine.IsHomeIndex(e.Marbles[p.FirstMarble()+k].Index) {
				ps.MarblesHome++
			}
		}
		st.Players = append(st.Players, ps)
	}
	return st
}
