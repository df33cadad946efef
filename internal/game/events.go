// internal/game/events.go
package game

import (
	"github.com/google/uuid"
	"github.com/jason-s-yu/vexation/engine"
	"github.com/sirupsen/logrus"
)

// GameEventType is the type of an event broadcast to session listeners.
type GameEventType string

const (
	EventGameStart            GameEventType = "game_start"
	EventGamePhase            GameEventType = "game_phase"
	EventPlayerTurn           GameEventType = "game_player_turn"
	EventPlayerDiceRoll       GameEventType = "player_dice_roll"
	EventPlayerMarbleMove     GameEventType = "player_marble_move"
	EventPlayerMarbleCapture  GameEventType = "player_marble_capture"
	EventPlayerHighlight      GameEventType = "player_highlight"
	EventPlayerPowerBar       GameEventType = "player_power_bar"
	EventPlayerPowerDrafted   GameEventType = "player_power_up_drafted"
	EventPlayerPowerActivated GameEventType = "player_power_up_activated"
	EventActionRejected       GameEventType = "private_action_rejected"
	EventGameEnd              GameEventType = "game_end"
)

// EventUser identifies the participant an event concerns.
type EventUser struct {
	ID    uuid.UUID `json:"id"`
	Color string    `json:"color,omitempty"`
}

// GameEvent is the envelope broadcast for every session event.
type GameEvent struct {
	Type    GameEventType          `json:"type"`
	User    *EventUser             `json:"user,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	State   *PublicState           `json:"state,omitempty"`
}

// flushSignals drains the engine queue and broadcasts each signal as a
// GameEvent.
// Assumes lock is held by caller.
func (g *VexationGame) flushSignals() {
	if n := g.Engine.DroppedSignals(); n > 0 {
		g.log.WithFields(logrus.Fields{
			"dropped": n,
			"turn":    g.Engine.TurnNumber,
		}).Warn("Engine signal queue overflowed.")
	}
	g.signals = g.Engine.DrainSignals(g.signals[:0])
	for _, s := range g.signals {
		g.handleSignal(s)
	}
}

// Assumes lock is held by caller.
func (g *VexationGame) handleSignal(s engine.Signal) {
	user := g.eventUser(s.Player)
	switch s.Kind {
	case engine.SignalPhase:
		if s.Phase == engine.PhaseDiceRoll && int(s.Turn) != g.TurnID {
			g.TurnID = int(s.Turn)
			g.captor, g.captive = engine.NoMarble, engine.NoMarble
			g.fireEvent(GameEvent{
				Type:    EventPlayerTurn,
				User:    user,
				Payload: map[string]interface{}{"turn": g.TurnID},
			})
		}
		g.fireEvent(GameEvent{
			Type:    EventGamePhase,
			User:    user,
			Payload: map[string]interface{}{"phase": s.Phase.String(), "turn": int(s.Turn)},
		})
	case engine.SignalDiceRolled:
		g.fireEvent(GameEvent{
			Type:    EventPlayerDiceRoll,
			User:    user,
			Payload: map[string]interface{}{"dice": []int{int(s.Dice[0]), int(s.Dice[1])}, "doubles": s.Dice[0] == s.Dice[1]},
		})
	case engine.SignalMarbleMoving:
		g.captor, g.captive = engine.NoMarble, engine.NoMarble
		g.fireEvent(GameEvent{
			Type: EventPlayerMarbleMove,
			User: user,
			Payload: map[string]interface{}{
				"marble": int(s.Marble),
				"index":  int(s.Index),
				"x":      s.At.X,
				"y":      s.At.Y,
			},
		})
	case engine.SignalMarbleCaptured:
		g.captor, g.captive = s.Other, s.Marble
		g.fireEvent(GameEvent{
			Type: EventPlayerMarbleCapture,
			User: user,
			Payload: map[string]interface{}{
				"marble": int(s.Marble),
				"by":     int(s.Other),
				"x":      s.At.X,
				"y":      s.At.Y,
			},
		})
	case engine.SignalHighlight:
		payload := map[string]interface{}{"marble": nil, "destinations": []int{}}
		if s.Marble != engine.NoMarble {
			payload["marble"] = int(s.Marble)
			payload["destinations"] = g.destinations(s.Marble)
		}
		g.fireEvent(GameEvent{Type: EventPlayerHighlight, User: user, Payload: payload})
	case engine.SignalPowerDrafted:
		g.fireEvent(GameEvent{
			Type:    EventPlayerPowerDrafted,
			User:    user,
			Payload: map[string]interface{}{"powerUp": s.PowerUp.String(), "slot": int(s.Slot)},
		})
	case engine.SignalPowerActivated:
		g.fireEvent(GameEvent{
			Type:    EventPlayerPowerActivated,
			User:    user,
			Payload: map[string]interface{}{"powerUp": s.PowerUp.String(), "slot": int(s.Slot)},
		})
	case engine.SignalPowerBar:
		g.fireEvent(GameEvent{
			Type:    EventPlayerPowerBar,
			User:    user,
			Payload: map[string]interface{}{"power": s.Power, "count": int(s.Count), "max": engine.MaxPower},
		})
	case engine.SignalGameEnd:
		// Reported by endGame once the drive loop sees PhaseGameEnd.
	}
}

func (g *VexationGame) eventUser(p engine.Player) *EventUser {
	if p >= engine.NumPlayers {
		return nil
	}
	return &EventUser{ID: g.Seats[p].ID, Color: p.String()}
}

// destinations lists the legal destinations of marble m in its owner's frame.
// Assumes lock is held by caller.
func (g *VexationGame) destinations(m engine.MarbleID) []int {
	out := []int{}
	for _, mv := range g.Engine.MovesFor(m) {
		out = append(out, int(mv.Destination))
	}
	return out
}
