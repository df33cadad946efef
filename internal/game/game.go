// internal/game/game.go
package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jason-s-yu/vexation/engine"
	"github.com/sirupsen/logrus"
)

var (
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrComputerSeat   = errors.New("seat is computer controlled")
	ErrNotStarted     = errors.New("game not started")
	ErrAlreadyStarted = errors.New("game already started")
)

// OnGameEndFunc is called once when a game finishes. winner is nil when the
// turn limit ended the game.
type OnGameEndFunc func(gameID uuid.UUID, winner *Seat, turns int)

// Seat binds a player color to a participant.
type Seat struct {
	ID    uuid.UUID     `json:"id"`
	Name  string        `json:"name"`
	Color engine.Player `json:"-"`
	Human bool          `json:"human"`
}

// VexationGame is one running game: the engine plus the session plumbing
// around it (computer pacing, animation gating, events).
type VexationGame struct {
	ID     uuid.UUID
	Seats  [engine.NumPlayers]Seat
	Engine engine.Game

	ComputerDelay     time.Duration // pause before each computer decision; 0 plays synchronously
	AnimationDelay    time.Duration // simulated animation length when ExternalAnimation is off
	ExternalAnimation bool          // wait for AnimationFinished instead of completing moves itself
	ComputerPowerUps  bool          // computer seats spend drafted power-ups

	TurnID      int // engine turn number of the last announced turn
	actionIndex int
	waitID      int // guards scheduled callbacks against stale firing
	powerTurn   uint16

	Started  bool
	GameOver bool

	// Last processed capture, for render flags.
	captor  engine.MarbleID
	captive engine.MarbleID

	Mu          sync.Mutex
	BroadcastFn func(ev GameEvent)
	OnGameEnd   OnGameEndFunc

	log     *logrus.Entry
	timer   *time.Timer
	signals []engine.Signal
}

// Option configures a VexationGame.
type Option func(*VexationGame)

// WithSeed fixes the engine seed. Without it the game is seeded from the
// clock.
func WithSeed(seed uint64) Option {
	return func(g *VexationGame) { g.Engine = engine.NewGame(seed, g.Engine.Rules) }
}

// WithLogger routes session logs through l.
func WithLogger(l *logrus.Logger) Option {
	return func(g *VexationGame) { g.log = l.WithField("game", g.ID) }
}

// WithComputerDelay paces computer decisions.
func WithComputerDelay(d time.Duration) Option {
	return func(g *VexationGame) { g.ComputerDelay = d }
}

// WithAnimationDelay simulates animation time between a move and its
// processing.
func WithAnimationDelay(d time.Duration) Option {
	return func(g *VexationGame) { g.AnimationDelay = d }
}

// WithExternalAnimation makes every move wait for AnimationFinished.
func WithExternalAnimation() Option {
	return func(g *VexationGame) { g.ExternalAnimation = true }
}

// WithComputerPowerUps lets computer seats spend drafted power-ups.
func WithComputerPowerUps(on bool) Option {
	return func(g *VexationGame) { g.ComputerPowerUps = on }
}

// NewVexationGame creates a game with one seat per color; human seats follow
// rules.Human.
func NewVexationGame(rules engine.Rules, opts ...Option) *VexationGame {
	id, _ := uuid.NewRandom()
	g := &VexationGame{
		ID:      id,
		Engine:  engine.NewGame(uint64(time.Now().UnixNano()), rules),
		captor:  engine.NoMarble,
		captive: engine.NoMarble,
		log:     logrus.StandardLogger().WithField("game", id),
	}
	for p := engine.Red; p <= engine.Yellow; p++ {
		kind := "computer"
		if rules.Human[p] {
			kind = "human"
		}
		g.Seats[p] = Seat{
			ID:    uuid.New(),
			Name:  fmt.Sprintf("%s (%s)", p, kind),
			Color: p,
			Human: rules.Human[p],
		}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Start begins play. With zero delays an all-computer game runs to
// completion before Start returns.
func (g *VexationGame) Start() error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if g.Started {
		return ErrAlreadyStarted
	}
	g.Started = true
	g.log.WithField("first", g.Engine.CurrentPlayer().Next()).Info("Game started.")
	g.logAction(uuid.Nil, string(EventGameStart), nil)
	g.fireEvent(GameEvent{Type: EventGameStart, State: g.statePtr()})
	g.drive()
	return nil
}

// Stop cancels any pending computer or animation callback.
func (g *VexationGame) Stop() {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	g.stopTimer()
	g.waitID++
}

// SeatByID returns the seat of a participant.
func (g *VexationGame) SeatByID(playerID uuid.UUID) (Seat, bool) {
	for _, s := range g.Seats {
		if s.ID == playerID {
			return s, true
		}
	}
	return Seat{}, false
}

// ---------------------------------------------------------------------------
// Driving the engine
// ---------------------------------------------------------------------------

// drive advances the engine until it waits on a human, an external
// animation, a timer, or the end of the game.
// Assumes lock is held by caller.
func (g *VexationGame) drive() {
	for !g.GameOver {
		g.Engine.Advance()
		g.flushSignals()

		switch g.Engine.Phase {
		case engine.PhaseGameEnd:
			g.endGame()
			return
		case engine.PhaseHumanTurn:
			return
		case engine.PhaseComputerTurn:
			if g.ComputerDelay > 0 {
				g.schedule(g.ComputerDelay, g.computerTurn)
				return
			}
			if !g.computerTurn() {
				return
			}
		case engine.PhaseWaitForAnimation:
			if g.ExternalAnimation {
				return
			}
			if g.AnimationDelay > 0 {
				g.schedule(g.AnimationDelay, g.completeAnimation)
				return
			}
			if !g.completeAnimation() {
				return
			}
		}
	}
}

// schedule runs fn and resumes driving after d, unless the game moved on.
// Assumes lock is held by caller.
func (g *VexationGame) schedule(d time.Duration, fn func() bool) {
	g.stopTimer()
	g.waitID++
	expected := g.waitID
	g.timer = time.AfterFunc(d, func() {
		g.Mu.Lock()
		defer g.Mu.Unlock()

		if g.GameOver || g.waitID != expected {
			return
		}
		if fn() {
			g.drive()
		}
	})
}

func (g *VexationGame) stopTimer() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// computerTurn makes one computer decision. It reports whether the engine
// moved on.
// Assumes lock is held by caller.
func (g *VexationGame) computerTurn() bool {
	p := g.Engine.CurrentPlayer()
	seat := g.Seats[p]
	if g.ComputerPowerUps && g.powerTurn != g.Engine.TurnNumber {
		g.powerTurn = g.Engine.TurnNumber
		used, err := g.Engine.ComputerPowerUp()
		if err != nil {
			g.log.WithError(err).WithField("player", p).Error("Computer power-up failed.")
			return false
		}
		if used {
			g.logAction(seat.ID, "computer_power_up", nil)
			g.flushSignals()
			return true
		}
	}
	if err := g.Engine.ComputerMove(); err != nil {
		g.log.WithError(err).WithField("player", p).Error("Computer move failed.")
		return false
	}
	mv := g.Engine.Turn.Moves.Moves[g.Engine.Turn.Selected]
	g.logAction(seat.ID, "computer_move", moveFields(mv))
	g.flushSignals()
	return true
}

// completeAnimation finishes the pending move's animation.
// Assumes lock is held by caller.
func (g *VexationGame) completeAnimation() bool {
	if err := g.Engine.AnimationDone(g.Engine.Turn.LastMoved); err != nil {
		g.log.WithError(err).Error("Animation completion rejected.")
		return false
	}
	return true
}

// endGame finalizes a finished game.
// Assumes lock is held by caller.
func (g *VexationGame) endGame() {
	if g.GameOver {
		return
	}
	g.GameOver = true
	g.stopTimer()

	turns := int(g.Engine.TurnNumber)
	var winner *Seat
	ev := GameEvent{
		Type:    EventGameEnd,
		Payload: map[string]interface{}{"turns": turns},
		State:   g.statePtr(),
	}
	if w := g.Engine.Winner; w != engine.NoPlayer {
		s := g.Seats[w]
		winner = &s
		ev.User = &EventUser{ID: s.ID, Color: w.String()}
		ev.Payload["winner"] = w.String()
	}
	g.fireEvent(ev)
	g.logAction(uuid.Nil, string(EventGameEnd), ev.Payload)

	if g.OnGameEnd != nil {
		g.OnGameEnd(g.ID, winner, turns)
	}
	entry := g.log.WithField("turns", turns)
	if winner != nil {
		entry.WithField("winner", winner.Color).Info("Game ended.")
	} else {
		entry.Warn("Game ended on the turn limit without a winner.")
	}
}

// ---------------------------------------------------------------------------
// Human commands
// ---------------------------------------------------------------------------

// humanSeat validates that playerID sits at a human seat of a running game.
// Assumes lock is held by caller.
func (g *VexationGame) humanSeat(playerID uuid.UUID) (Seat, error) {
	if !g.Started {
		return Seat{}, ErrNotStarted
	}
	if g.GameOver {
		return Seat{}, engine.ErrGameOver
	}
	s, ok := g.SeatByID(playerID)
	if !ok {
		return Seat{}, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if !s.Human {
		return Seat{}, fmt.Errorf("%w: %s", ErrComputerSeat, s.Color)
	}
	return s, nil
}

// apply runs a human command and resumes play. Rejections are logged and
// reported privately as EventActionRejected.
// Assumes lock is held by caller.
func (g *VexationGame) apply(playerID uuid.UUID, action string, payload map[string]interface{}, cmd func(s Seat) error) error {
	s, err := g.humanSeat(playerID)
	if err == nil {
		if s.Color != g.Engine.CurrentPlayer() {
			err = fmt.Errorf("%w: %s", engine.ErrNotCurrentPlayer, s.Color)
		} else {
			err = cmd(s)
		}
	}
	if err != nil {
		g.log.WithError(err).WithFields(logrus.Fields{
			"player": playerID,
			"action": action,
			"phase":  g.Engine.Phase,
		}).Warn("Action rejected.")
		if payload == nil {
			payload = map[string]interface{}{}
		}
		payload["action"] = action
		payload["error"] = err.Error()
		g.fireEvent(GameEvent{Type: EventActionRejected, User: &EventUser{ID: playerID}, Payload: payload})
		return err
	}
	g.logAction(playerID, action, payload)
	g.flushSignals()
	g.drive()
	return nil
}

// HandleClickMarble selects one of the player's marbles.
func (g *VexationGame) HandleClickMarble(playerID uuid.UUID, marble engine.MarbleID) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.apply(playerID, "click_marble", map[string]interface{}{"marble": int(marble)}, func(Seat) error {
		return g.Engine.ClickMarble(marble)
	})
}

// HandleClickIndex handles a click on a board cell, given as an index in
// the player's own frame.
func (g *VexationGame) HandleClickIndex(playerID uuid.UUID, index uint8) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.apply(playerID, "click_index", map[string]interface{}{"index": int(index)}, func(Seat) error {
		return g.Engine.ClickIndex(index)
	})
}

// HandleSelectMove commits the n-th legal move.
func (g *VexationGame) HandleSelectMove(playerID uuid.UUID, n int) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.apply(playerID, "select_move", map[string]interface{}{"move": n}, func(Seat) error {
		return g.Engine.SelectMove(n)
	})
}

// HandlePowerUp spends the power-up in the player's slot.
func (g *VexationGame) HandlePowerUp(playerID uuid.UUID, slot int) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.apply(playerID, "power_up", map[string]interface{}{"slot": slot}, func(s Seat) error {
		return g.Engine.UsePowerUp(s.Color, slot)
	})
}

// HandleDone ends the player's selection for this roll.
func (g *VexationGame) HandleDone(playerID uuid.UUID) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.apply(playerID, "done", nil, func(Seat) error {
		return g.Engine.Done()
	})
}

// AnimationFinished reports that the renderer finished moving marble.
func (g *VexationGame) AnimationFinished(marble engine.MarbleID) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if !g.Started {
		return ErrNotStarted
	}
	if err := g.Engine.AnimationDone(marble); err != nil {
		g.log.WithError(err).WithField("marble", marble).Debug("Ignoring animation signal.")
		return err
	}
	g.drive()
	return nil
}

// ---------------------------------------------------------------------------
// Events
// ---------------------------------------------------------------------------

// fireEvent broadcasts an event via BroadcastFn.
// Assumes lock is held by caller.
func (g *VexationGame) fireEvent(ev GameEvent) {
	if g.BroadcastFn != nil {
		g.BroadcastFn(ev)
	}
}

// logAction records an applied action in the session history.
// Assumes lock is held by caller.
func (g *VexationGame) logAction(actorID uuid.UUID, actionType string, payload map[string]interface{}) {
	g.actionIndex++
	if !g.log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	g.log.WithFields(logrus.Fields{
		"index":  g.actionIndex,
		"actor":  actorID,
		"action": actionType,
		"turn":   g.Engine.TurnNumber,
		"phase":  g.Engine.Phase,
	}).WithFields(logrus.Fields(payload)).Debug("Action.")
}

// ActionCount returns the number of actions recorded so far.
func (g *VexationGame) ActionCount() int {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.actionIndex
}

func moveFields(mv engine.Move) map[string]interface{} {
	return map[string]interface{}{
		"marble": int(mv.Marble),
		"dest":   int(mv.Destination),
		"which":  mv.Which.String(),
		"source": mv.Source.String(),
	}
}

// LegalMoves returns the moves available to the player on turn.
func (g *VexationGame) LegalMoves() []engine.Move {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return append([]engine.Move(nil), g.Engine.LegalMoves()...)
}

// Current returns the seat on turn and the engine phase.
func (g *VexationGame) Current() (Seat, engine.Phase) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.Seats[g.Engine.CurrentPlayer()], g.Engine.Phase
}
