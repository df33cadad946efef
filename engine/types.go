package engine

// Player is one of the four marble colors, in fixed turn order.
type Player uint8

const (
	Red Player = iota
	Green
	Blue
	Yellow
)

// NoPlayer marks the absence of a player (no winner yet).
const NoPlayer Player = 0xFF

var playerNames = [NumPlayers]string{"red", "green", "blue", "yellow"}

func (p Player) String() string {
	if p >= NumPlayers {
		return "none"
	}
	return playerNames[p]
}

// Next returns the player after p in turn order.
func (p Player) Next() Player { return (p + 1) % NumPlayers }

// Prev returns the player before p in turn order.
func (p Player) Prev() Player { return (p + NumPlayers - 1) % NumPlayers }

// FirstMarble returns the id of p's first marble; its five marbles are
// contiguous.
func (p Player) FirstMarble() MarbleID { return MarbleID(uint8(p) * MarblesPerPlayer) }

// ParsePlayer maps a color name to a Player.
func ParsePlayer(s string) (Player, bool) {
	for i, name := range playerNames {
		if s == name {
			return Player(i), true
		}
	}
	return NoPlayer, false
}

// MarbleID indexes Game.Marbles. Marble k of player p has id p*5+k.
type MarbleID uint8

// NoMarble marks the absence of a marble (nothing selected, nothing moved).
const NoMarble MarbleID = 0xFF

// Owner returns the player the marble belongs to.
func (m MarbleID) Owner() Player {
	if m >= NumMarbles {
		panic("engine: marble id out of range")
	}
	return Player(uint8(m) / MarblesPerPlayer)
}

// Slot returns the marble's base slot (0–4) within its owner's set.
func (m MarbleID) Slot() uint8 { return uint8(m) % MarblesPerPlayer }

// Marble is a single playing piece. Index and PrevIndex are in the owner's
// local frame.
type Marble struct {
	Index     uint8
	PrevIndex uint8
}

// ---------------------------------------------------------------------------
// Phases
// ---------------------------------------------------------------------------

// Phase is a state of the turn controller.
type Phase uint8

const (
	PhaseNextPlayer Phase = iota
	PhaseDiceRoll
	PhaseTurnSetup
	PhaseHumanTurn
	PhaseComputerTurn
	PhaseWaitForAnimation
	PhaseProcessMove
	PhaseEndTurn
	PhaseGameEnd
)

var phaseNames = [...]string{
	"next_player", "dice_roll", "turn_setup", "human_turn", "computer_turn",
	"wait_for_animation", "process_move", "end_turn", "game_end",
}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// AwaitsInput reports whether the phase only advances on an external command.
func (p Phase) AwaitsInput() bool {
	switch p {
	case PhaseHumanTurn, PhaseComputerTurn, PhaseWaitForAnimation, PhaseGameEnd:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Moves
// ---------------------------------------------------------------------------

// WhichDie records which dice a move consumes.
type WhichDie uint8

const (
	DieOne WhichDie = iota
	DieTwo
	DieBoth
	DieNeither // power-up sourced
)

var whichNames = [...]string{"one", "two", "both", "neither"}

func (w WhichDie) String() string {
	if int(w) < len(whichNames) {
		return whichNames[w]
	}
	return "unknown"
}

// MoveSource records what produced a move.
type MoveSource uint8

const (
	SourceDice MoveSource = iota
	SourceHomeRun
	SourceCaptureNearest
)

var sourceNames = [...]string{"dice", "home_run", "capture_nearest"}

func (s MoveSource) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return "unknown"
}

const (
	// MaxPathLen covers the longest dice path: (6+6)×2 cells.
	MaxPathLen = 24
	// MaxMoves bounds a legal move list.
	MaxMoves = 96
)

// Move is a candidate marble move. Path lists the cells entered in order;
// the last entry is Destination. Power-up moves have a one-cell path.
type Move struct {
	Marble      MarbleID
	Destination uint8
	Which       WhichDie
	Source      MoveSource
	PathLen     uint8
	Path        [MaxPathLen]uint8
}

// Cells returns the move's path as a slice.
func (m *Move) Cells() []uint8 { return m.Path[:m.PathLen] }

// sameAs reports whether two moves are the same candidate.
func (m *Move) sameAs(o *Move) bool {
	return m.Marble == o.Marble && m.Which == o.Which && m.Source == o.Source &&
		m.PathLen == o.PathLen && m.Path == o.Path
}

// less orders moves by marble, then path, then die, then source.
func (m *Move) less(o *Move) bool {
	if m.Marble != o.Marble {
		return m.Marble < o.Marble
	}
	n := m.PathLen
	if o.PathLen < n {
		n = o.PathLen
	}
	for i := uint8(0); i < n; i++ {
		if m.Path[i] != o.Path[i] {
			return m.Path[i] < o.Path[i]
		}
	}
	if m.PathLen != o.PathLen {
		return m.PathLen < o.PathLen
	}
	if m.Which != o.Which {
		return m.Which < o.Which
	}
	return m.Source < o.Source
}

// MoveList is a fixed-capacity, duplicate-free list of moves.
type MoveList struct {
	Moves [MaxMoves]Move
	Len   uint8
}

// Slice returns the populated portion of the list.
func (l *MoveList) Slice() []Move { return l.Moves[:l.Len] }

func (l *MoveList) add(m Move) {
	for i := uint8(0); i < l.Len; i++ {
		if l.Moves[i].sameAs(&m) {
			return
		}
	}
	if int(l.Len) >= MaxMoves {
		panic("engine: move list overflow")
	}
	l.Moves[l.Len] = m
	l.Len++
}

// sort is an insertion sort; lists are short and this keeps the list
// allocation free.
func (l *MoveList) sort() {
	for i := uint8(1); i < l.Len; i++ {
		for j := i; j > 0 && l.Moves[j].less(&l.Moves[j-1]); j-- {
			l.Moves[j], l.Moves[j-1] = l.Moves[j-1], l.Moves[j]
		}
	}
}

// ---------------------------------------------------------------------------
// Power-ups and per-player progress
// ---------------------------------------------------------------------------

// PowerUp is a drafted power-up kind. PowerUpNone marks an empty slot.
type PowerUp uint8

const (
	PowerUpNone PowerUp = iota
	PowerUpRollAgain
	PowerUpDoubleDice
	PowerUpEvadeCapture
	PowerUpSelfJump
	PowerUpCaptureNearest
	PowerUpHomeRun
)

// NumPowerUpKinds is the number of draftable kinds.
const NumPowerUpKinds = 6

var powerUpNames = [...]string{
	"none", "roll_again", "double_dice", "evade_capture", "self_jump",
	"capture_nearest", "home_run",
}

func (p PowerUp) String() string {
	if int(p) < len(powerUpNames) {
		return powerUpNames[p]
	}
	return "unknown"
}

// PowerUpStatus holds a player's active power-up effects.
type PowerUpStatus struct {
	EvadeCaptureTurns uint8
	SelfJumpTurns     uint8
	CaptureNearest    bool // one-shot
	HomeRun           bool // one-shot
}

// PowerBar is a player's accrued power and the number of power-ups it has
// granted that are still held.
type PowerBar struct {
	Power float32
	Count uint8
}

// PlayerProgress is per-player state that survives across turns.
type PlayerProgress struct {
	TurnMoveCount         uint16
	ConsecutiveEmptyTurns uint8
	PowerUps              [MaxPowerUps]PowerUp
	Status                PowerUpStatus
	Bar                   PowerBar

	// Counters for reporting; they never affect play.
	Moves     uint16
	Captures  uint16
	Captured  uint16
	Drafted   uint16
	Activated uint16
}

// HeldPowerUps returns the number of occupied slots.
func (p *PlayerProgress) HeldPowerUps() int {
	n := 0
	for _, pu := range p.PowerUps {
		if pu != PowerUpNone {
			n++
		}
	}
	return n
}

// ---------------------------------------------------------------------------
// Turn context
// ---------------------------------------------------------------------------

// TurnContext is the transient state of the turn in progress. It is rebuilt
// when a player's turn begins and cleared when it ends.
type TurnContext struct {
	Player         Player
	Dice           Dice
	Moves          MoveList
	Selected       int8 // index into Moves of the committed move, -1 if none
	SelectedMarble MarbleID
	LastMoved      MarbleID
	LastSource     MoveSource
	LastCaptured   MarbleID
}

func newTurnContext(p Player) TurnContext {
	return TurnContext{
		Player:         p,
		Dice:           Dice{Multiplier: 1},
		Selected:       -1,
		SelectedMarble: NoMarble,
		LastMoved:      NoMarble,
		LastCaptured:   NoMarble,
	}
}
