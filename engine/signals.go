package engine

// SignalKind identifies an outbound engine notification.
type SignalKind uint8

const (
	SignalPhase          SignalKind = iota // Phase entered
	SignalDiceRolled                       // Dice
	SignalMarbleMoving                     // Marble moving to Index / At
	SignalMarbleCaptured                   // Marble sent to base by Other; At is its base origin
	SignalHighlight                        // Marble selected, or NoMarble to clear
	SignalPowerDrafted                     // PowerUp drafted into Slot
	SignalPowerActivated                   // PowerUp used from Slot
	SignalPowerBar                         // Power / Count changed
	SignalGameEnd                          // Player won, or NoPlayer on turn limit
)

var signalNames = [...]string{
	"phase", "dice_rolled", "marble_moving", "marble_captured", "highlight",
	"power_drafted", "power_activated", "power_bar", "game_end",
}

func (k SignalKind) String() string {
	if int(k) < len(signalNames) {
		return signalNames[k]
	}
	return "unknown"
}

// Signal is one notification for rendering and session collaborators.
type Signal struct {
	Kind    SignalKind
	Player  Player
	Phase   Phase
	Turn    uint16
	Marble  MarbleID
	Other   MarbleID
	Index   uint8
	At      Point
	Dice    [2]uint8
	PowerUp PowerUp
	Slot    uint8
	Power   float32
	Count   uint8
}

// MaxSignals bounds the outbound queue. When a caller never drains, the
// oldest highlight or power-bar signals go first, then the oldest of any
// kind.
const MaxSignals = 128

type signalQueue struct {
	buf     [MaxSignals]Signal
	n       uint8
	dropped uint16
}

// transient reports whether a signal only refreshes display state that a
// later signal or a state snapshot supersedes.
func (s *Signal) transient() bool {
	return s.Kind == SignalHighlight || s.Kind == SignalPowerBar
}

func (q *signalQueue) push(s Signal) {
	if s.Kind == SignalHighlight {
		// Only the latest highlight matters.
		out := uint8(0)
		for i := uint8(0); i < q.n; i++ {
			if q.buf[i].Kind != SignalHighlight {
				q.buf[out] = q.buf[i]
				out++
			}
		}
		q.n = out
	}
	if int(q.n) == MaxSignals {
		victim := uint8(0)
		for i := uint8(0); i < q.n; i++ {
			if q.buf[i].transient() {
				victim = i
				break
			}
		}
		copy(q.buf[victim:], q.buf[victim+1:q.n])
		q.n--
		q.dropped++
	}
	q.buf[q.n] = s
	q.n++
}

func (g *Game) emit(s Signal) { g.signals.push(s) }

// PendingSignals returns the number of queued signals.
func (g *Game) PendingSignals() int { return int(g.signals.n) }

// DrainSignals appends all queued signals to dst in order and empties the
// queue.
func (g *Game) DrainSignals(dst []Signal) []Signal {
	dst = append(dst, g.signals.buf[:g.signals.n]...)
	g.signals.n = 0
	return dst
}

// DroppedSignals returns how many signals were discarded on overflow since
// the last call, and resets the count.
func (g *Game) DroppedSignals() int {
	n := int(g.signals.dropped)
	g.signals.dropped = 0
	return n
}
