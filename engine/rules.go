package engine

// Rules holds configurable game settings.
type Rules struct {
	Human       [NumPlayers]bool // seats that take input instead of ComputerMove
	FirstPlayer Player           // NoPlayer = random
	MaxTurns    uint16           // 0 = unlimited; otherwise GameEnd with no winner

	PowerUps          bool // enable the power economy
	EvadeCaptureTurns uint8
	SelfJumpTurns     uint8
	CapturePower      float32
	DraftWeights      [NumPowerUpKinds]uint8 // indexed by PowerUp-1

	EmptyTurnReroll uint8 // reroll threshold on consecutive empty turns; 0 = off
}

// MaxPower is the bar level at which a power-up is drafted.
const MaxPower float32 = 10

// DefaultRules returns the standard Vexation rules with four computer seats.
func DefaultRules() Rules {
	return Rules{
		FirstPlayer:       NoPlayer,
		PowerUps:          true,
		EvadeCaptureTurns: 4,
		SelfJumpTurns:     4,
		CapturePower:      3,
		DraftWeights:      [NumPowerUpKinds]uint8{4, 4, 3, 2, 1, 1},
		EmptyTurnReroll:   2,
	}
}

// draftTotal returns the sum of the draft weights.
func (r *Rules) draftTotal() uint64 {
	var n uint64
	for _, w := range r.DraftWeights {
		n += uint64(w)
	}
	return n
}
