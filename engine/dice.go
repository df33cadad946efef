package engine

// Dice is the pair of dice for the turn in progress. A face of 0 means the
// die has not been rolled.
type Dice struct {
	Faces      [2]uint8
	Used       [2]bool
	Doubles    bool
	Multiplier uint8
}

// DieValue is one usable movement value and the dice it consumes.
type DieValue struct {
	Value uint8
	Which WhichDie
}

// set loads a fresh roll. The multiplier carries over until both dice of a
// roll have been used.
func (d *Dice) set(one, two uint8) {
	d.Faces = [2]uint8{one, two}
	d.Used = [2]bool{}
	d.Doubles = one == two
	if d.Multiplier == 0 {
		d.Multiplier = 1
	}
}

// One returns the first face and whether it is still usable.
func (d *Dice) One() (uint8, bool) { return d.Faces[0], d.Faces[0] != 0 && !d.Used[0] }

// Two returns the second face and whether it is still usable.
func (d *Dice) Two() (uint8, bool) { return d.Faces[1], d.Faces[1] != 0 && !d.Used[1] }

// Use marks the dice consumed by a move.
func (d *Dice) Use(which WhichDie) {
	switch which {
	case DieOne:
		d.Used[0] = true
	case DieTwo:
		d.Used[1] = true
	case DieBoth:
		d.Used = [2]bool{true, true}
	default:
		return
	}
	if d.Used[0] && d.Used[1] {
		d.Multiplier = 1
	}
}

// DidUseAny reports whether either die has been consumed.
func (d *Dice) DidUseAny() bool { return d.Used[0] || d.Used[1] }

// IsEmpty reports whether no die is left to move with.
func (d *Dice) IsEmpty() bool {
	_, a := d.One()
	_, b := d.Two()
	return !a && !b
}

// Values returns the movement values available: each unused face and, when
// both are unused, their sum. All values are scaled by the multiplier.
func (d *Dice) Values() []DieValue {
	var buf [3]DieValue
	vals := buf[:0]
	one, okOne := d.One()
	two, okTwo := d.Two()
	if okOne {
		vals = append(vals, DieValue{Value: one * d.Multiplier, Which: DieOne})
	}
	if okTwo {
		vals = append(vals, DieValue{Value: two * d.Multiplier, Which: DieTwo})
	}
	if okOne && okTwo {
		vals = append(vals, DieValue{Value: (one + two) * d.Multiplier, Which: DieBoth})
	}
	return vals
}
