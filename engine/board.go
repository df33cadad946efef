package engine

// Track indices, in a player's local frame.
const (
	StartIndex      uint8 = 0
	CenterExitIndex uint8 = 41
	LastTrackIndex  uint8 = 47
	FirstHomeIndex  uint8 = 48
	LastHomeIndex   uint8 = 52
	CenterIndex     uint8 = 53
	BaseIndex       uint8 = 54

	// TrackLen is the length of the shared outer track.
	TrackLen = 48
)

// CenterEntrances are the cells from which one more step reaches Center.
var CenterEntrances = [3]uint8{5, 17, 29}

// IsHomeIndex reports whether i is in a player's home row.
func IsHomeIndex(i uint8) bool { return i >= FirstHomeIndex && i <= LastHomeIndex }

// IsTrackIndex reports whether i is on the shared outer track.
func IsTrackIndex(i uint8) bool { return i <= LastTrackIndex }

func isCenterEntrance(i uint8) bool {
	for _, e := range CenterEntrances {
		if i == e {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Geometry
// ---------------------------------------------------------------------------

// Coord is a board cell in tile units, Red's frame.
type Coord struct {
	Col, Row int8
}

// Point is a position in world tile units.
type Point struct {
	X, Y float32
}

// Board lists the cell of every track index 0..53 in Red's frame. Other
// players use the same table rotated by RotateCoords.
var Board = [CenterIndex + 1]Coord{
	{-6, 1}, {-5, 1}, {-4, 1}, {-3, 1}, {-2, 1}, {-1, 1}, {-1, 2}, {-1, 3},
	{-1, 4}, {-1, 5}, {-1, 6}, {0, 6}, {1, 6}, {1, 5}, {1, 4}, {1, 3},
	{1, 2}, {1, 1}, {2, 1}, {3, 1}, {4, 1}, {5, 1}, {6, 1}, {6, 0},
	{6, -1}, {5, -1}, {4, -1}, {3, -1}, {2, -1}, {1, -1}, {1, -2}, {1, -3},
	{1, -4}, {1, -5}, {1, -6}, {0, -6}, {-1, -6}, {-1, -5}, {-1, -4}, {-1, -3},
	{-1, -2}, {-1, -1}, {-2, -1}, {-3, -1}, {-4, -1}, {-5, -1}, {-6, -1}, {-6, 0},
	{-5, 0}, {-4, 0}, {-3, 0}, {-2, 0}, {-1, 0}, {0, 0},
}

// baseSlots are Red's five base positions.
var baseSlots = [MarblesPerPlayer]Point{
	{-3.5, 3}, {-4.5, 3}, {-3, 4}, {-4, 4}, {-5, 4},
}

// RotateCoords rotates a point from Red's frame into p's quarter of the
// board. Red is the identity; each later player turns a further 90°.
func (p Player) RotateCoords(pt Point) Point {
	switch p {
	case Green:
		return Point{X: pt.Y, Y: -pt.X}
	case Blue:
		return Point{X: -pt.X, Y: -pt.Y}
	case Yellow:
		return Point{X: -pt.Y, Y: pt.X}
	}
	return pt
}

// World returns the world position of local index i for player p. BASE has
// no single cell; use BaseOrigin.
func World(p Player, i uint8) Point {
	if i > CenterIndex {
		panic("engine: World called with base index")
	}
	c := Board[i]
	return p.RotateCoords(Point{X: float32(c.Col), Y: float32(c.Row)})
}

// BaseOrigin returns the world position of a marble's base slot.
func BaseOrigin(m MarbleID) Point {
	return m.Owner().RotateCoords(baseSlots[m.Slot()])
}

// ---------------------------------------------------------------------------
// Cross-player index equivalence
// ---------------------------------------------------------------------------

// ShiftIndex maps local index i of player from into player to's frame.
// BASE and CENTER map to themselves. Home-row indices are private to a
// player and must be filtered out by the caller.
func ShiftIndex(i uint8, from, to Player) uint8 {
	if i == BaseIndex || i == CenterIndex {
		return i
	}
	if !IsTrackIndex(i) {
		panic("engine: ShiftIndex called with home-row index")
	}
	steps := (int(NumPlayers-from)%NumPlayers + int(to)) * 36
	return uint8((int(i) + steps) % TrackLen)
}

// IsSameIndex reports whether index i1 of p1 and index i2 of p2 are the
// same physical cell.
func IsSameIndex(p1 Player, i1 uint8, p2 Player, i2 uint8) bool {
	c1, c2 := i1 == CenterIndex, i2 == CenterIndex
	if c1 || c2 {
		return c1 && c2
	}
	return ShiftIndex(i1, p1, p2) == i2
}
