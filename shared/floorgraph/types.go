// Package floorgraph holds the terrain graph agents move across: quadrilateral floor
// segments connected by walking, digging and jump edges. Like leveldata it is pure data
// with no dependency on donburi or resolv.
package floorgraph

// Position2 is a point in world space. y grows upward.
type Position2 struct {
	X, Y float64
}

// FloorID indexes a Floor inside its owning Graph.
type FloorID int

// NoFloor marks an absent neighbor.
const NoFloor FloorID = -1

// Valid reports whether id refers to a neighbor at all (it says nothing about bounds).
func (id FloorID) Valid() bool {
	return id >= 0
}

// Side selects the left or right end of a floor.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) Opposite() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return "unknown"
}

// JumpRoute is an edge only reachable through the air, launched at LaunchX on the
// source floor.
type JumpRoute struct {
	Target  FloorID
	LaunchX float64
}

// Floor is a convex quad plus its outgoing connectivity.
type Floor struct {
	TopLeft     Position2
	TopRight    Position2
	BottomRight Position2
	BottomLeft  Position2

	LeftWalking  FloorID
	RightWalking FloorID
	LeftDigging  FloorID
	RightDigging FloorID
	Jumps        []JumpRoute
}

// NewFloor builds an unconnected floor from its corners in the order top-left,
// top-right, bottom-right, bottom-left.
func NewFloor(x1, y1, x2, y2, x3, y3, x4, y4 float64) Floor {
	return Floor{
		TopLeft:      Position2{X: x1, Y: y1},
		TopRight:     Position2{X: x2, Y: y2},
		BottomRight:  Position2{X: x3, Y: y3},
		BottomLeft:   Position2{X: x4, Y: y4},
		LeftWalking:  NoFloor,
		RightWalking: NoFloor,
		LeftDigging:  NoFloor,
		RightDigging: NoFloor,
	}
}

// WalkingNeighbor returns the floor reached by walking off the given bottom corner.
func (f Floor) WalkingNeighbor(side Side) (FloorID, bool) {
	id := f.RightWalking
	if side == Left {
		id = f.LeftWalking
	}
	return id, id.Valid()
}

// DiggingNeighbor returns the floor reached by digging through the given side.
func (f Floor) DiggingNeighbor(side Side) (FloorID, bool) {
	id := f.RightDigging
	if side == Left {
		id = f.LeftDigging
	}
	return id, id.Valid()
}

// EdgeKind tells how an edge is traversed.
type EdgeKind int

const (
	Walk EdgeKind = iota
	Dig
	Jump
)

func (k EdgeKind) String() string {
	switch k {
	case Walk:
		return "walk"
	case Dig:
		return "dig"
	case Jump:
		return "jump"
	}
	return "unknown"
}

// Edge is one outgoing connection of a floor. Side is set for walk and dig edges,
// LaunchX for jump edges.
type Edge struct {
	To      FloorID
	Kind    EdgeKind
	Side    Side
	LaunchX float64
}
