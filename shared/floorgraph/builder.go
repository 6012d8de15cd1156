package floorgraph

import "fmt"

// Builder assembles a graph at world-build time. The first bad link is kept and
// reported by Build.
type Builder struct {
	floors []Floor
	err    error
}

func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a floor and returns its id.
func (b *Builder) Add(f Floor) FloorID {
	b.floors = append(b.floors, f)
	return FloorID(len(b.floors) - 1)
}

// LinkWalking connects left's right end with right's left end in both directions.
func (b *Builder) LinkWalking(left, right FloorID) *Builder {
	if b.check(left) && b.check(right) {
		b.floors[left].RightWalking = right
		b.floors[right].LeftWalking = left
	}
	return b
}

// LinkDigging connects two floors through their facing sides in both directions.
func (b *Builder) LinkDigging(left, right FloorID) *Builder {
	if b.check(left) && b.check(right) {
		b.floors[left].RightDigging = right
		b.floors[right].LeftDigging = left
	}
	return b
}

// AddJump adds a one-way jump route.
func (b *Builder) AddJump(from, to FloorID, launchX float64) *Builder {
	if b.check(from) && b.check(to) {
		b.floors[from].Jumps = append(b.floors[from].Jumps, JumpRoute{Target: to, LaunchX: launchX})
	}
	return b
}

// Build validates the links and returns the graph.
func (b *Builder) Build() (*Graph, error) {
	if b.err != nil {
		return nil, b.err
	}
	return New(b.floors)
}

func (b *Builder) check(id FloorID) bool {
	if id >= 0 && int(id) < len(b.floors) {
		return true
	}
	if b.err == nil {
		b.err = fmt.Errorf("link to unknown floor: %w: %d (builder has %d floors)",
			ErrInvalidFloorID, id, len(b.floors))
	}
	return false
}
