package snake

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-snake/components"
)

// none marks a missing link
const none = -1

// Sentinel errors for chain invariant violations
var (
	ErrEmpty     = errors.New("snake: body not initialized")
	ErrCorrupt   = errors.New("snake: corrupted chain")
	ErrArenaFull = errors.New("snake: node arena exhausted")
	ErrBadLayout = errors.New("snake: invalid starting layout")
)

// Node is one body segment stored in the arena
// Dir is the direction of travel out of this cell toward the segment ahead;
// for the head it is the direction of the last executed move
type Node struct {
	Pos components.Position
	Dir components.Direction

	ahead  int // Toward the head, none for the head
	behind int // Toward the tail, none for the tail
}

// Body is the snake chain held in a fixed-capacity arena addressed by index
// Movement reuses the tail node as the new head, so a step never allocates
type Body struct {
	nodes  []Node
	head   int
	tail   int
	length int
}

// New creates an empty body able to hold capacity segments
func New(capacity int) *Body {
	return &Body{
		nodes: make([]Node, 0, capacity),
		head:  none,
		tail:  none,
	}
}

// Lay resets the body to a straight line of length segments with the head at head,
// every segment facing dir and the rest trailing away from it
func (b *Body) Lay(head components.Position, dir components.Direction, length int) error {
	if length < 1 || length > cap(b.nodes) {
		return fmt.Errorf("%w: length %d, capacity %d", ErrBadLayout, length, cap(b.nodes))
	}

	b.nodes = b.nodes[:0]
	b.head, b.tail, b.length = none, none, 0

	pos := head
	back := dir.Opposite()
	for i := 0; i < length; i++ {
		b.appendTail(pos, dir)
		pos = pos.Move(back)
	}
	return nil
}

// Len returns the number of live segments
func (b *Body) Len() int {
	return b.length
}

// Cap returns the arena capacity
func (b *Body) Cap() int {
	return cap(b.nodes)
}

// Head returns the leading segment
func (b *Body) Head() Node {
	b.mustBeLive()
	return b.nodes[b.head]
}

// Tail returns the trailing segment
func (b *Body) Tail() Node {
	b.mustBeLive()
	return b.nodes[b.tail]
}

// Heading returns the direction of the last executed move
func (b *Body) Heading() components.Direction {
	return b.Head().Dir
}

// Advance moves the snake one square: the tail node is detached, repositioned to `to`
// and promoted to head, while the old head becomes an ordinary body segment facing dir
// Returns the vacated cell and the direction the old tail was facing
// O(1)
func (b *Body) Advance(to components.Position, dir components.Direction) (components.Position, components.Direction) {
	b.mustBeLive()

	t := b.tail
	vacated, vacatedDir := b.nodes[t].Pos, b.nodes[t].Dir

	if b.length == 1 {
		b.nodes[t].Pos = to
		b.nodes[t].Dir = dir
		return vacated, vacatedDir
	}

	h := b.head
	newTail := b.nodes[t].ahead

	b.nodes[newTail].behind = none
	b.tail = newTail

	b.nodes[h].Dir = dir
	b.nodes[h].ahead = t

	b.nodes[t].Pos = to
	b.nodes[t].Dir = dir
	b.nodes[t].ahead = none
	b.nodes[t].behind = h
	b.head = t

	return vacated, vacatedDir
}

// DropTail removes the trailing segment from the chain and returns its position
// Used when the repositioned tail collides and is taken out of play
func (b *Body) DropTail() components.Position {
	b.mustBeLive()

	t := b.tail
	pos := b.nodes[t].Pos
	if b.length == 1 {
		b.head, b.tail = none, none
	} else {
		b.tail = b.nodes[t].ahead
		b.nodes[b.tail].behind = none
	}
	b.nodes[t].ahead, b.nodes[t].behind = none, none
	b.length--
	return pos
}

// Grow inserts a new segment behind the current tail
// O(1), panics when the arena is exhausted
func (b *Body) Grow(pos components.Position, dir components.Direction) {
	b.mustBeLive()
	if len(b.nodes) == cap(b.nodes) {
		panic(fmt.Errorf("%w: capacity %d", ErrArenaFull, cap(b.nodes)))
	}
	b.appendTail(pos, dir)
}

// Walk visits segments from head to tail until fn returns false
func (b *Body) Walk(fn func(n Node) bool) {
	for i, seen := b.head, 0; i != none && seen < b.length; i, seen = b.nodes[i].behind, seen+1 {
		if !fn(b.nodes[i]) {
			return
		}
	}
}

// Validate walks the chain in both directions and checks it against the recorded length
func (b *Body) Validate() error {
	if b.length == 0 {
		if b.head != none || b.tail != none {
			return fmt.Errorf("%w: empty body with dangling ends", ErrCorrupt)
		}
		return nil
	}

	count, last := 0, none
	for i := b.head; i != none; i = b.nodes[i].behind {
		count++
		if count > b.length {
			return fmt.Errorf("%w: walk from head exceeds length %d", ErrCorrupt, b.length)
		}
		if b.nodes[i].ahead != last {
			return fmt.Errorf("%w: node %d ahead link %d, want %d", ErrCorrupt, i, b.nodes[i].ahead, last)
		}
		last = i
	}
	if count != b.length {
		return fmt.Errorf("%w: walked %d segments, length %d", ErrCorrupt, count, b.length)
	}
	if last != b.tail {
		return fmt.Errorf("%w: walk ended at %d, tail is %d", ErrCorrupt, last, b.tail)
	}
	return nil
}

func (b *Body) appendTail(pos components.Position, dir components.Direction) {
	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{Pos: pos, Dir: dir, ahead: b.tail, behind: none})
	if b.tail != none {
		b.nodes[b.tail].behind = idx
	} else {
		b.head = idx
	}
	b.tail = idx
	b.length++
}

func (b *Body) mustBeLive() {
	if b.length == 0 {
		panic(ErrEmpty)
	}
}
