package snake

import "github.com/lixenwraith/vi-snake/components"

// SegmentKind distinguishes how a segment is drawn
type SegmentKind uint8

const (
	KindHead SegmentKind = iota
	KindBody
	KindTail
)

// Segment is a read-only view of one body segment for renderers
// Entry is the direction of travel into the cell (equal to Exit for the tail)
// Exit is the direction of travel out of the cell toward the segment ahead
type Segment struct {
	Pos   components.Position
	Kind  SegmentKind
	Entry components.Direction
	Exit  components.Direction
}

// Bends reports whether the path turns inside this segment
func (s Segment) Bends() bool {
	return s.Entry != s.Exit
}

// Segments copies the chain into views ordered head to tail
func (b *Body) Segments() []Segment {
	out := make([]Segment, 0, b.length)
	for i, seen := b.head, 0; i != none && seen < b.length; i, seen = b.nodes[i].behind, seen+1 {
		n := b.nodes[i]
		seg := Segment{Pos: n.Pos, Kind: KindBody, Entry: n.Dir, Exit: n.Dir}
		if n.behind != none {
			seg.Entry = b.nodes[n.behind].Dir
		}
		switch {
		case i == b.head:
			seg.Kind = KindHead
		case i == b.tail:
			seg.Kind = KindTail
		}
		out = append(out, seg)
	}
	return out
}
