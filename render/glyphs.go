package render

import (
	"github.com/lixenwraith/vi-snake/components"
	"github.com/lixenwraith/vi-snake/snake"
)

// Cell glyphs are two runes wide; the left rune is the square's center and
// the right rune bridges to the square on the right

const (
	glyphFood = '●'
	glyphFill = '━'
)

var headGlyphs = [...]rune{
	components.DirRight: '▶',
	components.DirUp:    '▲',
	components.DirLeft:  '◀',
	components.DirDown:  '▼',
}

var tailGlyphs = [...]rune{
	components.DirRight: '╺',
	components.DirUp:    '╹',
	components.DirLeft:  '╸',
	components.DirDown:  '╻',
}

var flavorGlyphs = [...]rune{
	components.FlavorCheese:    '◆',
	components.FlavorBeer:      '¡',
	components.FlavorHamburger: '≡',
	components.FlavorPizza:     '▼',
	components.FlavorSushi:     '◎',
}

// sides is a bitset of the square edges a segment connects to
type sides uint8

func side(d components.Direction) sides {
	return 1 << d
}

// bodyGlyphs maps a pair of connected edges to a heavy box-drawing rune
var bodyGlyphs = map[sides]rune{
	side(components.DirUp) | side(components.DirDown):    '┃',
	side(components.DirLeft) | side(components.DirRight): '━',
	side(components.DirUp) | side(components.DirRight):   '┗',
	side(components.DirUp) | side(components.DirLeft):    '┛',
	side(components.DirDown) | side(components.DirRight): '┏',
	side(components.DirDown) | side(components.DirLeft):  '┓',
}

// SegmentGlyph returns the two runes drawn for one snake segment
func SegmentGlyph(seg snake.Segment) (rune, rune) {
	// Edge toward the segment ahead, and toward the segment behind
	ahead := side(seg.Exit)
	behind := side(seg.Entry.Opposite())

	var center rune
	var connected sides
	switch seg.Kind {
	case snake.KindHead:
		center = headGlyphs[seg.Exit]
		connected = behind
	case snake.KindTail:
		center = tailGlyphs[seg.Exit]
		connected = ahead
	default:
		connected = ahead | behind
		center = bodyGlyphs[connected]
	}

	right := ' '
	if connected&side(components.DirRight) != 0 {
		right = glyphFill
	}
	return center, right
}

// FlavorGlyph returns the rune drawn for a bonus flavor
func FlavorGlyph(f components.Flavor) rune {
	if int(f) < len(flavorGlyphs) {
		return flavorGlyphs[f]
	}
	return '?'
}
