// Package text measures, truncates and aligns table cells. Widths are
// terminal columns: wide runes count two and SGR escape sequences count zero.
package text

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"
)

type Align int

const (
	Left Align = iota
	Right
	Center
)

func (a Align) String() string {
	switch a {
	case Right:
		return "right"
	case Center:
		return "center"
	default:
		return "left"
	}
}

// ParseAlign accepts left|right|center, case-insensitively.
func ParseAlign(s string) (Align, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return Left, nil
	case "right":
		return Right, nil
	case "center", "centre":
		return Center, nil
	}
	return Left, fmt.Errorf("unknown align %q", s)
}

const esc = '\x1b'

// scanner is the escape-sequence automaton shared by Width and Truncate.
// An ESC switches to inEscape; everything up to and including the
// terminating 'm' belongs to the sequence.
type scanner struct {
	inEscape bool
}

// step reports the display width contributed by r; escape bytes yield 0.
func (sc *scanner) step(r rune) (width int, escape bool) {
	if r == esc {
		sc.inEscape = true
	}
	if sc.inEscape {
		if r == 'm' {
			sc.inEscape = false
		}
		return 0, true
	}
	return runewidth.RuneWidth(r), false
}

// Width returns the display width of s, ignoring escape sequences.
func Width(s string) int {
	var sc scanner
	total := 0
	for _, r := range s {
		w, _ := sc.step(r)
		total += w
	}
	return total
}

// Truncate cuts s so its display width does not exceed width. Escape
// sequences before the cut are kept intact. When s already fits it is
// returned as is.
func Truncate(s string, width int) string {
	var sc scanner
	total := 0
	for i, r := range s {
		w, escape := sc.step(r)
		if escape {
			continue
		}
		total += w
		if total > width {
			return s[:i]
		}
	}
	return s
}

// Adjust pads s with spaces to width according to align, or truncates it
// when it is wider. Center puts the odd leftover space on the right.
func Adjust(s string, width int, align Align) string {
	w := Width(s)
	if w > width {
		return Truncate(s, width)
	}
	space := width - w
	switch align {
	case Right:
		return strings.Repeat(" ", space) + s
	case Center:
		left := space / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", space-left)
	default:
		return s + strings.Repeat(" ", space)
	}
}
