package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"proctab/internal/config"
	"proctab/internal/theme"
	"proctab/internal/util/text"
)

// NewOutput wraps w with the color profile mode asks for.
func NewOutput(w io.Writer, mode config.ColorMode) *termenv.Output {
	switch mode {
	case config.ColorDisable:
		return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	case config.ColorAlways:
		return termenv.NewOutput(w, termenv.WithProfile(termenv.ANSI256))
	}
	return termenv.NewOutput(w)
}

func headerColor(th theme.Theme) string {
	if th == theme.Light {
		return "4"
	}
	return "12"
}

// Print writes the visible rows once. Lines are cut to maxWidth display
// columns when it is positive; styling escapes do not count.
func (t *Table) Print(out *termenv.Output, th theme.Theme, maxWidth int) error {
	widths := t.Widths()
	header := strings.Join(t.Header(widths), " ")
	styled := out.String(header).Bold().Foreground(out.Color(headerColor(th))).String()
	if err := writeLine(out, styled, maxWidth); err != nil {
		return err
	}
	for _, pid := range t.pids {
		if err := writeLine(out, strings.Join(t.Row(pid, widths), " "), maxWidth); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, line string, maxWidth int) error {
	if maxWidth > 0 {
		cut := text.Truncate(line, maxWidth)
		if cut != line && strings.ContainsRune(cut, '\x1b') {
			cut += "\x1b[0m"
		}
		line = cut
	}
	line = strings.TrimRight(line, " ")
	_, err := fmt.Fprintln(w, line)
	return err
}
