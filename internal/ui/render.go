package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"proctab/internal/util/logx"
	"proctab/internal/util/text"
)

func (m *Model) View() string {
	v := m.tbl.View() + "\n" + m.statusLine() + "\n" + m.promptLine()
	if m.modal == modalNone {
		return v
	}
	return lipgloss.Place(max(m.termWidth, 40), max(m.termHeight, 10), lipgloss.Center, lipgloss.Center, m.renderModal())
}

func (m *Model) statusLine() string {
	state := "Running"
	if m.paused {
		state = "Paused"
	}
	s := fmt.Sprintf("[%s] %d/%d processes | logic:%s | [?]=help", state, len(m.view.Pids()), m.view.Total(), m.view.Logic())
	if m.lastErr != nil {
		s += " | error: " + m.lastErr.Error()
	}
	if m.termWidth > 0 {
		s = text.Truncate(s, m.termWidth)
	}
	return m.styles.Status.Render(s)
}

func (m *Model) promptLine() string {
	if m.searching {
		return m.search.View()
	}
	if m.query != "" {
		return m.styles.Prompt.Render("/" + m.query)
	}
	return ""
}

func (m *Model) renderModal() string {
	var title, body string
	switch m.modal {
	case modalLogs:
		title = "Application logs"
		lines := logx.Lines()
		if n := m.termHeight - 8; n > 0 && len(lines) > n {
			lines = lines[len(lines)-n:]
		}
		if len(lines) == 0 {
			lines = []string{"(no log lines)"}
		}
		body = strings.Join(lines, "\n")
	default:
		title = "Keys"
		body = m.helpBody()
	}
	return m.styles.PopupBox.Render(m.styles.PopupTitle.Render(title) + "\n\n" + body)
}

func (m *Model) helpBody() string {
	km := m.keymap
	items := []struct {
		text string
		key  string
	}{
		{"Search keywords", keyLabel(km.Search)},
		{"Cycle keyword logic (and/or/nand/nor)", keyLabel(km.Logic)},
		{"Sort by next column", keyLabel(km.SortNext)},
		{"Sort by previous column", keyLabel(km.SortPrev)},
		{"Reverse sort order", keyLabel(km.Reverse)},
		{"Go to top", keyLabel(km.Top)},
		{"Go to bottom", keyLabel(km.Bottom)},
		{"Pause/Resume refresh", keyLabel(km.Pause)},
		{"Application logs", keyLabel(km.AppLogs)},
		{"Quit", keyLabel(km.Quit)},
	}
	var b strings.Builder
	for _, it := range items {
		b.WriteString(text.Adjust(it.key, 6, text.Left))
		b.WriteString(m.styles.Help.Render(it.text))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
