package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"proctab/internal/proc"
	"proctab/internal/theme"
	"proctab/internal/view"
)

// Sampler produces one refresh cycle worth of snapshots.
type Sampler interface {
	Sample(ctx context.Context) ([]proc.Snapshot, error)
}

type modalKind int

const (
	modalNone modalKind = iota
	modalHelp
	modalLogs
)

type Model struct {
	ctx      context.Context
	sampler  Sampler
	view     *view.Table
	interval time.Duration

	tbl    table.Model
	search textinput.Model
	styles Styles
	keymap KeyMap

	termWidth  int
	termHeight int

	paused    bool
	searching bool
	query     string
	lastErr   error
	modal     modalKind
}

type tickMsg struct{}

type snapshotMsg struct {
	snaps []proc.Snapshot
	err   error
}

func newModel(ctx context.Context, s Sampler, v *view.Table, th theme.Theme, interval time.Duration, query string) *Model {
	m := &Model{
		ctx:      ctx,
		sampler:  s,
		view:     v,
		interval: interval,
		styles:   NewStyles(th),
		keymap:   DefaultKeyMap(),
		search:   textinput.New(),
		query:    query,
	}
	m.search.Prompt = "/"
	m.search.Placeholder = "keywords..."
	m.search.CharLimit = 256
	m.search.SetValue(query)

	m.tbl = table.New(table.WithFocused(true), table.WithHeight(20))
	ts := table.DefaultStyles()
	ts.Header = m.styles.TableStyles.Header.PaddingRight(1)
	ts.Cell = m.styles.TableStyles.Cell.PaddingRight(1)
	ts.Selected = m.styles.TableStyles.Selected
	m.tbl.SetStyles(ts)
	return m
}

// Run starts the interactive program and blocks until it exits.
func Run(ctx context.Context, s Sampler, v *view.Table, th theme.Theme, interval time.Duration, query string) error {
	m := newModel(ctx, s, v, th, interval, query)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return m.sample()
}

func (m *Model) sample() tea.Cmd {
	return func() tea.Msg {
		snaps, err := m.sampler.Sample(m.ctx)
		return snapshotMsg{snaps: snaps, err: err}
	}
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return tickMsg{} })
}

// rebuild pushes the view's current rows into the table widget.
func (m *Model) rebuild() {
	widths := m.view.Widths()
	headers := m.view.Header(widths)
	sortIdx, desc := m.view.SortIndex()
	cols := make([]table.Column, len(headers))
	for i, h := range headers {
		w := widths[i]
		if i == sortIdx {
			mark := "▲"
			if desc {
				mark = "▼"
			}
			// plain text: the table truncates titles by rune width
			h += mark
			w++
		}
		cols[i] = table.Column{Title: h, Width: w}
	}
	// the last column takes whatever width is left
	if n := len(cols); n > 0 && m.termWidth > 0 {
		used := 0
		for _, c := range cols[:n-1] {
			used += c.Width + 1
		}
		if rest := m.termWidth - used - 1; rest > 0 {
			cols[n-1].Width = rest
		}
	}
	pids := m.view.Pids()
	rows := make([]table.Row, len(pids))
	for i, pid := range pids {
		rows[i] = table.Row(m.view.Row(pid, widths))
	}
	// columns first: SetRows renders using the current column count
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(cols)
	m.tbl.SetRows(rows)
	if c := m.tbl.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.tbl.SetCursor(len(rows) - 1)
	}
}
