package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"proctab/internal/search"
	"proctab/internal/util/logx"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		// header, status and prompt lines
		h := msg.Height - 3
		if h < 1 {
			h = 1
		}
		m.tbl.SetHeight(h)
		m.tbl.SetWidth(msg.Width)
		m.rebuild()
		return m, nil
	case snapshotMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			logx.Errorf("sample: %v", msg.err)
		} else {
			m.lastErr = nil
			m.view.Update(msg.snaps)
			m.rebuild()
		}
		return m, m.tick()
	case tickMsg:
		if m.paused {
			return m, m.tick()
		}
		return m, m.sample()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.modal != modalNone {
			if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter || keyMatches(msg, m.keymap.Quit) {
				m.modal = modalNone
			}
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		m.query = m.search.Value()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue(m.query)
		m.view.SetQuery(m.query)
		m.rebuild()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	// incremental: filter while typing
	m.view.SetQuery(m.search.Value())
	m.rebuild()
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := m.keymap
	switch {
	case keyMatches(msg, km.Quit):
		return m, tea.Quit
	case keyMatches(msg, km.Search):
		m.searching = true
		m.search.CursorEnd()
		return m, m.search.Focus()
	case keyMatches(msg, km.Pause):
		m.paused = !m.paused
	case keyMatches(msg, km.Logic):
		next := (m.view.Logic() + 1) % (search.Nor + 1)
		m.view.SetLogic(next, m.query)
		m.rebuild()
	case keyMatches(msg, km.SortNext), keyMatches(msg, km.SortPrev):
		idx, _ := m.view.SortIndex()
		n := len(m.view.Columns())
		if keyMatches(msg, km.SortNext) {
			idx = (idx + 1) % n
		} else {
			idx = (idx - 1 + n) % n
		}
		m.view.SortBy(idx)
		m.rebuild()
	case keyMatches(msg, km.Reverse):
		idx, _ := m.view.SortIndex()
		m.view.SortBy(idx)
		m.rebuild()
	case keyMatches(msg, km.Top):
		m.tbl.GotoTop()
	case keyMatches(msg, km.Bottom):
		m.tbl.GotoBottom()
	case keyMatches(msg, km.AppLogs):
		m.modal = modalLogs
	case keyMatches(msg, km.Help):
		m.modal = modalHelp
	default:
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
	return m, nil
}
