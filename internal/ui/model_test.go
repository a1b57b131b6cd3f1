package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"proctab/internal/column"
	"proctab/internal/config"
	"proctab/internal/proc"
	"proctab/internal/search"
	"proctab/internal/theme"
	"proctab/internal/view"
)

type fakeSampler struct {
	snaps []proc.Snapshot
	err   error
}

func (f *fakeSampler) Sample(context.Context) ([]proc.Snapshot, error) { return f.snaps, f.err }

func testModel(t *testing.T, s Sampler) *Model {
	t.Helper()
	cfg := config.Default()
	cfg.Columns = []config.Column{{Kind: column.KindPid}, {Kind: column.KindCommand}}
	cfg.SortKind = column.KindPid
	cfg.SortDesc = false
	v, err := view.New(cfg, proc.NewUserCache())
	if err != nil {
		t.Fatal(err)
	}
	m := newModel(context.Background(), s, v, theme.Dark, time.Second, "")
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestSampleAndSearch(t *testing.T) {
	s := &fakeSampler{snaps: []proc.Snapshot{
		{Pid: 1, Command: proc.DarwinCommand{Argv: []string{"/sbin/init"}}},
		{Pid: 2, Command: proc.DarwinCommand{Argv: []string{"bash"}}},
	}}
	m := testModel(t, s)
	msg := m.Init()()
	if _, cmd := m.Update(msg); cmd == nil {
		t.Fatalf("expected a tick after sampling")
	}
	if n := len(m.tbl.Rows()); n != 2 {
		t.Fatalf("rows: %d", n)
	}

	m.Update(runes("/"))
	if !m.searching {
		t.Fatalf("search mode not entered")
	}
	for _, r := range "bash" {
		m.Update(runes(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.query != "bash" || len(m.tbl.Rows()) != 1 {
		t.Fatalf("query %q rows %d", m.query, len(m.tbl.Rows()))
	}
	if !strings.Contains(m.View(), "/bash") {
		t.Fatalf("prompt line missing query")
	}

	m.Update(runes("o"))
	if m.view.Logic() != search.Or {
		t.Fatalf("logic: %v", m.view.Logic())
	}
}

func TestSampleErrorKeepsRunning(t *testing.T) {
	m := testModel(t, &fakeSampler{err: errors.New("boom")})
	if _, cmd := m.Update(m.Init()()); cmd == nil {
		t.Fatalf("expected tick after error")
	}
	if !strings.Contains(m.View(), "error: boom") {
		t.Fatalf("error not shown")
	}
}

func TestPauseAndModals(t *testing.T) {
	m := testModel(t, &fakeSampler{})
	m.Update(runes(" "))
	if !m.paused {
		t.Fatalf("not paused")
	}
	m.Update(runes("?"))
	if m.modal != modalHelp || !strings.Contains(m.View(), "Reverse sort order") {
		t.Fatalf("help modal")
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.modal != modalNone {
		t.Fatalf("modal not closed")
	}
	if _, cmd := m.Update(runes("q")); cmd == nil {
		t.Fatalf("expected quit command")
	}
}
