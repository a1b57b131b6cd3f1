// Package view owns the columns for one run and turns sampled snapshots
// into ordered, filtered, width-adjusted rows.
package view

import (
	"fmt"

	"proctab/internal/column"
	"proctab/internal/config"
	"proctab/internal/filter"
	"proctab/internal/proc"
	"proctab/internal/search"
	"proctab/internal/util/text"
)

type Table struct {
	cols   []column.Column
	aligns []text.Align

	sortIdx  int
	sortDesc bool

	logic   search.Logic
	mode    search.Case
	query   search.Query
	filter  *filter.Evaluator
	numeric []search.Matcher
	texts   []search.Matcher
	valuers []filter.Valuer

	snaps int
	pids  []int
}

// New builds the configured columns. When the sort kind is not among them
// the first column sorts.
func New(cfg *config.Config, users *proc.UserCache) (*Table, error) {
	t := &Table{
		sortDesc: cfg.SortDesc,
		logic:    cfg.Logic,
		mode:     cfg.Case,
	}
	opt := column.Options{AbbrPath: cfg.AbbrPath, Users: users}
	for _, cc := range cfg.Columns {
		c, err := column.New(cc.Kind, cc.Header, opt)
		if err != nil {
			return nil, err
		}
		t.cols = append(t.cols, c)
		t.aligns = append(t.aligns, cc.AlignFor(c.Align()))
		if c.Numeric() {
			t.numeric = append(t.numeric, c)
		} else {
			t.texts = append(t.texts, c)
		}
		t.valuers = append(t.valuers, c)
		if c.Kind() == cfg.SortKind {
			t.sortIdx = len(t.cols) - 1
		}
	}
	if len(t.cols) == 0 {
		return nil, fmt.Errorf("no columns configured")
	}
	ev, err := filter.NewEvaluator(cfg.FilterExpr)
	if err != nil {
		return nil, err
	}
	t.filter = ev
	t.query = search.NewQuery(cfg.Keywords, t.logic, t.mode)
	return t, nil
}

// Update starts a new cycle: every column forgets the previous processes
// and ingests snaps, then the visible rows are recomputed.
func (t *Table) Update(snaps []proc.Snapshot) {
	for _, c := range t.cols {
		c.Reset()
	}
	for i := range snaps {
		for _, c := range t.cols {
			c.Add(&snaps[i])
		}
	}
	t.snaps = len(snaps)
	t.Refresh()
}

// Refresh reapplies sort, keyword search and filter to the current data.
func (t *Table) Refresh() {
	ordered := t.cols[t.sortIdx].SortedPids(t.sortDesc)
	t.pids = t.pids[:0]
	for _, pid := range ordered {
		if !t.query.Match(t.numeric, t.texts, pid) {
			continue
		}
		if !t.filter.Match(t.valuers, pid) {
			continue
		}
		t.pids = append(t.pids, pid)
	}
}

// SetQuery replaces the keywords with the whitespace-separated words of line.
func (t *Table) SetQuery(line string) {
	t.query = search.ParseQuery(line, t.logic, t.mode)
	t.Refresh()
}

// SetLogic changes the keyword combinator, keeping the keywords.
func (t *Table) SetLogic(l search.Logic, line string) {
	t.logic = l
	t.SetQuery(line)
}

// SortBy sorts on column idx, or flips the order when it already sorts.
func (t *Table) SortBy(idx int) {
	if idx < 0 || idx >= len(t.cols) {
		return
	}
	if idx == t.sortIdx {
		t.sortDesc = !t.sortDesc
	} else {
		t.sortIdx = idx
	}
	t.Refresh()
}

func (t *Table) SortIndex() (int, bool)   { return t.sortIdx, t.sortDesc }
func (t *Table) Logic() search.Logic      { return t.logic }
func (t *Table) Columns() []column.Column { return t.cols }
func (t *Table) Pids() []int              { return t.pids }
func (t *Table) Total() int               { return t.snaps }

// HeaderText is the column header with its unit, if any.
func HeaderText(c column.Column) string {
	if u := c.Unit(); u != "" {
		return c.Header() + u
	}
	return c.Header()
}

// Widths is, per column, the wider of the header and the widest value.
func (t *Table) Widths() []int {
	out := make([]int, len(t.cols))
	for i, c := range t.cols {
		out[i] = max(c.Width(), text.Width(HeaderText(c)))
	}
	return out
}

// Row returns the adjusted cells of pid.
func (t *Table) Row(pid int, widths []int) []string {
	cells := make([]string, len(t.cols))
	for i, c := range t.cols {
		cells[i] = text.Adjust(c.Display(pid), widths[i], t.aligns[i])
	}
	return cells
}

// Header returns the adjusted header cells.
func (t *Table) Header(widths []int) []string {
	cells := make([]string, len(t.cols))
	for i, c := range t.cols {
		cells[i] = text.Adjust(HeaderText(c), widths[i], t.aligns[i])
	}
	return cells
}
