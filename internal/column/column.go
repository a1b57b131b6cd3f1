// Package column holds per-process cell values. Every column keeps a
// formatted value for display and a raw value for search, sorting and
// export; the raw value is never abbreviated.
package column

import (
	"cmp"
	"fmt"
	"sort"
	"strings"

	"proctab/internal/proc"
	"proctab/internal/util/text"
)

type Column interface {
	// Add stores the values for one process; a later Add for the same pid
	// overwrites the earlier one.
	Add(s *proc.Snapshot)
	FindPartial(pid int, needle string, fold bool) bool
	FindExact(pid int, needle string, fold bool) bool
	Header() string
	Unit() string
	Kind() Kind
	// Width is the widest formatted value currently stored.
	Width() int
	Display(pid int) string
	Raw(pid int) string
	Value(pid int) (any, bool)
	SortedPids(desc bool) []int
	Numeric() bool
	Align() text.Align
	// Reset forgets every process; called at the start of a cycle.
	Reset()
}

// store is the bookkeeping shared by every concrete column.
type store[T cmp.Ordered] struct {
	header  string
	unit    string
	kind    Kind
	align   text.Align
	numeric bool
	fmt     map[int]string
	raw     map[int]T
	width   int
}

func newStore[T cmp.Ordered](kind Kind, header, unit string, align text.Align, numeric bool) *store[T] {
	if header == "" {
		if ki, ok := kind.Info(); ok {
			header = ki.Name
		}
	}
	return &store[T]{
		header:  header,
		unit:    unit,
		kind:    kind,
		align:   align,
		numeric: numeric,
		fmt:     map[int]string{},
		raw:     map[int]T{},
	}
}

func (s *store[T]) put(pid int, formatted string, raw T) {
	old, existed := s.fmt[pid]
	s.fmt[pid] = formatted
	s.raw[pid] = raw
	w := text.Width(formatted)
	switch {
	case w > s.width:
		s.width = w
	case existed && w < s.width && text.Width(old) == s.width:
		s.recomputeWidth()
	}
}

func (s *store[T]) recomputeWidth() {
	s.width = 0
	for _, f := range s.fmt {
		if w := text.Width(f); w > s.width {
			s.width = w
		}
	}
}

func (s *store[T]) rawString(pid int) (string, bool) {
	v, ok := s.raw[pid]
	if !ok {
		return "", false
	}
	return fmt.Sprint(v), true
}

func (s *store[T]) FindPartial(pid int, needle string, fold bool) bool {
	raw, ok := s.rawString(pid)
	if !ok {
		return false
	}
	if fold {
		return strings.Contains(strings.ToLower(raw), strings.ToLower(needle))
	}
	return strings.Contains(raw, needle)
}

func (s *store[T]) FindExact(pid int, needle string, fold bool) bool {
	raw, ok := s.rawString(pid)
	if !ok {
		return false
	}
	if fold {
		return strings.ToLower(raw) == strings.ToLower(needle)
	}
	return raw == needle
}

func (s *store[T]) Header() string    { return s.header }
func (s *store[T]) Unit() string      { return s.unit }
func (s *store[T]) Kind() Kind        { return s.kind }
func (s *store[T]) Width() int        { return s.width }
func (s *store[T]) Numeric() bool     { return s.numeric }
func (s *store[T]) Align() text.Align { return s.align }

func (s *store[T]) Display(pid int) string { return s.fmt[pid] }

func (s *store[T]) Raw(pid int) string {
	raw, _ := s.rawString(pid)
	return raw
}

func (s *store[T]) Value(pid int) (any, bool) {
	v, ok := s.raw[pid]
	return v, ok
}

// SortedPids orders the stored pids by raw value; equal values fall back
// to ascending pid so the order is stable across refreshes.
func (s *store[T]) SortedPids(desc bool) []int {
	pids := make([]int, 0, len(s.raw))
	for pid := range s.raw {
		pids = append(pids, pid)
	}
	sort.Slice(pids, func(i, j int) bool {
		a, b := s.raw[pids[i]], s.raw[pids[j]]
		if a == b {
			return pids[i] < pids[j]
		}
		if desc {
			return a > b
		}
		return a < b
	})
	return pids
}

func (s *store[T]) Reset() {
	clear(s.fmt)
	clear(s.raw)
	s.width = 0
}
