// Package search matches processes against keyword lists across a set of
// columns.
package search

import (
	"fmt"
	"strconv"
	"strings"
)

type Logic int

const (
	And Logic = iota
	Or
	Nand
	Nor
)

func (l Logic) String() string {
	return [...]string{"and", "or", "nand", "nor"}[l]
}

func ParseLogic(s string) (Logic, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "and":
		return And, nil
	case "or":
		return Or, nil
	case "nand":
		return Nand, nil
	case "nor":
		return Nor, nil
	}
	return And, fmt.Errorf("unknown search logic %q", s)
}

type Case int

const (
	Smart Case = iota
	Sensitive
	Insensitive
)

func (c Case) String() string {
	return [...]string{"smart", "sensitive", "insensitive"}[c]
}

func ParseCase(s string) (Case, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "smart":
		return Smart, nil
	case "sensitive":
		return Sensitive, nil
	case "insensitive":
		return Insensitive, nil
	}
	return Smart, fmt.Errorf("unknown search case %q", s)
}

// Matcher is the part of a column the search needs.
type Matcher interface {
	FindPartial(pid int, needle string, fold bool) bool
	FindExact(pid int, needle string, fold bool) bool
}

// effective returns the needle and fold flag for keyword under mode. In
// Smart mode an all-lowercase keyword folds.
func effective(keyword string, mode Case) (string, bool) {
	lower := strings.ToLower(keyword)
	var fold bool
	switch mode {
	case Smart:
		fold = keyword == lower
	case Insensitive:
		fold = true
	}
	if fold {
		return lower, true
	}
	return keyword, false
}

type findFunc func(m Matcher, pid int, needle string, fold bool) bool

// combine folds one hit per keyword into the accumulator. A keyword hits
// when any column matches. Nand and Nor accumulate like And and Or;
// negation is left to Query.
func combine(cols []Matcher, pid int, keywords []string, logic Logic, mode Case, find findFunc) bool {
	acc := logic == And || logic == Nand
	for _, kw := range keywords {
		needle, fold := effective(kw, mode)
		hit := false
		for _, c := range cols {
			if find(c, pid, needle, fold) {
				hit = true
				break
			}
		}
		switch logic {
		case And, Nand:
			acc = acc && hit
		default:
			acc = acc || hit
		}
	}
	return acc
}

// FindPartial reports whether keywords match pid as substrings of the
// columns' raw values.
func FindPartial(cols []Matcher, pid int, keywords []string, logic Logic, mode Case) bool {
	return combine(cols, pid, keywords, logic, mode, Matcher.FindPartial)
}

// FindExact is FindPartial with whole-value equality.
func FindExact(cols []Matcher, pid int, keywords []string, logic Logic, mode Case) bool {
	return combine(cols, pid, keywords, logic, mode, Matcher.FindExact)
}

type Class int

const (
	NonNumeric Class = iota
	Numeric
)

// Classify reports Numeric for keywords that parse as an integer.
func Classify(keyword string) Class {
	if _, err := strconv.ParseInt(keyword, 10, 64); err == nil {
		return Numeric
	}
	return NonNumeric
}

// Query is a parsed search line. Numeric keywords are compared exactly
// against numeric columns, the rest as substrings against text columns.
type Query struct {
	numeric []string
	text    []string
	Logic   Logic
	Case    Case
}

func NewQuery(keywords []string, logic Logic, mode Case) Query {
	q := Query{Logic: logic, Case: mode}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if Classify(kw) == Numeric {
			q.numeric = append(q.numeric, kw)
		} else {
			q.text = append(q.text, kw)
		}
	}
	return q
}

// ParseQuery splits line on whitespace.
func ParseQuery(line string, logic Logic, mode Case) Query {
	return NewQuery(strings.Fields(line), logic, mode)
}

func (q Query) Empty() bool { return len(q.numeric) == 0 && len(q.text) == 0 }

// Match evaluates q for pid. An empty query matches everything.
func (q Query) Match(numericCols, textCols []Matcher, pid int) bool {
	if q.Empty() {
		return true
	}
	n := FindExact(numericCols, pid, q.numeric, q.Logic, q.Case)
	t := FindPartial(textCols, pid, q.text, q.Logic, q.Case)
	switch q.Logic {
	case And:
		return n && t
	case Or:
		return n || t
	case Nand:
		return !(n && t)
	default:
		return !(n || t)
	}
}
