package search

import (
	"strings"
	"testing"
)

// col is a one-process column keyed by pid.
type col map[int]string

func (c col) FindPartial(pid int, needle string, fold bool) bool {
	v, ok := c[pid]
	if !ok {
		return false
	}
	if fold {
		v = strings.ToLower(v)
	}
	return strings.Contains(v, needle)
}

func (c col) FindExact(pid int, needle string, fold bool) bool {
	v, ok := c[pid]
	if !ok {
		return false
	}
	if fold {
		v = strings.ToLower(v)
	}
	return v == needle
}

func TestFindPartialCase(t *testing.T) {
	cols := []Matcher{col{1: "XABCY"}}
	if !FindPartial(cols, 1, []string{"abc"}, Or, Insensitive) {
		t.Fatalf("insensitive should match")
	}
	if FindPartial(cols, 1, []string{"abc"}, Or, Sensitive) {
		t.Fatalf("sensitive should not match")
	}
	if !FindPartial(cols, 1, []string{"abc"}, Or, Smart) {
		t.Fatalf("smart lowercase should fold")
	}
	if FindPartial(cols, 1, []string{"Abc"}, Or, Smart) {
		t.Fatalf("smart mixed case should be sensitive")
	}
	if !FindPartial(cols, 1, []string{"ABC"}, Or, Smart) {
		t.Fatalf("smart upper case should match sensitively")
	}
}

func TestLogicAccumulation(t *testing.T) {
	cols := []Matcher{col{1: "alpha"}, col{1: "beta"}}
	tests := []struct {
		keywords []string
		logic    Logic
		want     bool
	}{
		{[]string{"alp", "bet"}, And, true},
		{[]string{"alp", "zzz"}, And, false},
		{[]string{"alp", "zzz"}, Or, true},
		{[]string{"yyy", "zzz"}, Or, false},
		// Nand and Nor accumulate without negation at this layer
		{[]string{"alp", "bet"}, Nand, true},
		{[]string{"alp", "zzz"}, Nand, false},
		{[]string{"alp", "zzz"}, Nor, true},
		{[]string{"yyy", "zzz"}, Nor, false},
		{nil, And, true},
		{nil, Nand, true},
		{nil, Or, false},
		{nil, Nor, false},
	}
	for _, tt := range tests {
		if got := FindPartial(cols, 1, tt.keywords, tt.logic, Sensitive); got != tt.want {
			t.Fatalf("%v %v: got %v want %v", tt.keywords, tt.logic, got, tt.want)
		}
	}
}

func TestFindExact(t *testing.T) {
	cols := []Matcher{col{5: "Root"}}
	if !FindExact(cols, 5, []string{"root"}, And, Smart) {
		t.Fatalf("smart exact should fold")
	}
	if FindExact(cols, 5, []string{"roo"}, And, Insensitive) {
		t.Fatalf("exact matched a prefix")
	}
}

func TestClassify(t *testing.T) {
	if Classify("123") != Numeric || Classify("-4") != Numeric {
		t.Fatalf("numeric")
	}
	if Classify("12a") != NonNumeric || Classify("") != NonNumeric {
		t.Fatalf("non-numeric")
	}
}

func TestQueryMatch(t *testing.T) {
	numeric := []Matcher{col{1: "1", 42: "42"}}
	text := []Matcher{col{1: "/sbin/init", 42: "bash -l"}}
	tests := []struct {
		line  string
		logic Logic
		pid   int
		want  bool
	}{
		{"", And, 1, true},
		{"42", And, 42, true},
		{"42", And, 1, false},
		{"42 bash", And, 42, true},
		{"42 init", And, 42, false},
		{"42 init", Or, 1, true},
		{"bash", Nand, 42, false},
		{"bash", Nand, 1, true},
		{"bash", Nor, 42, false},
		{"bash", Nor, 1, true},
		{"4", Or, 42, false},
	}
	for _, tt := range tests {
		q := ParseQuery(tt.line, tt.logic, Smart)
		if got := q.Match(numeric, text, tt.pid); got != tt.want {
			t.Fatalf("%q %v pid %d: got %v want %v", tt.line, tt.logic, tt.pid, got, tt.want)
		}
	}
}

func TestParseLogicAndCase(t *testing.T) {
	if l, err := ParseLogic("NOR"); err != nil || l != Nor {
		t.Fatalf("logic: %v %v", l, err)
	}
	if _, err := ParseLogic("xor"); err == nil {
		t.Fatalf("expected error")
	}
	if c, err := ParseCase("Insensitive"); err != nil || c != Insensitive {
		t.Fatalf("case: %v %v", c, err)
	}
}
