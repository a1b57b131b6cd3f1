// Package filter evaluates boolean expressions over a process's raw column
// values, e.g. `rss > 1048576 && user == "root"`. Parameters are column
// kind tokens; numeric values are exposed as float64.
package filter

import (
	"fmt"
	"strings"

	"github.com/Knetic/govaluate"

	"proctab/internal/column"
	"proctab/internal/util/logx"
)

// Valuer is the part of a column an expression reads.
type Valuer interface {
	Kind() column.Kind
	Value(pid int) (any, bool)
}

type Evaluator struct {
	src  string
	expr *govaluate.EvaluableExpression
}

var functions = map[string]govaluate.ExpressionFunction{
	"contains": func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("contains: want 2 arguments, got %d", len(args))
		}
		return strings.Contains(fmt.Sprint(args[0]), fmt.Sprint(args[1])), nil
	},
}

// NewEvaluator compiles src. An empty src yields an evaluator that
// matches everything.
func NewEvaluator(src string) (*Evaluator, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return &Evaluator{}, nil
	}
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(src, functions)
	if err != nil {
		return nil, fmt.Errorf("filter %q: %w", src, err)
	}
	return &Evaluator{src: src, expr: expr}, nil
}

func (e *Evaluator) Active() bool { return e != nil && e.expr != nil }

func (e *Evaluator) String() string { return e.src }

// Match evaluates the expression for pid. Evaluation errors and non-bool
// results count as no match.
func (e *Evaluator) Match(cols []Valuer, pid int) bool {
	if !e.Active() {
		return true
	}
	params := map[string]any{"pid": float64(pid)}
	for _, c := range cols {
		v, ok := c.Value(pid)
		if !ok {
			continue
		}
		params[string(c.Kind())] = normalize(v)
	}
	result, err := e.expr.Evaluate(params)
	if err != nil {
		logx.Debugf("filter: pid %d: %v", pid, err)
		return false
	}
	b, ok := result.(bool)
	return ok && b
}

func normalize(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case uint32:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}
