// Package condition implements the Boolean predicate language (C1) that
// gates item visibility, template conditions, preset rows, fallback
// rules and every other conditioned construct in the compiler.
//
// Evaluation is total: a malformed condition never panics or returns an
// error, it simply evaluates to false (§4.1, §7). Internally a condition
// is normalized (keyword-to-symbol, compact-OR expansion), then a
// recursive-descent parser translates it directly into an expr-lang
// source snippet (no intermediate syntax tree), which is run
// through a cached compiled program — the same compile-once/run-many
// shape used throughout the corpus for user-authored expressions.
package condition

import (
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// env is the expr-lang compile-time environment shape; P carries the
// property map for the condition currently being evaluated.
type env struct {
	P map[string]string
}

var options = []expr.Option{
	expr.Env(env{}),
	expr.Function("Has", hasFn),
	expr.Function("Empty", emptyFn),
	expr.Function("Eq", eqFn),
	expr.Function("Contains", containsFn),
	expr.Function("In", inFn),
}

func propOf(params []interface{}) (map[string]string, string) {
	p, _ := params[0].(map[string]string)
	key, _ := params[1].(string)
	return p, key
}

func hasFn(params ...interface{}) (interface{}, error) {
	p, key := propOf(params)
	return p[key] != "", nil
}

func emptyFn(params ...interface{}) (interface{}, error) {
	p, key := propOf(params)
	return p[key] == "", nil
}

func eqFn(params ...interface{}) (interface{}, error) {
	p, key := propOf(params)
	val, _ := params[2].(string)
	return p[key] == val, nil
}

func containsFn(params ...interface{}) (interface{}, error) {
	p, key := propOf(params)
	val, _ := params[2].(string)
	return strings.Contains(p[key], val), nil
}

func inFn(params ...interface{}) (interface{}, error) {
	p, key := propOf(params)
	csv, _ := params[2].(string)
	v := p[key]
	for _, candidate := range strings.Split(csv, ",") {
		if v == candidate {
			return true, nil
		}
	}
	return false, nil
}

var programCache sync.Map // string -> *vm.Program

func compile(source string) (*vm.Program, error) {
	if v, ok := programCache.Load(source); ok {
		return v.(*vm.Program), nil
	}
	program, err := expr.Compile(source, options...)
	if err != nil {
		return nil, err
	}
	programCache.Store(source, program)
	return program, nil
}

// Evaluate reports whether cond holds under properties. Empty or
// whitespace-only input is always true; missing properties read as "".
func Evaluate(cond string, properties map[string]string) bool {
	cond = strings.TrimSpace(cond)
	if cond == "" {
		return true
	}
	if properties == nil {
		properties = map[string]string{}
	}

	normalized := normalizeKeywords(cond)
	expanded := ExpandCompactOR(normalized)

	source, err := translate(expanded)
	if err != nil {
		return false
	}

	program, err := compile(source)
	if err != nil {
		return false
	}

	out, err := vm.Run(program, env{P: properties})
	if err != nil {
		return false
	}

	result, ok := out.(bool)
	return ok && result
}
