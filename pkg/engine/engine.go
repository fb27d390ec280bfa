// Package engine provides the Lisp evaluation engine for geometry
// scripts. It wraps zygomys in a sandboxed environment and records the
// intersection queries a script performs.
package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/Gadiguibou/creaform-technical-challenge/pkg/geom"
)

// EvalError represents a non-fatal error encountered during
// evaluation, such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Query is one recorded line/pyramid intersection query.
type Query struct {
	Line    geom.Line
	Pyramid geom.Pyramid
	Hit     bool
}

// Trace collects the queries performed during one evaluation, in
// script order.
type Trace struct {
	Queries []Query
}

// QueryCount returns the number of recorded queries.
func (t *Trace) QueryCount() int {
	return len(t.Queries)
}

// Engine wraps the zygomys interpreter. It is safe for concurrent
// use; each call to Evaluate creates a fresh sandboxed environment
// for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
}

// NewEngine creates a new Engine instance.
func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs Lisp source and returns the trace of geometry queries
// it performed.
//
// Return semantics:
//   - On success: returns trace + nil errors + nil error
//   - On parse/eval failure: returns nil trace + eval errors + nil error
//   - On fatal failure (timeout, panic): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Trace, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		trace, evalErrs, err := e.evaluate(source)
		ch <- evalResult{trace: trace, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Trace, []EvalError, error) {
	trace := &Trace{}

	// Empty source is a valid program that performs no queries.
	if strings.TrimSpace(source) == "" {
		return trace, nil, nil
	}

	// Sandbox mode prevents user code from accessing the filesystem
	// or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, trace)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return trace, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more
// EvalError values, extracting line numbers where the message format
// allows it.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{
			Line:    line,
			Message: strings.TrimSpace(m[2]),
		}}
	}

	if m := linePatternShort.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return []EvalError{{
			Line:    line,
			Message: strings.TrimSpace(m[2]),
		}}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
