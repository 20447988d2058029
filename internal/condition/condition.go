// Package condition evaluates a question's skip_if expression against the
// committed answers.
//
// Expressions use expr-lang syntax and see three functions:
//
//	answer(id)         the committed value (nil, bool, string, or []string)
//	answered(id)       whether id has a non-empty answer
//	has(id, option)    whether a string or multi-select answer includes option
//
// Example: answer("deployment.model") == "saas" || !answered("team.size")
//
// An expression must produce a bool. Any other result, including nil from
// answer on an unanswered id, is an error and the question is not skipped.
package condition

import (
	"fmt"
	"slices"
	"sync"

	"github.com/HendryAvila/hoofy-interview/internal/schema"
	exprlang "github.com/expr-lang/expr"
	exprvm "github.com/expr-lang/expr/vm"
)

// Evaluator compiles skip_if expressions once and runs them per answer set.
// It is safe for concurrent use.
type Evaluator struct {
	mu       sync.Mutex
	programs map[string]*exprvm.Program
}

// NewEvaluator returns an Evaluator with an empty program cache.
func NewEvaluator() *Evaluator {
	return &Evaluator{programs: make(map[string]*exprvm.Program)}
}

// Compile checks expression and caches the compiled program.
func (e *Evaluator) Compile(expression string) error {
	_, err := e.program(expression)
	return err
}

// ShouldSkip reports whether expression holds for answers. An empty
// expression never skips. On error the result is false so the question
// stays eligible.
func (e *Evaluator) ShouldSkip(expression string, answers schema.Answers) (bool, error) {
	if expression == "" {
		return false, nil
	}
	program, err := e.program(expression)
	if err != nil {
		return false, err
	}
	out, err := exprlang.Run(program, environment(answers))
	if err != nil {
		return false, fmt.Errorf("condition: evaluate %q: %w", expression, err)
	}
	skip, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("condition: %q returned %T, want bool", expression, out)
	}
	return skip, nil
}

func (e *Evaluator) program(expression string) (*exprvm.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p, ok := e.programs[expression]; ok {
		return p, nil
	}
	p, err := exprlang.Compile(expression, exprlang.Env(environment(schema.Answers{})))
	if err != nil {
		return nil, fmt.Errorf("condition: compile %q: %w", expression, err)
	}
	e.programs[expression] = p
	return p, nil
}

func environment(answers schema.Answers) map[string]any {
	return map[string]any{
		"answer": func(id string) any {
			v, _ := answers.Get(id)
			return v.Interface()
		},
		"answered": func(id string) bool {
			return answers.Has(id)
		},
		"has": func(id, option string) bool {
			v, ok := answers.Get(id)
			if !ok {
				return false
			}
			if items, ok := v.AsList(); ok {
				return slices.Contains(items, option)
			}
			s, ok := v.AsString()
			return ok && s == option
		},
	}
}
