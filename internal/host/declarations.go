package host

import (
	"errors"

	"github.com/vk/jsbridge/internal/variant"
)

// PropertyInfo is the normalized description of an exported script property.
// Optional hint fields are nil when the script did not set them, which lets
// the host apply its own defaults. Extra carries detail keys this package
// does not interpret.
type PropertyInfo struct {
	Name       string                 `yaml:"name"`
	Type       variant.Type           `yaml:"type"`
	Class      string                 `yaml:"class,omitempty"`
	Hint       *variant.PropertyHint  `yaml:"hint,omitempty"`
	HintString *string                `yaml:"hint_string,omitempty"`
	Usage      *variant.PropertyUsage `yaml:"usage,omitempty"`
	Extra      map[string]any         `yaml:"extra,omitempty"`
}

// EvaluatorFunc computes the initial value of a deferred field from the
// script instance.
type EvaluatorFunc func(self any) (any, error)

// Evaluator holds exactly one of Expr or Func.
type Evaluator struct {
	// Expr is evaluated once, in the script's scope, right before the ready
	// hook runs.
	Expr string        `yaml:"expr,omitempty"`
	Func EvaluatorFunc `yaml:"-"`
}

// IsFunc reports whether the evaluator is a function rather than source text.
func (e Evaluator) IsFunc() bool {
	return e.Func != nil
}

// Evaluate runs a function evaluator against self. Expression evaluators
// belong to the host's script engine and cannot be evaluated here.
func (e Evaluator) Evaluate(self any) (any, error) {
	if e.Func == nil {
		return nil, errors.New("expression evaluators are evaluated by the host")
	}
	return e.Func(self)
}

// ReadyInfo describes a field initialized right before the ready hook.
type ReadyInfo struct {
	Name      string    `yaml:"name"`
	Evaluator Evaluator `yaml:"evaluator"`
}
