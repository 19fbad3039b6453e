package decl

import "errors"

var (
	ErrEmptyName        = errors.New("declaration name must not be empty")
	ErrInvalidType      = errors.New("invalid variant type")
	ErrInvalidEvaluator = errors.New("evaluator must be an expression string or a function")
)
