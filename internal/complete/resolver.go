package complete

import (
	"log/slog"
	"strings"
)

// Resolver computes completions. It keeps no state between calls and is
// safe for concurrent use as long as its Enumerator is.
type Resolver struct {
	enum   Enumerator
	logger *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithEnumerator replaces DefaultEnumerator.
func WithEnumerator(enum Enumerator) Option {
	return func(r *Resolver) { r.enum = enum }
}

// WithLogger sets the logger for resolution failures, which are logged at
// debug level. slog.Default is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{enum: DefaultEnumerator{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultResolver = NewResolver()

// Complete completes pattern against scope with the default resolver.
func Complete(scope any, pattern any) []string {
	return defaultResolver.Complete(scope, pattern)
}

// Complete returns the full paths completing pattern, in the enumeration
// order of the resolved scope. The result is never nil and Complete never
// panics.
func (r *Resolver) Complete(scope any, pattern any) (result []string) {
	result = []string{}

	text, ok := pattern.(string)
	if !ok {
		return result
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log().Debug("Completion aborted.", "pattern", text, "panic", rec)
			result = []string{}
		}
	}()

	prefix := text
	head := ""
	if i := strings.LastIndexByte(text, '.'); i >= 0 {
		head = text[:i+1]
		prefix = text[i+1:]
		scope = r.resolve(scope, text[:i])
	}

	for _, key := range r.enum.Keys(scope) {
		if strings.HasPrefix(key, prefix) {
			result = append(result, head+key)
		}
	}
	return result
}

// resolve evaluates the left side of a pattern. Failures resolve to nil.
func (r *Resolver) resolve(scope any, left string) any {
	traversal, err := parsePath(left)
	if err != nil {
		r.log().Debug("Completion path does not parse.", "path", left, "error", err)
		return nil
	}
	resolved, err := walkPath(r.enum, scope, traversal)
	if err != nil {
		r.log().Debug("Completion path does not resolve.", "path", left, "error", err)
		return nil
	}
	return resolved
}

func (r *Resolver) log() *slog.Logger {
	if r.logger != nil {
		return r.logger
	}
	return slog.Default()
}
