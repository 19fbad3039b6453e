package decl

import (
	"fmt"
	"strings"

	"github.com/vk/jsbridge/internal/host"
	"github.com/vk/jsbridge/internal/variant"
)

// Declarer receives the normalized declarations of one script target.
type Declarer interface {
	DeclareSignal(name string) error
	DeclareProperty(info host.PropertyInfo) error
	DeclareReady(info host.ReadyInfo) error
	DeclareTool() error
	DeclareIcon(path string) error
}

// MemberDecorator declares something about a named script member.
type MemberDecorator func(d Declarer, name string) error

// TargetDecorator declares something about the script as a whole.
type TargetDecorator func(d Declarer) error

// ApplyMember applies decorators to a member in the order given and returns
// the first error as is.
func ApplyMember(d Declarer, name string, decorators ...MemberDecorator) error {
	for _, decorate := range decorators {
		if err := decorate(d, name); err != nil {
			return err
		}
	}
	return nil
}

// ApplyScript applies script-wide decorators in the order given.
func ApplyScript(d Declarer, decorators ...TargetDecorator) error {
	for _, decorate := range decorators {
		if err := decorate(d); err != nil {
			return err
		}
	}
	return nil
}

// Signal declares the member as a signal of the script.
func Signal() MemberDecorator {
	return func(d Declarer, name string) error {
		if name == "" {
			return ErrEmptyName
		}
		return d.DeclareSignal(name)
	}
}

// Detail sets one optional field of an exported property.
type Detail func(info *host.PropertyInfo)

// Class sets the class the property value must be an instance of.
func Class(name string) Detail {
	return func(info *host.PropertyInfo) { info.Class = name }
}

func Hint(hint variant.PropertyHint) Detail {
	return func(info *host.PropertyInfo) {
		h := hint
		info.Hint = &h
	}
}

func HintString(s string) Detail {
	return func(info *host.PropertyInfo) {
		v := s
		info.HintString = &v
	}
}

func Usage(usage variant.PropertyUsage) Detail {
	return func(info *host.PropertyInfo) {
		u := usage
		info.Usage = &u
	}
}

// Extra attaches a detail this package does not interpret. The host decides
// whether the key means anything.
func Extra(key string, value any) Detail {
	return func(info *host.PropertyInfo) {
		if info.Extra == nil {
			info.Extra = make(map[string]any)
		}
		info.Extra[key] = value
	}
}

// Export declares the member as a property of type typ. Details are applied
// left to right; the member name and typ are applied last and always win,
// including over "name" and "type" keys passed through Extra.
func Export(typ variant.Type, details ...Detail) MemberDecorator {
	return func(d Declarer, name string) error {
		if name == "" {
			return ErrEmptyName
		}
		if !typ.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidType, int(typ))
		}

		var info host.PropertyInfo
		for _, detail := range details {
			detail(&info)
		}
		info.Name = name
		info.Type = typ
		delete(info.Extra, "name")
		delete(info.Extra, "type")
		if len(info.Extra) == 0 {
			info.Extra = nil
		}
		return d.DeclareProperty(info)
	}
}

// OnReady declares a field initialized right before the script's ready hook.
// evaluator is either expression source text or a function of the script
// instance: host.EvaluatorFunc, func(any) (any, error) or func(any) any.
func OnReady(evaluator any) MemberDecorator {
	ev, evErr := toEvaluator(evaluator)
	return func(d Declarer, name string) error {
		if evErr != nil {
			return evErr
		}
		if name == "" {
			return ErrEmptyName
		}
		return d.DeclareReady(host.ReadyInfo{Name: name, Evaluator: ev})
	}
}

func toEvaluator(evaluator any) (host.Evaluator, error) {
	switch v := evaluator.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return host.Evaluator{}, fmt.Errorf("%w: empty expression", ErrInvalidEvaluator)
		}
		return host.Evaluator{Expr: v}, nil
	case host.EvaluatorFunc:
		if v != nil {
			return host.Evaluator{Func: v}, nil
		}
	case func(any) (any, error):
		if v != nil {
			return host.Evaluator{Func: v}, nil
		}
	case func(any) any:
		if v != nil {
			return host.Evaluator{Func: func(self any) (any, error) { return v(self), nil }}, nil
		}
	}
	return host.Evaluator{}, fmt.Errorf("%w: got %T", ErrInvalidEvaluator, evaluator)
}

// Tool marks the whole script as running in the editor.
func Tool() TargetDecorator {
	return func(d Declarer) error {
		return d.DeclareTool()
	}
}

// Icon sets the editor icon of the script.
func Icon(path string) TargetDecorator {
	return func(d Declarer) error {
		if path == "" {
			return fmt.Errorf("icon path: %w", ErrEmptyName)
		}
		return d.DeclareIcon(path)
	}
}
