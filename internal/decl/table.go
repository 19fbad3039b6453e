package decl

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vk/jsbridge/internal/ctxlog"
	"github.com/vk/jsbridge/internal/host"
)

// Kind tells which host registration a Declaration maps to.
type Kind int

const (
	KindSignal Kind = iota
	KindProperty
	KindReady
	KindTool
	KindIcon
)

var kindNames = [...]string{
	KindSignal:   "signal",
	KindProperty: "property",
	KindReady:    "ready",
	KindTool:     "tool",
	KindIcon:     "icon",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Declaration is one recorded entry of a Table. Name is empty for
// script-wide declarations.
type Declaration struct {
	Kind     Kind               `yaml:"kind"`
	Name     string             `yaml:"name,omitempty"`
	Property *host.PropertyInfo `yaml:"property,omitempty"`
	Ready    *host.ReadyInfo    `yaml:"ready,omitempty"`
	IconPath string             `yaml:"icon,omitempty"`
}

// Table collects the declarations of one script in the order the
// decorators were applied. It is filled during script definition and handed
// to the host once with Commit.
type Table struct {
	target host.Target
	decls  []Declaration
}

// NewTable creates an empty declaration table for target.
func NewTable(target host.Target) *Table {
	return &Table{target: target}
}

func (t *Table) Target() host.Target {
	return t.target
}

// Member applies member decorators to name. A decorator that fails records
// nothing.
func (t *Table) Member(name string, decorators ...MemberDecorator) error {
	return ApplyMember(t, name, decorators...)
}

// Script applies script-wide decorators.
func (t *Table) Script(decorators ...TargetDecorator) error {
	return ApplyScript(t, decorators...)
}

// Declarations returns a copy of the recorded declarations.
func (t *Table) Declarations() []Declaration {
	return append([]Declaration(nil), t.decls...)
}

func (t *Table) Len() int {
	return len(t.decls)
}

func (t *Table) DeclareSignal(name string) error {
	t.decls = append(t.decls, Declaration{Kind: KindSignal, Name: name})
	return nil
}

func (t *Table) DeclareProperty(info host.PropertyInfo) error {
	t.decls = append(t.decls, Declaration{Kind: KindProperty, Name: info.Name, Property: &info})
	return nil
}

func (t *Table) DeclareReady(info host.ReadyInfo) error {
	t.decls = append(t.decls, Declaration{Kind: KindReady, Name: info.Name, Ready: &info})
	return nil
}

func (t *Table) DeclareTool() error {
	t.decls = append(t.decls, Declaration{Kind: KindTool})
	return nil
}

func (t *Table) DeclareIcon(path string) error {
	t.decls = append(t.decls, Declaration{Kind: KindIcon, IconPath: path})
	return nil
}

// Commit hands every declaration to reg in recorded order, one host call
// each. The first host error stops the batch and is returned unchanged;
// declarations before it stay registered.
func (t *Table) Commit(ctx context.Context, reg host.Registry) error {
	logger := ctxlog.FromContext(ctx).With("script", t.target.ClassName(), "batch", uuid.NewString())
	logger.Debug("Committing declarations.", "count", len(t.decls))

	for i, d := range t.decls {
		if err := t.forward(reg, d); err != nil {
			logger.Error("Host rejected declaration.", "index", i, "kind", d.Kind.String(), "name", d.Name, "error", err)
			return err
		}
		logger.Debug("Declaration registered.", "index", i, "kind", d.Kind.String(), "name", d.Name)
	}
	return nil
}

func (t *Table) forward(reg host.Registry, d Declaration) error {
	switch d.Kind {
	case KindSignal:
		return reg.AddScriptSignal(t.target, d.Name)
	case KindProperty:
		return reg.AddScriptProperty(t.target, *d.Property)
	case KindReady:
		return reg.AddScriptReady(t.target, *d.Ready)
	case KindTool:
		return reg.AddScriptTool(t.target)
	case KindIcon:
		return reg.AddScriptIcon(t.target, d.IconPath)
	default:
		panic(fmt.Sprintf("decl: unknown declaration kind %d", int(d.Kind)))
	}
}
