package recorder

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vk/jsbridge/internal/host"
)

var (
	ErrDuplicate     = errors.New("duplicate member declaration")
	ErrModuleExists  = errors.New("module already registered")
	ErrEmptyModuleID = errors.New("module id must not be empty")
)

// Policy decides how repeated member names are treated.
type Policy int

const (
	AllowDuplicates Policy = iota
	RejectDuplicates
)

// Call is one recorded registration.
type Call struct {
	Method   string             `yaml:"method"`
	Name     string             `yaml:"name,omitempty"`
	Property *host.PropertyInfo `yaml:"property,omitempty"`
	Ready    *host.ReadyInfo    `yaml:"ready,omitempty"`
	Path     string             `yaml:"path,omitempty"`
}

type script struct {
	calls   []Call
	members map[string]string // member name -> method that declared it
	tool    bool
	icon    string
}

// Recorder is a thread-safe in-memory host.Registry and host.ModuleRegistry.
type Recorder struct {
	mu      sync.Mutex
	policy  Policy
	order   []string
	scripts map[string]*script

	moduleOrder []string
	modules     map[string]any
}

// New creates an empty recorder applying policy to repeated member names.
func New(policy Policy) *Recorder {
	return &Recorder{
		policy:  policy,
		scripts: make(map[string]*script),
		modules: make(map[string]any),
	}
}

var (
	_ host.Registry       = (*Recorder)(nil)
	_ host.ModuleRegistry = (*Recorder)(nil)
)

// scriptFor returns the state of target, creating it on first use. The
// caller must hold r.mu.
func (r *Recorder) scriptFor(target host.Target) *script {
	name := target.ClassName()
	s, ok := r.scripts[name]
	if !ok {
		s = &script{members: make(map[string]string)}
		r.scripts[name] = s
		r.order = append(r.order, name)
	}
	return s
}

func (r *Recorder) addMember(target host.Target, c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.scriptFor(target)
	if prev, exists := s.members[c.Name]; exists && r.policy == RejectDuplicates {
		return fmt.Errorf("%w: %s.%s already declared as %s", ErrDuplicate, target.ClassName(), c.Name, prev)
	}
	s.members[c.Name] = c.Method
	s.calls = append(s.calls, c)
	return nil
}

func (r *Recorder) AddScriptSignal(target host.Target, name string) error {
	return r.addMember(target, Call{Method: "signal", Name: name})
}

func (r *Recorder) AddScriptProperty(target host.Target, info host.PropertyInfo) error {
	return r.addMember(target, Call{Method: "property", Name: info.Name, Property: &info})
}

func (r *Recorder) AddScriptReady(target host.Target, info host.ReadyInfo) error {
	return r.addMember(target, Call{Method: "ready", Name: info.Name, Ready: &info})
}

func (r *Recorder) AddScriptTool(target host.Target) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.scriptFor(target)
	s.tool = true
	s.calls = append(s.calls, Call{Method: "tool"})
	return nil
}

func (r *Recorder) AddScriptIcon(target host.Target, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.scriptFor(target)
	s.icon = path
	s.calls = append(s.calls, Call{Method: "icon", Path: path})
	return nil
}

// Scripts lists the class names of all targets in first-registration order.
func (r *Recorder) Scripts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.order...)
}

// Calls returns the registrations of target in call order.
func (r *Recorder) Calls(target host.Target) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scripts[target.ClassName()]
	if !ok {
		return nil
	}
	return append([]Call(nil), s.calls...)
}

// IsTool reports whether target was flagged as a tool script.
func (r *Recorder) IsTool(target host.Target) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scripts[target.ClassName()]
	return ok && s.tool
}

// Icon returns the last icon registered for target.
func (r *Recorder) Icon(target host.Target) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.scripts[target.ClassName()]
	if !ok || s.icon == "" {
		return "", false
	}
	return s.icon, true
}

// AddModule registers value under id. Ids are registered once.
func (r *Recorder) AddModule(id string, value any) error {
	if id == "" {
		return ErrEmptyModuleID
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[id]; exists {
		return fmt.Errorf("%w: %s", ErrModuleExists, id)
	}
	r.modules[id] = value
	r.moduleOrder = append(r.moduleOrder, id)
	return nil
}

func (r *Recorder) FindModule(id string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.modules[id]
	return v, ok
}

// ModuleIDs lists module ids in registration order.
func (r *Recorder) ModuleIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.moduleOrder...)
}

// Modules returns a snapshot of the module table.
func (r *Recorder) Modules() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]any, len(r.modules))
	for id, v := range r.modules {
		out[id] = v
	}
	return out
}
