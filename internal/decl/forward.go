package decl

import "github.com/vk/jsbridge/internal/host"

// Forwarder is a Declarer that registers each declaration with the host as
// soon as its decorator is applied.
type Forwarder struct {
	target host.Target
	reg    host.Registry
}

// Forward returns a Forwarder registering declarations of target with reg.
func Forward(target host.Target, reg host.Registry) *Forwarder {
	return &Forwarder{target: target, reg: reg}
}

func (f *Forwarder) Member(name string, decorators ...MemberDecorator) error {
	return ApplyMember(f, name, decorators...)
}

func (f *Forwarder) Script(decorators ...TargetDecorator) error {
	return ApplyScript(f, decorators...)
}

func (f *Forwarder) DeclareSignal(name string) error {
	return f.reg.AddScriptSignal(f.target, name)
}

func (f *Forwarder) DeclareProperty(info host.PropertyInfo) error {
	return f.reg.AddScriptProperty(f.target, info)
}

func (f *Forwarder) DeclareReady(info host.ReadyInfo) error {
	return f.reg.AddScriptReady(f.target, info)
}

func (f *Forwarder) DeclareTool() error {
	return f.reg.AddScriptTool(f.target)
}

func (f *Forwarder) DeclareIcon(path string) error {
	return f.reg.AddScriptIcon(f.target, path)
}
