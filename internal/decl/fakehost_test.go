package decl

import "github.com/vk/jsbridge/internal/host"

// call is one recorded host registration.
type call struct {
	Method   string
	Target   host.Target
	Name     string
	Property host.PropertyInfo
	Ready    host.ReadyInfo
	Path     string
}

// fakeHost records every registration and can be told to reject one.
type fakeHost struct {
	calls  []call
	reject func(c call) error
}

func (h *fakeHost) record(c call) error {
	if h.reject != nil {
		if err := h.reject(c); err != nil {
			return err
		}
	}
	h.calls = append(h.calls, c)
	return nil
}

func (h *fakeHost) AddScriptSignal(target host.Target, name string) error {
	return h.record(call{Method: "signal", Target: target, Name: name})
}

func (h *fakeHost) AddScriptProperty(target host.Target, info host.PropertyInfo) error {
	return h.record(call{Method: "property", Target: target, Name: info.Name, Property: info})
}

func (h *fakeHost) AddScriptReady(target host.Target, info host.ReadyInfo) error {
	return h.record(call{Method: "ready", Target: target, Name: info.Name, Ready: info})
}

func (h *fakeHost) AddScriptTool(target host.Target) error {
	return h.record(call{Method: "tool", Target: target})
}

func (h *fakeHost) AddScriptIcon(target host.Target, path string) error {
	return h.record(call{Method: "icon", Target: target, Path: path})
}

func (h *fakeHost) methods() []string {
	out := make([]string, 0, len(h.calls))
	for _, c := range h.calls {
		out = append(out, c.Method+":"+c.Name+c.Path)
	}
	return out
}
