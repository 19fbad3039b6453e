package decl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/jsbridge/internal/host"
	"github.com/vk/jsbridge/internal/variant"
)

var player = host.ClassRef("Player")

func TestSignal_RegistersExactlyOnce(t *testing.T) {
	for _, name := range []string{"died", "health_changed", "é", "a b"} {
		t.Run(name, func(t *testing.T) {
			h := &fakeHost{}
			require.NoError(t, Forward(player, h).Member(name, Signal()))

			require.Len(t, h.calls, 1)
			assert.Equal(t, call{Method: "signal", Target: player, Name: name}, h.calls[0])
		})
	}
}

func TestSignal_EmptyName(t *testing.T) {
	h := &fakeHost{}
	err := Forward(player, h).Member("", Signal())
	require.ErrorIs(t, err, ErrEmptyName)
	assert.Empty(t, h.calls)
}

func TestSignal_ReappliedRegistersTwice(t *testing.T) {
	h := &fakeHost{}
	f := Forward(player, h)
	require.NoError(t, f.Member("died", Signal()))
	require.NoError(t, f.Member("died", Signal()))
	assert.Equal(t, []string{"signal:died", "signal:died"}, h.methods())
}

func TestExport(t *testing.T) {
	seven := variant.PropertyHint(7)
	rangeStr := "0,100"
	usage := variant.UsageDefault

	testCases := []struct {
		name     string
		typ      variant.Type
		details  []Detail
		expected host.PropertyInfo
	}{
		{
			name:     "hint only",
			typ:      variant.Int,
			details:  []Detail{Hint(7)},
			expected: host.PropertyInfo{Name: "speed", Type: variant.Int, Hint: &seven},
		},
		{
			name:     "no details",
			typ:      variant.Float,
			expected: host.PropertyInfo{Name: "speed", Type: variant.Float},
		},
		{
			name:     "synthesized name and type win",
			typ:      variant.Int,
			details:  []Detail{Extra("name", "x"), Extra("type", "y")},
			expected: host.PropertyInfo{Name: "speed", Type: variant.Int},
		},
		{
			name: "all recognized details",
			typ:  variant.Object,
			details: []Detail{
				Class("Node"), Hint(7), HintString("0,100"), Usage(variant.UsageDefault),
			},
			expected: host.PropertyInfo{
				Name: "speed", Type: variant.Object, Class: "Node",
				Hint: &seven, HintString: &rangeStr, Usage: &usage,
			},
		},
		{
			name:    "unrecognized details forwarded as is",
			typ:     variant.Int,
			details: []Detail{Extra("name", "x"), Extra("step", 0.5)},
			expected: host.PropertyInfo{
				Name: "speed", Type: variant.Int, Extra: map[string]any{"step": 0.5},
			},
		},
		{
			name:     "later details override earlier ones",
			typ:      variant.Int,
			details:  []Detail{Hint(1), Hint(7)},
			expected: host.PropertyInfo{Name: "speed", Type: variant.Int, Hint: &seven},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := &fakeHost{}
			require.NoError(t, Forward(player, h).Member("speed", Export(tc.typ, tc.details...)))

			require.Len(t, h.calls, 1)
			assert.Equal(t, "property", h.calls[0].Method)
			assert.Equal(t, tc.expected, h.calls[0].Property)
		})
	}
}

func TestExport_Errors(t *testing.T) {
	h := &fakeHost{}
	f := Forward(player, h)

	require.ErrorIs(t, f.Member("speed", Export(variant.Max)), ErrInvalidType)
	require.ErrorIs(t, f.Member("speed", Export(variant.Type(-1))), ErrInvalidType)
	require.ErrorIs(t, f.Member("", Export(variant.Int)), ErrEmptyName)
	assert.Empty(t, h.calls)
}

func TestExport_ReusedDecoratorBuildsFreshInfo(t *testing.T) {
	h := &fakeHost{}
	f := Forward(player, h)
	export := Export(variant.Int, Hint(variant.HintRange), Extra("step", 1))

	require.NoError(t, f.Member("a", export))
	require.NoError(t, f.Member("b", export))
	require.Len(t, h.calls, 2)

	*h.calls[0].Property.Hint = variant.HintEnum
	h.calls[0].Property.Extra["step"] = 2

	assert.Equal(t, "b", h.calls[1].Property.Name)
	assert.Equal(t, variant.HintRange, *h.calls[1].Property.Hint)
	assert.Equal(t, 1, h.calls[1].Property.Extra["step"])
}

func TestOnReady_Expression(t *testing.T) {
	h := &fakeHost{}
	require.NoError(t, Forward(player, h).Member("node", OnReady("$Node")))

	require.Len(t, h.calls, 1)
	assert.Equal(t, "ready", h.calls[0].Method)
	assert.Equal(t, host.ReadyInfo{Name: "node", Evaluator: host.Evaluator{Expr: "$Node"}}, h.calls[0].Ready)
}

func TestOnReady_Functions(t *testing.T) {
	testCases := []struct {
		name      string
		evaluator any
	}{
		{name: "EvaluatorFunc", evaluator: host.EvaluatorFunc(func(self any) (any, error) { return self, nil })},
		{name: "func with error", evaluator: func(self any) (any, error) { return self, nil }},
		{name: "plain func", evaluator: func(self any) any { return self }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := &fakeHost{}
			require.NoError(t, Forward(player, h).Member("sprite", OnReady(tc.evaluator)))

			require.Len(t, h.calls, 1)
			ready := h.calls[0].Ready
			assert.Equal(t, "sprite", ready.Name)
			require.True(t, ready.Evaluator.IsFunc())

			got, err := ready.Evaluator.Evaluate("instance")
			require.NoError(t, err)
			assert.Equal(t, "instance", got)
		})
	}
}

func TestOnReady_InvalidEvaluator(t *testing.T) {
	var nilFunc host.EvaluatorFunc
	for _, evaluator := range []any{42, nil, "", "   ", nilFunc, []string{"$Node"}} {
		h := &fakeHost{}
		err := Forward(player, h).Member("node", OnReady(evaluator))
		require.ErrorIs(t, err, ErrInvalidEvaluator, "evaluator %#v", evaluator)
		assert.Empty(t, h.calls)
	}

	h := &fakeHost{}
	require.ErrorIs(t, Forward(player, h).Member("", OnReady("$Node")), ErrEmptyName)
	assert.Empty(t, h.calls)
}

func TestTool(t *testing.T) {
	h := &fakeHost{}
	require.NoError(t, Forward(player, h).Script(Tool()))
	assert.Equal(t, []call{{Method: "tool", Target: player}}, h.calls)
}

func TestIcon(t *testing.T) {
	h := &fakeHost{}
	f := Forward(player, h)
	require.NoError(t, f.Script(Icon("res://player.svg")))
	assert.Equal(t, []call{{Method: "icon", Target: player, Path: "res://player.svg"}}, h.calls)

	require.ErrorIs(t, f.Script(Icon("")), ErrEmptyName)
	assert.Len(t, h.calls, 1)
}

func TestForwarder_HostErrorPropagatesUnchanged(t *testing.T) {
	hostErr := errors.New("duplicate property")
	h := &fakeHost{reject: func(c call) error {
		if c.Method == "property" {
			return hostErr
		}
		return nil
	}}
	f := Forward(player, h)

	err := f.Member("speed", Signal(), Export(variant.Int), OnReady("1"))
	assert.Same(t, hostErr, err)
	assert.Equal(t, []string{"signal:speed"}, h.methods(), "decorators after the failure must not run")
}
