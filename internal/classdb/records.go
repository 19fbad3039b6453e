package classdb

import (
	"fmt"
	"sort"

	"github.com/vk/jsbridge/internal/variant"
)

// PrimitiveConstantInfo is a constant declared on a primitive type.
// Value is only meaningful when Type is a literal type.
type PrimitiveConstantInfo struct {
	Name  string       `yaml:"name" toml:"name"`
	Type  variant.Type `yaml:"type" toml:"type"`
	Value int64        `yaml:"value" toml:"value"`
}

// ConstantInfo is an integer constant declared on a class.
type ConstantInfo struct {
	Name  string `yaml:"name" toml:"name"`
	Value int64  `yaml:"value" toml:"value"`
}

// EnumInfo lists the literal names of a class enum.
type EnumInfo struct {
	Name       string   `yaml:"name" toml:"name"`
	Literals   []string `yaml:"literals" toml:"literals"`
	IsBitfield bool     `yaml:"is_bitfield" toml:"is_bitfield"`
}

// DefaultArgumentInfo is the default value of a trailing method argument.
type DefaultArgumentInfo struct {
	Type  variant.Type `yaml:"type" toml:"type"`
	Value any          `yaml:"value" toml:"value"`
}

// MethodBind describes a bound method. The host reports plain method infos
// through the same shape, in which case ID, HintFlags and DefaultArguments
// are left unset.
type MethodBind struct {
	ID               int64                 `yaml:"id" toml:"id"`
	Name             string                `yaml:"name" toml:"name"`
	HintFlags        variant.MethodFlags   `yaml:"hint_flags" toml:"hint_flags"`
	IsStatic         bool                  `yaml:"is_static" toml:"is_static"`
	IsConst          bool                  `yaml:"is_const" toml:"is_const"`
	IsVararg         bool                  `yaml:"is_vararg" toml:"is_vararg"`
	ArgumentCount    int32                 `yaml:"argument_count" toml:"argument_count"`
	Args             []PropertyInfo        `yaml:"args_" toml:"args_"`
	DefaultArguments []DefaultArgumentInfo `yaml:"default_arguments,omitempty" toml:"default_arguments,omitempty"`
	Return           *PropertyInfo         `yaml:"return_,omitempty" toml:"return_,omitempty"`
}

// PropertyInfo is the host's description of a typed slot: an argument, a
// return value or a property.
type PropertyInfo struct {
	Name       string                `yaml:"name" toml:"name"`
	Type       variant.Type          `yaml:"type" toml:"type"`
	ClassName  string                `yaml:"class_name" toml:"class_name"`
	Hint       variant.PropertyHint  `yaml:"hint" toml:"hint"`
	HintString string                `yaml:"hint_string" toml:"hint_string"`
	Usage      variant.PropertyUsage `yaml:"usage" toml:"usage"`
}

// PropertySetGetInfo is a class property with its accessor methods.
type PropertySetGetInfo struct {
	Name   string       `yaml:"name" toml:"name"`
	Type   variant.Type `yaml:"type" toml:"type"`
	Index  int          `yaml:"index" toml:"index"`
	Setter string       `yaml:"setter" toml:"setter"`
	Getter string       `yaml:"getter" toml:"getter"`
	Info   PropertyInfo `yaml:"info" toml:"info"`
}

// PrimitiveGetSetInfo is a member of a primitive type, e.g. Vector2.x.
type PrimitiveGetSetInfo struct {
	Name string       `yaml:"name" toml:"name"`
	Type variant.Type `yaml:"type" toml:"type"`
}

// SignalInfo is a class signal and its callback signature.
type SignalInfo struct {
	Name   string     `yaml:"name" toml:"name"`
	Method MethodBind `yaml:"method_" toml:"method_"`
}

type ArgumentInfo struct {
	Name string       `yaml:"name" toml:"name"`
	Type variant.Type `yaml:"type" toml:"type"`
}

type ConstructorInfo struct {
	Arguments []ArgumentInfo `yaml:"arguments" toml:"arguments"`
}

type OperatorInfo struct {
	Name       string       `yaml:"name" toml:"name"`
	ReturnType variant.Type `yaml:"return_type" toml:"return_type"`
	LeftType   variant.Type `yaml:"left_type" toml:"left_type"`
	RightType  variant.Type `yaml:"right_type" toml:"right_type"`
}

// BasicClassInfo is shared by object classes and primitive types.
type BasicClassInfo struct {
	Name    string       `yaml:"name" toml:"name"`
	Methods []MethodBind `yaml:"methods" toml:"methods"`
	Enums   []EnumInfo   `yaml:"enums,omitempty" toml:"enums,omitempty"`
}

// MethodNames returns the names of all methods in declaration order.
func (c BasicClassInfo) MethodNames() []string {
	names := make([]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		names = append(names, m.Name)
	}
	return names
}

// ClassInfo describes an object class registered in the host's class database.
type ClassInfo struct {
	BasicClassInfo `yaml:",inline"`

	Super          string               `yaml:"super" toml:"super"`
	Properties     []PropertySetGetInfo `yaml:"properties" toml:"properties"`
	VirtualMethods []MethodBind         `yaml:"virtual_methods" toml:"virtual_methods"`
	Signals        []SignalInfo         `yaml:"signals" toml:"signals"`
	Constants      []ConstantInfo       `yaml:"constants,omitempty" toml:"constants,omitempty"`
}

// PrimitiveClassInfo describes a builtin value type such as Vector2.
type PrimitiveClassInfo struct {
	BasicClassInfo `yaml:",inline"`

	Constructors []ConstructorInfo       `yaml:"constructors" toml:"constructors"`
	Operators    []OperatorInfo          `yaml:"operators" toml:"operators"`
	Properties   []PrimitiveGetSetInfo   `yaml:"properties" toml:"properties"`
	Constants    []PrimitiveConstantInfo `yaml:"constants,omitempty" toml:"constants,omitempty"`
}

type SingletonInfo struct {
	Name        string `yaml:"name" toml:"name"`
	ClassName   string `yaml:"class_name" toml:"class_name"`
	UserCreated bool   `yaml:"user_created" toml:"user_created"`
	EditorOnly  bool   `yaml:"editor_only" toml:"editor_only"`
}

// GlobalConstantInfo is a named group of global integer constants.
type GlobalConstantInfo struct {
	Name   string           `yaml:"name" toml:"name"`
	Values map[string]int64 `yaml:"values" toml:"values"`
}

// SortedNames returns the constant names of the group in lexical order.
func (g GlobalConstantInfo) SortedNames() []string {
	names := make([]string, 0, len(g.Values))
	for name := range g.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type DocEntry struct {
	Description string `yaml:"description" toml:"description"`
}

// ClassDoc is the editor documentation of a class, keyed by member name.
type ClassDoc struct {
	BriefDescription string              `yaml:"brief_description" toml:"brief_description"`
	Constants        map[string]DocEntry `yaml:"constants" toml:"constants"`
	Methods          map[string]DocEntry `yaml:"methods" toml:"methods"`
	Properties       map[string]DocEntry `yaml:"properties" toml:"properties"`
	Signals          map[string]DocEntry `yaml:"signals" toml:"signals"`
}

// BuildInfo carries the host's version constants and build switches.
type BuildInfo struct {
	VersionMajor int    `yaml:"version_major" toml:"version_major"`
	VersionMinor int    `yaml:"version_minor" toml:"version_minor"`
	VersionPatch int    `yaml:"version_patch" toml:"version_patch"`
	DevEnabled   bool   `yaml:"dev_enabled" toml:"dev_enabled"`
	ToolsEnabled bool   `yaml:"tools_enabled" toml:"tools_enabled"`
	DocsURL      string `yaml:"docs_url" toml:"docs_url"`
}

// Version formats the version constants as major.minor.patch.
func (b BuildInfo) Version() string {
	return fmt.Sprintf("%d.%d.%d", b.VersionMajor, b.VersionMinor, b.VersionPatch)
}
