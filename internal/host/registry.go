package host

import (
	"context"

	"github.com/vk/jsbridge/internal/classdb"
)

// Registry is the host's registration facade for script members. Each call
// registers exactly one declaration; a non-nil error means the host rejected
// it.
type Registry interface {
	AddScriptSignal(target Target, name string) error
	AddScriptProperty(target Target, info PropertyInfo) error
	AddScriptReady(target Target, info ReadyInfo) error
	AddScriptTool(target Target) error
	AddScriptIcon(target Target, path string) error
}

// ModuleRegistry is the host's table of loaded script modules.
type ModuleRegistry interface {
	AddModule(id string, value any) error
	FindModule(id string) (any, bool)
}

// Reflection is the host's read-only view of its class database, offered to
// editor tooling.
type Reflection interface {
	GetClasses(ctx context.Context) ([]classdb.ClassInfo, error)
	GetPrimitiveTypes(ctx context.Context) ([]classdb.PrimitiveClassInfo, error)
	GetSingletons(ctx context.Context) ([]classdb.SingletonInfo, error)
	GetGlobalConstants(ctx context.Context) ([]classdb.GlobalConstantInfo, error)
	GetUtilityFunctions(ctx context.Context) ([]classdb.MethodBind, error)
	GetClassDoc(ctx context.Context, className string) (classdb.ClassDoc, bool, error)
	DeleteFile(ctx context.Context, path string) error
}

var _ Reflection = (*classdb.Snapshot)(nil)
