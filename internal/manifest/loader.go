package manifest

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/jsbridge/internal/ctxlog"
	"github.com/vk/jsbridge/internal/decl"
	"github.com/vk/jsbridge/internal/fsutil"
	"github.com/vk/jsbridge/internal/host"
	"github.com/vk/jsbridge/internal/variant"
)

// ErrDuplicateScript is returned when two script blocks share a name.
var ErrDuplicateScript = errors.New("duplicate script")

// Script is one declared script and its declaration table.
type Script struct {
	Name  string
	File  string
	Table *decl.Table
}

// Loader reads manifests from .hcl files.
type Loader struct{}

// NewLoader creates a new manifest loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every .hcl file found below paths and returns the declared
// scripts in file order, then source order within a file.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*Script, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Manifest loader started.", "path_count", len(paths))

	files, err := fsutil.FindFilesByExtension(".hcl", paths...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered manifest files.", "count", len(files))

	parser := hclparse.NewParser()
	seen := make(map[string]string)
	var scripts []*Script

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse manifest %s: %w", file, diags)
		}

		var root fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode manifest %s: %w", file, diags)
		}

		for _, block := range root.Scripts {
			if prev, ok := seen[block.Name]; ok {
				return nil, fmt.Errorf("%w %q in %s, first declared in %s", ErrDuplicateScript, block.Name, file, prev)
			}
			seen[block.Name] = file

			table, err := l.translateScript(ctx, block)
			if err != nil {
				return nil, fmt.Errorf("script %q in %s: %w", block.Name, file, err)
			}
			scripts = append(scripts, &Script{Name: block.Name, File: file, Table: table})
		}
	}

	logger.Debug("Manifest loading complete.", "scripts", len(scripts))
	return scripts, nil
}

func (l *Loader) translateScript(ctx context.Context, block *scriptBlock) (*decl.Table, error) {
	logger := ctxlog.FromContext(ctx).With("script", block.Name)

	content, diags := block.Body.Content(scriptSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	table := decl.NewTable(host.ClassRef(block.Name))

	if attr, ok := content.Attributes["tool"]; ok {
		var tool bool
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &tool); diags.HasErrors() {
			return nil, diags
		}
		if tool {
			if err := table.Script(decl.Tool()); err != nil {
				return nil, err
			}
		}
	}
	if attr, ok := content.Attributes["icon"]; ok {
		var icon string
		if diags := gohcl.DecodeExpression(attr.Expr, nil, &icon); diags.HasErrors() {
			return nil, diags
		}
		if err := table.Script(decl.Icon(icon)); err != nil {
			return nil, fmt.Errorf("%s: %w", attr.Range, err)
		}
	}

	for _, member := range content.Blocks {
		name := member.Labels[0]
		decorator, err := l.translateMember(member)
		if err != nil {
			return nil, err
		}
		if err := table.Member(name, decorator); err != nil {
			return nil, fmt.Errorf("%s: %s %q: %w", member.DefRange, member.Type, name, err)
		}
		logger.Debug("Member declared.", "kind", member.Type, "name", name)
	}

	return table, nil
}

func (l *Loader) translateMember(block *hcl.Block) (decl.MemberDecorator, error) {
	switch block.Type {
	case "signal":
		var body signalBody
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return nil, diags
		}
		return decl.Signal(), nil

	case "export":
		var body exportBody
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return nil, diags
		}
		typ, err := variant.ParseType(body.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", block.DefRange, decl.ErrInvalidType, err)
		}
		details, err := exportDetails(&body)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", block.DefRange, err)
		}
		return decl.Export(typ, details...), nil

	case "onready":
		var body onreadyBody
		if diags := gohcl.DecodeBody(block.Body, nil, &body); diags.HasErrors() {
			return nil, diags
		}
		return decl.OnReady(body.Expr), nil

	default:
		// scriptSchema admits no other block types.
		panic(fmt.Sprintf("manifest: unexpected block type %q", block.Type))
	}
}

func exportDetails(body *exportBody) ([]decl.Detail, error) {
	var details []decl.Detail
	if body.Class != nil {
		details = append(details, decl.Class(*body.Class))
	}
	if body.Hint != nil {
		details = append(details, decl.Hint(variant.PropertyHint(*body.Hint)))
	}
	if body.HintString != nil {
		details = append(details, decl.HintString(*body.HintString))
	}
	if body.Usage != nil {
		details = append(details, decl.Usage(variant.PropertyUsage(*body.Usage)))
	}

	if body.Extra == nil {
		return details, nil
	}
	val, diags := body.Extra.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return details, nil
	}
	if !val.Type().IsObjectType() && !val.Type().IsMapType() {
		return nil, fmt.Errorf("extra must be an object, got %s", val.Type().FriendlyName())
	}
	extra, err := toNative(val)
	if err != nil {
		return nil, fmt.Errorf("extra: %w", err)
	}
	for key, value := range extra.(map[string]any) {
		details = append(details, decl.Extra(key, value))
	}
	return details, nil
}
