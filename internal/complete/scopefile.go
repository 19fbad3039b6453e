package complete

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// LoadScopeFile reads a file of top-level attributes (.hcl or .json) and
// returns them as one cty object usable as a completion scope. Expressions
// are evaluated without variables or functions.
func LoadScopeFile(path string) (cty.Value, error) {
	parser := hclparse.NewParser()

	var (
		file  *hcl.File
		diags hcl.Diagnostics
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		file, diags = parser.ParseHCLFile(path)
	case ".json":
		file, diags = parser.ParseJSONFile(path)
	default:
		return cty.NilVal, fmt.Errorf("unsupported scope file format %q", ext)
	}
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to parse scope file %s: %w", path, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("failed to read scope file %s: %w", path, diags)
	}

	vals := make(map[string]cty.Value, len(attrs))
	for name, attr := range attrs {
		val, valDiags := attr.Expr.Value(nil)
		if valDiags.HasErrors() {
			return cty.NilVal, fmt.Errorf("failed to evaluate %q in %s: %w", name, path, valDiags)
		}
		vals[name] = val
	}
	return cty.ObjectVal(vals), nil
}
