package complete

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// parsePath parses a path expression such as `a.b[0]["k"]` into a traversal.
// Only attribute and index steps can appear in the result.
func parsePath(expr string) (hcl.Traversal, error) {
	traversal, diags := hclsyntax.ParseTraversalAbs([]byte(expr), "<completion>", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	return traversal, nil
}

// walkPath resolves traversal step by step starting from scope.
func walkPath(enum Enumerator, scope any, traversal hcl.Traversal) (any, error) {
	cur := scope
	for _, step := range traversal {
		var (
			next any
			ok   bool
		)
		switch s := step.(type) {
		case hcl.TraverseRoot:
			next, ok = enum.Lookup(cur, s.Name)
		case hcl.TraverseAttr:
			next, ok = enum.Lookup(cur, s.Name)
		case hcl.TraverseIndex:
			next, ok = lookupIndex(enum, cur, s.Key)
		default:
			return nil, fmt.Errorf("unsupported path step %T", step)
		}
		if !ok {
			return nil, fmt.Errorf("path step at %s does not resolve", step.SourceRange())
		}
		cur = next
	}
	return cur, nil
}

func lookupIndex(enum Enumerator, cur any, key cty.Value) (any, bool) {
	if key.IsNull() || !key.IsKnown() {
		return nil, false
	}
	switch key.Type() {
	case cty.String:
		return enum.Lookup(cur, key.AsString())
	case cty.Number:
		bf := key.AsBigFloat()
		if !bf.IsInt() {
			return nil, false
		}
		i, _ := bf.Int64()
		return enum.Index(cur, int(i))
	}
	return nil, false
}
