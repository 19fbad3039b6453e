package manifest

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot decodes the top-level blocks of a manifest file.
type fileRoot struct {
	Scripts []*scriptBlock `hcl:"script,block"`
}

type scriptBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// scriptSchema keeps attributes and member blocks apart while preserving the
// source order of the blocks.
var scriptSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "tool"},
		{Name: "icon"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "signal", LabelNames: []string{"name"}},
		{Type: "export", LabelNames: []string{"name"}},
		{Type: "onready", LabelNames: []string{"name"}},
	},
}

// signalBody has no attributes; decoding into it rejects any.
type signalBody struct{}

type exportBody struct {
	Type       string         `hcl:"type"`
	Class      *string        `hcl:"class,optional"`
	Hint       *int           `hcl:"hint,optional"`
	HintString *string        `hcl:"hint_string,optional"`
	Usage      *int           `hcl:"usage,optional"`
	Extra      hcl.Expression `hcl:"extra,optional"`
}

type onreadyBody struct {
	Expr string `hcl:"expr"`
}
