package weave

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanNest(t *testing.T) {
	div := TagConfig{Tag: "div", Type: TypeBlock, SelfNesting: true, BlockChildren: true, InlineChildren: true}
	span := TagConfig{Tag: "span", Type: TypeInline, InlineChildren: true}
	p := TagConfig{Tag: "p", Type: TypeBlock, InlineChildren: true}
	ul := TagConfig{Tag: "ul", Type: TypeBlock, AllowedChildren: []string{"li"}, BlockChildren: true}
	li := TagConfig{Tag: "li", Type: TypeBlock, BlockChildren: true, InlineChildren: true}
	font := TagConfig{Tag: "font", Rule: RulePassThrough}

	tests := []struct {
		name          string
		parent, child TagConfig
		want          bool
	}{
		{"missing parent tag", TagConfig{}, span, false},
		{"missing child tag", div, TagConfig{}, false},
		{"pass-through child always loses", div, font, false},
		{"allowed children admits listed tag", ul, li, true},
		{"allowed children rejects unlisted tag", ul, span, false},
		{"self nesting allowed", div, div, true},
		{"self nesting forbidden", p, p, false},
		{"block child under no-block parent", p, div, false},
		{"block child under block parent", div, div, true},
		{"inline child under inline-friendly parent", p, span, true},
		{"inline child under no-inline parent", ul, TagConfig{Tag: "li", Type: TypeInline}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, CanNest(tt.parent, tt.child))
		})
	}
}

func TestCanNest_PassThroughBeatsAllowedChildren(t *testing.T) {
	// Even a tag named in the parent's allowed-children list is
	// rejected when its own rule is pass-through.
	parent := TagConfig{Tag: "ul", AllowedChildren: []string{"li"}, BlockChildren: true}
	child := TagConfig{Tag: "li", Rule: RulePassThrough, Type: TypeBlock}
	require.False(t, CanNest(parent, child))
}
