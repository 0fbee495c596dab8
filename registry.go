package weave

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule decides what happens to a tag's element wrapper.
type Rule int

const (
	// RuleAllow materializes the element, subject to nesting checks.
	RuleAllow Rule = iota

	// RuleDeny drops the element and its entire subtree.
	RuleDeny

	// RulePassThrough drops the wrapper but parses its children and
	// splices them into the parent's position.
	RulePassThrough
)

// TagType classifies a tag for block/inline nesting checks. Tags that
// are neither (e.g. the body container) use TypeNone.
type TagType int

const (
	TypeNone TagType = iota
	TypeInline
	TypeBlock
)

// TagConfig is the structural rule for one tag.
type TagConfig struct {
	// Tag is the lowercase tag name. An empty Tag marks a missing
	// config and fails every nesting check.
	Tag  string
	Rule Rule
	Type TagType

	// AllowedChildren restricts which tags may nest directly under
	// this one. Empty means no restriction.
	AllowedChildren []string

	// SelfNesting permits a tag directly inside itself.
	SelfNesting bool

	// BlockChildren and InlineChildren permit children of that type.
	BlockChildren  bool
	InlineChildren bool
}

// AttrType is the value-cast rule for one attribute.
type AttrType int

const (
	// AttrString keeps the filtered value as a string.
	AttrString AttrType = iota

	// AttrBool casts to true iff the value equals "true" or the
	// attribute's own name (boolean-attribute shorthand).
	AttrBool

	// AttrNumber parses the value as a float64. Values that fail to
	// parse are omitted from the output.
	AttrNumber

	// AttrDeny drops the attribute.
	AttrDeny
)

// Registry holds the tag and attribute allow-list tables. The tables
// are data, not logic: swap them per deployment for stricter or looser
// rules, or load them from YAML with [LoadRegistry]. A Registry must
// not be mutated once a Parser uses it; read-only Registries are safe
// to share across concurrent parses.
type Registry struct {
	// Tags maps lowercase tag name to its structural rule. A tag
	// absent from the map is dropped with its whole subtree.
	Tags map[string]TagConfig

	// Attributes maps lowercase attribute name to its cast rule. An
	// attribute absent from the map is dropped, except aria-* names.
	Attributes map[string]AttrType

	// Renames maps an attribute's markup name to the property name
	// used in Element.Attributes, e.g. "class" -> "className".
	Renames map[string]string
}

// DefaultRegistry returns a Registry covering the common safe subset of
// content HTML — headings, paragraphs, formatting, lists, links,
// images, tables, quotes, sectioning — with script, style, frames,
// forms, and media explicitly denied.
func DefaultRegistry() *Registry {
	tags := make(map[string]TagConfig, 64)

	inline := func(names ...string) {
		for _, n := range names {
			tags[n] = TagConfig{Tag: n, Type: TypeInline, InlineChildren: true}
		}
	}
	block := func(names ...string) {
		for _, n := range names {
			tags[n] = TagConfig{Tag: n, Type: TypeBlock, BlockChildren: true, InlineChildren: true}
		}
	}
	deny := func(names ...string) {
		for _, n := range names {
			tags[n] = TagConfig{Tag: n, Rule: RuleDeny}
		}
	}

	inline(
		"a", "abbr", "b", "cite", "code", "em", "i", "kbd", "mark",
		"q", "s", "samp", "small", "strong", "sub", "sup", "time", "u",
	)
	block(
		"article", "aside", "blockquote", "details", "div", "figcaption",
		"figure", "footer", "header", "li", "main", "pre", "section",
		"summary",
	)
	deny(
		"applet", "audio", "base", "button", "canvas", "embed", "form",
		"frame", "frameset", "iframe", "input", "link", "meta",
		"noscript", "object", "script", "select", "style", "textarea",
		"title", "video",
	)

	// Headings and paragraphs carry inline content only.
	for _, n := range []string{"h1", "h2", "h3", "h4", "h5", "h6", "p"} {
		tags[n] = TagConfig{Tag: n, Type: TypeBlock, InlineChildren: true}
	}

	// Void content tags carry no children at all.
	tags["br"] = TagConfig{Tag: "br", Type: TypeInline}
	tags["img"] = TagConfig{Tag: "img", Type: TypeInline}
	tags["hr"] = TagConfig{Tag: "hr", Type: TypeBlock}

	// List and table structure.
	tags["ol"] = TagConfig{Tag: "ol", Type: TypeBlock, AllowedChildren: []string{"li"}, BlockChildren: true}
	tags["ul"] = TagConfig{Tag: "ul", Type: TypeBlock, AllowedChildren: []string{"li"}, BlockChildren: true}
	tags["table"] = TagConfig{Tag: "table", Type: TypeBlock, AllowedChildren: []string{"caption", "thead", "tbody", "tfoot", "tr"}}
	tags["caption"] = TagConfig{Tag: "caption", InlineChildren: true}
	tags["thead"] = TagConfig{Tag: "thead", AllowedChildren: []string{"tr"}}
	tags["tbody"] = TagConfig{Tag: "tbody", AllowedChildren: []string{"tr"}}
	tags["tfoot"] = TagConfig{Tag: "tfoot", AllowedChildren: []string{"tr"}}
	tags["tr"] = TagConfig{Tag: "tr", AllowedChildren: []string{"td", "th"}}
	tags["td"] = TagConfig{Tag: "td", BlockChildren: true, InlineChildren: true}
	tags["th"] = TagConfig{Tag: "th", InlineChildren: true}

	// Containers that may nest inside themselves.
	for _, n := range []string{"blockquote", "div", "section", "span"} {
		cfg := tags[n]
		if cfg.Tag == "" {
			cfg = TagConfig{Tag: n, Type: TypeInline, InlineChildren: true}
		}
		cfg.SelfNesting = true
		tags[n] = cfg
	}

	// Presentational wrappers are flattened to their content.
	tags["center"] = TagConfig{Tag: "center", Rule: RulePassThrough}
	tags["font"] = TagConfig{Tag: "font", Rule: RulePassThrough}

	// The body container is the root parent context and never
	// materializes as an element itself.
	tags["body"] = TagConfig{Tag: "body", Rule: RulePassThrough, BlockChildren: true, InlineChildren: true}

	return &Registry{
		Tags: tags,
		Attributes: map[string]AttrType{
			"alt":      AttrString,
			"cite":     AttrString,
			"class":    AttrString,
			"colspan":  AttrNumber,
			"datetime": AttrString,
			"dir":      AttrString,
			"for":      AttrString,
			"height":   AttrNumber,
			"hidden":   AttrBool,
			"href":     AttrString,
			"id":       AttrString,
			"lang":     AttrString,
			"loading":  AttrString,
			"rel":      AttrString,
			"reversed": AttrBool,
			"role":     AttrString,
			"rowspan":  AttrNumber,
			"scope":    AttrString,
			"span":     AttrNumber,
			"src":      AttrString,
			"start":    AttrNumber,
			"style":    AttrDeny,
			"target":   AttrString,
			"title":    AttrString,
			"width":    AttrNumber,
		},
		Renames: map[string]string{
			"class": "className",
			"for":   "htmlFor",
		},
	}
}

// StrictRegistry returns a Registry that allows only basic inline
// formatting and paragraphs with no attributes at all, suitable for
// comment sections and other untrusted short-form content.
func StrictRegistry() *Registry {
	tags := make(map[string]TagConfig, 8)
	for _, n := range []string{"b", "em", "i", "strong"} {
		tags[n] = TagConfig{Tag: n, Type: TypeInline, InlineChildren: true}
	}
	tags["br"] = TagConfig{Tag: "br", Type: TypeInline}
	tags["p"] = TagConfig{Tag: "p", Type: TypeBlock, InlineChildren: true}
	tags["body"] = TagConfig{Tag: "body", Rule: RulePassThrough, BlockChildren: true, InlineChildren: true}
	return &Registry{
		Tags:       tags,
		Attributes: map[string]AttrType{},
		Renames:    map[string]string{},
	}
}

type yamlTag struct {
	Rule     string   `yaml:"rule"`
	Type     string   `yaml:"type"`
	Children []string `yaml:"children"`
	Self     bool     `yaml:"self"`
	Block    bool     `yaml:"block"`
	Inline   bool     `yaml:"inline"`
}

type yamlRegistry struct {
	Tags       map[string]yamlTag `yaml:"tags"`
	Attributes map[string]string  `yaml:"attributes"`
	Renames    map[string]string  `yaml:"renames"`
}

// LoadRegistry reads allow-list tables from YAML, so deployments can
// swap rules without recompiling. Format:
//
//	tags:
//	  a: {rule: allow, type: inline, inline: true}
//	  script: {rule: deny}
//	attributes:
//	  href: string
//	  colspan: number
//	renames:
//	  class: className
func LoadRegistry(r io.Reader) (*Registry, error) {
	var raw yamlRegistry
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("weave: decode registry: %w", err)
	}

	reg := &Registry{
		Tags:       make(map[string]TagConfig, len(raw.Tags)),
		Attributes: make(map[string]AttrType, len(raw.Attributes)),
		Renames:    make(map[string]string, len(raw.Renames)),
	}
	for name, t := range raw.Tags {
		name = strings.ToLower(name)
		cfg := TagConfig{
			Tag:             name,
			AllowedChildren: t.Children,
			SelfNesting:     t.Self,
			BlockChildren:   t.Block,
			InlineChildren:  t.Inline,
		}
		switch strings.ToLower(t.Rule) {
		case "", "allow":
			cfg.Rule = RuleAllow
		case "deny":
			cfg.Rule = RuleDeny
		case "pass-through", "passthrough":
			cfg.Rule = RulePassThrough
		default:
			return nil, fmt.Errorf("weave: tag %q: unknown rule %q", name, t.Rule)
		}
		switch strings.ToLower(t.Type) {
		case "", "none":
			cfg.Type = TypeNone
		case "inline":
			cfg.Type = TypeInline
		case "block":
			cfg.Type = TypeBlock
		default:
			return nil, fmt.Errorf("weave: tag %q: unknown type %q", name, t.Type)
		}
		reg.Tags[name] = cfg
	}
	for name, cast := range raw.Attributes {
		name = strings.ToLower(name)
		switch strings.ToLower(cast) {
		case "", "string":
			reg.Attributes[name] = AttrString
		case "bool":
			reg.Attributes[name] = AttrBool
		case "number":
			reg.Attributes[name] = AttrNumber
		case "deny":
			reg.Attributes[name] = AttrDeny
		default:
			return nil, fmt.Errorf("weave: attribute %q: unknown cast %q", name, cast)
		}
	}
	for from, to := range raw.Renames {
		reg.Renames[strings.ToLower(from)] = to
	}
	return reg, nil
}
