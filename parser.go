package weave

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Config controls one Parser. A nil Config or nil Registry falls back
// to DefaultRegistry. Config contents must not be mutated while any
// Parser built from it is in use.
type Config struct {
	// Registry supplies the tag/attribute allow-list tables.
	Registry *Registry

	// Matchers run over every text run, in registration order.
	Matchers []Matcher

	// Filters transform attribute values during extraction, in
	// registration order.
	Filters []Filter

	// NoHTML flattens every element wrapper to its content while
	// matchers still run. It does not re-enable a matcher disabled by
	// its inverse flag; the two settings are independent.
	NoHTML bool

	// Props are handed to matcher element factories. A true value
	// under a matcher's InverseFlag key disables that matcher.
	Props map[string]any
}

// Parser converts a markup string into an ordered sequence of text runs
// and typed elements, enforcing the registry allow-lists. Each Parser
// owns its key counter and result cache, so Parsers sharing a Registry,
// Matchers, and Filters may run concurrently.
type Parser struct {
	markup string
	cfg    Config
	key    int
	nodes  []Node
	parsed bool
}

// NewParser returns a parser over markup. cfg may be nil for defaults.
func NewParser(markup string, cfg *Config) *Parser {
	p := &Parser{markup: markup}
	if cfg != nil {
		p.cfg = *cfg
	}
	if p.cfg.Registry == nil {
		p.cfg.Registry = DefaultRegistry()
	}
	return p
}

// Parse builds the node sequence. The whole input is parsed eagerly and
// synchronously in one call; the result is cached, so calling Parse
// again returns the identical sequence until Reset. Empty input yields
// an empty sequence.
func (p *Parser) Parse() ([]Node, error) {
	if p.parsed {
		return p.nodes, nil
	}
	root, err := ingest(p.markup)
	if err != nil {
		return nil, err
	}
	p.key = 0
	if root != nil {
		p.nodes = p.buildTree(root, p.cfg.Registry.Tags["body"])
	} else {
		p.nodes = nil
	}
	p.parsed = true
	return p.nodes, nil
}

// Reset points the parser at new markup and drops the cached result.
// The key counter restarts at zero on the next Parse.
func (p *Parser) Reset(markup string) {
	p.markup = markup
	p.nodes = nil
	p.parsed = false
}

// nextKey allocates the next element key. Keys start at 0 and increase
// by one per created element, in creation order.
func (p *Parser) nextKey() int {
	k := p.key
	p.key++
	return k
}

// ingest parses markup into an inert node tree rooted at a body
// container. The x/net/html parser never executes scripts or fetches
// resources, so the tree is traversal-only. Input starting with a
// doctype is parsed as a full document and its body becomes the root;
// anything else is parsed as a body fragment.
func ingest(markup string) (*html.Node, error) {
	if markup == "" {
		return nil, nil
	}
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(markup)), "<!doctype") {
		doc, err := html.Parse(strings.NewReader(markup))
		if err != nil {
			return nil, fmt.Errorf("weave: parse document: %w", err)
		}
		return findBody(doc), nil
	}
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	frag, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		return nil, fmt.Errorf("weave: parse fragment: %w", err)
	}
	for _, n := range frag {
		body.AppendChild(n)
	}
	return body, nil
}

func findBody(doc *html.Node) *html.Node {
	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.DataAtom == atom.Body {
			return n
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if r := find(c); r != nil {
				return r
			}
		}
		return nil
	}
	return find(doc)
}

// buildTree walks parent's children in document order and produces the
// final node sequence. Adjacent raw text merges into one Text run;
// comments, doctypes, and other non-content nodes are ignored.
//
// Element children resolve in order: unknown tags drop with their whole
// subtree; denied tags drop with their subtree; NoHTML or a nesting
// violation flattens the child (its children are parsed under the
// child's own config and spliced in place); everything else
// materializes as an Element.
func (p *Parser) buildTree(parent *html.Node, parentCfg TagConfig) []Node {
	var nodes []Node
	var run strings.Builder

	flush := func() {
		if run.Len() > 0 {
			nodes = append(nodes, Text(run.String()))
			run.Reset()
		}
	}

	for child := parent.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			tag := strings.ToLower(child.Data)
			cfg, known := p.cfg.Registry.Tags[tag]
			if !known {
				continue
			}
			flush()
			switch {
			case cfg.Rule == RuleDeny:
				// subtree dropped
			case p.cfg.NoHTML || !CanNest(parentCfg, cfg):
				nodes = append(nodes, p.buildTree(child, cfg)...)
			default:
				elem := &Element{
					Key:        p.nextKey(),
					TagName:    tag,
					Attributes: p.extractAttributes(child),
				}
				elem.Children = p.buildTree(child, cfg)
				nodes = append(nodes, elem)
			}

		case html.TextNode:
			if matched := p.applyMatchers(child.Data, parentCfg); matched != nil {
				flush()
				nodes = append(nodes, matched...)
			} else {
				run.WriteString(child.Data)
			}
		}
	}
	flush()
	return nodes
}
