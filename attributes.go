package weave

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Filter transforms one attribute's value during extraction. Filters
// are applied in registration order; each consumes the previous one's
// output. Filters must be pure functions over strings.
type Filter interface {
	// AttributeName is the lowercase attribute name this filter
	// applies to.
	AttributeName() string

	// Transform returns the replacement value.
	Transform(value string) string
}

// FilterFunc adapts a plain function to the Filter interface for one
// attribute.
type FilterFunc struct {
	Attribute string
	Fn        func(string) string
}

// AttributeName implements Filter.
func (f FilterFunc) AttributeName() string { return f.Attribute }

// Transform implements Filter.
func (f FilterFunc) Transform(value string) string { return f.Fn(value) }

var (
	// handlerRe matches event-handler attribute names (onclick,
	// onerror, ...) after lowercasing.
	handlerRe = regexp.MustCompile(`^on[a-z]`)

	// execURIRe matches values carrying an executable URI scheme.
	execURIRe = regexp.MustCompile(`(?i)^\s*(javascript|vbscript|data)\s*:`)
)

// unsafeValue reports whether a raw attribute value smuggles an
// executable URI scheme. The value is trimmed and stripped of control
// characters first; entity-encoded forms (&#106;avascript:) arrive here
// already decoded by the markup parser.
func unsafeValue(raw string) bool {
	v := strings.TrimSpace(raw)
	v = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, v)
	return execURIRe.MatchString(v)
}

// extractAttributes converts an element's raw attribute list into the
// sanitized, cast, renamed map stored on the produced Element. aria-*
// names bypass the allow-list but stay subject to the handler and
// executable-URI denials. Returns nil when nothing survives.
func (p *Parser) extractAttributes(n *html.Node) map[string]any {
	if len(n.Attr) == 0 {
		return nil
	}
	attrs := make(map[string]any, len(n.Attr))
	for _, a := range n.Attr {
		name := strings.ToLower(a.Key)

		cast := AttrString
		if !strings.HasPrefix(name, "aria-") {
			c, ok := p.cfg.Registry.Attributes[name]
			if !ok || c == AttrDeny {
				continue
			}
			cast = c
		}
		if handlerRe.MatchString(name) || unsafeValue(a.Val) {
			continue
		}

		value := a.Val
		for _, f := range p.cfg.Filters {
			if f.AttributeName() == name {
				value = f.Transform(value)
			}
		}

		out := name
		if renamed, ok := p.cfg.Registry.Renames[name]; ok {
			out = renamed
		}
		switch cast {
		case AttrBool:
			attrs[out] = value == "true" || value == name
		case AttrNumber:
			f, err := strconv.ParseFloat(value, 64)
			if err != nil {
				// Unusable numbers drop like any other bad attribute.
				continue
			}
			attrs[out] = f
		default:
			attrs[out] = value
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}
