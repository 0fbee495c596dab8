package weave

import (
	"sort"
	"strings"
)

// Match is one successful matcher hit: the exact substring consumed and
// any extra props the matcher wants merged onto the produced element.
type Match struct {
	Matched string
	Props   map[string]any
}

// Matcher scans text for a pattern and proposes an inline element
// replacement. Match must report the first match within the given text
// and must make progress: a matcher that keeps re-reporting a match the
// pipeline cannot locate or advance past violates the contract and is
// not guarded against.
type Matcher interface {
	// TagName is the registry tag of the elements this matcher
	// creates. The matcher is skipped when the tag is unknown,
	// denied, or cannot nest under the current parent.
	TagName() string

	// InverseFlag names the Props key that disables this matcher
	// when set to true.
	InverseFlag() string

	// Match reports the first match within text, if any.
	Match(text string) (Match, bool)

	// CreateElement builds the element for a matched substring.
	// props is the caller-supplied props merged with the Match props;
	// key is the parse-allocated element key.
	CreateElement(matched string, props map[string]any, key int) *Element
}

// span records one claimed match: a byte range over the original text
// and the element that replaces it. Tracking ranges instead of
// rewriting the text means matcher output can never be re-matched or
// mistaken for an unprocessed marker.
type span struct {
	start, end int
	elem       *Element
}

// applyMatchers runs every enabled matcher over text under the given
// parent context and returns the interleaved text/element sequence, or
// nil when no matcher produced an element.
func (p *Parser) applyMatchers(text string, parent TagConfig) []Node {
	var spans []span
	for _, m := range p.cfg.Matchers {
		if p.matcherDisabled(m) {
			continue
		}
		cfg, ok := p.cfg.Registry.Tags[m.TagName()]
		if !ok || cfg.Rule == RuleDeny || !CanNest(parent, cfg) {
			continue
		}

		pos := 0
		for pos < len(text) {
			match, ok := m.Match(text[pos:])
			if !ok || match.Matched == "" {
				break
			}
			// First occurrence of the exact matched substring, in
			// left-to-right discovery order.
			idx := strings.Index(text[pos:], match.Matched)
			if idx < 0 {
				break
			}
			start := pos + idx
			end := start + len(match.Matched)
			if overlapsAny(spans, start, end) {
				// Region already claimed by an earlier matcher.
				pos = end
				continue
			}
			elem := m.CreateElement(match.Matched, mergeProps(p.cfg.Props, match.Props), p.nextKey())
			spans = append(spans, span{start: start, end: end, elem: elem})
			pos = end
		}
	}
	if len(spans) == 0 {
		return nil
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
	var nodes []Node
	last := 0
	for _, s := range spans {
		if s.start > last {
			nodes = append(nodes, Text(text[last:s.start]))
		}
		nodes = append(nodes, s.elem)
		last = s.end
	}
	if last < len(text) {
		nodes = append(nodes, Text(text[last:]))
	}
	return nodes
}

func (p *Parser) matcherDisabled(m Matcher) bool {
	v, ok := p.cfg.Props[m.InverseFlag()]
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

func overlapsAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}

// mergeProps overlays extra on top of a copy of base. Returns nil when
// both are empty.
func mergeProps(base, extra map[string]any) map[string]any {
	if len(base) == 0 && len(extra) == 0 {
		return nil
	}
	merged := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	return merged
}
