package weave

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func elemWithAttrs(tag string, pairs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: tag}
	for i := 0; i+1 < len(pairs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: pairs[i], Val: pairs[i+1]})
	}
	return n
}

func TestExtract_LowercasesAndRenames(t *testing.T) {
	p := NewParser("", nil)
	got := p.extractAttributes(elemWithAttrs("a", "HREF", "#", "Class", "foo", "FOR", "field"))

	require.Equal(t, map[string]any{
		"href":      "#",
		"className": "foo",
		"htmlFor":   "field",
	}, got)
}

func TestExtract_UnknownAndDeniedDropped(t *testing.T) {
	p := NewParser("", nil)
	got := p.extractAttributes(elemWithAttrs("p", "data-track", "1", "style", "color:red", "id", "keep"))

	require.Equal(t, map[string]any{"id": "keep"}, got)
}

func TestExtract_EventHandlersDropped(t *testing.T) {
	p := NewParser("", nil)
	got := p.extractAttributes(elemWithAttrs("a", "onclick", "evil()", "OnError", "evil()", "href", "#"))

	require.Equal(t, map[string]any{"href": "#"}, got)
}

func TestExtract_ExecutableURIValuesDropped(t *testing.T) {
	p := NewParser("", nil)
	for _, val := range []string{
		"javascript:alert(1)",
		" JAVASCRIPT:alert(1)",
		"\tjava\x00script:alert(1)",
		"vbscript:msgbox(1)",
		"data:text/html,<script>alert(1)</script>",
		"javascript\t:alert(1)",
	} {
		got := p.extractAttributes(elemWithAttrs("a", "href", val))
		require.Nil(t, got, "value %q should be dropped", val)
	}
}

func TestExtract_SafeURIValuesKept(t *testing.T) {
	p := NewParser("", nil)
	for _, val := range []string{
		"https://example.com",
		"/relative/path",
		"#fragment",
		"mailto:bob@example.com",
	} {
		got := p.extractAttributes(elemWithAttrs("a", "href", val))
		require.Equal(t, map[string]any{"href": val}, got)
	}
}

func TestExtract_AriaBypassesAllowListNotSecurity(t *testing.T) {
	p := NewParser("", nil)
	got := p.extractAttributes(elemWithAttrs("span", "aria-label", "close", "ARIA-hidden", "true"))
	require.Equal(t, map[string]any{
		"aria-label":  "close",
		"aria-hidden": "true",
	}, got)

	got = p.extractAttributes(elemWithAttrs("span", "aria-label", "javascript:alert(1)"))
	require.Nil(t, got)
}

func TestExtract_BoolCast(t *testing.T) {
	p := NewParser("", nil)

	got := p.extractAttributes(elemWithAttrs("p", "hidden", "true"))
	require.Equal(t, map[string]any{"hidden": true}, got)

	// Boolean-attribute shorthand: value equals the attribute name.
	got = p.extractAttributes(elemWithAttrs("p", "hidden", "hidden"))
	require.Equal(t, map[string]any{"hidden": true}, got)

	got = p.extractAttributes(elemWithAttrs("p", "hidden", "false"))
	require.Equal(t, map[string]any{"hidden": false}, got)
}

func TestExtract_NumberCast(t *testing.T) {
	p := NewParser("", nil)

	got := p.extractAttributes(elemWithAttrs("td", "colspan", "3", "rowspan", "2.5"))
	require.Equal(t, map[string]any{"colspan": 3.0, "rowspan": 2.5}, got)

	// Values that fail numeric casting are omitted.
	got = p.extractAttributes(elemWithAttrs("td", "colspan", "wide"))
	require.Nil(t, got)
}

func TestExtract_FilterPipelineOrder(t *testing.T) {
	p := NewParser("", &Config{Filters: []Filter{
		FilterFunc{Attribute: "title", Fn: func(v string) string { return v + "-1" }},
		FilterFunc{Attribute: "title", Fn: func(v string) string { return v + "-2" }},
		FilterFunc{Attribute: "href", Fn: func(v string) string { return strings.ToUpper(v) }},
	}})
	got := p.extractAttributes(elemWithAttrs("a", "title", "t", "href", "#x"))

	require.Equal(t, map[string]any{
		"title": "t-1-2",
		"href":  "#X",
	}, got)
}

func TestExtract_NoAttributesReturnsNil(t *testing.T) {
	p := NewParser("", nil)
	require.Nil(t, p.extractAttributes(elemWithAttrs("p")))
}

func TestUnsafeValue(t *testing.T) {
	require.True(t, unsafeValue("javascript:alert(1)"))
	require.True(t, unsafeValue("  Data:text/html"))
	require.False(t, unsafeValue("https://example.com/data:ok"))
	require.False(t, unsafeValue("jscript.html"))
}
