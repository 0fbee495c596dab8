package weave

import (
	"fmt"
	"regexp"
	"strings"
)

// Built-in matchers for the common autolink family: plain-text URLs,
// email addresses, and hashtags. All three produce <a> elements, so the
// registry in use must allow "a" for them to run.

var (
	// urlRe matches http/https URLs inside plain text, excluding
	// trailing punctuation that usually belongs to the sentence.
	urlRe = regexp.MustCompile(`https?://[^\s<>"]+[^\s<>".,;:!?)\]]`)

	emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

	hashtagRe = regexp.MustCompile(`#[A-Za-z][A-Za-z0-9_]*`)
)

// URLMatcher converts plain-text http/https URLs into <a> elements
// whose href is the matched URL. Disabled by the "noUrl" prop.
type URLMatcher struct{}

func (URLMatcher) TagName() string     { return "a" }
func (URLMatcher) InverseFlag() string { return "noUrl" }

func (URLMatcher) Match(text string) (Match, bool) {
	m := urlRe.FindString(text)
	if m == "" {
		return Match{}, false
	}
	return Match{Matched: m, Props: map[string]any{"href": m}}, true
}

func (URLMatcher) CreateElement(matched string, props map[string]any, key int) *Element {
	return &Element{
		Key:        key,
		TagName:    "a",
		Attributes: map[string]any{"href": stringProp(props, "href", matched)},
		Children:   []Node{Text(matched)},
	}
}

// EmailMatcher converts plain-text email addresses into mailto links.
// Disabled by the "noEmail" prop.
type EmailMatcher struct{}

func (EmailMatcher) TagName() string     { return "a" }
func (EmailMatcher) InverseFlag() string { return "noEmail" }

func (EmailMatcher) Match(text string) (Match, bool) {
	m := emailRe.FindString(text)
	if m == "" {
		return Match{}, false
	}
	return Match{Matched: m, Props: map[string]any{"href": "mailto:" + m}}, true
}

func (EmailMatcher) CreateElement(matched string, props map[string]any, key int) *Element {
	return &Element{
		Key:        key,
		TagName:    "a",
		Attributes: map[string]any{"href": stringProp(props, "href", "mailto:"+matched)},
		Children:   []Node{Text(matched)},
	}
}

// HashtagMatcher converts #hashtags into <a> elements. The destination
// comes from the "hashtagUrl" prop, a fmt pattern receiving the tag
// name without its leading '#' (e.g. "https://example.com/tags/%s");
// without it the href is the matched text itself. Disabled by the
// "noHashtag" prop.
type HashtagMatcher struct{}

func (HashtagMatcher) TagName() string     { return "a" }
func (HashtagMatcher) InverseFlag() string { return "noHashtag" }

func (HashtagMatcher) Match(text string) (Match, bool) {
	m := hashtagRe.FindString(text)
	if m == "" {
		return Match{}, false
	}
	return Match{Matched: m, Props: map[string]any{"hashtag": strings.TrimPrefix(m, "#")}}, true
}

func (HashtagMatcher) CreateElement(matched string, props map[string]any, key int) *Element {
	href := matched
	if pattern := stringProp(props, "hashtagUrl", ""); pattern != "" {
		href = fmt.Sprintf(pattern, stringProp(props, "hashtag", strings.TrimPrefix(matched, "#")))
	}
	return &Element{
		Key:        key,
		TagName:    "a",
		Attributes: map[string]any{"href": href},
		Children:   []Node{Text(matched)},
	}
}

func stringProp(props map[string]any, key, fallback string) string {
	if v, ok := props[key].(string); ok {
		return v
	}
	return fallback
}
