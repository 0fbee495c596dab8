// Package weave parses untrusted HTML/markup into a sanitized, typed
// node tree for consumption by a rendering layer.
//
// # Overview
//
// weave parses a markup string with the standard golang.org/x/net/html
// parser, then recursively walks the resulting inert tree and produces
// an ordered sequence of [Text] runs and [Element] nodes. Every tag and
// attribute passes a registry-driven allow-list; text runs pass a
// pipeline of pluggable [Matcher] values that turn recognized
// substrings (URLs, emails, hashtags, or anything custom) into inline
// elements; attribute values pass a pipeline of pluggable [Filter]
// values before casting.
//
// # Registry
//
// A [Registry] holds three data tables: tag name to structural rule
// (allow, deny, or pass-through, plus block/inline nesting limits),
// attribute name to cast rule (string, bool, number, or deny), and
// attribute output renames (class becomes className). [DefaultRegistry]
// covers common content HTML; [StrictRegistry] allows only basic inline
// formatting; [LoadRegistry] reads tables from YAML so deployments can
// swap allow-lists without recompiling.
//
// # Security
//
// weave defends against common XSS vectors:
//   - <script>, <style>, <iframe>, and other dangerous tags are denied
//     with their whole subtrees
//   - Event handler attributes (onclick, onerror, ...) never survive
//   - javascript:, vbscript:, and data: attribute values are dropped,
//     including entity-encoded forms
//   - Ingestion is inert: nothing is executed and nothing is fetched
//
// Tags absent from the registry are dropped entirely. Disallowed
// nesting (a block element inside an inline parent, for example) is
// flattened rather than materialized. None of this raises an error; the
// result is always a complete, internally consistent sequence of
// whatever survived.
//
// # Thread Safety
//
// A parse is synchronous and owns all of its working state. Registry,
// Matchers, and Filters are never mutated during a parse, so they may
// be shared across concurrently running Parsers. An individual [Parser]
// is not safe for concurrent use.
//
// # Example
//
//	p := weave.NewParser(userInput, &weave.Config{
//		Matchers: []weave.Matcher{weave.URLMatcher{}},
//	})
//	nodes, err := p.Parse()
package weave
