package weave

// CanNest reports whether a child tag may legally render under parent.
// Rules are evaluated in fixed priority order, short-circuiting on the
// first decisive one; in particular a pass-through child loses even when
// the parent's allowed-children list would admit its tag.
func CanNest(parent, child TagConfig) bool {
	if parent.Tag == "" || child.Tag == "" {
		return false
	}
	if child.Rule == RulePassThrough {
		return false
	}
	if len(parent.AllowedChildren) > 0 && !containsTag(parent.AllowedChildren, child.Tag) {
		return false
	}
	if parent.Tag == child.Tag && !parent.SelfNesting {
		return false
	}
	if child.Type == TypeBlock && !parent.BlockChildren {
		return false
	}
	if child.Type == TypeInline && !parent.InlineChildren {
		return false
	}
	return true
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}
