package weave

// NodeKind identifies the variant of a Node.
type NodeKind int

const (
	KindText NodeKind = iota
	KindElement
)

// Node is one entry in a parsed sequence: either a Text run or an
// *Element. Sequences preserve document order.
type Node interface {
	Kind() NodeKind
}

// Text is a literal text run. Adjacent raw text is merged into a single
// Text before matchers run, and matched/replaced text is carried as
// literal data, never re-parsed as markup.
type Text string

// Kind implements Node.
func (Text) Kind() NodeKind { return KindText }

// Element is a sanitized markup element. Keys are unique and strictly
// increasing in creation order within one parse, so parsing identical
// input twice yields structurally identical trees.
type Element struct {
	Key        int
	TagName    string
	Attributes map[string]any
	Children   []Node
}

// Kind implements Node.
func (*Element) Kind() NodeKind { return KindElement }
