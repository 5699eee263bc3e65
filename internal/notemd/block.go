package notemd

import "strings"

// Block is a structural unit of a document. The set of kinds is closed:
// only types in this package implement it.
type Block interface {
	block()
}

// Heading is a level 2 or level 3 heading.
type Heading struct {
	Level int
	Text  string
}

// Paragraph is a run of prose lines. Lines are kept separate so renderers
// can decide how to join them.
type Paragraph struct {
	Lines []string
}

// Text returns the paragraph lines joined with newlines.
func (p *Paragraph) Text() string { return strings.Join(p.Lines, "\n") }

// BlockQuote is a single quoted line with its "> " prefix removed.
type BlockQuote struct {
	Text string
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// CodeBlock holds code that is rendered verbatim.
type CodeBlock struct {
	Info   string // language hint after the opening fence
	Text   string
	Fenced bool
}

// ListItem is one entry of a list.
type ListItem struct {
	Text         string
	Continuation string         // prose folded into the item, space-joined
	Nested       *UnorderedList // at most one level deep
}

// Content returns the item text with its continuation appended.
func (it ListItem) Content() string {
	if it.Continuation == "" {
		return it.Text
	}
	return it.Text + " " + it.Continuation
}

// OrderedList is a numbered list.
type OrderedList struct {
	Items []ListItem
}

// UnorderedList is a bulleted list.
type UnorderedList struct {
	Items []ListItem
}

// Passthrough is a bare line emitted without a paragraph wrapper: raw HTML
// or a "#" line that is not a recognized heading.
type Passthrough struct {
	Text string
}

// proseLine and blankLine exist only between scanning and paragraph wrapping.
type proseLine struct {
	Text string
}

type blankLine struct{}

func (*Heading) block()        {}
func (*Paragraph) block()      {}
func (*BlockQuote) block()     {}
func (*HorizontalRule) block() {}
func (*CodeBlock) block()      {}
func (*OrderedList) block()    {}
func (*UnorderedList) block()  {}
func (*Passthrough) block()    {}
func (*proseLine) block()      {}
func (*blankLine) block()      {}
