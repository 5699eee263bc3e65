package notemd

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []Block
	}{
		{
			name: "empty document",
			src:  "",
			want: nil,
		},
		{
			name: "title and paragraph",
			src:  "# Title\n\nSome text here that is long enough.",
			want: []Block{
				&Heading{Level: 2, Text: "Title"},
				&Paragraph{Lines: []string{"Some text here that is long enough."}},
			},
		},
		{
			name: "heading levels",
			src:  "# One\n## Two\n### Three\n#### Four",
			want: []Block{
				&Heading{Level: 2, Text: "One"},
				&Heading{Level: 2, Text: "Two"},
				&Heading{Level: 3, Text: "Three"},
				&Passthrough{Text: "#### Four"},
			},
		},
		{
			name: "heading marker needs text",
			src:  "#hashtag",
			want: []Block{&Passthrough{Text: "#hashtag"}},
		},
		{
			name: "ordered list with nested bullets",
			src:  "1. First\n    * note a\n    * note b\n2. Second",
			want: []Block{
				&OrderedList{Items: []ListItem{
					{Text: "First", Nested: &UnorderedList{Items: []ListItem{
						{Text: "note a"},
						{Text: "note b"},
					}}},
					{Text: "Second"},
				}},
			},
		},
		{
			name: "ordered list continuation",
			src:  "1. First\nmore text\nand more\n2. Second",
			want: []Block{
				&OrderedList{Items: []ListItem{
					{Text: "First", Continuation: "more text and more"},
					{Text: "Second"},
				}},
			},
		},
		{
			name: "nested bullet absorbs indented lines",
			src:  "1. First\n    * note a\n    continued here\nafter bullets\n2. Second",
			want: []Block{
				&OrderedList{Items: []ListItem{
					{
						Text:         "First",
						Continuation: "after bullets",
						Nested: &UnorderedList{Items: []ListItem{
							{Text: "note a continued here"},
						}},
					},
					{Text: "Second"},
				}},
			},
		},
		{
			name: "indented prose ends the item",
			src:  "1. First\n    indented note\n2. Second",
			want: []Block{
				&OrderedList{Items: []ListItem{{Text: "First"}}},
				&Paragraph{Lines: []string{"indented note"}},
				&OrderedList{Items: []ListItem{{Text: "Second"}}},
			},
		},
		{
			name: "indented prose before bullets degrades to prose",
			src:  "1. First\n    indented\n    * note a",
			want: []Block{
				&OrderedList{Items: []ListItem{{Text: "First"}}},
				&Paragraph{Lines: []string{"indented", "note a"}},
			},
		},
		{
			name: "dash bullet nests",
			src:  "1. First\n    - dash bullet",
			want: []Block{
				&OrderedList{Items: []ListItem{
					{Text: "First", Nested: &UnorderedList{Items: []ListItem{{Text: "dash bullet"}}}},
				}},
			},
		},
		{
			name: "multi digit markers",
			src:  "9. nine\ncarry\n10. ten\n11. eleven",
			want: []Block{
				&OrderedList{Items: []ListItem{
					{Text: "nine", Continuation: "carry"},
					{Text: "ten"},
					{Text: "eleven"},
				}},
			},
		},
		{
			name: "blank line ends ordered list",
			src:  "1. a\n\n2. b",
			want: []Block{
				&OrderedList{Items: []ListItem{{Text: "a"}}},
				&OrderedList{Items: []ListItem{{Text: "b"}}},
			},
		},
		{
			name: "block marker ends continuation",
			src:  "1. a\n## Next\n- x",
			want: []Block{
				&OrderedList{Items: []ListItem{{Text: "a"}}},
				&Heading{Level: 2, Text: "Next"},
				&UnorderedList{Items: []ListItem{{Text: "x"}}},
			},
		},
		{
			name: "tab indented bullet degrades to continuation",
			src:  "1. a\n\t* b",
			want: []Block{
				&OrderedList{Items: []ListItem{{Text: "a", Continuation: "* b"}}},
			},
		},
		{
			name: "unordered list",
			src:  "- a\n- b\n- c",
			want: []Block{
				&UnorderedList{Items: []ListItem{{Text: "a"}, {Text: "b"}, {Text: "c"}}},
			},
		},
		{
			name: "unordered list stops at prose",
			src:  "- a\nafter",
			want: []Block{
				&UnorderedList{Items: []ListItem{{Text: "a"}}},
				&Paragraph{Lines: []string{"after"}},
			},
		},
		{
			name: "standalone indented bullets join the paragraph",
			src:  "Intro line\n    * bullet one\n    more\n    * bullet two",
			want: []Block{
				&Paragraph{Lines: []string{"Intro line", "bullet one more", "bullet two"}},
			},
		},
		{
			name: "block quote",
			src:  "> a quote",
			want: []Block{&BlockQuote{Text: "a quote"}},
		},
		{
			name: "horizontal rule",
			src:  "a\n---\nb",
			want: []Block{
				&Paragraph{Lines: []string{"a"}},
				&HorizontalRule{},
				&Paragraph{Lines: []string{"b"}},
			},
		},
		{
			name: "paragraphs split on blank lines",
			src:  "a\nb\n\n\nc",
			want: []Block{
				&Paragraph{Lines: []string{"a", "b"}},
				&Paragraph{Lines: []string{"c"}},
			},
		},
		{
			name: "html lines pass through",
			src:  "<div class=\"warning\">\ntext\n</div>",
			want: []Block{
				&Passthrough{Text: `<div class="warning">`},
				&Paragraph{Lines: []string{"text"}},
				&Passthrough{Text: "</div>"},
			},
		},
		{
			name: "fenced code keeps lines verbatim",
			src:  "```python\nx = 1\n\n  y = 2\n```",
			want: []Block{
				&CodeBlock{Info: "python", Text: "x = 1\n\n  y = 2", Fenced: true},
			},
		},
		{
			name: "fenced code hides markers",
			src:  "```\n# not a heading\n1. not a list\n```",
			want: []Block{
				&CodeBlock{Text: "# not a heading\n1. not a list", Fenced: true},
			},
		},
		{
			name: "single line fence",
			src:  "```inline code```",
			want: []Block{&CodeBlock{Text: "inline code", Fenced: true}},
		},
		{
			name: "text after closing fence",
			src:  "```\ncode\n``` trailing",
			want: []Block{
				&CodeBlock{Text: "code", Fenced: true},
				&Paragraph{Lines: []string{"trailing"}},
			},
		},
		{
			name: "unclosed fence is prose",
			src:  "```go\nfmt.Println()",
			want: []Block{
				&Paragraph{Lines: []string{"```go", "fmt.Println()"}},
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Parse(tt.src)
			if diff := cmp.Diff(tt.want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseOrderedList_Consumption(t *testing.T) {
	t.Parallel()

	lines := SplitLines("1. a\n    * b\n    c\nd\n2. e\n\nnext")
	list, next := parseOrderedList(lines, 0)

	if len(list.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(list.Items))
	}
	if next != 5 {
		t.Errorf("next = %d, want 5 (the blank line)", next)
	}
}

func TestParseOrderedList_StopsAtIndentedProse(t *testing.T) {
	t.Parallel()

	lines := SplitLines("1. a\n    b\n2. c")
	list, next := parseOrderedList(lines, 0)

	if len(list.Items) != 1 || list.Items[0].Continuation != "" {
		t.Fatalf("items = %+v, want one item without continuation", list.Items)
	}
	if next != 1 {
		t.Errorf("next = %d, want 1 (the indented line)", next)
	}
}

func TestParseFence_Unclosed(t *testing.T) {
	t.Parallel()

	lines := SplitLines("```\nnever closed")
	code, tail, next, ok := parseFence(lines, 0)

	if ok {
		t.Fatalf("parseFence() ok = true, want false (code = %+v)", code)
	}
	if tail != "" || next != 0 {
		t.Errorf("parseFence() = (%q, %d), want (\"\", 0)", tail, next)
	}
}

func TestLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw        string
		wantIndent int
		ordered    bool
		unordered  bool
		nested     bool
		bullet     bool
	}{
		{raw: "1. item", ordered: true},
		{raw: "12. item", ordered: true},
		{raw: "1.item"},
		{raw: "1."},
		{raw: "- item", unordered: true},
		{raw: "-item"},
		{raw: "    * sub", wantIndent: 4, nested: true, bullet: true},
		{raw: "      * deeper", wantIndent: 6, nested: true, bullet: true},
		{raw: "  * shallow", wantIndent: 2, bullet: true},
		{raw: "\t* tab", bullet: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			l := NewLine(tt.raw)
			if l.Indent != tt.wantIndent {
				t.Errorf("Indent = %d, want %d", l.Indent, tt.wantIndent)
			}
			if l.Ordered() != tt.ordered {
				t.Errorf("Ordered() = %v, want %v", l.Ordered(), tt.ordered)
			}
			if l.Unordered() != tt.unordered {
				t.Errorf("Unordered() = %v, want %v", l.Unordered(), tt.unordered)
			}
			if l.Nested() != tt.nested {
				t.Errorf("Nested() = %v, want %v", l.Nested(), tt.nested)
			}
			if l.Bullet() != tt.bullet {
				t.Errorf("Bullet() = %v, want %v", l.Bullet(), tt.bullet)
			}
		})
	}
}
