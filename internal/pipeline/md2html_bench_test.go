//go:build bench

package pipeline

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

// generateNotes builds a note with n sections of mixed constructs.
func generateNotes(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "## Section %d\n\n", i)
		b.WriteString("Some **bold** and *italic* prose with a [link](https://example.com).\n")
		b.WriteString("A second line of the same paragraph with `code`.\n\n")
		b.WriteString("1. First point\n    * detail a\n    * detail b\ncontinued text\n2. Second point\n\n")
		b.WriteString("- loose item\n- another item\n\n")
		b.WriteString("```go\nfunc main() {}\n```\n\n> quoted line\n\n")
	}
	return b.String()
}

func BenchmarkConverters(b *testing.B) {
	ctx := context.Background()
	converters := map[string]HTMLConverter{
		"notes":      &NotesConverter{},
		"notes_hl":   &NotesConverter{Highlight: true},
		"commonmark": NewGoldmarkConverter(false),
	}

	for name, c := range converters {
		for _, size := range []int{1, 10, 100} {
			content := generateNotes(size)
			b.Run(fmt.Sprintf("%s/sections_%d", name, size), func(b *testing.B) {
				b.ReportAllocs()
				b.ResetTimer()

				for i := 0; i < b.N; i++ {
					if _, err := c.ToHTML(ctx, content); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
