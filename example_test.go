package notes2html_test

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lsy641/notes2html"
)

// Example converts a note into a complete article page.
func Example() {
	conv, err := notes2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), notes2html.Input{
		Markdown: "# Reading Notes\n\nA summary of a paper on robot learning.",
		Title:    "Reading Notes",
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(strings.Contains(string(result.HTML), "<h2>Reading Notes</h2>"))
	fmt.Println(result.Meta.Canonical)
	// Output:
	// true
	// https://lsy641.github.io/notes/reading-notes.html
}

// Example_fragment converts only the note body.
func Example_fragment() {
	conv, err := notes2html.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), notes2html.Input{
		Markdown:     "1. First point\n    * detail\nwith a continuation\n2. Second point",
		FragmentOnly: true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(string(result.Fragment))
	// Output:
	// <ol>
	// <li>First point with a continuation
	// <ul>
	// <li>detail</li>
	// </ul>
	// </li>
	// <li>Second point</li>
	// </ol>
}

// Example_citation shows the metadata read from citation lines.
func Example_citation() {
	conv, err := notes2html.NewConverter(
		notes2html.WithClock(func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	note := "**Paper:** [Deep Grasping](https://example.org/grasp)\n" +
		"**DOI:** 10.1000/grasp\n\n" +
		"These notes cover computer vision for robotics."

	result, err := conv.Convert(context.Background(), notes2html.Input{Markdown: note, FragmentOnly: true})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	meta := result.Meta
	fmt.Println(meta.Citation.Title)
	fmt.Println(meta.Citation.DOI)
	fmt.Println(meta.Description)
	fmt.Println(meta.Keywords[len(meta.Keywords)-2:])
	// Output:
	// Deep Grasping
	// 10.1000/grasp
	// These notes cover computer vision for robotics.
	// [robotics computer vision]
}

// Example_pool converts notes concurrently with a ConverterPool.
func Example_pool() {
	pool := notes2html.NewConverterPool(2)
	defer pool.Close()

	notes := []string{"first note", "second note", "third note"}
	sizes := make([]int, len(notes))
	done := make(chan struct{})

	for i, md := range notes {
		i := i
		md := md
		go func() {
			defer func() { done <- struct{}{} }()
			conv, err := pool.Acquire(context.Background())
			if err != nil {
				return
			}
			defer pool.Release(conv)
			res, err := conv.Convert(context.Background(), notes2html.Input{Markdown: md, FragmentOnly: true})
			if err == nil {
				sizes[i] = len(res.Fragment)
			}
		}()
	}
	for range notes {
		<-done
	}

	fmt.Println(sizes)
	// Output: [17 18 17]
}
