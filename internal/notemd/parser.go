package notemd

import "strings"

// Parse scans a notes document and returns its blocks in input order.
// Parse never fails: lines that match no construct degrade to prose.
func Parse(src string) []Block {
	return WrapParagraphs(scan(SplitLines(src)))
}

// scan walks the lines with a single cursor. Each sub-parser returns the
// index of the first line it did not consume.
func scan(lines []Line) []Block {
	blocks := make([]Block, 0, len(lines))

	for i := 0; i < len(lines); {
		line := lines[i]
		level, text, isHeading := line.Heading()

		switch {
		case line.Ordered():
			list, next := parseOrderedList(lines, i)
			blocks = append(blocks, list)
			i = next

		case line.Unordered():
			list, next := parseUnorderedList(lines, i)
			blocks = append(blocks, list)
			i = next

		case line.Nested() && line.Bullet():
			prose, next := parseIndentedBullet(lines, i)
			blocks = append(blocks, prose)
			i = next

		case isHeading:
			if level == 1 {
				level = 2
			}
			blocks = append(blocks, &Heading{Level: level, Text: text})
			i++

		case line.Rule():
			blocks = append(blocks, &HorizontalRule{})
			i++

		case line.Quote():
			blocks = append(blocks, &BlockQuote{Text: strings.TrimSpace(line.Raw[2:])})
			i++

		case line.Fence():
			code, tail, next, ok := parseFence(lines, i)
			if !ok {
				blocks = append(blocks, bare(line.Text))
				i++
				continue
			}
			blocks = append(blocks, code)
			if tail != "" {
				blocks = append(blocks, bare(tail))
			}
			i = next

		case line.Blank():
			blocks = append(blocks, &blankLine{})
			i++

		default:
			blocks = append(blocks, bare(line.Text))
			i++
		}
	}

	return blocks
}

// bare classifies a line of text that belongs to no block construct.
func bare(text string) Block {
	if strings.HasPrefix(text, "<") || strings.HasPrefix(text, "#") {
		return &Passthrough{Text: text}
	}
	return &proseLine{Text: text}
}

// parseOrderedList consumes consecutive numbered items starting at i.
func parseOrderedList(lines []Line, i int) (*OrderedList, int) {
	list := &OrderedList{}
	for i < len(lines) && lines[i].Ordered() {
		var item ListItem
		item, i = parseOrderedItem(lines, i)
		list.Items = append(list.Items, item)
	}
	return list, i
}

// parseOrderedItem consumes one numbered item together with its nested
// bullets and continuation prose. It stops at a blank line, the next
// numbered marker, the start of another block or an indented line that is
// not a bullet.
func parseOrderedItem(lines []Line, i int) (ListItem, int) {
	item := ListItem{Text: stripOrdered(lines[i].Text)}
	var continuation []string

	j := i + 1
	for j < len(lines) {
		l := lines[j]
		if l.Blank() || l.Ordered() {
			break
		}
		if l.NestedBullet() {
			nested, next := parseNestedItem(lines, j)
			if item.Nested == nil {
				item.Nested = &UnorderedList{}
			}
			item.Nested.Items = append(item.Nested.Items, nested)
			j = next
			continue
		}
		// Indented prose no bullet absorbed ends the item and reads as prose.
		if l.BlockMarker() || l.Nested() {
			break
		}
		continuation = append(continuation, l.Text)
		j++
	}

	item.Continuation = strings.Join(continuation, " ")
	return item, j
}

// parseNestedItem consumes an indented bullet and the indented, non-bullet
// lines that follow it.
func parseNestedItem(lines []Line, i int) (ListItem, int) {
	parts := []string{stripBullet(lines[i].Text)}
	j := i + 1
	for j < len(lines) {
		l := lines[j]
		if !l.Nested() || l.Blank() || l.NestedBullet() {
			break
		}
		parts = append(parts, l.Text)
		j++
	}
	return ListItem{Text: strings.Join(parts, " ")}, j
}

// parseUnorderedList consumes consecutive "- " lines as a flat list.
func parseUnorderedList(lines []Line, i int) (*UnorderedList, int) {
	list := &UnorderedList{}
	for i < len(lines) && lines[i].Unordered() {
		list.Items = append(list.Items, ListItem{Text: stripBullet(lines[i].Text)})
		i++
	}
	return list, i
}

// parseIndentedBullet turns a bullet outside any numbered list into a
// prose line, so it joins the surrounding paragraph.
func parseIndentedBullet(lines []Line, i int) (*proseLine, int) {
	item, next := parseNestedItem(lines, i)
	return &proseLine{Text: item.Text}, next
}

// parseFence consumes a fenced code block opened at i. The closing fence
// is the first later line containing three backticks; text after it is
// returned as tail. ok is false when the fence is never closed.
func parseFence(lines []Line, i int) (code *CodeBlock, tail string, next int, ok bool) {
	rest := strings.TrimPrefix(lines[i].Text, fenceMarker)

	if end := strings.Index(rest, fenceMarker); end >= 0 {
		code = &CodeBlock{Text: rest[:end], Fenced: true}
		return code, strings.TrimSpace(rest[end+len(fenceMarker):]), i + 1, true
	}

	var body []string
	for j := i + 1; j < len(lines); j++ {
		raw := lines[j].Raw
		end := strings.Index(raw, fenceMarker)
		if end < 0 {
			body = append(body, raw)
			continue
		}
		if before := raw[:end]; strings.TrimSpace(before) != "" {
			body = append(body, before)
		}
		code = &CodeBlock{
			Info:   strings.TrimSpace(rest),
			Text:   strings.Join(body, "\n"),
			Fenced: true,
		}
		return code, strings.TrimSpace(raw[end+len(fenceMarker):]), j + 1, true
	}

	return nil, "", i, false
}
