package notemd

// WrapParagraphs groups consecutive prose lines into paragraphs. A blank
// line or any other block ends the current paragraph; blank lines are
// dropped. Passthrough lines are left unwrapped.
func WrapParagraphs(blocks []Block) []Block {
	out := make([]Block, 0, len(blocks))
	var para *Paragraph

	for _, b := range blocks {
		switch v := b.(type) {
		case *proseLine:
			if para == nil {
				para = &Paragraph{}
				out = append(out, para)
			}
			para.Lines = append(para.Lines, v.Text)
			continue
		case *blankLine:
			para = nil
			continue
		}
		para = nil
		out = append(out, b)
	}

	return out
}
