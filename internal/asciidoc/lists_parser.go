package asciidoc

// detectListMarker inspects line's leading tokens for one of the
// recognised list-marker shapes, returning the marker, the line
// positioned just after the marker and its following whitespace, and
// whether a marker was found at all.
func detectListMarker(line Line) (ListMarker, Line, bool) {
	first, ok := line.Current()
	if !ok {
		return ListMarker{}, Line{}, false
	}

	switch {
	case first.Kind == TokenPunct && first.Rune == '*' && hasTrailingSpace(line, 1):
		return ListMarker{Kind: MarkerStar, N: first.RunLength}, advanced(line, 2), true

	case first.Kind == TokenPunct && first.Rune == '-' && first.RunLength == 1 && hasTrailingSpace(line, 1):
		return ListMarker{Kind: MarkerDash, N: 1}, advanced(line, 2), true

	case first.Kind == TokenPunct && first.Rune == '.' && hasTrailingSpace(line, 1):
		return ListMarker{Kind: MarkerDot, N: first.RunLength}, advanced(line, 2), true

	case first.Kind == TokenDigits:
		if second, ok := line.Peek(1); ok && second.Kind == TokenPunct && second.Rune == '.' && second.RunLength == 1 && hasTrailingSpace(line, 2) {
			return ListMarker{Kind: MarkerDigits, N: 1}, advanced(line, 3), true
		}

	case first.Kind == TokenBracketOpen && first.Rune == '<':
		if n, width, ok := matchCalloutBody(line); ok {
			return ListMarker{Kind: MarkerCallout, N: n}, advanced(line, width), true
		}

	case first.Kind == TokenPunct && first.Rune == ':':
		if n, width, ok := matchRepeatedPunct(line, ':'); ok && hasTrailingSpace(line, width) {
			return ListMarker{Kind: MarkerColons, N: n}, advanced(line, width+1), true
		}

	case first.Kind == TokenPunct && first.Rune == ';':
		if n, width, ok := matchRepeatedPunct(line, ';'); ok && hasTrailingSpace(line, width) {
			return ListMarker{Kind: MarkerSemiColons, N: n}, advanced(line, width+1), true
		}
	}

	return ListMarker{}, Line{}, false
}

func isListMarkerLine(line Line) bool {
	_, _, ok := detectListMarker(line)

	return ok
}

func hasTrailingSpace(line Line, at int) bool {
	tok, ok := line.Peek(at)

	return ok && tok.Kind == TokenWhitespace
}

func advanced(line Line, n int) Line {
	return Line{Tokens: line.Tokens, SourceIdx: line.SourceIdx, pos: line.pos + n}
}

// matchRepeatedPunct counts a run of single-rune punctuation tokens of
// byte r starting at the cursor (":" and ";" are non-repeatable at the
// lexer level, so "::" and ":::" arrive as distinct adjacent tokens).
// Returns the level (count-1) and the token width consumed.
func matchRepeatedPunct(line Line, r byte) (level int, width int, ok bool) {
	count := 0
	for {
		tok, present := line.Peek(count)
		if !present || tok.Kind != TokenPunct || tok.Rune != r || tok.RunLength != 1 {
			break
		}
		count++
	}
	if count < 2 {
		return 0, 0, false
	}

	return count - 1, count, true
}

// matchCalloutBody matches `<N>` or `<.>` at the cursor, returning the
// parsed callout number (-1 for the unnumbered `<.>` placeholder) and
// the token width consumed (bracket, body, bracket).
func matchCalloutBody(line Line) (n int, width int, ok bool) {
	body, present := line.Peek(1)
	if !present {
		return 0, 0, false
	}
	closeTok, present := line.Peek(2)
	if !present || closeTok.Kind != TokenBracketClose || closeTok.Rune != '>' {
		return 0, 0, false
	}
	if !hasTrailingSpace(line, 3) {
		return 0, 0, false
	}

	switch {
	case body.Kind == TokenDigits:
		return parseSmallInt(body.Text()), 4, true
	case body.Kind == TokenPunct && body.Rune == '.' && body.RunLength == 1:
		return -1, 4, true
	default:
		return 0, 0, false
	}
}

func parseSmallInt(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*10 + int(s[i]-'0')
	}

	return n
}

func listBlockContextFor(v ListVariant) BlockContext {
	switch v {
	case ListVariantOrdered:
		return BlockContextOrderedList
	case ListVariantDescription:
		return BlockContextDescriptionList
	case ListVariantCallout:
		return BlockContextCalloutList
	default:
		return BlockContextUnorderedList
	}
}

// parseList parses a list block starting at the cursor: one or more
// ListItems of the same marker family, with "+"-continuation attaching
// subsequent blocks and a deeper/differently-shaped marker starting a
// nested list attached to the previous item.
func (bp *blockParser) parseList(cl *ContiguousLines, meta ChunkMeta) (*Block, bool) {
	first, ok := cl.PeekLine()
	if !ok {
		return nil, false
	}
	marker, _, ok := detectListMarker(first)
	if !ok {
		return nil, false
	}

	content := ListContent{Variant: marker.Variant()}

	for {
		line, ok := cl.PeekLine()
		if !ok {
			break
		}
		m, rest, ok := detectListMarker(line)
		if !ok {
			break
		}
		if !m.sameFamily(marker) {
			break
		}

		cl.ConsumeLine()
		principalLines := bp.collectPrincipalLines(cl, rest)
		item := &ListItem{Marker: m, MarkerSrc: lineRawText(line), Principle: bp.inline.parseLines(principalLines, NormalSubs)}

		bp.attachItemExtras(cl, marker, item)
		content.Items = append(content.Items, item)
	}

	if content.Variant == ListVariantCallout {
		resolveCalloutAutoIncrement(content.Items)
	}

	return &Block{Meta: meta, Context: listBlockContextFor(content.Variant), Content: content}, true
}

// resolveCalloutAutoIncrement assigns sequential numbers to unnumbered
// `<.>` callout markers (parsed with N == -1), continuing from the
// previous item's number: `<.>` immediately after `<3>` becomes `<4>`,
// and a run of `<.>` from the start of the list counts from 1.
func resolveCalloutAutoIncrement(items []*ListItem) {
	last := 0
	for _, item := range items {
		if item.Marker.N == -1 {
			item.Marker.N = last + 1
		}
		last = item.Marker.N
	}
}

// collectPrincipalLines gathers an item's principal-text lines: the
// marker line's remainder plus every following line of the current
// contiguous group that is not itself a list-marker line.
func (bp *blockParser) collectPrincipalLines(cl *ContiguousLines, first Line) []Line {
	lines := []Line{first}
	for !cl.IsEmpty() {
		line, ok := cl.PeekLine()
		if !ok || isListMarkerLine(line) || lineRawText(line) == "+" {
			break
		}
		l, _ := cl.ConsumeLine()
		lines = append(lines, l)
	}

	return lines
}

// attachItemExtras consumes whatever immediately follows an item's
// principal text that still belongs to it: "+"-continuation blocks, and
// a nested list of a deeper or differing marker shape.
func (bp *blockParser) attachItemExtras(cl *ContiguousLines, parent ListMarker, item *ListItem) {
	for {
		line, ok := cl.PeekLine()
		if !ok {
			return
		}

		if lineRawText(line) == "+" {
			cl.ConsumeLine()
			blk, ok := bp.parseNextBlock(cl)
			if !ok {
				return
			}
			item.Blocks = append(item.Blocks, blk)

			continue
		}

		m, _, ok := detectListMarker(line)
		if !ok {
			return
		}
		if m.sameFamily(parent) {
			return
		}
		if m.Kind == parent.Kind && m.N < parent.N {
			return
		}

		nested, ok := bp.parseList(cl, ChunkMeta{})
		if !ok {
			return
		}
		item.Blocks = append(item.Blocks, nested)
	}
}
