package asciidoc

import "strings"

// delimitedKindFromRune maps a delimiter line's rune and run length to
// the BlockContext it produces. The block's style attribute (the first
// positional entry of its attribute list) only matters for `____`,
// where "verse" selects a verse block instead of a quote; `--` always
// produces an open block.
func delimitedKindFromRune(r byte, runLen int, style string) BlockContext {
	switch r {
	case '-':
		if runLen == 2 {
			return BlockContextOpen
		}

		return BlockContextListing
	case '=':
		return BlockContextExample
	case '*':
		return BlockContextSidebar
	case '.':
		return BlockContextLiteral
	case '+':
		return BlockContextPassthrough
	case '_':
		if strings.EqualFold(style, "verse") {
			return BlockContextVerse
		}

		return BlockContextQuote
	case '/':
		return BlockContextComment
	default:
		return BlockContextOpen
	}
}

// parseDelimitedBlock consumes an opening TokenDelimiterLine through its
// matching close (a line of the same rune with exactly the same run
// length, so a nested block of the same kind uses a longer run) and
// dispatches to the shape appropriate for the resulting BlockContext.
func (bp *blockParser) parseDelimitedBlock(cl *ContiguousLines, meta ChunkMeta, open Token) (*Block, bool) {
	cl.ConsumeLine()

	if open.Rune == '|' || open.Rune == ',' || open.Rune == ':' || open.Rune == '!' {
		return bp.parseTable(cl, meta, open)
	}

	if open.Rune == '/' {
		bp.skipDelimitedBody(cl, open)

		return &Block{Meta: meta, Context: BlockContextComment, Content: RawContent{}}, true
	}

	var style string
	if meta.Attrs != nil {
		style, _ = meta.Attrs.BlockStyle()
	}
	ctx := delimitedKindFromRune(open.Rune, open.RunLength, style)

	switch ctx {
	case BlockContextListing, BlockContextLiteral:
		lines := bp.collectDelimitedRawLines(cl, open)

		return &Block{Meta: meta, Context: ctx, Content: VerbatimContent{Lines: lines}}, true

	case BlockContextPassthrough:
		lines := bp.collectDelimitedRawLines(cl, open)

		return &Block{Meta: meta, Context: ctx, Content: RawContent{Text: strings.Join(lines, "\n")}}, true

	case BlockContextQuote, BlockContextVerse:
		inner := bp.collectDelimitedLines(cl, open)
		if ctx == BlockContextVerse {
			return &Block{Meta: meta, Context: ctx, Content: SimpleContent{Inlines: bp.inline.parseLines(inner, resolveSubs(meta, NormalSubs))}}, true
		}
		blocks := bp.parseNestedBlocks(inner)

		return &Block{Meta: meta, Context: ctx, Content: CompoundContent{Blocks: blocks}}, true

	default: // Open, Example, Sidebar
		inner := bp.collectDelimitedLines(cl, open)
		blocks := bp.parseNestedBlocks(inner)

		return &Block{Meta: meta, Context: ctx, Content: CompoundContent{Blocks: blocks}}, true
	}
}

// closesDelimiter reports whether line is a closing fence for open: the
// same delimiter rune with the same run length. A longer or shorter run
// of the same rune belongs to a nested block and does not close open.
func closesDelimiter(line Line, open Token) bool {
	if len(line.Tokens) != 1 {
		return false
	}
	tok := line.Tokens[0]

	return tok.Kind == TokenDelimiterLine && tok.Rune == open.Rune && tok.RunLength == open.RunLength
}

// skipDelimitedBody discards every raw line up to and including the
// closing fence, without producing any content (comment blocks).
func (bp *blockParser) skipDelimitedBody(cl *ContiguousLines, open Token) {
	for {
		line, ok := cl.ConsumeRawLine()
		if !ok {
			return
		}
		if closesDelimiter(line, open) {
			return
		}
	}
}

// collectDelimitedRawLines gathers every line's raw text up to (not
// including) the closing fence, for verbatim/passthrough content.
func (bp *blockParser) collectDelimitedRawLines(cl *ContiguousLines, open Token) []string {
	var out []string
	for {
		line, ok := cl.ConsumeRawLine()
		if !ok {
			return out
		}
		if closesDelimiter(line, open) {
			return out
		}
		out = append(out, lineRawText(line))
	}
}

// collectDelimitedLines gathers every line up to (not including) the
// closing fence, preserving blank lines so nested block parsing can
// still find its own contiguous-lines groups within.
func (bp *blockParser) collectDelimitedLines(cl *ContiguousLines, open Token) []Line {
	var out []Line
	for {
		line, ok := cl.ConsumeRawLine()
		if !ok {
			return out
		}
		if closesDelimiter(line, open) {
			return out
		}
		out = append(out, line)
	}
}

// parseNestedBlocks re-runs the block grammar over an already-collected
// slice of lines (the interior of a compound delimited block), by
// feeding them through a sliceLineSource-backed ContiguousLines.
func (bp *blockParser) parseNestedBlocks(lines []Line) []*Block {
	src := &sliceLineSource{lines: lines}
	inner := newContiguousLines(src)

	var blocks []*Block
	for {
		blk, ok := bp.parseNextBlock(inner)
		if !ok {
			break
		}
		blocks = append(blocks, blk)
	}

	return blocks
}

// sliceLineSource implements lineSource over a fixed slice of
// already-lexed lines, used to re-drive the block grammar over a
// delimited block's interior.
type sliceLineSource struct {
	lines []Line
	pos   int
}

func (s *sliceLineSource) nextLine() (Line, bool) {
	if s.pos >= len(s.lines) {
		return Line{}, false
	}
	l := s.lines[s.pos]
	s.pos++

	return l, true
}
