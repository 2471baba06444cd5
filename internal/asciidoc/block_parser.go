package asciidoc

import "strings"

// blockParser drives the recursive-descent grammar described in the
// component design: read a contiguous-lines group, classify its opening
// line, consume whatever that block kind needs, invoke the inline parser
// for leaf content, and attach chunk metadata.
type blockParser struct {
	parser  *Parser
	attrs   *AttributeTable
	diag    *diagnosticSink
	anchors *AnchorTable
	inline  *inlineParser
	doctype Doctype
}

func newBlockParser(p *Parser, doctype Doctype) *blockParser {
	return &blockParser{
		parser:  p,
		attrs:   p.attrs,
		diag:    p.diag,
		anchors: newAnchorTable(),
		inline:  newInlineParser(p.diag, p.attrs),
		doctype: doctype,
	}
}

// parseArticleBody parses the non-book body shape: an optional
// preamble followed by top-level (level-1) sections.
func (bp *blockParser) parseArticleBody(cl *ContiguousLines) DocContent {
	var preamble []*Block
	for {
		lvl, isHeading := bp.peekHeadingLevel(cl)
		if isHeading && lvl <= 1 {
			break
		}
		blk, ok := bp.parseNextBlock(cl)
		if !ok {
			break
		}
		preamble = append(preamble, blk)
	}

	var sections []*Section
	for {
		lvl, isHeading := bp.peekHeadingLevel(cl)
		if !isHeading {
			if !cl.IsEmpty() {
				// Stray non-heading content after sections have begun:
				// attach it to the last section as trailing blocks.
				blk, ok := bp.parseNextBlock(cl)
				if !ok {
					break
				}
				if len(sections) > 0 {
					sections[len(sections)-1].Blocks = append(sections[len(sections)-1].Blocks, blk)

					continue
				}
				preamble = append(preamble, blk)

				continue
			}

			break
		}
		if lvl != 1 {
			bp.diag.warn(MultiSourceLocation{}, "section level out of sequence: expected level 1")
		}
		meta := bp.parseChunkMeta(cl)
		sec := bp.parseSection(cl, meta)
		sections = append(sections, sec)
	}

	if len(sections) == 0 {
		return BlocksContent{Blocks: preamble}
	}

	return SectionedContent{Preamble: preamble, Sections: sections}
}

// parseBookBody parses the book-doctype shape: preamble, opening special
// sections, parts, closing special sections.
func (bp *blockParser) parseBookBody(cl *ContiguousLines) DocContent {
	var preamble []*Block
	for {
		lvl, isHeading := bp.peekHeadingLevel(cl)
		if isHeading && lvl <= 1 {
			break
		}
		blk, ok := bp.parseNextBlock(cl)
		if !ok {
			return PartsContent{Preamble: preamble}
		}
		preamble = append(preamble, blk)
	}

	var opening, parts, closing []*Section
	for {
		lvl, isHeading := bp.peekHeadingLevel(cl)
		if !isHeading {
			break
		}
		meta := bp.parseChunkMeta(cl)
		sec := bp.parseSection(cl, meta)
		switch {
		case sec.Special != SpecialSectionNone && len(parts) == 0:
			opening = append(opening, sec)
		case sec.Special == SpecialSectionAppendix || sec.Special == SpecialSectionGlossary ||
			sec.Special == SpecialSectionBibliography || sec.Special == SpecialSectionIndex ||
			sec.Special == SpecialSectionColophon:
			closing = append(closing, sec)
		default:
			parts = append(parts, sec)
		}
		_ = lvl
	}

	return PartsContent{Preamble: preamble, OpeningSpecialSects: opening, Parts: parts, ClosingSpecialSects: closing}
}

// isHeadingLine reports whether line is a `= Title` / `# Title`
// heading line and, if so, its level.
func isHeadingLine(line Line) (int, bool) {
	tok, ok := line.Current()
	if !ok || tok.Kind != TokenPunct || (tok.Rune != '=' && tok.Rune != '#') {
		return 0, false
	}
	if second, ok := line.Peek(1); !ok || second.Kind != TokenWhitespace {
		return 0, false
	}

	return tok.RunLength - 1, true
}

// isChunkMetaLine reports whether line is a title/attribute-list/anchor
// line, i.e. the shapes parseChunkMeta consumes.
func isChunkMetaLine(line Line) bool {
	text := lineRawText(line)

	return (strings.HasPrefix(text, ".") && len(text) > 1 && text[1] != ' ' && text[1] != '.') ||
		(strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]"))
}

// peekHeadingLevel reports whether the next block (after skipping any
// leading chunk-metadata lines) opens with a section heading, and if so
// its level, without consuming anything.
func (bp *blockParser) peekHeadingLevel(cl *ContiguousLines) (int, bool) {
	for i := 0; ; i++ {
		line, ok := cl.PeekLineAt(i)
		if !ok {
			return 0, false
		}
		if isChunkMetaLine(line) {
			continue
		}

		return isHeadingLine(line)
	}
}

// parseSection parses one heading line plus every block nested beneath
// it (strictly higher level), recursing for nested sub-sections.
func (bp *blockParser) parseSection(cl *ContiguousLines, meta ChunkMeta) *Section {
	line, _ := cl.ConsumeLine()
	headingTok, _ := line.Consume() // the '=' or '#' run
	line.Consume()                  // the single space after it
	level := headingTok.RunLength - 1

	headingInlines := bp.inline.parseLines([]Line{line}, NormalSubs)

	sec := &Section{Level: level, HeadingInlines: headingInlines, Meta: meta}
	sec.Meta.Start = line.sourceLocation()
	if meta.Attrs != nil {
		if id, ok := meta.Attrs.ID(); ok {
			sec.ID = &id
		}
		if style, ok := meta.Attrs.BlockStyle(); ok {
			sec.Special = specialSectionFromStyle(style)
		}
	}
	if meta.Title != nil {
		sec.Reftext = meta.Title
	}

	for {
		lvl, isHeading := bp.peekHeadingLevel(cl)
		if isHeading && lvl <= level {
			break
		}
		if isHeading {
			childMeta := bp.parseChunkMeta(cl)
			child := bp.parseSection(cl, childMeta)
			sec.Blocks = append(sec.Blocks, &Block{
				Context: BlockContextSection,
				Content: SectionContent{Section: child},
			})

			continue
		}
		blk, ok := bp.parseNextBlock(cl)
		if !ok {
			break
		}
		sec.Blocks = append(sec.Blocks, blk)
	}

	return sec
}

// sourceLocation is a best-effort span for a Line: since tokens carry
// their own Start/End, the line's span is the first token's Start to the
// last token's End.
func (l Line) sourceLocation() MultiSourceLocation {
	if len(l.Tokens) == 0 {
		return MultiSourceLocation{}
	}
	first := l.Tokens[0]
	last := l.Tokens[len(l.Tokens)-1]

	return MultiSourceLocation{
		SourceLocation: SourceLocation{StartByte: first.Start, EndByte: last.End},
		StartSourceIdx: l.SourceIdx,
		EndSourceIdx:   l.SourceIdx,
	}
}

// parseChunkMeta consumes any run of title/attribute-list/anchor lines
// preceding a block.
func (bp *blockParser) parseChunkMeta(cl *ContiguousLines) ChunkMeta {
	var meta ChunkMeta

	for {
		line, ok := cl.PeekLine()
		if !ok {
			break
		}
		text := lineRawText(line)

		switch {
		case strings.HasPrefix(text, "...") == false && strings.HasPrefix(text, ".") && len(text) > 1 && text[1] != ' ' && text[1] != '.':
			line, _ = cl.ConsumeLine()
			line.Consume()
			title := bp.inline.parseLines([]Line{line}, NormalSubs)
			meta.Title = &title

		case strings.HasPrefix(text, "[[[") && strings.HasSuffix(text, "]]]"):
			line, _ = cl.ConsumeLine()
			id := strings.TrimSuffix(strings.TrimPrefix(text, "[[["), "]]]")
			bp.registerAnchor(id, nil, Anchor{IsBiblio: true, SourceIdx: line.SourceIdx})

		case strings.HasPrefix(text, "[[") && strings.HasSuffix(text, "]]"):
			line, _ = cl.ConsumeLine()
			inner := strings.TrimSuffix(strings.TrimPrefix(text, "[["), "]]")
			id, reftext, _ := strings.Cut(inner, ",")
			var rt *InlineNodes
			if reftext != "" {
				nodes := InlineNodes{{Content: TextInline{Text: reftext}}}
				rt = &nodes
			}
			bp.registerAnchor(id, rt, Anchor{Reftext: rt, SourceIdx: line.SourceIdx})
			meta.Attrs = &AttrList{id: &id}

		case strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]"):
			line, _ = cl.ConsumeLine()
			inner := line.Tokens[1 : len(line.Tokens)-1]
			attrs := parseAttrListTokens(inner, line.SourceIdx)
			meta.Attrs = &attrs
			if label, ok := attrs.BlockStyle(); ok {
				meta.Admonition = admonitionFromLabel(strings.ToUpper(label))
			}

		default:
			return meta
		}
	}

	return meta
}

func (bp *blockParser) registerAnchor(id string, reftext *InlineNodes, anchor Anchor) {
	if id == "" {
		return
	}
	if !bp.anchors.Insert(id, anchor) {
		bp.diag.warn(MultiSourceLocation{}, "duplicate anchor id %q", id)
	}
}

// parseNextBlock reads one contiguous-lines group (consuming any
// leading chunk metadata first) and classifies + parses it.
func (bp *blockParser) parseNextBlock(cl *ContiguousLines) (*Block, bool) {
	meta := bp.parseChunkMeta(cl)

	line, ok := cl.PeekLine()
	if !ok {
		if meta.Attrs != nil || meta.Title != nil {
			bp.diag.warn(MultiSourceLocation{}, "chunk metadata not attached to any block")
		}

		return nil, false
	}

	first, _ := line.Current()

	switch {
	case first.Kind == TokenPunct && (first.Rune == '=' || first.Rune == '#'):
		if second, ok := line.Peek(1); ok && second.Kind == TokenWhitespace {
			child := bp.parseSection(cl, meta)
			blk := &Block{Meta: meta, Context: BlockContextSection, Content: SectionContent{Section: child}}

			return blk, true
		}

	case first.Kind == TokenDelimiterLine:
		return bp.parseDelimitedBlock(cl, meta, first)

	case isThematicBreakLine(line):
		cl.ConsumeLine()

		return &Block{Meta: meta, Context: BlockContextThematicBreak, Content: EmptyContent{Metadata: meta}}, true

	case isPageBreakLine(line):
		cl.ConsumeLine()

		return &Block{Meta: meta, Context: BlockContextPageBreak, Content: EmptyContent{Metadata: meta}}, true

	case first.Kind == TokenPunct && first.Rune == ':' && first.RunLength == 1 && !isListMarkerLine(line):
		return bp.parseAttributeDeclBlock(cl, meta)

	case first.Kind == TokenMacroName && isMediaMacroName(first.Name):
		if blk, ok := bp.tryParseMediaBlock(cl, meta, first.Name); ok {
			return blk, true
		}

	case isListMarkerLine(line):
		return bp.parseList(cl, meta)
	}

	return bp.parseParagraphLike(cl, meta)
}

func isMediaMacroName(name string) bool {
	return name == "image" || name == "audio" || name == "video"
}

func (bp *blockParser) tryParseMediaBlock(cl *ContiguousLines, meta ChunkMeta, kind string) (*Block, bool) {
	line, _ := cl.PeekLine()
	if !line.EndsWithSequence(TokenBracketClose) {
		return nil, false
	}
	cl.ConsumeLine()

	toks := line.Tokens
	target := tokensText(toks[1 : len(toks)-1])
	bracketStart := -1
	for i, t := range toks {
		if t.Kind == TokenBracketOpen && t.Rune == '[' {
			bracketStart = i

			break
		}
	}
	var attrs AttrList
	if bracketStart >= 0 {
		target = tokensText(toks[1:bracketStart])
		attrs = parseAttrListTokens(toks[bracketStart+1:len(toks)-1], line.SourceIdx)
	}
	ctx := BlockContextImage
	switch kind {
	case "audio":
		ctx = BlockContextAudio
	case "video":
		ctx = BlockContextVideo
	}
	meta.Attrs = &attrs
	_ = target

	return &Block{Meta: meta, Context: ctx, Content: EmptyContent{Metadata: meta}}, true
}

func isThematicBreakLine(l Line) bool {
	switch lineRawText(l) {
	case "'''", "---", "***", "- - -", "* * *":
		return true
	default:
		return false
	}
}

func isPageBreakLine(l Line) bool {
	if len(l.Tokens) != 3 {
		return false
	}
	for _, t := range l.Tokens {
		if !(t.Kind == TokenBracketOpen && t.Rune == '<') && !(t.Kind == TokenBracketClose && t.Rune == '>') {
			return false
		}
	}

	return lineRawText(l) == "<<<"
}

// parseAttributeDeclBlock parses a standalone `:name: value` body-level
// entry into its own block, mutating bp.attrs as a side effect.
func (bp *blockParser) parseAttributeDeclBlock(cl *ContiguousLines, meta ChunkMeta) (*Block, bool) {
	line, _ := cl.ConsumeLine()
	if !isAttrEntryLine(line) {
		return &Block{Meta: meta, Context: BlockContextParagraph, Content: SimpleContent{Inlines: bp.inline.parseLines([]Line{line}, resolveSubs(meta, NormalSubs))}}, true
	}

	name, value, unset := parseAttrEntryLine(line)
	bp.attrs.Set(name, value, unset, AttributeOriginBody)
	entry := AttributeValue{Name: name, Value: value, Set: !unset, Origin: AttributeOriginBody}

	return &Block{
		Meta:    meta,
		Context: BlockContextDocumentAttributeDecl,
		Content: DocumentAttributeContent{Name: name, Entry: entry},
	}, true
}

// parseParagraphLike handles the remaining leaf-block cases driven by
// the first line's shape: admonition, quoted paragraph, literal
// (indented), or plain paragraph.
func (bp *blockParser) parseParagraphLike(cl *ContiguousLines, meta ChunkMeta) (*Block, bool) {
	first, ok := cl.PeekLine()
	if !ok {
		return nil, false
	}

	if admon, rest, ok := matchAdmonitionLabel(first); ok {
		lines := bp.consumeParagraphLines(cl, rest)
		meta.Admonition = admon

		return &Block{Meta: meta, Context: BlockContextParagraph, Content: SimpleContent{Inlines: bp.inline.parseLines(lines, resolveSubs(meta, NormalSubs))}}, true
	}

	if looksLikeQuotedParagraphOpen(first) {
		if blk, ok := bp.tryParseQuotedParagraph(cl, meta); ok {
			return blk, true
		}
	}

	if startsWithIndent(first) && !meta.hasExplicitStyle("normal") {
		lines := bp.consumeAllLinesOfGroup(cl)

		var rawLines []string
		for _, l := range lines {
			rawLines = append(rawLines, lineRawText(l))
		}

		return &Block{Meta: meta, Context: BlockContextLiteral, Content: VerbatimContent{Lines: rawLines}}, true
	}

	lines := bp.consumeAllLinesOfGroup(cl)

	return &Block{Meta: meta, Context: BlockContextParagraph, Content: SimpleContent{Inlines: bp.inline.parseLines(lines, resolveSubs(meta, NormalSubs))}}, true
}

func (m ChunkMeta) hasExplicitStyle(style string) bool {
	if m.Attrs == nil {
		return false
	}
	s, ok := m.Attrs.BlockStyle()

	return ok && s == style
}

func startsWithIndent(l Line) bool {
	tok, ok := l.Current()

	return ok && tok.Kind == TokenWhitespace
}

// consumeAllLinesOfGroup drains every remaining line of the current
// contiguous-lines group.
func (bp *blockParser) consumeAllLinesOfGroup(cl *ContiguousLines) []Line {
	var lines []Line
	for !cl.IsEmpty() {
		l, _ := cl.ConsumeLine()
		lines = append(lines, l)
	}

	return lines
}

// consumeParagraphLines consumes the first line (already matched as an
// admonition label) with rest substituted as its remaining content,
// plus every subsequent line of the group.
func (bp *blockParser) consumeParagraphLines(cl *ContiguousLines, rest Line) []Line {
	cl.ConsumeLine()
	lines := []Line{rest}
	lines = append(lines, bp.consumeAllLinesOfGroup(cl)...)

	return lines
}

// matchAdmonitionLabel reports whether line starts with `WORD: ` where
// WORD is a recognised admonition keyword, returning the admonition kind
// and a Line positioned just after the label for the caller to use as
// that line's remaining content.
func matchAdmonitionLabel(line Line) (AdmonitionKind, Line, bool) {
	first, ok := line.Current()
	if !ok || first.Kind != TokenWord {
		return AdmonitionNone, Line{}, false
	}
	kind := admonitionFromLabel(first.Text())
	if kind == AdmonitionNone {
		return AdmonitionNone, Line{}, false
	}
	second, ok := line.Peek(1)
	if !ok || second.Kind != TokenPunct || second.Rune != ':' {
		return AdmonitionNone, Line{}, false
	}
	rest := Line{Tokens: line.Tokens, SourceIdx: line.SourceIdx, pos: line.pos + 2}
	if third, ok := rest.Current(); ok && third.Kind == TokenWhitespace {
		rest.pos++
	}

	return kind, rest, true
}

func looksLikeQuotedParagraphOpen(line Line) bool {
	tok, ok := line.Current()

	return ok && tok.Kind == TokenPunct && tok.Rune == '"' && tok.RunLength == 1
}

// tryParseQuotedParagraph handles `"Quoted text"` followed eventually by
// a `-- Attribution, Cite` line within the same contiguous-lines group.
func (bp *blockParser) tryParseQuotedParagraph(cl *ContiguousLines, meta ChunkMeta) (*Block, bool) {
	lines := bp.consumeAllLinesOfGroup(cl)
	if len(lines) == 0 {
		return nil, false
	}
	last := lines[len(lines)-1]
	lastText := lineRawText(last)
	if !strings.HasPrefix(lastText, "-- ") && lastText != "--" {
		// No attribution line: not a quoted paragraph, fall back to a
		// plain paragraph using the already-consumed lines.
		return &Block{Meta: meta, Context: BlockContextParagraph, Content: SimpleContent{Inlines: bp.inline.parseLines(lines, resolveSubs(meta, NormalSubs))}}, true
	}

	quoteLines := lines[:len(lines)-1]
	attribution := strings.TrimPrefix(lastText, "-- ")
	attr, cite, hasCite := strings.Cut(attribution, ", ")

	content := QuotedParagraphContent{
		Quote: bp.inline.parseLines(quoteLines, resolveSubs(meta, NormalSubs)),
		Attr:  InlineNodes{{Content: TextInline{Text: attr}}},
	}
	if hasCite {
		c := InlineNodes{{Content: TextInline{Text: cite}}}
		content.Cite = &c
	}

	return &Block{Meta: meta, Context: BlockContextQuotedParagraph, Content: content}, true
}
