package asciidoc

import "strings"

// inlineParser walks a leaf block's Lines, accumulating text into a
// buffer flushed whenever a structured node opens or closes, producing
// an InlineNodes tree subject to the block's active SubstitutionSet.
type inlineParser struct {
	diag      *diagnosticSink
	attrs     *AttributeTable
	sourceIdx int
}

func newInlineParser(diag *diagnosticSink, attrs *AttributeTable) *inlineParser {
	return &inlineParser{diag: diag, attrs: attrs}
}

// constrainedMarker maps a repeatable punctuation byte to the formatting
// span it opens when used as a single-rune constrained marker.
var constrainedMarker = map[byte]func(InlineNodes) Inline{
	'_': func(c InlineNodes) Inline { return ItalicInline{formattingSpan{c}} },
	'*': func(c InlineNodes) Inline { return BoldInline{formattingSpan{c}} },
	'`': func(c InlineNodes) Inline { return MonoInline{formattingSpan{c}} },
	'#': func(c InlineNodes) Inline { return HighlightInline{formattingSpan{c}} },
	'^': func(c InlineNodes) Inline { return SuperscriptInline{formattingSpan{c}} },
	'~': func(c InlineNodes) Inline { return SubscriptInline{formattingSpan{c}} },
}

// parseLines runs the inline grammar over every token of lines (already
// joined logically by the caller into one paragraph-like unit), applying
// subs. sourceIdx identifies which source file the tokens' offsets are
// relative to when they have no Overlay.
func (ip *inlineParser) parseLines(lines []Line, subs SubstitutionSet) InlineNodes {
	var all []Token
	for i, l := range lines {
		all = append(all, l.Remaining()...)
		if i < len(lines)-1 {
			all = append(all, Token{Kind: TokenNewline})
		}
	}
	if len(lines) > 0 {
		ip.sourceIdx = lines[0].SourceIdx
	}

	c := &inlineCursor{toks: all}

	return ip.parseSpan(c, subs, nil)
}

type inlineCursor struct {
	toks []Token
	pos  int
}

func (c *inlineCursor) eof() bool { return c.pos >= len(c.toks) }

func (c *inlineCursor) peek(n int) (Token, bool) {
	i := c.pos + n
	if i < 0 || i >= len(c.toks) {
		return Token{}, false
	}

	return c.toks[i], true
}

func (c *inlineCursor) advance() Token {
	t := c.toks[c.pos]
	c.pos++

	return t
}

// hasClosingMarker implements the "does a closing marker exist in this
// block" look-ahead required before committing to a constrained-format
// opener: scans forward for a single punctuation token of the same rune.
// What follows that token is not checked, so a marker inside a word also
// counts as a closer.
func (c *inlineCursor) hasClosingMarker(rune byte, from int) bool {
	for i := from; i < len(c.toks); i++ {
		if c.toks[i].Kind == TokenPunct && c.toks[i].Rune == rune && c.toks[i].RunLength == 1 {
			return true
		}
	}

	return false
}

// parseSpan parses tokens until EOF or, when stop is non-nil, until a
// token satisfying stop is reached (not consumed); it is called both at
// the top level and recursively for a formatting span's interior.
func (ip *inlineParser) parseSpan(c *inlineCursor, subs SubstitutionSet, stop func(Token) bool) InlineNodes {
	var out InlineNodes
	var textBuf strings.Builder

	flush := func() {
		if textBuf.Len() == 0 {
			return
		}
		out = append(out, InlineNode{Content: TextInline{Text: textBuf.String()}})
		textBuf.Reset()
	}

	for !c.eof() {
		tok, _ := c.peek(0)
		if stop != nil && stop(tok) {
			break
		}

		switch {
		case tok.Kind == TokenNewline:
			c.advance()
			flush()
			out = append(out, InlineNode{Content: JoiningNewlineInline{}})

			continue

		case tok.Kind == TokenWhitespace && tok.Len() > 1:
			c.advance()
			flush()
			out = append(out, InlineNode{Content: MultiCharWhitespaceInline{Text: tok.Text()}})

			continue

		case subs.Has(SubMacros) && tok.Kind == TokenBracketOpen && tok.Rune == '<':
			if node, ok := ip.tryXrefShorthand(c); ok {
				flush()
				out = append(out, node)

				continue
			}
			c.advance()
			textBuf.WriteByte('<')

			continue

		case subs.Has(SubMacros) && tok.Kind == TokenWord:
			if node, ok := ip.tryBareEmail(c); ok {
				flush()
				out = append(out, node)

				continue
			}
			c.advance()
			textBuf.WriteString(tok.Text())

			continue

		case subs.Has(SubMacros) && tok.Kind == TokenMacroName:
			if node, ok := ip.tryMacro(c); ok {
				flush()
				out = append(out, node)

				continue
			}
			c.advance()
			textBuf.WriteString(tok.Name + ":")

			continue

		case subs.Has(SubQuotes) && tok.Kind == TokenPunct && tok.RunLength == 1 && constrainedMarker[tok.Rune] != nil:
			if node, ok := ip.tryConstrained(c, subs); ok {
				flush()
				out = append(out, node)

				continue
			}
			c.advance()
			textBuf.WriteByte(tok.Rune)

			continue

		case subs.Has(SubQuotes) && tok.Kind == TokenPunct && tok.RunLength == 2 && constrainedMarker[tok.Rune] != nil:
			if node, ok := ip.tryUnconstrained(c, subs); ok {
				flush()
				out = append(out, node)

				continue
			}
			c.advance()
			textBuf.WriteString(strings.Repeat(string(tok.Rune), 2))

			continue

		case subs.Has(SubReplacements) && tok.Kind == TokenPunct && tok.Rune == '\\':
			c.advance()
			if next, ok := c.peek(0); ok {
				c.advance()
				textBuf.WriteString(next.Text())
			}

			continue

		case subs.Has(SubSpecialChars) && tok.Kind == TokenPunct && isSpecialCharRune(tok.Rune):
			c.advance()
			flush()
			out = append(out, InlineNode{Content: SpecialCharInline{Kind: specialCharKind(tok.Rune)}})

			continue

		default:
			c.advance()
			textBuf.WriteString(tok.Text())
		}
	}
	flush()

	if subs.Has(SubReplacements) {
		out = applyTextReplacements(out)
	}

	return out
}

func isSpecialCharRune(r byte) bool { return r == '<' || r == '>' || r == '&' }

func specialCharKind(r byte) SpecialCharKind {
	switch r {
	case '<':
		return SpecialLessThan
	case '>':
		return SpecialGreaterThan
	default:
		return SpecialAmpersand
	}
}

// tryConstrained attempts to parse a single-marker formatting span
// starting at the cursor, requiring a word boundary before the opener
// and a matching closer to exist later in the block. Returns ok=false,
// leaving the cursor untouched, if either requirement fails.
func (ip *inlineParser) tryConstrained(c *inlineCursor, subs SubstitutionSet) (InlineNode, bool) {
	opener, _ := c.peek(0)
	if prev, ok := c.peek(-1); ok && (prev.Kind == TokenWord || prev.Kind == TokenDigits) {
		return InlineNode{}, false
	}
	if !c.hasClosingMarker(opener.Rune, c.pos+1) {
		return InlineNode{}, false
	}

	start := c.pos
	c.advance()
	closerFound := false
	children := ip.parseSpan(c, subs, func(t Token) bool {
		return t.Kind == TokenPunct && t.Rune == opener.Rune && t.RunLength == 1
	})
	if _, ok := c.peek(0); ok {
		closeTok, _ := c.peek(0)
		if closeTok.Kind == TokenPunct && closeTok.Rune == opener.Rune && closeTok.RunLength == 1 {
			c.advance()
			closerFound = true
		}
	}
	if !closerFound {
		c.pos = start

		return InlineNode{}, false
	}

	ctor := constrainedMarker[opener.Rune]

	return InlineNode{Content: ctor(children)}, true
}

// tryUnconstrained parses a doubled-marker span, permitted inside a
// word, closed by the next occurrence of the same doubled marker.
func (ip *inlineParser) tryUnconstrained(c *inlineCursor, subs SubstitutionSet) (InlineNode, bool) {
	opener, _ := c.peek(0)

	hasCloser := false
	for i := c.pos + 1; i < len(c.toks); i++ {
		if c.toks[i].Kind == TokenPunct && c.toks[i].Rune == opener.Rune && c.toks[i].RunLength == 2 {
			hasCloser = true

			break
		}
	}
	if !hasCloser {
		return InlineNode{}, false
	}

	c.advance()
	children := ip.parseSpan(c, subs, func(t Token) bool {
		return t.Kind == TokenPunct && t.Rune == opener.Rune && t.RunLength == 2
	})
	c.advance() // consume closer

	ctor := constrainedMarker[opener.Rune]

	return InlineNode{Content: ctor(children)}, true
}

// applyTextReplacements runs the character/symbol/curly-quote
// replacement pass over the text content already collected, splitting
// TextInline nodes where a replacement sequence matches.
func applyTextReplacements(nodes InlineNodes) InlineNodes {
	var out InlineNodes
	for _, n := range nodes {
		text, ok := n.Content.(TextInline)
		if !ok {
			out = append(out, n)

			continue
		}
		out = append(out, splitTextWithReplacements(text.Text)...)
	}

	return out
}

func splitTextWithReplacements(s string) InlineNodes {
	var out InlineNodes
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			out = append(out, InlineNode{Content: TextInline{Text: buf.String()}})
			buf.Reset()
		}
	}

	for i := 0; i < len(s); {
		if matchEmDash(s, i) {
			flush()
			out = append(out, InlineNode{Content: SymbolInline{Kind: SymbolEmDash}})
			i += 2

			continue
		}
		if r, n, ok := matchReplacement(s, i); ok {
			flush()
			out = append(out, InlineNode{Content: SymbolInline{Kind: r.symbol}})
			i += n

			continue
		}
		if s[i] == '"' || s[i] == '\'' {
			role := straightQuoteRole(s, i)
			if kind, ok := curlyFor(s[i], role); ok {
				flush()
				out = append(out, InlineNode{Content: CurlyInline{Kind: kind}})
				i++

				continue
			}
		}
		buf.WriteByte(s[i])
		i++
	}
	flush()

	return out
}
