package asciidoc

import "strings"

var urlSchemes = map[string]bool{
	"http": true, "https": true, "ftp": true, "irc": true, "mailto": true,
}

// tryXrefShorthand attempts to parse `<<id,reftext>>` starting at a
// TokenBracketOpen('<'). Requires a second immediate '<', an id (word
// and/or punctuation up to ',' or '>>'), an optional comma-introduced
// reftext, and a closing ">>".
func (ip *inlineParser) tryXrefShorthand(c *inlineCursor) (InlineNode, bool) {
	start := c.pos
	first, _ := c.peek(0)
	second, ok := c.peek(1)
	if !ok || second.Kind != TokenBracketOpen || second.Rune != '<' {
		return InlineNode{}, false
	}
	_ = first
	c.advance()
	c.advance()

	var id strings.Builder
	for {
		tok, ok := c.peek(0)
		if !ok {
			c.pos = start

			return InlineNode{}, false
		}
		if tok.Kind == TokenPunct && tok.Rune == ',' {
			c.advance()

			break
		}
		if tok.Kind == TokenBracketClose && tok.Rune == '>' {
			break
		}
		id.WriteString(tok.Text())
		c.advance()
	}

	var reftextToks []Token
	for {
		tok, ok := c.peek(0)
		if !ok {
			c.pos = start

			return InlineNode{}, false
		}
		if tok.Kind == TokenBracketClose && tok.Rune == '>' {
			if next, ok := c.peek(1); ok && next.Kind == TokenBracketClose && next.Rune == '>' {
				c.advance()
				c.advance()

				break
			}
		}
		reftextToks = append(reftextToks, tok)
		c.advance()
	}

	var reftext *InlineNodes
	if len(reftextToks) > 0 {
		rt := ip.parseSpan(&inlineCursor{toks: reftextToks}, NormalSubs, nil)
		reftext = &rt
	}

	return InlineNode{Content: MacroInline{XrefMacro{ID: id.String(), Target: id.String(), Reftext: reftext}}}, true
}

// tryBareEmail attempts to parse `local@domain` starting at a TokenWord,
// where domain matches `[a-z0-9.-]{2,}` and contains at least one dot.
func (ip *inlineParser) tryBareEmail(c *inlineCursor) (InlineNode, bool) {
	local, _ := c.peek(0)

	at, ok := c.peek(1)
	if !ok || at.Kind != TokenPunct || at.Rune != '@' {
		return InlineNode{}, false
	}

	domainStart := c.pos + 2
	var domain strings.Builder
	i := domainStart
	for i < len(c.toks) {
		tok := c.toks[i]
		if tok.Kind == TokenWord || (tok.Kind == TokenPunct && (tok.Rune == '.' || tok.Rune == '-') && tok.RunLength == 1) || tok.Kind == TokenDigits {
			domain.WriteString(tok.Text())
			i++

			continue
		}

		break
	}
	if domain.Len() < 2 || !strings.Contains(domain.String(), ".") {
		return InlineNode{}, false
	}

	c.pos = i
	target := "mailto:" + local.Text() + "@" + domain.String()

	return InlineNode{Content: MacroInline{LinkMacro{Scheme: "mailto", Target: target}}}, true
}

// tryMacro attempts to parse an inline macro starting at the cursor,
// which must be sitting on a TokenMacroName. Returns ok=false, cursor
// untouched, for an unrecognised macro name (treated as literal text by
// the caller) or a malformed bracket.
func (ip *inlineParser) tryMacro(c *inlineCursor) (InlineNode, bool) {
	nameTok, _ := c.peek(0)
	name := nameTok.Name

	if next, ok := c.peek(1); ok && next.Kind == TokenBracketOpen && next.Rune == '[' {
		return ip.parseBracketMacro(c, name)
	}

	if urlSchemes[name] {
		return ip.parseBareAutolink(c, name)
	}

	return InlineNode{}, false
}

// parseBracketMacro handles every `name:target[attrs]` shaped macro.
func (ip *inlineParser) parseBracketMacro(c *inlineCursor, name string) (InlineNode, bool) {
	start := c.pos
	c.advance() // macro name

	target := ip.scanMacroTarget(c)
	bracketTokens, ok := ip.scanBracket(c)
	if !ok {
		c.pos = start

		return InlineNode{}, false
	}
	attrs := parseAttrListTokens(bracketTokens, ip.sourceIdx)

	switch name {
	case "kbd":
		keys := strings.Split(tokensText(bracketTokens), "+")

		return InlineNode{Content: MacroInline{KeyboardMacro{Keys: keys}}}, true
	case "btn":
		return InlineNode{Content: MacroInline{ButtonMacro{Label: tokensText(bracketTokens)}}}, true
	case "menu":
		return InlineNode{Content: MacroInline{MenuMacro{Path: strings.Split(target, ">")}}}, true
	case "image":
		return InlineNode{Content: MacroInline{ImageMacro{Inline: true, Target: target, Attrs: attrs}}}, true
	case "footnote":
		var id *string
		if target != "" {
			t := target
			id = &t
		}
		text := ip.parseSpan(&inlineCursor{toks: bracketTokens}, NormalSubs, nil)

		return InlineNode{Content: MacroInline{FootnoteMacro{ID: id, Text: text}}}, true
	case "link":
		return InlineNode{Content: MacroInline{LinkMacro{Target: target, Attrs: attrs}}}, true
	case "pass":
		subs := parsePassCodes(target)

		return InlineNode{Content: MacroInline{PassMacro{Text: tokensText(bracketTokens), Subs: subs}}}, true
	case "icon":
		return InlineNode{Content: MacroInline{IconMacro{Name: target, Attrs: attrs}}}, true
	case "xref":
		var reftext *InlineNodes
		if v, ok := attrs.PositionalAt(0); ok {
			rt := v
			reftext = &rt
		}

		return InlineNode{Content: MacroInline{XrefMacro{ID: target, Target: target, Reftext: reftext}}}, true
	default:
		c.pos = start

		return InlineNode{}, false
	}
}

func attrsFirstPositionalText(a AttrList) string {
	if v, ok := a.PositionalAt(0); ok {
		return plainText(v)
	}

	return ""
}

func parsePassCodes(codes string) SubstitutionSet {
	var subs SubstitutionSet
	for _, c := range codes {
		switch c {
		case 'c':
			subs |= SubSpecialChars
		case 'a':
			subs |= SubAttrs
		case 'r':
			subs |= SubReplacements
		case 'm':
			subs |= SubMacros
		case 'q':
			subs |= SubQuotes
		case 'p':
			subs |= SubPostReplacements
		}
	}

	return subs
}

// scanMacroTarget consumes tokens up to (not including) the opening
// bracket, concatenating their text as the macro's raw target.
func (ip *inlineParser) scanMacroTarget(c *inlineCursor) string {
	var b strings.Builder
	for {
		tok, ok := c.peek(0)
		if !ok || (tok.Kind == TokenBracketOpen && tok.Rune == '[') {
			break
		}
		b.WriteString(tok.Text())
		c.advance()
	}

	return b.String()
}

// scanBracket consumes a leading '[' and the matching ']' (bracket
// content is flat, not nested, by grammar), returning the tokens found
// between them.
func (ip *inlineParser) scanBracket(c *inlineCursor) ([]Token, bool) {
	open, ok := c.peek(0)
	if !ok || open.Kind != TokenBracketOpen || open.Rune != '[' {
		return nil, false
	}
	c.advance()

	var inner []Token
	for {
		tok, ok := c.peek(0)
		if !ok {
			return nil, false
		}
		if tok.Kind == TokenBracketClose && tok.Rune == ']' {
			c.advance()

			return inner, true
		}
		inner = append(inner, tok)
		c.advance()
	}
}

// parseBareAutolink handles a scheme-prefixed URL with no macro bracket
// syntax, e.g. plain `https://example.com` appearing in prose, and the
// `mailto` special case isn't reachable this way (mailto addresses are
// recognised by tryBareEmail instead, never lexed as a macro name
// since `@` isn't a word byte preceding a bare scheme).
func (ip *inlineParser) parseBareAutolink(c *inlineCursor, scheme string) (InlineNode, bool) {
	start := c.pos
	c.advance()

	var b strings.Builder
	for {
		tok, ok := c.peek(0)
		if !ok || tok.Kind == TokenWhitespace || tok.Kind == TokenNewline {
			break
		}
		if tok.Kind == TokenBracketOpen && tok.Rune == '[' {
			break
		}
		b.WriteString(tok.Text())
		c.advance()
	}
	target := scheme + ":" + b.String()
	if target == scheme+":" {
		c.pos = start

		return InlineNode{}, false
	}

	var attrs AttrList
	if bracketTokens, ok := ip.scanBracket(c); ok {
		attrs = parseAttrListTokens(bracketTokens, ip.sourceIdx)
	}

	return InlineNode{Content: MacroInline{LinkMacro{Scheme: scheme, Target: target, Attrs: attrs}}}, true
}

// parseAttrListTokens parses a bracket's inner tokens into an AttrList:
// comma-separated entries, each either `key=value`, `#id`, `.role`,
// `%option`, or a bare positional value.
func parseAttrListTokens(tokens []Token, sourceIdx int) AttrList {
	text := tokensText(tokens)
	attrs := AttrList{named: map[string]InlineNodes{}}

	for _, entry := range splitAttrListEntries(text) {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		switch entry[0] {
		case '#':
			id := entry[1:]
			attrs.id = &id

			continue
		case '.':
			attrs.roles = append(attrs.roles, entry[1:])

			continue
		case '%':
			attrs.options = append(attrs.options, entry[1:])

			continue
		}
		if key, value, ok := strings.Cut(entry, "="); ok && isValidAttrKey(key) {
			attrs.named[strings.TrimSpace(key)] = retokenizeAsInline(strings.Trim(strings.TrimSpace(value), `"`))

			continue
		}
		val := retokenizeAsInline(entry)
		attrs.Positional = append(attrs.Positional, &val)
	}

	return attrs
}

func isValidAttrKey(key string) bool {
	key = strings.TrimSpace(key)
	if key == "" {
		return false
	}
	for i, r := range key {
		if r >= '0' && r <= '9' && i == 0 {
			return false
		}
		if !(r == '-' || r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return false
		}
	}

	return true
}

func retokenizeAsInline(text string) InlineNodes {
	if text == "" {
		return nil
	}

	return InlineNodes{{Content: TextInline{Text: text}}}
}

func tokensText(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text())
	}

	return b.String()
}

// splitAttrListEntries splits on commas not enclosed in double quotes.
func splitAttrListEntries(s string) []string {
	var out []string
	start := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuote = !inQuote
		case ',':
			if !inQuote {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	out = append(out, s[start:])

	return out
}
