package asciidoc

import "strings"

// headerResult holds everything parseHeader extracts from the document
// header (title, authors, revision); attribute entries in the header
// mutate bp.attrs directly and are not returned separately.
type headerResult struct {
	title    *InlineNodes
	subtitle *InlineNodes
	authors  []Author
	revision *Revision
}

// parseHeader recognises an optional `= Title` line, an optional author
// line, an optional revision line, and a run of `:name: value` entries,
// terminated by a blank line. If the first contiguous-lines group does
// not open with a document-title heading, no header is present at all.
func (bp *blockParser) parseHeader(cl *ContiguousLines) headerResult {
	var result headerResult

	line, ok := cl.PeekLine()
	if !ok {
		return result
	}
	first, ok := line.Current()
	if !ok || first.Kind != TokenPunct || first.Rune != '=' || first.RunLength != 1 {
		return result
	}

	line, _ = cl.ConsumeLine()
	line.Consume()
	titleInlines := bp.inline.parseLines([]Line{line}, NormalSubs)
	title, subtitle := splitTitleSubtitle(titleInlines)
	result.title = &title
	result.subtitle = subtitle

	if al, ok := cl.PeekLine(); ok {
		if tok, ok := al.Current(); ok && tok.Kind == TokenWord && looksLikeAuthorLine(al) {
			authorLine, _ := cl.ConsumeLine()
			result.authors = parseAuthorLine(lineRawText(authorLine))

			if rl, ok := cl.PeekLine(); ok {
				if looksLikeRevisionLine(rl) {
					revLine, _ := cl.ConsumeLine()
					rev := parseRevisionLine(lineRawText(revLine))
					result.revision = &rev
				}
			}
		}
	}

	for {
		l, ok := cl.PeekLine()
		if !ok {
			break
		}
		if !isAttrEntryLine(l) {
			break
		}
		l, _ = cl.ConsumeLine()
		name, value, unset := parseAttrEntryLine(l)
		bp.attrs.Set(name, value, unset, AttributeOriginHeader)
	}

	return result
}

// splitTitleSubtitle splits on a colon separator per AsciiDoc's
// `Title: Subtitle` document-title convention.
func splitTitleSubtitle(nodes InlineNodes) (InlineNodes, *InlineNodes) {
	for i, n := range nodes {
		if t, ok := n.Content.(TextInline); ok {
			if idx := strings.Index(t.Text, ": "); idx >= 0 {
				before := append(InlineNodes{}, nodes[:i]...)
				before = append(before, InlineNode{Content: TextInline{Text: t.Text[:idx]}})
				after := InlineNodes{{Content: TextInline{Text: t.Text[idx+2:]}}}
				after = append(after, nodes[i+1:]...)

				return before, &after
			}
		}
	}

	return nodes, nil
}

func lineRawText(l Line) string {
	var b strings.Builder
	for _, t := range l.Tokens {
		b.WriteString(t.Text())
	}

	return b.String()
}

// looksLikeAuthorLine is a shallow heuristic: a line of plain words,
// optionally with `;`-separated multiple authors and a `<email>`, that
// is not itself an attribute entry or blank.
func looksLikeAuthorLine(l Line) bool {
	for _, t := range l.Tokens {
		if t.Kind == TokenPunct && t.Rune == ':' {
			return false
		}
	}

	return true
}

func looksLikeRevisionLine(l Line) bool {
	text := lineRawText(l)
	if text == "" {
		return false
	}

	return text[0] == 'v' || text[0] == 'V' || strings.ContainsAny(text[:1], "0123456789")
}

// parseAuthorLine parses `First [Middle] Last [<email>]; ...`.
func parseAuthorLine(text string) []Author {
	var authors []Author
	for _, entry := range strings.Split(text, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		authors = append(authors, parseOneAuthor(entry))
	}

	return authors
}

func parseOneAuthor(entry string) Author {
	var a Author
	if idx := strings.Index(entry, "<"); idx >= 0 {
		if end := strings.Index(entry, ">"); end > idx {
			a.Email = entry[idx+1 : end]
			entry = strings.TrimSpace(entry[:idx])
		}
	}
	parts := strings.Fields(entry)
	switch len(parts) {
	case 1:
		a.FirstName = parts[0]
	case 2:
		a.FirstName, a.LastName = parts[0], parts[1]
	case 0:
	default:
		a.FirstName = parts[0]
		a.MiddleName = parts[1]
		a.LastName = strings.Join(parts[2:], " ")
	}

	return a
}

// parseRevisionLine parses `vX.Y, date: remark`, where date and remark
// are both optional.
func parseRevisionLine(text string) Revision {
	var rev Revision
	text = strings.TrimPrefix(strings.TrimPrefix(text, "v"), "V")

	commaIdx := strings.Index(text, ",")
	numberPart := text
	rest := ""
	if commaIdx >= 0 {
		numberPart = text[:commaIdx]
		rest = strings.TrimSpace(text[commaIdx+1:])
	}
	rev.Number = strings.TrimSpace(numberPart)

	if rest != "" {
		if colonIdx := strings.Index(rest, ":"); colonIdx >= 0 {
			rev.Date = strings.TrimSpace(rest[:colonIdx])
			rev.Remark = strings.TrimSpace(rest[colonIdx+1:])
		} else {
			rev.Date = rest
		}
	}

	return rev
}

func isAttrEntryLine(l Line) bool {
	toks := l.Tokens
	if len(toks) < 2 {
		return false
	}

	return toks[0].Kind == TokenPunct && toks[0].Rune == ':' && toks[0].RunLength == 1
}

// parseAttrEntryLine parses `:name: value` or `:name!:`/`:!name:`.
func parseAttrEntryLine(l Line) (name, value string, unset bool) {
	text := lineRawText(l)
	if !strings.HasPrefix(text, ":") {
		return "", "", false
	}
	rest := text[1:]
	end := strings.Index(rest, ":")
	if end < 0 {
		return "", "", false
	}
	nameField := rest[:end]
	value = strings.TrimSpace(rest[end+1:])

	if strings.HasPrefix(nameField, "!") {
		return nameField[1:], "", true
	}
	if strings.HasSuffix(nameField, "!") {
		return nameField[:len(nameField)-1], "", true
	}

	return nameField, value, false
}
