package asciidoc

// rawLineReader is a lineSource that pulls directly from a lexer over
// one SourceFile's bytes, with no preprocessing applied.
type rawLineReader struct {
	lx        *lexer
	sourceIdx int
}

func newRawLineReader(src *SourceFile, sourceIdx int) *rawLineReader {
	return &rawLineReader{lx: newLexer(src.Bytes), sourceIdx: sourceIdx}
}

// nextLine accumulates tokens up to (not including) the next newline or
// EOF. It returns ok=false only at true end of input; a blank line (a
// lone newline) is reported as an empty, ok=true Line, matching the
// contiguous-lines blank-line separator rule.
func (r *rawLineReader) nextLine() (Line, bool) {
	var toks []Token
	for {
		tok := r.lx.Next()
		switch tok.Kind {
		case TokenEOF:
			if len(toks) == 0 {
				return Line{}, false
			}

			return newLine(toks, r.sourceIdx), true
		case TokenNewline:
			return newLine(toks, r.sourceIdx), true
		default:
			toks = append(toks, tok)
		}
	}
}
