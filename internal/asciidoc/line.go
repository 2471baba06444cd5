package asciidoc

// Line is a bounded queue of Tokens belonging to one source line, not
// including its terminating TokenNewline (callers that need the newline's
// span use SourceIdx/End on the last content token plus one). A Line
// produced at end of input with no trailing newline is still valid.
type Line struct {
	Tokens      []Token
	SourceIdx   int
	pos         int
}

// newLine wraps a token slice (already stripped of its terminating
// TokenNewline/TokenEOF) as a Line belonging to sourceIdx.
func newLine(tokens []Token, sourceIdx int) Line {
	return Line{Tokens: tokens, SourceIdx: sourceIdx}
}

// IsEmpty reports whether every token has been consumed.
func (l *Line) IsEmpty() bool {
	return l.pos >= len(l.Tokens)
}

// Len returns the number of unconsumed tokens.
func (l *Line) Len() int {
	return len(l.Tokens) - l.pos
}

// Peek returns the token n positions ahead of the cursor (0 = next token
// to be consumed) without advancing, and false if out of range.
func (l *Line) Peek(n int) (Token, bool) {
	i := l.pos + n
	if i < 0 || i >= len(l.Tokens) {
		return Token{}, false
	}

	return l.Tokens[i], true
}

// Current is shorthand for Peek(0).
func (l *Line) Current() (Token, bool) {
	return l.Peek(0)
}

// Consume returns the next token and advances the cursor past it.
func (l *Line) Consume() (Token, bool) {
	tok, ok := l.Peek(0)
	if ok {
		l.pos++
	}

	return tok, ok
}

// ConsumeIfKind consumes and returns the next token only if it matches
// kind.
func (l *Line) ConsumeIfKind(kind TokenKind) (Token, bool) {
	tok, ok := l.Peek(0)
	if !ok || tok.Kind != kind {
		return Token{}, false
	}
	l.pos++

	return tok, true
}

// ConsumeExpecting consumes the next token, which must match kind, and
// panics with a descriptive message otherwise; callers use it only after
// already verifying the shape with Peek, to assert an invariant.
func (l *Line) ConsumeExpecting(kind TokenKind) Token {
	tok, ok := l.ConsumeIfKind(kind)
	if !ok {
		panic("asciidoc: ConsumeExpecting " + kind.String() + " but found different token")
	}

	return tok
}

// Remaining returns the unconsumed tokens without advancing the cursor.
func (l *Line) Remaining() []Token {
	return l.Tokens[l.pos:]
}

// ContainsSequence reports whether the remaining tokens contain kinds as a
// contiguous subsequence, in order.
func (l *Line) ContainsSequence(kinds ...TokenKind) bool {
	return containsSeq(l.Remaining(), kinds)
}

// EndsWithSequence reports whether the remaining tokens end with kinds, in
// order.
func (l *Line) EndsWithSequence(kinds ...TokenKind) bool {
	rem := l.Remaining()
	if len(kinds) > len(rem) {
		return false
	}
	tail := rem[len(rem)-len(kinds):]
	for i, k := range kinds {
		if tail[i].Kind != k {
			return false
		}
	}

	return true
}

// StartsWithSequence reports whether the remaining tokens begin with
// kinds, in order.
func (l *Line) StartsWithSequence(kinds ...TokenKind) bool {
	rem := l.Remaining()
	if len(kinds) > len(rem) {
		return false
	}
	for i, k := range kinds {
		if rem[i].Kind != k {
			return false
		}
	}

	return true
}

// SplitAt splits the remaining tokens into two Lines at index n (relative
// to the cursor): tokens [0,n) and [n,end). Both share this Line's
// SourceIdx.
func (l *Line) SplitAt(n int) (Line, Line) {
	rem := l.Remaining()
	if n < 0 {
		n = 0
	}
	if n > len(rem) {
		n = len(rem)
	}

	return newLine(rem[:n], l.SourceIdx), newLine(rem[n:], l.SourceIdx)
}

// TerminatesConstrained reports whether the token at the cursor is one of
// stopKinds, used by the inline parser to find the closing delimiter of a
// constrained formatting span without consuming it.
func (l *Line) TerminatesConstrained(stopKinds ...TokenKind) bool {
	tok, ok := l.Current()
	if !ok {
		return true
	}
	for _, k := range stopKinds {
		if tok.Kind == k {
			return true
		}
	}

	return false
}

func containsSeq(tokens []Token, kinds []TokenKind) bool {
	if len(kinds) == 0 {
		return true
	}
	for i := 0; i+len(kinds) <= len(tokens); i++ {
		match := true
		for j, k := range kinds {
			if tokens[i+j].Kind != k {
				match = false

				break
			}
		}
		if match {
			return true
		}
	}

	return false
}

// lineSource supplies Lines on demand to a ContiguousLines, one at a time,
// returning ok=false at end of input. The preprocessor implements this to
// interleave include resolution and attribute substitution with line
// production; the plain lexer-backed implementation lives in reader.go.
type lineSource interface {
	nextLine() (Line, bool)
}

// ContiguousLines is a queue of Lines lazily refilled from a lineSource
// until a blank line (zero tokens) or end of input, matching AsciiDoc's
// paragraph/list-item boundary rule: a block of contiguous, non-blank
// lines forms one unit for the block parser to consume.
type ContiguousLines struct {
	src      lineSource
	buf      []Line
	restored *Line
	done     bool
}

// newContiguousLines creates a queue fed by src, eagerly filling the first
// run of contiguous lines.
func newContiguousLines(src lineSource) *ContiguousLines {
	cl := &ContiguousLines{src: src}
	cl.fill()

	return cl
}

// fill pulls lines from src until a blank line or EOF, appending to buf.
// It is called once up front and again by PeekLine, ConsumeLine and
// PeekLineAt whenever buf is empty. The blank line that ends a group is
// read from src and dropped; it is not put in buf.
func (cl *ContiguousLines) fill() {
	if cl.done {
		return
	}
	for {
		line, ok := cl.src.nextLine()
		if !ok {
			cl.done = true

			return
		}
		if line.IsEmpty() && len(line.Tokens) == 0 {
			return
		}
		cl.buf = append(cl.buf, line)
	}
}

// IsEmpty reports whether every buffered line has been consumed.
func (cl *ContiguousLines) IsEmpty() bool {
	return cl.restored == nil && len(cl.buf) == 0
}

// PeekLine returns the next Line without consuming it. When the current
// contiguous group has been fully consumed, it transparently starts the
// next group (skipping the blank-line separator) before reporting
// end of input.
func (cl *ContiguousLines) PeekLine() (Line, bool) {
	if cl.restored != nil {
		return *cl.restored, true
	}
	if len(cl.buf) == 0 {
		cl.fill()
	}
	if len(cl.buf) == 0 {
		return Line{}, false
	}

	return cl.buf[0], true
}

// ConsumeLine returns and removes the next Line, starting the next
// contiguous group transparently if the current one is exhausted.
func (cl *ContiguousLines) ConsumeLine() (Line, bool) {
	if cl.restored != nil {
		line := *cl.restored
		cl.restored = nil

		return line, true
	}
	if len(cl.buf) == 0 {
		cl.fill()
	}
	if len(cl.buf) == 0 {
		return Line{}, false
	}
	line := cl.buf[0]
	cl.buf = cl.buf[1:]

	return line, true
}

// RestoreLine pushes line back as the next line to be returned. Only one
// slot of pushback is supported, matching the grammar's one-line
// lookahead need (e.g. deciding a paragraph has ended by peeking the
// line after it, then restoring it for the next block to consume).
func (cl *ContiguousLines) RestoreLine(line Line) {
	cl.restored = &line
}

// ConsumeRawLine returns the next line including blank lines, bypassing
// the contiguous-group boundary. Delimited blocks (listing, example,
// table, ...) use this to scan their interior up to a matching closing
// fence, since their content may legitimately contain blank lines.
func (cl *ContiguousLines) ConsumeRawLine() (Line, bool) {
	if cl.restored != nil {
		line := *cl.restored
		cl.restored = nil

		return line, true
	}
	if len(cl.buf) > 0 {
		line := cl.buf[0]
		cl.buf = cl.buf[1:]

		return line, true
	}
	if cl.done {
		return Line{}, false
	}
	line, ok := cl.src.nextLine()
	if !ok {
		cl.done = true
	}

	return line, ok
}

// PeekLineAt returns the i'th not-yet-consumed buffered line (0 = next)
// without consuming anything, for grammar rules that need to look past
// a run of leading lines (e.g. chunk metadata). A restored line counts
// as index 0. Like PeekLine it refills from the next group when buf is
// empty, but it only looks within that one group: an index past the
// group's last line reports ok=false.
func (cl *ContiguousLines) PeekLineAt(i int) (Line, bool) {
	if cl.restored != nil {
		if i == 0 {
			return *cl.restored, true
		}
		i--
	}
	if len(cl.buf) == 0 {
		cl.fill()
	}
	if i < 0 || i >= len(cl.buf) {
		return Line{}, false
	}

	return cl.buf[i], true
}

// AnyLine reports whether any buffered (not yet consumed) line satisfies
// pred.
func (cl *ContiguousLines) AnyLine(pred func(Line) bool) bool {
	if cl.restored != nil && pred(*cl.restored) {
		return true
	}
	for _, l := range cl.buf {
		if pred(l) {
			return true
		}
	}

	return false
}

// ContainsSeq reports whether any buffered line's remaining tokens contain
// kinds as a contiguous subsequence.
func (cl *ContiguousLines) ContainsSeq(kinds ...TokenKind) bool {
	return cl.AnyLine(func(l Line) bool { return l.ContainsSequence(kinds...) })
}
