package asciidoc

// TokenKind enumerates the lexical categories the lexer can produce. The
// enumeration is closed: callers should treat an unrecognised kind as a
// programming error, not extend it dynamically.
type TokenKind uint8

const (
	// TokenEOF signals end of input. Start == End == len(source).
	TokenEOF TokenKind = iota
	// TokenNewline is a line ending (\n or \r\n normalized to one token).
	TokenNewline
	// TokenWhitespace is a contiguous run of ASCII spaces or tabs.
	TokenWhitespace
	// TokenWord is a maximal run of letters, digits and underscores that
	// does not start with a digit (see TokenDigits).
	TokenWord
	// TokenDigits is a maximal run of ASCII digits.
	TokenDigits
	// TokenPunct is a single punctuation byte, or a run of repeated
	// identical punctuation bytes for the delimiter-forming characters
	// (= - . * ~ ^ _ ` +). Rune identifies the byte; RunLength the count.
	// Non-repeatable punctuation (: ; , . < > ! # % & \ ' ") always has
	// RunLength 1.
	TokenPunct
	// TokenBracketOpen / TokenBracketClose are '[' ']' '(' ')' '<' '>'
	// used as paired delimiters; Rune identifies which pair.
	TokenBracketOpen
	TokenBracketClose
	// TokenMacroName is `word:` at other than line start (image:, kbd:,
	// footnote:, ...). Name holds the text before the colon.
	TokenMacroName
	// TokenDirective is `word::` at line start (include::, ifdef::,
	// ifndef::, ifeval::, endif::). Name holds the text before `::`.
	TokenDirective
	// TokenAttrRef is `{name}`. Name holds the attribute name.
	TokenAttrRef
	// TokenDelimiterLine is a line opening or closing a delimited block
	// (----, ====, ****, ...., ++++, ____, --, |===, ,===, :===, !===).
	// Rune and RunLength describe the repeated delimiter character (or,
	// for table fences, the leading separator byte); for the two-byte
	// open delimiter Rune holds '-' with RunLength 2. Source is the full
	// line.
	TokenDelimiterLine
	// TokenCommentBlockFence is specifically the //// comment-block
	// delimiter, called out as its own kind because its body is never
	// parsed, only discarded verbatim.
	TokenCommentBlockFence
	// TokenCommentLine is a single-line `//` comment (but not `///+`,
	// which is a CommentBlockFence instead). Source is the text after
	// the leading `//`.
	TokenCommentLine
	// TokenError marks invalid input (e.g. a malformed UTF-8 sequence
	// inside included content). Message holds a description.
	TokenError
)

// Token is a single lexical unit: a kind, its byte span, a zero-copy view
// into the source it came from, and kind-specific payload fields.
type Token struct {
	Kind  TokenKind
	Start int
	End   int
	Src   []byte

	// Rune and RunLength describe TokenPunct, TokenBracketOpen/Close and
	// TokenDelimiterLine/TokenCommentBlockFence tokens.
	Rune      byte
	RunLength int

	// Name describes TokenMacroName, TokenDirective and TokenAttrRef
	// tokens.
	Name string

	// Message describes TokenError tokens.
	Message string

	// Overlay is set when this token was produced by substituting an
	// attribute reference's text rather than by lexing source bytes
	// directly: Start/End repeat the original {name} token's span (so
	// diagnostics stay anchored there) while Src holds the substituted
	// bytes. Nil for ordinarily-lexed tokens.
	Overlay *SourceLocation
}

// Len returns the byte length of the token.
func (t Token) Len() int { return t.End - t.Start }

// Text returns a copy of the token's source content.
func (t Token) Text() string { return string(t.Src) }

// IsPunctRune reports whether t is a TokenPunct token carrying byte r.
func (t Token) IsPunctRune(r byte) bool {
	return t.Kind == TokenPunct && t.Rune == r
}

// String returns a human-readable token kind name, for diagnostics and
// tests.
func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "EOF"
	case TokenNewline:
		return "Newline"
	case TokenWhitespace:
		return "Whitespace"
	case TokenWord:
		return "Word"
	case TokenDigits:
		return "Digits"
	case TokenPunct:
		return "Punct"
	case TokenBracketOpen:
		return "BracketOpen"
	case TokenBracketClose:
		return "BracketClose"
	case TokenMacroName:
		return "MacroName"
	case TokenDirective:
		return "Directive"
	case TokenAttrRef:
		return "AttrRef"
	case TokenDelimiterLine:
		return "DelimiterLine"
	case TokenCommentBlockFence:
		return "CommentBlockFence"
	case TokenCommentLine:
		return "CommentLine"
	case TokenError:
		return "Error"
	default:
		return "Unknown"
	}
}

// repeatablePunct is the set of characters that form a multi-byte
// "run" token when repeated (the delimiter-forming characters).
var repeatablePunct = map[byte]bool{
	'=': true, '-': true, '.': true, '*': true, '~': true,
	'^': true, '_': true, '`': true, '+': true, '#': true,
}

// delimiterMinRun is the minimum repeat count for a line consisting
// solely of one repeatable punctuation byte (plus newline) to be
// classified as a delimiter line opener, keyed by byte.
var delimiterMinRun = map[byte]int{
	'-': 2, '=': 4, '*': 4, '.': 4, '+': 4, '_': 4,
}
