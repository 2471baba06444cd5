package asciidoc

// InlineKind enumerates the Inline variants. It exists only so Walk/Find
// style code can dispatch without a type switch when that's more
// convenient; the canonical discriminant is still the concrete Go type.
type InlineKind uint8

const (
	InlineKindText InlineKind = iota
	InlineKindBold
	InlineKindItalic
	InlineKindMono
	InlineKindLitMono
	InlineKindHighlight
	InlineKindSuperscript
	InlineKindSubscript
	InlineKindQuote
	InlineKindCurly
	InlineKindSpecialChar
	InlineKindSymbol
	InlineKindMacro
	InlineKindTextSpan
	InlineKindPassthrough
	InlineKindMultiCharWhitespace
	InlineKindJoiningNewline
	InlineKindDiscarded
)

// Inline is the sum type of everything the inline parser can produce. It
// is a closed set implemented only by the types in this file; external
// packages consume it via a type switch or the Walk/Find helpers.
type Inline interface {
	InlineKind() InlineKind
	inlineSealed()
}

// InlineNode pairs an Inline payload with the source span it was parsed
// from, which may span an attribute-reference overlay (see SourceFile's
// overlay mechanism) rather than literal source bytes.
type InlineNode struct {
	Content  Inline
	Location MultiSourceLocation
}

// InlineNodes is a sequence of sibling inline nodes, e.g. the content of
// a paragraph or of a formatting span.
type InlineNodes []InlineNode

// TextInline is literal, already-substituted text with no further
// structure.
type TextInline struct{ Text string }

func (TextInline) InlineKind() InlineKind { return InlineKindText }
func (TextInline) inlineSealed()          {}

// formattingSpan is embedded by every constrained/unconstrained
// formatting inline to share the "children" shape.
type formattingSpan struct{ Children InlineNodes }

type BoldInline struct{ formattingSpan }
type ItalicInline struct{ formattingSpan }
type MonoInline struct{ formattingSpan }
type HighlightInline struct{ formattingSpan }
type SuperscriptInline struct{ formattingSpan }
type SubscriptInline struct{ formattingSpan }

func (BoldInline) InlineKind() InlineKind        { return InlineKindBold }
func (BoldInline) inlineSealed()                 {}
func (ItalicInline) InlineKind() InlineKind      { return InlineKindItalic }
func (ItalicInline) inlineSealed()                {}
func (MonoInline) InlineKind() InlineKind        { return InlineKindMono }
func (MonoInline) inlineSealed()                  {}
func (HighlightInline) InlineKind() InlineKind   { return InlineKindHighlight }
func (HighlightInline) inlineSealed()            {}
func (SuperscriptInline) InlineKind() InlineKind { return InlineKindSuperscript }
func (SuperscriptInline) inlineSealed()          {}
func (SubscriptInline) InlineKind() InlineKind   { return InlineKindSubscript }
func (SubscriptInline) inlineSealed()            {}

// LitMonoInline is backtick-delimited literal monospace (`+like this+`
// inside a single backtick pair): its content is never substituted.
type LitMonoInline struct{ Text string }

func (LitMonoInline) InlineKind() InlineKind { return InlineKindLitMono }
func (LitMonoInline) inlineSealed()          {}

// QuoteKind distinguishes straight vs curly, single vs double quotes
// produced by the replacements substitution or by explicit `"`/`'` quote
// marker pairs (AsciiDoc's "double/single quote" formatting form).
type QuoteKind uint8

const (
	QuoteDouble QuoteKind = iota
	QuoteSingle
)

type QuoteInline struct {
	Kind     QuoteKind
	Children InlineNodes
}

func (QuoteInline) InlineKind() InlineKind { return InlineKindQuote }
func (QuoteInline) inlineSealed()          {}

// CurlyKind enumerates the curly-quote character replacements produced
// from straight quotes by the replacements substitution.
type CurlyKind uint8

const (
	CurlyLeftDouble CurlyKind = iota
	CurlyRightDouble
	CurlyLeftSingle
	CurlyRightSingle
	CurlyApostrophe
)

type CurlyInline struct{ Kind CurlyKind }

func (CurlyInline) InlineKind() InlineKind { return InlineKindCurly }
func (CurlyInline) inlineSealed()          {}

// SpecialCharKind enumerates the special-chars substitution's escaped
// markup characters (`<`, `>`, `&`), replaced regardless of backend.
type SpecialCharKind uint8

const (
	SpecialLessThan SpecialCharKind = iota
	SpecialGreaterThan
	SpecialAmpersand
)

type SpecialCharInline struct{ Kind SpecialCharKind }

func (SpecialCharInline) InlineKind() InlineKind { return InlineKindSpecialChar }
func (SpecialCharInline) inlineSealed()          {}

// SymbolKind enumerates the replacements substitution's named character
// and symbol replacements.
type SymbolKind uint8

const (
	SymbolCopyright SymbolKind = iota
	SymbolTrademark
	SymbolRegistered
	SymbolEllipsis
	SymbolRightArrow
	SymbolRightDoubleArrow
	SymbolLeftArrow
	SymbolLeftDoubleArrow
	SymbolEmDash
)

type SymbolInline struct{ Kind SymbolKind }

func (SymbolInline) InlineKind() InlineKind { return InlineKindSymbol }
func (SymbolInline) inlineSealed()          {}

// MacroInline wraps a MacroNode payload.
type MacroInline struct{ Macro MacroNode }

func (MacroInline) InlineKind() InlineKind { return InlineKindMacro }
func (MacroInline) inlineSealed()          {}

// TextSpanInline is an attribute-list-qualified span, `[.role]#text#` and
// similar, carrying an AttrList alongside its children.
type TextSpanInline struct {
	Attrs    AttrList
	Children InlineNodes
}

func (TextSpanInline) InlineKind() InlineKind { return InlineKindTextSpan }
func (TextSpanInline) inlineSealed()          {}

// InlinePassthroughInline is `+...+`/`++...++` content exempted from the
// substitutions its enclosing pass:[] codes excluded.
type InlinePassthroughInline struct{ Children InlineNodes }

func (InlinePassthroughInline) InlineKind() InlineKind { return InlineKindPassthrough }
func (InlinePassthroughInline) inlineSealed()          {}

// MultiCharWhitespaceInline is a run of two or more whitespace bytes
// collapsed to a single node, distinct from TextInline so backends can
// decide how to render runs of blank space.
type MultiCharWhitespaceInline struct{ Text string }

func (MultiCharWhitespaceInline) InlineKind() InlineKind { return InlineKindMultiCharWhitespace }
func (MultiCharWhitespaceInline) inlineSealed()          {}

// JoiningNewlineInline marks a soft line break within a paragraph that is
// joined into a single rendered line (as opposed to a hard break).
type JoiningNewlineInline struct{}

func (JoiningNewlineInline) InlineKind() InlineKind { return InlineKindJoiningNewline }
func (JoiningNewlineInline) inlineSealed()          {}

// DiscardedInline marks source text consumed for its side effect (an
// escape backslash, a recognised-but-empty macro delimiter) that
// contributes no rendered content but whose location is still needed to
// keep sibling spans contiguous.
type DiscardedInline struct{}

func (DiscardedInline) InlineKind() InlineKind { return InlineKindDiscarded }
func (DiscardedInline) inlineSealed()          {}

// MacroKind enumerates MacroNode variants.
type MacroKind uint8

const (
	MacroKindFootnote MacroKind = iota
	MacroKindImage
	MacroKindKeyboard
	MacroKindLink
	MacroKindPass
	MacroKindIcon
	MacroKindButton
	MacroKindMenu
	MacroKindXref
)

// MacroNode is the sum type of recognised inline (and, for Image, block)
// macros.
type MacroNode interface {
	MacroKind() MacroKind
	macroSealed()
}

// FootnoteMacro is `footnote:[text]` (ID nil, anonymous) or
// `footnote:id[text]` (ID naming a reusable reference).
type FootnoteMacro struct {
	ID   *string
	Text InlineNodes
}

func (FootnoteMacro) MacroKind() MacroKind { return MacroKindFootnote }
func (FootnoteMacro) macroSealed()         {}

// ImageMacro is `image:target[attrs]` (Inline=true) or the block form
// `image::target[attrs]` (Inline=false) recognised by the block parser
// and wrapped as a macro for uniform attribute handling.
type ImageMacro struct {
	Inline bool
	Target string
	Attrs  AttrList
}

func (ImageMacro) MacroKind() MacroKind { return MacroKindImage }
func (ImageMacro) macroSealed()         {}

// KeyboardMacro is `kbd:[keys]`; Keys is the `+` separated key sequence
// already split, e.g. ["Ctrl", "Alt", "Del"].
type KeyboardMacro struct{ Keys []string }

func (KeyboardMacro) MacroKind() MacroKind { return MacroKindKeyboard }
func (KeyboardMacro) macroSealed()         {}

// LinkMacro covers `link:url[attrs]`, bare autolinks, and mailto
// addresses; Scheme is empty for a protocol-relative or mailto target.
type LinkMacro struct {
	Scheme string
	Target string
	Attrs  AttrList
}

func (LinkMacro) MacroKind() MacroKind { return MacroKindLink }
func (LinkMacro) macroSealed()         {}

// PassMacro is `pass:[...]` or `pass:c,a[...]`; Subs records which
// substitutions the codes requested be applied to Text (normally none).
type PassMacro struct {
	Text string
	Subs SubstitutionSet
}

func (PassMacro) MacroKind() MacroKind { return MacroKindPass }
func (PassMacro) macroSealed()         {}

type IconMacro struct {
	Name  string
	Attrs AttrList
}

func (IconMacro) MacroKind() MacroKind { return MacroKindIcon }
func (IconMacro) macroSealed()         {}

type ButtonMacro struct{ Label string }

func (ButtonMacro) MacroKind() MacroKind { return MacroKindButton }
func (ButtonMacro) macroSealed()         {}

// MenuMacro is `menu:File > Save` (or `menu:File[Save]`); Path holds the
// ordered menu item names.
type MenuMacro struct{ Path []string }

func (MenuMacro) MacroKind() MacroKind { return MacroKindMenu }
func (MenuMacro) macroSealed()         {}

// XrefMacro covers both `xref:id[reftext]` and the shorthand
// `<<id,reftext>>` form; Target is the raw id text as written (it may
// need percent-decoding for inter-document xrefs, out of scope here).
type XrefMacro struct {
	ID      string
	Target  string
	Reftext *InlineNodes
}

func (XrefMacro) MacroKind() MacroKind { return MacroKindXref }
func (XrefMacro) macroSealed()         {}

// AttrList is the parsed `[...]` attribute list attached to a block,
// macro or span: a mix of positional and named entries plus the three
// syntactic shorthands (`#id`, `.role`, `%option`).
type AttrList struct {
	Positional []*InlineNodes
	named      map[string]InlineNodes
	id         *string
	roles      []string
	options    []string
	Location   MultiSourceLocation
}

// BlockStyle returns the first positional entry rendered as plain text,
// which AsciiDoc treats as the block-style/admonition-kind keyword (e.g.
// "quote", "source", "NOTE") when present.
func (a AttrList) BlockStyle() (string, bool) {
	if len(a.Positional) == 0 || a.Positional[0] == nil {
		return "", false
	}

	return plainText(*a.Positional[0]), true
}

// ID returns the `#id` shorthand value, if present.
func (a AttrList) ID() (string, bool) {
	if a.id == nil {
		return "", false
	}

	return *a.id, true
}

// Roles returns every `.role` shorthand value, in declaration order.
func (a AttrList) Roles() []string { return a.roles }

// Options returns every `%option` shorthand value, in declaration order.
func (a AttrList) Options() []string { return a.options }

// HasOption reports whether name was declared via `%name`.
func (a AttrList) HasOption(name string) bool {
	for _, o := range a.options {
		if o == name {
			return true
		}
	}

	return false
}

// Named returns the value of a `key=value` entry.
func (a AttrList) Named(key string) (InlineNodes, bool) {
	v, ok := a.named[key]

	return v, ok
}

// PositionalAt returns the nth (0-based) positional entry.
func (a AttrList) PositionalAt(n int) (InlineNodes, bool) {
	if n < 0 || n >= len(a.Positional) || a.Positional[n] == nil {
		return nil, false
	}

	return *a.Positional[n], true
}

// SourceLanguage returns the `source` block's language, which AsciiDoc
// accepts either as the second positional entry (`[source,go]`) or as
// the named `language` attribute.
func (a AttrList) SourceLanguage() (string, bool) {
	if v, ok := a.Named("language"); ok {
		return plainText(v), true
	}
	if v, ok := a.PositionalAt(1); ok {
		return plainText(v), true
	}

	return "", false
}

// plainText concatenates the TextInline content of nodes, ignoring any
// other structure; used for attribute-list entries which are restricted
// to plain text by the grammar.
func plainText(nodes InlineNodes) string {
	var out []byte
	for _, n := range nodes {
		if t, ok := n.Content.(TextInline); ok {
			out = append(out, t.Text...)
		}
	}

	return string(out)
}
