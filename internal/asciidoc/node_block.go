package asciidoc

// BlockContext enumerates every kind of block the parser can produce.
// AttrList.BlockStyle() returns a block's style keyword as a string; the
// parsers map such a keyword to a context where one applies (e.g. "verse"
// on a `____` block selects BlockContextVerse).
type BlockContext uint8

const (
	BlockContextParagraph BlockContext = iota
	BlockContextListing
	BlockContextLiteral
	BlockContextExample
	BlockContextSidebar
	BlockContextOpen
	BlockContextPassthrough
	BlockContextQuote
	BlockContextVerse
	BlockContextImage
	BlockContextAudio
	BlockContextVideo
	BlockContextTable
	BlockContextTableCell
	BlockContextOrderedList
	BlockContextUnorderedList
	BlockContextCalloutList
	BlockContextDescriptionList
	BlockContextListItem
	BlockContextPageBreak
	BlockContextThematicBreak
	BlockContextSection
	BlockContextDiscreteHeading
	BlockContextComment
	BlockContextDocumentAttributeDecl
	BlockContextQuotedParagraph
	BlockContextTableOfContents
)

// AdmonitionKind enumerates the five admonition keywords; a Block with
// Context BlockContextExample or BlockContextParagraph carries one in its
// ChunkMeta when the source used an admonition label or `[NOTE]` style.
type AdmonitionKind uint8

const (
	AdmonitionNone AdmonitionKind = iota
	AdmonitionTip
	AdmonitionNote
	AdmonitionCaution
	AdmonitionImportant
	AdmonitionWarning
)

func admonitionFromLabel(label string) AdmonitionKind {
	switch label {
	case "TIP":
		return AdmonitionTip
	case "NOTE":
		return AdmonitionNote
	case "CAUTION":
		return AdmonitionCaution
	case "IMPORTANT":
		return AdmonitionImportant
	case "WARNING":
		return AdmonitionWarning
	default:
		return AdmonitionNone
	}
}

// ChunkMeta groups everything that may precede a block: its title lines,
// its attribute list, any admonition label, and the location where this
// metadata run (or, absent metadata, the block itself) begins.
type ChunkMeta struct {
	Title      *InlineNodes
	Attrs      *AttrList
	Admonition AdmonitionKind
	Start      MultiSourceLocation
}

// ID is a convenience accessor over Attrs.
func (m ChunkMeta) ID() (string, bool) {
	if m.Attrs == nil {
		return "", false
	}

	return m.Attrs.ID()
}

// Block is one node of the document's block tree.
type Block struct {
	Meta     ChunkMeta
	Context  BlockContext
	Content  BlockContent
	Location MultiSourceLocation
}

// BlockContentKind enumerates BlockContent variants.
type BlockContentKind uint8

const (
	BlockContentKindSimple BlockContentKind = iota
	BlockContentKindCompound
	BlockContentKindVerbatim
	BlockContentKindRaw
	BlockContentKindEmpty
	BlockContentKindTable
	BlockContentKindList
	BlockContentKindQuotedParagraph
	BlockContentKindDocumentAttribute
	BlockContentKindSection
)

// BlockContent is the sum type of a block's payload.
type BlockContent interface {
	BlockContentKind() BlockContentKind
	blockContentSealed()
}

// SimpleContent is the inline-parsed content of a leaf block (paragraph,
// discrete heading title, description-list item description, ...).
type SimpleContent struct{ Inlines InlineNodes }

func (SimpleContent) BlockContentKind() BlockContentKind { return BlockContentKindSimple }
func (SimpleContent) blockContentSealed()                {}

// CompoundContent is a sequence of child blocks, used by container
// blocks (example, sidebar, quote-as-compound, open).
type CompoundContent struct{ Blocks []*Block }

func (CompoundContent) BlockContentKind() BlockContentKind { return BlockContentKindCompound }
func (CompoundContent) blockContentSealed()                {}

// VerbatimContent is the unsubstituted line content of a listing or
// literal block, one entry per source line with line endings stripped.
type VerbatimContent struct{ Lines []string }

func (VerbatimContent) BlockContentKind() BlockContentKind { return BlockContentKindVerbatim }
func (VerbatimContent) blockContentSealed()                {}

// RawContent is a passthrough block's content, carried verbatim with no
// substitutions applied at all (not even special-chars).
type RawContent struct{ Text string }

func (RawContent) BlockContentKind() BlockContentKind { return BlockContentKindRaw }
func (RawContent) blockContentSealed()                {}

// EmptyContent is a block with no body content beyond its metadata:
// thematic breaks, page breaks, and media blocks (image/audio/video),
// whose target and attributes live entirely in Meta.Attrs.
type EmptyContent struct{ Metadata ChunkMeta }

func (EmptyContent) BlockContentKind() BlockContentKind { return BlockContentKindEmpty }
func (EmptyContent) blockContentSealed()                {}

// ColSpecStyle enumerates a table column's cell-style prefix.
type ColSpecStyle uint8

const (
	ColStyleDefault ColSpecStyle = iota
	ColStyleAsciidoc
	ColStyleLiteral
	ColStyleHeader
	ColStyleMonospace
	ColStyleStrong
	ColStyleEmphasis
	ColStyleVerse
	// ColStyleMarkdown is this repo's own extension (not an AsciiDoctor
	// built-in): a `k`-prefixed cell renders its text through the
	// Markdown bridge instead of the core inline parser.
	ColStyleMarkdown
)

// HAlign / VAlign enumerate a table column's horizontal/vertical
// alignment.
type HAlign uint8

const (
	HAlignLeft HAlign = iota
	HAlignCenter
	HAlignRight
)

type VAlign uint8

const (
	VAlignTop VAlign = iota
	VAlignMiddle
	VAlignBottom
)

// ColSpec is one entry of a table's `cols=` attribute.
type ColSpec struct {
	Width  float64 // proportional unit, or percentage when Percent is true
	Percent bool
	Auto    bool
	HAlign  HAlign
	VAlign  VAlign
	Style   ColSpecStyle
	Repeat  int
}

// TableFormat selects the cell separator convention of a table.
type TableFormat uint8

const (
	TableFormatPSV TableFormat = iota // |=== pipe-separated (default)
	TableFormatCSV                     // ,=== comma-separated
	TableFormatDSV                     // :=== colon-separated
	TableFormatTSV                     // !=== tab-separated, AsciiDoc's "tsv" alias
)

// TableCell is one cell of a table row.
type TableCell struct {
	RowSpan int
	ColSpan int
	Style   ColSpecStyle
	// Content holds the cell's parsed blocks when Style is ColStyleAsciidoc
	// (an `a`-style cell reparses its text as a nested document), or a
	// single SimpleContent block otherwise.
	Content []*Block
	Location MultiSourceLocation
}

// TableRow is a sequence of cells; header/footer classification is
// derived by the table's row index plus its `options=` attribute, not
// stored per row.
type TableRow struct{ Cells []TableCell }

// TableContent is a parsed table block's payload.
type TableContent struct {
	Format   TableFormat
	ColSpecs []ColSpec
	// ColWidths is the final, backend-ready percentage width of each
	// column in ColSpecs, computed by DistributeColWidths: explicit
	// percentage/proportional widths normalise against one another and
	// auto columns split whatever share is left, so ColWidths always
	// sums to 100.0 when ColSpecs is non-empty.
	ColWidths  []float64
	Rows       []TableRow
	HeaderRows int
	HasFooter  bool
}

func (TableContent) BlockContentKind() BlockContentKind { return BlockContentKindTable }
func (TableContent) blockContentSealed()                {}

// ListContent is a parsed list block's payload.
type ListContent struct {
	Variant ListVariant
	Items   []*ListItem
}

func (ListContent) BlockContentKind() BlockContentKind { return BlockContentKindList }
func (ListContent) blockContentSealed()                {}

// QuotedParagraphContent is the `"Quoted text"\n-- Attribution, Cite`
// shorthand form of a quote block.
type QuotedParagraphContent struct {
	Quote InlineNodes
	Attr  InlineNodes
	Cite  *InlineNodes
}

func (QuotedParagraphContent) BlockContentKind() BlockContentKind {
	return BlockContentKindQuotedParagraph
}
func (QuotedParagraphContent) blockContentSealed() {}

// DocumentAttributeContent records a `:name: value` entry that was
// parsed as a standalone block (it also has the side effect of mutating
// the active AttributeTable at parse time).
type DocumentAttributeContent struct {
	Name  string
	Entry AttributeValue
}

func (DocumentAttributeContent) BlockContentKind() BlockContentKind {
	return BlockContentKindDocumentAttribute
}
func (DocumentAttributeContent) blockContentSealed() {}

// SectionContent wraps a nested Section so it can appear as an ordinary
// block in a parent's block list (the uniform representation for
// section nesting described in the design notes).
type SectionContent struct{ Section *Section }

func (SectionContent) BlockContentKind() BlockContentKind { return BlockContentKindSection }
func (SectionContent) blockContentSealed()                {}
