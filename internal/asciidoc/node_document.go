package asciidoc

import "sync"

// Author is one entry of the document header's author line
// (`First [Middle] Last [<email>]; ...`).
type Author struct {
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
}

// FullName joins the name parts AsciiDoc renders by default.
func (a Author) FullName() string {
	out := a.FirstName
	if a.MiddleName != "" {
		out += " " + a.MiddleName
	}
	if a.LastName != "" {
		out += " " + a.LastName
	}

	return out
}

// Revision is the document header's optional revision line
// (`vX.Y, date: remark`); any part may be absent.
type Revision struct {
	Number  string
	Date    string
	Remark  string
}

// TOCPlacement mirrors the `toc` attribute's accepted values.
type TOCPlacement uint8

const (
	TOCAuto TOCPlacement = iota
	TOCLeft
	TOCRight
	TOCMacro
	TOCPreamble
)

// TOC carries the resolved table-of-contents placement; its actual entry
// list is derived from Document.Content by a backend, not stored here.
type TOC struct {
	Placement TOCPlacement
}

// DocumentMeta holds document-wide metadata not part of the content
// tree: the doctype that governed parsing and the final attribute
// snapshot (job, header and body layers merged).
type DocumentMeta struct {
	Doctype    Doctype
	Attributes *AttributeTable
}

// Doctype selects the section/structural rules in force for a parse.
type Doctype uint8

const (
	DoctypeArticle Doctype = iota
	DoctypeBook
	DoctypeManpage
	DoctypeInline
)

func ParseDoctype(s string) (Doctype, bool) {
	switch s {
	case "article":
		return DoctypeArticle, true
	case "book":
		return DoctypeBook, true
	case "manpage":
		return DoctypeManpage, true
	case "inline":
		return DoctypeInline, true
	default:
		return DoctypeArticle, false
	}
}

func (d Doctype) String() string {
	switch d {
	case DoctypeBook:
		return "book"
	case DoctypeManpage:
		return "manpage"
	case DoctypeInline:
		return "inline"
	default:
		return "article"
	}
}

// DocContentKind enumerates DocContent variants.
type DocContentKind uint8

const (
	DocContentKindBlocks DocContentKind = iota
	DocContentKindSectioned
	DocContentKindParts
)

// DocContent is the sum type of a document's top-level body shape.
type DocContent interface {
	DocContentKind() DocContentKind
	docContentSealed()
}

// BlocksContent is a document with no sections at all: a flat block
// list.
type BlocksContent struct{ Blocks []*Block }

func (BlocksContent) DocContentKind() DocContentKind { return DocContentKindBlocks }
func (BlocksContent) docContentSealed()               {}

// SectionedContent is the article-doctype shape: an optional preamble
// followed by top-level sections.
type SectionedContent struct {
	Preamble []*Block
	Sections []*Section
}

func (SectionedContent) DocContentKind() DocContentKind { return DocContentKindSectioned }
func (SectionedContent) docContentSealed()               {}

// PartsContent is the book-doctype shape: an optional preamble, a run of
// special sections that may precede the parts (abstract, dedication,
// ...), the parts themselves, and a closing run of special sections
// (appendix, glossary, bibliography, index, colophon).
type PartsContent struct {
	Preamble            []*Block
	OpeningSpecialSects  []*Section
	Parts                []*Section
	ClosingSpecialSects []*Section
}

func (PartsContent) DocContentKind() DocContentKind { return DocContentKindParts }
func (PartsContent) docContentSealed()               {}

// SpecialSectionKind enumerates book doctype's closed set of special
// sections, recognised by the first positional attribute on the
// section's ChunkMeta.
type SpecialSectionKind uint8

const (
	SpecialSectionNone SpecialSectionKind = iota
	SpecialSectionAbstract
	SpecialSectionColophon
	SpecialSectionDedication
	SpecialSectionAcknowledgments
	SpecialSectionPreface
	SpecialSectionPartIntro
	SpecialSectionAppendix
	SpecialSectionGlossary
	SpecialSectionBibliography
	SpecialSectionIndex
)

func specialSectionFromStyle(style string) SpecialSectionKind {
	switch style {
	case "abstract":
		return SpecialSectionAbstract
	case "colophon":
		return SpecialSectionColophon
	case "dedication":
		return SpecialSectionDedication
	case "acknowledgments":
		return SpecialSectionAcknowledgments
	case "preface":
		return SpecialSectionPreface
	case "partintro":
		return SpecialSectionPartIntro
	case "appendix":
		return SpecialSectionAppendix
	case "glossary":
		return SpecialSectionGlossary
	case "bibliography":
		return SpecialSectionBibliography
	case "index":
		return SpecialSectionIndex
	default:
		return SpecialSectionNone
	}
}

// Section is a heading and the blocks nested beneath it, down to (but
// not including) the next same-or-lower-level heading.
type Section struct {
	Meta           ChunkMeta
	Level          int
	ID             *string
	HeadingInlines InlineNodes
	Blocks         []*Block
	Reftext        *InlineNodes
	Special        SpecialSectionKind
}

// Anchor is a cross-reference target: either a heading/block id declared
// implicitly, or an explicit `[[id]]`/`[[[biblio-id]]]` anchor.
type Anchor struct {
	Reftext   *InlineNodes
	Title     InlineNodes
	SourceLoc *MultiSourceLocation
	SourceIdx int
	IsBiblio  bool
}

// AnchorTable is the document's single shared mutable structure (see the
// design notes on shared-resource policy): both the block parser and the
// inline parser insert into it, and post-parse diagnostics read it to
// validate xrefs. It is safe for concurrent use because a Document's
// anchor table, while never accessed from more than one goroutine during
// a single parse, may be read afterward from a caller's own goroutines.
type AnchorTable struct {
	mu    sync.Mutex
	byID  map[string]Anchor
	order []string
}

func newAnchorTable() *AnchorTable {
	return &AnchorTable{byID: make(map[string]Anchor)}
}

// Insert registers id with anchor, reporting false (first wins, per the
// duplicate-anchor invariant) if id is already present.
func (t *AnchorTable) Insert(id string, anchor Anchor) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byID[id]; exists {
		return false
	}
	t.byID[id] = anchor
	t.order = append(t.order, id)

	return true
}

// Lookup returns the anchor registered under id.
func (t *AnchorTable) Lookup(id string) (Anchor, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.byID[id]

	return a, ok
}

// IDs returns every registered anchor id in insertion order.
func (t *AnchorTable) IDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.order))
	copy(out, t.order)

	return out
}

// Document is the root of the parsed tree.
type Document struct {
	Meta            DocumentMeta
	Title           *InlineNodes
	Subtitle        *InlineNodes
	HeaderAuthors   []Author
	Revision        *Revision
	Content         DocContent
	TOC             *TOC
	Anchors         *AnchorTable
	SourceFilenames []string
}
