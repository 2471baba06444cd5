package asciidoc

// Settings configures one call to Parse: job-level attributes, the
// collaborators the core needs for I/O (include resolution), and the
// strictness/safe-mode policy.
type Settings struct {
	JobAttributes map[string]string
	Resolver      IncludeResolver
	SafeMode      SafeMode
	Strict        bool
	Doctype       Doctype
	// PrimaryName is used as the synthetic source file's name when the
	// caller has no real filename (e.g. stdin input); it seeds the
	// docfile/docname builtin attributes.
	PrimaryName string
}

// NewSettings returns defaults: no job attributes, a resolver that
// rejects every include, safe-mode Safe, non-strict, article doctype.
func NewSettings() Settings {
	return Settings{
		Resolver: NoopIncludeResolver{},
		SafeMode: SafeModeSafe,
		Doctype:  DoctypeArticle,
	}
}

// ParseResult is what Parse returns: a Document plus whatever
// diagnostics accumulated during parsing. Err is set only when Strict is
// true and an error-severity diagnostic was raised; in that case
// Document may be partially built and should not be relied upon.
type ParseResult struct {
	Document *Document
	Warnings []Diagnostic
	Err      error
}

// Parse parses source into a Document. It is a pure function of its
// inputs plus whatever I/O settings.Resolver performs; it holds no
// package-level state and is safe to call concurrently from multiple
// goroutines as long as each call is given its own Settings.Resolver
// instance (or a resolver implementation that is itself concurrency
// safe).
func Parse(source []byte, settings Settings) ParseResult {
	p := newParser(source, settings)

	return p.parse()
}

// Parser drives one pipeline run: it owns the source set, the attribute
// table, the diagnostic sink, and the preprocessor-backed line source
// the block parser consumes from.
type Parser struct {
	sources  *SourceSet
	attrs    *AttributeTable
	diag     *diagnosticSink
	pre      *preprocessor
	settings Settings
	doc      *Document
}

func newParser(source []byte, settings Settings) *Parser {
	sources := NewSourceSet()
	name := settings.PrimaryName
	if name == "" {
		name = "<stdin>"
	}
	primaryIdx, _ := sources.Add(SourceStdin, name, source, 0)

	attrs := NewAttributeTable(settings.JobAttributes)
	attrs.SetBuiltin("docfile", name)
	attrs.SetBuiltin("docname", stripExtension(name))
	attrs.SetBuiltin("doctype", settings.Doctype.String())
	if _, ok := attrs.Get("attribute-missing"); !ok {
		attrs.SetBuiltin("attribute-missing", "skip")
	}

	diag := newDiagnosticSink(settings.Strict)
	resolver := settings.Resolver
	if resolver == nil {
		resolver = NoopIncludeResolver{}
	}
	pre := newPreprocessor(sources, primaryIdx, attrs, diag, resolver, settings.SafeMode)

	return &Parser{
		sources:  sources,
		attrs:    attrs,
		diag:     diag,
		pre:      pre,
		settings: settings,
	}
}

func stripExtension(name string) string {
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '.' {
			return name[:i]
		}
		if name[i] == '/' {
			break
		}
	}

	return name
}

// parse drives the full pipeline: header, body, post-parse diagnostics.
func (p *Parser) parse() ParseResult {
	doctype := p.settings.Doctype

	cl := newContiguousLines(p.pre)
	bp := newBlockParser(p, doctype)

	header := bp.parseHeader(cl)

	var content DocContent
	switch doctype {
	case DoctypeBook:
		content = bp.parseBookBody(cl)
	default:
		content = bp.parseArticleBody(cl)
	}

	doc := &Document{
		Meta:            DocumentMeta{Doctype: doctype, Attributes: p.attrs},
		Title:           header.title,
		Subtitle:        header.subtitle,
		HeaderAuthors:   header.authors,
		Revision:        header.revision,
		Content:         content,
		Anchors:         bp.anchors,
		SourceFilenames: p.sources.Names(),
	}
	if toc, ok := p.attrs.Get("toc"); ok {
		doc.TOC = &TOC{Placement: tocPlacementFromString(toc)}
	}

	bp.runPostParseDiagnostics(doc)

	p.doc = doc

	if p.diag.Fatal() {
		return ParseResult{Document: doc, Warnings: p.diag.diagnostics, Err: p.diag.fatal}
	}

	return ParseResult{Document: doc, Warnings: p.diag.diagnostics}
}

func tocPlacementFromString(s string) TOCPlacement {
	switch s {
	case "left":
		return TOCLeft
	case "right":
		return TOCRight
	case "macro":
		return TOCMacro
	case "preamble":
		return TOCPreamble
	default:
		return TOCAuto
	}
}
