package asciidoc

// runPostParseDiagnostics cross-checks the fully-built tree against
// information that was only complete once parsing finished: every xref
// macro's target id must resolve against the final anchor table.
func (bp *blockParser) runPostParseDiagnostics(doc *Document) {
	xrefs := MacrosOfKind(doc, MacroKindXref)
	for _, m := range xrefs {
		xref, ok := m.(XrefMacro)
		if !ok || xref.ID == "" {
			continue
		}
		if _, found := bp.anchors.Lookup(xref.ID); !found {
			bp.diag.warn(MultiSourceLocation{}, "unresolved xref to id %q", xref.ID)
		}
	}
}
