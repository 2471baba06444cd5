package asciidoc

import "testing"

// TestAnchorUniqueness_DuplicateIDWarns covers the anchor-uniqueness
// property: registering the same explicit anchor id twice must not
// silently win for the second occurrence, it must raise a diagnostic.
func TestAnchorUniqueness_DuplicateIDWarns(t *testing.T) {
	src := "[[intro]]\nFirst paragraph.\n\n[[intro]]\nSecond paragraph.\n"
	result := Parse([]byte(src), NewSettings())

	found := false
	for _, w := range result.Warnings {
		if w.Message == `duplicate anchor id "intro"` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a duplicate-anchor-id warning, got %v", result.Warnings)
	}
}

// TestXrefResolution_UnresolvedWarns covers the xref-resolution
// property: a cross-reference to an id that was never anchored must be
// flagged once the full document (and its anchor table) is known.
func TestXrefResolution_UnresolvedWarns(t *testing.T) {
	src := "See <<does-not-exist>> for details.\n"
	result := Parse([]byte(src), NewSettings())

	found := false
	for _, w := range result.Warnings {
		if w.Message == `unresolved xref to id "does-not-exist"` {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an unresolved-xref warning, got %v", result.Warnings)
	}
}

// TestXrefResolution_ResolvedRaisesNoWarning is the positive half of
// the same property: an anchor declared anywhere in the document
// (order does not matter, since resolution runs after the full tree is
// built) must not be reported as unresolved.
func TestXrefResolution_ResolvedRaisesNoWarning(t *testing.T) {
	src := "See <<intro>> for details.\n\n[[intro]]\nIntroduction paragraph.\n"
	result := Parse([]byte(src), NewSettings())

	for _, w := range result.Warnings {
		if w.Message == `unresolved xref to id "intro"` {
			t.Fatalf("did not expect an unresolved-xref warning for a declared anchor, got %v", result.Warnings)
		}
	}
}

// TestColSpecs_ProportionalWidthsNormalizeTo100 covers the
// column-width-sum-to-100 property: whatever proportional units a
// `cols=` attribute declares, they represent shares of a 100% row
// width once normalized, regardless of what the raw units summed to.
func TestColSpecs_ProportionalWidthsNormalizeTo100(t *testing.T) {
	src := "[cols=\"1,1,2\"]\n|===\n|A |B |C\n|1 |2 |3\n|===\n"
	result := Parse([]byte(src), NewSettings())

	tables := BlocksWithContext(result.Document, BlockContextTable)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	content := tables[0].Content.(TableContent)
	if len(content.ColSpecs) != 3 {
		t.Fatalf("expected 3 colspecs, got %d", len(content.ColSpecs))
	}

	var total float64
	for _, cs := range content.ColSpecs {
		if cs.Percent || cs.Auto {
			t.Fatalf("expected proportional (non-percent, non-auto) widths, got %+v", cs)
		}
		total += cs.Width
	}
	if total == 0 {
		t.Fatal("expected a nonzero total proportional width")
	}

	var normalizedSum float64
	for _, cs := range content.ColSpecs {
		normalizedSum += cs.Width / total * 100
	}
	if diff := normalizedSum - 100; diff > 0.001 || diff < -0.001 {
		t.Fatalf("expected normalized widths to sum to 100, got %f", normalizedSum)
	}
}

// TestDistributeColWidths_AutoColumnsShareRemainder covers the
// ColWidths.distribute rule: explicit widths keep their raw share when
// they don't already reach 100, and auto columns split whatever
// remains evenly between them.
func TestDistributeColWidths_AutoColumnsShareRemainder(t *testing.T) {
	specs := []ColSpec{
		{Width: 25, Percent: true},
		{Auto: true},
		{Auto: true},
	}
	widths := DistributeColWidths(specs)
	if len(widths) != 3 {
		t.Fatalf("expected 3 widths, got %d", len(widths))
	}
	if widths[0] != 25 {
		t.Fatalf("expected sized column to keep its raw percentage, got %f", widths[0])
	}
	if widths[1] != 37.5 || widths[2] != 37.5 {
		t.Fatalf("expected auto columns to split the 75%% remainder evenly, got %f and %f", widths[1], widths[2])
	}

	var sum float64
	for _, w := range widths {
		sum += w
	}
	if diff := sum - 100; diff > 0.001 || diff < -0.001 {
		t.Fatalf("expected widths to sum to 100, got %f", sum)
	}
}

// TestDistributeColWidths_OverfullSizedColumnsCollapseAutoToZero
// covers the other half of the rule: once specified widths already sum
// to 100 or more, any auto column gets nothing and the sized columns
// are rescaled down to fit.
func TestDistributeColWidths_OverfullSizedColumnsCollapseAutoToZero(t *testing.T) {
	specs := []ColSpec{
		{Width: 60, Percent: true},
		{Width: 60, Percent: true},
		{Auto: true},
	}
	widths := DistributeColWidths(specs)
	if widths[2] != 0 {
		t.Fatalf("expected auto column to collapse to zero, got %f", widths[2])
	}
	if widths[0] != widths[1] {
		t.Fatalf("expected the two equally-sized columns to stay equal after rescaling, got %f and %f", widths[0], widths[1])
	}

	var sum float64
	for _, w := range widths {
		sum += w
	}
	if diff := sum - 100; diff > 0.001 || diff < -0.001 {
		t.Fatalf("expected widths to sum to 100, got %f", sum)
	}
}

// TestTableCell_MarkdownStyleBridgesToMdbridge exercises the
// ColStyleMarkdown extension end to end: a `k`-prefixed cell's text is
// rendered through internal/mdbridge before the normal inline pass,
// so Markdown emphasis markers are gone from the resulting text.
func TestTableCell_MarkdownStyleBridgesToMdbridge(t *testing.T) {
	src := "|===\nk|**bold** and plain\n|===\n"
	result := Parse([]byte(src), NewSettings())

	tables := BlocksWithContext(result.Document, BlockContextTable)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	content := tables[0].Content.(TableContent)
	if len(content.Rows) != 1 || len(content.Rows[0].Cells) != 1 {
		t.Fatalf("expected 1 row with 1 cell, got rows=%d", len(content.Rows))
	}

	cell := content.Rows[0].Cells[0]
	if cell.Style != ColStyleMarkdown {
		t.Fatalf("expected ColStyleMarkdown, got %v", cell.Style)
	}

	text := plainTextOf(t, cell.Content[0])
	if text != "bold and plain" {
		t.Fatalf("expected markdown emphasis markers stripped, got %q", text)
	}
}

// TestSubstitutionOrder_AttributeBeforeReplacements covers the
// substitution-order-equivalence property: the fixed pipeline order
// (special-chars, attrs, quotes, replacements, macros, then
// post-replacements) runs attribute substitution before the
// replacements pass, so a `--` produced by expanding an attribute
// reference is itself still eligible for em-dash promotion, exactly as
// if it had been typed literally in that position.
func TestSubstitutionOrder_AttributeBeforeReplacements(t *testing.T) {
	src := ":sep: --\n\nleft{sep}right\n"
	result := Parse([]byte(src), NewSettings())

	paras := BlocksWithContext(result.Document, BlockContextParagraph)
	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}

	simple := paras[0].Content.(SimpleContent)

	foundEmDash := false
	for _, n := range simple.Inlines {
		if sym, ok := n.Content.(SymbolInline); ok && sym.Kind == SymbolEmDash {
			foundEmDash = true
		}
	}
	if !foundEmDash {
		t.Fatalf("expected the attribute-substituted \"--\" to be promoted to an em dash, got %+v", simple.Inlines)
	}
}

// TestSubs_AttributeDeltaDisablesReplacementsQuotesMacros covers the
// round-trip property: a paragraph marked
// `[subs=-replacements,-quotes,-macros]` must come back out with its
// literal source characters untouched by formatting, replacement, or
// macro expansion, even though those groups are all active by default.
func TestSubs_AttributeDeltaDisablesReplacementsQuotesMacros(t *testing.T) {
	src := "[subs=\"-replacements,-quotes,-macros\"]\n*bold* (C) kbd:[Ctrl]\n"
	result := Parse([]byte(src), NewSettings())

	paras := BlocksWithContext(result.Document, BlockContextParagraph)
	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}

	text := plainTextOf(t, paras[0])
	want := "*bold* (C) kbd:[Ctrl]"
	if text != want {
		t.Fatalf("expected literal source text %q with subs disabled, got %q", want, text)
	}
}
