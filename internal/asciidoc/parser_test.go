package asciidoc

import "testing"

// TestParse_ThematicBreak covers spec scenario 1: a line of three
// single quotes on its own produces a single thematic-break block, not
// a paragraph.
func TestParse_ThematicBreak(t *testing.T) {
	src := "Some text.\n\n'''\n\nMore text.\n"
	result := Parse([]byte(src), NewSettings())

	breaks := BlocksWithContext(result.Document, BlockContextThematicBreak)
	if len(breaks) != 1 {
		t.Fatalf("expected 1 thematic break, got %d", len(breaks))
	}

	paras := BlocksWithContext(result.Document, BlockContextParagraph)
	if len(paras) != 2 {
		t.Fatalf("expected 2 paragraphs around the break, got %d", len(paras))
	}
}

// TestParse_DescriptionList covers spec scenario 2: lines opening with
// a "::" marker produce a list block whose variant is Description, not
// Unordered, and whose items keep the "::"-family grouped together
// rather than splitting into separate lists.
func TestParse_DescriptionList(t *testing.T) {
	src := ":: The brain of the computer.\n:: Volatile working memory.\n"
	result := Parse([]byte(src), NewSettings())

	lists := FindBlocks(result.Document, func(b *Block) bool {
		return IsBlockKind(b, BlockContentKindList)
	})
	if len(lists) != 1 {
		t.Fatalf("expected 1 list block, got %d", len(lists))
	}

	content := lists[0].Content.(ListContent)
	if content.Variant != ListVariantDescription {
		t.Fatalf("expected ListVariantDescription, got %v", content.Variant)
	}
	if len(content.Items) != 2 {
		t.Fatalf("expected 2 description-list items, got %d", len(content.Items))
	}
}

// TestParse_AttributeOverlaySubstitution covers spec scenario 3: a
// `{name}` reference in body text is replaced by the attribute's
// current value, and the substituted text still carries a resolvable
// location (the attribute layer overlays rather than discards the
// original source span).
func TestParse_AttributeOverlaySubstitution(t *testing.T) {
	src := ":product-name: Asciidork\n\nWelcome to {product-name}.\n"
	result := Parse([]byte(src), NewSettings())

	paras := BlocksWithContext(result.Document, BlockContextParagraph)
	if len(paras) != 1 {
		t.Fatalf("expected 1 paragraph, got %d", len(paras))
	}

	text := plainTextOf(t, paras[0])
	if text != "Welcome to Asciidork." {
		t.Fatalf("expected substituted text, got %q", text)
	}
}

// TestParse_SectionedDocument covers spec scenario 4: level-1 headings
// split the body into sections whose nesting follows heading level,
// and the top-level Content is SectionedContent for article doctype.
func TestParse_SectionedDocument(t *testing.T) {
	src := "= Doc Title\n\n== First\n\nBody one.\n\n== Second\n\nBody two.\n"
	result := Parse([]byte(src), NewSettings())

	sectioned, ok := result.Document.Content.(SectionedContent)
	if !ok {
		t.Fatalf("expected SectionedContent, got %T", result.Document.Content)
	}
	if len(sectioned.Sections) != 2 {
		t.Fatalf("expected 2 top-level sections, got %d", len(sectioned.Sections))
	}
	if sectioned.Sections[0].Level != 1 {
		t.Fatalf("expected level 1 for a level-2 '==' heading, got %d", sectioned.Sections[0].Level)
	}
}

// TestParse_CalloutListAutoIncrement covers the attr/ supplemented
// feature: a run of callout markers stays one list (same family
// despite differing explicit numbers), and an unnumbered `<.>` marker
// picks up the next sequential number after its predecessor.
func TestParse_CalloutListAutoIncrement(t *testing.T) {
	src := "<1> First step.\n<.> Second step.\n<3> Third step.\n<.> Fourth step.\n"
	result := Parse([]byte(src), NewSettings())

	lists := FindBlocks(result.Document, func(b *Block) bool {
		return IsBlockKind(b, BlockContentKindList)
	})
	if len(lists) != 1 {
		t.Fatalf("expected 1 callout list, got %d", len(lists))
	}

	content := lists[0].Content.(ListContent)
	if content.Variant != ListVariantCallout {
		t.Fatalf("expected ListVariantCallout, got %v", content.Variant)
	}
	if len(content.Items) != 4 {
		t.Fatalf("expected 4 callout items, got %d", len(content.Items))
	}

	want := []int{1, 2, 3, 4}
	for i, item := range content.Items {
		if item.Marker.N != want[i] {
			t.Fatalf("item %d: expected callout number %d, got %d", i, want[i], item.Marker.N)
		}
	}
}

// TestParse_QuotedParagraph covers spec scenario 5: a paragraph opening
// and closing with a double quote, followed by an attribution line, is
// parsed as QuotedParagraphContent rather than a plain paragraph.
func TestParse_QuotedParagraph(t *testing.T) {
	src := "\"Simplicity is the ultimate sophistication.\"\n-- Leonardo da Vinci\n"
	result := Parse([]byte(src), NewSettings())

	quoted := FindBlocks(result.Document, func(b *Block) bool {
		return IsBlockKind(b, BlockContentKindQuotedParagraph)
	})
	if len(quoted) != 1 {
		t.Fatalf("expected 1 quoted paragraph, got %d", len(quoted))
	}

	content := quoted[0].Content.(QuotedParagraphContent)
	attr := plainTextOfNodes(content.Attr)
	if attr != "Leonardo da Vinci" {
		t.Fatalf("expected attribution %q, got %q", "Leonardo da Vinci", attr)
	}
}

// TestParse_IncludeCycle covers spec scenario 6: an include that
// (directly or transitively) targets its own ancestor is rejected with
// a diagnostic rather than recursing forever; the cycle leaves no
// visible block behind (a known, documented simplification of the
// replacement-block behavior).
func TestParse_IncludeCycle(t *testing.T) {
	res := &cyclicResolver{
		files: map[string]string{
			"a.adoc": "include::b.adoc[]\n",
			"b.adoc": "include::a.adoc[]\n",
		},
	}

	settings := NewSettings()
	settings.Resolver = res
	settings.PrimaryName = "a.adoc"

	src := res.files["a.adoc"]
	result := Parse([]byte(src), settings)

	foundCycleWarning := false
	for _, w := range result.Warnings {
		if w.Severity == SeverityWarning || w.Severity == SeverityError {
			foundCycleWarning = true
		}
	}
	if !foundCycleWarning {
		t.Fatalf("expected at least one diagnostic for the include cycle, got none (warnings=%v)", result.Warnings)
	}
}

// cyclicResolver is a minimal IncludeResolver over an in-memory file
// map, used only to exercise the preprocessor's cycle-detection branch
// without depending on internal/resolver's filesystem plumbing.
type cyclicResolver struct {
	files map[string]string
}

func (r *cyclicResolver) Resolve(target ResolveTarget, _ IncludeContext) ([]byte, error) {
	content, ok := r.files[target.Value]
	if !ok {
		return nil, &ResolveError{Kind: ResolveErrNotFound}
	}

	return []byte(content), nil
}

func (r *cyclicResolver) BaseDir() (string, bool) { return "", false }

func plainTextOf(t *testing.T, b *Block) string {
	t.Helper()
	simple, ok := b.Content.(SimpleContent)
	if !ok {
		t.Fatalf("expected SimpleContent, got %T", b.Content)
	}

	return plainTextOfNodes(simple.Inlines)
}

func plainTextOfNodes(nodes InlineNodes) string {
	var out string
	for _, n := range nodes {
		if text, ok := n.Content.(TextInline); ok {
			out += text.Text
		}
	}

	return out
}
