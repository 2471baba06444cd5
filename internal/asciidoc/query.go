package asciidoc

// collectingVisitor accumulates every Block and Inline a predicate
// accepts while walking a Document; FindBlocks, FindInlines and
// CountBlocks are built on it.
type collectingVisitor struct {
	BaseVisitor
	blockPred  func(*Block) bool
	inlinePred func(InlineNode) bool
	blocks     []*Block
	inlines    []InlineNode
}

func (c *collectingVisitor) VisitBlock(b *Block) error {
	if c.blockPred != nil && c.blockPred(b) {
		c.blocks = append(c.blocks, b)
	}

	return nil
}

func (c *collectingVisitor) VisitInline(n InlineNode) error {
	if c.inlinePred != nil && c.inlinePred(n) {
		c.inlines = append(c.inlines, n)
	}

	return nil
}

// FindBlocks returns every Block in doc satisfying pred, in document
// order.
func FindBlocks(doc *Document, pred func(*Block) bool) []*Block {
	v := &collectingVisitor{blockPred: pred}
	_ = Walk(doc, v)

	return v.blocks
}

// FindInlines returns every InlineNode in doc satisfying pred, in
// document order.
func FindInlines(doc *Document, pred func(InlineNode) bool) []InlineNode {
	v := &collectingVisitor{inlinePred: pred}
	_ = Walk(doc, v)

	return v.inlines
}

// CountBlocks returns the number of blocks in doc satisfying pred.
func CountBlocks(doc *Document, pred func(*Block) bool) int {
	return len(FindBlocks(doc, pred))
}

// BlocksWithContext returns every block whose Context equals ctx.
func BlocksWithContext(doc *Document, ctx BlockContext) []*Block {
	return FindBlocks(doc, func(b *Block) bool { return b.Context == ctx })
}

// IsBlockKind reports whether b's Content holds a value of BlockContentKind k.
func IsBlockKind(b *Block, k BlockContentKind) bool {
	return b != nil && b.Content != nil && b.Content.BlockContentKind() == k
}

// IsInlineKind reports whether n's Content holds a value of InlineKind k.
func IsInlineKind(n InlineNode, k InlineKind) bool {
	return n.Content != nil && n.Content.InlineKind() == k
}

// MacrosOfKind returns every macro inline of the given MacroKind.
func MacrosOfKind(doc *Document, k MacroKind) []MacroNode {
	var out []MacroNode
	matches := FindInlines(doc, func(n InlineNode) bool {
		mi, ok := n.Content.(MacroInline)

		return ok && mi.Macro.MacroKind() == k
	})
	for _, n := range matches {
		out = append(out, n.Content.(MacroInline).Macro)
	}

	return out
}
