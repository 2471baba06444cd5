// Package asciidoc parses AsciiDoc source text into a structured document
// tree.
//
// The pipeline runs leaf to root: bytes are scanned into tokens, tokens are
// grouped into lines and contiguous-line runs, a preprocessor resolves
// includes, conditionals and attribute references over that line stream,
// a recursive-descent block parser builds the document/section/block tree,
// and an inline parser resolves each leaf block's text into a tree of
// formatting, macro and replacement nodes.
//
// # Usage
//
// Parse a document once and walk the resulting tree:
//
//	result := asciidoc.Parse(source, asciidoc.NewSettings())
//	if result.Err != nil {
//	    // result.Err is set only in strict mode
//	}
//	for _, w := range result.Warnings {
//	    // non-strict diagnostics
//	}
//	doc := result.Document
//
// # Design principles
//
//   - The core is a pure function of its inputs plus resolver I/O: no
//     package-level mutable state survives between calls to Parse.
//   - Every tree node carries a location that can be traced back to source
//     bytes, even across includes and attribute-reference substitution.
//   - Backends are callers, not dependencies: this package never produces
//     HTML or any other markup, only the resolved tree.
package asciidoc
