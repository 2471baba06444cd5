// Package mdbridge renders embedded Markdown content down to a plain-text
// approximation so it can be fed through the AsciiDoc inline parser like
// any other cell or passthrough text, without turning the core into a
// second markup renderer.
package mdbridge

import (
	"bytes"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// ToPlainText walks src's Markdown AST and concatenates the literal text
// of every leaf node, dropping formatting markers (emphasis, headings,
// list bullets) but keeping paragraph and line breaks as newlines.
func ToPlainText(src []byte) string {
	md := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions))
	doc := md.Parse(src)

	var buf bytes.Buffer
	doc.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Text, blackfriday.Code, blackfriday.CodeBlock:
			buf.Write(node.Literal)
		case blackfriday.Paragraph, blackfriday.Heading, blackfriday.Item:
			if !entering {
				buf.WriteByte('\n')
			}
		case blackfriday.Hardbreak, blackfriday.Softbreak:
			buf.WriteByte('\n')
		}

		return blackfriday.GoToNext
	})

	return strings.TrimRight(buf.String(), "\n")
}
