package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/connerohnesorge/asciidork/internal/asciidoc"
	"github.com/connerohnesorge/asciidork/internal/jobconfig"
	"github.com/connerohnesorge/asciidork/internal/resolver"
	"github.com/connerohnesorge/asciidork/internal/theme"
)

// InspectCmd parses a document and opens an interactive tree browser
// over its Sections/Blocks, the way a debugger would let you step
// through a parsed AST.
type InspectCmd struct {
	File string `arg:"" help:"AsciiDoc file to inspect" type:"existingfile"`
}

func (cmd *InspectCmd) Run(cli *CLI) error {
	src, err := os.ReadFile(cmd.File)
	if err != nil {
		return err
	}

	cfg, err := jobconfig.Load()
	if err != nil {
		return err
	}

	doctype, _ := asciidoc.ParseDoctype(cli.Doctype)
	safeMode, _ := asciidoc.ParseSafeMode(cli.SafeMode)

	res := resolver.NewFileResolver(fileDir(cmd.File))
	settings := asciidoc.NewSettings()
	settings.Resolver = res
	settings.Doctype = doctype
	settings.SafeMode = safeMode
	settings.JobAttributes = cfg.Attributes
	settings.PrimaryName = cmd.File

	result := asciidoc.Parse(src, settings)

	th, err := theme.Get(cli.Theme)
	if err != nil {
		return err
	}
	nodes := buildTree(result.Document)

	p := tea.NewProgram(newInspectModel(nodes, th))
	_, err = p.Run()

	return err
}

// treeNode is one flattened row of the document tree: a label, its
// depth for indentation, and the source span it was parsed from. The
// `y` key copies the label, not this span.
type treeNode struct {
	label string
	depth int
	loc   asciidoc.MultiSourceLocation
}

func buildTree(doc *asciidoc.Document) []treeNode {
	var nodes []treeNode
	if doc == nil {
		return nodes
	}

	switch c := doc.Content.(type) {
	case asciidoc.BlocksContent:
		appendBlocks(&nodes, c.Blocks, 0)
	case asciidoc.SectionedContent:
		appendBlocks(&nodes, c.Preamble, 0)
		for _, s := range c.Sections {
			appendSection(&nodes, s, 0)
		}
	case asciidoc.PartsContent:
		appendBlocks(&nodes, c.Preamble, 0)
		for _, group := range [][]*asciidoc.Section{c.OpeningSpecialSects, c.Parts, c.ClosingSpecialSects} {
			for _, s := range group {
				appendSection(&nodes, s, 0)
			}
		}
	}

	return nodes
}

func appendSection(nodes *[]treeNode, s *asciidoc.Section, depth int) {
	if s == nil {
		return
	}
	title := "untitled"
	if len(s.HeadingInlines) > 0 {
		title = strings.TrimSpace(plainText(s.HeadingInlines))
	}
	*nodes = append(*nodes, treeNode{
		label: fmt.Sprintf("section[%d] %s", s.Level, title),
		depth: depth,
	})
	appendBlocks(nodes, s.Blocks, depth+1)
}

func appendBlocks(nodes *[]treeNode, blocks []*asciidoc.Block, depth int) {
	for _, b := range blocks {
		appendBlock(nodes, b, depth)
	}
}

func appendBlock(nodes *[]treeNode, b *asciidoc.Block, depth int) {
	if b == nil {
		return
	}
	*nodes = append(*nodes, treeNode{
		label: blockContextLabel(b.Context),
		depth: depth,
		loc:   b.Location,
	})

	switch c := b.Content.(type) {
	case asciidoc.CompoundContent:
		appendBlocks(nodes, c.Blocks, depth+1)
	case asciidoc.ListContent:
		for _, item := range c.Items {
			*nodes = append(*nodes, treeNode{label: "list-item", depth: depth + 1})
			appendBlocks(nodes, item.Blocks, depth+2)
		}
	case asciidoc.TableContent:
		for i, row := range c.Rows {
			*nodes = append(*nodes, treeNode{label: fmt.Sprintf("row[%d]", i), depth: depth + 1})
			for _, cell := range row.Cells {
				appendBlocks(nodes, cell.Content, depth+2)
			}
		}
	case asciidoc.SectionContent:
		appendSection(nodes, c.Section, depth+1)
	}
}

func blockContextLabel(bc asciidoc.BlockContext) string {
	switch bc {
	case asciidoc.BlockContextParagraph:
		return "paragraph"
	case asciidoc.BlockContextListing:
		return "listing"
	case asciidoc.BlockContextLiteral:
		return "literal"
	case asciidoc.BlockContextExample:
		return "example"
	case asciidoc.BlockContextSidebar:
		return "sidebar"
	case asciidoc.BlockContextOpen:
		return "open"
	case asciidoc.BlockContextPassthrough:
		return "passthrough"
	case asciidoc.BlockContextQuote:
		return "quote"
	case asciidoc.BlockContextVerse:
		return "verse"
	case asciidoc.BlockContextImage:
		return "image"
	case asciidoc.BlockContextAudio:
		return "audio"
	case asciidoc.BlockContextVideo:
		return "video"
	case asciidoc.BlockContextTable:
		return "table"
	case asciidoc.BlockContextOrderedList:
		return "ordered-list"
	case asciidoc.BlockContextUnorderedList:
		return "unordered-list"
	case asciidoc.BlockContextCalloutList:
		return "callout-list"
	case asciidoc.BlockContextDescriptionList:
		return "description-list"
	case asciidoc.BlockContextPageBreak:
		return "page-break"
	case asciidoc.BlockContextThematicBreak:
		return "thematic-break"
	case asciidoc.BlockContextDiscreteHeading:
		return "discrete-heading"
	case asciidoc.BlockContextComment:
		return "comment"
	case asciidoc.BlockContextDocumentAttributeDecl:
		return "attribute-decl"
	case asciidoc.BlockContextQuotedParagraph:
		return "quoted-paragraph"
	case asciidoc.BlockContextTableOfContents:
		return "toc"
	default:
		return "block"
	}
}

// plainText renders nodes down to their literal text, dropping
// formatting markers, for use as a tree-browser label; it is not a
// general-purpose renderer and does not attempt substitution.
func plainText(nodes asciidoc.InlineNodes) string {
	var b strings.Builder
	for _, n := range nodes {
		switch c := n.Content.(type) {
		case asciidoc.TextInline:
			b.WriteString(c.Text)
		case asciidoc.BoldInline:
			b.WriteString(plainText(c.Children))
		case asciidoc.ItalicInline:
			b.WriteString(plainText(c.Children))
		case asciidoc.MonoInline:
			b.WriteString(plainText(c.Children))
		case asciidoc.HighlightInline:
			b.WriteString(plainText(c.Children))
		case asciidoc.SuperscriptInline:
			b.WriteString(plainText(c.Children))
		case asciidoc.SubscriptInline:
			b.WriteString(plainText(c.Children))
		case asciidoc.LitMonoInline:
			b.WriteString(c.Text)
		}
	}

	return b.String()
}

func fileDir(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return "."
	}

	return path[:idx]
}

// inspectModel is the bubbletea model driving the tree browser: an
// up/down cursor over the flattened node list, with `y` copying the
// selected node's label to the clipboard via atotto/clipboard.
type inspectModel struct {
	nodes  []treeNode
	cursor int
	theme  *theme.Theme
	status string
	view   viewport.Model
	ready  bool
}

func newInspectModel(nodes []treeNode, th *theme.Theme) inspectModel {
	return inspectModel{nodes: nodes, theme: th}
}

func (m inspectModel) Init() tea.Cmd { return nil }

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if !m.ready {
			m.view = viewport.New(msg.Width, msg.Height-2)
			m.ready = true
		} else {
			m.view.Width = msg.Width
			m.view.Height = msg.Height - 2
		}
		m.view.SetContent(m.renderTree())

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.nodes)-1 {
				m.cursor++
			}
		case "y":
			if m.cursor < len(m.nodes) {
				if err := clipboard.WriteAll(m.nodes[m.cursor].label); err != nil {
					m.status = "copy failed: " + err.Error()
				} else {
					m.status = "copied: " + m.nodes[m.cursor].label
				}
			}
		}
		if m.ready {
			m.view.SetContent(m.renderTree())
		}
	}

	return m, nil
}

func (m inspectModel) renderTree() string {
	var b strings.Builder
	selected := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Primary)

	for i, n := range m.nodes {
		line := strings.Repeat("  ", n.depth) + n.label
		if i == m.cursor {
			line = selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}

func (m inspectModel) View() string {
	if !m.ready {
		return "loading...\n"
	}

	footer := "(j/k to move, y to copy, q to quit)"
	if m.status != "" {
		footer = m.status + "  " + footer
	}

	return m.view.View() + "\n" + footer + "\n"
}
