package asciidoc

import (
	"strings"

	"github.com/connerohnesorge/asciidork/internal/mdbridge"
)

func tableFormatFromRune(r byte) TableFormat {
	switch r {
	case ',':
		return TableFormatCSV
	case ':':
		return TableFormatDSV
	case '!':
		return TableFormatTSV
	default:
		return TableFormatPSV
	}
}

func tableSeparator(format TableFormat, attrs *AttrList) byte {
	if attrs != nil {
		if v, ok := attrs.Named("separator"); ok {
			if s := plainText(v); s != "" {
				return s[0]
			}
		}
	}
	switch format {
	case TableFormatCSV:
		return ','
	case TableFormatDSV:
		return ':'
	case TableFormatTSV:
		return '\t'
	default:
		return '|'
	}
}

// parseTable consumes a table block's raw lines up to its closing
// fence, splits them into cells by separator-prefixed lines, groups
// cells into rows by column count, and classifies header/footer rows.
func (bp *blockParser) parseTable(cl *ContiguousLines, meta ChunkMeta, open Token) (*Block, bool) {
	format := tableFormatFromRune(open.Rune)
	sep := tableSeparator(format, meta.Attrs)

	var rawLines []string
	for {
		line, ok := cl.ConsumeRawLine()
		if !ok {
			break
		}
		if closesDelimiter(line, open) {
			break
		}
		rawLines = append(rawLines, lineRawText(line))
	}

	colspecs := parseColsAttr(meta.Attrs)

	type rawCell struct {
		colspan, rowspan int
		style            ColSpecStyle
		text             string
	}
	var cells []rawCell
	for _, text := range rawLines {
		colspan, rowspan, style, rest, ok := cellPrefixAndSplit(text, sep)
		if ok {
			cells = append(cells, rawCell{colspan, rowspan, style, rest})

			continue
		}
		if len(cells) == 0 {
			continue
		}
		last := &cells[len(cells)-1]
		last.text = strings.TrimRight(last.text+"\n"+text, " ")
	}

	ncols := len(colspecs)
	if ncols == 0 {
		ncols = len(cells)
		if ncols == 0 {
			ncols = 1
		}
	}

	var rows []TableRow
	for i := 0; i < len(cells); i += ncols {
		end := i + ncols
		if end > len(cells) {
			end = len(cells)
		}
		var row TableRow
		for _, rc := range cells[i:end] {
			row.Cells = append(row.Cells, TableCell{
				RowSpan: maxInt(rc.rowspan, 1),
				ColSpan: maxInt(rc.colspan, 1),
				Style:   rc.style,
				Content: bp.parseTableCellContent(rc.text, rc.style),
			})
		}
		rows = append(rows, row)
	}

	content := TableContent{Format: format, ColSpecs: colspecs, ColWidths: DistributeColWidths(colspecs), Rows: rows}
	if meta.Attrs != nil {
		if meta.Attrs.HasOption("header") {
			content.HeaderRows = 1
		}
		content.HasFooter = meta.Attrs.HasOption("footer")
	}

	return &Block{Meta: meta, Context: BlockContextTable, Content: content}, true
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}

// parseTableCellContent builds a cell's block content: an `a`-style
// cell reparses its text as a nested sequence of blocks; every other
// style is one SimpleContent paragraph block.
func (bp *blockParser) parseTableCellContent(text string, style ColSpecStyle) []*Block {
	text = strings.TrimSpace(text)
	if style == ColStyleAsciidoc {
		var lines []Line
		for _, raw := range strings.Split(text, "\n") {
			lines = append(lines, newLine(retokenizeLine(raw), 0))
		}

		return bp.parseNestedBlocks(lines)
	}
	if style == ColStyleMarkdown {
		text = mdbridge.ToPlainText([]byte(text))
	}

	toks := retokenizeLine(strings.ReplaceAll(text, "\n", " "))
	inlines := bp.inline.parseLines([]Line{newLine(toks, 0)}, NormalSubs)

	return []*Block{{Context: BlockContextParagraph, Content: SimpleContent{Inlines: inlines}}}
}

// cellPrefixAndSplit recognises a cell-opening prefix at the start of a
// raw line: an optional `N+`/`N.M+` span spec, an optional single-letter
// style code, then the separator byte.
func cellPrefixAndSplit(text string, sep byte) (colspan, rowspan int, style ColSpecStyle, rest string, ok bool) {
	colspan, rowspan = 1, 1
	i := 0
	start := i
	for i < len(text) && (isASCIIDigit(text[i]) || text[i] == '.') {
		i++
	}
	if i > start {
		if i < len(text) && text[i] == '+' {
			spanStr := text[start:i]
			i++
			if idx := strings.Index(spanStr, "."); idx >= 0 {
				colspan = atoiDefault(spanStr[:idx], 1)
				rowspan = atoiDefault(spanStr[idx+1:], 1)
			} else {
				colspan = atoiDefault(spanStr, 1)
			}
		} else {
			i = start
		}
	}

	if i < len(text) {
		switch text[i] {
		case 'a':
			style = ColStyleAsciidoc
			i++
		case 'e':
			style = ColStyleEmphasis
			i++
		case 'h':
			style = ColStyleHeader
			i++
		case 'l':
			style = ColStyleLiteral
			i++
		case 'm':
			style = ColStyleMonospace
			i++
		case 's':
			style = ColStyleStrong
			i++
		case 'k':
			style = ColStyleMarkdown
			i++
		}
	}

	if i >= len(text) || text[i] != sep {
		return 0, 0, 0, "", false
	}
	i++
	if i < len(text) && text[i] == ' ' {
		i++
	}

	return colspan, rowspan, style, text[i:], true
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if !isASCIIDigit(s[i]) {
			return def
		}
		n = n*10 + int(s[i]-'0')
	}

	return n
}

// parseColsAttr parses a table's `cols="1,2*,>.^3e"`-shaped attribute
// into column specs: each comma-separated entry is an optional repeat
// count (`N*`), an optional horizontal alignment marker (`<`, `^`, `>`),
// an optional vertical alignment (`.` followed by `<`, `^` or `>`), an
// optional width (a number, with `%` for a percentage; no width means
// auto), and an optional trailing style letter.
func parseColsAttr(attrs *AttrList) []ColSpec {
	if attrs == nil {
		return nil
	}
	nodes, ok := attrs.Named("cols")
	if !ok {
		return nil
	}
	raw := plainText(nodes)
	if raw == "" {
		return nil
	}

	var specs []ColSpec
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		specs = append(specs, parseOneColSpec(entry)...)
	}

	return specs
}

func parseOneColSpec(entry string) []ColSpec {
	repeat := 1
	i := 0
	start := i
	for i < len(entry) && isASCIIDigit(entry[i]) {
		i++
	}
	if i > start && i < len(entry) && entry[i] == '*' {
		repeat = atoiDefault(entry[start:i], 1)
		i++
	} else {
		i = start
	}

	var spec ColSpec
	for i < len(entry) {
		switch entry[i] {
		case '<':
			spec.HAlign = HAlignLeft
			i++
		case '>':
			spec.HAlign = HAlignRight
			i++
		case '^':
			spec.HAlign = HAlignCenter
			i++
		default:
			goto widthAndStyle
		}
	}

widthAndStyle:
	if i+1 < len(entry) && entry[i] == '.' {
		switch entry[i+1] {
		case '<':
			spec.VAlign = VAlignTop
			i += 2
		case '^':
			spec.VAlign = VAlignMiddle
			i += 2
		case '>':
			spec.VAlign = VAlignBottom
			i += 2
		}
	}
	wStart := i
	for i < len(entry) && (isASCIIDigit(entry[i]) || entry[i] == '.') {
		i++
	}
	if i > wStart {
		spec.Width = parseFloatSimple(entry[wStart:i])
	}
	if i < len(entry) && entry[i] == '%' {
		spec.Percent = true
		i++
	}
	if i < len(entry) {
		switch entry[i] {
		case 'a':
			spec.Style = ColStyleAsciidoc
		case 'e':
			spec.Style = ColStyleEmphasis
		case 'h':
			spec.Style = ColStyleHeader
		case 'l':
			spec.Style = ColStyleLiteral
		case 'm':
			spec.Style = ColStyleMonospace
		case 's':
			spec.Style = ColStyleStrong
		case 'd':
			spec.Style = ColStyleDefault
		case 'k':
			spec.Style = ColStyleMarkdown
		}
	}
	if spec.Width == 0 && !spec.Percent {
		spec.Auto = true
	}
	spec.Repeat = repeat

	out := make([]ColSpec, repeat)
	for i := range out {
		out[i] = spec
		out[i].Repeat = 1
	}

	return out
}

// DistributeColWidths computes each column's final percentage width
// from a `cols=` spec list, implementing AsciiDoc's width-distribution
// rule: explicit percentage and proportional widths normalise against
// each other, and auto columns split whatever share is left over,
// collapsing to zero once the sized columns already reach 100. The
// result always sums to exactly 100.0 when specs is non-empty.
func DistributeColWidths(specs []ColSpec) []float64 {
	n := len(specs)
	if n == 0 {
		return nil
	}

	out := make([]float64, n)

	var sizedSum float64
	var sizedCount, autoCount int
	for _, s := range specs {
		if s.Auto {
			autoCount++

			continue
		}
		w := s.Width
		if w <= 0 {
			w = 1
		}
		sizedSum += w
		sizedCount++
	}

	if sizedCount == 0 {
		share := 100.0 / float64(n)
		for i := range out {
			out[i] = share
		}

		return out
	}

	remainder := 100.0 - sizedSum
	if remainder < 0 {
		remainder = 0
	}
	var autoShare float64
	if autoCount > 0 {
		autoShare = remainder / float64(autoCount)
	}

	sizedTarget := 100.0 - autoShare*float64(autoCount)
	scale := 1.0
	if sizedSum > 0 {
		scale = sizedTarget / sizedSum
	}

	for i, s := range specs {
		if s.Auto {
			out[i] = autoShare

			continue
		}
		w := s.Width
		if w <= 0 {
			w = 1
		}
		out[i] = w * scale
	}

	return out
}

func parseFloatSimple(s string) float64 {
	whole, frac, has := strings.Cut(s, ".")
	n := float64(atoiDefault(whole, 0))
	if has && frac != "" {
		f := float64(atoiDefault(frac, 0))
		for range frac {
			f /= 10
		}
		n += f
	}

	return n
}
