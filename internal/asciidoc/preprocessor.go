package asciidoc

import (
	"strconv"
	"strings"
)

// AttributeMissingPolicy controls how the preprocessor handles an
// AttrRef token whose name has no value, per the `attribute-missing`
// document attribute.
type AttributeMissingPolicy uint8

const (
	AttributeMissingSkip AttributeMissingPolicy = iota // leave "{name}" as literal text (default)
	AttributeMissingDrop
	AttributeMissingDropLine
	AttributeMissingWarn
)

func attributeMissingPolicyFromString(s string) (AttributeMissingPolicy, bool) {
	switch s {
	case "skip":
		return AttributeMissingSkip, true
	case "drop":
		return AttributeMissingDrop, true
	case "drop-line":
		return AttributeMissingDropLine, true
	case "warn":
		return AttributeMissingWarn, true
	default:
		return AttributeMissingSkip, false
	}
}

// ppFrame is one entry of the preprocessor's active-source stack: the
// primary input, or one nested include.
type ppFrame struct {
	reader    *rawLineReader
	sourceIdx int
	depth     int
}

// condFrame is one entry of the nested ifdef/ifndef/ifeval stack.
// suppressed is whether lines inside this frame should be discarded
// (either because this frame's own condition was false, or because an
// enclosing frame is already suppressed).
type condFrame struct {
	suppressed bool
}

// preprocessor drives include resolution, conditional directives and
// attribute-reference substitution over the raw line stream, producing
// the Lines the block parser consumes. It implements lineSource.
type preprocessor struct {
	sources  *SourceSet
	attrs    *AttributeTable
	diag     *diagnosticSink
	resolver IncludeResolver
	safeMode SafeMode

	stack     []*ppFrame
	condStack []condFrame
}

func newPreprocessor(
	sources *SourceSet,
	primaryIdx int,
	attrs *AttributeTable,
	diag *diagnosticSink,
	resolver IncludeResolver,
	safeMode SafeMode,
) *preprocessor {
	primary := sources.File(primaryIdx)
	p := &preprocessor{
		sources:  sources,
		attrs:    attrs,
		diag:     diag,
		resolver: resolver,
		safeMode: safeMode,
	}
	p.stack = append(p.stack, &ppFrame{reader: newRawLineReader(primary, primaryIdx), sourceIdx: primaryIdx, depth: 0})

	return p
}

func (p *preprocessor) suppressed() bool {
	for _, f := range p.condStack {
		if f.suppressed {
			return true
		}
	}

	return false
}

// nextLine implements lineSource.
func (p *preprocessor) nextLine() (Line, bool) {
	for {
		if len(p.stack) == 0 {
			return Line{}, false
		}
		top := p.stack[len(p.stack)-1]
		line, ok := top.reader.nextLine()
		if !ok {
			p.stack = p.stack[:len(p.stack)-1]

			continue
		}

		if name, rest, isDirective := firstDirective(line, p.sources.File(top.sourceIdx)); isDirective {
			action := p.handleDirective(name, rest, line, top)
			switch action.kind {
			case directiveActionConsumed:
				continue
			case directiveActionEmit:
				if p.suppressed() {
					continue
				}

				return p.substituteAttrRefs(action.line, top.sourceIdx), true
			}
		}

		if p.suppressed() {
			continue
		}

		return p.substituteAttrRefs(line, top.sourceIdx), true
	}
}

type directiveActionKind uint8

const (
	directiveActionConsumed directiveActionKind = iota
	directiveActionEmit
)

type directiveAction struct {
	kind directiveActionKind
	line Line
}

// firstDirective reports whether line's first token is a TokenDirective,
// returning its name and the literal text of the rest of the line (from
// just after `::` to the line's end) for further parsing.
func firstDirective(line Line, src *SourceFile) (string, string, bool) {
	if len(line.Tokens) == 0 || line.Tokens[0].Kind != TokenDirective {
		return "", "", false
	}
	first := line.Tokens[0]
	last := line.Tokens[len(line.Tokens)-1]
	rest := ""
	if last.End > first.End {
		rest = string(src.Slice(first.End, last.End))
	}

	return first.Name, rest, true
}

// splitBracket splits "target[bracket]" into target and bracket,
// requiring the bracket to close the string. Returns ok=false if rest
// does not end in a matching `]`.
func splitBracket(rest string) (target, bracket string, ok bool) {
	if len(rest) == 0 || rest[len(rest)-1] != ']' {
		return "", "", false
	}
	idx := strings.IndexByte(rest, '[')
	if idx < 0 {
		return "", "", false
	}

	return rest[:idx], rest[idx+1 : len(rest)-1], true
}

func (p *preprocessor) handleDirective(name, rest string, line Line, top *ppFrame) directiveAction {
	switch name {
	case "include":
		return p.handleInclude(rest, top)
	case "ifdef":
		return p.handleIfdefIfndef(rest, false)
	case "ifndef":
		return p.handleIfdefIfndef(rest, true)
	case "ifeval":
		return p.handleIfeval(rest)
	case "endif":
		if len(p.condStack) > 0 {
			p.condStack = p.condStack[:len(p.condStack)-1]
		}

		return directiveAction{kind: directiveActionConsumed}
	default:
		return directiveAction{kind: directiveActionEmit, line: line}
	}
}

// handleIfdefIfndef evaluates `ifdef::expr[body]` / `ifdef::expr[]`
// (and the negated ifndef form). expr uses `+` for AND and `,` for OR,
// not both in one expression (AsciiDoc does not define precedence
// between them; we evaluate whichever separator is present).
func (p *preprocessor) handleIfdefIfndef(rest string, negate bool) directiveAction {
	attrExpr, body, ok := splitBracket(rest)
	if !ok {
		return directiveAction{kind: directiveActionConsumed}
	}

	defined := evalAttrExpr(attrExpr, p.attrs)
	if negate {
		defined = !defined
	}

	if strings.TrimSpace(body) != "" {
		// Single-line form: emit body as a line if the condition holds.
		if !defined || p.suppressed() {
			return directiveAction{kind: directiveActionConsumed}
		}
		toks := retokenizeLine(body)

		return directiveAction{kind: directiveActionEmit, line: newLine(toks, -1)}
	}

	// Block form: push a conditional frame, closed by a matching endif::[].
	p.condStack = append(p.condStack, condFrame{suppressed: !defined})

	return directiveAction{kind: directiveActionConsumed}
}

// evalAttrExpr evaluates an ifdef/ifndef attribute expression: `+`
// between names is AND, `,` is OR (mixing both in one expression is not
// supported by AsciiDoc and is treated here as OR of the comma groups,
// each itself an AND of its `+`-joined names).
func evalAttrExpr(expr string, attrs *AttributeTable) bool {
	for _, orGroup := range strings.Split(expr, ",") {
		allDefined := true
		for _, name := range strings.Split(orGroup, "+") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := attrs.Get(name); !ok {
				allDefined = false

				break
			}
		}
		if allDefined {
			return true
		}
	}

	return false
}

func (p *preprocessor) handleIfeval(rest string) directiveAction {
	_, expr, ok := splitBracket(rest)
	if !ok {
		return directiveAction{kind: directiveActionConsumed}
	}

	result, err := evalIfeval(expr, p.attrs)
	if err != nil {
		p.diag.warn(MultiSourceLocation{}, "malformed ifeval expression: %v", err)
		result = false
	}

	p.condStack = append(p.condStack, condFrame{suppressed: !result})

	return directiveAction{kind: directiveActionConsumed}
}

func (p *preprocessor) handleInclude(rest string, top *ppFrame) directiveAction {
	targetText, bracket, ok := splitBracket(rest)
	if !ok {
		return directiveAction{kind: directiveActionConsumed}
	}
	target := parseResolveTarget(targetText)
	attrs := parseIncludeAttrs(bracket)

	for _, frame := range p.stack {
		if p.sources.File(frame.sourceIdx).Name == targetText {
			p.diag.warn(MultiSourceLocation{}, "include cycle detected resolving %q", targetText)

			return directiveAction{kind: directiveActionConsumed}
		}
	}

	baseDir, _ := p.resolver.BaseDir()
	ctx := IncludeContext{
		SourceFile: p.sources.File(top.sourceIdx).Name,
		IsPrimary:  top.sourceIdx == 0,
		BaseDir:    baseDir,
		SafeMode:   p.safeMode,
	}

	raw, err := p.resolver.Resolve(target, ctx)
	if err != nil {
		if p.safeMode >= SafeModeSecure {
			toks := retokenizeLine("link:" + targetText + "[]")

			return directiveAction{kind: directiveActionEmit, line: newLine(toks, top.sourceIdx)}
		}
		p.diag.warn(MultiSourceLocation{}, "unresolved include target %q: %v", targetText, err)

		return directiveAction{kind: directiveActionConsumed}
	}

	normalized := normalizeIncludedBytes(raw)
	if len(attrs.lines) > 0 || len(attrs.tags) > 0 {
		lines := splitLinesKeepingContent(normalized)
		lines = selectLines(lines, attrs.lines)
		if len(attrs.tags) > 0 {
			lines = selectTaggedLines(lines, attrs.tags)
		}
		normalized = []byte(strings.Join(lines, "\n") + "\n")
	}
	if attrs.indent != nil {
		normalized = reindent(normalized, *attrs.indent)
	}

	idx, _ := p.sources.Add(SourcePath, targetText, normalized, top.depth+1)
	p.stack = append(p.stack, &ppFrame{reader: newRawLineReader(p.sources.File(idx), idx), sourceIdx: idx, depth: top.depth + 1})

	return directiveAction{kind: directiveActionConsumed}
}

func parseResolveTarget(text string) ResolveTarget {
	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") ||
		strings.HasPrefix(text, "ftp://") || strings.HasPrefix(text, "data:") {
		return ResolveTarget{Kind: ResolveTargetURI, Value: text}
	}

	return ResolveTarget{Kind: ResolveTargetFilePath, Value: text}
}

func parseIncludeAttrs(bracket string) includeAttrs {
	var out includeAttrs
	for _, entry := range splitCommaTrim(bracket) {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		switch name {
		case "lines":
			out.lines = parseLineRanges(value)
		case "tags", "tag":
			out.tags = strings.Split(value, ";")
		case "leveloffset":
			if n, err := strconv.Atoi(strings.TrimPrefix(value, "+")); err == nil {
				out.levelOffset = &n
			}
		case "indent":
			if n, err := strconv.Atoi(value); err == nil {
				out.indent = &n
			}
		}
	}

	return out
}

func parseLineRanges(value string) []lineRange {
	var ranges []lineRange
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if start, end, ok := strings.Cut(part, ".."); ok {
			s, errS := strconv.Atoi(start)
			if errS != nil {
				continue
			}
			if end == "" {
				ranges = append(ranges, lineRange{start: s, end: -1})

				continue
			}
			e, errE := strconv.Atoi(end)
			if errE != nil {
				continue
			}
			ranges = append(ranges, lineRange{start: s, end: e})

			continue
		}
		if n, err := strconv.Atoi(part); err == nil {
			ranges = append(ranges, lineRange{start: n, end: n})
		}
	}

	return ranges
}

func splitLinesKeepingContent(b []byte) []string {
	s := string(b)
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}

	return strings.Split(s, "\n")
}

// selectTaggedLines keeps only content between `tag::name[]` and
// `end::name[]` markers for any of the requested tags (a leading `!`
// excludes rather than includes that tag), discarding the marker lines
// themselves.
func selectTaggedLines(lines []string, tags []string) []string {
	want := make(map[string]bool, len(tags))
	exclude := make(map[string]bool, len(tags))
	for _, t := range tags {
		if strings.HasPrefix(t, "!") {
			exclude[t[1:]] = true
		} else {
			want[t] = true
		}
	}

	var out []string
	activeTags := map[string]bool{}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "tag::"):
			name, _, _ := strings.Cut(strings.TrimPrefix(trimmed, "tag::"), "[")
			activeTags[name] = true

			continue
		case strings.HasPrefix(trimmed, "end::"):
			name, _, _ := strings.Cut(strings.TrimPrefix(trimmed, "end::"), "[")
			delete(activeTags, name)

			continue
		}

		included := len(want) == 0
		for t := range activeTags {
			if want[t] {
				included = true
			}
			if exclude[t] {
				included = false
			}
		}
		if included {
			out = append(out, line)
		}
	}

	return out
}

func reindent(b []byte, indent int) []byte {
	lines := strings.Split(strings.TrimSuffix(string(b), "\n"), "\n")
	minIndent := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if minIndent == -1 || n < minIndent {
			minIndent = n
		}
	}
	if minIndent < 0 {
		minIndent = 0
	}
	pad := strings.Repeat(" ", indent)
	for i, l := range lines {
		if len(l) >= minIndent {
			lines[i] = pad + l[minIndent:]
		}
	}

	return []byte(strings.Join(lines, "\n") + "\n")
}

// retokenizeLine lexes a synthetic line of text (produced by the
// preprocessor itself, e.g. a single-line ifdef body) into tokens.
func retokenizeLine(text string) []Token {
	lx := newLexer([]byte(text))
	var toks []Token
	for {
		t := lx.Next()
		if t.Kind == TokenEOF || t.Kind == TokenNewline {
			break
		}
		toks = append(toks, t)
	}

	return toks
}

// substituteAttrRefs replaces every TokenAttrRef in line according to
// the active attribute-missing policy, splicing in re-lexed replacement
// tokens whose locations repeat the original reference's span.
func (p *preprocessor) substituteAttrRefs(line Line, sourceIdx int) Line {
	if !containsAttrRef(line.Tokens) {
		return line
	}

	policy := AttributeMissingSkip
	if v, ok := p.attrs.Get("attribute-missing"); ok {
		if parsed, ok := attributeMissingPolicyFromString(v); ok {
			policy = parsed
		}
	}

	var out []Token
	for _, tok := range line.Tokens {
		if tok.Kind != TokenAttrRef {
			out = append(out, tok)

			continue
		}
		value, found := p.attrs.Get(tok.Name)
		if found {
			loc := SourceLocation{StartByte: tok.Start, EndByte: tok.End}
			for _, rt := range retokenizeLine(value) {
				rt.Start, rt.End = tok.Start, tok.End
				rt.Overlay = &loc
				out = append(out, rt)
			}

			continue
		}

		switch policy {
		case AttributeMissingDrop:
			continue
		case AttributeMissingDropLine:
			return newLine(nil, sourceIdx)
		case AttributeMissingWarn:
			p.diag.warn(MultiSourceLocation{
				SourceLocation: SourceLocation{StartByte: tok.Start, EndByte: tok.End},
				StartSourceIdx: sourceIdx, EndSourceIdx: sourceIdx,
			}, "missing attribute: %s", tok.Name)
			out = append(out, tok)
		default: // AttributeMissingSkip
			out = append(out, tok)
		}
	}

	return newLine(out, sourceIdx)
}

func containsAttrRef(tokens []Token) bool {
	for _, t := range tokens {
		if t.Kind == TokenAttrRef {
			return true
		}
	}

	return false
}

// evalIfeval evaluates a bounded `<lhs> <op> <rhs>` comparison expression
// for `ifeval::[expr]`.
func evalIfeval(expr string, attrs *AttributeTable) (bool, error) {
	expr = strings.TrimSpace(expr)
	for _, op := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		if idx := strings.Index(expr, op); idx >= 0 {
			lhs := strings.TrimSpace(expr[:idx])
			rhs := strings.TrimSpace(expr[idx+len(op):])

			return compareIfevalOperands(lhs, rhs, op, attrs), nil
		}
	}

	return false, errUnparseableIfeval
}

var errUnparseableIfeval = &evalError{"no comparison operator found"}

type evalError struct{ msg string }

func (e *evalError) Error() string { return e.msg }

type ifevalOperand struct {
	isString bool
	str      string
	num      float64
}

func resolveIfevalOperand(text string, attrs *AttributeTable) ifevalOperand {
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0] {
		return ifevalOperand{isString: true, str: text[1 : len(text)-1]}
	}
	if strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}") {
		name := text[1 : len(text)-1]
		if v, ok := attrs.Get(name); ok {
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				return ifevalOperand{num: n}
			}

			return ifevalOperand{isString: true, str: v}
		}

		return ifevalOperand{isString: true, str: ""}
	}
	if n, err := strconv.ParseFloat(text, 64); err == nil {
		return ifevalOperand{num: n}
	}

	return ifevalOperand{isString: true, str: text}
}

func compareIfevalOperands(lhsText, rhsText, op string, attrs *AttributeTable) bool {
	lhs := resolveIfevalOperand(lhsText, attrs)
	rhs := resolveIfevalOperand(rhsText, attrs)

	if lhs.isString != rhs.isString {
		return op == "!="
	}

	if lhs.isString {
		switch op {
		case "==":
			return lhs.str == rhs.str
		case "!=":
			return lhs.str != rhs.str
		case "<":
			return lhs.str < rhs.str
		case ">":
			return lhs.str > rhs.str
		case "<=":
			return lhs.str <= rhs.str
		case ">=":
			return lhs.str >= rhs.str
		}

		return false
	}

	switch op {
	case "==":
		return lhs.num == rhs.num
	case "!=":
		return lhs.num != rhs.num
	case "<":
		return lhs.num < rhs.num
	case ">":
		return lhs.num > rhs.num
	case "<=":
		return lhs.num <= rhs.num
	case ">=":
		return lhs.num >= rhs.num
	}

	return false
}
