package asciidoc

import "sort"

// SourceKind classifies where a SourceFile's bytes came from.
type SourceKind uint8

const (
	// SourcePath is a file read from the filesystem (or a resolver acting
	// like one).
	SourcePath SourceKind = iota
	// SourceStdin is the primary input read from standard input.
	SourceStdin
	// SourceSynthetic is content manufactured by the pipeline itself, e.g.
	// the empty replacement block substituted for a failed include cycle.
	SourceSynthetic
)

// Position is a human-facing location: a 1-based line, a 0-based byte
// column within that line, and the original byte offset it was derived
// from.
type Position struct {
	Line   int
	Column int
	Offset int
}

// SourceFile owns the bytes of one input (the primary document or one
// `include::` target) and maps byte offsets to line/column positions.
// source_idx (see SourceSet) is assigned in inclusion order by the
// orchestrator, not stored on the file itself.
type SourceFile struct {
	Kind         SourceKind
	Name         string
	Bytes        []byte
	IncludeDepth int

	lineStarts []int
	built      bool
}

func newSourceFile(kind SourceKind, name string, bytes []byte, depth int) *SourceFile {
	return &SourceFile{
		Kind:         kind,
		Name:         name,
		Bytes:        bytes,
		IncludeDepth: depth,
	}
}

// buildLineIndex scans for line starts on first use; subsequent position
// lookups are O(log n) via binary search.
func (f *SourceFile) buildLineIndex() {
	if f.built {
		return
	}
	f.lineStarts = []int{0}
	for i := 0; i < len(f.Bytes); i++ {
		switch f.Bytes[i] {
		case '\n':
			f.lineStarts = append(f.lineStarts, i+1)
		case '\r':
			if i+1 < len(f.Bytes) && f.Bytes[i+1] == '\n' {
				f.lineStarts = append(f.lineStarts, i+2)
				i++
			} else {
				f.lineStarts = append(f.lineStarts, i+1)
			}
		}
	}
	f.built = true
}

// Position converts a byte offset into a 1-based line and 0-based column.
func (f *SourceFile) Position(offset int) Position {
	f.buildLineIndex()

	if offset < 0 {
		return Position{Line: 1, Column: 0, Offset: 0}
	}
	clamped := offset
	if clamped > len(f.Bytes) {
		clamped = len(f.Bytes)
	}

	idx := sort.Search(len(f.lineStarts), func(i int) bool {
		return f.lineStarts[i] > clamped
	})
	if idx > 0 {
		idx--
	}

	return Position{
		Line:   idx + 1,
		Column: clamped - f.lineStarts[idx],
		Offset: offset,
	}
}

// LineText returns the text of the given 1-based line, without its
// terminator, for diagnostic rendering.
func (f *SourceFile) LineText(line int) string {
	f.buildLineIndex()
	if line < 1 || line > len(f.lineStarts) {
		return ""
	}
	start := f.lineStarts[line-1]
	end := len(f.Bytes)
	if line < len(f.lineStarts) {
		end = f.lineStarts[line]
	}
	for end > start && (f.Bytes[end-1] == '\n' || f.Bytes[end-1] == '\r') {
		end--
	}

	return string(f.Bytes[start:end])
}

// Slice returns source[start:end], clamped to the buffer bounds.
func (f *SourceFile) Slice(start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(f.Bytes) {
		end = len(f.Bytes)
	}
	if start > end {
		return nil
	}

	return f.Bytes[start:end]
}

// ByteAt returns the byte at i, or 0 if out of range.
func (f *SourceFile) ByteAt(i int) byte {
	if i < 0 || i >= len(f.Bytes) {
		return 0
	}

	return f.Bytes[i]
}

// SourceSet owns every SourceFile touched by one parse, in inclusion
// order. Source 0 is always the primary input.
type SourceSet struct {
	files []*SourceFile
}

// NewSourceSet creates an empty set.
func NewSourceSet() *SourceSet {
	return &SourceSet{}
}

// Add registers a new source file and returns its source_idx.
func (s *SourceSet) Add(kind SourceKind, name string, bytes []byte, depth int) (int, *SourceFile) {
	f := newSourceFile(kind, name, bytes, depth)
	s.files = append(s.files, f)

	return len(s.files) - 1, f
}

// File returns the source file at idx, or nil if out of range.
func (s *SourceSet) File(idx int) *SourceFile {
	if idx < 0 || idx >= len(s.files) {
		return nil
	}

	return s.files[idx]
}

// Len returns the number of registered source files.
func (s *SourceSet) Len() int {
	return len(s.files)
}

// Names returns the registered file names in inclusion order, used to
// populate Document.SourceFilenames.
func (s *SourceSet) Names() []string {
	names := make([]string, len(s.files))
	for i, f := range s.files {
		names[i] = f.Name
	}

	return names
}

// SourceLocation is a byte-offset span within a single source file, plus
// the include depth it was produced at (0 for the primary input).
type SourceLocation struct {
	StartByte    int
	EndByte      int
	IncludeDepth int
}

// Len returns the byte length of the span.
func (l SourceLocation) Len() int {
	return l.EndByte - l.StartByte
}

// Empty reports whether the span covers no bytes.
func (l SourceLocation) Empty() bool {
	return l.EndByte <= l.StartByte
}

// MultiSourceLocation extends SourceLocation with the source_idx at the
// start and end of the span, so a node produced across an include
// boundary can still be located.
type MultiSourceLocation struct {
	SourceLocation
	StartSourceIdx int
	EndSourceIdx   int
}

// SingleSource reports whether the span starts and ends in the same
// source file.
func (l MultiSourceLocation) SingleSource() bool {
	return l.StartSourceIdx == l.EndSourceIdx
}
