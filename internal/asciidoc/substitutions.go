package asciidoc

// SubstitutionSet is a bit set over the six named substitution groups.
// `[subs=...]` entries are parsed as a delta (`+group` adds, `-group`
// removes, a bare name replaces the set outright) against the enclosing
// block's set.
type SubstitutionSet uint8

const (
	SubSpecialChars SubstitutionSet = 1 << iota
	SubAttrs
	SubQuotes
	SubReplacements
	SubMacros
	SubPostReplacements
)

// substitutionOrder is the fixed application order regardless of the
// order named in `[subs=...]`: special-chars, then attrs, then quotes
// (formatting), then replacements, then macros, then post-replacements.
var substitutionOrder = [...]SubstitutionSet{
	SubSpecialChars,
	SubAttrs,
	SubQuotes,
	SubReplacements,
	SubMacros,
	SubPostReplacements,
}

// NormalSubs is the default substitution set applied to prose blocks
// (paragraphs, descriptions, table cells of the default style, ...).
const NormalSubs = SubSpecialChars | SubAttrs | SubQuotes | SubReplacements | SubMacros | SubPostReplacements

// VerbatimSubs is the default substitution set applied to listing and
// literal blocks: only special-chars, so markup-significant characters
// still render correctly, but none of the inline grammar runs.
const VerbatimSubs = SubSpecialChars

// None is the empty set, the starting point for a passthrough block
// before any `[subs=+...]` addition.
const NoneSubs SubstitutionSet = 0

// Has reports whether group is active in s.
func (s SubstitutionSet) Has(group SubstitutionSet) bool {
	return s&group != 0
}

// subsGroupName maps the names accepted in `[subs=...]` to their bit.
var subsGroupName = map[string]SubstitutionSet{
	"specialchars": SubSpecialChars,
	"specialcharacters": SubSpecialChars,
	"attributes":   SubAttrs,
	"quotes":       SubQuotes,
	"replacements": SubReplacements,
	"macros":       SubMacros,
	"post_replacements": SubPostReplacements,
	"postreplacements":  SubPostReplacements,
	"normal":  NormalSubs,
	"verbatim": VerbatimSubs,
	"none":    NoneSubs,
}

// applySubsDelta parses a comma-separated `[subs=...]` value against a
// base set. Each entry is a group name optionally prefixed with `+`
// (add) or `-` (remove); an entry with neither prefix replaces the
// running set with just that group the first time it's seen, matching
// AsciiDoctor's "first bare entry resets" behaviour.
func applySubsDelta(base SubstitutionSet, spec string) SubstitutionSet {
	result := base
	resetDone := false
	for _, entry := range splitCommaTrim(spec) {
		if entry == "" {
			continue
		}
		op := byte(0)
		name := entry
		if entry[0] == '+' || entry[0] == '-' {
			op = entry[0]
			name = entry[1:]
		}
		group, ok := subsGroupName[name]
		if !ok {
			continue
		}
		switch op {
		case '+':
			result |= group
		case '-':
			result &^= group
		default:
			if !resetDone {
				result = group
				resetDone = true
			} else {
				result |= group
			}
		}
	}

	return result
}

// resolveSubs computes a block's effective substitution set: its
// `[subs=...]` attribute, if present, applied as a delta against base
// (the block kind's own default set); base unchanged otherwise.
func resolveSubs(meta ChunkMeta, base SubstitutionSet) SubstitutionSet {
	if meta.Attrs == nil {
		return base
	}
	nodes, ok := meta.Attrs.Named("subs")
	if !ok {
		return base
	}

	return applySubsDelta(base, plainText(nodes))
}

func splitCommaTrim(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			out = append(out, trimSpaceASCII(s[start:i]))
			start = i + 1
		}
	}

	return out
}

func trimSpaceASCII(s string) string {
	start, end := 0, len(s)
	for start < end && isASCIISpace(s[start]) {
		start++
	}
	for end > start && isASCIISpace(s[end-1]) {
		end--
	}

	return s[start:end]
}

func isASCIISpace(b byte) bool { return b == ' ' || b == '\t' }
