package asciidoc

// AttributeOrigin records which pipeline stage set an attribute, which in
// turn determines whether a later stage is allowed to override it.
type AttributeOrigin uint8

const (
	// AttributeOriginJob is a value supplied by the caller before parsing
	// begins (CLI -a flags, API settings). Job attributes are locked:
	// nothing set later can override or unset one, unless the job value
	// itself was declared soft.
	AttributeOriginJob AttributeOrigin = iota
	// AttributeOriginHeader is a value set by a `:name: value` entry in
	// the document header. Header attributes may override job attributes
	// only if the job attribute was soft, and are themselves locked
	// against the body unless declared soft.
	AttributeOriginHeader
	// AttributeOriginBody is a value set by `:name: value` in the
	// document body, after the header has ended.
	AttributeOriginBody
	// AttributeOriginBuiltin is a value computed by the pipeline itself
	// (docfile, docdir, docname, backend, doctype, ...), never user-set.
	AttributeOriginBuiltin
)

// AttributeValue holds one attribute's current value and the bookkeeping
// needed to enforce override precedence.
type AttributeValue struct {
	Name   string
	Value  string
	Set    bool // false means explicitly unset (`:name!:`)
	Origin AttributeOrigin
	// Soft, when true, means a later stage is permitted to override this
	// value despite its Origin; declared with a trailing `@` on the value,
	// e.g. `:toc: macro@`. A leading `@` on the value is not recognised.
	Soft bool
}

// AttributeTable is the mutable, precedence-aware attribute namespace
// threaded through one parse: job attributes seed it, the header layer
// may extend or override soft entries, and the body layer may do the
// same relative to the header's entries.
type AttributeTable struct {
	values map[string]AttributeValue
}

// NewAttributeTable creates a table seeded with job-level attributes. Keys
// in job are normalized to lower-case per AsciiDoc attribute-name rules.
func NewAttributeTable(job map[string]string) *AttributeTable {
	t := &AttributeTable{values: make(map[string]AttributeValue, len(job))}
	for name, value := range job {
		t.values[normalizeAttrName(name)] = AttributeValue{
			Name:   normalizeAttrName(name),
			Value:  stripSoftMarker(value),
			Set:    true,
			Origin: AttributeOriginJob,
			Soft:   isSoftValue(value),
		}
	}

	return t
}

func normalizeAttrName(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}

	return string(b)
}

func isSoftValue(value string) bool {
	return len(value) > 0 && value[len(value)-1] == '@'
}

func stripSoftMarker(value string) string {
	if isSoftValue(value) {
		return value[:len(value)-1]
	}

	return value
}

// Get returns the current value of name and whether it is set.
func (t *AttributeTable) Get(name string) (string, bool) {
	v, ok := t.values[normalizeAttrName(name)]
	if !ok || !v.Set {
		return "", false
	}

	return v.Value, true
}

// Set applies a `:name: value` (or `:name!:` when unset is true) entry
// from the given origin. It reports whether the assignment took effect;
// a false return means an earlier, locked origin already owns the name
// and the entry is ignored (callers surface this as a diagnostic, not an
// error).
func (t *AttributeTable) Set(name, value string, unset bool, origin AttributeOrigin) bool {
	key := normalizeAttrName(name)
	existing, ok := t.values[key]
	if ok && !canOverride(existing.Origin, existing.Soft, origin) {
		return false
	}

	t.values[key] = AttributeValue{
		Name:   key,
		Value:  stripSoftMarker(value),
		Set:    !unset,
		Origin: origin,
		Soft:   isSoftValue(value),
	}

	return true
}

// canOverride reports whether a value set at existingOrigin (with the
// given softness) may be replaced by one arriving from newOrigin.
// Builtins are never overridable from header/body. Job attributes can
// only be overridden if the job value was declared soft, and header
// attributes can only be overridden by the body if the header value was
// declared soft. Otherwise a value can only be overridden by a strictly
// later stage.
func canOverride(existingOrigin AttributeOrigin, existingSoft bool, newOrigin AttributeOrigin) bool {
	if existingOrigin == AttributeOriginBuiltin {
		return false
	}
	if existingOrigin == AttributeOriginJob {
		return existingSoft
	}
	if existingOrigin == AttributeOriginHeader && newOrigin == AttributeOriginBody {
		return existingSoft
	}
	if newOrigin <= existingOrigin {
		return false
	}

	return true
}

// SetBuiltin assigns a pipeline-computed attribute unconditionally; used
// for docfile, docdir, docname, backend, doctype and similar values the
// orchestrator derives from the parse inputs, not from document text.
func (t *AttributeTable) SetBuiltin(name, value string) {
	key := normalizeAttrName(name)
	t.values[key] = AttributeValue{Name: key, Value: value, Set: true, Origin: AttributeOriginBuiltin}
}

// Clone returns a deep copy, used so a preprocessor conditional branch
// that is ultimately discarded (the false arm of ifdef/ifndef) cannot
// leak attribute mutations into the surviving branch's table.
func (t *AttributeTable) Clone() *AttributeTable {
	clone := &AttributeTable{values: make(map[string]AttributeValue, len(t.values))}
	for k, v := range t.values {
		clone.values[k] = v
	}

	return clone
}

// Names returns every attribute name currently tracked, set or unset.
func (t *AttributeTable) Names() []string {
	names := make([]string, 0, len(t.values))
	for name := range t.values {
		names = append(names, name)
	}

	return names
}
