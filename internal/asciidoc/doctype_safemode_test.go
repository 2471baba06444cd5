package asciidoc

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseDoctype_KnownNames(t *testing.T) {
	tests := []struct {
		name string
		want Doctype
	}{
		{"article", DoctypeArticle},
		{"book", DoctypeBook},
		{"manpage", DoctypeManpage},
		{"inline", DoctypeInline},
	}

	for _, tt := range tests {
		dt, ok := ParseDoctype(tt.name)
		assert.True(t, ok)
		assert.Equal(t, tt.want, dt)
		assert.Equal(t, tt.name, dt.String())
	}
}

func TestParseDoctype_UnknownFallsBackToArticle(t *testing.T) {
	dt, ok := ParseDoctype("bogus")
	assert.False(t, ok)
	assert.Equal(t, DoctypeArticle, dt)
}

func TestParseSafeMode_KnownNames(t *testing.T) {
	tests := []struct {
		name string
		want SafeMode
	}{
		{"unsafe", SafeModeUnsafe},
		{"safe", SafeModeSafe},
		{"server", SafeModeServer},
		{"secure", SafeModeSecure},
	}

	for _, tt := range tests {
		sm, ok := ParseSafeMode(tt.name)
		assert.True(t, ok)
		assert.Equal(t, tt.want, sm)
	}
}

func TestParseSafeMode_UnknownFallsBackToSafe(t *testing.T) {
	sm, ok := ParseSafeMode("bogus")
	assert.False(t, ok)
	assert.Equal(t, SafeModeSafe, sm)
}

// TestParse_DoctypeAttributeReflectsSettings exercises ParseDoctype end
// to end: whatever Doctype Settings carries ends up as the builtin
// "doctype" attribute Parse seeds the attribute table with.
func TestParse_DoctypeAttributeReflectsSettings(t *testing.T) {
	settings := NewSettings()
	settings.Doctype = DoctypeBook

	result := Parse([]byte("= Title\n\ncontent\n"), settings)
	assert.NotZero(t, result.Document)

	dt, ok := result.Document.Meta.Attributes.Get("doctype")
	assert.True(t, ok)
	assert.Equal(t, "book", dt)
}
