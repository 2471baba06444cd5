package jobconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/connerohnesorge/asciidork/internal/asciidoc"
	"github.com/connerohnesorge/asciidork/internal/asciidocerrs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromPath_Defaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "article", cfg.Doctype)
	assert.Equal(t, "safe", cfg.SafeMode)
	assert.Equal(t, asciidoc.DoctypeArticle, cfg.ResolvedDoctype())
	assert.Equal(t, asciidoc.SafeModeSafe, cfg.ResolvedSafeMode())
}

func TestLoadFromPath_ReadsFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "doctype: book\nsafe_mode: secure\nattributes:\n  source-highlighter: rouge\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte(content), 0o644))

	cfg, err := LoadFromPath(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, asciidoc.DoctypeBook, cfg.ResolvedDoctype())
	assert.Equal(t, asciidoc.SafeModeSecure, cfg.ResolvedSafeMode())
	assert.Equal(t, "rouge", cfg.Attributes["source-highlighter"])
}

func TestLoadFromPath_WalksUpward(t *testing.T) {
	root := t.TempDir()
	content := "doctype: manpage\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFileName), []byte(content), 0o644))

	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := LoadFromPath(nested)
	require.NoError(t, err)
	assert.Equal(t, asciidoc.DoctypeManpage, cfg.ResolvedDoctype())
}

func TestLoadFromPath_InvalidDoctype(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ConfigFileName), []byte("doctype: bogus\n"), 0o644))

	_, err := LoadFromPath(tmpDir)
	require.Error(t, err)
	var cfgErr *asciidocerrs.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}
