package resolver

import (
	"testing"

	"github.com/connerohnesorge/asciidork/internal/asciidoc"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileResolver_Resolve(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/docs/chapter1.adoc", []byte("= Chapter 1\n"), 0o644))

	r := NewFileResolverFS(fs, "/docs")

	data, err := r.Resolve(
		asciidoc.ResolveTarget{Kind: asciidoc.ResolveTargetFilePath, Value: "chapter1.adoc"},
		asciidoc.IncludeContext{SafeMode: asciidoc.SafeModeSafe},
	)
	require.NoError(t, err)
	assert.Equal(t, "= Chapter 1\n", string(data))
}

func TestFileResolver_NotFound(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := NewFileResolverFS(fs, "/docs")

	_, err := r.Resolve(
		asciidoc.ResolveTarget{Kind: asciidoc.ResolveTargetFilePath, Value: "missing.adoc"},
		asciidoc.IncludeContext{SafeMode: asciidoc.SafeModeSafe},
	)
	require.Error(t, err)
	var resolveErr *asciidoc.ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, asciidoc.ResolveErrNotFound, resolveErr.Kind)
}

func TestFileResolver_RejectsParentEscapeInSafeMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/secret.adoc", []byte("leaked\n"), 0o644))
	r := NewFileResolverFS(fs, "/docs")

	_, err := r.Resolve(
		asciidoc.ResolveTarget{Kind: asciidoc.ResolveTargetFilePath, Value: "../secret.adoc"},
		asciidoc.IncludeContext{SafeMode: asciidoc.SafeModeSafe},
	)
	require.Error(t, err)
}

func TestFileResolver_URITargetUnsupported(t *testing.T) {
	r := NewFileResolverFS(afero.NewMemMapFs(), "/docs")

	_, err := r.Resolve(
		asciidoc.ResolveTarget{Kind: asciidoc.ResolveTargetURI, Value: "https://example.com/x.adoc"},
		asciidoc.IncludeContext{SafeMode: asciidoc.SafeModeSafe},
	)
	require.Error(t, err)
	var resolveErr *asciidoc.ResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, asciidoc.ResolveErrUriReadNotSupported, resolveErr.Kind)
}
