// Package resolver provides the default, filesystem-backed
// asciidoc.IncludeResolver, built on afero so the underlying filesystem
// is swappable (a real OS filesystem in the CLI, an in-memory one in
// tests) without the core ever importing an fs package directly.
package resolver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/connerohnesorge/asciidork/internal/asciidoc"
	"github.com/spf13/afero"
)

// FileResolver resolves `include::` targets against a filesystem rooted
// at BaseDir, honoring the requesting parse's SafeMode the way
// AsciiDoctor's own safe-mode rules do: SAFE and above reject absolute
// paths and parent-directory escapes; only UNSAFE permits them.
type FileResolver struct {
	fs      afero.Fs
	baseDir string
}

// NewFileResolver returns a FileResolver rooted at baseDir, backed by
// the real OS filesystem.
func NewFileResolver(baseDir string) *FileResolver {
	return &FileResolver{fs: afero.NewOsFs(), baseDir: baseDir}
}

// NewFileResolverFS returns a FileResolver backed by an arbitrary
// afero.Fs (an afero.NewMemMapFs() in tests).
func NewFileResolverFS(fs afero.Fs, baseDir string) *FileResolver {
	return &FileResolver{fs: fs, baseDir: baseDir}
}

func (r *FileResolver) BaseDir() (string, bool) {
	return r.baseDir, r.baseDir != ""
}

// Resolve implements asciidoc.IncludeResolver.
func (r *FileResolver) Resolve(target asciidoc.ResolveTarget, ctx asciidoc.IncludeContext) ([]byte, error) {
	if target.Kind == asciidoc.ResolveTargetURI {
		return nil, &asciidoc.ResolveError{
			Kind:    asciidoc.ResolveErrUriReadNotSupported,
			Message: "reading URI include targets is not supported by the filesystem resolver",
		}
	}

	dir := ctx.BaseDir
	if dir == "" {
		dir = r.baseDir
	}
	if dir == "" {
		return nil, &asciidoc.ResolveError{Kind: asciidoc.ResolveErrBaseDirRequired}
	}

	if ctx.SafeMode >= asciidoc.SafeModeSafe {
		if filepath.IsAbs(target.Value) || strings.Contains(target.Value, "..") {
			return nil, &asciidoc.ResolveError{
				Kind:    asciidoc.ResolveErrIo,
				Message: "absolute or parent-escaping include paths are not permitted in safe mode",
			}
		}
	}

	full := target.Value
	if !filepath.IsAbs(full) {
		full = filepath.Join(dir, full)
	}

	data, err := afero.ReadFile(r.fs, full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &asciidoc.ResolveError{Kind: asciidoc.ResolveErrNotFound, Message: "include target not found: " + full}
		}

		return nil, &asciidoc.ResolveError{Kind: asciidoc.ResolveErrIo, Message: err.Error()}
	}

	return data, nil
}
