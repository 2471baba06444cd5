package asciidoc

import (
	"bytes"
	"unicode/utf16"
)

// SafeMode orders how much I/O the preprocessor is permitted to perform
// on behalf of an `include::` directive, from least to most restrictive.
type SafeMode uint8

const (
	SafeModeUnsafe SafeMode = iota
	SafeModeSafe
	SafeModeServer
	SafeModeSecure
)

// ParseSafeMode parses one of the four safe-mode names accepted on the
// command line and in job configuration.
func ParseSafeMode(s string) (SafeMode, bool) {
	switch s {
	case "unsafe":
		return SafeModeUnsafe, true
	case "safe":
		return SafeModeSafe, true
	case "server":
		return SafeModeServer, true
	case "secure":
		return SafeModeSecure, true
	default:
		return SafeModeSafe, false
	}
}

// ResolveTargetKind distinguishes a plain file-path include target from
// a URI target (http(s), or a data URI).
type ResolveTargetKind uint8

const (
	ResolveTargetFilePath ResolveTargetKind = iota
	ResolveTargetURI
)

// ResolveTarget is the parsed form of an `include::<target>` directive's
// target, handed to the IncludeResolver.
type ResolveTarget struct {
	Kind  ResolveTargetKind
	Value string
}

// ResolveErrorKind enumerates the IncludeResolver contract's error
// cases.
type ResolveErrorKind uint8

const (
	ResolveErrNotFound ResolveErrorKind = iota
	ResolveErrIo
	ResolveErrUriReadNotSupported
	ResolveErrUriRead
	ResolveErrBaseDirRequired
	ResolveErrCaseMismatch
)

// ResolveError is returned by an IncludeResolver when it cannot satisfy
// a request.
type ResolveError struct {
	Kind       ResolveErrorKind
	Message    string
	Suggestion *string
}

func (e *ResolveError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	switch e.Kind {
	case ResolveErrNotFound:
		return "include target not found"
	case ResolveErrIo:
		return "i/o error resolving include target"
	case ResolveErrUriReadNotSupported:
		return "reading URI include targets is not supported"
	case ResolveErrUriRead:
		return "error reading URI include target"
	case ResolveErrBaseDirRequired:
		return "include target requires a base directory"
	case ResolveErrCaseMismatch:
		return "include target differs from the resolved path only in case"
	default:
		return "include resolve error"
	}
}

// IncludeContext describes the circumstances of one `include::` request:
// the file it appears in, whether that file is the primary input, the
// resolver's base directory (if any), and the safe mode gating what the
// resolver is allowed to do.
type IncludeContext struct {
	SourceFile string
	IsPrimary  bool
	BaseDir    string
	SafeMode   SafeMode
}

// IncludeResolver is the injected collaborator that turns an include
// target into bytes. Implementations live outside the core (filesystem,
// embedded-asset, HTTP); the core only calls this interface and applies
// the resulting bytes.
type IncludeResolver interface {
	Resolve(target ResolveTarget, ctx IncludeContext) ([]byte, error)
	BaseDir() (string, bool)
}

// NoopIncludeResolver rejects every include with NotFound; it is the
// zero-value resolver used when a caller supplies none, so a document
// with no includes still parses without a nil-pointer dependency.
type NoopIncludeResolver struct{}

func (NoopIncludeResolver) Resolve(ResolveTarget, IncludeContext) ([]byte, error) {
	return nil, &ResolveError{Kind: ResolveErrNotFound, Message: "no include resolver configured"}
}

func (NoopIncludeResolver) BaseDir() (string, bool) { return "", false }

// normalizeIncludedBytes applies the preprocessor's include
// normalisation rule: strip a UTF-8 BOM, convert UTF-16 LE/BE to UTF-8,
// and ensure a trailing newline.
func normalizeIncludedBytes(b []byte) []byte {
	b = decodeToUTF8(b)
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	if len(b) == 0 || b[len(b)-1] != '\n' {
		b = append(b, '\n')
	}

	return b
}

func decodeToUTF8(b []byte) []byte {
	switch {
	case len(b) >= 2 && b[0] == 0xFF && b[1] == 0xFE:
		return utf16ToUTF8(b[2:], false)
	case len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF:
		return utf16ToUTF8(b[2:], true)
	default:
		return b
	}
}

func utf16ToUTF8(b []byte, bigEndian bool) []byte {
	n := len(b) / 2
	units := make([]uint16, n)
	for i := 0; i < n; i++ {
		if bigEndian {
			units[i] = uint16(b[2*i])<<8 | uint16(b[2*i+1])
		} else {
			units[i] = uint16(b[2*i+1])<<8 | uint16(b[2*i])
		}
	}

	return []byte(string(utf16.Decode(units)))
}

// includeAttrs holds the parsed contents of an include directive's
// bracketed attribute list that the preprocessor itself understands
// (leveloffset/lines/tags/indent); any other entries are ignored here.
type includeAttrs struct {
	lines       []lineRange
	tags        []string
	levelOffset *int
	indent      *int
}

type lineRange struct{ start, end int } // end == -1 means "to EOF"

// selectLines filters src's lines (1-based) to those selected by ranges;
// a nil/empty ranges selects every line.
func selectLines(lines []string, ranges []lineRange) []string {
	if len(ranges) == 0 {
		return lines
	}
	var out []string
	for i, line := range lines {
		n := i + 1
		for _, r := range ranges {
			if n >= r.start && (r.end == -1 || n <= r.end) {
				out = append(out, line)

				break
			}
		}
	}

	return out
}
