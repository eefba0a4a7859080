// Package routepath normalizes navigation targets and the base path a
// router is mounted under.
package routepath

import (
	"errors"
	"strings"
)

// Path errors.
var (
	ErrInvalidPath          = errors.New("invalid path")
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
	ErrAbsoluteURL          = errors.New("absolute URLs are not navigable")
)

// Target is a navigation target split into its parts.
type Target struct {
	// Path is the canonical path, always starting with "/".
	Path string

	// Query is the raw query string without the leading "?".
	Query string

	// Hash is the fragment without the leading "#".
	Hash string
}

// FullPath reassembles the target as path?query#hash.
func (t Target) FullPath() string {
	var b strings.Builder
	b.WriteString(t.Path)
	if t.Query != "" {
		b.WriteByte('?')
		b.WriteString(t.Query)
	}
	if t.Hash != "" {
		b.WriteByte('#')
		b.WriteString(t.Hash)
	}
	return b.String()
}

// Parse splits and canonicalizes an application-relative navigation target.
//
// Absolute URLs ("http://", "https://", "//") are rejected so a navigation
// can never leave the application. A target without a leading "/" is
// treated as rooted.
func Parse(input string) (Target, error) {
	if strings.HasPrefix(input, "http://") ||
		strings.HasPrefix(input, "https://") ||
		strings.HasPrefix(input, "//") {
		return Target{}, ErrAbsoluteURL
	}

	rest, hash, _ := strings.Cut(input, "#")
	path, query, _ := strings.Cut(rest, "?")

	canonical, err := Canonicalize(path)
	if err != nil {
		return Target{}, err
	}
	return Target{Path: canonical, Query: query, Hash: hash}, nil
}

// Canonicalize normalizes a URL path:
//   - empty becomes "/"
//   - repeated slashes collapse
//   - "." segments are dropped and ".." segments resolved
//   - a trailing slash is removed (except for root)
//
// Backslashes, NUL bytes, malformed percent escapes and ".." above root are
// rejected.
func Canonicalize(path string) (string, error) {
	if path == "" {
		return "/", nil
	}
	if strings.ContainsRune(path, '\\') {
		return "", ErrBackslashInPath
	}
	if strings.ContainsRune(path, 0) || strings.Contains(strings.ToUpper(path), "%00") {
		return "", ErrNullByteInPath
	}
	if strings.ContainsRune(path, '%') {
		if err := validatePercentEscapes(path); err != nil {
			return "", err
		}
	}

	segments := make([]string, 0, strings.Count(path, "/")+1)
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return "", ErrPathEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}
	return "/" + strings.Join(segments, "/"), nil
}

// validatePercentEscapes checks that every '%' starts a %XX hex escape.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// Segments splits a canonical path into its segments. Root has none.
func Segments(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
