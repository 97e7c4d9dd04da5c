// Package pathutil converts between filesystem paths and the portable,
// project-relative slash paths stored in package descriptors.
package pathutil

import (
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// RelativePath converts fullPath into a path relative to the basePath directory.
//
// The result always uses forward slashes and may start with ".." segments when
// fullPath lies outside basePath. Percent-encoded segments of the result are
// decoded. A path on a different volume than basePath cannot be made relative
// and is returned as-is in slash form.
func RelativePath(fullPath, basePath string) string {
	rel := Rel(fullPath, basePath)
	if decoded, err := url.PathUnescape(rel); err == nil {
		return decoded
	}
	return rel
}

// Rel is RelativePath without percent-decoding. Use it for paths that name real
// files, where "%" is an ordinary character.
func Rel(fullPath, basePath string) string {
	full := Clean(fullPath)
	base := Clean(basePath)

	if !strings.EqualFold(volume(full), volume(base)) {
		return full
	}

	rel, err := filepath.Rel(filepath.FromSlash(base), filepath.FromSlash(full))
	if err != nil {
		return full
	}
	return filepath.ToSlash(rel)
}

// Clean returns p in cleaned slash form. It never decodes or otherwise alters
// the bytes of a path segment.
func Clean(p string) string {
	p = filepath.ToSlash(p)
	// Backslashes never separate on unix hosts; Unity projects edited on Windows still use them.
	p = strings.ReplaceAll(p, `\`, "/")
	return path.Clean(p)
}

// Normalize resolves p against root and returns a cleaned absolute slash path.
// Absolute inputs are only cleaned.
func Normalize(root, p string) string {
	p = Clean(p)
	if isAbs(p) {
		return p
	}
	return path.Join(Clean(root), p)
}

// IsHidden reports whether name is a hidden (dot-prefixed) entry.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// MetaPath returns the path of the companion metadata file for p.
func MetaPath(p string) string {
	return p + ".meta"
}

// Within reports whether p is root or lies below it. Both must be normalized.
func Within(p, root string) bool {
	if p == root {
		return true
	}
	return strings.HasPrefix(p, strings.TrimSuffix(root, "/")+"/")
}

func isAbs(p string) bool {
	return strings.HasPrefix(p, "/") || volume(p) != ""
}

// volume returns the drive letter prefix ("C:") of a slash path, if any.
func volume(p string) string {
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		return p[:2]
	}
	return filepath.VolumeName(filepath.FromSlash(p))
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}
