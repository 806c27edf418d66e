package fsutils

import (
	"path"
	"strings"
)

// Paths handled here are slash separated and absolute. A trailing "/" marks a directory.

// DirForm returns p with exactly one trailing separator.
func DirForm(p string) string {
	if p == "" {
		return "/"
	}
	return strings.TrimRight(p, "/") + "/"
}

func splitComponents(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
}

// AppendFolderPath appends a root-relative folder path to base and returns it in directory form.
// An empty path or "/" yields base itself.
func AppendFolderPath(base, relPath string) string {
	components := splitComponents(relPath)
	if len(components) == 0 {
		return DirForm(base)
	}
	return DirForm(base) + strings.Join(components, "/") + "/"
}

// AppendFilePath appends a root-relative file path to base.
// It returns false for an empty path or "/", which cannot name a file.
func AppendFilePath(base, relPath string) (string, bool) {
	components := splitComponents(relPath)
	if len(components) == 0 {
		return "", false
	}
	return DirForm(base) + strings.Join(components, "/"), true
}

// RelativeTo returns p relative to root, always starting with "/".
// The root itself is "/". Trailing separators are not kept.
// It returns false when p is not inside root.
func RelativeTo(root, p string) (string, bool) {
	root = DirForm(path.Clean(root))
	cleaned := path.Clean(p)
	if DirForm(cleaned) == root {
		return "/", true
	}
	if !strings.HasPrefix(cleaned, root) {
		return "", false
	}
	return "/" + strings.TrimPrefix(cleaned, root), true
}

// ParentDir returns the directory form of the parent of p.
func ParentDir(p string) string {
	trimmed := strings.TrimRight(p, "/")
	if trimmed == "" {
		return "/"
	}
	return DirForm(path.Dir(trimmed))
}

// IsWithin reports whether p equals root or lies below it.
func IsWithin(root, p string) bool {
	_, ok := RelativeTo(root, p)
	return ok
}
