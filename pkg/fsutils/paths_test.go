package fsutils

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDirForm(t *testing.T) {
	assert.Equal(t, "/", DirForm(""))
	assert.Equal(t, "/", DirForm("/"))
	assert.Equal(t, "/a/b/", DirForm("/a/b"))
	assert.Equal(t, "/a/b/", DirForm("/a/b//"))
}

func TestAppendFolderPath(t *testing.T) {
	assert.Equal(t, "/root/", AppendFolderPath("/root", ""))
	assert.Equal(t, "/root/", AppendFolderPath("/root/", "/"))
	assert.Equal(t, "/root/a/b/", AppendFolderPath("/root/", "/a/b"))
	assert.Equal(t, "/root/a/b/", AppendFolderPath("/root", "a//b/"))
}

func TestAppendFilePath(t *testing.T) {
	_, ok := AppendFilePath("/root/", "/")
	assert.False(t, ok)
	_, ok = AppendFilePath("/root/", "")
	assert.False(t, ok)
	p, ok := AppendFilePath("/root/", "/a/b.txt")
	assert.True(t, ok)
	assert.Equal(t, "/root/a/b.txt", p)
}

func TestRelativeTo(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		p        string
		expected string
		ok       bool
	}{
		{"root_itself", "/r/", "/r/", "/", true},
		{"root_without_slash", "/r", "/r/", "/", true},
		{"file", "/r/", "/r/a/b.txt", "/a/b.txt", true},
		{"folder", "/r/", "/r/a/", "/a", true},
		{"outside", "/r/", "/other/a", "", false},
		{"sibling_prefix", "/r/", "/rr/a", "", false},
		{"root_occurs_later", "/r/", "/r/x/r/y", "/x/r/y", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, ok := RelativeTo(tt.root, tt.p)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, actual)
		})
	}
}

func TestRelativeTo_RoundTrip(t *testing.T) {
	const root = "/sandbox/docs/"
	for _, rel := range []string{"/a.txt", "/a/b/c.pdf", "/folder"} {
		abs, ok := AppendFilePath(root, rel)
		assert.True(t, ok)
		back, ok := RelativeTo(root, abs)
		assert.True(t, ok)
		assert.Equal(t, rel, back)

		folderAbs := AppendFolderPath(root, rel)
		back, ok = RelativeTo(root, folderAbs)
		assert.True(t, ok)
		assert.Equal(t, rel, back)
	}
}

func TestParentDir(t *testing.T) {
	assert.Equal(t, "/", ParentDir("/"))
	assert.Equal(t, "/", ParentDir("/a/"))
	assert.Equal(t, "/a/", ParentDir("/a/b/"))
	assert.Equal(t, "/a/", ParentDir("/a/b.txt"))
}

func TestIsWithin(t *testing.T) {
	assert.True(t, IsWithin("/r/", "/r/"))
	assert.True(t, IsWithin("/r/", "/r/x"))
	assert.False(t, IsWithin("/r/", "/"))
}
