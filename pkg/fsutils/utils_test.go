package fsutils

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDirExists(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("exists", func(t *testing.T) {
		exists, err := DirExists(tmpDir)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("not_exists", func(t *testing.T) {
		exists, err := DirExists(filepath.Join(tmpDir, "non_existent"))
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("is_file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "file.txt")
		assert.NoError(t, os.WriteFile(filePath, []byte("test"), 0o644))

		exists, err := DirExists(filePath)
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("stat_error", func(t *testing.T) {
		oldStat := osStat
		defer func() { osStat = oldStat }()
		osStat = func(string) (os.FileInfo, error) {
			return nil, os.ErrPermission
		}
		_, err := DirExists(tmpDir)
		assert.IsError(t, err, os.ErrPermission)
	})
}

func TestExpandHome(t *testing.T) {
	oldHome := osUserHomeDir
	defer func() { osUserHomeDir = oldHome }()
	osUserHomeDir = func() (string, error) { return "/home/user", nil }

	for _, tt := range []struct {
		in, expected string
	}{
		{"", ""},
		{"/some/path", "/some/path"},
		{"~", "/home/user"},
		{"~/abc", filepath.Join("/home/user", "abc")},
		{"~abc", "~abc"},
	} {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExpandHome(tt.in))
		})
	}

	t.Run("no_home", func(t *testing.T) {
		osUserHomeDir = func() (string, error) { return "", errors.New("no home") }
		assert.Equal(t, "~/abc", ExpandHome("~/abc"))
	})
}

func TestReadJSONFile(t *testing.T) {
	type settings struct {
		Root string `json:"root"`
	}
	dir := t.TempDir()
	write := func(t *testing.T, name, content string) string {
		t.Helper()
		p := filepath.Join(dir, name)
		assert.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		return p
	}

	t.Run("empty_path", func(t *testing.T) {
		var s settings
		assert.NoError(t, ReadJSONFile("", false, &s))
		assert.Error(t, ReadJSONFile("", true, &s))
	})

	t.Run("not_found", func(t *testing.T) {
		var s settings
		missing := filepath.Join(dir, "missing.json")
		assert.NoError(t, ReadJSONFile(missing, false, &s))
		assert.IsError(t, ReadJSONFile(missing, true, &s), os.ErrNotExist)
	})

	t.Run("success", func(t *testing.T) {
		s := settings{Root: "default"}
		assert.NoError(t, ReadJSONFile(write(t, "ok.json", `{"root": "/data"}`), true, &s))
		assert.Equal(t, "/data", s.Root)
	})

	t.Run("empty_file", func(t *testing.T) {
		s := settings{Root: "default"}
		assert.NoError(t, ReadJSONFile(write(t, "empty.json", ""), true, &s))
		assert.Equal(t, "default", s.Root)
	})

	t.Run("unknown_key", func(t *testing.T) {
		var s settings
		err := ReadJSONFile(write(t, "typo.json", `{"rot": "/data"}`), true, &s)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "typo.json")
	})

	t.Run("invalid_json", func(t *testing.T) {
		var s settings
		assert.Error(t, ReadJSONFile(write(t, "broken.json", `{invalid}`), true, &s))
	})
}

type mockDecoder struct {
	err error
}

func (m mockDecoder) Decode(any) error {
	return m.err
}

func TestDecodeFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "data")
	assert.NoError(t, os.WriteFile(p, nil, 0o644))

	decodeErr := errors.New("decode failed")
	err := DecodeFile(p, true, nil, func(r io.Reader) Decoder {
		return mockDecoder{err: decodeErr}
	})
	assert.IsError(t, err, decodeErr)

	t.Run("open_error", func(t *testing.T) {
		oldOpen := osOpen
		defer func() { osOpen = oldOpen }()
		osOpen = func(string) (*os.File, error) {
			return nil, os.ErrPermission
		}
		assert.IsError(t, DecodeFile(p, false, nil, nil), os.ErrPermission)
	})
}

func TestExists(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("dir", func(t *testing.T) {
		exists, err := Exists(tmpDir)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "a.txt")
		assert.NoError(t, os.WriteFile(filePath, []byte("a"), 0o644))
		exists, err := Exists(filePath)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("dangling_symlink", func(t *testing.T) {
		link := filepath.Join(tmpDir, "link")
		assert.NoError(t, os.Symlink(filepath.Join(tmpDir, "gone"), link))
		exists, err := Exists(link)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("missing", func(t *testing.T) {
		exists, err := Exists(filepath.Join(tmpDir, "missing"))
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("lstat_error", func(t *testing.T) {
		oldLstat := osLstat
		defer func() { osLstat = oldLstat }()
		osLstat = func(string) (os.FileInfo, error) {
			return nil, os.ErrPermission
		}
		_, err := Exists(tmpDir)
		assert.Error(t, err)
	})
}
