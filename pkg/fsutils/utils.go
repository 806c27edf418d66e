package fsutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Decoder fills o from an input stream.
type Decoder interface {
	Decode(o any) error
}

var osOpen = os.Open
var osStat = os.Stat
var osLstat = os.Lstat
var osUserHomeDir = os.UserHomeDir

// ReadJSONFile decodes a settings file into o. Keys o does not declare are rejected.
// An empty file leaves o untouched.
func ReadJSONFile(filePath string, required bool, o any) error {
	return DecodeFile(filePath, required, o, func(r io.Reader) Decoder {
		decoder := json.NewDecoder(r)
		decoder.DisallowUnknownFields()
		return decoder
	})
}

// DecodeFile opens filePath and decodes it with a decoder from newDecoder.
// A missing file is an error only when required is true.
func DecodeFile(filePath string, required bool, o any, newDecoder func(r io.Reader) Decoder) error {
	if filePath == "" {
		if required {
			return errors.New("file path is empty")
		}
		return nil
	}
	file, err := osOpen(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return nil
		}
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			zap.L().Warn("failed to close file", zap.String("path", filePath), zap.Error(err))
		}
	}()
	if err = newDecoder(file).Decode(o); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	return nil
}

// DirExists reports whether path is an existing directory.
func DirExists(path string) (bool, error) {
	info, err := osStat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// Exists reports whether anything (file, dir or dangling symlink) occupies the path.
func Exists(path string) (bool, error) {
	_, err := osLstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExpandHome expands a leading ~ to the user's home directory.
// The path is returned unchanged when the home directory is unknown.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := osUserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
}
