package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		isDir    bool
		ext      string
		expected KindType
	}{
		{"folder_wins_over_extension", true, "pdf", KindGenericFolder},
		{"pdf", false, "pdf", KindPDF},
		{"upper_case", false, "PDF", KindPDF},
		{"with_dot", false, ".docx", KindWord},
		{"doc", false, "doc", KindWord},
		{"xls", false, "xls", KindExcel},
		{"xlsx", false, "XLSX", KindExcel},
		{"png", false, "png", KindPNG},
		{"jpg", false, "jpg", KindJPG},
		{"jpeg", false, "jpeg", KindJPG},
		{"mov", false, "mov", KindMOV},
		{"mp4", false, "mp4", KindMP4},
		{"m4v", false, "m4v", KindMP4},
		{"gif_is_generic_image", false, "gif", KindGenericImage},
		{"webm_is_generic_video", false, "webm", KindGenericVideo},
		{"text", false, "txt", KindGenericFile},
		{"no_extension", false, "", KindGenericFile},
		{"unknown", false, "zzz", KindGenericFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind := Classify(tt.isDir, 3, 42, tt.ext)
			assert.Equal(t, tt.expected, kind.Type)
			if tt.isDir {
				assert.Equal(t, 3, kind.ItemCount)
			} else {
				assert.Equal(t, int64(42), kind.Size)
			}
		})
	}
}

func TestClassify_MimeFallback(t *testing.T) {
	old := mimeTypeByExtension
	defer func() { mimeTypeByExtension = old }()

	mimeTypeByExtension = func(ext string) string {
		switch ext {
		case ".raw1":
			return "image/x-raw"
		case ".clip":
			return "video/x-clip"
		}
		return ""
	}
	assert.Equal(t, KindGenericImage, Classify(false, 0, 1, "raw1").Type)
	assert.Equal(t, KindGenericVideo, Classify(false, 0, 1, "clip").Type)
	assert.Equal(t, KindGenericFile, Classify(false, 0, 1, "bin").Type)
}

func TestKind_SizeForDisplay(t *testing.T) {
	value, unit := FileKind(KindPDF, 12_300_000).SizeForDisplay()
	assert.Equal(t, "12.3", value)
	assert.Equal(t, "MB", unit)

	value, unit = FolderKind(10).SizeForDisplay()
	assert.Empty(t, value)
	assert.Empty(t, unit)

	value, unit = FileKind(KindRemoteFile, 100).SizeForDisplay()
	assert.Empty(t, value)
	assert.Empty(t, unit)
}

func TestKind_Predicates(t *testing.T) {
	assert.True(t, FolderKind(0).IsFolder())
	assert.True(t, Kind{Type: KindRemoteFolder}.IsFolder())
	assert.True(t, Kind{Type: KindRemoteFolder}.IsRemote())
	assert.False(t, FileKind(KindGenericFile, 1).IsFolder())
	assert.True(t, FileKind(KindMP4, 1).IsPreviewable())
	assert.False(t, FileKind(KindGenericImage, 1).IsPreviewable())
	assert.Equal(t, "excel", FileKind(KindExcel, 1).String())
	assert.Equal(t, "unknown", KindType(100).String())
}

func TestSpecialize(t *testing.T) {
	assert.Equal(t, FileKind(KindJPG, 5), Specialize(FileKind(KindGenericImage, 5), "JPEG"))
	assert.Equal(t, FileKind(KindGenericImage, 5), Specialize(FileKind(KindGenericImage, 5), "gif"))
	assert.Equal(t, FolderKind(2), Specialize(FolderKind(2), "pdf"))
	assert.Equal(t, Kind{Type: KindRemoteFile, Size: 1}, Specialize(Kind{Type: KindRemoteFile, Size: 1}, "pdf"))
}
