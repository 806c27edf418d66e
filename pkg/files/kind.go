package files

import (
	"mime"
	"strings"

	"github.com/filetug/twinpane/pkg/fsutils"
)

type KindType int

const (
	KindGenericFolder KindType = iota
	KindGenericFile
	KindGenericImage
	KindGenericVideo
	KindPDF
	KindWord
	KindExcel
	KindPNG
	KindJPG
	KindMOV
	KindMP4
	KindRemoteFolder
	KindRemoteFile
)

var kindTypeNames = map[KindType]string{
	KindGenericFolder: "folder",
	KindGenericFile:   "file",
	KindGenericImage:  "image",
	KindGenericVideo:  "video",
	KindPDF:           "pdf",
	KindWord:          "word",
	KindExcel:         "excel",
	KindPNG:           "png",
	KindJPG:           "jpg",
	KindMOV:           "mov",
	KindMP4:           "mp4",
	KindRemoteFolder:  "remote-folder",
	KindRemoteFile:    "remote-file",
}

func (t KindType) String() string {
	if name, ok := kindTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Kind is the classification of an entry plus its size metadata.
// Folders carry ItemCount, files carry Size.
type Kind struct {
	Type      KindType
	Size      int64
	ItemCount int
}

func FolderKind(itemCount int) Kind {
	return Kind{Type: KindGenericFolder, ItemCount: itemCount}
}

func FileKind(t KindType, size int64) Kind {
	return Kind{Type: t, Size: size}
}

func (k Kind) IsFolder() bool {
	return k.Type == KindGenericFolder || k.Type == KindRemoteFolder
}

func (k Kind) IsRemote() bool {
	return k.Type == KindRemoteFolder || k.Type == KindRemoteFile
}

// IsSized reports whether the kind has a concrete local byte size.
func (k Kind) IsSized() bool {
	return !k.IsFolder() && !k.IsRemote()
}

// IsPreviewable reports whether a viewer for the concrete document type exists.
func (k Kind) IsPreviewable() bool {
	switch k.Type {
	case KindPDF, KindWord, KindExcel, KindPNG, KindJPG, KindMOV, KindMP4:
		return true
	default:
		return false
	}
}

// SizeForDisplay returns the number and unit parts, or empty strings for kinds without a size.
func (k Kind) SizeForDisplay() (value, unit string) {
	if !k.IsSized() {
		return "", ""
	}
	return fsutils.SizeForDisplay(k.Size)
}

func (k Kind) String() string {
	return k.Type.String()
}

// Extensions with a dedicated kind. Keys are lower case, without the dot.
var fileExtKinds = map[string]KindType{
	"pdf":  KindPDF,
	"doc":  KindWord,
	"docx": KindWord,
	"xls":  KindExcel,
	"xlsx": KindExcel,
	"png":  KindPNG,
	"jpg":  KindJPG,
	"jpeg": KindJPG,
	"mov":  KindMOV,
	"mp4":  KindMP4,
	"m4v":  KindMP4,
}

// Media extensions recognised even when the platform MIME table does not know them.
var fileExtCategories = map[string]KindType{
	"gif":  KindGenericImage,
	"bmp":  KindGenericImage,
	"tiff": KindGenericImage,
	"tif":  KindGenericImage,
	"webp": KindGenericImage,
	"heic": KindGenericImage,
	"svg":  KindGenericImage,
	"webm": KindGenericVideo,
	"avi":  KindGenericVideo,
	"mkv":  KindGenericVideo,
	"mpg":  KindGenericVideo,
	"mpeg": KindGenericVideo,
}

var mimeTypeByExtension = mime.TypeByExtension

// Classify turns raw listing metadata into a Kind.
// ext may be given with or without the leading dot and in any case.
func Classify(isDir bool, itemCount int, size int64, ext string) Kind {
	if isDir {
		return FolderKind(itemCount)
	}
	return FileKind(classifyExtension(ext), size)
}

func classifyExtension(ext string) KindType {
	ext = normalizeExt(ext)
	if ext == "" {
		return KindGenericFile
	}
	if t, ok := fileExtKinds[ext]; ok {
		return t
	}
	if t, ok := fileExtCategories[ext]; ok {
		return t
	}
	mimeType := mimeTypeByExtension("." + ext)
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		return KindGenericImage
	case strings.HasPrefix(mimeType, "video/"):
		return KindGenericVideo
	}
	return KindGenericFile
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Specialize re-derives the concrete kind of a local file from its extension, keeping the size.
// Folders and remote kinds are returned unchanged.
func Specialize(k Kind, ext string) Kind {
	if !k.IsSized() {
		return k
	}
	if t, ok := fileExtKinds[normalizeExt(ext)]; ok {
		return FileKind(t, k.Size)
	}
	return k
}
