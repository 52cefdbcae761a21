package include

import (
	"encoding/base64"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gubarz/chatmd/internal/chat"
)

const (
	BinaryPlaceholder     = "Binary file, cannot display"
	UnreadablePlaceholder = "Unreadable file, cannot display"
)

// Kind is the rendering class of an included file
type Kind int

const (
	KindText Kind = iota
	KindImage
	KindBinary
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "binary"
	}
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// Classify decides how a file is rendered from its name and raw bytes
func Classify(data []byte, name string) Kind {
	if imageExtensions[strings.ToLower(filepath.Ext(name))] {
		return KindImage
	}
	if utf8.Valid(data) {
		return KindText
	}
	return KindBinary
}

// ImageMimeType derives the mime type from the extension, so ".jpg" gives "image/jpg"
func ImageMimeType(name string) string {
	return "image/" + strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
}

// Render produces the content item for a file read from path
func Render(path string, data []byte) chat.ContentItem {
	switch Classify(data, path) {
	case KindImage:
		return chat.NewImage(ImageMimeType(path), base64.StdEncoding.EncodeToString(data))
	case KindText:
		return chat.NewText(header(path) + strings.TrimRightFunc(string(data), unicode.IsSpace))
	default:
		return chat.NewText(header(path) + BinaryPlaceholder)
	}
}

// Unreadable produces the placeholder item for a file that could not be read
func Unreadable(path string) chat.ContentItem {
	return chat.NewText(header(path) + UnreadablePlaceholder)
}

func header(path string) string {
	return "==> " + path + " <==\n"
}
