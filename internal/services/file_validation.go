package services

import (
	"fmt"
	"mime"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"lawflow/internal/domain"
)

// DefaultMaxUploadBytes is the upload limit when none is configured.
const DefaultMaxUploadBytes int64 = 50 << 20

const maxFilenameLength = 255

// allowedMimeTypes maps each accepted declared type to its file extensions.
var allowedMimeTypes = map[string][]string{
	"application/pdf":    {".pdf"},
	"application/msword": {".doc"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   {".docx"},
	"application/vnd.ms-excel": {".xls"},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         {".xlsx"},
	"application/vnd.ms-powerpoint": {".ppt"},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {".pptx"},
	"text/plain": {".txt"},
	"text/csv":   {".csv"},

	"image/jpeg":    {".jpg", ".jpeg"},
	"image/png":     {".png"},
	"image/gif":     {".gif"},
	"image/webp":    {".webp"},
	"image/svg+xml": {".svg"},
	"image/tiff":    {".tiff", ".tif"},

	"application/zip":              {".zip"},
	"application/x-rar-compressed": {".rar"},
	"application/x-7z-compressed":  {".7z"},
}

// sniffFamilies groups types whose detected content may legitimately differ
// from the declared type, such as an OOXML document sniffed as a plain zip.
var sniffFamilies = map[string]string{
	"application/zip": "zip",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   "zip",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         "zip",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": "zip",
	"application/x-ole-storage":     "ole",
	"application/msword":            "ole",
	"application/vnd.ms-excel":      "ole",
	"application/vnd.ms-powerpoint": "ole",
	"text/plain":                    "text",
	"text/csv":                      "text",
}

// normalizeMime strips parameters and lower-cases a content type.
func normalizeMime(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func sniffFamily(mt string) string {
	if f, ok := sniffFamilies[mt]; ok {
		return f
	}
	if strings.HasPrefix(mt, "text/") {
		return "text"
	}
	return ""
}

// validateUpload checks size, declared type, extension and sniffed content.
// It returns the normalized declared MIME type.
func validateUpload(u domain.FileUpload, maxBytes int64) (string, error) {
	size := int64(len(u.Content))
	if size > maxBytes {
		return "", fmt.Errorf("%w: maximum size is %dMB", domain.ErrFileTooLarge, maxBytes>>20)
	}
	if size == 0 {
		return "", domain.ErrEmptyFile
	}

	declared := normalizeMime(u.ContentType)
	exts, ok := allowedMimeTypes[declared]
	if !ok {
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFileType, u.ContentType)
	}
	ext := strings.ToLower(filepath.Ext(u.Filename))
	if !slices.Contains(exts, ext) {
		return "", fmt.Errorf("%w: extension %q does not match %s", domain.ErrUnsupportedFileType, ext, declared)
	}
	if !contentMatches(declared, u.Content) {
		return "", fmt.Errorf("%w: content does not look like %s", domain.ErrUnsupportedFileType, declared)
	}
	return declared, nil
}

// contentMatches reports whether the sniffed type of content is declared, one
// of its ancestors, or in the same family.
func contentMatches(declared string, content []byte) bool {
	want := sniffFamily(declared)
	for m := mimetype.Detect(content); m != nil; m = m.Parent() {
		if m.Is(declared) {
			return true
		}
		if want != "" && sniffFamily(normalizeMime(m.String())) == want {
			return true
		}
	}
	return false
}

// SafeFilename replaces path separators and parent references and caps the
// length at 255 bytes, keeping the extension.
func SafeFilename(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: missing filename", domain.ErrInvalidInput)
	}
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	safe = strings.ReplaceAll(safe, "..", "_")
	if len(safe) <= maxFilenameLength {
		return safe, nil
	}
	ext := filepath.Ext(safe)
	if len(ext) >= maxFilenameLength {
		ext = ""
	}
	stem := safe[:maxFilenameLength-len(ext)]
	for !utf8.ValidString(stem) {
		stem = stem[:len(stem)-1]
	}
	return stem + ext, nil
}
