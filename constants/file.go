package constants

import "strings"

// DocumentCategory is the coarse category derived from the file extension.
type DocumentCategory string

const (
	CategoryPDF     DocumentCategory = "pdf-document"
	CategoryImage   DocumentCategory = "image-document"
	CategoryWord    DocumentCategory = "word-document"
	CategoryUnknown DocumentCategory = "unknown"
)

// OCRSupportedExtensions holds the extensions eligible for synchronous OCR.
var OCRSupportedExtensions = map[string]struct{}{
	"pdf":  {},
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"tiff": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// CategorizeExtension maps a normalized file extension to its document
// category. Unrecognized extensions map to CategoryUnknown.
func CategorizeExtension(ext string) DocumentCategory {
	switch NormalizeExt(ext) {
	case "pdf":
		return CategoryPDF
	case "jpg", "jpeg", "png", "tiff":
		return CategoryImage
	case "doc", "docx":
		return CategoryWord
	}
	return CategoryUnknown
}

// SupportedForOCR reports whether the extension is in the synchronous
// OCR set.
func SupportedForOCR(ext string) bool {
	_, ok := OCRSupportedExtensions[NormalizeExt(ext)]
	return ok
}
