package service

import (
	"strings"

	"pdf-uploader/internal/domain"
)

// IsPDF accepts a candidate when either its declared media type or its name
// says PDF. One signal is enough. File contents are not inspected.
func IsPDF(f *domain.File) bool {
	if f == nil {
		return false
	}
	if f.MediaType == domain.PDFMediaType {
		return true
	}
	return strings.HasSuffix(strings.ToLower(f.Name), domain.PDFExtension)
}
