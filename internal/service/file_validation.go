package service

import (
	"bytes"
	"net/http"
	"path/filepath"
	"strings"

	"lading/internal/domain"
)

// pdfMagic is the leading byte signature of every PDF file.
var pdfMagic = []byte("%PDF")

// ValidateFile checks size, extension, and content of an upload before it is
// stored or analyzed. Returns the canonical content type for the file.
func ValidateFile(content []byte, fileName string, maxBytes int64) (string, error) {
	if int64(len(content)) > maxBytes {
		return "", domain.ErrFileTooLarge
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return "", domain.ErrUnsupportedFileType
	}
	contentType := domain.AllowedFileTypes[fileType]

	// PDFs carry a fixed signature; image types are sniffed from the header.
	if fileType == domain.FileTypePDF {
		if !bytes.HasPrefix(content, pdfMagic) {
			return "", domain.ErrInvalidFileContent
		}
		return contentType, nil
	}

	// TIFF is not in the stdlib sniffing table.
	if fileType == domain.FileTypeTIFF {
		if !bytes.HasPrefix(content, []byte("II*\x00")) && !bytes.HasPrefix(content, []byte("MM\x00*")) {
			return "", domain.ErrInvalidFileContent
		}
		return contentType, nil
	}

	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	if _, ok := domain.AllowedContentTypes[http.DetectContentType(head)]; !ok {
		return "", domain.ErrInvalidFileContent
	}
	return contentType, nil
}
