package domain

import "errors"

var (
	ErrNotFound               = errors.New("resource not found")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrRecordNotFound         = errors.New("record not found")
	ErrUnsupportedFileType    = errors.New("unsupported file type")
	ErrFileTooLarge           = errors.New("file exceeds maximum allowed size")
	ErrInvalidFileContent     = errors.New("file content does not match its declared type")
	ErrUploadFailed           = errors.New("file upload to storage failed")
	ErrMalformedAnalysis      = errors.New("analysis output is malformed or empty")
	ErrBatchSizeExceeded      = errors.New("too many files in batch")
	ErrNoValidFiles           = errors.New("no valid files to process")
	ErrItemDescriptionMissing = errors.New("shipment item requires a description")
)
