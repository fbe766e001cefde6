package domain

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidReference    = errors.New("referenced record does not exist")
	ErrFileTooLarge        = errors.New("file too large")
	ErrEmptyFile           = errors.New("empty file not allowed")
	ErrUnsupportedFileType = errors.New("file type not allowed")
	ErrFileContentMissing  = errors.New("file content not available")
	ErrMissingRecipient    = errors.New("client has no email address")
	ErrConflict            = errors.New("conflicting write")
)
