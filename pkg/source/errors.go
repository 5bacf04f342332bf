package source

import "errors"

var (
	ErrInvalidURI         = errors.New("source: invalid s3 uri")
	ErrNotFound           = errors.New("source: not found")
	ErrBucketNotFound     = errors.New("source: bucket not found")
	ErrAccessDenied       = errors.New("source: access denied")
	ErrServiceUnavailable = errors.New("source: service temporarily unavailable")
	ErrFailedToLoadConfig = errors.New("source: failed to load AWS config")
	ErrFailedToOpen       = errors.New("source: failed to open")
	ErrLineTooLong        = errors.New("source: line exceeds maximum length")
)
