package services

import "errors"

var (
	// ErrEmptyFile is returned when the uploaded resume has no bytes.
	ErrEmptyFile = errors.New("empty file")
	// ErrUnsupportedFormat is returned for file names not ending in .pdf or .docx.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrNoText is returned when nothing usable could be extracted from the resume.
	ErrNoText = errors.New("no text extracted")
	// ErrCorruptDocument wraps parser failures (damaged, encrypted or truncated files).
	ErrCorruptDocument = errors.New("corrupt document")
	// ErrMalformedScore is returned when the model output is not the expected JSON object.
	ErrMalformedScore = errors.New("malformed score response")
)
