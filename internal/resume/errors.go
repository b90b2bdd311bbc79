package resume

import "fmt"

// NotFoundError indicates the resume path does not exist. Fatal to the run.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resume file not found: %s", e.Path)
}

// UnsupportedFormatError indicates the resume extension is not a supported
// document type. Fatal to the run.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported resume format %q: provide a PDF or DOCX file", e.Extension)
}

// ExtractionError wraps a failure reading a supported document.
type ExtractionError struct {
	Path    string
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract text from %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to extract text from %s: %s", e.Path, e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
