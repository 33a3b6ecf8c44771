package document

import "errors"

var (
	// ErrNoDocumentary indicates the project root has no documentary folder.
	ErrNoDocumentary = errors.New("no documentary folder")
	// ErrTemplateNotFound indicates a template file or folder does not exist.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrNotDocumented indicates a template has no documentation directory.
	ErrNotDocumented = errors.New("not documented")
	// ErrWriteOutput indicates a documented template could not be written.
	ErrWriteOutput = errors.New("write output")
	// ErrInvalidConfig indicates an invalid configuration value.
	ErrInvalidConfig = errors.New("invalid config")
)
