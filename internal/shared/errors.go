package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrSongNotFound    = fmt.Errorf("song not found")
	ErrLibraryNotFound = fmt.Errorf("library not found")
	ErrDuplicateSong   = fmt.Errorf("song already exists")
	ErrDatabase        = fmt.Errorf("database error")

	// Input validation errors
	ErrInvalidInput       = fmt.Errorf("invalid input")
	ErrMissingArgument    = fmt.Errorf("missing required argument")
	ErrInvalidArgument    = fmt.Errorf("invalid argument")
	ErrInvalidFlag        = fmt.Errorf("invalid flag value")
	ErrUnsupportedFormat  = fmt.Errorf("unsupported format")
	ErrUnsupportedVersion = fmt.Errorf("unsupported backup version")

	ErrTimeout = fmt.Errorf("operation timed out")
)
