package confloader

import (
	"errors"
	"fmt"
)

// ErrFileNotFound matches errors reporting a missing configuration file
// that was explicitly named.
var ErrFileNotFound = errors.New("configuration file not found")

// PathSource says where a configuration file path came from.
type PathSource string

const (
	// SourceArgument is a path passed to the loader.
	SourceArgument PathSource = "argument"
	// SourceEnvironment is a path read from the path environment variable.
	SourceEnvironment PathSource = "environment"
	// SourceDefault is the default path.
	SourceDefault PathSource = "default"
)

// FileNotFoundError is returned when an explicitly named configuration
// file does not exist.
type FileNotFoundError struct {
	Path   string
	Source PathSource
	Err    error
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// Is reports whether target is ErrFileNotFound.
func (e *FileNotFoundError) Is(target error) bool {
	return target == ErrFileNotFound
}

// Unwrap returns the underlying stat error.
func (e *FileNotFoundError) Unwrap() error {
	return e.Err
}
