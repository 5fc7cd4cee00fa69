package loader

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for use with errors.Is.
var (
	// ErrNoSuitableLoader indicates that no format handles a file suffix.
	ErrNoSuitableLoader = errors.New("no suitable loader")

	// ErrRequiredPackageNotAvailable indicates that the format for a suffix
	// was compiled out of this build.
	ErrRequiredPackageNotAvailable = errors.New("required package not available")

	// ErrIncludeCycle indicates that a file includes itself, directly or
	// through other files.
	ErrIncludeCycle = errors.New("include cycle")
)

// NoSuitableLoaderError reports a file suffix with no registered format.
type NoSuitableLoaderError struct {
	Suffix string
}

func (e *NoSuitableLoaderError) Error() string {
	if e.Suffix == "" {
		return "no loader for file without suffix"
	}
	return fmt.Sprintf("no loader for suffix %s", e.Suffix)
}

// Is reports whether target is ErrNoSuitableLoader.
func (e *NoSuitableLoaderError) Is(target error) bool {
	return target == ErrNoSuitableLoader
}

// RequiredPackageNotAvailableError reports a known format whose support
// library is not part of this build.
type RequiredPackageNotAvailableError struct {
	Format  Format
	Library string
}

func (e *RequiredPackageNotAvailableError) Error() string {
	return fmt.Sprintf("%s must be available to load %s files (built without %s support)",
		e.Library, strings.ToUpper(string(e.Format)), e.Format)
}

// Is reports whether target is ErrRequiredPackageNotAvailable.
func (e *RequiredPackageNotAvailableError) Is(target error) bool {
	return target == ErrRequiredPackageNotAvailable
}

// IncludeCycleError reports the chain of files that form an include cycle.
// The last element repeats an earlier one.
type IncludeCycleError struct {
	Chain []string
}

func (e *IncludeCycleError) Error() string {
	return "include cycle: " + strings.Join(e.Chain, " -> ")
}

// Is reports whether target is ErrIncludeCycle.
func (e *IncludeCycleError) Is(target error) bool {
	return target == ErrIncludeCycle
}
