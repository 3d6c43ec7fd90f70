package manifest

import "fmt"

// FormatError is returned when a document is not a recognizable blob listing.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized manifest format: %v", e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// NameError explains why a blob name has no version/platform.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("unknown version/platform format %q: %s", e.Name, e.Reason)
}
