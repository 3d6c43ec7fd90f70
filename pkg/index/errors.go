package index

import "errors"

// ErrUnexpectedEmptyManifest is returned when a listing holds fewer than two
// entries, which only happens when the fetch returned a placeholder document.
var ErrUnexpectedEmptyManifest = errors.New("manifest listing is unexpectedly empty")
