package pipeline

import (
	"github.com/pkg/errors"
	"github.com/project-copacetic/edgedriver-manifest/pkg/index"
	"github.com/project-copacetic/edgedriver-manifest/pkg/manifest"
	"github.com/project-copacetic/edgedriver-manifest/pkg/transport"
	"github.com/project-copacetic/edgedriver-manifest/pkg/workspace"
)

// Error kinds reported to the operator.
const (
	KindTransport     = "TransportError"
	KindManifest      = "ManifestFormatError"
	KindEmptyManifest = "UnexpectedEmptyManifestError"
	KindIO            = "IoError"
	KindUnknown       = "Error"
)

// Kind classifies an error returned by Run.
func Kind(err error) string {
	var (
		transportErr *transport.Error
		formatErr    *manifest.FormatError
		ioErr        *workspace.IOError
	)

	switch {
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &formatErr):
		return KindManifest
	case errors.Is(err, index.ErrUnexpectedEmptyManifest):
		return KindEmptyManifest
	case errors.As(err, &ioErr):
		return KindIO
	default:
		return KindUnknown
	}
}
