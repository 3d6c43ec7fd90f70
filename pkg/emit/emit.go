package emit

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"github.com/project-copacetic/edgedriver-manifest/pkg/types"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
)

const jsonExt = ".json"

// Writer is the part of the workspace the emitter needs.
type Writer interface {
	WriteFile(path string, data []byte) error
}

// Emitter writes one JSON record per version into Dir.
type Emitter struct {
	Writer Writer
	Dir    string
}

// New returns an emitter that writes records into dir.
func New(w Writer, dir string) *Emitter {
	return &Emitter{Writer: w, Dir: dir}
}

// Marshal renders a version's platforms as indented JSON. encoding/json sorts
// map keys, so equal input always gives identical bytes. URLs are kept
// unescaped.
func Marshal(platforms types.Platforms) ([]byte, error) {
	if platforms == nil {
		platforms = types.Platforms{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(platforms); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Path returns the record file for a version.
func (e *Emitter) Path(version types.Version) string {
	return filepath.Join(e.Dir, string(version)+jsonExt)
}

// Emit writes every version of the index and returns the written paths. The
// first failure aborts the remaining writes.
func (e *Emitter) Emit(output types.OutputIndex) ([]string, error) {
	versions := maps.Keys(output)
	slices.Sort(versions)
	written := make([]string, 0, len(versions))

	for _, version := range versions {
		content, err := Marshal(output[version])
		if err != nil {
			return written, errors.Wrapf(err, "failed to encode version %s", version)
		}

		path := e.Path(version)
		if err := e.Writer.WriteFile(path, content); err != nil {
			return written, err
		}

		log.WithFields(log.Fields{
			"version":   version,
			"platforms": len(output[version]),
		}).Debug("Wrote version record")
		written = append(written, path)
	}

	return written, nil
}
