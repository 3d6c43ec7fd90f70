// Package pipeline runs a complete manifest sync: fetch, persist, parse,
// aggregate and emit.
package pipeline

import (
	"context"

	"github.com/pkg/errors"
	"github.com/project-copacetic/edgedriver-manifest/pkg/emit"
	"github.com/project-copacetic/edgedriver-manifest/pkg/index"
	"github.com/project-copacetic/edgedriver-manifest/pkg/manifest"
	"github.com/project-copacetic/edgedriver-manifest/pkg/transport"
	"github.com/project-copacetic/edgedriver-manifest/pkg/workspace"
	log "github.com/sirupsen/logrus"
)

// Pipeline holds the collaborators of a run. It keeps no state between runs.
type Pipeline struct {
	Fetcher   transport.Fetcher
	Workspace *workspace.Workspace
	URL       string
	UserAgent string
}

// Result describes what a successful run wrote.
type Result struct {
	ManifestPath string
	VersionsDir  string
	Files        []string
	Stats        index.Stats
}

// Run executes the steps strictly in order and stops at the first error.
// Whatever was written before the failure is left in place.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ws := p.Workspace
	logger := log.WithField("dir", ws.Root())

	if err := ws.Prepare(); err != nil {
		return nil, errors.Wrap(err, "failed to prepare workspace")
	}
	logger.Debug("Prepared workspace")

	raw, err := p.Fetcher.Fetch(ctx, p.URL, p.UserAgent)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch manifest")
	}

	// The raw document must be on disk before parsing starts.
	if err := ws.WriteManifest(raw); err != nil {
		return nil, errors.Wrap(err, "failed to store manifest")
	}
	logger.WithField("path", ws.ManifestPath()).Info("Stored manifest")

	entries, err := manifest.Parse([]byte(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest from %s", p.URL)
	}

	output, stats, err := index.Aggregate(entries)
	if err != nil {
		return nil, err
	}

	files, err := emit.New(ws, ws.VersionsPath()).Emit(output)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write version records")
	}
	logger.Infof("Wrote %d version records", len(files))

	return &Result{
		ManifestPath: ws.ManifestPath(),
		VersionsDir:  ws.VersionsPath(),
		Files:        files,
		Stats:        stats,
	}, nil
}
