package index

import (
	"fmt"

	"github.com/project-copacetic/edgedriver-manifest/pkg/manifest"
	"github.com/project-copacetic/edgedriver-manifest/pkg/types"
	log "github.com/sirupsen/logrus"
)

// minEntries is the smallest listing accepted as a real manifest.
const minEntries = 2

// Stats summarizes a single aggregation.
type Stats struct {
	Entries     int // entries in the listing
	Skipped     int // entries whose name is not a driver archive
	Overwritten int // entries replaced by a later one for the same version and platform
	Versions    int
	Platforms   int // version/platform pairs in the index
}

// Aggregate groups entries by version and platform in listing order. A later
// entry for an already indexed version/platform replaces the earlier one.
func Aggregate(entries []types.ManifestEntry) (types.OutputIndex, Stats, error) {
	stats := Stats{Entries: len(entries)}
	if len(entries) < minEntries {
		return nil, stats, fmt.Errorf("%w: found %d entries", ErrUnexpectedEmptyManifest, len(entries))
	}

	output := make(types.OutputIndex)
	for i := range entries {
		entry := &entries[i]

		version, platform, ok := manifest.ParseName(entry.Name)
		if !ok {
			log.WithField("name", entry.Name).WithError(manifest.CheckName(entry.Name)).Warn("Skipping manifest entry")
			stats.Skipped++
			continue
		}

		platforms, exists := output[version]
		if !exists {
			platforms = make(types.Platforms)
			output[version] = platforms
		}

		if _, dup := platforms[platform]; dup {
			log.WithFields(log.Fields{
				"version":  version,
				"platform": platform,
			}).Debug("Replacing duplicate manifest entry")
			stats.Overwritten++
		} else {
			stats.Platforms++
		}

		platforms[platform] = entry.Properties()
	}
	stats.Versions = len(output)

	log.Infof("Indexed %d platforms across %d versions, skipped %d entries", stats.Platforms, stats.Versions, stats.Skipped)

	return output, stats, nil
}
