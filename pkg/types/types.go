package types

// Version identifies a driver release, e.g. "100.0.1154.0". Compared as a plain string.
type Version string

// Platform identifies a target OS/architecture, e.g. "arm64" or "win32".
type Platform string

// ManifestEntry is one blob listed in the remote manifest.
type ManifestEntry struct {
	Name          string // "<version>/edgedriver_<platform>.zip"
	URL           string
	LastModified  string
	ETag          string
	ContentLength string
	ContentType   string
	ContentMD5    string
}

// Properties projects the entry onto its output record.
func (e ManifestEntry) Properties() ArtifactProperties {
	return ArtifactProperties{
		URL:           e.URL,
		LastModified:  e.LastModified,
		ETag:          e.ETag,
		MD5:           e.ContentMD5,
		ContentLength: e.ContentLength,
		ContentType:   e.ContentType,
	}
}

// ArtifactProperties is the per-platform record written to a version file.
type ArtifactProperties struct {
	URL           string `json:"url"`
	LastModified  string `json:"lastModified"`
	ETag          string `json:"etag"`
	MD5           string `json:"md5"`
	ContentLength string `json:"contentLength"`
	ContentType   string `json:"contentType"`
}

// Platforms maps each platform of a single version to its artifact.
type Platforms map[Platform]ArtifactProperties

// OutputIndex groups artifacts by version, then by platform.
type OutputIndex map[Version]Platforms
