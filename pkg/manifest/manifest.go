package manifest

import (
	"bytes"
	"encoding/xml"

	"github.com/project-copacetic/edgedriver-manifest/pkg/types"
	log "github.com/sirupsen/logrus"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Listing is an Azure Blob Storage "List Blobs" response.
type Listing struct {
	XMLName         xml.Name `xml:"EnumerationResults"`
	ServiceEndpoint string   `xml:"ServiceEndpoint,attr"`
	ContainerName   string   `xml:"ContainerName,attr"`
	Prefix          string   `xml:"Prefix"`
	Marker          string   `xml:"Marker"`
	MaxResults      string   `xml:"MaxResults"`
	Blobs           []Blob   `xml:"Blobs>Blob"`
	NextMarker      string   `xml:"NextMarker"`
}

// Blob is one listed object.
type Blob struct {
	Name       string         `xml:"Name"`
	URL        string         `xml:"Url"`
	Properties BlobProperties `xml:"Properties"`
}

// BlobProperties holds the blob metadata copied into its entry.
type BlobProperties struct {
	LastModified  string `xml:"Last-Modified"`
	ETag          string `xml:"Etag"`
	ContentLength string `xml:"Content-Length"`
	ContentType   string `xml:"Content-Type"`
	ContentMD5    string `xml:"Content-MD5"`
}

// Entry converts the blob into a manifest entry.
func (b Blob) Entry() types.ManifestEntry {
	return types.ManifestEntry{
		Name:          b.Name,
		URL:           b.URL,
		LastModified:  b.Properties.LastModified,
		ETag:          b.Properties.ETag,
		ContentLength: b.Properties.ContentLength,
		ContentType:   b.Properties.ContentType,
		ContentMD5:    b.Properties.ContentMD5,
	}
}

// Entries returns the listed blobs in document order.
func (l *Listing) Entries() []types.ManifestEntry {
	entries := make([]types.ManifestEntry, 0, len(l.Blobs))
	for i := range l.Blobs {
		entries = append(entries, l.Blobs[i].Entry())
	}
	return entries
}

// Decode unmarshals a listing document. Unknown elements are ignored and
// missing ones are left empty; only a document that is not XML or whose root
// is not EnumerationResults is rejected.
func Decode(data []byte) (*Listing, error) {
	var listing Listing
	if err := xml.Unmarshal(bytes.TrimPrefix(data, utf8BOM), &listing); err != nil {
		return nil, &FormatError{err}
	}
	return &listing, nil
}

// Parse decodes a listing document into its entries.
func Parse(data []byte) ([]types.ManifestEntry, error) {
	listing, err := Decode(data)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"container":  listing.ContainerName,
		"prefix":     listing.Prefix,
		"marker":     listing.Marker,
		"maxResults": listing.MaxResults,
		"blobs":      len(listing.Blobs),
	}).Debug("Decoded manifest listing")

	if listing.NextMarker != "" {
		log.WithField("nextMarker", listing.NextMarker).Warn("Manifest listing is truncated, later pages are not fetched")
	}

	return listing.Entries(), nil
}
