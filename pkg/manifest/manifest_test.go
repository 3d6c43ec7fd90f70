package manifest

import (
	"os"
	"testing"

	"github.com/project-copacetic/edgedriver-manifest/pkg/types"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleListing = "testdata/listing.xml"

func readListing(t *testing.T) []byte {
	data, err := os.ReadFile(sampleListing)
	require.NoError(t, err)
	return data
}

func TestParseListing(t *testing.T) {
	entries, err := Parse(readListing(t))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, types.ManifestEntry{
		Name:          "100.0.1154.0/edgedriver_arm64.zip",
		URL:           "https://msedgedriver.azureedge.net/100.0.1154.0/edgedriver_arm64.zip",
		LastModified:  "Thu, 10 Feb 2022 01:22:47 GMT",
		ETag:          "0x8D9EC31C2EC3E4F",
		ContentLength: "8818410",
		ContentType:   "application/octet-stream",
		ContentMD5:    "TgGYV+ZP5duNSAP4X0fk1A==",
	}, entries[0])

	// Document order is preserved
	assert.Equal(t, "100.0.1154.0/edgedriver_win64.zip", entries[1].Name)
	assert.Equal(t, "101.0.1210.32/edgedriver_mac64.zip", entries[2].Name)
	assert.Equal(t, "LATEST_STABLE", entries[3].Name)
}

func TestParseMissingFieldsDefaultEmpty(t *testing.T) {
	entries, err := Parse(readListing(t))
	require.NoError(t, err)

	// The win64 blob carries no Content-MD5
	assert.Equal(t, "", entries[1].ContentMD5)
	assert.Equal(t, "", entries[1].Properties().MD5)

	// LATEST_STABLE has neither Last-Modified nor Etag
	assert.Equal(t, "", entries[3].LastModified)
	assert.Equal(t, "", entries[3].ETag)
}

func TestDecodeListingMetadata(t *testing.T) {
	listing, err := Decode(readListing(t))
	require.NoError(t, err)

	assert.Equal(t, "$root", listing.ContainerName)
	assert.Equal(t, "https://msedgedriver.blob.core.windows.net/", listing.ServiceEndpoint)
	assert.Empty(t, listing.NextMarker)
	assert.Len(t, listing.Blobs, 4)
}

func TestParseTolerant(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		entries int
	}{
		{
			name:    "no blobs element",
			doc:     `<EnumerationResults></EnumerationResults>`,
			entries: 0,
		},
		{
			name:    "empty blobs",
			doc:     `<EnumerationResults><Blobs/></EnumerationResults>`,
			entries: 0,
		},
		{
			name:    "blob without properties",
			doc:     `<EnumerationResults><Blobs><Blob><Name>1.0/edgedriver_win32.zip</Name></Blob></Blobs></EnumerationResults>`,
			entries: 1,
		},
		{
			name:    "unknown elements",
			doc:     `<EnumerationResults><Extra>x</Extra><Blobs><Blob><Snapshot/><Name>a</Name></Blob><Blob><Name>b</Name></Blob></Blobs></EnumerationResults>`,
			entries: 2,
		},
		{
			name:    "byte order mark",
			doc:     "\xEF\xBB\xBF<?xml version=\"1.0\" encoding=\"utf-8\"?><EnumerationResults><Blobs><Blob><Name>a</Name></Blob></Blobs></EnumerationResults>",
			entries: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Parse([]byte(tt.doc))
			require.NoError(t, err)
			assert.Len(t, entries, tt.entries)
		})
	}
}

func TestParseFormatError(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "empty document", doc: ""},
		{name: "not xml", doc: `{"blobs": []}`},
		{name: "wrong root element", doc: `<Error><Code>ResourceNotFound</Code></Error>`},
		{name: "truncated", doc: `<EnumerationResults><Blobs><Blob><Name>a`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, entries)

			var formatErr *FormatError
			assert.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestParseWarnsOnTruncatedListing(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	doc := `<EnumerationResults><Blobs><Blob><Name>a</Name></Blob></Blobs><NextMarker>2!96!MDAwMDE</NextMarker></EnumerationResults>`
	_, err := Parse([]byte(doc))
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "2!96!MDAwMDE", entry.Data["nextMarker"])
}
