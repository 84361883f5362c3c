package googlebooks

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/inkshelf/inkshelf/pkg/errcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const volumeFixture = `{
	"items": [
		{
			"id": "zyTCAlFPjgYC",
			"volumeInfo": {
				"title": "The Google Story",
				"authors": ["David A. Vise", "Mark Malseed"],
				"publisher": "Random House Digital, Inc.",
				"publishedDate": "2005-11-15",
				"pageCount": 207,
				"printType": "BOOK",
				"categories": ["Business & Economics"],
				"imageLinks": {
					"smallThumbnail": "http://books.google.com/small.jpg",
					"thumbnail": "http://books.google.com/thumb.jpg"
				},
				"industryIdentifiers": [
					{"type": "ISBN_10", "identifier": "055380457X"},
					{"type": "ISBN_13", "identifier": "9780553804577"}
				]
			},
			"saleInfo": {
				"country": "US",
				"saleability": "FOR_SALE",
				"isEbook": true
			},
			"accessInfo": {
				"country": "US",
				"epub": {"isAvailable": true},
				"pdf": {"isAvailable": false}
			}
		}
	]
}`

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/volumes", r.URL.Path)
		assert.Equal(t, "isbn:9780553804577", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(volumeFixture))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	volume, err := client.Lookup(context.Background(), "9780553804577")
	require.NoError(t, err)
	require.NotNil(t, volume)

	assert.Equal(t, "zyTCAlFPjgYC", volume.ID)
	assert.Equal(t, "The Google Story", volume.VolumeInfo.Title)
	assert.Equal(t, []string{"David A. Vise", "Mark Malseed"}, volume.VolumeInfo.Authors)
	require.NotNil(t, volume.VolumeInfo.PageCount)
	assert.Equal(t, int64(207), *volume.VolumeInfo.PageCount)
	require.Len(t, volume.VolumeInfo.IndustryIdentifiers, 2)
	assert.Equal(t, "ISBN_13", volume.VolumeInfo.IndustryIdentifiers[1].Type)
	require.NotNil(t, volume.SaleInfo)
	require.NotNil(t, volume.SaleInfo.IsEbook)
	assert.True(t, *volume.SaleInfo.IsEbook)
	require.NotNil(t, volume.AccessInfo)
	require.NotNil(t, volume.AccessInfo.Epub.IsAvailable)
	assert.True(t, *volume.AccessInfo.Epub.IsAvailable)
	require.NotNil(t, volume.AccessInfo.Pdf.IsAvailable)
	assert.False(t, *volume.AccessInfo.Pdf.IsAvailable)
}

func TestLookup_NoItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"kind": "books#volumes", "totalItems": 0}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	volume, err := client.Lookup(context.Background(), "9780000000000")
	require.NoError(t, err)
	assert.Nil(t, volume)
}

func TestLookup_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(server.URL, "bad-key")

	_, err := client.Lookup(context.Background(), "9780553804577")
	require.Error(t, err)

	cerr := &errcodes.Error{}
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, http.StatusBadGateway, cerr.HTTPCode)
}

func TestFetchThumbnail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("jpeg bytes"))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key")

	body, err := client.FetchThumbnail(context.Background(), server.URL+"/thumb.jpg")
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))
}
