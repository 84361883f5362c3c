// Package googlebooks is a minimal client for the Google Books volumes API,
// covering ISBN lookup and thumbnail retrieval.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/inkshelf/inkshelf/pkg/errcodes"
	"github.com/pkg/errors"
)

const DefaultBaseURL = "https://www.googleapis.com/books/v1"

type volumesResponse struct {
	Items []*Volume `json:"items"`
}

type Volume struct {
	ID         string      `json:"id"`
	VolumeInfo VolumeInfo  `json:"volumeInfo"`
	SaleInfo   *SaleInfo   `json:"saleInfo"`
	AccessInfo *AccessInfo `json:"accessInfo"`
}

type VolumeInfo struct {
	Title               string                `json:"title"`
	Authors             []string              `json:"authors"`
	Publisher           *string               `json:"publisher"`
	PublishedDate       *string               `json:"publishedDate"`
	Description         *string               `json:"description"`
	PageCount           *int64                `json:"pageCount"`
	PrintType           *string               `json:"printType"`
	Categories          []string              `json:"categories"`
	MaturityRating      *string               `json:"maturityRating"`
	Language            *string               `json:"language"`
	PreviewLink         *string               `json:"previewLink"`
	InfoLink            *string               `json:"infoLink"`
	CanonicalVolumeLink *string               `json:"canonicalVolumeLink"`
	ImageLinks          *ImageLinks           `json:"imageLinks"`
	IndustryIdentifiers []*IndustryIdentifier `json:"industryIdentifiers"`
}

type ImageLinks struct {
	SmallThumbnail *string `json:"smallThumbnail"`
	Thumbnail      *string `json:"thumbnail"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

type SaleInfo struct {
	Country     *string `json:"country"`
	Saleability *string `json:"saleability"`
	IsEbook     *bool   `json:"isEbook"`
}

type AccessInfo struct {
	Country                *string       `json:"country"`
	Viewability            *string       `json:"viewability"`
	Embeddable             *bool         `json:"embeddable"`
	PublicDomain           *bool         `json:"publicDomain"`
	TextToSpeechPermission *string       `json:"textToSpeechPermission"`
	Epub                   *Availability `json:"epub"`
	Pdf                    *Availability `json:"pdf"`
	WebReaderLink          *string       `json:"webReaderLink"`
	AccessViewStatus       *string       `json:"accessViewStatus"`
	QuoteSharingAllowed    *bool         `json:"quoteSharingAllowed"`
}

type Availability struct {
	IsAvailable *bool `json:"isAvailable"`
}

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

// Lookup queries the volumes endpoint with an isbn: query and returns the
// first matching volume, or nil when the provider knows nothing about the
// code.
func (c *Client) Lookup(ctx context.Context, code string) (*Volume, error) {
	query := url.Values{}
	query.Set("q", "isbn:"+code)
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/volumes?"+query.Encode(), nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errcodes.LookupFailed(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errcodes.LookupFailed(fmt.Sprintf("volumes endpoint returned %d", resp.StatusCode))
	}

	payload := volumesResponse{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errcodes.LookupFailed(err.Error())
	}

	if len(payload.Items) == 0 {
		return nil, nil
	}
	return payload.Items[0], nil
}

// FetchThumbnail downloads a cover image by URL. The caller owns the
// returned body.
func (c *Client) FetchThumbnail(ctx context.Context, imageURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, errors.Errorf("thumbnail endpoint returned %d", resp.StatusCode)
	}
	return resp.Body, nil
}
