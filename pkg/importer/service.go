// Package importer drives the lookup-and-merge flow: classify a scanned
// code, query the bibliographic provider, merge the volume into the catalog,
// and flag likely comic series collisions.
package importer

import (
	"context"

	"github.com/inkshelf/inkshelf/pkg/catalog"
	"github.com/inkshelf/inkshelf/pkg/config"
	"github.com/inkshelf/inkshelf/pkg/errcodes"
	"github.com/inkshelf/inkshelf/pkg/googlebooks"
	"github.com/inkshelf/inkshelf/pkg/thumbnails"
	"github.com/robinjoseph08/golib/logger"
)

// Result reports one completed import. PossibleSeriesCollision is set when
// other catalog entries share the imported title: comic issues in a series
// carry identical titles and identifiers upstream, so the caller should
// prompt for a manual issue number instead of trusting the merge.
type Result struct {
	VolumeID                string        `json:"volume_id"`
	Book                    *catalog.Book `json:"book"`
	PossibleSeriesCollision bool          `json:"possible_series_collision"`
}

type Service struct {
	catalog *catalog.Service
	client  *googlebooks.Client
	thumbs  *thumbnails.Store
	apiKey  string
}

func NewService(cfg *config.Config, catalogSvc *catalog.Service, client *googlebooks.Client, thumbs *thumbnails.Store) *Service {
	return &Service{
		catalog: catalogSvc,
		client:  client,
		thumbs:  thumbs,
		apiKey:  cfg.GoogleBooksAPIKey,
	}
}

// Import looks up a scanned code and merges the resulting volume into the
// catalog. The merge is transactional; the thumbnail download afterwards is
// best effort and a failure there never fails the import.
func (svc *Service) Import(ctx context.Context, code string) (*Result, error) {
	if svc.apiKey == "" {
		return nil, errcodes.ConfigurationMissing("Google Books API key")
	}

	// The code goes to the provider as scanned. Format validation is a
	// manual-creation concern; a code the provider does not recognize
	// surfaces as a lookup miss, not a classification error.
	volume, err := svc.client.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if volume == nil {
		return nil, errcodes.NotFound("Volume")
	}

	imported := volumeToImportedBook(volume)
	if err := svc.catalog.UpsertImportedBook(ctx, imported); err != nil {
		return nil, err
	}

	svc.saveThumbnail(ctx, volume)

	book, err := svc.catalog.RetrieveBook(ctx, volume.ID)
	if err != nil {
		return nil, err
	}

	matches, err := svc.catalog.FindBooksByTitle(ctx, book.Title)
	if err != nil {
		return nil, err
	}

	return &Result{
		VolumeID:                volume.ID,
		Book:                    book,
		PossibleSeriesCollision: len(matches) > 1,
	}, nil
}

func (svc *Service) saveThumbnail(ctx context.Context, volume *googlebooks.Volume) {
	links := volume.VolumeInfo.ImageLinks
	if links == nil {
		return
	}

	imageURL := links.Thumbnail
	if imageURL == nil {
		imageURL = links.SmallThumbnail
	}
	if imageURL == nil {
		return
	}

	log := logger.FromContext(ctx).Data(logger.Data{"volume_id": volume.ID})

	body, err := svc.client.FetchThumbnail(ctx, *imageURL)
	if err != nil {
		log.Warn("failed to download thumbnail", logger.Data{"err": err.Error()})
		return
	}
	defer body.Close()

	if err := svc.thumbs.Save(volume.ID, body); err != nil {
		log.Warn("failed to save thumbnail", logger.Data{"err": err.Error()})
	}
}

// volumeToImportedBook flattens a provider volume into catalog columns.
// Boolean flags become 0/1 only when their parent block is present in the
// response; an absent block leaves every column in it NULL so a re-import
// can distinguish "unknown" from "false". Country prefers the sale block
// over the access block.
func volumeToImportedBook(volume *googlebooks.Volume) *catalog.ImportedBook {
	info := volume.VolumeInfo

	book := &catalog.Book{
		VolumeID:       volume.ID,
		Title:          info.Title,
		Publisher:      info.Publisher,
		PublishedDate:  info.PublishedDate,
		Description:    info.Description,
		PageCount:      info.PageCount,
		PrintType:      info.PrintType,
		MaturityRating: info.MaturityRating,
		Language:       info.Language,
		PreviewLink:    info.PreviewLink,
		InfoLink:       info.InfoLink,
		CanonicalLink:  info.CanonicalVolumeLink,
	}
	if info.ImageLinks != nil {
		book.SmallThumbnail = info.ImageLinks.SmallThumbnail
		book.Thumbnail = info.ImageLinks.Thumbnail
	}

	if sale := volume.SaleInfo; sale != nil {
		book.Country = sale.Country
		book.Saleability = sale.Saleability
		book.IsEbook = flag(sale.IsEbook)
	}

	if access := volume.AccessInfo; access != nil {
		if book.Country == nil {
			book.Country = access.Country
		}
		book.Viewability = access.Viewability
		book.Embeddable = flag(access.Embeddable)
		book.PublicDomain = flag(access.PublicDomain)
		book.TextToSpeechPermission = access.TextToSpeechPermission
		book.EpubAvailable = flag(availability(access.Epub))
		book.PdfAvailable = flag(availability(access.Pdf))
		book.WebReaderLink = access.WebReaderLink
		book.AccessViewStatus = access.AccessViewStatus
		book.QuoteSharingAllowed = flag(access.QuoteSharingAllowed)
	}

	imported := &catalog.ImportedBook{
		Book:       book,
		Authors:    info.Authors,
		Categories: info.Categories,
	}
	for _, ident := range info.IndustryIdentifiers {
		imported.Identifiers = append(imported.Identifiers, catalog.ImportedIdentifier{
			Type:       ident.Type,
			Identifier: ident.Identifier,
		})
	}
	return imported
}

func flag(b *bool) *int64 {
	v := int64(0)
	if b != nil && *b {
		v = 1
	}
	return &v
}

func availability(a *googlebooks.Availability) *bool {
	if a == nil {
		return nil
	}
	return a.IsAvailable
}
