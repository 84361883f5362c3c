// Package export writes the whole catalog to a CSV file with a sibling
// images/ directory of cover files.
package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/inkshelf/inkshelf/pkg/catalog"
	"github.com/inkshelf/inkshelf/pkg/errcodes"
	"github.com/inkshelf/inkshelf/pkg/thumbnails"
	"github.com/robinjoseph08/golib/logger"
)

var fixedHeaders = []string{
	"volume_id",
	"title",
	"number",
	"authors",
	"categories",
	"identifiers",
	"groups",
	"publisher",
	"published_date",
	"description",
	"page_count",
	"print_type",
	"maturity_rating",
	"language",
	"preview_link",
	"info_link",
	"canonical_link",
	"small_thumbnail",
	"thumbnail",
	"country",
	"saleability",
	"is_ebook",
	"viewability",
	"embeddable",
	"public_domain",
	"text_to_speech_permission",
	"epub_available",
	"pdf_available",
	"web_reader_link",
	"access_view_status",
	"quote_sharing_allowed",
}

type Service struct {
	catalog *catalog.Service
	thumbs  *thumbnails.Store
}

func NewService(catalogSvc *catalog.Service, thumbs *thumbnails.Store) *Service {
	return &Service{catalog: catalogSvc, thumbs: thumbs}
}

// Export writes every book, ordered by title, to csvPath. Columns are the
// fixed set followed by one column per custom-field name, sorted, so the
// layout is stable across exports of the same catalog. Cover files are
// copied into an images/ directory next to the CSV; a missing or uncopyable
// cover skips that file without failing the export.
func (svc *Service) Export(ctx context.Context, csvPath string) error {
	fieldNames, err := svc.catalog.ListCustomFieldNames(ctx)
	if err != nil {
		return err
	}

	entries, err := svc.catalog.ListBooks(ctx)
	if err != nil {
		return err
	}

	file, err := os.Create(csvPath)
	if err != nil {
		return errcodes.IoFailure("failed to create export file: " + err.Error())
	}
	defer file.Close()

	imagesDir := filepath.Join(filepath.Dir(csvPath), "images")
	if err := os.MkdirAll(imagesDir, 0755); err != nil {
		return errcodes.IoFailure("failed to create images directory: " + err.Error())
	}

	writer := csv.NewWriter(file)

	if err := writer.Write(append(append([]string{}, fixedHeaders...), fieldNames...)); err != nil {
		return errcodes.IoFailure("failed to write export header: " + err.Error())
	}

	log := logger.FromContext(ctx)

	for _, entry := range entries {
		if svc.thumbs.Exists(entry.Book.VolumeID) {
			if err := svc.thumbs.CopyTo(entry.Book.VolumeID, imagesDir); err != nil {
				log.Warn("failed to copy cover for export", logger.Data{
					"volume_id": entry.Book.VolumeID,
					"err":       err.Error(),
				})
			}
		}

		if err := writer.Write(buildRecord(entry, fieldNames)); err != nil {
			return errcodes.IoFailure("failed to write export row: " + err.Error())
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errcodes.IoFailure("failed to flush export file: " + err.Error())
	}
	return nil
}

func buildRecord(entry *catalog.BookWithThumbnail, fieldNames []string) []string {
	book := entry.Book

	identifiers := make([]string, 0, len(entry.Identifiers))
	for _, ident := range entry.Identifiers {
		identifiers = append(identifiers, ident.Type+":"+ident.Identifier)
	}

	record := []string{
		book.VolumeID,
		book.Title,
		intField(book.Number),
		strings.Join(entry.Authors, "; "),
		strings.Join(entry.Categories, "; "),
		strings.Join(identifiers, "; "),
		strings.Join(book.Groups, "; "),
		strField(book.Publisher),
		strField(book.PublishedDate),
		strField(book.Description),
		intField(book.PageCount),
		strField(book.PrintType),
		strField(book.MaturityRating),
		strField(book.Language),
		strField(book.PreviewLink),
		strField(book.InfoLink),
		strField(book.CanonicalLink),
		strField(book.SmallThumbnail),
		strField(book.Thumbnail),
		strField(book.Country),
		strField(book.Saleability),
		intField(book.IsEbook),
		strField(book.Viewability),
		intField(book.Embeddable),
		intField(book.PublicDomain),
		strField(book.TextToSpeechPermission),
		intField(book.EpubAvailable),
		intField(book.PdfAvailable),
		strField(book.WebReaderLink),
		strField(book.AccessViewStatus),
		intField(book.QuoteSharingAllowed),
	}

	for _, name := range fieldNames {
		record = append(record, book.CustomFields[name])
	}
	return record
}

func strField(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intField(i *int64) string {
	if i == nil {
		return ""
	}
	return strconv.FormatInt(*i, 10)
}
