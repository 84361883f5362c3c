package catalog

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// ImportedIdentifier is one classified code attached to an imported volume.
type ImportedIdentifier struct {
	Type       string
	Identifier string
}

// ImportedBook is the merge payload for one looked-up volume: the scalar row
// keyed by the provider's volume id plus the relation lists.
type ImportedBook struct {
	Book        *Book
	Authors     []string
	Categories  []string
	Identifiers []ImportedIdentifier
}

// UpsertImportedBook merges a looked-up volume into the catalog in one
// transaction. Re-importing an existing volume id overwrites every scalar
// column and replaces the author list; identifiers and categories are
// additive, so locally attached codes survive a re-import.
func (svc *Service) UpsertImportedBook(ctx context.Context, imported *ImportedBook) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book := imported.Book

		query := tx.
			NewInsert().
			Model(book).
			On("CONFLICT (volume_id) DO UPDATE")
		for _, column := range []string{
			"title", "number", "publisher", "published_date", "description",
			"page_count", "print_type", "maturity_rating", "language",
			"preview_link", "info_link", "canonical_link", "small_thumbnail",
			"thumbnail", "country", "saleability", "is_ebook", "viewability",
			"embeddable", "public_domain", "text_to_speech_permission",
			"epub_available", "pdf_available", "web_reader_link",
			"access_view_status", "quote_sharing_allowed",
		} {
			query = query.Set(column + " = EXCLUDED." + column)
		}
		if _, err := query.Exec(ctx); err != nil {
			return dbError(err)
		}

		for _, ident := range imported.Identifiers {
			row := &BookIdentifier{
				VolumeID:   book.VolumeID,
				Type:       ident.Type,
				Identifier: ident.Identifier,
			}
			exists, err := tx.
				NewSelect().
				Model((*BookIdentifier)(nil)).
				Where("volume_id = ?", book.VolumeID).
				Where("type = ?", ident.Type).
				Where("identifier = ?", ident.Identifier).
				Exists(ctx)
			if err != nil {
				return errors.WithStack(err)
			}
			if exists {
				continue
			}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return dbError(err)
			}
		}

		for _, name := range imported.Categories {
			categoryID, err := getOrCreateNamed(ctx, tx, "categories", "category_id", name)
			if err != nil {
				return err
			}

			row := &BookCategory{VolumeID: book.VolumeID, CategoryID: categoryID}
			_, err = tx.
				NewInsert().
				Model(row).
				On("CONFLICT DO NOTHING").
				Exec(ctx)
			if err != nil {
				return dbError(err)
			}
		}

		return replaceAuthors(ctx, tx, book.VolumeID, imported.Authors)
	})
}
