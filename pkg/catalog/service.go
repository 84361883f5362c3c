package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/inkshelf/inkshelf/pkg/errcodes"
	"github.com/inkshelf/inkshelf/pkg/identifier"
	"github.com/inkshelf/inkshelf/pkg/thumbnails"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// InsertBookParams creates a book manually. Every omitted scalar is stored
// as NULL.
type InsertBookParams struct {
	Title         string
	Number        *int64
	Authors       []string
	Groups        []string
	Publisher     *string
	PublishedDate *string
	Identifier    *string
	CustomFields  map[string]string
}

// UpdateBookPayload overwrites a book's editable scalars and replaces its
// author list, group list, and custom-field set wholesale.
type UpdateBookPayload struct {
	VolumeID      string
	Title         string
	Number        *int64
	Publisher     *string
	PublishedDate *string
	Description   *string
	PageCount     *int64
	Language      *string
	Authors       []string
	Groups        []string
	CustomFields  map[string]string
}

type Service struct {
	db     *bun.DB
	thumbs *thumbnails.Store
}

func NewService(db *bun.DB, thumbs *thumbnails.Store) *Service {
	return &Service{db: db, thumbs: thumbs}
}

// InsertBook creates a book under a freshly generated volume id. The scalar
// row, ordered authors, groups, optional identifier, and custom fields are
// written in one transaction; any failure rolls back all of it, including
// the generated id.
func (svc *Service) InsertBook(ctx context.Context, params InsertBookParams) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.WithStack(err)
	}
	volumeID := id.String()

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book := &Book{
			VolumeID:      volumeID,
			Title:         params.Title,
			Number:        params.Number,
			Publisher:     params.Publisher,
			PublishedDate: params.PublishedDate,
		}
		if _, err := tx.NewInsert().Model(book).Exec(ctx); err != nil {
			return dbError(err)
		}

		if err := replaceAuthors(ctx, tx, volumeID, params.Authors); err != nil {
			return err
		}
		if err := addGroups(ctx, tx, volumeID, params.Groups); err != nil {
			return err
		}

		if params.Identifier != nil && *params.Identifier != "" {
			kind, err := identifier.Classify(*params.Identifier)
			if err != nil {
				return err
			}
			row := &BookIdentifier{VolumeID: volumeID, Type: kind, Identifier: *params.Identifier}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return dbError(err)
			}
		}

		return setCustomFields(ctx, tx, volumeID, params.CustomFields)
	})
	if err != nil {
		return "", err
	}

	return volumeID, nil
}

// RetrieveBook returns the scalar row plus resolved groups and custom
// fields.
func (svc *Service) RetrieveBook(ctx context.Context, volumeID string) (*Book, error) {
	book := &Book{}

	err := svc.db.
		NewSelect().
		Model(book).
		Where("b.volume_id = ?", volumeID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errcodes.NotFound("Book")
		}
		return nil, errors.WithStack(err)
	}

	if err := svc.enrichBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// FindBooksByTitle returns every book whose title contains text,
// case-insensitive, enriched with groups and custom fields.
func (svc *Service) FindBooksByTitle(ctx context.Context, text string) ([]*Book, error) {
	books := []*Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Where("LOWER(b.title) LIKE ?", "%"+strings.ToLower(text)+"%").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	for _, book := range books {
		if err := svc.enrichBook(ctx, book); err != nil {
			return nil, err
		}
	}
	return books, nil
}

// UpdateBook overwrites the editable scalar columns and replaces the author
// list, group list, and custom-field set in one transaction. Replacement is
// delete-then-reinsert, never a diff.
func (svc *Service) UpdateBook(ctx context.Context, payload UpdateBookPayload) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book := &Book{
			VolumeID:      payload.VolumeID,
			Title:         payload.Title,
			Number:        payload.Number,
			Publisher:     payload.Publisher,
			PublishedDate: payload.PublishedDate,
			Description:   payload.Description,
			PageCount:     payload.PageCount,
			Language:      payload.Language,
		}
		_, err := tx.
			NewUpdate().
			Model(book).
			Column("title", "number", "publisher", "published_date", "description", "page_count", "language").
			WherePK().
			Exec(ctx)
		if err != nil {
			return dbError(err)
		}

		if err := replaceAuthors(ctx, tx, payload.VolumeID, payload.Authors); err != nil {
			return err
		}
		if err := replaceGroups(ctx, tx, payload.VolumeID, payload.Groups); err != nil {
			return err
		}

		_, err = tx.
			NewDelete().
			Model((*BookCustomField)(nil)).
			Where("volume_id = ?", payload.VolumeID).
			Exec(ctx)
		if err != nil {
			return dbError(err)
		}
		return setCustomFields(ctx, tx, payload.VolumeID, payload.CustomFields)
	})
}

// SetBookNumber updates the series number column only.
func (svc *Service) SetBookNumber(ctx context.Context, volumeID string, number int64) error {
	_, err := svc.db.
		NewUpdate().
		Model((*Book)(nil)).
		Set("number = ?", number).
		Where("volume_id = ?", volumeID).
		Exec(ctx)
	return dbError(err)
}

// SetBookGroups replaces a book's group list.
func (svc *Service) SetBookGroups(ctx context.Context, volumeID string, groups []string) error {
	return svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return replaceGroups(ctx, tx, volumeID, groups)
	})
}

// CloneBook duplicates a book's scalar row and every relation row (author
// positions, groups, identifiers, custom-field values) under a fresh id.
// The thumbnail file is not duplicated.
func (svc *Service) CloneBook(ctx context.Context, volumeID string) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", errors.WithStack(err)
	}
	newVolumeID := id.String()

	err = svc.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		book := &Book{}
		err := tx.
			NewSelect().
			Model(book).
			Where("b.volume_id = ?", volumeID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return errcodes.NotFound("Book")
			}
			return errors.WithStack(err)
		}

		book.VolumeID = newVolumeID
		if _, err := tx.NewInsert().Model(book).Exec(ctx); err != nil {
			return dbError(err)
		}

		for _, stmt := range []string{
			`INSERT INTO book_authors (volume_id, author_id, position)
			 SELECT ?, author_id, position FROM book_authors WHERE volume_id = ?`,
			`INSERT INTO book_groups (volume_id, group_id)
			 SELECT ?, group_id FROM book_groups WHERE volume_id = ?`,
			`INSERT INTO book_identifiers (volume_id, type, identifier)
			 SELECT ?, type, identifier FROM book_identifiers WHERE volume_id = ?`,
			`INSERT INTO book_custom_fields (volume_id, field_id, value)
			 SELECT ?, field_id, value FROM book_custom_fields WHERE volume_id = ?`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, newVolumeID, volumeID); err != nil {
				return dbError(err)
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return newVolumeID, nil
}

// IdentifierExists reports whether any book carries the code, regardless of
// identifier type.
func (svc *Service) IdentifierExists(ctx context.Context, code string) (bool, error) {
	exists, err := svc.db.
		NewSelect().
		Model((*BookIdentifier)(nil)).
		Where("identifier = ?", code).
		Exists(ctx)
	return exists, errors.WithStack(err)
}

// FindComicByEAN returns the book carrying the given EAN_13 code, enriched,
// or nil when no book does.
func (svc *Service) FindComicByEAN(ctx context.Context, ean string) (*Book, error) {
	book := &Book{}

	err := svc.db.
		NewSelect().
		Model(book).
		Distinct().
		Join("JOIN book_identifiers bi ON bi.volume_id = b.volume_id").
		Where("bi.type = ?", identifier.KindEAN13).
		Where("bi.identifier = ?", ean).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}

	if err := svc.enrichBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// ListBooks returns every book ordered by title, enriched with authors,
// categories, identifiers, groups, custom fields, and thumbnail presence.
func (svc *Service) ListBooks(ctx context.Context) ([]*BookWithThumbnail, error) {
	books := []*Book{}

	err := svc.db.
		NewSelect().
		Model(&books).
		Order("b.title ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	result := make([]*BookWithThumbnail, 0, len(books))
	for _, book := range books {
		if err := svc.enrichBook(ctx, book); err != nil {
			return nil, err
		}

		authors, err := svc.loadAuthors(ctx, book.VolumeID)
		if err != nil {
			return nil, err
		}
		categories, err := svc.loadCategories(ctx, book.VolumeID)
		if err != nil {
			return nil, err
		}
		identifiers, err := svc.loadIdentifiers(ctx, book.VolumeID)
		if err != nil {
			return nil, err
		}

		entry := &BookWithThumbnail{
			Book:        book,
			Authors:     authors,
			Categories:  categories,
			Identifiers: identifiers,
		}
		if svc.thumbs.Exists(book.VolumeID) {
			path := svc.thumbs.Path(book.VolumeID)
			entry.Thumbnail = &path
		}
		result = append(result, entry)
	}

	return result, nil
}

// ListGroupNames returns every group name, sorted.
func (svc *Service) ListGroupNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := svc.db.
		NewSelect().
		Model((*Group)(nil)).
		Column("name").
		Order("name ASC").
		Scan(ctx, &names)
	return names, errors.WithStack(err)
}

// ListCustomFieldNames returns every custom-field name, sorted.
func (svc *Service) ListCustomFieldNames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := svc.db.
		NewSelect().
		Model((*CustomField)(nil)).
		Column("name").
		Order("name ASC").
		Scan(ctx, &names)
	return names, errors.WithStack(err)
}

func (svc *Service) enrichBook(ctx context.Context, book *Book) error {
	groups := []string{}
	err := svc.db.
		NewSelect().
		ColumnExpr("g.name").
		TableExpr("groups AS g").
		Join("JOIN book_groups bg ON bg.group_id = g.group_id").
		Where("bg.volume_id = ?", book.VolumeID).
		OrderExpr("g.name ASC").
		Scan(ctx, &groups)
	if err != nil {
		return errors.WithStack(err)
	}

	fields := []*struct {
		Name  string `bun:"name"`
		Value string `bun:"value"`
	}{}
	err = svc.db.
		NewSelect().
		ColumnExpr("cf.name, bcf.value").
		TableExpr("book_custom_fields AS bcf").
		Join("JOIN custom_fields cf ON cf.field_id = bcf.field_id").
		Where("bcf.volume_id = ?", book.VolumeID).
		Scan(ctx, &fields)
	if err != nil {
		return errors.WithStack(err)
	}

	book.Groups = groups
	book.CustomFields = make(map[string]string, len(fields))
	for _, f := range fields {
		book.CustomFields[f.Name] = f.Value
	}
	return nil
}

func (svc *Service) loadAuthors(ctx context.Context, volumeID string) ([]string, error) {
	names := []string{}
	err := svc.db.
		NewSelect().
		ColumnExpr("a.name").
		TableExpr("authors AS a").
		Join("JOIN book_authors ba ON ba.author_id = a.author_id").
		Where("ba.volume_id = ?", volumeID).
		OrderExpr("ba.position ASC").
		Scan(ctx, &names)
	return names, errors.WithStack(err)
}

func (svc *Service) loadCategories(ctx context.Context, volumeID string) ([]string, error) {
	names := []string{}
	err := svc.db.
		NewSelect().
		ColumnExpr("c.name").
		TableExpr("categories AS c").
		Join("JOIN book_categories bc ON bc.category_id = c.category_id").
		Where("bc.volume_id = ?", volumeID).
		OrderExpr("c.name ASC").
		Scan(ctx, &names)
	return names, errors.WithStack(err)
}

func (svc *Service) loadIdentifiers(ctx context.Context, volumeID string) ([]*BookIdentifier, error) {
	identifiers := []*BookIdentifier{}
	err := svc.db.
		NewSelect().
		Model(&identifiers).
		Where("bi.volume_id = ?", volumeID).
		Order("bi.type DESC").
		Scan(ctx)
	return identifiers, errors.WithStack(err)
}

// getOrCreateNamed ensures a row with the natural key exists in a
// unique-name lookup table and returns its surrogate id.
func getOrCreateNamed(ctx context.Context, tx bun.Tx, table, idColumn, name string) (int64, error) {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO "+table+" (name) VALUES (?) ON CONFLICT (name) DO NOTHING", name)
	if err != nil {
		return 0, dbError(err)
	}

	var id int64
	err = tx.QueryRowContext(ctx,
		"SELECT "+idColumn+" FROM "+table+" WHERE name = ?", name).Scan(&id)
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return id, nil
}

// replaceAuthors deletes a book's author rows and reinserts the full list
// with position = slice index. The join insert upserts position so a
// re-added author moves rather than duplicates.
func replaceAuthors(ctx context.Context, tx bun.Tx, volumeID string, authors []string) error {
	_, err := tx.
		NewDelete().
		Model((*BookAuthor)(nil)).
		Where("volume_id = ?", volumeID).
		Exec(ctx)
	if err != nil {
		return dbError(err)
	}

	for pos, name := range authors {
		authorID, err := getOrCreateNamed(ctx, tx, "authors", "author_id", name)
		if err != nil {
			return err
		}

		row := &BookAuthor{VolumeID: volumeID, AuthorID: authorID, Position: int64(pos)}
		_, err = tx.
			NewInsert().
			Model(row).
			On("CONFLICT (volume_id, author_id) DO UPDATE").
			Set("position = EXCLUDED.position").
			Exec(ctx)
		if err != nil {
			return dbError(err)
		}
	}
	return nil
}

func addGroups(ctx context.Context, tx bun.Tx, volumeID string, groups []string) error {
	for _, name := range groups {
		groupID, err := getOrCreateNamed(ctx, tx, "groups", "group_id", name)
		if err != nil {
			return err
		}

		row := &BookGroup{VolumeID: volumeID, GroupID: groupID}
		_, err = tx.
			NewInsert().
			Model(row).
			On("CONFLICT DO NOTHING").
			Exec(ctx)
		if err != nil {
			return dbError(err)
		}
	}
	return nil
}

func replaceGroups(ctx context.Context, tx bun.Tx, volumeID string, groups []string) error {
	_, err := tx.
		NewDelete().
		Model((*BookGroup)(nil)).
		Where("volume_id = ?", volumeID).
		Exec(ctx)
	if err != nil {
		return dbError(err)
	}
	return addGroups(ctx, tx, volumeID, groups)
}

func setCustomFields(ctx context.Context, tx bun.Tx, volumeID string, fields map[string]string) error {
	for name, value := range fields {
		fieldID, err := getOrCreateNamed(ctx, tx, "custom_fields", "field_id", name)
		if err != nil {
			return err
		}

		row := &BookCustomField{VolumeID: volumeID, FieldID: fieldID, Value: value}
		_, err = tx.
			NewInsert().
			Model(row).
			On("CONFLICT (volume_id, field_id) DO UPDATE").
			Set("value = EXCLUDED.value").
			Exec(ctx)
		if err != nil {
			return dbError(err)
		}
	}
	return nil
}

// dbError maps database constraint failures onto a coded error; everything
// else passes through with a stack.
func dbError(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "constraint") {
		return errcodes.ConstraintViolation(err.Error())
	}
	return errors.WithStack(err)
}
