package catalog

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/inkshelf/inkshelf/pkg/errcodes"
	"github.com/inkshelf/inkshelf/pkg/migrations"
	"github.com/inkshelf/inkshelf/pkg/thumbnails"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func setupTestDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)

	db := bun.NewDB(sqldb, sqlitedialect.New())

	_, err = migrations.BringUpToDate(context.Background(), db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func setupService(t *testing.T) *Service {
	t.Helper()
	return NewService(setupTestDB(t), thumbnails.NewStore(t.TempDir()))
}

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

func TestInsertBook(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	id, err := svc.InsertBook(ctx, InsertBookParams{
		Title:         "Saga of the Swamp Thing",
		Number:        intPtr(21),
		Authors:       []string{"Alan Moore", "Stephen Bissette"},
		Groups:        []string{"Swamp Thing"},
		Publisher:     strPtr("DC Comics"),
		PublishedDate: strPtr("1984-02-01"),
		Identifier:    strPtr("9780306406157"),
		CustomFields:  map[string]string{"Condition": "Near Mint"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	book, err := svc.RetrieveBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Saga of the Swamp Thing", book.Title)
	require.NotNil(t, book.Number)
	assert.Equal(t, int64(21), *book.Number)
	assert.Equal(t, []string{"Swamp Thing"}, book.Groups)
	assert.Equal(t, map[string]string{"Condition": "Near Mint"}, book.CustomFields)

	exists, err := svc.IdentifierExists(ctx, "9780306406157")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInsertBook_InvalidIdentifierRollsBack(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.InsertBook(ctx, InsertBookParams{
		Title:      "Broken",
		Identifier: strPtr("12345"),
	})
	require.Error(t, err)

	books, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRetrieveBook_NotFound(t *testing.T) {
	svc := setupService(t)

	_, err := svc.RetrieveBook(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func TestFindBooksByTitle(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.InsertBook(ctx, InsertBookParams{Title: "The Sandman Vol. 1"})
	require.NoError(t, err)
	_, err = svc.InsertBook(ctx, InsertBookParams{Title: "The Sandman Vol. 2"})
	require.NoError(t, err)
	_, err = svc.InsertBook(ctx, InsertBookParams{Title: "Watchmen"})
	require.NoError(t, err)

	books, err := svc.FindBooksByTitle(ctx, "sandman")
	require.NoError(t, err)
	assert.Len(t, books, 2)

	books, err = svc.FindBooksByTitle(ctx, "preacher")
	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestUpdateBook_ReplacesLists(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	id, err := svc.InsertBook(ctx, InsertBookParams{
		Title:        "Original",
		Authors:      []string{"First Author", "Second Author"},
		Groups:       []string{"Old Group"},
		CustomFields: map[string]string{"Old Field": "old"},
	})
	require.NoError(t, err)

	err = svc.UpdateBook(ctx, UpdateBookPayload{
		VolumeID:     id,
		Title:        "Updated",
		Number:       intPtr(3),
		Description:  strPtr("A description"),
		Authors:      []string{"Second Author", "Third Author"},
		Groups:       []string{"New Group"},
		CustomFields: map[string]string{"New Field": "new"},
	})
	require.NoError(t, err)

	book, err := svc.RetrieveBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Updated", book.Title)
	require.NotNil(t, book.Number)
	assert.Equal(t, int64(3), *book.Number)
	assert.Equal(t, []string{"New Group"}, book.Groups)
	assert.Equal(t, map[string]string{"New Field": "new"}, book.CustomFields)

	entries, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"Second Author", "Third Author"}, entries[0].Authors)
}

func TestSetBookNumber(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	id, err := svc.InsertBook(ctx, InsertBookParams{Title: "Numbered"})
	require.NoError(t, err)

	require.NoError(t, svc.SetBookNumber(ctx, id, 7))

	book, err := svc.RetrieveBook(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, book.Number)
	assert.Equal(t, int64(7), *book.Number)
}

func TestSetBookGroups(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	id, err := svc.InsertBook(ctx, InsertBookParams{
		Title:  "Grouped",
		Groups: []string{"Alpha", "Beta"},
	})
	require.NoError(t, err)

	require.NoError(t, svc.SetBookGroups(ctx, id, []string{"Beta", "Gamma"}))

	book, err := svc.RetrieveBook(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beta", "Gamma"}, book.Groups)

	// Detached names stay in the lookup table.
	names, err := svc.ListGroupNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, names)
}

func TestCloneBook(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	id, err := svc.InsertBook(ctx, InsertBookParams{
		Title:        "Cloneable",
		Authors:      []string{"Author One"},
		Groups:       []string{"Series"},
		Identifier:   strPtr("9780306406157"),
		CustomFields: map[string]string{"Condition": "Fine"},
	})
	require.NoError(t, err)

	cloneID, err := svc.CloneBook(ctx, id)
	require.NoError(t, err)
	assert.NotEqual(t, id, cloneID)

	clone, err := svc.RetrieveBook(ctx, cloneID)
	require.NoError(t, err)
	assert.Equal(t, "Cloneable", clone.Title)
	assert.Equal(t, []string{"Series"}, clone.Groups)
	assert.Equal(t, map[string]string{"Condition": "Fine"}, clone.CustomFields)

	// Both rows now carry the identifier.
	entries, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		require.Len(t, entry.Identifiers, 1)
		assert.Equal(t, "9780306406157", entry.Identifiers[0].Identifier)
	}
}

func TestCloneBook_NotFound(t *testing.T) {
	svc := setupService(t)

	_, err := svc.CloneBook(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, errcodes.NotFound("Book"))
}

func TestFindComicByEAN(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	id, err := svc.InsertBook(ctx, InsertBookParams{
		Title:      "Issue #1",
		Identifier: strPtr("4006381333931"),
	})
	require.NoError(t, err)

	book, err := svc.FindComicByEAN(ctx, "4006381333931")
	require.NoError(t, err)
	require.NotNil(t, book)
	assert.Equal(t, id, book.VolumeID)

	book, err = svc.FindComicByEAN(ctx, "9999999999990")
	require.NoError(t, err)
	assert.Nil(t, book)

	// An ISBN-10 code is not matched by EAN lookup.
	_, err = svc.InsertBook(ctx, InsertBookParams{
		Title:      "Paperback",
		Identifier: strPtr("0306406152"),
	})
	require.NoError(t, err)

	book, err = svc.FindComicByEAN(ctx, "0306406152")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestListBooks(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	bID, err := svc.InsertBook(ctx, InsertBookParams{Title: "Beta"})
	require.NoError(t, err)
	aID, err := svc.InsertBook(ctx, InsertBookParams{Title: "Alpha"})
	require.NoError(t, err)

	require.NoError(t, svc.thumbs.Save(aID, strings.NewReader("jpeg bytes")))

	entries, err := svc.ListBooks(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, aID, entries[0].Book.VolumeID)
	assert.Equal(t, bID, entries[1].Book.VolumeID)

	require.NotNil(t, entries[0].Thumbnail)
	assert.Equal(t, svc.thumbs.Path(aID), *entries[0].Thumbnail)
	assert.Nil(t, entries[1].Thumbnail)
}

func TestListCustomFieldNames(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.InsertBook(ctx, InsertBookParams{
		Title:        "Fields",
		CustomFields: map[string]string{"Signed": "yes", "Condition": "Good"},
	})
	require.NoError(t, err)

	names, err := svc.ListCustomFieldNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Condition", "Signed"}, names)
}

func TestUpsertImportedBook(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	imported := &ImportedBook{
		Book: &Book{
			VolumeID:  "gb-volume-1",
			Title:     "Imported Title",
			Publisher: strPtr("Vertigo"),
			IsEbook:   intPtr(0),
		},
		Authors:    []string{"Neil Gaiman"},
		Categories: []string{"Comics & Graphic Novels"},
		Identifiers: []ImportedIdentifier{
			{Type: "ISBN_13", Identifier: "9781401225759"},
			{Type: "ISBN_10", Identifier: "1401225756"},
		},
	}
	require.NoError(t, svc.UpsertImportedBook(ctx, imported))

	book, err := svc.RetrieveBook(ctx, "gb-volume-1")
	require.NoError(t, err)
	assert.Equal(t, "Imported Title", book.Title)

	reimport := &ImportedBook{
		Book: &Book{
			VolumeID:  "gb-volume-1",
			Title:     "Corrected Title",
			Publisher: strPtr("DC Comics"),
		},
		Authors:    []string{"Neil Gaiman", "Sam Kieth"},
		Categories: []string{"Comics & Graphic Novels", "Fantasy"},
		Identifiers: []ImportedIdentifier{
			{Type: "ISBN_13", Identifier: "9781401225759"},
		},
	}
	require.NoError(t, svc.UpsertImportedBook(ctx, reimport))

	book, err = svc.RetrieveBook(ctx, "gb-volume-1")
	require.NoError(t, err)
	assert.Equal(t, "Corrected Title", book.Title)
	require.NotNil(t, book.Publisher)
	assert.Equal(t, "DC Comics", *book.Publisher)

	entries, err := svc.ListBooks(ctx)
	require.NoError(t, err)

	var entry *BookWithThumbnail
	for _, e := range entries {
		if e.Book.VolumeID == "gb-volume-1" {
			entry = e
		}
	}
	require.NotNil(t, entry)

	// Authors replaced, identifiers and categories additive without
	// duplicates.
	assert.Equal(t, []string{"Neil Gaiman", "Sam Kieth"}, entry.Authors)
	assert.Len(t, entry.Identifiers, 2)
	assert.Equal(t, []string{"Comics & Graphic Novels", "Fantasy"}, entry.Categories)
}
