package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`
			CREATE TABLE books (
				volume_id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				number INTEGER,
				publisher TEXT,
				published_date TEXT,
				description TEXT,
				page_count INTEGER,
				print_type TEXT,
				maturity_rating TEXT,
				language TEXT,
				preview_link TEXT,
				info_link TEXT,
				canonical_link TEXT,
				small_thumbnail TEXT,
				thumbnail TEXT,
				country TEXT,
				saleability TEXT,
				is_ebook INTEGER CHECK (is_ebook IN (0, 1)),
				viewability TEXT,
				embeddable INTEGER CHECK (embeddable IN (0, 1)),
				public_domain INTEGER CHECK (public_domain IN (0, 1)),
				text_to_speech_permission TEXT,
				epub_available INTEGER CHECK (epub_available IN (0, 1)),
				pdf_available INTEGER CHECK (pdf_available IN (0, 1)),
				web_reader_link TEXT,
				access_view_status TEXT,
				quote_sharing_allowed INTEGER CHECK (quote_sharing_allowed IN (0, 1))
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE authors (
				author_id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE categories (
				category_id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE groups (
				group_id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE custom_fields (
				field_id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL UNIQUE
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE book_authors (
				volume_id TEXT NOT NULL,
				author_id INTEGER NOT NULL,
				position INTEGER NOT NULL,
				PRIMARY KEY (volume_id, author_id),
				FOREIGN KEY (volume_id) REFERENCES books (volume_id) ON DELETE CASCADE,
				FOREIGN KEY (author_id) REFERENCES authors (author_id) ON DELETE RESTRICT
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE book_categories (
				volume_id TEXT NOT NULL,
				category_id INTEGER NOT NULL,
				PRIMARY KEY (volume_id, category_id),
				FOREIGN KEY (volume_id) REFERENCES books (volume_id) ON DELETE CASCADE,
				FOREIGN KEY (category_id) REFERENCES categories (category_id) ON DELETE RESTRICT
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE book_groups (
				volume_id TEXT NOT NULL,
				group_id INTEGER NOT NULL,
				PRIMARY KEY (volume_id, group_id),
				FOREIGN KEY (volume_id) REFERENCES books (volume_id) ON DELETE CASCADE,
				FOREIGN KEY (group_id) REFERENCES groups (group_id) ON DELETE RESTRICT
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		// No UNIQUE (type, identifier): comic issues in one series can share
		// a single barcode across multiple books.
		_, err = db.Exec(`
			CREATE TABLE book_identifiers (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				volume_id TEXT NOT NULL,
				type TEXT NOT NULL,
				identifier TEXT NOT NULL,
				FOREIGN KEY (volume_id) REFERENCES books (volume_id) ON DELETE CASCADE
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = db.Exec(`
			CREATE TABLE book_custom_fields (
				volume_id TEXT NOT NULL,
				field_id INTEGER NOT NULL,
				value TEXT NOT NULL,
				PRIMARY KEY (volume_id, field_id),
				FOREIGN KEY (volume_id) REFERENCES books (volume_id) ON DELETE CASCADE,
				FOREIGN KEY (field_id) REFERENCES custom_fields (field_id) ON DELETE RESTRICT
			)
`)
		if err != nil {
			return errors.WithStack(err)
		}

		for _, stmt := range []string{
			`CREATE INDEX ix_authors_name ON authors (name)`,
			`CREATE INDEX ix_categories_name ON categories (name)`,
			`CREATE INDEX ix_groups_name ON groups (name)`,
			`CREATE INDEX ix_custom_fields_name ON custom_fields (name)`,
			`CREATE INDEX ix_book_identifiers_identifier ON book_identifiers (identifier)`,
			`CREATE INDEX ix_book_identifiers_volume_id ON book_identifiers (volume_id)`,
			`CREATE INDEX ix_book_authors_author_id ON book_authors (author_id)`,
			`CREATE INDEX ix_book_categories_category_id ON book_categories (category_id)`,
			`CREATE INDEX ix_book_groups_group_id ON book_groups (group_id)`,
		} {
			if _, err := db.Exec(stmt); err != nil {
				return errors.WithStack(err)
			}
		}

		return nil
	}

	down := func(_ context.Context, db *bun.DB) error {
		for _, table := range []string{
			"book_custom_fields",
			"book_identifiers",
			"book_groups",
			"book_categories",
			"book_authors",
			"custom_fields",
			"groups",
			"categories",
			"authors",
			"books",
		} {
			if _, err := db.Exec("DROP TABLE IF EXISTS " + table); err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	}

	Migrations.MustRegister(up, down)
}
