package catalog

import (
	"github.com/uptrace/bun"
)

// Book is one catalog entry, either a book or a single comic issue. The
// volume id is externally supplied on import and generated on manual
// creation; the title is the only required scalar.
type Book struct {
	bun.BaseModel `bun:"table:books,alias:b"`

	VolumeID               string  `bun:"volume_id,pk" json:"volume_id"`
	Title                  string  `bun:"title" json:"title"`
	Number                 *int64  `json:"number"`
	Publisher              *string `json:"publisher"`
	PublishedDate          *string `json:"published_date"`
	Description            *string `json:"description"`
	PageCount              *int64  `json:"page_count"`
	PrintType              *string `json:"print_type"`
	MaturityRating         *string `json:"maturity_rating"`
	Language               *string `json:"language"`
	PreviewLink            *string `json:"preview_link"`
	InfoLink               *string `json:"info_link"`
	CanonicalLink          *string `json:"canonical_link"`
	SmallThumbnail         *string `json:"small_thumbnail"`
	Thumbnail              *string `json:"thumbnail"`
	Country                *string `json:"country"`
	Saleability            *string `json:"saleability"`
	IsEbook                *int64  `json:"is_ebook"`
	Viewability            *string `json:"viewability"`
	Embeddable             *int64  `json:"embeddable"`
	PublicDomain           *int64  `json:"public_domain"`
	TextToSpeechPermission *string `json:"text_to_speech_permission"`
	EpubAvailable          *int64  `json:"epub_available"`
	PdfAvailable           *int64  `json:"pdf_available"`
	WebReaderLink          *string `json:"web_reader_link"`
	AccessViewStatus       *string `json:"access_view_status"`
	QuoteSharingAllowed    *int64  `json:"quote_sharing_allowed"`

	// Populated on read, not stored on the books row.
	Groups       []string          `bun:"-" json:"groups"`
	CustomFields map[string]string `bun:"-" json:"custom_fields"`
}

// BookWithThumbnail is a fully enriched catalog entry as returned by
// ListBooks: relation rows resolved plus a thumbnail path when the asset
// file exists.
type BookWithThumbnail struct {
	Book        *Book             `json:"book"`
	Authors     []string          `json:"authors"`
	Categories  []string          `json:"categories"`
	Identifiers []*BookIdentifier `json:"identifiers"`
	Thumbnail   *string           `json:"thumbnail"`
}

// Author, Category, Group, and CustomField are unique-name lookup tables.
// Rows are created lazily and never garbage collected.
type Author struct {
	bun.BaseModel `bun:"table:authors,alias:a"`

	AuthorID int64  `bun:"author_id,pk,autoincrement" json:"author_id"`
	Name     string `bun:"name" json:"name"`
}

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:c"`

	CategoryID int64  `bun:"category_id,pk,autoincrement" json:"category_id"`
	Name       string `bun:"name" json:"name"`
}

type Group struct {
	bun.BaseModel `bun:"table:groups,alias:g"`

	GroupID int64  `bun:"group_id,pk,autoincrement" json:"group_id"`
	Name    string `bun:"name" json:"name"`
}

type CustomField struct {
	bun.BaseModel `bun:"table:custom_fields,alias:cf"`

	FieldID int64  `bun:"field_id,pk,autoincrement" json:"field_id"`
	Name    string `bun:"name" json:"name"`
}

// BookAuthor orders a book's authors; positions are contiguous from 0 and
// reassigned wholesale on update.
type BookAuthor struct {
	bun.BaseModel `bun:"table:book_authors,alias:ba"`

	VolumeID string `bun:"volume_id,pk" json:"volume_id"`
	AuthorID int64  `bun:"author_id,pk" json:"author_id"`
	Position int64  `bun:"position" json:"position"`
}

type BookCategory struct {
	bun.BaseModel `bun:"table:book_categories,alias:bc"`

	VolumeID   string `bun:"volume_id,pk" json:"volume_id"`
	CategoryID int64  `bun:"category_id,pk" json:"category_id"`
}

type BookGroup struct {
	bun.BaseModel `bun:"table:book_groups,alias:bg"`

	VolumeID string `bun:"volume_id,pk" json:"volume_id"`
	GroupID  int64  `bun:"group_id,pk" json:"group_id"`
}

// BookIdentifier attaches a classified code to a book. A (type, identifier)
// pair is not unique across books: comic issues in one series share a
// barcode and are distinguished by number and group membership.
type BookIdentifier struct {
	bun.BaseModel `bun:"table:book_identifiers,alias:bi"`

	ID         int64  `bun:"id,pk,autoincrement" json:"id"`
	VolumeID   string `bun:"volume_id" json:"volume_id"`
	Type       string `bun:"type" json:"type"`
	Identifier string `bun:"identifier" json:"identifier"`
}

// BookCustomField holds one value per (book, field) pair; absent pairs mean
// "no value", not empty string.
type BookCustomField struct {
	bun.BaseModel `bun:"table:book_custom_fields,alias:bcf"`

	VolumeID string `bun:"volume_id,pk" json:"volume_id"`
	FieldID  int64  `bun:"field_id,pk" json:"field_id"`
	Value    string `bun:"value" json:"value"`
}
