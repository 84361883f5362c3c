package catalog

type ListBooksQuery struct {
	Search *string `query:"search" json:"search,omitempty" validate:"omitempty,max=500"`
}

type CreateBookPayload struct {
	Title         string            `json:"title" mod:"trim" validate:"required,max=500"`
	Number        *int64            `json:"number,omitempty" validate:"omitempty,min=0"`
	Authors       []string          `json:"authors,omitempty" validate:"dive,required,max=300"`
	Groups        []string          `json:"groups,omitempty" validate:"dive,required,max=300"`
	Publisher     *string           `json:"publisher,omitempty" validate:"omitempty,max=300"`
	PublishedDate *string           `json:"published_date,omitempty" validate:"omitempty,date"`
	Identifier    *string           `json:"identifier,omitempty" mod:"trim" validate:"omitempty,max=20"`
	CustomFields  map[string]string `json:"custom_fields,omitempty"`
}

type UpdateBookBody struct {
	Title         string            `json:"title" mod:"trim" validate:"required,max=500"`
	Number        *int64            `json:"number,omitempty" validate:"omitempty,min=0"`
	Publisher     *string           `json:"publisher,omitempty" validate:"omitempty,max=300"`
	PublishedDate *string           `json:"published_date,omitempty" validate:"omitempty,date"`
	Description   *string           `json:"description,omitempty"`
	PageCount     *int64            `json:"page_count,omitempty" validate:"omitempty,min=0"`
	Language      *string           `json:"language,omitempty" validate:"omitempty,max=10"`
	Authors       []string          `json:"authors,omitempty" validate:"dive,required,max=300"`
	Groups        []string          `json:"groups,omitempty" validate:"dive,required,max=300"`
	CustomFields  map[string]string `json:"custom_fields,omitempty"`
}

type UpdateNumberPayload struct {
	Number int64 `json:"number" validate:"min=0"`
}

type UpdateGroupsPayload struct {
	Groups []string `json:"groups" validate:"dive,required,max=300"`
}
