package importer

type ImportPayload struct {
	Code string `json:"code" mod:"trim" validate:"required,max=20"`
}
