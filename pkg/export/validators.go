package export

type ExportPayload struct {
	Path string `json:"path" mod:"trim" validate:"required,max=4096"`
}
