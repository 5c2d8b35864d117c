package dto

// SubmitRequest is the public form payload. Data is deliberately opaque:
// submissions arrive with inconsistent structure, including an optional
// nested "address" object, and are flattened before storage.
type SubmitRequest struct {
	UniqueCode string                 `json:"uniqueCode"`
	Data       map[string]interface{} `json:"data" validate:"required"`
}

// SubmitResponse tells the submitter whether this was an update to an
// existing record or a brand-new entry (with its assigned code).
type SubmitResponse struct {
	Message    string `json:"message"`
	Type       string `json:"type"` // "update" or "new"
	UniqueCode string `json:"uniqueCode,omitempty"`
}

const (
	SubmitTypeUpdate = "update"
	SubmitTypeNew    = "new"
)

// LookupResponse is the public view of a record. Data reflects any pending
// change overlaid on the authoritative fields, so a submitter sees their
// own in-flight edit.
type LookupResponse struct {
	Exists bool                   `json:"exists"`
	Data   map[string]interface{} `json:"data,omitempty"`
}
