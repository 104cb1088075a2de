package models

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// LookupResponse wraps list endpoints.
type LookupResponse struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

// PatchesResponse lists known patches, newest first.
type PatchesResponse struct {
	Items []Patch `json:"items"`
	Count int     `json:"count"`
}
