package dto

// ErrorResponse is the HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DataResponse wraps list payloads so they can grow metadata without breaking clients.
type DataResponse[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
}
