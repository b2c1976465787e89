package dto

// ApiResponse is the envelope shared by every endpoint.
type ApiResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}
