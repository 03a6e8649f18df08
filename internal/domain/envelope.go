package domain

// Envelope uniform gateway response.
// Callers must branch on Success before trusting Data.
type Envelope[T any] struct {
	Success bool                `json:"success"`
	Message string              `json:"message,omitempty"`
	Data    *T                  `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}
