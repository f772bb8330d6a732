package types

import "github.com/phonedesk/phonedesk-backend/pkg/pagination"

// SuccessEnvelope is the body for every successful response.
type SuccessEnvelope struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Data       any              `json:"data"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
	Summary    any              `json:"summary,omitempty"`
}

// APIError is the machine-readable error block.
type APIError struct {
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope is the body for every failed response.
type ErrorEnvelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Error   APIError `json:"error"`
}
