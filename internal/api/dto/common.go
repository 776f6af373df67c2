package dto

import (
	"time"

	"github.com/hugh/scoutzos/internal/database/models"
)

// ErrorResponse is the body of every non-2xx response. Kind is one of the
// apperr kinds; Details maps field names to messages for validation errors.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Kind    string            `json:"kind"`
	Details map[string]string `json:"details,omitempty"`
}

type CreateOrganizationRequest struct {
	Name string `json:"name"`
}

type CreateUserRequest struct {
	Email string  `json:"email"`
	Name  *string `json:"name,omitempty"`
}

type AddMemberRequest struct {
	UserID string      `json:"user_id"`
	Role   models.Role `json:"role,omitempty"`
}

// ListResponse wraps unpaginated collections.
type ListResponse[T any] struct {
	Items []T `json:"items"`
}

type DownloadResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
