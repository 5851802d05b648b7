package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestDocument is a ledger row: one stored object attached to one request.
type RequestDocument struct {
	ID             uuid.UUID `db:"id"`
	LegalRequestID uuid.UUID `db:"legal_request_id"`
	UploadedBy     uuid.UUID `db:"uploaded_by"`
	Path           string    `db:"path"`
	Name           string    `db:"name"`
	MimeType       *string   `db:"mime_type"`
	Size           *int64    `db:"size"`
	CreatedAt      time.Time `db:"created_at"`
}
