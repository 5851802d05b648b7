package dto

import (
	"time"

	"legaldesk/internal/models"
)

type DocumentResponse struct {
	ID             string  `json:"id"`
	LegalRequestID string  `json:"legal_request_id"`
	UploadedBy     string  `json:"uploaded_by"`
	Path           string  `json:"path"`
	Name           string  `json:"name"`
	MimeType       *string `json:"mime_type"`
	Size           *int64  `json:"size"`
	CreatedAt      string  `json:"created_at"`
}

type SignedURLResponse struct {
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

func NewDocumentResponse(doc *models.RequestDocument) DocumentResponse {
	return DocumentResponse{
		ID:             doc.ID.String(),
		LegalRequestID: doc.LegalRequestID.String(),
		UploadedBy:     doc.UploadedBy.String(),
		Path:           doc.Path,
		Name:           doc.Name,
		MimeType:       doc.MimeType,
		Size:           doc.Size,
		CreatedAt:      doc.CreatedAt.Format(time.RFC3339),
	}
}

func NewDocumentResponses(docs []*models.RequestDocument) []DocumentResponse {
	out := make([]DocumentResponse, len(docs))
	for i, doc := range docs {
		out[i] = NewDocumentResponse(doc)
	}
	return out
}
