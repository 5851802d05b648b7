package dto

import (
	"time"

	"legaldesk/internal/models"
)

type CreateLegalRequest struct {
	CaseType    string `json:"case_type" validate:"omitempty,oneof=immigration personal_injury family_law criminal estate other"`
	FullName    string `json:"full_name" validate:"required,max=200"`
	Phone       string `json:"phone" validate:"omitempty,max=32"`
	Email       string `json:"email" validate:"omitempty,email,max=254"`
	Description string `json:"description" validate:"omitempty,max=5000"`
}

type LegalRequestResponse struct {
	ID            string  `json:"id"`
	ClientID      string  `json:"client_id"`
	AttorneyID    *string `json:"attorney_id"`
	CaseType      string  `json:"case_type"`
	CaseTypeLabel string  `json:"case_type_label"`
	Status        string  `json:"status"`
	StatusLabel   string  `json:"status_label"`
	FullName      string  `json:"full_name"`
	Phone         *string `json:"phone"`
	Email         *string `json:"email"`
	Description   *string `json:"description"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type RequestListResponse struct {
	Requests  []LegalRequestResponse `json:"requests"`
	Available []LegalRequestResponse `json:"available,omitempty"`
	Mine      []LegalRequestResponse `json:"mine,omitempty"`
}

type RequestDetailResponse struct {
	Request   LegalRequestResponse `json:"request"`
	Documents []DocumentResponse   `json:"documents"`
}

func NewLegalRequestResponse(r *models.LegalRequest) LegalRequestResponse {
	resp := LegalRequestResponse{
		ID:            r.ID.String(),
		ClientID:      r.ClientID.String(),
		CaseType:      string(r.CaseType),
		CaseTypeLabel: r.CaseType.Label(),
		Status:        string(r.Status),
		StatusLabel:   r.Status.Label(),
		FullName:      r.FullName,
		Phone:         r.Phone,
		Email:         r.Email,
		Description:   r.Description,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}
	if r.AttorneyID != nil {
		id := r.AttorneyID.String()
		resp.AttorneyID = &id
	}
	return resp
}

func NewLegalRequestResponses(rs []*models.LegalRequest) []LegalRequestResponse {
	out := make([]LegalRequestResponse, len(rs))
	for i, r := range rs {
		out[i] = NewLegalRequestResponse(r)
	}
	return out
}
