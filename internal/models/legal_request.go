package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	StatusDraft     RequestStatus = "draft"
	StatusSubmitted RequestStatus = "submitted"
	StatusInReview  RequestStatus = "in_review"
	StatusClosed    RequestStatus = "closed"
)

var statusLabels = map[RequestStatus]string{
	StatusDraft:     "Draft",
	StatusSubmitted: "Submitted",
	StatusInReview:  "In Review",
	StatusClosed:    "Closed",
}

// Label returns the display label, or the raw value for unknown statuses.
func (s RequestStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Assigned reports whether a request in this status must have an attorney bound.
func (s RequestStatus) Assigned() bool {
	return s == StatusInReview || s == StatusClosed
}

type CaseType string

const (
	CaseTypeImmigration    CaseType = "immigration"
	CaseTypePersonalInjury CaseType = "personal_injury"
	CaseTypeFamilyLaw      CaseType = "family_law"
	CaseTypeCriminal       CaseType = "criminal"
	CaseTypeEstate         CaseType = "estate"
	CaseTypeOther          CaseType = "other"
)

var caseTypeLabels = map[CaseType]string{
	CaseTypeImmigration:    "Immigration",
	CaseTypePersonalInjury: "Personal Injury",
	CaseTypeFamilyLaw:      "Family Law",
	CaseTypeCriminal:       "Criminal",
	CaseTypeEstate:         "Estate",
	CaseTypeOther:          "Other",
}

func (c CaseType) Valid() bool {
	_, ok := caseTypeLabels[c]
	return ok
}

func (c CaseType) Label() string {
	if l, ok := caseTypeLabels[c]; ok {
		return l
	}
	return string(c)
}

type LegalRequest struct {
	ID          uuid.UUID     `db:"id"`
	ClientID    uuid.UUID     `db:"client_id"`
	AttorneyID  *uuid.UUID    `db:"attorney_id"`
	CaseType    CaseType      `db:"case_type"`
	Status      RequestStatus `db:"status"`
	FullName    string        `db:"full_name"`
	Phone       *string       `db:"phone"`
	Email       *string       `db:"email"`
	Description *string       `db:"description"`
	CreatedAt   time.Time     `db:"created_at"`
	UpdatedAt   time.Time     `db:"updated_at"`
}

// Claimable reports whether an attorney may still claim the request.
func (r *LegalRequest) Claimable() bool {
	return r.AttorneyID == nil && r.Status == StatusSubmitted
}

// AssignedTo reports whether id is the bound attorney.
func (r *LegalRequest) AssignedTo(id uuid.UUID) bool {
	return r.AttorneyID != nil && *r.AttorneyID == id
}
