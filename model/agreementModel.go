// model/agreement.go
package model

import "time"

type AgreementStatus string

const (
	AgreementPending   AgreementStatus = "PENDING"
	AgreementApproved  AgreementStatus = "APPROVED"
	AgreementRejected  AgreementStatus = "REJECTED"
	AgreementActive    AgreementStatus = "ACTIVE"
	AgreementFinalized AgreementStatus = "FINALIZED"
	AgreementCancelled AgreementStatus = "CANCELLED"
)

// Terminal reports whether the status admits no further transitions.
func (s AgreementStatus) Terminal() bool {
	switch s {
	case AgreementRejected, AgreementFinalized, AgreementCancelled:
		return true
	}
	return false
}

type AgreementType string

const (
	TypeRental AgreementType = "RENTAL"
	TypeCredit AgreementType = "CREDIT"
)

// Agreement binds a requester to a vehicle for an inclusive date range.
// Status only ever changes through the agreement service's transitions.
type Agreement struct {
	ID          int64           `json:"id"`
	VehicleID   int64           `json:"vehicle_id"`
	RequesterID int64           `json:"requester_id"`
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Status      AgreementStatus `json:"status"`
	Type        AgreementType   `json:"type"`
	DailyRate   float64         `json:"daily_rate"`
	Notes       *string         `json:"notes,omitempty"`
	ReviewerID  *int64          `json:"reviewer_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
