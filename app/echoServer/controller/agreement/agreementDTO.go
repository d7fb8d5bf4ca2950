package agreement

import "time"

const dateLayout = "2006-01-02"

type CreateAgreementReq struct {
	VehicleID   int64   `json:"vehicle_id" validate:"required,gt=0"`
	RequesterID int64   `json:"requester_id" validate:"required,gt=0"`
	StartDate   string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string  `json:"end_date" validate:"required,datetime=2006-01-02"`
	Type        string  `json:"type" validate:"omitempty,oneof=RENTAL CREDIT"`
	Notes       *string `json:"notes,omitempty"`
}

type UpdateAgreementReq struct {
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes     *string `json:"notes,omitempty"`
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}
