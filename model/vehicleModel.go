// model/vehicle.go
package model

type VehicleOwner string

const (
	OwnerClient  VehicleOwner = "CLIENT"
	OwnerCompany VehicleOwner = "COMPANY"
	OwnerBank    VehicleOwner = "BANK"
)

type Vehicle struct {
	ID           int64        `json:"id"`
	Registration string       `json:"registration"`
	Year         int          `json:"year"`
	Brand        string       `json:"brand"`
	Model        string       `json:"model"`
	Plate        string       `json:"plate"`
	DailyRate    float64      `json:"daily_rate"`
	Description  *string      `json:"description,omitempty"`
	Offered      bool         `json:"offered"`
	Owner        VehicleOwner `json:"owner"`
}
