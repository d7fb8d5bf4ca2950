package vehicle

type VehicleReq struct {
	Registration string  `json:"registration" validate:"required"`
	Year         int     `json:"year" validate:"required,gt=1900"`
	Brand        string  `json:"brand" validate:"required"`
	Model        string  `json:"model" validate:"required"`
	Plate        string  `json:"plate" validate:"required"`
	DailyRate    float64 `json:"daily_rate" validate:"gte=0"`
	Description  *string `json:"description,omitempty"`
	Owner        string  `json:"owner" validate:"omitempty,oneof=CLIENT COMPANY BANK"`
}
