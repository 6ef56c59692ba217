package booking

import "github.com/nilaw2017/rental-server/model"

type CreateBookingReq struct {
	PropertyID int64  `json:"property_id" validate:"required,gt=0"`
	StartDate  string `json:"start_date" validate:"required"`
	EndDate    string `json:"end_date" validate:"required"`
	GuestCount int    `json:"guest_count" validate:"required,gte=1"`
}

type UpdateStatusReq struct {
	Status model.BookingStatus `json:"status" validate:"required,oneof=confirmed cancelled completed"`
}

type AvailabilityQuery struct {
	StartDate string `query:"startDate" validate:"required"`
	EndDate   string `query:"endDate" validate:"required"`
}
