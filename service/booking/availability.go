package bookingsvc

import (
	"time"

	"github.com/nilaw2017/rental-server/model"
)

const (
	reasonNotAvailable = "property is not available for booking"
	reasonBeforeWindow = "requested start is before the property's availability window"
	reasonAfterWindow  = "requested end is after the property's availability window"
	reasonOverlap      = "requested dates overlap existing bookings"
)

// CheckAvailability decides whether [start, end] can be booked on p given its
// existing bookings. Only pending and confirmed bookings block dates, and the
// comparison is inclusive: a booking ending on the requested start day conflicts.
func CheckAvailability(p *model.Property, start, end time.Time, bookings []model.Booking) model.Availability {
	if !p.IsAvailable {
		return model.Availability{Reason: reasonNotAvailable}
	}
	if p.AvailableFrom != nil && start.Before(*p.AvailableFrom) {
		return model.Availability{Reason: reasonBeforeWindow}
	}
	if p.AvailableTo != nil && end.After(*p.AvailableTo) {
		return model.Availability{Reason: reasonAfterWindow}
	}

	want := model.DateRange{Start: start, End: end}
	var conflicts []model.DateRange
	for _, b := range bookings {
		if b.PropertyID != 0 && b.PropertyID != p.ID {
			continue
		}
		if !b.Status.Active() {
			continue
		}
		r := model.DateRange{Start: b.StartDate, End: b.EndDate}
		if r.Overlaps(want) {
			conflicts = append(conflicts, r)
		}
	}
	if len(conflicts) > 0 {
		return model.Availability{Reason: reasonOverlap, Conflicts: conflicts}
	}
	return model.Availability{Available: true}
}
