package bookingsvc

import (
	"time"

	"github.com/nilaw2017/rental-server/model"
)

const day = 24 * time.Hour

// Days counts started days between two instants, never less than one.
func Days(start, end time.Time) int {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	n := int(d / day)
	if d%day != 0 {
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// TotalPrice prices a stay. Month and year periods are prorated over 30 and
// 365 days and the fraction is kept. Sale listings cost the listed price.
func TotalPrice(p *model.Property, start, end time.Time) float64 {
	if p.ListingType == model.ListingSale || p.RentalPeriod == nil {
		return p.Price
	}
	days := float64(Days(start, end))
	switch *p.RentalPeriod {
	case model.PeriodMonth:
		return p.Price * days / 30
	case model.PeriodYear:
		return p.Price * days / 365
	default:
		return p.Price * days
	}
}
