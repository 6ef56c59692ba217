// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// Active bookings hold their dates against other bookings.
func (s BookingStatus) Active() bool { return s == BookingPending || s == BookingConfirmed }

func (s BookingStatus) Terminal() bool { return s == BookingCancelled || s == BookingCompleted }

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

type Booking struct {
	ID            int64         `json:"id"`
	PropertyID    int64         `json:"property_id"`
	GuestID       int64         `json:"guest_id"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	GuestCount    int           `json:"guest_count"`
	TotalPrice    float64       `json:"total_price"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// DateRange is an inclusive [Start, End] span.
type DateRange struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

// Overlaps uses closed-interval comparison: ranges sharing a boundary overlap.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}

type Availability struct {
	Available bool        `json:"available"`
	Reason    string      `json:"reason,omitempty"`
	Conflicts []DateRange `json:"conflicts,omitempty"`
}
