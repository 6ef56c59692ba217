package model

import "time"

type Review struct {
	ID         int64     `json:"id"`
	BookingID  int64     `json:"booking_id"`
	PropertyID int64     `json:"property_id"`
	GuestID    int64     `json:"guest_id"`
	GuestName  string    `json:"guest_name,omitempty"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewSummary struct {
	Reviews       []Review `json:"reviews"`
	AverageRating float64  `json:"average_rating"`
	Count         int      `json:"count"`
}
