// model/property.go
package model

import "time"

type ListingType string

const (
	ListingRent ListingType = "RENT"
	ListingSale ListingType = "SALE"
)

type RentalPeriod string

const (
	PeriodDay   RentalPeriod = "DAY"
	PeriodMonth RentalPeriod = "MONTH"
	PeriodYear  RentalPeriod = "YEAR"
)

type Property struct {
	ID            int64         `json:"id"`
	HostID        int64         `json:"host_id"`
	CategoryID    *int64        `json:"category_id,omitempty"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Address       string        `json:"address"`
	City          string        `json:"city"`
	Country       string        `json:"country"`
	Price         float64       `json:"price"`
	ListingType   ListingType   `json:"listing_type"`
	RentalPeriod  *RentalPeriod `json:"rental_period,omitempty"`
	AvailableFrom *time.Time    `json:"available_from,omitempty"`
	AvailableTo   *time.Time    `json:"available_to,omitempty"`
	IsAvailable   bool          `json:"is_available"`
	MaxGuests     int           `json:"max_guests"`
	Bedrooms      int           `json:"bedrooms"`
	Bathrooms     int           `json:"bathrooms"`
	Images        []string      `json:"images"`
	AmenityIDs    []int64       `json:"amenity_ids"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type PropertyFilter struct {
	City          string
	CategoryID    int64
	ListingType   ListingType
	HostID        int64
	AvailableOnly bool
}
