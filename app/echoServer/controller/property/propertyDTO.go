package property

import (
	"github.com/nilaw2017/rental-server/model"
	"github.com/nilaw2017/rental-server/util/dates"
)

type PropertyReq struct {
	HostID        *int64  `json:"host_id" validate:"omitempty,gt=0"` // admin only
	CategoryID    *int64  `json:"category_id" validate:"omitempty,gt=0"`
	Title         string  `json:"title" validate:"required,max=200"`
	Description   string  `json:"description"`
	Address       string  `json:"address"`
	City          string  `json:"city" validate:"required"`
	Country       string  `json:"country"`
	Price         float64 `json:"price" validate:"gte=0"`
	ListingType   string  `json:"listing_type" validate:"required,oneof=RENT SALE"`
	RentalPeriod  *string `json:"rental_period" validate:"omitempty,oneof=DAY MONTH YEAR"`
	AvailableFrom string  `json:"available_from"`
	AvailableTo   string  `json:"available_to"`
	IsAvailable   *bool   `json:"is_available"`
	MaxGuests     int     `json:"max_guests" validate:"gte=0"`
	Bedrooms      int     `json:"bedrooms" validate:"gte=0"`
	Bathrooms     int     `json:"bathrooms" validate:"gte=0"`
	AmenityIDs    []int64 `json:"amenity_ids" validate:"dive,gt=0"`
}

type ListQuery struct {
	City          string `query:"city"`
	CategoryID    int64  `query:"category_id"`
	ListingType   string `query:"listing_type" validate:"omitempty,oneof=RENT SALE"`
	AvailableOnly bool   `query:"available_only"`
}

func (r PropertyReq) toModel() (*model.Property, error) {
	from, err := dates.ParseOptional(r.AvailableFrom)
	if err != nil {
		return nil, err
	}
	to, err := dates.ParseOptional(r.AvailableTo)
	if err != nil {
		return nil, err
	}

	p := &model.Property{
		CategoryID:    r.CategoryID,
		Title:         r.Title,
		Description:   r.Description,
		Address:       r.Address,
		City:          r.City,
		Country:       r.Country,
		Price:         r.Price,
		ListingType:   model.ListingType(r.ListingType),
		AvailableFrom: from,
		AvailableTo:   to,
		IsAvailable:   true,
		MaxGuests:     r.MaxGuests,
		Bedrooms:      r.Bedrooms,
		Bathrooms:     r.Bathrooms,
		AmenityIDs:    r.AmenityIDs,
	}
	if r.RentalPeriod != nil && *r.RentalPeriod != "" {
		rp := model.RentalPeriod(*r.RentalPeriod)
		p.RentalPeriod = &rp
	}
	if r.IsAvailable != nil {
		p.IsAvailable = *r.IsAvailable
	}
	if r.HostID != nil {
		p.HostID = *r.HostID
	}
	if p.AmenityIDs == nil {
		p.AmenityIDs = []int64{}
	}
	return p, nil
}
