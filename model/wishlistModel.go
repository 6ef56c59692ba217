package model

import "time"

type WishlistItem struct {
	PropertyID int64     `json:"property_id"`
	Title      string    `json:"title"`
	City       string    `json:"city"`
	Price      float64   `json:"price"`
	AddedAt    time.Time `json:"added_at"`
}
