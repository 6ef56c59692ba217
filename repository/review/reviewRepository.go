package reviewrepo

import (
	"context"

	"github.com/nilaw2017/rental-server/model"
	"github.com/nilaw2017/rental-server/util/database"
)

type Repo interface {
	Create(ctx context.Context, rv *model.Review) error
	ByBookingID(ctx context.Context, bookingID int64) (*model.Review, error)
	ListByProperty(ctx context.Context, propertyID int64) ([]model.Review, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, rv *model.Review) error {
	const q = `
INSERT INTO reviews (booking_id, property_id, guest_id, rating, comment)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, created_at`
	return r.db.Pool.QueryRow(ctx, q, rv.BookingID, rv.PropertyID, rv.GuestID, rv.Rating, rv.Comment).
		Scan(&rv.ID, &rv.CreatedAt)
}

// ByBookingID returns nil, nil when the booking has no review.
func (r *repo) ByBookingID(ctx context.Context, bookingID int64) (*model.Review, error) {
	const q = `
SELECT id, booking_id, property_id, guest_id, rating, comment, created_at
FROM reviews
WHERE booking_id=$1`
	var rv model.Review
	err := r.db.Pool.QueryRow(ctx, q, bookingID).
		Scan(&rv.ID, &rv.BookingID, &rv.PropertyID, &rv.GuestID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *repo) ListByProperty(ctx context.Context, propertyID int64) ([]model.Review, error) {
	const q = `
SELECT rv.id, rv.booking_id, rv.property_id, rv.guest_id, u.first_name || ' ' || u.last_name,
       rv.rating, rv.comment, rv.created_at
FROM reviews rv
JOIN users u ON u.id = rv.guest_id
WHERE rv.property_id=$1
ORDER BY rv.created_at DESC, rv.id DESC`
	rows, err := r.db.Pool.Query(ctx, q, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Review
	for rows.Next() {
		var rv model.Review
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.PropertyID, &rv.GuestID, &rv.GuestName,
			&rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
