// repository/booking/repo.go
package bookingrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nilaw2017/rental-server/model"
	"github.com/nilaw2017/rental-server/util/database"
)

type Repo interface {
	// Properties
	PropertyForUpdate(ctx context.Context, tx pgx.Tx, propertyID int64) (*model.Property, error)

	// Overlap checks: active bookings with start <= end AND end >= start.
	Overlapping(ctx context.Context, propertyID int64, start, end time.Time) ([]model.Booking, error)
	OverlappingTx(ctx context.Context, tx pgx.Tx, propertyID int64, start, end time.Time) ([]model.Booking, error)

	// Bookings
	Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) error
	ByID(ctx context.Context, id int64) (b *model.Booking, hostID int64, err error)
	ByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (b *model.Booking, hostID int64, err error)
	UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status model.BookingStatus) (time.Time, error)
	UpdatePaymentStatus(ctx context.Context, tx pgx.Tx, id int64, ps model.PaymentStatus) (time.Time, error)

	// History
	ListByGuest(ctx context.Context, guestID int64) ([]model.Booking, error)
	ListByHost(ctx context.Context, hostID int64) ([]model.Booking, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db: db} }

const bookingCols = `b.id, b.property_id, b.guest_id, b.start_date, b.end_date, b.guest_count,
	b.total_price, b.status, b.payment_status, b.created_at, b.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(row scanner, extra ...any) (*model.Booking, error) {
	var (
		b       model.Booking
		status  string
		payment string
	)
	dest := []any{&b.ID, &b.PropertyID, &b.GuestID, &b.StartDate, &b.EndDate, &b.GuestCount,
		&b.TotalPrice, &status, &payment, &b.CreatedAt, &b.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	b.Status = model.BookingStatus(status)
	b.PaymentStatus = model.PaymentStatus(payment)
	return &b, nil
}

func collect(rows pgx.Rows) ([]model.Booking, error) {
	defer rows.Close()
	var out []model.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// Properties

// PropertyForUpdate locks the property row so concurrent bookings on it serialize.
func (r *repo) PropertyForUpdate(ctx context.Context, tx pgx.Tx, propertyID int64) (*model.Property, error) {
	const q = `
		SELECT id, host_id, price, listing_type, rental_period, available_from, available_to,
		       is_available, max_guests
		FROM properties
		WHERE id = $1
		FOR UPDATE`
	var (
		p           model.Property
		listingType string
		period      *string
	)
	err := tx.QueryRow(ctx, q, propertyID).Scan(&p.ID, &p.HostID, &p.Price, &listingType, &period,
		&p.AvailableFrom, &p.AvailableTo, &p.IsAvailable, &p.MaxGuests)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.ListingType = model.ListingType(listingType)
	if period != nil {
		rp := model.RentalPeriod(*period)
		p.RentalPeriod = &rp
	}
	return &p, nil
}

// Overlap checks

const overlapQ = `
	SELECT ` + bookingCols + `
	FROM bookings b
	WHERE b.property_id = $1
	  AND b.status IN ('pending', 'confirmed')
	  AND b.start_date <= $3
	  AND b.end_date >= $2
	ORDER BY b.start_date`

func (r *repo) Overlapping(ctx context.Context, propertyID int64, start, end time.Time) ([]model.Booking, error) {
	return overlapping(ctx, r.db.Pool, propertyID, start, end)
}

func (r *repo) OverlappingTx(ctx context.Context, tx pgx.Tx, propertyID int64, start, end time.Time) ([]model.Booking, error) {
	return overlapping(ctx, tx, propertyID, start, end)
}

func overlapping(ctx context.Context, q database.Querier, propertyID int64, start, end time.Time) ([]model.Booking, error) {
	rows, err := q.Query(ctx, overlapQ, propertyID, start, end)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// Bookings

func (r *repo) Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (property_id, guest_id, start_date, end_date, guest_count, total_price, status, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`
	return tx.QueryRow(ctx, q, b.PropertyID, b.GuestID, b.StartDate, b.EndDate, b.GuestCount,
		b.TotalPrice, string(b.Status), string(b.PaymentStatus),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
}

const byIDQ = `
	SELECT ` + bookingCols + `, p.host_id
	FROM bookings b
	JOIN properties p ON p.id = b.property_id
	WHERE b.id = $1`

// ByID returns nil when the booking does not exist.
func (r *repo) ByID(ctx context.Context, id int64) (*model.Booking, int64, error) {
	return byID(r.db.Pool.QueryRow(ctx, byIDQ, id))
}

func (r *repo) ByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Booking, int64, error) {
	return byID(tx.QueryRow(ctx, byIDQ+` FOR UPDATE OF b`, id))
}

func byID(row pgx.Row) (*model.Booking, int64, error) {
	var hostID int64
	b, err := scanBooking(row, &hostID)
	if database.IsNoRows(err) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return b, hostID, nil
}

func (r *repo) UpdateStatus(ctx context.Context, tx pgx.Tx, id int64, status model.BookingStatus) (time.Time, error) {
	const q = `
		UPDATE bookings
		SET status = $2,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	var at time.Time
	err := tx.QueryRow(ctx, q, id, string(status)).Scan(&at)
	return at, err
}

func (r *repo) UpdatePaymentStatus(ctx context.Context, tx pgx.Tx, id int64, ps model.PaymentStatus) (time.Time, error) {
	const q = `
		UPDATE bookings
		SET payment_status = $2,
			updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`
	var at time.Time
	err := tx.QueryRow(ctx, q, id, string(ps)).Scan(&at)
	return at, err
}

// History

func (r *repo) ListByGuest(ctx context.Context, guestID int64) ([]model.Booking, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+bookingCols+`
		FROM bookings b
		WHERE b.guest_id = $1
		ORDER BY b.start_date DESC, b.id DESC`, guestID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// ListByHost lists bookings on the host's properties; hostID 0 lists every booking.
func (r *repo) ListByHost(ctx context.Context, hostID int64) ([]model.Booking, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT `+bookingCols+`
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE $1::bigint = 0 OR p.host_id = $1
		ORDER BY b.start_date DESC, b.id DESC`, hostID)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}
