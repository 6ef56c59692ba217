package propertyrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/nilaw2017/rental-server/model"
	"github.com/nilaw2017/rental-server/util/database"
)

type Repo interface {
	Create(ctx context.Context, p *model.Property) error
	Update(ctx context.Context, p *model.Property) error
	ByID(ctx context.Context, id int64) (*model.Property, error)
	List(ctx context.Context, f model.PropertyFilter) ([]model.Property, error)
	AppendImage(ctx context.Context, id int64, path string) ([]string, error)
	// Delete removes the property and everything referencing it; it returns the stored image paths.
	Delete(ctx context.Context, id int64) ([]string, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const propertyCols = `
	p.id, p.host_id, p.category_id, p.title, p.description, p.address, p.city, p.country,
	p.price, p.listing_type, p.rental_period, p.available_from, p.available_to, p.is_available,
	p.max_guests, p.bedrooms, p.bathrooms, p.images,
	COALESCE((SELECT array_agg(pa.amenity_id ORDER BY pa.amenity_id)
	          FROM property_amenities pa WHERE pa.property_id = p.id), '{}') AS amenity_ids,
	p.created_at, p.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProperty(row scanner) (*model.Property, error) {
	var (
		p           model.Property
		listingType string
		period      *string
	)
	err := row.Scan(
		&p.ID, &p.HostID, &p.CategoryID, &p.Title, &p.Description, &p.Address, &p.City, &p.Country,
		&p.Price, &listingType, &period, &p.AvailableFrom, &p.AvailableTo, &p.IsAvailable,
		&p.MaxGuests, &p.Bedrooms, &p.Bathrooms, &p.Images, &p.AmenityIDs,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ListingType = model.ListingType(listingType)
	if period != nil {
		rp := model.RentalPeriod(*period)
		p.RentalPeriod = &rp
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}

func periodArg(p *model.Property) *string {
	if p.RentalPeriod == nil {
		return nil
	}
	s := string(*p.RentalPeriod)
	return &s
}

func (r *repo) Create(ctx context.Context, p *model.Property) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	const q = `
INSERT INTO properties (host_id, category_id, title, description, address, city, country, price,
	listing_type, rental_period, available_from, available_to, is_available, max_guests, bedrooms, bathrooms)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
RETURNING id, images, created_at, updated_at`
	err = tx.QueryRow(ctx, q,
		p.HostID, p.CategoryID, p.Title, p.Description, p.Address, p.City, p.Country, p.Price,
		string(p.ListingType), periodArg(p), p.AvailableFrom, p.AvailableTo, p.IsAvailable,
		p.MaxGuests, p.Bedrooms, p.Bathrooms,
	).Scan(&p.ID, &p.Images, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}
	if err = replaceAmenities(ctx, tx, p.ID, p.AmenityIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *repo) Update(ctx context.Context, p *model.Property) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	const q = `
UPDATE properties
SET category_id=$2, title=$3, description=$4, address=$5, city=$6, country=$7, price=$8,
	listing_type=$9, rental_period=$10, available_from=$11, available_to=$12, is_available=$13,
	max_guests=$14, bedrooms=$15, bathrooms=$16, updated_at=NOW()
WHERE id=$1
RETURNING updated_at`
	err = tx.QueryRow(ctx, q,
		p.ID, p.CategoryID, p.Title, p.Description, p.Address, p.City, p.Country, p.Price,
		string(p.ListingType), periodArg(p), p.AvailableFrom, p.AvailableTo, p.IsAvailable,
		p.MaxGuests, p.Bedrooms, p.Bathrooms,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return err
	}
	if err = replaceAmenities(ctx, tx, p.ID, p.AmenityIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func replaceAmenities(ctx context.Context, tx pgx.Tx, propertyID int64, ids []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM property_amenities WHERE property_id=$1`, propertyID); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `
INSERT INTO property_amenities (property_id, amenity_id)
SELECT $1, unnest($2::BIGINT[])
ON CONFLICT DO NOTHING`, propertyID, ids)
	return err
}

// ByID returns nil, nil when the property does not exist.
func (r *repo) ByID(ctx context.Context, id int64) (*model.Property, error) {
	p, err := scanProperty(r.db.Pool.QueryRow(ctx, `SELECT `+propertyCols+` FROM properties p WHERE p.id=$1`, id))
	if database.IsNoRows(err) {
		return nil, nil
	}
	return p, err
}

func (r *repo) List(ctx context.Context, f model.PropertyFilter) ([]model.Property, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.City != "" {
		add("lower(p.city) = lower($%d)", f.City)
	}
	if f.CategoryID > 0 {
		add("p.category_id = $%d", f.CategoryID)
	}
	if f.ListingType != "" {
		add("p.listing_type = $%d", string(f.ListingType))
	}
	if f.HostID > 0 {
		add("p.host_id = $%d", f.HostID)
	}
	if f.AvailableOnly {
		where = append(where, "p.is_available")
	}

	q := `SELECT ` + propertyCols + ` FROM properties p`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY p.id DESC`

	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *repo) AppendImage(ctx context.Context, id int64, path string) ([]string, error) {
	var images []string
	err := r.db.Pool.QueryRow(ctx, `
UPDATE properties SET images = array_append(images, $2), updated_at = NOW()
WHERE id = $1
RETURNING images`, id, path).Scan(&images)
	if database.IsNoRows(err) {
		return nil, nil
	}
	return images, err
}

func (r *repo) Delete(ctx context.Context, id int64) ([]string, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// no-op once committed
	defer func() { _ = tx.Rollback(ctx) }()

	var images []string
	if err = tx.QueryRow(ctx, `SELECT images FROM properties WHERE id=$1 FOR UPDATE`, id).Scan(&images); err != nil {
		if database.IsNoRows(err) {
			return nil, nil
		}
		return nil, err
	}

	for _, q := range []string{
		`DELETE FROM reviews WHERE property_id=$1`,
		`DELETE FROM bookings WHERE property_id=$1`,
		`DELETE FROM wishlist_items WHERE property_id=$1`,
		`DELETE FROM property_amenities WHERE property_id=$1`,
		`DELETE FROM properties WHERE id=$1`,
	} {
		if _, err = tx.Exec(ctx, q, id); err != nil {
			return nil, err
		}
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	if images == nil {
		images = []string{}
	}
	return images, nil
}
