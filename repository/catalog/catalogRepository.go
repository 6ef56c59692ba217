package catalogrepo

import (
	"context"

	"github.com/nilaw2017/rental-server/model"
	"github.com/nilaw2017/rental-server/util/database"
)

type Repo interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) error
	UpdateCategory(ctx context.Context, c *model.Category) (bool, error)
	DeleteCategory(ctx context.Context, id int64) (bool, error)

	ListAmenities(ctx context.Context) ([]model.Amenity, error)
	CreateAmenity(ctx context.Context, a *model.Amenity) error
	UpdateAmenity(ctx context.Context, a *model.Amenity) (bool, error)
	DeleteAmenity(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

// Categories

func (r *repo) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repo) CreateCategory(ctx context.Context, c *model.Category) error {
	return r.db.Pool.QueryRow(ctx, `
INSERT INTO categories (name, description) VALUES ($1,$2)
RETURNING id, created_at`, c.Name, c.Description).Scan(&c.ID, &c.CreatedAt)
}

func (r *repo) UpdateCategory(ctx context.Context, c *model.Category) (bool, error) {
	err := r.db.Pool.QueryRow(ctx, `
UPDATE categories SET name=$2, description=$3 WHERE id=$1
RETURNING created_at`, c.ID, c.Name, c.Description).Scan(&c.CreatedAt)
	if database.IsNoRows(err) {
		return false, nil
	}
	return err == nil, err
}

func (r *repo) DeleteCategory(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Amenities

func (r *repo) ListAmenities(ctx context.Context) ([]model.Amenity, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT id, name, icon, created_at FROM amenities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Amenity{}
	for rows.Next() {
		var a model.Amenity
		if err := rows.Scan(&a.ID, &a.Name, &a.Icon, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repo) CreateAmenity(ctx context.Context, a *model.Amenity) error {
	return r.db.Pool.QueryRow(ctx, `
INSERT INTO amenities (name, icon) VALUES ($1,$2)
RETURNING id, created_at`, a.Name, a.Icon).Scan(&a.ID, &a.CreatedAt)
}

func (r *repo) UpdateAmenity(ctx context.Context, a *model.Amenity) (bool, error) {
	err := r.db.Pool.QueryRow(ctx, `
UPDATE amenities SET name=$2, icon=$3 WHERE id=$1
RETURNING created_at`, a.ID, a.Name, a.Icon).Scan(&a.CreatedAt)
	if database.IsNoRows(err) {
		return false, nil
	}
	return err == nil, err
}

func (r *repo) DeleteAmenity(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM amenities WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
