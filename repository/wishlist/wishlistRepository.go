package wishlistrepo

import (
	"context"

	"github.com/nilaw2017/rental-server/model"
	"github.com/nilaw2017/rental-server/util/database"
)

type Repo interface {
	Add(ctx context.Context, userID, propertyID int64) error
	Remove(ctx context.Context, userID, propertyID int64) (bool, error)
	List(ctx context.Context, userID int64) ([]model.WishlistItem, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Add(ctx context.Context, userID, propertyID int64) error {
	const q = `
INSERT INTO wishlist_items (user_id, property_id)
VALUES ($1,$2)
ON CONFLICT (user_id, property_id) DO NOTHING`
	_, err := r.db.Pool.Exec(ctx, q, userID, propertyID)
	return err
}

func (r *repo) Remove(ctx context.Context, userID, propertyID int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM wishlist_items WHERE user_id=$1 AND property_id=$2`, userID, propertyID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *repo) List(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	const q = `
SELECT p.id, p.title, p.city, p.price, w.created_at
FROM wishlist_items w
JOIN properties p ON p.id = w.property_id
WHERE w.user_id=$1
ORDER BY w.created_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.WishlistItem{}
	for rows.Next() {
		var it model.WishlistItem
		if err := rows.Scan(&it.PropertyID, &it.Title, &it.City, &it.Price, &it.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
