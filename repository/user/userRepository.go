package userrepo

import (
	"context"

	"github.com/nilaw2017/rental-server/model"
	"github.com/nilaw2017/rental-server/util/database"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

const userCols = `id, first_name, last_name, email, username, password_hash, role, created_at`

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO users(first_name, last_name, email, username, password_hash, role)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id, created_at`,
		u.FirstName, u.LastName, u.Email, u.Username, u.PasswordHash, string(u.Role),
	).Scan(&u.ID, &u.CreatedAt)
}

// ByEmail returns nil, nil when no user matches.
func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.one(ctx, `SELECT `+userCols+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	return r.one(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var (
			u    model.User
			role string
		)
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = model.Role(role)
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) one(ctx context.Context, q string, arg any) (*model.User, error) {
	u := &model.User{}
	var role string
	err := r.db.Pool.QueryRow(ctx, q, arg).
		Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username, &u.PasswordHash, &role, &u.CreatedAt)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Role = model.Role(role)
	return u, nil
}
