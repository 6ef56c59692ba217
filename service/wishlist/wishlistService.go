package wishlistsvc

import (
	"context"
	"errors"

	"github.com/nilaw2017/rental-server/model"
	wishlistrepo "github.com/nilaw2017/rental-server/repository/wishlist"
)

type ErrCode string

const ErrNotFound ErrCode = "NOT_FOUND"

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Properties is the property lookup the wishlist depends on.
type Properties interface {
	ByID(ctx context.Context, id int64) (*model.Property, error)
}

type Service interface {
	List(ctx context.Context, userID int64) ([]model.WishlistItem, error)
	// Add is idempotent.
	Add(ctx context.Context, userID, propertyID int64) error
	Remove(ctx context.Context, userID, propertyID int64) error
}

type service struct {
	r  wishlistrepo.Repo
	ps Properties
}

func New(r wishlistrepo.Repo, ps Properties) Service { return &service{r: r, ps: ps} }

func (s *service) List(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	return s.r.List(ctx, userID)
}

func (s *service) Add(ctx context.Context, userID, propertyID int64) error {
	p, err := s.ps.ByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if p == nil {
		return makeErr(ErrNotFound)
	}
	return s.r.Add(ctx, userID, propertyID)
}

func (s *service) Remove(ctx context.Context, userID, propertyID int64) error {
	ok, err := s.r.Remove(ctx, userID, propertyID)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	return nil
}
