package catalogsvc

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/nilaw2017/rental-server/model"
	catalogrepo "github.com/nilaw2017/rental-server/repository/catalog"
	"github.com/nilaw2017/rental-server/util/database"
)

type ErrCode string

const (
	ErrBadInput  ErrCode = "BAD_INPUT"
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrDuplicate ErrCode = "DUPLICATE_NAME"
)

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

type Service interface {
	Categories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, c *model.Category) error
	UpdateCategory(ctx context.Context, c *model.Category) error
	DeleteCategory(ctx context.Context, id int64) error

	Amenities(ctx context.Context) ([]model.Amenity, error)
	CreateAmenity(ctx context.Context, a *model.Amenity) error
	UpdateAmenity(ctx context.Context, a *model.Amenity) error
	DeleteAmenity(ctx context.Context, id int64) error
}

const listKey = "all"

type service struct {
	r          catalogrepo.Repo
	ttl        time.Duration
	categories *ccache.Cache[[]model.Category]
	amenities  *ccache.Cache[[]model.Amenity]
}

// New caches the public lists for ttl; every write drops the cached list.
func New(r catalogrepo.Repo, ttl time.Duration) Service {
	return &service{
		r:          r,
		ttl:        ttl,
		categories: ccache.New(ccache.Configure[[]model.Category]().MaxSize(16)),
		amenities:  ccache.New(ccache.Configure[[]model.Amenity]().MaxSize(16)),
	}
}

// mapWriteErr turns a name collision into ErrDuplicate.
func mapWriteErr(err error) error {
	if database.IsUniqueViolation(err) {
		return makeErr(ErrDuplicate)
	}
	return err
}

// Categories

func (s *service) Categories(ctx context.Context) ([]model.Category, error) {
	if item := s.categories.Get(listKey); item != nil && !item.Expired() {
		return item.Value(), nil
	}
	out, err := s.r.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	s.categories.Set(listKey, out, s.ttl)
	return out, nil
}

func (s *service) CreateCategory(ctx context.Context, c *model.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return makeErr(ErrBadInput)
	}
	if err := s.r.CreateCategory(ctx, c); err != nil {
		return mapWriteErr(err)
	}
	s.categories.Delete(listKey)
	return nil
}

func (s *service) UpdateCategory(ctx context.Context, c *model.Category) error {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return makeErr(ErrBadInput)
	}
	ok, err := s.r.UpdateCategory(ctx, c)
	if err != nil {
		return mapWriteErr(err)
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	s.categories.Delete(listKey)
	return nil
}

func (s *service) DeleteCategory(ctx context.Context, id int64) error {
	ok, err := s.r.DeleteCategory(ctx, id)
	if err != nil {
		return mapWriteErr(err)
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	s.categories.Delete(listKey)
	return nil
}

// Amenities

func (s *service) Amenities(ctx context.Context) ([]model.Amenity, error) {
	if item := s.amenities.Get(listKey); item != nil && !item.Expired() {
		return item.Value(), nil
	}
	out, err := s.r.ListAmenities(ctx)
	if err != nil {
		return nil, err
	}
	s.amenities.Set(listKey, out, s.ttl)
	return out, nil
}

func (s *service) CreateAmenity(ctx context.Context, a *model.Amenity) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return makeErr(ErrBadInput)
	}
	if err := s.r.CreateAmenity(ctx, a); err != nil {
		return mapWriteErr(err)
	}
	s.amenities.Delete(listKey)
	return nil
}

func (s *service) UpdateAmenity(ctx context.Context, a *model.Amenity) error {
	a.Name = strings.TrimSpace(a.Name)
	if a.Name == "" {
		return makeErr(ErrBadInput)
	}
	ok, err := s.r.UpdateAmenity(ctx, a)
	if err != nil {
		return mapWriteErr(err)
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	s.amenities.Delete(listKey)
	return nil
}

func (s *service) DeleteAmenity(ctx context.Context, id int64) error {
	ok, err := s.r.DeleteAmenity(ctx, id)
	if err != nil {
		return mapWriteErr(err)
	}
	if !ok {
		return makeErr(ErrNotFound)
	}
	s.amenities.Delete(listKey)
	return nil
}
