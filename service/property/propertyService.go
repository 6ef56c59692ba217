package propertysvc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/nilaw2017/rental-server/model"
	propertyrepo "github.com/nilaw2017/rental-server/repository/property"
	"github.com/nilaw2017/rental-server/util/database"
)

// Files stores uploaded images.
type Files interface {
	Save(dir string, r io.Reader, ext string) (string, error)
	Remove(rel string) error
}

type Service interface {
	List(ctx context.Context, f model.PropertyFilter) ([]model.Property, error)
	Get(ctx context.Context, id int64) (*model.Property, error)
	Create(ctx context.Context, actor model.Actor, p *model.Property) error
	Update(ctx context.Context, actor model.Actor, p *model.Property) error
	// Delete removes the property with its bookings, reviews and wishlist entries.
	Delete(ctx context.Context, actor model.Actor, id int64) error
	// AddImage stores a jpeg, png or webp upload and returns the property's image list.
	AddImage(ctx context.Context, actor model.Actor, id int64, r io.Reader, size int64) ([]string, error)
}

type service struct {
	r        propertyrepo.Repo
	files    Files
	maxBytes int64
	log      *slog.Logger
}

func New(r propertyrepo.Repo, files Files, maxBytes int64, log *slog.Logger) Service {
	return &service{r: r, files: files, maxBytes: maxBytes, log: log}
}

var imageExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func validate(p *model.Property) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return wrap(ErrBadInput, "title is required")
	}
	if p.Price < 0 {
		return wrap(ErrBadInput, "price cannot be negative")
	}
	if p.MaxGuests < 0 || p.Bedrooms < 0 || p.Bathrooms < 0 {
		return wrap(ErrBadInput, "max_guests, bedrooms and bathrooms cannot be negative")
	}
	switch p.ListingType {
	case model.ListingRent:
		if p.RentalPeriod == nil {
			return wrap(ErrBadInput, "rental_period is required for RENT listings")
		}
		switch *p.RentalPeriod {
		case model.PeriodDay, model.PeriodMonth, model.PeriodYear:
		default:
			return wrap(ErrBadInput, "rental_period must be DAY, MONTH or YEAR")
		}
	case model.ListingSale:
		if p.RentalPeriod != nil {
			return wrap(ErrBadInput, "rental_period must be empty for SALE listings")
		}
	default:
		return wrap(ErrBadInput, "listing_type must be RENT or SALE")
	}
	if p.AvailableFrom != nil && p.AvailableTo != nil && p.AvailableFrom.After(*p.AvailableTo) {
		return wrap(ErrBadInput, "available_from must not be after available_to")
	}
	return nil
}

// mapWriteErr reports unknown category or amenity ids as bad input.
func mapWriteErr(err error) error {
	if database.IsForeignKeyViolation(err) {
		return wrap(ErrBadInput, "unknown category or amenity")
	}
	return err
}

func (s *service) List(ctx context.Context, f model.PropertyFilter) ([]model.Property, error) {
	out, err := s.r.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Property{}
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Property, error) {
	p, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, makeErr(ErrNotFound)
	}
	return p, nil
}

func (s *service) Create(ctx context.Context, actor model.Actor, p *model.Property) error {
	if actor.Role != model.RoleHost && !actor.IsAdmin() {
		return wrap(ErrForbidden, "only hosts can list properties")
	}
	if err := validate(p); err != nil {
		return err
	}
	// admins may list on behalf of a host
	if !actor.IsAdmin() || p.HostID == 0 {
		p.HostID = actor.ID
	}
	return mapWriteErr(s.r.Create(ctx, p))
}

func (s *service) Update(ctx context.Context, actor model.Actor, p *model.Property) error {
	cur, err := s.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	if !actor.CanManage(cur) {
		return makeErr(ErrForbidden)
	}
	if err := validate(p); err != nil {
		return err
	}
	p.HostID = cur.HostID
	p.Images = cur.Images
	p.CreatedAt = cur.CreatedAt
	return mapWriteErr(s.r.Update(ctx, p))
}

func (s *service) Delete(ctx context.Context, actor model.Actor, id int64) error {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(cur) {
		return makeErr(ErrForbidden)
	}
	images, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if images == nil {
		return makeErr(ErrNotFound)
	}
	for _, img := range images {
		if err := s.files.Remove(img); err != nil {
			s.log.Warn("remove property image", "err", err, "property_id", id, "path", img)
		}
	}
	return nil
}

func (s *service) AddImage(ctx context.Context, actor model.Actor, id int64, r io.Reader, size int64) ([]string, error) {
	if s.maxBytes > 0 && size > s.maxBytes {
		return nil, wrap(ErrTooLarge, fmt.Sprintf("image exceeds %d bytes", s.maxBytes))
	}
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(cur) {
		return nil, makeErr(ErrForbidden)
	}

	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	ext, ok := imageExt[http.DetectContentType(head)]
	if !ok {
		return nil, wrap(ErrUnsupported, "only jpeg, png and webp images are accepted")
	}

	src := io.Reader(br)
	if s.maxBytes > 0 {
		src = io.LimitReader(br, s.maxBytes)
	}
	rel, err := s.files.Save(fmt.Sprintf("properties/%d", id), src, ext)
	if err != nil {
		return nil, err
	}
	images, err := s.r.AppendImage(ctx, id, rel)
	if err != nil || images == nil {
		_ = s.files.Remove(rel)
		if err != nil {
			return nil, err
		}
		return nil, makeErr(ErrNotFound)
	}
	return images, nil
}
