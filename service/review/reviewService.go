package reviewsvc

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/nilaw2017/rental-server/model"
	reviewrepo "github.com/nilaw2017/rental-server/repository/review"
	"github.com/nilaw2017/rental-server/util/database"
)

type ErrCode string

const (
	ErrBadInput  ErrCode = "BAD_INPUT"
	ErrNotFound  ErrCode = "NOT_FOUND"
	ErrForbidden ErrCode = "FORBIDDEN"
	ErrDuplicate ErrCode = "DUPLICATE_REVIEW"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode) error          { return codedError{code: c} }
func wrap(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Bookings is the booking lookup reviews depend on.
type Bookings interface {
	ByID(ctx context.Context, id int64) (b *model.Booking, hostID int64, err error)
}

// Properties is the property lookup reviews depend on.
type Properties interface {
	ByID(ctx context.Context, id int64) (*model.Property, error)
}

type CreateReq struct {
	BookingID  int64
	PropertyID int64
	Rating     int
	Comment    string
}

type Service interface {
	// Create reviews a completed stay; one review per booking.
	Create(ctx context.Context, actor model.Actor, req CreateReq) (*model.Review, error)
	ForProperty(ctx context.Context, propertyID int64) (*model.ReviewSummary, error)
}

type service struct {
	r  reviewrepo.Repo
	bs Bookings
	ps Properties
}

func New(r reviewrepo.Repo, bs Bookings, ps Properties) Service {
	return &service{r: r, bs: bs, ps: ps}
}

func (s *service) Create(ctx context.Context, actor model.Actor, req CreateReq) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, wrap(ErrBadInput, "rating must be between 1 and 5")
	}

	b, _, err := s.bs.ByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, wrap(ErrNotFound, "booking not found")
	}
	if !actor.IsOwnerOf(b) {
		return nil, wrap(ErrForbidden, "only the booking's guest can review it")
	}
	if b.PropertyID != req.PropertyID {
		return nil, wrap(ErrBadInput, "booking does not belong to this property")
	}
	if b.Status != model.BookingCompleted {
		return nil, wrap(ErrBadInput, "only completed bookings can be reviewed")
	}

	existing, err := s.r.ByBookingID(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, wrap(ErrDuplicate, "this booking has already been reviewed")
	}

	rv := &model.Review{
		BookingID:  b.ID,
		PropertyID: b.PropertyID,
		GuestID:    actor.ID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
	}
	if err := s.r.Create(ctx, rv); err != nil {
		// lost a race with a concurrent review of the same booking
		if database.IsUniqueViolation(err) {
			return nil, wrap(ErrDuplicate, "this booking has already been reviewed")
		}
		return nil, err
	}
	return rv, nil
}

func (s *service) ForProperty(ctx context.Context, propertyID int64) (*model.ReviewSummary, error) {
	p, err := s.ps.ByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, makeErr(ErrNotFound)
	}

	reviews, err := s.r.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	out := &model.ReviewSummary{Reviews: reviews, Count: len(reviews)}
	if len(reviews) > 0 {
		sum := 0
		for _, rv := range reviews {
			sum += rv.Rating
		}
		out.AverageRating = math.Round(float64(sum)/float64(len(reviews))*100) / 100
	}
	return out, nil
}
