package reviewsvc

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/nilaw2017/rental-server/model"
	reviewrepo "github.com/nilaw2017/rental-server/repository/review"
)

type mockRepo struct {
	created  []*model.Review
	createFn func(ctx context.Context, rv *model.Review) error
	listFn   func(ctx context.Context, propertyID int64) ([]model.Review, error)
}

var _ reviewrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, rv *model.Review) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, rv); err != nil {
			return err
		}
	}
	rv.ID = int64(len(m.created) + 1)
	m.created = append(m.created, rv)
	return nil
}

func (m *mockRepo) ByBookingID(ctx context.Context, bookingID int64) (*model.Review, error) {
	for _, rv := range m.created {
		if rv.BookingID == bookingID {
			return rv, nil
		}
	}
	return nil, nil
}

func (m *mockRepo) ListByProperty(ctx context.Context, propertyID int64) ([]model.Review, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, propertyID)
}

type bookingsFn func(ctx context.Context, id int64) (*model.Booking, int64, error)

func (f bookingsFn) ByID(ctx context.Context, id int64) (*model.Booking, int64, error) { return f(ctx, id) }

type propertiesFn func(ctx context.Context, id int64) (*model.Property, error)

func (f propertiesFn) ByID(ctx context.Context, id int64) (*model.Property, error) { return f(ctx, id) }

func withBooking(b model.Booking) bookingsFn {
	return func(ctx context.Context, id int64) (*model.Booking, int64, error) {
		if id != b.ID {
			return nil, 0, nil
		}
		cp := b
		return &cp, 10, nil
	}
}

var guest = model.Actor{ID: 7, Role: model.RoleGuest}

func completed() model.Booking {
	return model.Booking{ID: 5, PropertyID: 3, GuestID: 7, Status: model.BookingCompleted}
}

func TestCreate_Success(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, withBooking(completed()), nil)

	rv, err := svc.Create(context.Background(), guest, CreateReq{BookingID: 5, PropertyID: 3, Rating: 5, Comment: "  lovely  "})
	require.NoError(t, err)
	require.Equal(t, int64(1), rv.ID)
	require.Equal(t, "lovely", rv.Comment)
	require.Equal(t, int64(7), rv.GuestID)
}

func TestCreate_SecondReviewConflicts(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, withBooking(completed()), nil)

	_, err := svc.Create(context.Background(), guest, CreateReq{BookingID: 5, PropertyID: 3, Rating: 5})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), guest, CreateReq{BookingID: 5, PropertyID: 3, Rating: 2})
	require.Equal(t, ErrDuplicate, Code(err))
	require.Len(t, repo.created, 1)
}

func TestCreate_UniqueViolationConflicts(t *testing.T) {
	repo := &mockRepo{
		createFn: func(ctx context.Context, rv *model.Review) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "reviews_booking_id_key"}
		},
	}
	svc := New(repo, withBooking(completed()), nil)

	_, err := svc.Create(context.Background(), guest, CreateReq{BookingID: 5, PropertyID: 3, Rating: 4})
	require.Equal(t, ErrDuplicate, Code(err))
}

func TestCreate_Eligibility(t *testing.T) {
	ctx := context.Background()

	svc := New(&mockRepo{}, withBooking(completed()), nil)
	_, err := svc.Create(ctx, model.Actor{ID: 8, Role: model.RoleGuest}, CreateReq{BookingID: 5, PropertyID: 3, Rating: 4})
	require.Equal(t, ErrForbidden, Code(err))

	_, err = svc.Create(ctx, guest, CreateReq{BookingID: 5, PropertyID: 4, Rating: 4})
	require.Equal(t, ErrBadInput, Code(err))

	_, err = svc.Create(ctx, guest, CreateReq{BookingID: 6, PropertyID: 3, Rating: 4})
	require.Equal(t, ErrNotFound, Code(err))

	for _, rating := range []int{0, 6} {
		_, err = svc.Create(ctx, guest, CreateReq{BookingID: 5, PropertyID: 3, Rating: rating})
		require.Equal(t, ErrBadInput, Code(err))
	}

	for _, st := range []model.BookingStatus{model.BookingPending, model.BookingConfirmed, model.BookingCancelled} {
		b := completed()
		b.Status = st
		svc := New(&mockRepo{}, withBooking(b), nil)
		_, err := svc.Create(ctx, guest, CreateReq{BookingID: 5, PropertyID: 3, Rating: 4})
		require.Equal(t, ErrBadInput, Code(err), st)
	}
}

func TestForProperty_Summary(t *testing.T) {
	repo := &mockRepo{
		listFn: func(ctx context.Context, propertyID int64) ([]model.Review, error) {
			return []model.Review{{Rating: 5}, {Rating: 4}, {Rating: 4}}, nil
		},
	}
	props := propertiesFn(func(ctx context.Context, id int64) (*model.Property, error) {
		if id == 3 {
			return &model.Property{ID: 3}, nil
		}
		return nil, nil
	})
	svc := New(repo, nil, props)

	sum, err := svc.ForProperty(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, 3, sum.Count)
	require.Equal(t, 4.33, sum.AverageRating)

	_, err = svc.ForProperty(context.Background(), 9)
	require.Equal(t, ErrNotFound, Code(err))
}
