package bookingsvc

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nilaw2017/rental-server/model"
	bookingrepo "github.com/nilaw2017/rental-server/repository/booking"
	propertyrepo "github.com/nilaw2017/rental-server/repository/property"
	"github.com/nilaw2017/rental-server/util/database"
)

type CreateReq struct {
	PropertyID int64
	StartDate  time.Time
	EndDate    time.Time
	GuestCount int
}

type Service interface {
	// Availability reports whether [start, end] is free on the property.
	Availability(ctx context.Context, propertyID int64, start, end time.Time) (*model.Availability, error)

	// Create books a property for the actor with status pending and payment unpaid.
	Create(ctx context.Context, actor model.Actor, req CreateReq) (*model.Booking, error)

	Get(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error)
	ListMine(ctx context.Context, actor model.Actor) ([]model.Booking, error)
	// ListHosting lists bookings on the actor's properties, or every booking for an admin.
	ListHosting(ctx context.Context, actor model.Actor) ([]model.Booking, error)

	// UpdateStatus is the host/admin transition.
	UpdateStatus(ctx context.Context, actor model.Actor, id int64, to model.BookingStatus) (*model.Booking, error)
	// Cancel is the guest transition.
	Cancel(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error)

	UpdatePaymentStatus(ctx context.Context, actor model.Actor, id int64, ps model.PaymentStatus) (*model.Booking, error)
}

type service struct {
	db  database.TxBeginner
	r   bookingrepo.Repo
	pr  propertyrepo.Repo
	now func() time.Time
}

func New(db database.TxBeginner, r bookingrepo.Repo, pr propertyrepo.Repo) Service {
	return &service{db: db, r: r, pr: pr, now: time.Now}
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return wrap(ErrBadInput, "start_date and end_date are required")
	}
	if !start.Before(end) {
		return wrap(ErrBadInput, "start_date must be before end_date")
	}
	return nil
}

func (s *service) Availability(ctx context.Context, propertyID int64, start, end time.Time) (*model.Availability, error) {
	if err := validateRange(start, end); err != nil {
		return nil, err
	}
	p, err := s.pr.ByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, makeErr(ErrNotFound)
	}
	existing, err := s.r.Overlapping(ctx, propertyID, start, end)
	if err != nil {
		return nil, err
	}
	av := CheckAvailability(p, start, end, existing)
	return &av, nil
}

func (s *service) Create(ctx context.Context, actor model.Actor, req CreateReq) (*model.Booking, error) {
	if err := validateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if req.StartDate.Before(s.now()) {
		return nil, wrap(ErrBadInput, "start_date cannot be in the past")
	}
	if req.GuestCount < 1 {
		return nil, wrap(ErrBadInput, "guest_count must be at least 1")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// no-op once committed
	defer func() { _ = tx.Rollback(ctx) }()

	p, err := s.r.PropertyForUpdate(ctx, tx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, makeErr(ErrNotFound)
	}
	if actor.IsHostOf(p) {
		return nil, wrap(ErrBadInput, "you cannot book your own property")
	}
	if p.MaxGuests > 0 && req.GuestCount > p.MaxGuests {
		return nil, wrap(ErrBadInput, fmt.Sprintf("guest_count exceeds the maximum of %d", p.MaxGuests))
	}

	existing, err := s.r.OverlappingTx(ctx, tx, p.ID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	av := CheckAvailability(p, req.StartDate, req.EndDate, existing)
	if !av.Available {
		if len(av.Conflicts) > 0 {
			return nil, &ConflictError{Ranges: av.Conflicts}
		}
		return nil, wrap(ErrUnavailable, av.Reason)
	}

	b := &model.Booking{
		PropertyID:    p.ID,
		GuestID:       actor.ID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		GuestCount:    req.GuestCount,
		TotalPrice:    TotalPrice(p, req.StartDate, req.EndDate),
		Status:        model.BookingPending,
		PaymentStatus: model.PaymentUnpaid,
	}
	if err := s.r.Insert(ctx, tx, b); err != nil {
		// the exclusion constraint caught an overlap the lock did not
		if database.IsExclusionViolation(err) {
			_ = tx.Rollback(ctx)
			return nil, s.racedConflict(ctx, p, req.StartDate, req.EndDate)
		}
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

// racedConflict reloads the bookings that won the race so the 409 can list them.
func (s *service) racedConflict(ctx context.Context, p *model.Property, start, end time.Time) error {
	existing, err := s.r.Overlapping(ctx, p.ID, start, end)
	if err != nil {
		return &ConflictError{}
	}
	return &ConflictError{Ranges: CheckAvailability(p, start, end, existing).Conflicts}
}

func (s *service) Get(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error) {
	b, hostID, err := s.r.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound)
	}
	if !actor.IsOwnerOf(b) && !actor.CanManage(&model.Property{ID: b.PropertyID, HostID: hostID}) {
		return nil, makeErr(ErrForbidden)
	}
	return b, nil
}

func (s *service) ListMine(ctx context.Context, actor model.Actor) ([]model.Booking, error) {
	return s.r.ListByGuest(ctx, actor.ID)
}

func (s *service) ListHosting(ctx context.Context, actor model.Actor) ([]model.Booking, error) {
	if actor.IsAdmin() {
		return s.r.ListByHost(ctx, 0)
	}
	return s.r.ListByHost(ctx, actor.ID)
}

func (s *service) UpdateStatus(ctx context.Context, actor model.Actor, id int64, to model.BookingStatus) (*model.Booking, error) {
	return s.mutate(ctx, id, func(tx pgx.Tx, b *model.Booking, hostID int64) error {
		if err := authorizeStatusChange(actor, b, hostID, to); err != nil {
			return err
		}
		at, err := s.r.UpdateStatus(ctx, tx, b.ID, to)
		if err != nil {
			return err
		}
		b.Status, b.UpdatedAt = to, at
		return nil
	})
}

func (s *service) Cancel(ctx context.Context, actor model.Actor, id int64) (*model.Booking, error) {
	return s.mutate(ctx, id, func(tx pgx.Tx, b *model.Booking, _ int64) error {
		if err := authorizeCancel(actor, b, s.now()); err != nil {
			return err
		}
		at, err := s.r.UpdateStatus(ctx, tx, b.ID, model.BookingCancelled)
		if err != nil {
			return err
		}
		b.Status, b.UpdatedAt = model.BookingCancelled, at
		return nil
	})
}

func (s *service) UpdatePaymentStatus(ctx context.Context, actor model.Actor, id int64, ps model.PaymentStatus) (*model.Booking, error) {
	if ps != model.PaymentPaid && ps != model.PaymentUnpaid {
		return nil, wrap(ErrBadInput, "payment_status must be paid or unpaid")
	}
	return s.mutate(ctx, id, func(tx pgx.Tx, b *model.Booking, hostID int64) error {
		if !actor.CanManage(&model.Property{ID: b.PropertyID, HostID: hostID}) {
			return wrap(ErrForbidden, "only the property's host or an admin can update payment status")
		}
		if ps == model.PaymentPaid && b.Status == model.BookingCancelled {
			return wrap(ErrInvalidTransition, "a cancelled booking cannot be marked paid")
		}
		at, err := s.r.UpdatePaymentStatus(ctx, tx, b.ID, ps)
		if err != nil {
			return err
		}
		b.PaymentStatus, b.UpdatedAt = ps, at
		return nil
	})
}

// mutate locks booking id, runs fn against it and commits when fn succeeds.
func (s *service) mutate(ctx context.Context, id int64, fn func(tx pgx.Tx, b *model.Booking, hostID int64) error) (*model.Booking, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	b, hostID, err := s.r.ByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, makeErr(ErrNotFound)
	}
	if err := fn(tx, b, hostID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}
