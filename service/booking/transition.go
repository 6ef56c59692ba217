package bookingsvc

import (
	"time"

	"github.com/nilaw2017/rental-server/model"
)

// CancelNotice is how far ahead of the start date a guest may still cancel.
const CancelNotice = 24 * time.Hour

// authorizeStatusChange applies the host/admin transition rules to b.
// hostID is the owner of the booked property.
func authorizeStatusChange(actor model.Actor, b *model.Booking, hostID int64, to model.BookingStatus) error {
	switch to {
	case model.BookingConfirmed, model.BookingCancelled, model.BookingCompleted:
	default:
		return wrap(ErrBadInput, "status must be one of confirmed, cancelled, completed")
	}
	if !actor.CanManage(&model.Property{ID: b.PropertyID, HostID: hostID}) {
		return wrap(ErrForbidden, "only the property's host or an admin can change booking status")
	}
	if b.Status.Terminal() {
		return wrap(ErrInvalidTransition, "booking is already "+string(b.Status))
	}
	return nil
}

// authorizeCancel applies the guest cancellation rules to b at time now.
func authorizeCancel(actor model.Actor, b *model.Booking, now time.Time) error {
	if !actor.IsOwnerOf(b) {
		return wrap(ErrForbidden, "only the booking's guest can cancel it")
	}
	if !b.Status.Active() {
		return wrap(ErrInvalidTransition, "booking is already "+string(b.Status))
	}
	if b.StartDate.Sub(now) < CancelNotice {
		return wrap(ErrTooLateToCancel, "bookings can only be cancelled at least 24 hours before the start date")
	}
	return nil
}
