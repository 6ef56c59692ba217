package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestActorPredicates(t *testing.T) {
	p := &Property{ID: 1, HostID: 10}
	b := &Booking{ID: 5, PropertyID: 1, GuestID: 20}

	host := Actor{ID: 10, Role: RoleHost}
	guest := Actor{ID: 20, Role: RoleGuest}
	admin := Actor{ID: 99, Role: RoleAdmin}
	other := Actor{ID: 11, Role: RoleHost}

	require.True(t, host.IsHostOf(p))
	require.False(t, other.IsHostOf(p))
	require.True(t, guest.IsOwnerOf(b))
	require.False(t, host.IsOwnerOf(b))
	require.True(t, admin.CanManage(p))
	require.True(t, host.CanManage(p))
	require.False(t, other.CanManage(p))
	require.False(t, Actor{}.IsHostOf(&Property{}))
}

func TestDateRangeOverlapsInclusive(t *testing.T) {
	d := func(day int) time.Time { return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC) }

	a := DateRange{Start: d(1), End: d(4)}
	require.True(t, a.Overlaps(DateRange{Start: d(4), End: d(6)}), "shared boundary conflicts")
	require.True(t, a.Overlaps(DateRange{Start: d(2), End: d(3)}))
	require.False(t, a.Overlaps(DateRange{Start: d(5), End: d(6)}))
}

func TestBookingStatus(t *testing.T) {
	require.True(t, BookingPending.Active())
	require.True(t, BookingConfirmed.Active())
	require.False(t, BookingCancelled.Active())
	require.True(t, BookingCompleted.Terminal())
	require.False(t, BookingPending.Terminal())
	require.False(t, Role("superuser").Valid())
}
