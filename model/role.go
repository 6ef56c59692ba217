package model

type Role string

const (
	RoleGuest Role = "guest"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleHost, RoleAdmin:
		return true
	}
	return false
}

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   int64
	Role Role
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

func (a Actor) IsHostOf(p *Property) bool { return p != nil && a.ID != 0 && p.HostID == a.ID }

func (a Actor) IsOwnerOf(b *Booking) bool { return b != nil && a.ID != 0 && b.GuestID == a.ID }

// CanManage reports whether the actor may change a property and its bookings.
func (a Actor) CanManage(p *Property) bool { return a.IsAdmin() || a.IsHostOf(p) }
