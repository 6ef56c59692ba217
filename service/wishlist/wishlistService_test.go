package wishlistsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilaw2017/rental-server/model"
	wishlistrepo "github.com/nilaw2017/rental-server/repository/wishlist"
)

type key struct{ user, property int64 }

type memRepo struct{ items map[key]bool }

var _ wishlistrepo.Repo = (*memRepo)(nil)

func (m *memRepo) Add(ctx context.Context, userID, propertyID int64) error {
	m.items[key{userID, propertyID}] = true
	return nil
}

func (m *memRepo) Remove(ctx context.Context, userID, propertyID int64) (bool, error) {
	k := key{userID, propertyID}
	ok := m.items[k]
	delete(m.items, k)
	return ok, nil
}

func (m *memRepo) List(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	out := []model.WishlistItem{}
	for k := range m.items {
		if k.user == userID {
			out = append(out, model.WishlistItem{PropertyID: k.property})
		}
	}
	return out, nil
}

type propertiesFn func(ctx context.Context, id int64) (*model.Property, error)

func (f propertiesFn) ByID(ctx context.Context, id int64) (*model.Property, error) { return f(ctx, id) }

func onlyProperty(id int64) propertiesFn {
	return func(ctx context.Context, got int64) (*model.Property, error) {
		if got != id {
			return nil, nil
		}
		return &model.Property{ID: id}, nil
	}
}

func TestAdd_Idempotent(t *testing.T) {
	ctx := context.Background()
	svc := New(&memRepo{items: map[key]bool{}}, onlyProperty(3))

	require.NoError(t, svc.Add(ctx, 7, 3))
	require.NoError(t, svc.Add(ctx, 7, 3))

	items, err := svc.List(ctx, 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestAdd_UnknownProperty(t *testing.T) {
	svc := New(&memRepo{items: map[key]bool{}}, onlyProperty(3))

	require.Equal(t, ErrNotFound, Code(svc.Add(context.Background(), 7, 4)))
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	svc := New(&memRepo{items: map[key]bool{}}, onlyProperty(3))

	require.NoError(t, svc.Add(ctx, 7, 3))
	require.NoError(t, svc.Remove(ctx, 7, 3))
	require.Equal(t, ErrNotFound, Code(svc.Remove(ctx, 7, 3)))
}
