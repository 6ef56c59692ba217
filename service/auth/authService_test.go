package authsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/nilaw2017/rental-server/model"
	"github.com/nilaw2017/rental-server/repository/session"
	userrepo "github.com/nilaw2017/rental-server/repository/user"
	"github.com/nilaw2017/rental-server/util/hash"
	jwtutil "github.com/nilaw2017/rental-server/util/jwt"
)

type mockRepo struct {
	byEmailFn func(ctx context.Context, email string) (*model.User, error)
	byIDFn    func(ctx context.Context, id int64) (*model.User, error)
	createFn  func(ctx context.Context, u *model.User) error
}

var _ userrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.byEmailFn == nil {
		return nil, nil
	}
	return m.byEmailFn(ctx, email)
}

func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.User, error) {
	if m.byIDFn == nil {
		return nil, nil
	}
	return m.byIDFn(ctx, id)
}

func (m *mockRepo) Create(ctx context.Context, u *model.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, u)
}

func (m *mockRepo) List(ctx context.Context) ([]model.User, error) { return nil, nil }

type memSessions struct{ m map[string]int64 }

var _ session.Store = (*memSessions)(nil)

func newMemSessions() *memSessions { return &memSessions{m: map[string]int64{}} }

func (s *memSessions) Save(_ context.Context, jti string, userID int64, _ time.Duration) error {
	s.m[jti] = userID
	return nil
}

func (s *memSessions) Consume(_ context.Context, jti string) (int64, bool, error) {
	id, ok := s.m[jti]
	delete(s.m, jti)
	return id, ok, nil
}

func (s *memSessions) Revoke(_ context.Context, jti string) error {
	delete(s.m, jti)
	return nil
}

var testTokens = Tokens{
	Secret:          "test-secret",
	RefreshSecret:   "test-refresh",
	AccessTTLHours:  1,
	RefreshTTLHours: 24,
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()

	h, err := hash.HashPassword(plain)
	require.NoError(t, err)
	return h
}

// --- tests ---

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			u.ID = 42
			return nil
		},
	}
	sessions := newMemSessions()
	svc := New(m, sessions, testTokens)

	u, pair, err := svc.Register(ctx, model.RegisterReq{
		FirstName: "Halim",
		LastName:  "Iskandar",
		Email:     "USER@Example.COM",
		Username:  "halim",
		Password:  "supersecret",
	})
	require.NoError(t, err)
	require.Equal(t, int64(42), u.ID)
	require.Equal(t, "user@example.com", u.Email)
	require.Equal(t, model.RoleGuest, u.Role)
	require.NotEmpty(t, u.PasswordHash)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Len(t, sessions.m, 1)

	claims, err := jwtutil.ParseAuth(pair.AccessToken, testTokens.Secret)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "guest", claims.Role)
}

func TestRegister_HostRole(t *testing.T) {
	svc := New(&mockRepo{}, newMemSessions(), testTokens)

	u, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email: "host@example.com", Username: "host", Password: "123456", Role: model.RoleHost,
	})
	require.NoError(t, err)
	require.Equal(t, model.RoleHost, u.Role)
}

func TestRegister_AdminRejected(t *testing.T) {
	svc := New(&mockRepo{}, newMemSessions(), testTokens)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email: "root@example.com", Username: "root", Password: "123456", Role: model.RoleAdmin,
	})
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_BadInput(t *testing.T) {
	svc := New(&mockRepo{}, newMemSessions(), testTokens)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    " ",
		Username: "u",
		Password: "123",
	})
	require.Error(t, err)
	require.Equal(t, ErrBadInput, Code(err))
}

func TestRegister_EmailTaken(t *testing.T) {
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 9, Email: email}, nil
		},
	}
	svc := New(m, newMemSessions(), testTokens)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    "taken@example.com",
		Username: "halim",
		Password: "123456",
	})
	require.Equal(t, ErrEmailTaken, Code(err))
}

func TestRegister_UsernameTakenByConstraint(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"}
		},
	}
	svc := New(m, newMemSessions(), testTokens)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email: "ok@example.com", Username: "dup", Password: "123456",
	})
	require.Equal(t, ErrUsernameTaken, Code(err))
}

func TestRegister_CreateError(t *testing.T) {
	m := &mockRepo{
		createFn: func(ctx context.Context, u *model.User) error {
			return errors.New("db down")
		},
	}
	svc := New(m, newMemSessions(), testTokens)

	_, _, err := svc.Register(context.Background(), model.RegisterReq{
		Email:    "ok@example.com",
		Username: "ok",
		Password: "123456",
	})
	require.Error(t, err)
	require.Equal(t, ErrCode(""), Code(err))
}

func TestLogin_Success(t *testing.T) {
	pw := "supersecret"
	hashed := mustHash(t, pw)

	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			require.Equal(t, "user@example.com", email)
			return &model.User{ID: 7, Email: email, PasswordHash: hashed, Role: model.RoleHost}, nil
		},
	}
	svc := New(m, newMemSessions(), testTokens)

	u, pair, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "User@Example.com",
		Password: pw,
	})
	require.NoError(t, err)
	require.Equal(t, int64(7), u.ID)

	claims, err := jwtutil.ParseAuth("Bearer "+pair.AccessToken, testTokens.Secret)
	require.NoError(t, err)
	require.Equal(t, "host", claims.Role)
}

func TestLogin_UserNotFound(t *testing.T) {
	svc := New(&mockRepo{}, newMemSessions(), testTokens)

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed := mustHash(t, "correct-password")
	m := &mockRepo{
		byEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: 101, Email: email, PasswordHash: hashed}, nil
		},
	}
	svc := New(m, newMemSessions(), testTokens)

	_, _, err := svc.Login(context.Background(), model.LoginReq{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.Equal(t, ErrInvalidCreds, Code(err))
}

func TestRefresh_RotatesOnce(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: 5, Role: model.RoleGuest}
	m := &mockRepo{
		byIDFn: func(ctx context.Context, id int64) (*model.User, error) { return user, nil },
	}
	sessions := newMemSessions()
	svc := New(m, sessions, testTokens).(*service)

	first, err := svc.issuePair(ctx, user)
	require.NoError(t, err)

	second, err := svc.Refresh(ctx, first.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	_, err = svc.Refresh(ctx, first.RefreshToken)
	require.Equal(t, ErrInvalidToken, Code(err))
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc := New(&mockRepo{}, newMemSessions(), testTokens)

	access, err := jwtutil.Issue(testTokens.Secret, 5, "guest", 1)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), access)
	require.Equal(t, ErrInvalidToken, Code(err))
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: 5, Role: model.RoleGuest}
	sessions := newMemSessions()
	svc := New(&mockRepo{}, sessions, testTokens).(*service)

	pair, err := svc.issuePair(ctx, user)
	require.NoError(t, err)

	require.Equal(t, ErrInvalidToken, Code(svc.Logout(ctx, 99, pair.RefreshToken)))
	require.NoError(t, svc.Logout(ctx, 5, pair.RefreshToken))
	require.Empty(t, sessions.m)
}

func TestMe_NotFound(t *testing.T) {
	svc := New(&mockRepo{}, newMemSessions(), testTokens)

	_, err := svc.Me(context.Background(), 1)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrEmailTaken, Code(wrap(ErrEmailTaken, "x")))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
