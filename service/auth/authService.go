package authsvc

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/nilaw2017/rental-server/model"
	"github.com/nilaw2017/rental-server/repository/session"
	userrepo "github.com/nilaw2017/rental-server/repository/user"
	"github.com/nilaw2017/rental-server/util/database"
	"github.com/nilaw2017/rental-server/util/hash"
	jwtutil "github.com/nilaw2017/rental-server/util/jwt"
)

// Tokens holds the signing secrets and lifetimes for issued tokens.
type Tokens struct {
	Secret          string
	RefreshSecret   string
	AccessTTLHours  int
	RefreshTTLHours int
}

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, *model.TokenPair, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, *model.TokenPair, error)
	// Refresh rotates a refresh token; each refresh token is usable once.
	Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error)
	Logout(ctx context.Context, userID int64, refreshToken string) error
	Me(ctx context.Context, userID int64) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type service struct {
	ur       userrepo.Repo
	sessions session.Store
	tok      Tokens
}

func New(ur userrepo.Repo, sessions session.Store, tok Tokens) Service {
	return &service{ur: ur, sessions: sessions, tok: tok}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, *model.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" || len(req.Password) < 6 {
		return nil, nil, makeErr(ErrBadInput)
	}

	role := req.Role
	if role == "" {
		role = model.RoleGuest
	}
	if role != model.RoleGuest && role != model.RoleHost {
		return nil, nil, wrap(ErrBadInput, "role must be guest or host")
	}

	existing, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, makeErr(ErrEmailTaken)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, nil, err
	}

	u := &model.User{
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, nil, derr
		}
		return nil, nil, err
	}

	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func mapDuplicateErr(err error) error {
	cn, ok := database.Violation(err, pgerrcode.UniqueViolation)
	if !ok {
		return nil
	}
	cn = strings.ToLower(cn)
	switch {
	case strings.Contains(cn, "email"):
		return makeErr(ErrEmailTaken)
	case strings.Contains(cn, "username"):
		return makeErr(ErrUsernameTaken)
	}
	return makeErr(ErrBadInput)
}

func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, *model.TokenPair, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, nil, makeErr(ErrBadInput)
	}

	u, err := s.ur.ByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}
	if u == nil || !hash.Check(u.PasswordHash, req.Password) {
		return nil, nil, makeErr(ErrInvalidCreds)
	}

	pair, err := s.issuePair(ctx, u)
	if err != nil {
		return nil, nil, err
	}
	return u, pair, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*model.TokenPair, error) {
	claims, err := jwtutil.ParseAuth(refreshToken, s.tok.RefreshSecret)
	if err != nil || claims.TokenID == "" {
		return nil, makeErr(ErrInvalidToken)
	}

	owner, ok, err := s.sessions.Consume(ctx, claims.TokenID)
	if err != nil {
		return nil, err
	}
	if !ok || owner != claims.UserID {
		return nil, makeErr(ErrInvalidToken)
	}

	u, err := s.ur.ByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, makeErr(ErrInvalidToken)
	}
	return s.issuePair(ctx, u)
}

func (s *service) Logout(ctx context.Context, userID int64, refreshToken string) error {
	claims, err := jwtutil.ParseAuth(refreshToken, s.tok.RefreshSecret)
	if err != nil || claims.TokenID == "" || claims.UserID != userID {
		return makeErr(ErrInvalidToken)
	}
	return s.sessions.Revoke(ctx, claims.TokenID)
}

func (s *service) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, makeErr(ErrNotFound)
	}
	return u, nil
}

func (s *service) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.ur.List(ctx)
}

func (s *service) issuePair(ctx context.Context, u *model.User) (*model.TokenPair, error) {
	access, err := jwtutil.Issue(s.tok.Secret, u.ID, string(u.Role), s.tok.AccessTTLHours)
	if err != nil {
		return nil, err
	}
	refresh, jti, err := jwtutil.IssueRefresh(s.tok.RefreshSecret, u.ID, s.tok.RefreshTTLHours)
	if err != nil {
		return nil, err
	}
	ttl := time.Duration(s.tok.RefreshTTLHours) * time.Hour
	if err := s.sessions.Save(ctx, jti, u.ID, ttl); err != nil {
		return nil, err
	}
	return &model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
