package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims is the subset of token claims the service relies on.
type Claims struct {
	UserID  int64
	Role    string
	TokenID string
}

// Issue signs an access token carrying the user id and role.
func Issue(secret string, userID int64, role string, ttlHours int) (string, error) {
	claims := jwt.MapClaims{
		"sub":  strconv.FormatInt(userID, 10),
		"role": role,
		"exp":  time.Now().Add(time.Duration(ttlHours) * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// IssueRefresh signs a refresh token; the returned jti identifies it in the session store.
func IssueRefresh(secret string, userID int64, ttlHours int) (token, jti string, err error) {
	jti = uuid.NewString()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"jti": jti,
		"exp": time.Now().Add(time.Duration(ttlHours) * time.Hour).Unix(),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", "", err
	}
	return token, jti, nil
}

// ParseAuth accepts a raw token or an "Authorization: Bearer" header value.
func ParseAuth(authHeader string, secret string) (*Claims, error) {
	tokenStr := strings.TrimSpace(authHeader)
	if tokenStr == "" {
		return nil, errors.New("missing authorization")
	}

	if strings.HasPrefix(strings.ToLower(tokenStr), "bearer ") {
		tokenStr = strings.TrimSpace(tokenStr[7:])
	}
	if tokenStr == "" {
		return nil, errors.New("missing token")
	}

	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, errors.New("invalid token")
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return FromMap(mc)
}

// FromMap converts verified map claims, as produced by echo-jwt, into Claims.
func FromMap(mc jwt.MapClaims) (*Claims, error) {
	sub, err := mc.GetSubject()
	if err != nil || sub == "" {
		return nil, errors.New("sub missing in claims")
	}
	id, err := strconv.ParseInt(sub, 10, 64)
	if err != nil || id <= 0 {
		return nil, errors.New("invalid sub claim")
	}
	out := &Claims{UserID: id}
	if role, ok := mc["role"].(string); ok {
		out.Role = role
	}
	if jti, ok := mc["jti"].(string); ok {
		out.TokenID = jti
	}
	return out, nil
}
