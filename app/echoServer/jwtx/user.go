package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/nilaw2017/rental-server/model"
	jwtutil "github.com/nilaw2017/rental-server/util/jwt"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// ClaimsFromContext reads the token echo-jwt stored under "user".
func ClaimsFromContext(c echo.Context) (*jwtutil.Claims, error) {
	tok, ok := c.Get("user").(*jwt.Token)
	if !ok || tok == nil {
		return nil, errors.New("no jwt token in context")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid jwt claims")
	}
	return jwtutil.FromMap(claims)
}

// SetActor stores the authenticated caller for handlers.
func SetActor(c echo.Context, id int64, role model.Role) {
	c.Set(userIDKey, id)
	c.Set(roleKey, role)
}

func UserID(c echo.Context) int64 {
	id, _ := c.Get(userIDKey).(int64)
	return id
}

// Actor returns the caller set by SetActor; the zero Actor when unauthenticated.
func Actor(c echo.Context) model.Actor {
	role, _ := c.Get(roleKey).(model.Role)
	return model.Actor{ID: UserID(c), Role: role}
}
