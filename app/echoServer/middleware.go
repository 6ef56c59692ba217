package echoServer

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/nilaw2017/rental-server/app/echoServer/jwtx"
	"github.com/nilaw2017/rental-server/model"
)

func RegisterMiddlewares(e *echo.Echo, log *slog.Logger) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog(log))
}

func Slog(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let the error handler set the final status before logging
				c.Error(err)
			}
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			log.Info("http",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
				"ua", c.Request().UserAgent(),
			)
			return nil
		}
	}
}

// UserContext runs after echo-jwt and exposes the caller's id and role to handlers.
func UserContext(log *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := jwtx.ClaimsFromContext(c)
			if err != nil {
				log.Warn("auth: bad claims",
					"err", err,
					"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
					"ip", c.RealIP(),
				)
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			role := model.Role(claims.Role)
			if !role.Valid() {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			jwtx.SetActor(c, claims.UserID, role)
			return next(c)
		}
	}
}

// RequireRole rejects callers whose role is not listed.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := jwtx.Actor(c)
			for _, r := range roles {
				if actor.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
	}
}
