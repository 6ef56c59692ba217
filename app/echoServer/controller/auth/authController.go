package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nilaw2017/rental-server/app/echoServer/jwtx"
	"github.com/nilaw2017/rental-server/model"
	authsvc "github.com/nilaw2017/rental-server/service/auth"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (ct *Controller) bindValid(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return echo.NewHTTPError(http.StatusBadRequest, "validation error")
	}
	return nil
}

func (ct *Controller) fail(c echo.Context, op string, err error) error {
	switch authsvc.Code(err) {
	case authsvc.ErrEmailTaken:
		return echo.NewHTTPError(http.StatusConflict, "email already registered")
	case authsvc.ErrUsernameTaken:
		return echo.NewHTTPError(http.StatusConflict, "username already taken")
	case authsvc.ErrInvalidCreds:
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
	case authsvc.ErrInvalidToken:
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid refresh token")
	case authsvc.ErrBadInput:
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case authsvc.ErrNotFound:
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	default:
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		ct.Log.Error(op+" failed",
			"err", err,
			"req_id", rid,
			"path", c.Path(),
			"method", c.Request().Method,
		)
		return echo.NewHTTPError(http.StatusInternalServerError, op+" failed")
	}
}

// Register a new user
// @Summary      Register user
// @Description  Register a guest or host account; email and username must be unique
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email/username already taken"
// @Failure      500  {object}  map[string]any "internal server error"
// @Router       /users/register [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := ct.bindValid(c, &req); err != nil {
		return err
	}

	u, pair, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		return ct.fail(c, "register", err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":       "registered",
		"user":          u,
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Login
// @Summary      Login
// @Description  Login with email + password, returns an access and a refresh token
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /users/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := ct.bindValid(c, &req); err != nil {
		return err
	}

	u, pair, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		return ct.fail(c, "login", err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":       "login success",
		"user":          u,
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Refresh
// @Summary      Refresh tokens
// @Description  Exchange a refresh token for a new token pair; the old refresh token stops working
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RefreshReq  true  "Refresh payload"
// @Success      200  {object}  model.TokenPair
// @Failure      401  {object}  map[string]any
// @Router       /users/refresh [post]
func (ct *Controller) Refresh(c echo.Context) error {
	var req model.RefreshReq
	if err := ct.bindValid(c, &req); err != nil {
		return err
	}

	pair, err := ct.Svc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return ct.fail(c, "refresh", err)
	}
	return c.JSON(http.StatusOK, pair)
}

// POST /users/logout
func (ct *Controller) Logout(c echo.Context) error {
	var req model.RefreshReq
	if err := ct.bindValid(c, &req); err != nil {
		return err
	}
	if err := ct.Svc.Logout(c.Request().Context(), jwtx.UserID(c), req.RefreshToken); err != nil {
		return ct.fail(c, "logout", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out"})
}

// GET /users/me
// @Security BearerAuth
func (ct *Controller) Me(c echo.Context) error {
	u, err := ct.Svc.Me(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		return ct.fail(c, "me", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": u})
}

// GET /admin/users (admin)
func (ct *Controller) ListUsers(c echo.Context) error {
	users, err := ct.Svc.ListUsers(c.Request().Context())
	if err != nil {
		return ct.fail(c, "list users", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": users})
}
