package echoServer

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/nilaw2017/rental-server/app/echoServer/controller/auth"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/booking"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/catalog"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/payment"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/property"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/review"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/wishlist"
	"github.com/nilaw2017/rental-server/app/echoServer/jwtx"
	"github.com/nilaw2017/rental-server/model"
	jwtutil "github.com/nilaw2017/rental-server/util/jwt"
)

const testSecret = "testsecret"

// buildTestApp wires the auth chain in front of an admin-only and a plain route.
func buildTestApp() *echo.Echo {
	e := echo.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	authed := JWT(testSecret, log)
	e.GET("/api/me", func(c echo.Context) error {
		a := jwtx.Actor(c)
		return c.JSON(http.StatusOK, echo.Map{"id": a.ID, "role": a.Role})
	}, authed)
	e.GET("/api/admin/users", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"data": []string{}})
	}, authed, RequireRole(model.RoleAdmin))
	return e
}

func signTestToken(t *testing.T, id int64, role string) string {
	t.Helper()
	tok, err := jwtutil.Issue(testSecret, id, role, 1)
	require.NoError(t, err)
	return tok
}

func do(e *echo.Echo, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAdminUsersRBAC(t *testing.T) {
	e := buildTestApp()

	require.Equal(t, http.StatusUnauthorized, do(e, "/api/admin/users", "").Code)
	require.Equal(t, http.StatusUnauthorized, do(e, "/api/admin/users", "garbage").Code)
	require.Equal(t, http.StatusForbidden, do(e, "/api/admin/users", signTestToken(t, 2, "host")).Code)
	require.Equal(t, http.StatusOK, do(e, "/api/admin/users", signTestToken(t, 1, "admin")).Code)
}

func TestUserContext_SetsActor(t *testing.T) {
	e := buildTestApp()

	rec := do(e, "/api/me", signTestToken(t, 7, "guest"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"id":7,"role":"guest"}`, rec.Body.String())
}

func TestUserContext_RejectsUnknownRole(t *testing.T) {
	e := buildTestApp()

	require.Equal(t, http.StatusUnauthorized, do(e, "/api/me", signTestToken(t, 7, "superuser")).Code)
}

func TestUserContext_RejectsRefreshSecret(t *testing.T) {
	e := buildTestApp()

	tok, _, err := jwtutil.IssueRefresh("other-secret", 7, 1)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, do(e, "/api/me", tok).Code)
}

// routedApp registers the real route table; handlers are never reached here.
func routedApp() *echo.Echo {
	e := echo.New()
	Register(e, C{
		Auth:      &auth.Controller{},
		Property:  &property.Controller{},
		Booking:   &booking.Controller{},
		Payment:   &payment.Controller{},
		Review:    &review.Controller{},
		Catalog:   &catalog.Controller{},
		Wishlist:  &wishlist.Controller{},
		JWTSecret: testSecret,
		Log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return e
}

func TestRegister_UnknownPathIsNotFound(t *testing.T) {
	e := routedApp()

	require.Equal(t, http.StatusNotFound, do(e, "/nope", "").Code)
	require.Equal(t, http.StatusNotFound, do(e, "/admin/nope", "").Code)
	require.Equal(t, http.StatusNotFound, do(e, "/bookings/1/nope", "").Code)
}

func TestRegister_ProtectedRoutes(t *testing.T) {
	e := routedApp()

	require.Equal(t, http.StatusUnauthorized, do(e, "/bookings/my", "").Code)
	require.Equal(t, http.StatusUnauthorized, do(e, "/admin/users", "").Code)
	require.Equal(t, http.StatusForbidden, do(e, "/admin/users", signTestToken(t, 2, "host")).Code)
	require.Equal(t, http.StatusForbidden, do(e, "/bookings/hosting", signTestToken(t, 7, "guest")).Code)
}
