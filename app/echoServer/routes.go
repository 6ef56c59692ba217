package echoServer

import (
	"log/slog"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/nilaw2017/rental-server/app/echoServer/controller/auth"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/booking"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/catalog"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/payment"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/property"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/review"
	"github.com/nilaw2017/rental-server/app/echoServer/controller/wishlist"
	"github.com/nilaw2017/rental-server/model"
)

type C struct {
	Auth      *auth.Controller
	Property  *property.Controller
	Booking   *booking.Controller
	Payment   *payment.Controller
	Review    *review.Controller
	Catalog   *catalog.Controller
	Wishlist  *wishlist.Controller
	JWTSecret string
	Log       *slog.Logger
}

// JWT verifies the access token and loads the caller into the context.
// It is attached per route: as group middleware echo would also run it for
// the group's catch-all, so unknown paths would answer 401 instead of 404.
func JWT(secret string, log *slog.Logger) echo.MiddlewareFunc {
	verify := echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(secret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization:Bearer ",
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		},
	})
	load := UserContext(log)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return verify(load(next))
	}
}

func Register(e *echo.Echo, c C) {
	authed := JWT(c.JWTSecret, c.Log)
	adminOnly := RequireRole(model.RoleAdmin)
	hostOrAdmin := RequireRole(model.RoleHost, model.RoleAdmin)

	// Public
	e.POST("/users/register", c.Auth.Register)
	e.POST("/users/login", c.Auth.Login)
	e.POST("/users/refresh", c.Auth.Refresh)

	e.GET("/properties", c.Property.List)
	e.GET("/properties/:id", c.Property.Detail)
	e.GET("/properties/:id/availability", c.Booking.Availability)
	e.GET("/properties/:id/reviews", c.Review.ListForProperty)

	e.GET("/categories", c.Catalog.ListCategories)
	e.GET("/amenities", c.Catalog.ListAmenities)

	// Auth
	e.POST("/users/logout", c.Auth.Logout, authed)
	e.GET("/users/me", c.Auth.Me, authed)

	// Properties (host)
	e.POST("/properties", c.Property.Create, authed, hostOrAdmin)
	e.PUT("/properties/:id", c.Property.Update, authed, hostOrAdmin)
	e.DELETE("/properties/:id", c.Property.Delete, authed, hostOrAdmin)
	e.POST("/properties/:id/images", c.Property.UploadImage, authed, hostOrAdmin)

	// Bookings
	e.POST("/bookings", c.Booking.Create, authed)
	e.GET("/bookings/my", c.Booking.MyBookings, authed)
	e.GET("/bookings/hosting", c.Booking.Hosting, authed, hostOrAdmin)
	e.GET("/bookings/:id", c.Booking.Detail, authed)
	e.PUT("/bookings/:id/status", c.Booking.UpdateStatus, authed, hostOrAdmin)
	e.PUT("/bookings/:id/cancel", c.Booking.Cancel, authed)
	e.PUT("/bookings/:id/payment", c.Payment.Update, authed, hostOrAdmin)

	// Reviews
	e.POST("/reviews", c.Review.Create, authed)

	// Wishlist
	e.GET("/wishlist", c.Wishlist.List, authed)
	e.POST("/wishlist/:propertyId", c.Wishlist.Add, authed)
	e.DELETE("/wishlist/:propertyId", c.Wishlist.Remove, authed)

	// Admin
	e.POST("/categories", c.Catalog.CreateCategory, authed, adminOnly)
	e.PUT("/categories/:id", c.Catalog.UpdateCategory, authed, adminOnly)
	e.DELETE("/categories/:id", c.Catalog.DeleteCategory, authed, adminOnly)
	e.POST("/amenities", c.Catalog.CreateAmenity, authed, adminOnly)
	e.PUT("/amenities/:id", c.Catalog.UpdateAmenity, authed, adminOnly)
	e.DELETE("/amenities/:id", c.Catalog.DeleteAmenity, authed, adminOnly)

	e.GET("/admin/users", c.Auth.ListUsers, authed, adminOnly)
}
