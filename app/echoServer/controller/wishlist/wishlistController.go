package wishlist

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/nilaw2017/rental-server/app/echoServer/jwtx"
	wishlistsvc "github.com/nilaw2017/rental-server/service/wishlist"
)

type Controller struct {
	Svc wishlistsvc.Service
	Log *slog.Logger
}

func propertyID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("propertyId"), 10, 64)
	return id, err == nil && id > 0
}

// GET /wishlist
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context(), jwtx.UserID(c))
	if err != nil {
		h.Log.Error("wishlist list failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /wishlist/:propertyId
func (h *Controller) Add(c echo.Context) error {
	pid, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid property id"})
	}
	if err := h.Svc.Add(c.Request().Context(), jwtx.UserID(c), pid); err != nil {
		if wishlistsvc.Code(err) == wishlistsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "property not found"})
		}
		h.Log.Error("wishlist add failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "added to wishlist"})
}

// DELETE /wishlist/:propertyId
func (h *Controller) Remove(c echo.Context) error {
	pid, ok := propertyID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid property id"})
	}
	if err := h.Svc.Remove(c.Request().Context(), jwtx.UserID(c), pid); err != nil {
		if wishlistsvc.Code(err) == wishlistsvc.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "not in wishlist"})
		}
		h.Log.Error("wishlist remove failed", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "removed from wishlist"})
}
