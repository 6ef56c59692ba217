package payment

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nilaw2017/rental-server/app/echoServer/jwtx"
	"github.com/nilaw2017/rental-server/model"
	bookingsvc "github.com/nilaw2017/rental-server/service/booking"
)

// Controller records offline payments against bookings.
type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type UpdatePaymentReq struct {
	PaymentStatus model.PaymentStatus `json:"payment_status" validate:"required,oneof=unpaid paid"`
}

// PUT /bookings/:id/payment (host or admin)
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdatePaymentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "payment_status must be unpaid or paid"})
	}

	b, err := h.Svc.UpdatePaymentStatus(c.Request().Context(), jwtx.Actor(c), id, req.PaymentStatus)
	if err != nil {
		switch bookingsvc.Code(err) {
		case bookingsvc.ErrBadInput, bookingsvc.ErrInvalidTransition:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
		case bookingsvc.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
		case bookingsvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"message": "booking not found"})
		default:
			h.Log.Error("payment update", "err", err, "booking_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "payment status updated", "booking": b})
}
