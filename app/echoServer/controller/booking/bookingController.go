package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nilaw2017/rental-server/app/echoServer/jwtx"
	"github.com/nilaw2017/rental-server/app/echoServer/validation"
	"github.com/nilaw2017/rental-server/model"
	bookingsvc "github.com/nilaw2017/rental-server/service/booking"
	"github.com/nilaw2017/rental-server/util/dates"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch bookingsvc.Code(err) {
	case bookingsvc.ErrBadInput, bookingsvc.ErrUnavailable, bookingsvc.ErrTooLateToCancel, bookingsvc.ErrInvalidTransition:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case bookingsvc.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{
			"message":   err.Error(),
			"conflicts": bookingsvc.Conflicts(err),
		})
	case bookingsvc.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case bookingsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	default:
		h.Log.Error(op,
			"err", err,
			"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"path", c.Path(),
			"method", c.Request().Method,
		)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

func paramID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// GET /properties/:id/availability?startDate&endDate
// @Summary  Check availability of a property for a date range
// @Tags     bookings
// @Produce  json
// @Param    id         path   int     true  "Property ID"
// @Param    startDate  query  string  true  "ISO-8601 start"
// @Param    endDate    query  string  true  "ISO-8601 end"
// @Success  200  {object}  map[string]any
// @Failure  400,404,500  {object}  map[string]any
// @Router   /properties/{id}/availability [get]
func (h *Controller) Availability(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var q AvailabilityQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}
	if err := h.V.Struct(q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "startDate and endDate are required"})
	}
	start, err := dates.Parse(q.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	end, err := dates.Parse(q.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	av, err := h.Svc.Availability(c.Request().Context(), id, start, end)
	if err != nil {
		return h.fail(c, "availability", err)
	}
	msg := "property is available"
	if !av.Available {
		msg = av.Reason
	}
	return c.JSON(http.StatusOK, echo.Map{"message": msg, "availability": av})
}

// POST /bookings
// @Summary  Book a property
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    payload  body  CreateBookingReq  true  "Booking payload"
// @Success  201  {object}  map[string]any
// @Failure  400,401,404,409,500  {object}  map[string]any
// @Router   /bookings [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.Messages(err),
		})
	}
	start, err := dates.Parse(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	end, err := dates.Parse(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}

	b, err := h.Svc.Create(c.Request().Context(), jwtx.Actor(c), bookingsvc.CreateReq{
		PropertyID: req.PropertyID,
		StartDate:  start,
		EndDate:    end,
		GuestCount: req.GuestCount,
	})
	if err != nil {
		return h.fail(c, "booking create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "booking created", "booking": b})
}

// GET /bookings/my
func (h *Controller) MyBookings(c echo.Context) error {
	rows, err := h.Svc.ListMine(c.Request().Context(), jwtx.Actor(c))
	if err != nil {
		return h.fail(c, "my bookings", err)
	}
	if rows == nil {
		rows = []model.Booking{}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /bookings/hosting
func (h *Controller) Hosting(c echo.Context) error {
	rows, err := h.Svc.ListHosting(c.Request().Context(), jwtx.Actor(c))
	if err != nil {
		return h.fail(c, "hosting bookings", err)
	}
	if rows == nil {
		rows = []model.Booking{}
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /bookings/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.Get(c.Request().Context(), jwtx.Actor(c), id)
	if err != nil {
		return h.fail(c, "booking detail", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"booking": b})
}

// PUT /bookings/:id/status (host or admin)
// @Summary  Set booking status
// @Tags     bookings
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id       path  int              true  "Booking ID"
// @Param    payload  body  UpdateStatusReq  true  "Target status"
// @Success  200  {object}  map[string]any
// @Failure  400,401,403,404,500  {object}  map[string]any
// @Router   /bookings/{id}/status [put]
func (h *Controller) UpdateStatus(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "status must be one of confirmed, cancelled, completed"})
	}

	b, err := h.Svc.UpdateStatus(c.Request().Context(), jwtx.Actor(c), id, req.Status)
	if err != nil {
		return h.fail(c, "booking status", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking " + string(b.Status), "booking": b})
}

// PUT /bookings/:id/cancel (guest)
// @Summary  Cancel own booking at least 24h before start
// @Tags     bookings
// @Produce  json
// @Security BearerAuth
// @Param    id  path  int  true  "Booking ID"
// @Success  200  {object}  map[string]any
// @Failure  400,401,403,404,500  {object}  map[string]any
// @Router   /bookings/{id}/cancel [put]
func (h *Controller) Cancel(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	b, err := h.Svc.Cancel(c.Request().Context(), jwtx.Actor(c), id)
	if err != nil {
		return h.fail(c, "booking cancel", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "booking cancelled", "booking": b})
}
