package review

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nilaw2017/rental-server/app/echoServer/jwtx"
	"github.com/nilaw2017/rental-server/app/echoServer/validation"
	reviewsvc "github.com/nilaw2017/rental-server/service/review"
)

type Controller struct {
	Svc reviewsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type CreateReviewReq struct {
	BookingID  int64  `json:"booking_id" validate:"required,gt=0"`
	PropertyID int64  `json:"property_id" validate:"required,gt=0"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment" validate:"max=2000"`
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch reviewsvc.Code(err) {
	case reviewsvc.ErrBadInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case reviewsvc.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": err.Error()})
	case reviewsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	case reviewsvc.ErrDuplicate:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
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

// POST /reviews
// @Summary  Review a completed booking
// @Tags     reviews
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    payload  body  CreateReviewReq  true  "Review payload"
// @Success  201  {object}  map[string]any
// @Failure  400,401,403,404,409,500  {object}  map[string]any
// @Router   /reviews [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.Messages(err),
		})
	}

	rv, err := h.Svc.Create(c.Request().Context(), jwtx.Actor(c), reviewsvc.CreateReq{
		BookingID:  req.BookingID,
		PropertyID: req.PropertyID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return h.fail(c, "review create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "review added", "review": rv})
}

// GET /properties/:id/reviews
func (h *Controller) ListForProperty(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	sum, err := h.Svc.ForProperty(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "review list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "reviews retrieved", "summary": sum})
}
