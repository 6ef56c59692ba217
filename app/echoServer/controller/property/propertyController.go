package property

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nilaw2017/rental-server/app/echoServer/jwtx"
	"github.com/nilaw2017/rental-server/app/echoServer/validation"
	"github.com/nilaw2017/rental-server/model"
	propertysvc "github.com/nilaw2017/rental-server/service/property"
)

type Controller struct {
	Svc propertysvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch propertysvc.Code(err) {
	case propertysvc.ErrBadInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	case propertysvc.ErrForbidden:
		return c.JSON(http.StatusForbidden, echo.Map{"message": "forbidden"})
	case propertysvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "property not found"})
	case propertysvc.ErrUnsupported:
		return c.JSON(http.StatusUnsupportedMediaType, echo.Map{"message": err.Error()})
	case propertysvc.ErrTooLarge:
		return c.JSON(http.StatusRequestEntityTooLarge, echo.Map{"message": err.Error()})
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

func (h *Controller) bindProperty(c echo.Context) (*model.Property, error) {
	var req PropertyReq
	if err := c.Bind(&req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  validation.Messages(err),
		})
	}
	p, err := req.toModel()
	if err != nil {
		return nil, c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	}
	return p, nil
}

// GET /properties
// @Summary  List properties
// @Tags     properties
// @Produce  json
// @Param    city            query  string  false  "City"
// @Param    category_id     query  int     false  "Category"
// @Param    listing_type    query  string  false  "RENT or SALE"
// @Param    available_only  query  bool    false  "Only bookable listings"
// @Success  200  {object}  map[string]any
// @Router   /properties [get]
func (h *Controller) List(c echo.Context) error {
	var q ListQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid query"})
	}
	if err := h.V.Struct(q); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "listing_type must be RENT or SALE"})
	}
	rows, err := h.Svc.List(c.Request().Context(), model.PropertyFilter{
		City:          q.City,
		CategoryID:    q.CategoryID,
		ListingType:   model.ListingType(q.ListingType),
		AvailableOnly: q.AvailableOnly,
	})
	if err != nil {
		return h.fail(c, "property list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /properties/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	p, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "property detail", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"property": p})
}

// POST /properties (host or admin)
// @Summary  Create a listing
// @Tags     properties
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    payload  body  PropertyReq  true  "Property"
// @Success  201  {object}  map[string]any
// @Failure  400,401,403,500  {object}  map[string]any
// @Router   /properties [post]
func (h *Controller) Create(c echo.Context) error {
	p, err := h.bindProperty(c)
	if p == nil {
		return err
	}
	if err := h.Svc.Create(c.Request().Context(), jwtx.Actor(c), p); err != nil {
		return h.fail(c, "property create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "property created", "property": p})
}

// PUT /properties/:id (owner or admin)
func (h *Controller) Update(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	p, err := h.bindProperty(c)
	if p == nil {
		return err
	}
	p.ID = id
	if err := h.Svc.Update(c.Request().Context(), jwtx.Actor(c), p); err != nil {
		return h.fail(c, "property update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "property updated", "property": p})
}

// DELETE /properties/:id (owner or admin)
func (h *Controller) Delete(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), jwtx.Actor(c), id); err != nil {
		return h.fail(c, "property delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "property deleted"})
}

// POST /properties/:id/images (owner or admin), multipart field "image"
func (h *Controller) UploadImage(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "image file is required"})
	}
	f, err := fh.Open()
	if err != nil {
		return h.fail(c, "image open", err)
	}
	defer f.Close()

	images, err := h.Svc.AddImage(c.Request().Context(), jwtx.Actor(c), id, f, fh.Size)
	if err != nil {
		return h.fail(c, "image upload", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "image uploaded", "images": images})
}
