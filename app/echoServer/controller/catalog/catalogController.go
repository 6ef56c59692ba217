package catalog

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/nilaw2017/rental-server/model"
	catalogsvc "github.com/nilaw2017/rental-server/service/catalog"
)

type Controller struct {
	Svc catalogsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	switch catalogsvc.Code(err) {
	case catalogsvc.ErrBadInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "name is required"})
	case catalogsvc.ErrDuplicate:
		return c.JSON(http.StatusConflict, echo.Map{"message": "name already exists"})
	case catalogsvc.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "not found"})
	default:
		h.Log.Error(op+" error", "err", err, "path", c.Path(), "method", c.Request().Method)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

func paramID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// GET /categories
func (h *Controller) ListCategories(c echo.Context) error {
	rows, err := h.Svc.Categories(c.Request().Context())
	if err != nil {
		return h.fail(c, "category list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /categories (admin)
func (h *Controller) CreateCategory(c echo.Context) error {
	var req CategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"name": "required"}})
	}
	cat := &model.Category{Name: req.Name, Description: req.Description}
	if err := h.Svc.CreateCategory(c.Request().Context(), cat); err != nil {
		return h.fail(c, "category create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "category created", "category": cat})
}

// PUT /categories/:id (admin)
func (h *Controller) UpdateCategory(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req CategoryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"name": "required"}})
	}
	cat := &model.Category{ID: id, Name: req.Name, Description: req.Description}
	if err := h.Svc.UpdateCategory(c.Request().Context(), cat); err != nil {
		return h.fail(c, "category update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category updated", "category": cat})
}

// DELETE /categories/:id (admin)
func (h *Controller) DeleteCategory(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.DeleteCategory(c.Request().Context(), id); err != nil {
		return h.fail(c, "category delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "category deleted"})
}

// GET /amenities
func (h *Controller) ListAmenities(c echo.Context) error {
	rows, err := h.Svc.Amenities(c.Request().Context())
	if err != nil {
		return h.fail(c, "amenity list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// POST /amenities (admin)
func (h *Controller) CreateAmenity(c echo.Context) error {
	var req AmenityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"name": "required"}})
	}
	a := &model.Amenity{Name: req.Name, Icon: req.Icon}
	if err := h.Svc.CreateAmenity(c.Request().Context(), a); err != nil {
		return h.fail(c, "amenity create", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "amenity created", "amenity": a})
}

// PUT /amenities/:id (admin)
func (h *Controller) UpdateAmenity(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req AmenityReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid json"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "validation error", "errors": echo.Map{"name": "required"}})
	}
	a := &model.Amenity{ID: id, Name: req.Name, Icon: req.Icon}
	if err := h.Svc.UpdateAmenity(c.Request().Context(), a); err != nil {
		return h.fail(c, "amenity update", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "amenity updated", "amenity": a})
}

// DELETE /amenities/:id (admin)
func (h *Controller) DeleteAmenity(c echo.Context) error {
	id, ok := paramID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.DeleteAmenity(c.Request().Context(), id); err != nil {
		return h.fail(c, "amenity delete", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "amenity deleted"})
}
