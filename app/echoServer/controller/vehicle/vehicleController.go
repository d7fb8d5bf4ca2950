package vehicle

import (
	"log/slog"
	"net/http"
	"strconv"

	"carrental/model"
	vs "carrental/service/vehicle"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc vs.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	h.Log.Error(op, "err", err)
	switch vs.Code(err) {
	case vs.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": "vehicle not found"})
	case vs.ErrPlateTaken:
		return c.JSON(http.StatusConflict, echo.Map{"message": "plate already registered"})
	case vs.ErrRegistrationTaken:
		return c.JSON(http.StatusConflict, echo.Map{"message": "registration already in use"})
	case vs.ErrBadInput:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

func (req VehicleReq) toModel() *model.Vehicle {
	owner := model.VehicleOwner(req.Owner)
	if owner == "" {
		owner = model.OwnerCompany
	}
	return &model.Vehicle{
		Registration: req.Registration,
		Year:         req.Year,
		Brand:        req.Brand,
		Model:        req.Model,
		Plate:        req.Plate,
		DailyRate:    req.DailyRate,
		Description:  req.Description,
		Owner:        owner,
	}
}

// POST /v1/vehicles
func (h *Controller) Create(c echo.Context) error {
	var req VehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	v, err := h.Svc.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return h.fail(c, "vehicle create", err)
	}
	return c.JSON(http.StatusCreated, v)
}

// GET /v1/vehicles/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	v, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "vehicle detail", err)
	}
	return c.JSON(http.StatusOK, v)
}

// GET /v1/vehicles
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.fail(c, "vehicle list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/vehicles/available
func (h *Controller) ListAvailable(c echo.Context) error {
	rows, err := h.Svc.ListOffered(c.Request().Context())
	if err != nil {
		return h.fail(c, "vehicle available", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/vehicles/search?brand=&model=&year=&plate=&registration=
func (h *Controller) Search(c echo.Context) error {
	if plate := c.QueryParam("plate"); plate != "" {
		v, err := h.Svc.ByPlate(c.Request().Context(), plate)
		if err != nil {
			return h.fail(c, "vehicle by plate", err)
		}
		return c.JSON(http.StatusOK, v)
	}
	if reg := c.QueryParam("registration"); reg != "" {
		v, err := h.Svc.ByRegistration(c.Request().Context(), reg)
		if err != nil {
			return h.fail(c, "vehicle by registration", err)
		}
		return c.JSON(http.StatusOK, v)
	}

	year := 0
	if v := c.QueryParam("year"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid year"})
		}
		year = n
	}
	rows, err := h.Svc.Search(c.Request().Context(), c.QueryParam("brand"), c.QueryParam("model"), year)
	if err != nil {
		return h.fail(c, "vehicle search", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// PUT /v1/vehicles/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req VehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	v := req.toModel()
	v.ID = id
	out, err := h.Svc.Update(c.Request().Context(), v)
	if err != nil {
		return h.fail(c, "vehicle update", err)
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /v1/vehicles/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "vehicle delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
