package requester

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"carrental/model"
	rs "carrental/service/requester"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc rs.Service
	V   *validator.Validate
	Log *slog.Logger
}

type RequesterReq struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Document string `json:"document" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=CLIENT COMPANY BANK"`
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	h.Log.Error(op, "err", err)
	switch {
	case errors.Is(err, rs.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"message": "requester not found"})
	case errors.Is(err, rs.ErrBadInput):
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "bad input"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

// POST /v1/requesters
func (h *Controller) Create(c echo.Context) error {
	var req RequesterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	out, err := h.Svc.Create(c.Request().Context(), &model.Requester{
		Name:     req.Name,
		Email:    req.Email,
		Document: req.Document,
		Role:     model.RequesterRole(req.Role),
	})
	if err != nil {
		return h.fail(c, "requester create", err)
	}
	return c.JSON(http.StatusCreated, out)
}

// GET /v1/requesters/:id
func (h *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	out, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "requester detail", err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/requesters
func (h *Controller) List(c echo.Context) error {
	rows, err := h.Svc.List(c.Request().Context())
	if err != nil {
		return h.fail(c, "requester list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// PUT /v1/requesters/:id
func (h *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req RequesterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	out, err := h.Svc.Update(c.Request().Context(), &model.Requester{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Document: req.Document,
		Role:     model.RequesterRole(req.Role),
	})
	if err != nil {
		return h.fail(c, "requester update", err)
	}
	return c.JSON(http.StatusOK, out)
}

// DELETE /v1/requesters/:id
func (h *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "requester delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}
