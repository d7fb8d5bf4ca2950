package agreement

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"carrental/app/echoServer/jwtx"
	"carrental/model"
	as "carrental/service/agreement"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc as.Service
	V   *validator.Validate
	Log *slog.Logger
}

func (h *Controller) fail(c echo.Context, op string, err error) error {
	h.Log.Error(op, "err", err)
	switch as.Code(err) {
	case as.ErrNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"message": err.Error()})
	case as.ErrVehicleUnavailable:
		return c.JSON(http.StatusConflict, echo.Map{"message": "vehicle not offered for rental"})
	case as.ErrDateRangeInvalid:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "start date must not be after end date"})
	case as.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"message": "vehicle already committed in this period"})
	case as.ErrInvalidTransition:
		return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "internal error"})
	}
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// Create a rental request
// @Summary      Create agreement request
// @Tags         agreements
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateAgreementReq  true  "Agreement payload"
// @Success      201  {object}  model.Agreement
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "vehicle unavailable or period conflict"
// @Router       /v1/agreements [post]
func (h *Controller) Create(c echo.Context) error {
	var req CreateAgreementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}
	start, _ := parseDate(req.StartDate)
	end, _ := parseDate(req.EndDate)

	a, err := h.Svc.Create(c.Request().Context(), as.CreateReq{
		VehicleID:   req.VehicleID,
		RequesterID: req.RequesterID,
		Start:       start,
		End:         end,
		Type:        model.AgreementType(req.Type),
		Notes:       req.Notes,
	})
	if err != nil {
		return h.fail(c, "agreement create", err)
	}
	return c.JSON(http.StatusCreated, a)
}

// PUT /v1/agreements/:id
func (h *Controller) Update(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var req UpdateAgreementReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid JSON"})
	}
	if err := h.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"message": "validation error",
			"errors":  err.Error(),
		})
	}

	upd := as.UpdateReq{Notes: req.Notes}
	if req.StartDate != nil {
		d, _ := parseDate(*req.StartDate)
		upd.Start = &d
	}
	if req.EndDate != nil {
		d, _ := parseDate(*req.EndDate)
		upd.End = &d
	}

	a, err := h.Svc.Update(c.Request().Context(), id, upd)
	if err != nil {
		return h.fail(c, "agreement update", err)
	}
	return c.JSON(http.StatusOK, a)
}

// PATCH /v1/agreements/:id/approve
func (h *Controller) Approve(c echo.Context) error { return h.review(c, h.Svc.Approve) }

// PATCH /v1/agreements/:id/reject
func (h *Controller) Reject(c echo.Context) error { return h.review(c, h.Svc.Reject) }

func (h *Controller) review(c echo.Context, fn func(ctx context.Context, id int64, reviewerID *int64) (*model.Agreement, error)) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	var reviewer *int64
	if uid, err := jwtx.UserIDFromContext(c); err == nil {
		reviewer = &uid
	}
	a, err := fn(c.Request().Context(), id, reviewer)
	if err != nil {
		return h.fail(c, "agreement review", err)
	}
	return c.JSON(http.StatusOK, a)
}

// PATCH /v1/agreements/:id/activate
func (h *Controller) Activate(c echo.Context) error {
	return h.transition(c, "agreement activate", h.Svc.Activate)
}

// PATCH /v1/agreements/:id/finalize
func (h *Controller) Finalize(c echo.Context) error {
	return h.transition(c, "agreement finalize", h.Svc.Finalize)
}

// PATCH /v1/agreements/:id/cancel
func (h *Controller) Cancel(c echo.Context) error {
	return h.transition(c, "agreement cancel", h.Svc.Cancel)
}

func (h *Controller) transition(c echo.Context, op string, fn func(ctx context.Context, id int64) (*model.Agreement, error)) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	a, err := fn(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, op, err)
	}
	return c.JSON(http.StatusOK, a)
}

// DELETE /v1/agreements/:id
func (h *Controller) Delete(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	if err := h.Svc.Delete(c.Request().Context(), id); err != nil {
		return h.fail(c, "agreement delete", err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /v1/agreements/:id
func (h *Controller) Detail(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid id"})
	}
	a, err := h.Svc.Get(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, "agreement detail", err)
	}
	return c.JSON(http.StatusOK, a)
}

// GET /v1/agreements
func (h *Controller) List(c echo.Context) error {
	ctx := c.Request().Context()

	if v := c.QueryParam("vehicle_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid vehicle_id"})
		}
		rows, err := h.Svc.ListByVehicle(ctx, id)
		if err != nil {
			return h.fail(c, "agreement list", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": rows})
	}
	if v := c.QueryParam("requester_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid requester_id"})
		}
		rows, err := h.Svc.ListByRequester(ctx, id)
		if err != nil {
			return h.fail(c, "agreement list", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": rows})
	}
	if v := c.QueryParam("type"); v != "" {
		rows, err := h.Svc.ListByType(ctx, model.AgreementType(v))
		if err != nil {
			return h.fail(c, "agreement list", err)
		}
		return c.JSON(http.StatusOK, echo.Map{"data": rows})
	}

	rows, err := h.Svc.List(ctx)
	if err != nil {
		return h.fail(c, "agreement list", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/agreements/status/:status
func (h *Controller) ListByStatus(c echo.Context) error {
	status := model.AgreementStatus(c.Param("status"))
	switch status {
	case model.AgreementPending, model.AgreementApproved, model.AgreementRejected,
		model.AgreementActive, model.AgreementFinalized, model.AgreementCancelled:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "unknown status"})
	}
	rows, err := h.Svc.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return h.fail(c, "agreement list by status", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/agreements/pending
func (h *Controller) ListPending(c echo.Context) error {
	rows, err := h.Svc.ListPending(c.Request().Context())
	if err != nil {
		return h.fail(c, "agreement pending", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/agreements/active?date=2024-01-15
func (h *Controller) ListActiveOn(c echo.Context) error {
	var date *time.Time
	if v := c.QueryParam("date"); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid date, expected YYYY-MM-DD"})
		}
		date = &d
	}
	rows, err := h.Svc.ListActiveOn(c.Request().Context(), date)
	if err != nil {
		return h.fail(c, "agreement active on", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}

// GET /v1/agreements/overdue
func (h *Controller) ListOverdue(c echo.Context) error {
	rows, err := h.Svc.ListOverdue(c.Request().Context())
	if err != nil {
		return h.fail(c, "agreement overdue", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"data": rows})
}
