package agreement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"carrental/model"
	arepo "carrental/repository/agreement"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound           ErrCode = "NOT_FOUND"
	ErrVehicleUnavailable ErrCode = "VEHICLE_UNAVAILABLE"
	ErrDateRangeInvalid   ErrCode = "DATE_RANGE_INVALID"
	ErrConflict           ErrCode = "CONFLICT"
	ErrInvalidTransition  ErrCode = "INVALID_TRANSITION"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode) error { return codedError{code: c} }
func makeErrf(c ErrCode, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type CreateReq struct {
	VehicleID   int64
	RequesterID int64
	Start       time.Time
	End         time.Time
	Type        model.AgreementType
	Notes       *string
}

type UpdateReq struct {
	Start *time.Time
	End   *time.Time
	Notes *string
}

type Repo interface {
	Insert(ctx context.Context, tx *sql.Tx, a *model.Agreement) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Agreement, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.AgreementStatus, reviewerID *int64) error
	UpdatePeriod(ctx context.Context, tx *sql.Tx, id int64, start, end time.Time, notes *string) error
	UpdateNotes(ctx context.Context, tx *sql.Tx, id int64, notes *string) error
	Delete(ctx context.Context, tx *sql.Tx, id int64) error
	ActiveForVehicle(ctx context.Context, tx *sql.Tx, vehicleID int64) ([]arepo.Period, error)

	Get(ctx context.Context, id int64) (*model.Agreement, error)
	List(ctx context.Context) ([]model.Agreement, error)
	ListByStatus(ctx context.Context, status model.AgreementStatus) ([]model.Agreement, error)
	ListByType(ctx context.Context, t model.AgreementType) ([]model.Agreement, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]model.Agreement, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.Agreement, error)
	ListActiveOn(ctx context.Context, date time.Time) ([]model.Agreement, error)
	ListOverdue(ctx context.Context, date time.Time) ([]model.Agreement, error)
}

type VehicleRepo interface {
	LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Vehicle, error)
	SetOffered(ctx context.Context, tx *sql.Tx, id int64, offered bool) error
}

type RequesterRepo interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	// Create validates the request and persists a PENDING agreement.
	Create(ctx context.Context, req CreateReq) (*model.Agreement, error)

	// Update mutates dates/notes while PENDING or APPROVED; from ACTIVE on,
	// only notes can still change.
	Update(ctx context.Context, id int64, req UpdateReq) (*model.Agreement, error)

	Approve(ctx context.Context, id int64, reviewerID *int64) (*model.Agreement, error)
	Reject(ctx context.Context, id int64, reviewerID *int64) (*model.Agreement, error)
	Activate(ctx context.Context, id int64) (*model.Agreement, error)
	Finalize(ctx context.Context, id int64) (*model.Agreement, error)
	Cancel(ctx context.Context, id int64) (*model.Agreement, error)

	// Delete removes the stored record; only terminal agreements qualify.
	Delete(ctx context.Context, id int64) error

	Get(ctx context.Context, id int64) (*model.Agreement, error)
	List(ctx context.Context) ([]model.Agreement, error)
	ListByStatus(ctx context.Context, status model.AgreementStatus) ([]model.Agreement, error)
	ListByType(ctx context.Context, t model.AgreementType) ([]model.Agreement, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]model.Agreement, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.Agreement, error)
	ListPending(ctx context.Context) ([]model.Agreement, error)
	ListActiveOn(ctx context.Context, date *time.Time) ([]model.Agreement, error)
	ListOverdue(ctx context.Context) ([]model.Agreement, error)
}

// ----- Service implementation -----

type service struct {
	db *sql.DB
	r  Repo
	vr VehicleRepo
	qr RequesterRepo

	now func() time.Time
}

func New(db *sql.DB, r Repo, vr VehicleRepo, qr RequesterRepo) Service {
	return &service{db: db, r: r, vr: vr, qr: qr, now: time.Now}
}

// Create checks vehicle and requester, runs the conflict check under the
// vehicle row lock and persists the agreement as PENDING.
func (s *service) Create(ctx context.Context, req CreateReq) (a *model.Agreement, err error) {
	if req.End.Before(req.Start) {
		return nil, makeErr(ErrDateRangeInvalid)
	}

	ok, err := s.qr.Exists(ctx, req.RequesterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErrf(ErrNotFound, "requester %d not found", req.RequesterID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Row lock: no other create/activate for this vehicle can interleave
	// between the conflict check and the insert.
	v, err := s.vr.LockForUpdate(ctx, tx, req.VehicleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErrf(ErrNotFound, "vehicle %d not found", req.VehicleID)
		}
		return nil, err
	}
	if !v.Offered {
		return nil, makeErr(ErrVehicleUnavailable)
	}

	active, err := s.r.ActiveForVehicle(ctx, tx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if hasConflict(active, req.Start, req.End, 0) {
		return nil, makeErr(ErrConflict)
	}

	typ := req.Type
	if typ == "" {
		typ = model.TypeRental
	}
	a = &model.Agreement{
		VehicleID:   req.VehicleID,
		RequesterID: req.RequesterID,
		StartDate:   req.Start,
		EndDate:     req.End,
		Status:      model.AgreementPending,
		Type:        typ,
		DailyRate:   v.DailyRate,
		Notes:       req.Notes,
	}
	if err = s.r.Insert(ctx, tx, a); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Update(ctx context.Context, id int64, req UpdateReq) (a *model.Agreement, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	a, err = s.getForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	changesPeriod := req.Start != nil || req.End != nil
	if changesPeriod {
		// Changing dates after activation would invalidate the occupancy the
		// ledger was checked against, so it is treated as a transition error.
		if a.Status != model.AgreementPending && a.Status != model.AgreementApproved {
			return nil, makeErrf(ErrInvalidTransition, "cannot change period of agreement in status %s", a.Status)
		}
		start, end := a.StartDate, a.EndDate
		if req.Start != nil {
			start = *req.Start
		}
		if req.End != nil {
			end = *req.End
		}
		if end.Before(start) {
			return nil, makeErr(ErrDateRangeInvalid)
		}
		if err = s.r.UpdatePeriod(ctx, tx, id, start, end, req.Notes); err != nil {
			return nil, err
		}
		a.StartDate, a.EndDate = start, end
		if req.Notes != nil {
			a.Notes = req.Notes
		}
	} else if req.Notes != nil {
		if err = s.r.UpdateNotes(ctx, tx, id, req.Notes); err != nil {
			return nil, err
		}
		a.Notes = req.Notes
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) Approve(ctx context.Context, id int64, reviewerID *int64) (*model.Agreement, error) {
	return s.review(ctx, id, EventApprove, reviewerID)
}

func (s *service) Reject(ctx context.Context, id int64, reviewerID *int64) (*model.Agreement, error) {
	return s.review(ctx, id, EventReject, reviewerID)
}

// review handles the transitions that only touch the agreement row.
func (s *service) review(ctx context.Context, id int64, ev Event, reviewerID *int64) (a *model.Agreement, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	a, err = s.getForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	next, err := nextStatus(a.Status, ev)
	if err != nil {
		return nil, err
	}
	if err = s.r.UpdateStatus(ctx, tx, id, next, reviewerID); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	a.Status = next
	if reviewerID != nil {
		a.ReviewerID = reviewerID
	}
	return a, nil
}

// Activate re-runs the conflict check under the vehicle row lock: another
// agreement may have gone ACTIVE since this one was created.
func (s *service) Activate(ctx context.Context, id int64) (a *model.Agreement, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	a, err = s.getForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	next, err := nextStatus(a.Status, EventActivate)
	if err != nil {
		return nil, err
	}

	if _, err = s.vr.LockForUpdate(ctx, tx, a.VehicleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErrf(ErrNotFound, "vehicle %d not found", a.VehicleID)
		}
		return nil, err
	}
	active, err := s.r.ActiveForVehicle(ctx, tx, a.VehicleID)
	if err != nil {
		return nil, err
	}
	if hasConflict(active, a.StartDate, a.EndDate, a.ID) {
		return nil, makeErr(ErrConflict)
	}

	if err = s.r.UpdateStatus(ctx, tx, id, next, nil); err != nil {
		return nil, err
	}
	if err = s.vr.SetOffered(ctx, tx, a.VehicleID, false); err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	a.Status = next
	return a, nil
}

func (s *service) Finalize(ctx context.Context, id int64) (*model.Agreement, error) {
	return s.release(ctx, id, EventFinalize)
}

func (s *service) Cancel(ctx context.Context, id int64) (*model.Agreement, error) {
	return s.release(ctx, id, EventCancel)
}

// release covers finalize and cancel; leaving ACTIVE offers the vehicle again.
func (s *service) release(ctx context.Context, id int64, ev Event) (a *model.Agreement, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	a, err = s.getForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	next, err := nextStatus(a.Status, ev)
	if err != nil {
		return nil, err
	}
	wasActive := a.Status == model.AgreementActive

	if err = s.r.UpdateStatus(ctx, tx, id, next, nil); err != nil {
		return nil, err
	}
	if wasActive {
		if err = s.vr.SetOffered(ctx, tx, a.VehicleID, true); err != nil {
			return nil, err
		}
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	a.Status = next
	return a, nil
}

func (s *service) Delete(ctx context.Context, id int64) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	a, err := s.getForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}
	if !a.Status.Terminal() {
		return makeErrf(ErrInvalidTransition, "cannot delete agreement in status %s", a.Status)
	}
	if err = s.r.Delete(ctx, tx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) getForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Agreement, error) {
	a, err := s.r.GetForUpdate(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErrf(ErrNotFound, "agreement %d not found", id)
		}
		return nil, err
	}
	return a, nil
}

// ----- Reads -----

func (s *service) Get(ctx context.Context, id int64) (*model.Agreement, error) {
	a, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErrf(ErrNotFound, "agreement %d not found", id)
		}
		return nil, err
	}
	return a, nil
}

func (s *service) List(ctx context.Context) ([]model.Agreement, error) { return s.r.List(ctx) }

func (s *service) ListByStatus(ctx context.Context, status model.AgreementStatus) ([]model.Agreement, error) {
	return s.r.ListByStatus(ctx, status)
}

func (s *service) ListByType(ctx context.Context, t model.AgreementType) ([]model.Agreement, error) {
	return s.r.ListByType(ctx, t)
}

func (s *service) ListByVehicle(ctx context.Context, vehicleID int64) ([]model.Agreement, error) {
	return s.r.ListByVehicle(ctx, vehicleID)
}

func (s *service) ListByRequester(ctx context.Context, requesterID int64) ([]model.Agreement, error) {
	return s.r.ListByRequester(ctx, requesterID)
}

func (s *service) ListPending(ctx context.Context) ([]model.Agreement, error) {
	return s.r.ListByStatus(ctx, model.AgreementPending)
}

func (s *service) ListActiveOn(ctx context.Context, date *time.Time) ([]model.Agreement, error) {
	d := s.now()
	if date != nil {
		d = *date
	}
	return s.r.ListActiveOn(ctx, d)
}

func (s *service) ListOverdue(ctx context.Context) ([]model.Agreement, error) {
	return s.r.ListOverdue(ctx, s.now())
}
