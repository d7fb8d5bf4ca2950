package vehiclesvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"carrental/model"
	vehiclerepo "carrental/repository/vehicle"
)

type ErrCode string

const (
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrPlateTaken        ErrCode = "PLATE_TAKEN"
	ErrRegistrationTaken ErrCode = "REGISTRATION_TAKEN"
	ErrBadInput          ErrCode = "BAD_INPUT"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Create(ctx context.Context, v *model.Vehicle) error
	Get(ctx context.Context, id int64) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	ListOffered(ctx context.Context) ([]model.Vehicle, error)
	Search(ctx context.Context, brand, vmodel string, year int) ([]model.Vehicle, error)
	ByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	ByRegistration(ctx context.Context, registration string) (*model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
	Delete(ctx context.Context, id int64) error
}

type Service interface {
	Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error)
	Get(ctx context.Context, id int64) (*model.Vehicle, error)
	List(ctx context.Context) ([]model.Vehicle, error)
	ListOffered(ctx context.Context) ([]model.Vehicle, error)
	Search(ctx context.Context, brand, vmodel string, year int) ([]model.Vehicle, error)
	ByPlate(ctx context.Context, plate string) (*model.Vehicle, error)
	ByRegistration(ctx context.Context, registration string) (*model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

var _ Repo = (vehiclerepo.Repo)(nil)

func (s *service) Create(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	if v.Registration == "" || v.Brand == "" || v.Model == "" || v.Plate == "" || v.Year <= 0 || v.DailyRate < 0 {
		return nil, makeErr(ErrBadInput)
	}
	v.Offered = true
	if err := s.r.Create(ctx, v); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return v, nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)

		if strings.Contains(cn, "vehicles_plate") || strings.Contains(msg, "plate") {
			return makeErr(ErrPlateTaken)
		}
		if strings.Contains(cn, "vehicles_registration") || strings.Contains(msg, "registration") {
			return makeErr(ErrRegistrationTaken)
		}
		return makeErr(ErrBadInput)
	}
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}

func (s *service) List(ctx context.Context) ([]model.Vehicle, error) { return s.r.List(ctx) }

func (s *service) ListOffered(ctx context.Context) ([]model.Vehicle, error) {
	return s.r.ListOffered(ctx)
}

func (s *service) Search(ctx context.Context, brand, vmodel string, year int) ([]model.Vehicle, error) {
	return s.r.Search(ctx, brand, vmodel, year)
}

func (s *service) ByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	v, err := s.r.ByPlate(ctx, plate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}

func (s *service) ByRegistration(ctx context.Context, registration string) (*model.Vehicle, error) {
	v, err := s.r.ByRegistration(ctx, registration)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}

func (s *service) Update(ctx context.Context, v *model.Vehicle) (*model.Vehicle, error) {
	if v.ID <= 0 {
		return nil, makeErr(ErrBadInput)
	}
	if err := s.r.Update(ctx, v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		if derr := mapDuplicateErr(err); derr != nil {
			return nil, derr
		}
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	return nil
}
