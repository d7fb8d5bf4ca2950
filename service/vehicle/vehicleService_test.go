// service/vehicle/vehicle_service_test.go
package vehiclesvc_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"carrental/model"
	vehiclesvc "carrental/service/vehicle"
)

type repoMock struct {
	createFn      func(ctx context.Context, v *model.Vehicle) error
	getFn         func(ctx context.Context, id int64) (*model.Vehicle, error)
	listFn        func(ctx context.Context) ([]model.Vehicle, error)
	listOfferedFn func(ctx context.Context) ([]model.Vehicle, error)
	searchFn      func(ctx context.Context, brand, vmodel string, year int) ([]model.Vehicle, error)
	byPlateFn     func(ctx context.Context, plate string) (*model.Vehicle, error)
	byRegFn       func(ctx context.Context, registration string) (*model.Vehicle, error)
	updateFn      func(ctx context.Context, v *model.Vehicle) error
	deleteFn      func(ctx context.Context, id int64) error
}

func (m *repoMock) Create(ctx context.Context, v *model.Vehicle) error { return m.createFn(ctx, v) }
func (m *repoMock) Get(ctx context.Context, id int64) (*model.Vehicle, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]model.Vehicle, error) { return m.listFn(ctx) }
func (m *repoMock) ListOffered(ctx context.Context) ([]model.Vehicle, error) {
	return m.listOfferedFn(ctx)
}
func (m *repoMock) Search(ctx context.Context, brand, vmodel string, year int) ([]model.Vehicle, error) {
	return m.searchFn(ctx, brand, vmodel, year)
}
func (m *repoMock) ByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	return m.byPlateFn(ctx, plate)
}
func (m *repoMock) ByRegistration(ctx context.Context, registration string) (*model.Vehicle, error) {
	return m.byRegFn(ctx, registration)
}
func (m *repoMock) Update(ctx context.Context, v *model.Vehicle) error { return m.updateFn(ctx, v) }
func (m *repoMock) Delete(ctx context.Context, id int64) error         { return m.deleteFn(ctx, id) }

func valid() *model.Vehicle {
	return &model.Vehicle{
		Registration: "REG-001",
		Year:         2022,
		Brand:        "Fiat",
		Model:        "Uno",
		Plate:        "ABC1234",
		DailyRate:    120,
		Owner:        model.OwnerCompany,
	}
}

func TestCreate_Validation(t *testing.T) {
	s := vehiclesvc.New(&repoMock{})

	cases := map[string]func(*model.Vehicle){
		"empty registration": func(v *model.Vehicle) { v.Registration = "" },
		"empty brand":        func(v *model.Vehicle) { v.Brand = "" },
		"empty model":        func(v *model.Vehicle) { v.Model = "" },
		"empty plate":        func(v *model.Vehicle) { v.Plate = "" },
		"zero year":          func(v *model.Vehicle) { v.Year = 0 },
		"negative rate":      func(v *model.Vehicle) { v.DailyRate = -1 },
	}
	for name, mutate := range cases {
		v := valid()
		mutate(v)
		if _, err := s.Create(context.Background(), v); vehiclesvc.Code(err) != vehiclesvc.ErrBadInput {
			t.Fatalf("%s: got %v; want BAD_INPUT", name, err)
		}
	}
}

func TestCreate_NewVehicleIsOffered(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, v *model.Vehicle) error {
			v.ID = 42
			return nil
		},
	}
	s := vehiclesvc.New(m)
	v, err := s.Create(context.Background(), valid())
	if err != nil || v.ID != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", v.ID, err)
	}
	if !v.Offered {
		t.Fatal("new vehicles must be offered for rental")
	}
}

func TestCreate_DuplicatePlate(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, v *model.Vehicle) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "vehicles_plate_key",
			}
		},
	}
	s := vehiclesvc.New(m)
	_, err := s.Create(context.Background(), valid())
	if vehiclesvc.Code(err) != vehiclesvc.ErrPlateTaken {
		t.Fatalf("got %v; want PLATE_TAKEN", err)
	}
}

func TestCreate_DuplicateRegistration(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, v *model.Vehicle) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "vehicles_registration_key",
			}
		},
	}
	s := vehiclesvc.New(m)
	_, err := s.Create(context.Background(), valid())
	if vehiclesvc.Code(err) != vehiclesvc.ErrRegistrationTaken {
		t.Fatalf("got %v; want REGISTRATION_TAKEN", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Vehicle, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := vehiclesvc.New(m)
	if _, err := s.Get(context.Background(), 99); vehiclesvc.Code(err) != vehiclesvc.ErrNotFound {
		t.Fatalf("got %v; want NOT_FOUND", err)
	}
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		listFn:        func(ctx context.Context) ([]model.Vehicle, error) { return nil, nil },
		listOfferedFn: func(ctx context.Context) ([]model.Vehicle, error) { return nil, nil },
		searchFn: func(ctx context.Context, brand, vmodel string, year int) ([]model.Vehicle, error) {
			if brand != "Fiat" || year != 2022 {
				t.Fatalf("search args not forwarded: %s %d", brand, year)
			}
			return nil, nil
		},
		deleteFn: func(ctx context.Context, id int64) error { return nil },
	}
	s := vehiclesvc.New(m)

	if _, err := s.List(context.Background()); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if _, err := s.ListOffered(context.Background()); err != nil {
		t.Fatalf("ListOffered error: %v", err)
	}
	if _, err := s.Search(context.Background(), "Fiat", "", 2022); err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if err := s.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
}
