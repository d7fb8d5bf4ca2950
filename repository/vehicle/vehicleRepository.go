package vehiclerepo

import (
	"context"
	"database/sql"

	"carrental/model"
)

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

	// LockForUpdate pins the vehicle row for the duration of a create/activate
	// transaction so conflict checks cannot interleave.
	LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Vehicle, error)
	SetOffered(ctx context.Context, tx *sql.Tx, id int64, offered bool) error
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

const vehicleCols = `
	id, registration, year, brand, model, plate, daily_rate, description, offered, owner`

func scanVehicle(row interface{ Scan(...any) error }) (*model.Vehicle, error) {
	var v model.Vehicle
	err := row.Scan(
		&v.ID, &v.Registration, &v.Year, &v.Brand, &v.Model,
		&v.Plate, &v.DailyRate, &v.Description, &v.Offered, &v.Owner,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repo) Create(ctx context.Context, v *model.Vehicle) error {
	const q = `
		INSERT INTO vehicles (registration, year, brand, model, plate, daily_rate, description, offered, owner)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id`
	return r.db.QueryRowContext(ctx, q,
		v.Registration, v.Year, v.Brand, v.Model, v.Plate,
		v.DailyRate, v.Description, v.Offered, v.Owner,
	).Scan(&v.ID)
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Vehicle, error) {
	const q = `
		SELECT` + vehicleCols + `
		FROM vehicles
		WHERE id = $1`
	return scanVehicle(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Vehicle, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *repo) List(ctx context.Context) ([]model.Vehicle, error) {
	return r.list(ctx, `
		SELECT`+vehicleCols+`
		FROM vehicles
		ORDER BY id`)
}

func (r *repo) ListOffered(ctx context.Context) ([]model.Vehicle, error) {
	return r.list(ctx, `
		SELECT`+vehicleCols+`
		FROM vehicles
		WHERE offered = TRUE
		ORDER BY id`)
}

func (r *repo) Search(ctx context.Context, brand, vmodel string, year int) ([]model.Vehicle, error) {
	return r.list(ctx, `
		SELECT`+vehicleCols+`
		FROM vehicles
		WHERE ($1 = '' OR brand ILIKE '%' || $1 || '%')
		AND ($2 = '' OR model ILIKE '%' || $2 || '%')
		AND ($3 = 0 OR year = $3)
		ORDER BY id`, brand, vmodel, year)
}

func (r *repo) ByPlate(ctx context.Context, plate string) (*model.Vehicle, error) {
	const q = `
		SELECT` + vehicleCols + `
		FROM vehicles
		WHERE plate = $1`
	return scanVehicle(r.db.QueryRowContext(ctx, q, plate))
}

func (r *repo) ByRegistration(ctx context.Context, registration string) (*model.Vehicle, error) {
	const q = `
		SELECT` + vehicleCols + `
		FROM vehicles
		WHERE registration = $1`
	return scanVehicle(r.db.QueryRowContext(ctx, q, registration))
}

func (r *repo) Update(ctx context.Context, v *model.Vehicle) error {
	const q = `
		UPDATE vehicles
		SET registration = $2,
			year = $3,
			brand = $4,
			model = $5,
			plate = $6,
			daily_rate = $7,
			description = $8,
			owner = $9
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q,
		v.ID, v.Registration, v.Year, v.Brand, v.Model,
		v.Plate, v.DailyRate, v.Description, v.Owner,
	)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Vehicle, error) {
	const q = `
		SELECT` + vehicleCols + `
		FROM vehicles
		WHERE id = $1
		FOR UPDATE`
	return scanVehicle(tx.QueryRowContext(ctx, q, id))
}

func (r *repo) SetOffered(ctx context.Context, tx *sql.Tx, id int64, offered bool) error {
	const q = `
		UPDATE vehicles
		SET offered = $2
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, offered)
	return err
}
