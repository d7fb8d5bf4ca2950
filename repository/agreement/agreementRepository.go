// repository/agreement/repo.go
package agreement

import (
	"context"
	"database/sql"
	"time"

	"carrental/model"
)

// Period is the slice of an agreement the conflict check needs.
type Period struct {
	ID    int64
	Start time.Time
	End   time.Time
}

type Repo interface {
	// Transitions (run inside the service's transaction)
	Insert(ctx context.Context, tx *sql.Tx, a *model.Agreement) error
	GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Agreement, error)
	UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.AgreementStatus, reviewerID *int64) error
	UpdatePeriod(ctx context.Context, tx *sql.Tx, id int64, start, end time.Time, notes *string) error
	UpdateNotes(ctx context.Context, tx *sql.Tx, id int64, notes *string) error
	Delete(ctx context.Context, tx *sql.Tx, id int64) error

	// Occupancy is always recomputed from ACTIVE rows, never cached.
	ActiveForVehicle(ctx context.Context, tx *sql.Tx, vehicleID int64) ([]Period, error)

	// Reads
	Get(ctx context.Context, id int64) (*model.Agreement, error)
	List(ctx context.Context) ([]model.Agreement, error)
	ListByStatus(ctx context.Context, status model.AgreementStatus) ([]model.Agreement, error)
	ListByType(ctx context.Context, t model.AgreementType) ([]model.Agreement, error)
	ListByVehicle(ctx context.Context, vehicleID int64) ([]model.Agreement, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]model.Agreement, error)
	ListActiveOn(ctx context.Context, date time.Time) ([]model.Agreement, error)
	ListOverdue(ctx context.Context, date time.Time) ([]model.Agreement, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

const agreementCols = `
	id, vehicle_id, requester_id, start_date, end_date,
	status, agreement_type, daily_rate, notes, reviewer_id,
	created_at, updated_at`

func scanAgreement(row interface{ Scan(...any) error }) (*model.Agreement, error) {
	var a model.Agreement
	err := row.Scan(
		&a.ID, &a.VehicleID, &a.RequesterID, &a.StartDate, &a.EndDate,
		&a.Status, &a.Type, &a.DailyRate, &a.Notes, &a.ReviewerID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repo) Insert(ctx context.Context, tx *sql.Tx, a *model.Agreement) error {
	const q = `
		INSERT INTO agreements
			(vehicle_id, requester_id, start_date, end_date, status, agreement_type, daily_rate, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at`
	return tx.QueryRowContext(ctx, q,
		a.VehicleID, a.RequesterID, a.StartDate, a.EndDate,
		a.Status, a.Type, a.DailyRate, a.Notes,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
}

func (r *repo) GetForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.Agreement, error) {
	const q = `
		SELECT` + agreementCols + `
		FROM agreements
		WHERE id = $1
		FOR UPDATE`
	return scanAgreement(tx.QueryRowContext(ctx, q, id))
}

func (r *repo) UpdateStatus(ctx context.Context, tx *sql.Tx, id int64, status model.AgreementStatus, reviewerID *int64) error {
	const q = `
		UPDATE agreements
		SET status = $2,
			reviewer_id = COALESCE($3, reviewer_id),
			updated_at = NOW()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, status, reviewerID)
	return err
}

func (r *repo) UpdatePeriod(ctx context.Context, tx *sql.Tx, id int64, start, end time.Time, notes *string) error {
	const q = `
		UPDATE agreements
		SET start_date = $2,
			end_date = $3,
			notes = COALESCE($4, notes),
			updated_at = NOW()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, start, end, notes)
	return err
}

func (r *repo) UpdateNotes(ctx context.Context, tx *sql.Tx, id int64, notes *string) error {
	const q = `
		UPDATE agreements
		SET notes = $2,
			updated_at = NOW()
		WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id, notes)
	return err
}

func (r *repo) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	const q = `DELETE FROM agreements WHERE id = $1`
	_, err := tx.ExecContext(ctx, q, id)
	return err
}

func (r *repo) ActiveForVehicle(ctx context.Context, tx *sql.Tx, vehicleID int64) ([]Period, error) {
	const q = `
		SELECT id, start_date, end_date
		FROM agreements
		WHERE vehicle_id = $1
		AND status = 'ACTIVE'`
	rows, err := tx.QueryContext(ctx, q, vehicleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Period
	for rows.Next() {
		var p Period
		if err := rows.Scan(&p.ID, &p.Start, &p.End); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Agreement, error) {
	const q = `
		SELECT` + agreementCols + `
		FROM agreements
		WHERE id = $1`
	return scanAgreement(r.db.QueryRowContext(ctx, q, id))
}

func (r *repo) list(ctx context.Context, q string, args ...any) ([]model.Agreement, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Agreement
	for rows.Next() {
		a, err := scanAgreement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *repo) List(ctx context.Context) ([]model.Agreement, error) {
	return r.list(ctx, `
		SELECT`+agreementCols+`
		FROM agreements
		ORDER BY created_at DESC, id DESC`)
}

func (r *repo) ListByStatus(ctx context.Context, status model.AgreementStatus) ([]model.Agreement, error) {
	return r.list(ctx, `
		SELECT`+agreementCols+`
		FROM agreements
		WHERE status = $1
		ORDER BY created_at DESC, id DESC`, status)
}

func (r *repo) ListByType(ctx context.Context, t model.AgreementType) ([]model.Agreement, error) {
	return r.list(ctx, `
		SELECT`+agreementCols+`
		FROM agreements
		WHERE agreement_type = $1
		ORDER BY created_at DESC, id DESC`, t)
}

func (r *repo) ListByVehicle(ctx context.Context, vehicleID int64) ([]model.Agreement, error) {
	return r.list(ctx, `
		SELECT`+agreementCols+`
		FROM agreements
		WHERE vehicle_id = $1
		ORDER BY start_date, id`, vehicleID)
}

func (r *repo) ListByRequester(ctx context.Context, requesterID int64) ([]model.Agreement, error) {
	return r.list(ctx, `
		SELECT`+agreementCols+`
		FROM agreements
		WHERE requester_id = $1
		ORDER BY created_at DESC, id DESC`, requesterID)
}

func (r *repo) ListActiveOn(ctx context.Context, date time.Time) ([]model.Agreement, error) {
	return r.list(ctx, `
		SELECT`+agreementCols+`
		FROM agreements
		WHERE status = 'ACTIVE'
		AND start_date <= $1
		AND end_date >= $1
		ORDER BY start_date, id`, date)
}

func (r *repo) ListOverdue(ctx context.Context, date time.Time) ([]model.Agreement, error) {
	return r.list(ctx, `
		SELECT`+agreementCols+`
		FROM agreements
		WHERE status = 'ACTIVE'
		AND end_date < $1
		ORDER BY end_date, id`, date)
}
