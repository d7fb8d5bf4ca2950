package requesterrepo

import (
	"context"
	"database/sql"

	"carrental/model"
)

type Repo interface {
	Create(ctx context.Context, r *model.Requester) error
	Get(ctx context.Context, id int64) (*model.Requester, error)
	List(ctx context.Context) ([]model.Requester, error)
	Update(ctx context.Context, r *model.Requester) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, q *model.Requester) error {
	const stmt = `
		INSERT INTO requesters (name, email, document, role)
		VALUES ($1,$2,$3,$4)
		RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, stmt, q.Name, q.Email, q.Document, q.Role).
		Scan(&q.ID, &q.CreatedAt)
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Requester, error) {
	const stmt = `
		SELECT id, name, email, document, role, created_at
		FROM requesters
		WHERE id = $1`
	var q model.Requester
	err := r.db.QueryRowContext(ctx, stmt, id).
		Scan(&q.ID, &q.Name, &q.Email, &q.Document, &q.Role, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *repo) List(ctx context.Context) ([]model.Requester, error) {
	const stmt = `
		SELECT id, name, email, document, role, created_at
		FROM requesters
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Requester
	for rows.Next() {
		var q model.Requester
		if err := rows.Scan(&q.ID, &q.Name, &q.Email, &q.Document, &q.Role, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, q *model.Requester) error {
	const stmt = `
		UPDATE requesters
		SET name = $2,
			email = $3,
			document = $4,
			role = $5
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, stmt, q.ID, q.Name, q.Email, q.Document, q.Role)
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
	res, err := r.db.ExecContext(ctx, `DELETE FROM requesters WHERE id = $1`, id)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *repo) Exists(ctx context.Context, id int64) (bool, error) {
	const stmt = `SELECT EXISTS (SELECT 1 FROM requesters WHERE id = $1)`
	var ok bool
	err := r.db.QueryRowContext(ctx, stmt, id).Scan(&ok)
	return ok, err
}
