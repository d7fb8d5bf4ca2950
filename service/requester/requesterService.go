package requestersvc

import (
	"context"
	"database/sql"
	"errors"

	"carrental/model"
	requesterrepo "carrental/repository/requester"
)

var (
	ErrNotFound = errors.New("requester not found")
	ErrBadInput = errors.New("bad input")
)

type Repo = requesterrepo.Repo

type Service interface {
	Create(ctx context.Context, r *model.Requester) (*model.Requester, error)
	Get(ctx context.Context, id int64) (*model.Requester, error)
	List(ctx context.Context) ([]model.Requester, error)
	Update(ctx context.Context, r *model.Requester) (*model.Requester, error)
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func validRole(role model.RequesterRole) bool {
	switch role {
	case model.RoleClient, model.RoleCompany, model.RoleBank:
		return true
	}
	return false
}

func (s *service) Create(ctx context.Context, r *model.Requester) (*model.Requester, error) {
	if r.Name == "" || r.Email == "" || !validRole(r.Role) {
		return nil, ErrBadInput
	}
	if err := s.r.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *service) Get(ctx context.Context, id int64) (*model.Requester, error) {
	r, err := s.r.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *service) List(ctx context.Context) ([]model.Requester, error) { return s.r.List(ctx) }

func (s *service) Update(ctx context.Context, r *model.Requester) (*model.Requester, error) {
	if r.ID <= 0 || r.Name == "" || r.Email == "" || !validRole(r.Role) {
		return nil, ErrBadInput
	}
	if err := s.r.Update(ctx, r); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return r, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	if err := s.r.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
