package requestersvc_test

import (
	"context"
	"database/sql"
	"testing"

	"carrental/model"
	requestersvc "carrental/service/requester"
)

type repoMock struct {
	createFn func(ctx context.Context, r *model.Requester) error
	getFn    func(ctx context.Context, id int64) (*model.Requester, error)
	listFn   func(ctx context.Context) ([]model.Requester, error)
	updateFn func(ctx context.Context, r *model.Requester) error
	deleteFn func(ctx context.Context, id int64) error
	existsFn func(ctx context.Context, id int64) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, r *model.Requester) error { return m.createFn(ctx, r) }
func (m *repoMock) Get(ctx context.Context, id int64) (*model.Requester, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context) ([]model.Requester, error) { return m.listFn(ctx) }
func (m *repoMock) Update(ctx context.Context, r *model.Requester) error {
	return m.updateFn(ctx, r)
}
func (m *repoMock) Delete(ctx context.Context, id int64) error { return m.deleteFn(ctx, id) }
func (m *repoMock) Exists(ctx context.Context, id int64) (bool, error) {
	return m.existsFn(ctx, id)
}

func TestCreate_Validation(t *testing.T) {
	s := requestersvc.New(&repoMock{})

	bad := []*model.Requester{
		{Name: "", Email: "a@b.c", Role: model.RoleClient},
		{Name: "Ana", Email: "", Role: model.RoleClient},
		{Name: "Ana", Email: "a@b.c", Role: "WIZARD"},
	}
	for _, r := range bad {
		if _, err := s.Create(context.Background(), r); err != requestersvc.ErrBadInput {
			t.Fatalf("got %v; want ErrBadInput", err)
		}
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, r *model.Requester) error {
			r.ID = 10
			return nil
		},
	}
	s := requestersvc.New(m)
	r, err := s.Create(context.Background(), &model.Requester{
		Name:     "Ana",
		Email:    "ana@example.com",
		Document: "123.456.789-00",
		Role:     model.RoleClient,
	})
	if err != nil || r.ID != 10 {
		t.Fatalf("got id=%v err=%v; want 10 nil", r, err)
	}
}

func TestGet_NotFound(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Requester, error) {
			return nil, sql.ErrNoRows
		},
	}
	s := requestersvc.New(m)
	if _, err := s.Get(context.Background(), 5); err != requestersvc.ErrNotFound {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}

func TestDelete_NotFound(t *testing.T) {
	m := &repoMock{
		deleteFn: func(ctx context.Context, id int64) error { return sql.ErrNoRows },
	}
	s := requestersvc.New(m)
	if err := s.Delete(context.Background(), 5); err != requestersvc.ErrNotFound {
		t.Fatalf("got %v; want ErrNotFound", err)
	}
}
