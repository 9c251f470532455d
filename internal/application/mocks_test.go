package application

import (
	"context"

	"github.com/stretchr/testify/mock"

	repo "github.com/oksasatya/go-ddd-catalog/internal/domain/repository"
)

type mockProductRepo struct {
	mock.Mock
}

func (m *mockProductRepo) FindAll(ctx context.Context) ([]repo.ProductRecord, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]repo.ProductRecord)
	return recs, args.Error(1)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id int64) (*repo.ProductRecord, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*repo.ProductRecord)
	return rec, args.Error(1)
}

func (m *mockProductRepo) FindByName(ctx context.Context, name string) (*repo.ProductRecord, error) {
	args := m.Called(ctx, name)
	rec, _ := args.Get(0).(*repo.ProductRecord)
	return rec, args.Error(1)
}

func (m *mockProductRepo) Save(ctx context.Context, rec repo.ProductRecord) (repo.ProductRecord, error) {
	args := m.Called(ctx, rec)
	saved, _ := args.Get(0).(repo.ProductRecord)
	return saved, args.Error(1)
}

func (m *mockProductRepo) Delete(ctx context.Context, rec repo.ProductRecord) error {
	return m.Called(ctx, rec).Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) FindAll(ctx context.Context) ([]repo.UserRecord, error) {
	args := m.Called(ctx)
	recs, _ := args.Get(0).([]repo.UserRecord)
	return recs, args.Error(1)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*repo.UserRecord, error) {
	args := m.Called(ctx, id)
	rec, _ := args.Get(0).(*repo.UserRecord)
	return rec, args.Error(1)
}

func (m *mockUserRepo) Save(ctx context.Context, rec repo.UserRecord) (repo.UserRecord, error) {
	args := m.Called(ctx, rec)
	saved, _ := args.Get(0).(repo.UserRecord)
	return saved, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, rec repo.UserRecord) error {
	return m.Called(ctx, rec).Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(ctx context.Context, body any) error {
	return m.Called(ctx, body).Error(0)
}
