package service

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"

	"fossilario/internal/model"
	"fossilario/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockFossilRepository is a mock implementation of repository.FossilRepository.
type MockFossilRepository struct {
	mock.Mock
}

func (m *MockFossilRepository) Create(ctx context.Context, fossil *model.Fossil) error {
	args := m.Called(ctx, fossil)
	return args.Error(0)
}

func (m *MockFossilRepository) Update(ctx context.Context, fossil *model.Fossil) error {
	args := m.Called(ctx, fossil)
	return args.Error(0)
}

func (m *MockFossilRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFossilRepository) FindByID(ctx context.Context, id uint) (*model.Fossil, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Fossil), args.Error(1)
}

func (m *MockFossilRepository) FindByIDWithOwner(ctx context.Context, id uint) (*model.Fossil, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Fossil), args.Error(1)
}

func (m *MockFossilRepository) List(ctx context.Context, filter repository.FossilFilter) ([]model.Fossil, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]model.Fossil), args.Get(1).(int64), args.Error(2)
}

// MockImageStore is a mock implementation of ImageStore.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Save(file *multipart.FileHeader) (string, error) {
	args := m.Called(file)
	return args.String(0), args.Error(1)
}

func (m *MockImageStore) Remove(ref string) {
	m.Called(ref)
}

// newFileHeader returns a bare upload header; sufficient wherever Save is mocked.
func newFileHeader() *multipart.FileHeader {
	return &multipart.FileHeader{Filename: "new.jpg"}
}
