package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fossilario/internal/cache"
	apperrors "fossilario/internal/errors"
	"fossilario/internal/model"
	"fossilario/internal/repository"
)

// noCache is a typed nil; the cache client fails safe on a nil receiver.
var noCache *cache.Client

func TestFossilService_List_Envelope(t *testing.T) {
	mockRepo := new(MockFossilRepository)
	items := []model.Fossil{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}}
	mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.FossilFilter) bool {
		return f.Page == 1 && f.Limit == 5 && f.UserID == 9
	})).Return(items, int64(12), nil)

	svc := NewFossilService(mockRepo, new(MockImageStore), noCache)
	page, err := svc.List(context.Background(), repository.FossilFilter{UserID: 9, Limit: 5})

	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 3, page.Pages)
	mockRepo.AssertExpectations(t)
}

func TestFossilService_List_EmptyResult(t *testing.T) {
	mockRepo := new(MockFossilRepository)
	mockRepo.On("List", mock.Anything, mock.Anything).Return(nil, int64(0), nil)

	svc := NewFossilService(mockRepo, new(MockImageStore), noCache)
	page, err := svc.List(context.Background(), repository.FossilFilter{})

	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Zero(t, page.Pages)
}

func TestFossilService_Get(t *testing.T) {
	contact := "ana@lab.example.com"
	owner := &model.User{ID: 4, Nome: "Ana", ShowName: true, ShowContact: true, ContactPublic: &contact}

	mockRepo := new(MockFossilRepository)
	mockRepo.On("FindByIDWithOwner", mock.Anything, uint(10)).Return(&model.Fossil{
		ID: 10, Especie: "Glossopteris indica", UserID: 4, User: owner,
	}, nil)

	svc := NewFossilService(mockRepo, new(MockImageStore), noCache)
	detail, err := svc.Get(context.Background(), 10)

	require.NoError(t, err)
	assert.Equal(t, "Glossopteris indica", detail.Especie)
	assert.Nil(t, detail.User) // raw owner never leaves the service
	require.NotNil(t, detail.Contributor)
	assert.Equal(t, "Ana", *detail.Contributor.Name)
	assert.Equal(t, contact, *detail.Contributor.Contact)
}

func TestFossilService_Get_NotFound(t *testing.T) {
	mockRepo := new(MockFossilRepository)
	mockRepo.On("FindByIDWithOwner", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewFossilService(mockRepo, new(MockImageStore), noCache)
	_, err := svc.Get(context.Background(), 99)

	assert.ErrorIs(t, err, apperrors.ErrFossilNotFound)
}

func TestFossilService_Create(t *testing.T) {
	tests := []struct {
		name          string
		input         FossilInput
		expectedError error
	}{
		{
			name: "valid input",
			input: FossilInput{
				Especie: "Lepidodendron", Familia: "Lycopodiaceae",
				Periodo: "Carbonífero", Localizacao: "Europa",
			},
		},
		{
			name: "missing familia",
			input: FossilInput{
				Especie: "Lepidodendron", Periodo: "Carbonífero", Localizacao: "Europa",
			},
			expectedError: apperrors.ErrMissingFields,
		},
		{
			name: "whitespace-only fields are missing",
			input: FossilInput{
				Especie: "   ", Familia: "Lycopodiaceae",
				Periodo: "Carbonífero", Localizacao: "Europa",
			},
			expectedError: apperrors.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFossilRepository)
			if tt.expectedError == nil {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Fossil")).Return(nil)
			}

			svc := NewFossilService(mockRepo, new(MockImageStore), noCache)
			fossil, err := svc.Create(context.Background(), 3, tt.input, nil)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(3), fossil.UserID)
				assert.Nil(t, fossil.ImageURL)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFossilService_Update_OwnershipAndNotFound(t *testing.T) {
	especie := "Novo nome"

	tests := []struct {
		name          string
		callerID      uint
		setupMock     func(*MockFossilRepository)
		expectedError error
	}{
		{
			name:     "not found",
			callerID: 3,
			setupMock: func(m *MockFossilRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrFossilNotFound,
		},
		{
			name:     "non-owner is forbidden and the row is untouched",
			callerID: 99,
			setupMock: func(m *MockFossilRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(&model.Fossil{ID: 10, UserID: 3}, nil)
			},
			expectedError: apperrors.ErrNotOwner,
		},
		{
			name:     "owner updates supplied fields only",
			callerID: 3,
			setupMock: func(m *MockFossilRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(&model.Fossil{
					ID: 10, UserID: 3, Especie: "Velho nome", Familia: "Familia",
					Periodo: "Permiano", Localizacao: "Gondwana",
				}, nil)
				m.On("Update", mock.Anything, mock.MatchedBy(func(f *model.Fossil) bool {
					return f.Especie == "Novo nome" && f.Familia == "Familia"
				})).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockFossilRepository)
			tt.setupMock(mockRepo)

			svc := NewFossilService(mockRepo, new(MockImageStore), noCache)
			_, err := svc.Update(context.Background(), tt.callerID, 10, FossilUpdate{Especie: &especie}, nil)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestFossilService_Update_EmptyRequiredFieldRejected(t *testing.T) {
	empty := "   "
	mockRepo := new(MockFossilRepository)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Fossil{ID: 10, UserID: 3}, nil)

	svc := NewFossilService(mockRepo, new(MockImageStore), noCache)
	_, err := svc.Update(context.Background(), 3, 10, FossilUpdate{Periodo: &empty}, nil)

	assert.ErrorIs(t, err, apperrors.ErrMissingFields)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestFossilService_Delete(t *testing.T) {
	imageRef := "/uploads/123-fossil.jpg"

	t.Run("owner delete removes image then row", func(t *testing.T) {
		mockRepo := new(MockFossilRepository)
		mockImages := new(MockImageStore)
		mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Fossil{
			ID: 10, UserID: 3, ImageURL: &imageRef,
		}, nil)
		mockImages.On("Remove", imageRef).Return()
		mockRepo.On("Delete", mock.Anything, uint(10)).Return(nil)

		svc := NewFossilService(mockRepo, mockImages, noCache)
		assert.NoError(t, svc.Delete(context.Background(), 3, 10))
		mockRepo.AssertExpectations(t)
		mockImages.AssertExpectations(t)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		mockRepo := new(MockFossilRepository)
		mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Fossil{ID: 10, UserID: 3}, nil)

		svc := NewFossilService(mockRepo, new(MockImageStore), noCache)
		assert.ErrorIs(t, svc.Delete(context.Background(), 99, 10), apperrors.ErrNotOwner)
		mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("repeated delete reports not found both times", func(t *testing.T) {
		mockRepo := new(MockFossilRepository)
		mockRepo.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewFossilService(mockRepo, new(MockImageStore), noCache)
		assert.ErrorIs(t, svc.Delete(context.Background(), 3, 10), apperrors.ErrFossilNotFound)
		assert.ErrorIs(t, svc.Delete(context.Background(), 3, 10), apperrors.ErrFossilNotFound)
	})
}

func TestFossilService_Update_ReplacesImage(t *testing.T) {
	oldRef := "/uploads/old.jpg"
	newRef := "/uploads/new.jpg"

	mockRepo := new(MockFossilRepository)
	mockImages := new(MockImageStore)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Fossil{
		ID: 10, UserID: 3, Especie: "E", Familia: "F", Periodo: "P", Localizacao: "L",
		ImageURL: &oldRef,
	}, nil)
	mockImages.On("Save", mock.Anything).Return(newRef, nil)
	mockImages.On("Remove", oldRef).Return()
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(f *model.Fossil) bool {
		return f.ImageURL != nil && *f.ImageURL == newRef
	})).Return(nil)

	svc := NewFossilService(mockRepo, mockImages, noCache)
	fossil, err := svc.Update(context.Background(), 3, 10, FossilUpdate{}, newFileHeader())

	require.NoError(t, err)
	assert.Equal(t, newRef, *fossil.ImageURL)
	mockImages.AssertExpectations(t)
}
