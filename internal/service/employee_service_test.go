package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "staffdesk/internal/errors"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
)

// MockEmployeeRepository is a mock implementation of EmployeeRepository.
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) Create(ctx context.Context, emp *model.Employee) error {
	args := m.Called(ctx, emp)
	return args.Error(0)
}

func (m *MockEmployeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) Save(ctx context.Context, emp *model.Employee) error {
	args := m.Called(ctx, emp)
	return args.Error(0)
}

func (m *MockEmployeeRepository) SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*model.Employee, error) {
	args := m.Called(ctx, id, archived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) List(ctx context.Context, q repository.EmployeeListQuery) ([]model.Employee, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Employee), args.Get(1).(int64), args.Error(2)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func statusPtr(s model.EmployeeStatus) *model.EmployeeStatus { return &s }

func TestEmployeeService_Create(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Employee")).Return(nil)

	svc := NewEmployeeService(mockRepo, nil)
	joining := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	emp, err := svc.Create(context.Background(), EmployeeInput{
		Name:             strPtr("  Jane Doe  "),
		Email:            strPtr("Jane@X.com"),
		Department:       strPtr("Engineering"),
		Role:             strPtr("SWE"),
		JoiningDate:      &joining,
		Status:           statusPtr(model.StatusActive),
		PerformanceScore: intPtr(80),
	})

	assert.NoError(t, err)
	if assert.NotNil(t, emp) {
		assert.NotEqual(t, uuid.Nil, emp.ID)
		assert.Equal(t, "Jane Doe", emp.Name)
		assert.Equal(t, "jane@x.com", emp.Email)
		assert.Equal(t, "Engineering", emp.Department)
		assert.Equal(t, "SWE", emp.Role)
		assert.Equal(t, joining, emp.JoiningDate)
		assert.Equal(t, model.StatusActive, emp.Status)
		assert.Equal(t, 80, emp.PerformanceScore)
		assert.False(t, emp.IsArchived)
	}
	mockRepo.AssertExpectations(t)
}

func TestEmployeeService_GetByID(t *testing.T) {
	empID := uuid.New()

	tests := []struct {
		name          string
		id            string
		setupMock     func(*MockEmployeeRepository)
		expectedError error
	}{
		{
			name: "found",
			id:   empID.String(),
			setupMock: func(m *MockEmployeeRepository) {
				m.On("FindByID", mock.Anything, empID).Return(&model.Employee{ID: empID, Name: "Jane Doe"}, nil)
			},
		},
		{
			name: "unknown id",
			id:   uuid.New().String(),
			setupMock: func(m *MockEmployeeRepository) {
				m.On("FindByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrEmployeeNotFound,
		},
		{
			name: "malformed id rejected before querying",
			id:   "definitely-not-a-uuid",
			setupMock: func(m *MockEmployeeRepository) {
				// No repository calls expected.
			},
			expectedError: apperrors.ErrEmployeeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockEmployeeRepository)
			tt.setupMock(mockRepo)

			svc := NewEmployeeService(mockRepo, nil)
			emp, err := svc.GetByID(context.Background(), tt.id)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, emp)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, emp)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestEmployeeService_Update(t *testing.T) {
	empID := uuid.New()
	existing := &model.Employee{
		ID:               empID,
		Name:             "Jane Doe",
		Email:            "jane@x.com",
		Department:       "Engineering",
		Role:             "SWE",
		Status:           model.StatusActive,
		PerformanceScore: 80,
	}

	t.Run("patch touches only present fields", func(t *testing.T) {
		mockRepo := new(MockEmployeeRepository)
		mockRepo.On("FindByID", mock.Anything, empID).Return(existing, nil)
		mockRepo.On("Save", mock.Anything, mock.AnythingOfType("*model.Employee")).Return(nil)

		svc := NewEmployeeService(mockRepo, nil)
		emp, err := svc.Update(context.Background(), empID.String(), EmployeeInput{
			Department:       strPtr("Platform"),
			PerformanceScore: intPtr(92),
		})

		assert.NoError(t, err)
		if assert.NotNil(t, emp) {
			assert.Equal(t, "Platform", emp.Department)
			assert.Equal(t, 92, emp.PerformanceScore)
			assert.Equal(t, "Jane Doe", emp.Name)
			assert.Equal(t, "jane@x.com", emp.Email)
			assert.Equal(t, model.StatusActive, emp.Status)
		}
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		mockRepo := new(MockEmployeeRepository)
		mockRepo.On("FindByID", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		svc := NewEmployeeService(mockRepo, nil)
		_, err := svc.Update(context.Background(), uuid.New().String(), EmployeeInput{Name: strPtr("New Name")})
		assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_ArchiveRestore(t *testing.T) {
	empID := uuid.New()

	t.Run("archive flips the flag", func(t *testing.T) {
		mockRepo := new(MockEmployeeRepository)
		mockRepo.On("SetArchived", mock.Anything, empID, true).Return(&model.Employee{ID: empID, IsArchived: true}, nil)

		svc := NewEmployeeService(mockRepo, nil)
		emp, err := svc.Archive(context.Background(), empID.String())

		assert.NoError(t, err)
		assert.True(t, emp.IsArchived)
		mockRepo.AssertExpectations(t)
	})

	t.Run("restore flips it back", func(t *testing.T) {
		mockRepo := new(MockEmployeeRepository)
		mockRepo.On("SetArchived", mock.Anything, empID, false).Return(&model.Employee{ID: empID, IsArchived: false}, nil)

		svc := NewEmployeeService(mockRepo, nil)
		emp, err := svc.Restore(context.Background(), empID.String())

		assert.NoError(t, err)
		assert.False(t, emp.IsArchived)
		mockRepo.AssertExpectations(t)
	})

	t.Run("restore of unknown id reports not found", func(t *testing.T) {
		mockRepo := new(MockEmployeeRepository)
		mockRepo.On("SetArchived", mock.Anything, mock.Anything, false).Return(nil, gorm.ErrRecordNotFound)

		svc := NewEmployeeService(mockRepo, nil)
		_, err := svc.Restore(context.Background(), uuid.New().String())
		assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
	})

	t.Run("malformed id rejected before querying", func(t *testing.T) {
		mockRepo := new(MockEmployeeRepository)

		svc := NewEmployeeService(mockRepo, nil)
		_, err := svc.Archive(context.Background(), "nope")
		assert.ErrorIs(t, err, apperrors.ErrEmployeeNotFound)
		mockRepo.AssertNotCalled(t, "SetArchived", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEmployeeService_List(t *testing.T) {
	mockRepo := new(MockEmployeeRepository)
	q := repository.EmployeeListQuery{Page: 2, Limit: 10, SortColumn: "created_at", SortDesc: true}
	mockRepo.On("List", mock.Anything, q).Return([]model.Employee{{Name: "Jane Doe"}}, int64(31), nil)

	svc := NewEmployeeService(mockRepo, nil)
	list, err := svc.List(context.Background(), q)

	assert.NoError(t, err)
	if assert.NotNil(t, list) {
		assert.Len(t, list.Items, 1)
		assert.Equal(t, int64(31), list.Total)
		assert.Equal(t, 2, list.Page)
		assert.Equal(t, 10, list.Limit)
	}
	mockRepo.AssertExpectations(t)
}
