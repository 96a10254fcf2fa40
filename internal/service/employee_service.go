package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"staffdesk/internal/cache"
	apperrors "staffdesk/internal/errors"
	"staffdesk/internal/model"
	"staffdesk/internal/repository"
)

const employeeCacheTTL = 5 * time.Minute

// EmployeeInput carries the fields a caller may set on an employee. Pointer
// fields distinguish "absent" from zero on partial updates; Create requires
// the handler to have validated presence already.
type EmployeeInput struct {
	Name             *string
	Email            *string
	Department       *string
	Role             *string
	JoiningDate      *time.Time
	Status           *model.EmployeeStatus
	PerformanceScore *int
}

// EmployeeList is the paginated result of a list call. Total counts rows
// matching the filters before pagination.
type EmployeeList struct {
	Items []model.Employee `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// EmployeeService exposes CRUD and archive lifecycle operations over
// employee records. Records are never hard-deleted; archive and restore
// flip the soft-delete flag.
type EmployeeService interface {
	Create(ctx context.Context, input EmployeeInput) (*model.Employee, error)
	List(ctx context.Context, q repository.EmployeeListQuery) (*EmployeeList, error)
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	Update(ctx context.Context, id string, patch EmployeeInput) (*model.Employee, error)
	Archive(ctx context.Context, id string) (*model.Employee, error)
	Restore(ctx context.Context, id string) (*model.Employee, error)
}

type employeeService struct {
	repo  repository.EmployeeRepository
	cache *cache.Client
}

// NewEmployeeService builds an EmployeeService with repository and cache.
func NewEmployeeService(repo repository.EmployeeRepository, cache *cache.Client) EmployeeService {
	return &employeeService{repo: repo, cache: cache}
}

func (s *employeeService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("employee:%s", id)
}

func (s *employeeService) Create(ctx context.Context, input EmployeeInput) (*model.Employee, error) {
	emp := &model.Employee{ID: uuid.New()}
	applyInput(emp, input)

	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(emp.ID))
	return emp, nil
}

func (s *employeeService) List(ctx context.Context, q repository.EmployeeListQuery) (*EmployeeList, error) {
	items, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return &EmployeeList{
		Items: items,
		Total: total,
		Page:  q.Page,
		Limit: q.Limit,
	}, nil
}

func (s *employeeService) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	empID, err := parseEmployeeID(id)
	if err != nil {
		return nil, err
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(empID)); data != nil {
		var cached model.Employee
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	emp, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if payload, err := json.Marshal(emp); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(empID), payload, employeeCacheTTL)
	}
	return emp, nil
}

func (s *employeeService) Update(ctx context.Context, id string, patch EmployeeInput) (*model.Employee, error) {
	empID, err := parseEmployeeID(id)
	if err != nil {
		return nil, err
	}

	emp, err := s.repo.FindByID(ctx, empID)
	if err != nil {
		return nil, notFoundOr(err)
	}

	applyInput(emp, patch)
	if err := s.repo.Save(ctx, emp); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, s.cacheKey(empID))
	return emp, nil
}

func (s *employeeService) Archive(ctx context.Context, id string) (*model.Employee, error) {
	return s.setArchived(ctx, id, true)
}

func (s *employeeService) Restore(ctx context.Context, id string) (*model.Employee, error) {
	return s.setArchived(ctx, id, false)
}

func (s *employeeService) setArchived(ctx context.Context, id string, archived bool) (*model.Employee, error) {
	empID, err := parseEmployeeID(id)
	if err != nil {
		return nil, err
	}

	emp, err := s.repo.SetArchived(ctx, empID, archived)
	if err != nil {
		return nil, notFoundOr(err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(empID))
	return emp, nil
}

// parseEmployeeID rejects malformed identifiers before any query runs. A
// malformed id is indistinguishable from an unknown one to the caller.
func parseEmployeeID(id string) (uuid.UUID, error) {
	empID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.ErrEmployeeNotFound
	}
	return empID, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrEmployeeNotFound
	}
	return err
}

func applyInput(emp *model.Employee, input EmployeeInput) {
	if input.Name != nil {
		emp.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		emp.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Department != nil {
		emp.Department = *input.Department
	}
	if input.Role != nil {
		emp.Role = *input.Role
	}
	if input.JoiningDate != nil {
		emp.JoiningDate = *input.JoiningDate
	}
	if input.Status != nil {
		emp.Status = *input.Status
	}
	if input.PerformanceScore != nil {
		emp.PerformanceScore = *input.PerformanceScore
	}
}
