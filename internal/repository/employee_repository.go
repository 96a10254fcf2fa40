package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"staffdesk/internal/model"
)

// EmployeeListQuery is the sanitized, bounded descriptor of a list request.
// It is only ever produced by the query builder, so SortColumn is guaranteed
// to be one of the whitelisted column names.
type EmployeeListQuery struct {
	Search       string
	Department   string
	Status       string
	DateFrom     *time.Time
	DateTo       *time.Time
	ShowArchived bool
	Page         int
	Limit        int
	SortColumn   string
	SortDesc     bool
}

// Offset returns the row offset implied by page and limit.
func (q EmployeeListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// OrderClause renders the ORDER BY expression for the resolved sort.
func (q EmployeeListQuery) OrderClause() string {
	dir := "ASC"
	if q.SortDesc {
		dir = "DESC"
	}
	return q.SortColumn + " " + dir
}

// EmployeeRepository defines employee persistence operations.
type EmployeeRepository interface {
	Create(ctx context.Context, emp *model.Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	Save(ctx context.Context, emp *model.Employee) error
	SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*model.Employee, error)
	List(ctx context.Context, q EmployeeListQuery) (items []model.Employee, total int64, err error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *employeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var emp model.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) Save(ctx context.Context, emp *model.Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

// SetArchived flips the archive flag and returns the resulting record. The
// update is idempotent; the only failure besides database errors is an
// unknown id.
func (r *employeeRepository) SetArchived(ctx context.Context, id uuid.UUID, archived bool) (*model.Employee, error) {
	var emp model.Employee
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&emp).Error; err != nil {
		return nil, err
	}
	if emp.IsArchived != archived {
		if err := r.db.WithContext(ctx).Model(&emp).Update("is_archived", archived).Error; err != nil {
			return nil, err
		}
	}
	emp.IsArchived = archived
	return &emp, nil
}

// List applies the descriptor's filters and runs the count and the page
// fetch concurrently. The two reads are independent, so total may lag a
// racing write by a row or two; listings tolerate that.
func (r *employeeRepository) List(ctx context.Context, q EmployeeListQuery) ([]model.Employee, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Employee{})
	if !q.ShowArchived {
		base = base.Where("is_archived = ?", false)
	}
	if q.Department != "" {
		base = base.Where("department = ?", q.Department)
	}
	if q.Status != "" {
		base = base.Where("status = ?", q.Status)
	}
	if q.DateFrom != nil {
		base = base.Where("joining_date >= ?", *q.DateFrom)
	}
	if q.DateTo != nil {
		base = base.Where("joining_date <= ?", *q.DateTo)
	}
	if q.Search != "" {
		base = base.Where("MATCH (name, email, department, role) AGAINST (?)", q.Search)
	}
	base = base.Session(&gorm.Session{})

	var (
		items []model.Employee
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return base.WithContext(gctx).Count(&total).Error
	})
	g.Go(func() error {
		return base.WithContext(gctx).
			Order(q.OrderClause()).
			Offset(q.Offset()).
			Limit(q.Limit).
			Find(&items).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if items == nil {
		items = []model.Employee{}
	}
	return items, total, nil
}
