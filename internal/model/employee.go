package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeStatus is the closed set of business statuses. It is independent
// of the archived flag: an archived employee keeps its last status.
type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "Active"
	StatusInactive EmployeeStatus = "Inactive"
	StatusOnLeave  EmployeeStatus = "On Leave"
)

// Employee represents an employee record. Archiving is a soft delete: the
// row is flagged hidden from default listings but never removed.
//
// The four text columns share a FULLTEXT index backing free-text search.
type Employee struct {
	ID               uuid.UUID      `json:"id" gorm:"type:char(36);primaryKey"`
	Name             string         `json:"name" gorm:"size:255;not null;index:idx_employees_search,class:FULLTEXT"`
	Email            string         `json:"email" gorm:"size:255;not null;index:idx_employees_search,class:FULLTEXT"`
	Department       string         `json:"department" gorm:"size:255;not null;index:idx_employees_search,class:FULLTEXT"`
	Role             string         `json:"role" gorm:"size:255;not null;index:idx_employees_search,class:FULLTEXT"`
	JoiningDate      time.Time      `json:"joiningDate" gorm:"not null"`
	Status           EmployeeStatus `json:"status" gorm:"size:50;not null;index"`
	IsArchived       bool           `json:"isArchived" gorm:"default:false;index"`
	PerformanceScore int            `json:"performanceScore" gorm:"default:0"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// BeforeCreate sets a UUID before inserting the record.
func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
