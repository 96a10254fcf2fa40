package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "staffdesk/internal/errors"
	"staffdesk/internal/model"
	"staffdesk/internal/service"
)

// EmployeeHandler handles employee record endpoints.
type EmployeeHandler struct {
	svc service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(svc service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// CreateEmployeeRequest represents an employee creation payload.
type CreateEmployeeRequest struct {
	Name             string `json:"name" validate:"required,min=2"`
	Email            string `json:"email" validate:"required,email"`
	Department       string `json:"department" validate:"required"`
	Role             string `json:"role" validate:"required"`
	JoiningDate      string `json:"joiningDate" validate:"required,datetime=2006-01-02"`
	Status           string `json:"status" validate:"required,oneof='Active' 'Inactive' 'On Leave'"`
	PerformanceScore *int   `json:"performanceScore" validate:"omitempty,min=0,max=100"`
}

// UpdateEmployeeRequest represents a partial employee update. Absent fields
// are left untouched; present fields obey the same constraints as creation.
type UpdateEmployeeRequest struct {
	Name             *string `json:"name" validate:"omitempty,min=2"`
	Email            *string `json:"email" validate:"omitempty,email"`
	Department       *string `json:"department" validate:"omitempty,min=1"`
	Role             *string `json:"role" validate:"omitempty,min=1"`
	JoiningDate      *string `json:"joiningDate" validate:"omitempty,datetime=2006-01-02"`
	Status           *string `json:"status" validate:"omitempty,oneof='Active' 'Inactive' 'On Leave'"`
	PerformanceScore *int    `json:"performanceScore" validate:"omitempty,min=0,max=100"`
}

// ArchiveResponse pairs the outcome message with the affected record.
type ArchiveResponse struct {
	Message  string          `json:"message"`
	Employee *model.Employee `json:"emp"`
}

// Create godoc
// @Summary Create an employee record
// @Tags employees
// @Accept json
// @Produce json
// @Param request body CreateEmployeeRequest true "Employee payload"
// @Success 201 {object} model.Employee
// @Failure 400 {object} errors.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req CreateEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	joining, _ := time.Parse("2006-01-02", req.JoiningDate)
	status := model.EmployeeStatus(req.Status)
	input := service.EmployeeInput{
		Name:             &req.Name,
		Email:            &req.Email,
		Department:       &req.Department,
		Role:             &req.Role,
		JoiningDate:      &joining,
		Status:           &status,
		PerformanceScore: req.PerformanceScore,
	}

	emp, err := h.svc.Create(c.Request().Context(), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, emp)
}

// List godoc
// @Summary List employees with filtering, sorting, and pagination
// @Tags employees
// @Produce json
// @Param search query string false "Free-text search over name, email, department, role"
// @Param department query string false "Department equality filter"
// @Param status query string false "Status equality filter"
// @Param dateFrom query string false "Joining date lower bound (YYYY-MM-DD)"
// @Param dateTo query string false "Joining date upper bound (YYYY-MM-DD)"
// @Param showArchived query boolean false "Include archived records"
// @Param page query integer false "Page number, default 1"
// @Param limit query integer false "Page size, default 10, max 100"
// @Param sortField query string false "Sort field, default createdAt"
// @Param sortOrder query string false "asc or desc"
// @Success 200 {object} service.EmployeeList
// @Router /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	q := service.BuildEmployeeListQuery(c.QueryParams())
	list, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// GetByID godoc
// @Summary Get an employee by id
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} model.Employee
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetByID(c echo.Context) error {
	emp, err := h.svc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emp)
}

// Update godoc
// @Summary Update an employee record
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "Employee ID"
// @Param request body UpdateEmployeeRequest true "Fields to update"
// @Success 200 {object} model.Employee
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	var req UpdateEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	patch := service.EmployeeInput{
		Name:             req.Name,
		Email:            req.Email,
		Department:       req.Department,
		Role:             req.Role,
		PerformanceScore: req.PerformanceScore,
	}
	if req.JoiningDate != nil {
		joining, _ := time.Parse("2006-01-02", *req.JoiningDate)
		patch.JoiningDate = &joining
	}
	if req.Status != nil {
		status := model.EmployeeStatus(*req.Status)
		patch.Status = &status
	}

	emp, err := h.svc.Update(c.Request().Context(), c.Param("id"), patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emp)
}

// Archive godoc
// @Summary Archive an employee (soft delete)
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} ArchiveResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id}/archive [patch]
func (h *EmployeeHandler) Archive(c echo.Context) error {
	emp, err := h.svc.Archive(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ArchiveResponse{Message: "Employee archived", Employee: emp})
}

// Restore godoc
// @Summary Restore an archived employee
// @Tags employees
// @Produce json
// @Param id path string true "Employee ID"
// @Success 200 {object} ArchiveResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id}/restore [patch]
func (h *EmployeeHandler) Restore(c echo.Context) error {
	emp, err := h.svc.Restore(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrEmployeeNotFound) {
			// Unknown id and never-archived collapse into one outcome.
			return apperrors.NewHTTPError(http.StatusNotFound, "Employee not found or not archived", "EMPLOYEE_NOT_FOUND")
		}
		return err
	}
	return c.JSON(http.StatusOK, ArchiveResponse{Message: "Employee restored", Employee: emp})
}
