package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hospitality-suite/internal/model"
	"github.com/iliyamo/hospitality-suite/internal/repository"
)

// EmployeeHandler exposes CRUD endpoints for the staff roster.
type EmployeeHandler struct {
	Employees *repository.EmployeeRepo
}

// NewEmployeeHandler constructs an EmployeeHandler.
func NewEmployeeHandler(employees *repository.EmployeeRepo) *EmployeeHandler {
	if employees == nil {
		panic("nil EmployeeRepo passed to NewEmployeeHandler")
	}
	return &EmployeeHandler{Employees: employees}
}

type employeeReq struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department"`
	Email      string `json:"email"`
	HireDate   string `json:"hire_date"` // YYYY-MM-DD
}

func (r *employeeReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	r.Role = strings.TrimSpace(r.Role)
	r.Department = strings.TrimSpace(r.Department)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" {
		return "name required"
	}
	if r.Role == "" || r.Department == "" {
		return "role and department required"
	}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return "valid email required"
	}
	if _, err := time.Parse("2006-01-02", r.HireDate); err != nil {
		return "hire_date must be YYYY-MM-DD"
	}
	return ""
}

// Create adds an employee to the roster.
func (h *EmployeeHandler) Create(c echo.Context) error {
	var req employeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := &model.Employee{
		Name:       req.Name,
		Role:       req.Role,
		Department: req.Department,
		Email:      req.Email,
		HireDate:   req.HireDate,
	}
	if err := h.Employees.Create(ctx, e); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

// List returns employees, filtered by ?department= and ?role=.
func (h *EmployeeHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	employees, err := h.Employees.List(ctx,
		strings.TrimSpace(c.QueryParam("department")),
		strings.TrimSpace(c.QueryParam("role")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"employees": employees})
}

// Get returns one employee.
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e, err := h.Employees.GetByID(ctx, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// Update rewrites an employee's fields.
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req employeeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	e := &model.Employee{
		ID:         id,
		Name:       req.Name,
		Role:       req.Role,
		Department: req.Department,
		Email:      req.Email,
		HireDate:   req.HireDate,
	}
	if err := h.Employees.Update(ctx, e); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, e)
}

// Delete removes an employee.
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Employees.Delete(ctx, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
