package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/service"
)

// DirectoryStore covers the plain reference tables. It is satisfied by
// *repository.PostgresRepo.
type DirectoryStore interface {
	ListDepartments(ctx context.Context) ([]model.Department, error)
	GetDepartment(ctx context.Context, dnumber int) (*model.Department, error)
	CreateDepartment(ctx context.Context, d *model.Department) error
	UpdateDepartment(ctx context.Context, d *model.Department) error
	DeleteDepartment(ctx context.Context, dnumber int) error

	ListEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployee(ctx context.Context, ssn string) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, e *model.Employee) error
	DeleteEmployee(ctx context.Context, ssn string) error

	ListWorksOn(ctx context.Context) ([]model.WorksOn, error)
	GetWorksOn(ctx context.Context, ssn string, pnumber int) (*model.WorksOn, error)
	CreateWorksOn(ctx context.Context, w *model.WorksOn) error
	DeleteWorksOn(ctx context.Context, ssn string, pnumber int) error

	ListCompletionLogs(ctx context.Context) ([]model.TaskCompletionLog, error)
	GetCompletionLog(ctx context.Context, id int) (*model.TaskCompletionLog, error)
	CreateCompletionLog(ctx context.Context, l *model.TaskCompletionLog) error
	DeleteCompletionLog(ctx context.Context, id int) error

	ListAssignmentLogs(ctx context.Context) ([]model.AssignmentLog, error)
	GetAssignmentLog(ctx context.Context, id int) (*model.AssignmentLog, error)
	CreateAssignmentLog(ctx context.Context, l *model.AssignmentLog) error
	DeleteAssignmentLog(ctx context.Context, id int) error
}

type DirectoryHandler struct {
	Store DirectoryStore
	Users *service.UserService
}

func NewDirectoryHandler(store DirectoryStore, users *service.UserService) *DirectoryHandler {
	return &DirectoryHandler{Store: store, Users: users}
}

// Departments

func (h *DirectoryHandler) ListDepartments(c *gin.Context) {
	list, err := h.Store.ListDepartments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DirectoryHandler) GetDepartment(c *gin.Context) {
	id, ok := intParam(c, "dnumber")
	if !ok {
		return
	}
	d, err := h.Store.GetDepartment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DirectoryHandler) CreateDepartment(c *gin.Context) {
	var d model.Department
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, err)
		return
	}
	if d.Dnumber <= 0 || strings.TrimSpace(d.Dname) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dnumber and dname are required"})
		return
	}
	if err := h.Store.CreateDepartment(c.Request.Context(), &d); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

func (h *DirectoryHandler) UpdateDepartment(c *gin.Context) {
	id, ok := intParam(c, "dnumber")
	if !ok {
		return
	}
	var d model.Department
	if err := c.ShouldBindJSON(&d); err != nil {
		badRequest(c, err)
		return
	}
	d.Dnumber = id
	if err := h.Store.UpdateDepartment(c.Request.Context(), &d); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DirectoryHandler) DeleteDepartment(c *gin.Context) {
	id, ok := intParam(c, "dnumber")
	if !ok {
		return
	}
	if err := h.Store.DeleteDepartment(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Employees

func (h *DirectoryHandler) ListEmployees(c *gin.Context) {
	list, err := h.Store.ListEmployees(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DirectoryHandler) GetEmployee(c *gin.Context) {
	e, err := h.Store.GetEmployee(c.Request.Context(), c.Param("ssn"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

// CreateEmployee also creates the employee's login; a generated password
// is returned once.
func (h *DirectoryHandler) CreateEmployee(c *gin.Context) {
	var req model.CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Users.CreateEmployee(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *DirectoryHandler) UpdateEmployee(c *gin.Context) {
	var e model.Employee
	if err := c.ShouldBindJSON(&e); err != nil {
		badRequest(c, err)
		return
	}
	e.SSN = c.Param("ssn")
	e.Department = nil
	ctx := c.Request.Context()
	if err := h.Store.UpdateEmployee(ctx, &e); err != nil {
		respondError(c, err)
		return
	}
	updated, err := h.Store.GetEmployee(ctx, e.SSN)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *DirectoryHandler) DeleteEmployee(c *gin.Context) {
	if err := h.Store.DeleteEmployee(c.Request.Context(), c.Param("ssn")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Works on

func (h *DirectoryHandler) ListWorksOn(c *gin.Context) {
	list, err := h.Store.ListWorksOn(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DirectoryHandler) GetWorksOn(c *gin.Context) {
	pnumber, ok := intParam(c, "pnumber")
	if !ok {
		return
	}
	w, err := h.Store.GetWorksOn(c.Request.Context(), c.Param("ssn"), pnumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *DirectoryHandler) CreateWorksOn(c *gin.Context) {
	var w model.WorksOn
	if err := c.ShouldBindJSON(&w); err != nil {
		badRequest(c, err)
		return
	}
	if strings.TrimSpace(w.SSN) == "" || w.Pnumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ssn and pnumber are required"})
		return
	}
	if err := h.Store.CreateWorksOn(c.Request.Context(), &w); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (h *DirectoryHandler) DeleteWorksOn(c *gin.Context) {
	pnumber, ok := intParam(c, "pnumber")
	if !ok {
		return
	}
	if err := h.Store.DeleteWorksOn(c.Request.Context(), c.Param("ssn"), pnumber); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Completion logs

func (h *DirectoryHandler) ListCompletionLogs(c *gin.Context) {
	list, err := h.Store.ListCompletionLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DirectoryHandler) GetCompletionLog(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	l, err := h.Store.GetCompletionLog(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *DirectoryHandler) CreateCompletionLog(c *gin.Context) {
	var l model.TaskCompletionLog
	if err := c.ShouldBindJSON(&l); err != nil {
		badRequest(c, err)
		return
	}
	l.CompletionDate = l.CompletionDate.UTC()
	if err := h.Store.CreateCompletionLog(c.Request.Context(), &l); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *DirectoryHandler) DeleteCompletionLog(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteCompletionLog(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Assignment logs

func (h *DirectoryHandler) ListAssignmentLogs(c *gin.Context) {
	list, err := h.Store.ListAssignmentLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *DirectoryHandler) GetAssignmentLog(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	l, err := h.Store.GetAssignmentLog(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *DirectoryHandler) CreateAssignmentLog(c *gin.Context) {
	var l model.AssignmentLog
	if err := c.ShouldBindJSON(&l); err != nil {
		badRequest(c, err)
		return
	}
	l.AssignedDate = model.UTC(l.AssignedDate)
	if err := h.Store.CreateAssignmentLog(c.Request.Context(), &l); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *DirectoryHandler) DeleteAssignmentLog(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.Store.DeleteAssignmentLog(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
