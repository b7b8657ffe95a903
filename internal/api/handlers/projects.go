package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roksva123/go-taskboard-backend/internal/identity"
	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/service"
)

type ProjectHandler struct {
	Projects *service.ProjectService
	Access   *service.AccessService
}

func NewProjectHandler(projects *service.ProjectService, access *service.AccessService) *ProjectHandler {
	return &ProjectHandler{Projects: projects, Access: access}
}

func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.Projects.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	pnumber, ok := intParam(c, "pnumber")
	if !ok {
		return
	}
	p, err := h.Projects.Get(c.Request.Context(), pnumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req model.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	p, err := h.Projects.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// Update is open to admins and the project's current leader.
func (h *ProjectHandler) Update(c *gin.Context) {
	pnumber, ok := intParam(c, "pnumber")
	if !ok {
		return
	}
	var req model.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	target := identity.Target{Kind: identity.ProjectTarget, ID: pnumber}
	if err := h.Access.Authorize(ctx, principal(c), identity.Write, target); err != nil {
		respondError(c, err)
		return
	}
	p, err := h.Projects.Update(ctx, pnumber, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	pnumber, ok := intParam(c, "pnumber")
	if !ok {
		return
	}
	if err := h.Projects.Delete(c.Request.Context(), pnumber); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
