package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/service"
)

type LeaderHandler struct {
	Leaders *service.LeaderService
}

func NewLeaderHandler(leaders *service.LeaderService) *LeaderHandler {
	return &LeaderHandler{Leaders: leaders}
}

func (h *LeaderHandler) List(c *gin.Context) {
	list, err := h.Leaders.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *LeaderHandler) Current(c *gin.Context) {
	pnumber, ok := intParam(c, "pnumber")
	if !ok {
		return
	}
	l, err := h.Leaders.Current(c.Request.Context(), pnumber)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *LeaderHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	l, err := h.Leaders.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *LeaderHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var req model.ProjectLeader
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	l, err := h.Leaders.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *LeaderHandler) Assign(c *gin.Context) {
	pnumber, ok := intParam(c, "pnumber")
	if !ok {
		return
	}
	var req model.AssignLeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	l, err := h.Leaders.Assign(c.Request.Context(), pnumber, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h *LeaderHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	if err := h.Leaders.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
