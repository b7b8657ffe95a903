package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roksva123/go-taskboard-backend/internal/identity"
	"github.com/roksva123/go-taskboard-backend/internal/model"
	"github.com/roksva123/go-taskboard-backend/internal/service"
)

type TaskHandler struct {
	Tasks  *service.TaskService
	Access *service.AccessService
}

func NewTaskHandler(tasks *service.TaskService, access *service.AccessService) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Access: access}
}

func (h *TaskHandler) authorize(ctx context.Context, c *gin.Context, kind identity.TargetKind, id int) bool {
	err := h.Access.Authorize(ctx, principal(c), identity.Write, identity.Target{Kind: kind, ID: id})
	if err != nil {
		respondError(c, err)
		return false
	}
	return true
}

func (h *TaskHandler) List(c *gin.Context) {
	list, err := h.Tasks.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	t, err := h.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var in model.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	if !h.authorize(ctx, c, identity.ProjectTarget, in.Pnumber) {
		return
	}
	t, err := h.Tasks.Create(ctx, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

// Update needs write access to the task and, when the task moves, to the
// destination project as well.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	var in model.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	if !h.authorize(ctx, c, identity.TaskTarget, id) {
		return
	}
	current, err := h.Tasks.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	if current.Pnumber != in.Pnumber && !h.authorize(ctx, c, identity.ProjectTarget, in.Pnumber) {
		return
	}
	t, err := h.Tasks.Update(ctx, id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := intParam(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if !h.authorize(ctx, c, identity.TaskTarget, id) {
		return
	}
	if err := h.Tasks.Delete(ctx, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) ListAssignments(c *gin.Context) {
	list, err := h.Tasks.ListAssignments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TaskHandler) GetAssignment(c *gin.Context) {
	taskID, ok := intParam(c, "task_id")
	if !ok {
		return
	}
	a, err := h.Tasks.GetAssignment(c.Request.Context(), c.Param("ssn"), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *TaskHandler) CreateAssignment(c *gin.Context) {
	var req model.Assignment
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	if !h.authorize(ctx, c, identity.TaskTarget, req.TaskID) {
		return
	}
	a, err := h.Tasks.AddAssignment(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

func (h *TaskHandler) UpdateAssignment(c *gin.Context) {
	taskID, ok := intParam(c, "task_id")
	if !ok {
		return
	}
	var req model.Assignment
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctx := c.Request.Context()
	if !h.authorize(ctx, c, identity.TaskTarget, taskID) {
		return
	}
	a, err := h.Tasks.UpdateAssignment(ctx, c.Param("ssn"), taskID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

func (h *TaskHandler) DeleteAssignment(c *gin.Context) {
	taskID, ok := intParam(c, "task_id")
	if !ok {
		return
	}
	todoIndex, ok := intParam(c, "todo_index")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	if !h.authorize(ctx, c, identity.TaskTarget, taskID) {
		return
	}
	if err := h.Tasks.RemoveAssignment(ctx, c.Param("ssn"), taskID, todoIndex); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
