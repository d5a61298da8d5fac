package handler

import (
	"github.com/gin-gonic/gin"
	workforceapp "github.com/sitebuild/backend/internal/application/workforce"
)

// WorkerHandler handles worker endpoints
type WorkerHandler struct {
	BaseHandler
	workerService *workforceapp.WorkerService
}

// NewWorkerHandler creates a new WorkerHandler
func NewWorkerHandler(workerService *workforceapp.WorkerService) *WorkerHandler {
	return &WorkerHandler{workerService: workerService}
}

// RegisterRoutes mounts /workers
func (h *WorkerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/workers")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create handles POST /workers
func (h *WorkerHandler) Create(c *gin.Context) {
	var req workforceapp.CreateWorkerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	worker, err := h.workerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, worker)
}

// List handles GET /workers and returns the roster with assigned projects
func (h *WorkerHandler) List(c *gin.Context) {
	filter, ok := h.bindQuery(c)
	if !ok {
		return
	}

	roster, err := h.workerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, roster)
}

// GetByID handles GET /workers/:id
func (h *WorkerHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	worker, err := h.workerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, worker)
}

// Update handles PUT /workers/:id
func (h *WorkerHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req workforceapp.UpdateWorkerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	worker, err := h.workerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, worker)
}

// Delete handles DELETE /workers/:id. Assignments and payments go with it.
func (h *WorkerHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.workerService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
