package handler

import (
	"github.com/gin-gonic/gin"
	inventoryapp "github.com/sitebuild/backend/internal/application/inventory"
)

// InventoryHandler handles inventory item endpoints
type InventoryHandler struct {
	BaseHandler
	service *inventoryapp.ItemService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *inventoryapp.ItemService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// RegisterRoutes mounts /inventory
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/inventory")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create handles POST /inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List handles GET /inventory. Each item carries its stock_status.
func (h *InventoryHandler) List(c *gin.Context) {
	filter, ok := h.bindQuery(c)
	if !ok {
		return
	}

	items, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetByID handles GET /inventory/:id
func (h *InventoryHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update handles PUT /inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req inventoryapp.UpdateItemRequest
	if !h.bindJSON(c, &req) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete handles DELETE /inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
