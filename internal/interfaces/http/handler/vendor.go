package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/sitebuild/backend/internal/application/partner"
)

// VendorHandler handles vendor endpoints
type VendorHandler struct {
	BaseHandler
	service *partnerapp.VendorService
}

// NewVendorHandler creates a new VendorHandler
func NewVendorHandler(service *partnerapp.VendorService) *VendorHandler {
	return &VendorHandler{service: service}
}

// RegisterRoutes mounts /vendors
func (h *VendorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/vendors")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

// Create handles POST /vendors. Rating defaults to 5.
func (h *VendorHandler) Create(c *gin.Context) {
	var req partnerapp.CreateVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, vendor)
}

// List handles GET /vendors
func (h *VendorHandler) List(c *gin.Context) {
	filter, ok := h.bindQuery(c)
	if !ok {
		return
	}

	vendors, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendors)
}

// GetByID handles GET /vendors/:id
func (h *VendorHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	vendor, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// Update handles PUT /vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req partnerapp.UpdateVendorRequest
	if !h.bindJSON(c, &req) {
		return
	}

	vendor, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, vendor)
}

// Delete handles DELETE /vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
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
