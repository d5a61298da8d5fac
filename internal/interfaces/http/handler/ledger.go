package handler

import (
	"github.com/gin-gonic/gin"
	workforceapp "github.com/sitebuild/backend/internal/application/workforce"
)

// LedgerHandler handles assignments, hours and worker payments
type LedgerHandler struct {
	BaseHandler
	ledgerService *workforceapp.LedgerService
	guard         gin.HandlerFunc
}

// NewLedgerHandler creates a new LedgerHandler. guard runs in front of
// payment recording; nil means none.
func NewLedgerHandler(ledgerService *workforceapp.LedgerService, guard gin.HandlerFunc) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService, guard: guard}
}

// RegisterRoutes mounts the worker ledger routes
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	workers := rg.Group("/workers/:id")
	workers.POST("/assign", h.Assign)
	workers.GET("/assignments", h.ListAssignments)
	workers.GET("/payments", h.ListPayments)
	workers.POST("/payments", guarded(h.guard, h.RecordPayment)...)

	assignments := rg.Group("/assignments/:id")
	assignments.POST("/hours", h.AddHours)
	assignments.DELETE("", h.Unassign)
}

// Assign handles POST /workers/:id/assign. The worker's current hourly rate
// is frozen onto the assignment.
func (h *LedgerHandler) Assign(c *gin.Context) {
	workerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req workforceapp.AssignWorkerRequest
	if !h.bindJSON(c, &req) {
		return
	}

	assignment, err := h.ledgerService.Assign(c.Request.Context(), workerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, assignment)
}

// ListAssignments handles GET /workers/:id/assignments
func (h *LedgerHandler) ListAssignments(c *gin.Context) {
	workerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	assignments, err := h.ledgerService.ListAssignments(c.Request.Context(), workerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, assignments)
}

// AddHours handles POST /assignments/:id/hours
func (h *LedgerHandler) AddHours(c *gin.Context) {
	assignmentID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req workforceapp.AddHoursRequest
	if !h.bindJSON(c, &req) {
		return
	}

	assignment, err := h.ledgerService.AddHours(c.Request.Context(), assignmentID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, assignment)
}

// Unassign handles DELETE /assignments/:id
func (h *LedgerHandler) Unassign(c *gin.Context) {
	assignmentID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.ledgerService.Unassign(c.Request.Context(), assignmentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RecordPayment handles POST /workers/:id/payments
func (h *LedgerHandler) RecordPayment(c *gin.Context) {
	workerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req workforceapp.RecordPaymentRequest
	if !h.bindJSON(c, &req) {
		return
	}

	receipt, err := h.ledgerService.RecordPayment(c.Request.Context(), workerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receipt)
}

// ListPayments handles GET /workers/:id/payments, newest first
func (h *LedgerHandler) ListPayments(c *gin.Context) {
	workerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	filter, ok := h.bindQuery(c)
	if !ok {
		return
	}

	payments, err := h.ledgerService.ListPayments(c.Request.Context(), workerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}
