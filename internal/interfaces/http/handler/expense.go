package handler

import (
	"github.com/gin-gonic/gin"
	projectapp "github.com/sitebuild/backend/internal/application/project"
)

// ExpenseHandler handles the project expense ledger
type ExpenseHandler struct {
	BaseHandler
	expenseService *projectapp.ExpenseService
	guard          gin.HandlerFunc
}

// NewExpenseHandler creates a new ExpenseHandler. guard runs in front of
// expense creation (the Idempotency-Key check); nil means none.
func NewExpenseHandler(expenseService *projectapp.ExpenseService, guard gin.HandlerFunc) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, guard: guard}
}

// RegisterRoutes mounts /projects/:id/expenses and /expenses/:id
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/projects/:id/expenses", h.List)
	rg.POST("/projects/:id/expenses", guarded(h.guard, h.Record)...)
	rg.DELETE("/expenses/:id", h.Delete)
}

// Record handles POST /projects/:id/expenses
func (h *ExpenseHandler) Record(c *gin.Context) {
	projectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req projectapp.RecordExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}

	expense, err := h.expenseService.Record(c.Request.Context(), projectID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// List handles GET /projects/:id/expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	projectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	filter, ok := h.bindQuery(c)
	if !ok {
		return
	}

	expenses, err := h.expenseService.ListByProject(c.Request.Context(), projectID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expenses)
}

// Delete handles DELETE /expenses/:id and reverses the expense's totals
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// guarded prepends guard to handler when one is configured
func guarded(guard gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	if guard == nil {
		return []gin.HandlerFunc{handler}
	}
	return []gin.HandlerFunc{guard, handler}
}
