package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/dto"
	"github.com/wrsoft/branchledger/internal/middleware"
)

// debtHandler handles HTTP requests for spawned payables and receivables.
type debtHandler struct {
	debtService portssvc.DebtSvcFacade
}

// newDebtHandler creates a new debtHandler.
func newDebtHandler(debtService portssvc.DebtSvcFacade) *debtHandler {
	return &debtHandler{debtService: debtService}
}

// listPayables retrieves a page of payables within the caller's branch scope.
func (h *debtHandler) listPayables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListDebtsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.debtService.ListPayables(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listReceivables retrieves a page of receivables within the caller's branch scope.
func (h *debtHandler) listReceivables(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	params := dto.ListDebtsParams{}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	resp, err := h.debtService.ListReceivables(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// registerDebtRoutes registers the debt read routes.
func registerDebtRoutes(group *gin.RouterGroup, debtService portssvc.DebtSvcFacade) {
	h := newDebtHandler(debtService)
	debts := group.Group("/debts")
	debts.GET("/payables", h.listPayables)
	debts.GET("/receivables", h.listReceivables)
}
