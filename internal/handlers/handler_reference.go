package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/wrsoft/branchledger/internal/core/ports/services"
	"github.com/wrsoft/branchledger/internal/dto"
	"github.com/wrsoft/branchledger/internal/middleware"
)

// referenceHandler serves the lookup data behind postings: branches,
// contacts, employees and currencies.
type referenceHandler struct {
	branchService   portssvc.BranchSvcFacade
	contactService  portssvc.ContactSvcFacade
	employeeService portssvc.EmployeeSvcFacade
	currencyService portssvc.CurrencySvcFacade
}

func newReferenceHandler(
	branchService portssvc.BranchSvcFacade,
	contactService portssvc.ContactSvcFacade,
	employeeService portssvc.EmployeeSvcFacade,
	currencyService portssvc.CurrencySvcFacade,
) *referenceHandler {
	return &referenceHandler{
		branchService:   branchService,
		contactService:  contactService,
		employeeService: employeeService,
		currencyService: currencyService,
	}
}

func (h *referenceHandler) listBranches(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	branches, err := h.branchService.ListBranches(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"branches": dto.ToBranchResponses(branches)})
}

func (h *referenceHandler) getBranch(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	branchID := c.Param("branchID")

	branch, err := h.branchService.GetBranchByID(c.Request.Context(), branchID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBranchResponse(branch))
}

func (h *referenceHandler) listContacts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	contacts, err := h.contactService.ListContacts(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contacts": dto.ToContactResponses(contacts)})
}

func (h *referenceHandler) listEmployees(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var branchID *string
	if v := c.Query("branchID"); v != "" {
		branchID = &v
	}

	caller, ok := middleware.GetCallerFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	employees, err := h.employeeService.ListEmployeesByBranch(c.Request.Context(), caller, branchID)
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": dto.ToEmployeeResponses(employees)})
}

func (h *referenceHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondError(c, logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currencies": dto.ToCurrencyResponses(currencies)})
}

// registerReferenceRoutes registers the lookup data routes.
func registerReferenceRoutes(group *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newReferenceHandler(services.Branch, services.Contact, services.Employee, services.Currency)
	group.GET("/branches", h.listBranches)
	group.GET("/branches/:branchID", h.getBranch)
	group.GET("/contacts", h.listContacts)
	group.GET("/employees", h.listEmployees)
	group.GET("/currencies", h.listCurrencies)
}
