// internal/handlers/insurance/insurance.go
package insurance

import (
	"net/http"
	"strconv"

	"insurtrack/internal/domain/insurance"
	xerrors "insurtrack/internal/pkg/errors"
	"insurtrack/internal/pkg/response"
	service "insurtrack/internal/service/insurance"

	"github.com/gin-gonic/gin"
)

type InsuranceHandler struct {
	insuranceService *service.InsuranceService
}

func NewInsuranceHandler(insuranceService *service.InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{
		insuranceService: insuranceService,
	}
}

// CreateInsurance creates a new policy
func (h *InsuranceHandler) CreateInsurance(c *gin.Context) {
	var req insurance.CreateInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.insuranceService.CreateInsurance(c.Request.Context(), &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create insurance")
		return
	}

	response.JSON(c, http.StatusCreated, result)
}

// GetInsurance retrieves a policy by ID
func (h *InsuranceHandler) GetInsurance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid insurance ID")
		return
	}

	result, err := h.insuranceService.GetInsurance(c.Request.Context(), id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Insurance not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to retrieve insurance")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// ListInsurances retrieves every policy
func (h *InsuranceHandler) ListInsurances(c *gin.Context) {
	result, err := h.insuranceService.ListInsurances(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list insurances")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// ListCustomerInsurances retrieves the policies scoped to one customer
func (h *InsuranceHandler) ListCustomerInsurances(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID")
		return
	}

	result, err := h.insuranceService.ListCustomerInsurances(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list insurances")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// UpcomingRenewals retrieves policies renewing within ?days (default 14)
func (h *InsuranceHandler) UpcomingRenewals(c *gin.Context) {
	days := 14
	if raw := c.Query("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			response.ValidationError(c, "invalid days parameter")
			return
		}
		days = n
	}

	result, err := h.insuranceService.UpcomingRenewals(c.Request.Context(), days)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list upcoming renewals")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// UpdateInsurance overwrites a policy's writable fields
func (h *InsuranceHandler) UpdateInsurance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid insurance ID")
		return
	}

	var req insurance.CreateInsuranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.insuranceService.UpdateInsurance(c.Request.Context(), id, &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Insurance not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update insurance")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// DeleteInsurance removes a policy
func (h *InsuranceHandler) DeleteInsurance(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid insurance ID")
		return
	}

	if err := h.insuranceService.DeleteInsurance(c.Request.Context(), id); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Insurance not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete insurance")
		return
	}

	response.JSON(c, http.StatusOK, response.Message{Message: "Insurance deleted successfully"})
}
