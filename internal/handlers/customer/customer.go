// internal/handlers/customer/customer.go
package customer

import (
	"net/http"
	"strconv"

	"insurtrack/internal/domain/customer"
	xerrors "insurtrack/internal/pkg/errors"
	"insurtrack/internal/pkg/response"
	service "insurtrack/internal/service/customer"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.customerService.CreateCustomer(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create customer")
		return
	}

	response.JSON(c, http.StatusCreated, result)
}

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID")
		return
	}

	result, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to retrieve customer")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// ListCustomers retrieves the full customer list
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	result, err := h.customerService.ListCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list customers")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// UpdateCustomer overwrites a customer's writable fields
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID")
		return
	}

	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.customerService.UpdateCustomer(c.Request.Context(), id, &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update customer")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// DeleteCustomer removes a customer
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID")
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete customer")
		return
	}

	response.JSON(c, http.StatusOK, response.Message{Message: "Customer deleted successfully"})
}
