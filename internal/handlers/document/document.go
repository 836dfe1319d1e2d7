// internal/handlers/document/document.go
package document

import (
	"net/http"
	"strconv"

	"insurtrack/internal/domain/document"
	xerrors "insurtrack/internal/pkg/errors"
	"insurtrack/internal/pkg/response"
	service "insurtrack/internal/service/document"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	documentService *service.DocumentService
}

func NewDocumentHandler(documentService *service.DocumentService) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
	}
}

// CreateDocument records document metadata
func (h *DocumentHandler) CreateDocument(c *gin.Context) {
	var req document.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request: "+err.Error())
		return
	}

	result, err := h.documentService.CreateDocument(c.Request.Context(), &req)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create document")
		return
	}

	response.JSON(c, http.StatusCreated, result)
}

// GetDocument retrieves document metadata by ID
func (h *DocumentHandler) GetDocument(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid document ID")
		return
	}

	result, err := h.documentService.GetDocument(c.Request.Context(), id)
	if err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Document not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to retrieve document")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// ListCustomerDocuments retrieves documents scoped to one customer
func (h *DocumentHandler) ListCustomerDocuments(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.Param("customer_id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid customer ID")
		return
	}

	result, err := h.documentService.ListCustomerDocuments(c.Request.Context(), customerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list documents")
		return
	}

	response.JSON(c, http.StatusOK, result)
}

// DeleteDocument removes document metadata
func (h *DocumentHandler) DeleteDocument(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ValidationError(c, "invalid document ID")
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), id); err != nil {
		if xerrors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "Document not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete document")
		return
	}

	response.JSON(c, http.StatusOK, response.Message{Message: "Document deleted successfully"})
}
