package document

import "time"

// Document is file metadata attached to a customer and optionally to one of
// that customer's policies.
type Document struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	InsuranceID *int64    `json:"insurance_id,omitempty"`
	Filename    string    `json:"filename"`
	FilePath    string    `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateDocumentRequest carries the writable document fields.
type CreateDocumentRequest struct {
	CustomerID  int64  `json:"customer_id" binding:"required"`
	InsuranceID *int64 `json:"insurance_id"`
	Filename    string `json:"filename" binding:"required"`
	FilePath    string `json:"file_path" binding:"required"`
}
