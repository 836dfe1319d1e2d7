// internal/app/router.go
package app

import (
	customerHandler "insurtrack/internal/handlers/customer"
	dashboardHandler "insurtrack/internal/handlers/dashboard"
	documentHandler "insurtrack/internal/handlers/document"
	insuranceHandler "insurtrack/internal/handlers/insurance"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	CustomerHandler  *customerHandler.CustomerHandler
	InsuranceHandler *insuranceHandler.InsuranceHandler
	DocumentHandler  *documentHandler.DocumentHandler
	DashboardHandler *dashboardHandler.DashboardHandler
}

func SetupRouter(r *gin.Engine, h *Handlers) {
	// ==================== Health Check ====================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ==================== Dashboard ====================
	r.GET("/dashboard/stats", h.DashboardHandler.GetStats)

	// ==================== Customers ====================
	customers := r.Group("/customers")
	{
		customers.GET("", h.CustomerHandler.ListCustomers)
		customers.GET("/:id", h.CustomerHandler.GetCustomer)
		customers.POST("", h.CustomerHandler.CreateCustomer)
		customers.PUT("/:id", h.CustomerHandler.UpdateCustomer)
		customers.DELETE("/:id", h.CustomerHandler.DeleteCustomer)
	}

	// ==================== Insurances ====================
	insurances := r.Group("/insurances")
	{
		insurances.GET("", h.InsuranceHandler.ListInsurances)
		insurances.GET("/customer/:customer_id", h.InsuranceHandler.ListCustomerInsurances)
		insurances.GET("/upcoming-renewals", h.InsuranceHandler.UpcomingRenewals)
		insurances.GET("/:id", h.InsuranceHandler.GetInsurance)
		insurances.POST("", h.InsuranceHandler.CreateInsurance)
		insurances.PUT("/:id", h.InsuranceHandler.UpdateInsurance)
		insurances.DELETE("/:id", h.InsuranceHandler.DeleteInsurance)
	}

	// ==================== Documents ====================
	documents := r.Group("/documents")
	{
		documents.GET("/customer/:customer_id", h.DocumentHandler.ListCustomerDocuments)
		documents.GET("/:id", h.DocumentHandler.GetDocument)
		documents.POST("", h.DocumentHandler.CreateDocument)
		documents.DELETE("/:id", h.DocumentHandler.DeleteDocument)
	}
}
