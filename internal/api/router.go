package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aputours/backend/internal/api/handler"
	"github.com/aputours/backend/internal/api/middleware"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	bookingHandler *handler.BookingHandler,
	receiptHandler *handler.ReceiptHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		// Booking operations
		bookings := v1.Group("/bookings")
		{
			bookings.POST("", bookingHandler.Create)
			bookings.GET("", bookingHandler.List)
			bookings.GET("/:id", bookingHandler.GetByID)
			bookings.GET("/code/:code", bookingHandler.GetByConfirmationCode)
			bookings.POST("/:id/confirm", bookingHandler.Confirm)
			bookings.POST("/:id/cancel", bookingHandler.Cancel)
			bookings.POST("/:id/receipts", receiptHandler.IssueForBooking)
		}

		// Receipt operations
		receipts := v1.Group("/receipts")
		{
			receipts.POST("", receiptHandler.Create)
			receipts.GET("", receiptHandler.List)
			receipts.GET("/:id", receiptHandler.GetByID)
			receipts.POST("/:id/pay", receiptHandler.MarkPaid)
			receipts.POST("/:id/verify", receiptHandler.MarkVerified)
			receipts.POST("/:id/reject", receiptHandler.Reject)
		}

		// Public verification by code, no auth, always 200 for business outcomes
		v1.GET("/verify/:code", receiptHandler.Verify)
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
