package handlers

import (
	"net/http"

	"checkout-backend/internal/http/middleware"
	"checkout-backend/internal/repositories"
	"checkout-backend/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/checkout/sessions/:id/receipt
// Booking receipt PDF for a confirmed session (inline).
func GetCheckoutReceipt(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}

	svc := services.ReceiptService{RequestID: middleware.GetRequestID(c)}
	pdfBytes, filename, err := svc.GenerateReceipt(sess)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// GET /api/checkout/sessions/:id/confirmations
// Persisted confirmation history for a session.
func GetSessionConfirmations(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	svc := services.ConfirmationService{
		Repo:      repositories.ConfirmationRepo{},
		RequestID: middleware.GetRequestID(c),
	}
	records, err := svc.History(sess.ID())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmations": records})
}

// GET /api/confirmations/:number
// Lookup for the notification subsystem after the fact.
func GetConfirmationByNumber(c *gin.Context) {
	svc := services.ConfirmationService{
		Repo:      repositories.ConfirmationRepo{},
		RequestID: middleware.GetRequestID(c),
	}
	rec, err := svc.Lookup(c.Param("number"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"confirmation": rec})
}
