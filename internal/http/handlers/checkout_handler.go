package handlers

import (
	"net/http"

	"checkout-backend/internal/checkout"
	"checkout-backend/internal/http/middleware"
	"checkout-backend/internal/repositories"
	"checkout-backend/internal/services"
	"checkout-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

var sessionStore = services.NewSessionStore()

// SetSessionStore replaces the shared store (tests).
func SetSessionStore(st *services.SessionStore) {
	sessionStore = st
}

type createCheckoutRequest struct {
	Activities []checkout.ActivityBooking `json:"activities"`
	Ferry      *checkout.FerryBooking     `json:"ferry,omitempty"`
	Ferries    []checkout.FerryBooking    `json:"ferries,omitempty"`
}

// POST /api/checkout/sessions
// Ingests cart/booking collections from the selection subsystems and opens a
// checkout session at the details step.
func CreateCheckoutSession(c *gin.Context) {
	var req createCheckoutRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	ferries := append([]checkout.FerryBooking(nil), req.Ferries...)
	if req.Ferry != nil {
		ferries = append(ferries, *req.Ferry)
	}
	if len(req.Activities) == 0 && len(ferries) == 0 {
		RespondError(c, http.StatusBadRequest, "nothing to check out", nil)
		return
	}
	for _, a := range req.Activities {
		if d := a.SearchParams.Date; d != "" {
			if _, err := utils.ParseDate(d); err != nil {
				utils.LogEvent(middleware.GetRequestID(c), "checkout", "create_session", "malformed activity date "+d)
			}
		}
	}

	sess := sessionStore.Create()
	switch {
	case len(req.Activities) > 0 && len(ferries) > 0:
		sess.InitFromMixed(req.Activities, ferries)
	case len(ferries) == 1:
		sess.InitFromFerryBooking(ferries[0])
	case len(ferries) > 1:
		sess.InitFromMixed(nil, ferries)
	default:
		sess.InitFromActivityCart(req.Activities)
	}

	utils.LogEvent(middleware.GetRequestID(c), "checkout", "create_session", "session_id="+sess.ID())
	c.JSON(http.StatusCreated, sessionState(sess))
}

// GET /api/checkout/sessions/:id
func GetCheckoutSession(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sessionState(sess))
}

type updateCartRequest struct {
	Activities []checkout.ActivityBooking `json:"activities"`
}

// PUT /api/checkout/sessions/:id/cart
// Cart sync mid-checkout: preserves the wizard step but invalidates the form
// snapshot so member defaults are re-derived.
func UpdateCheckoutCart(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	var req updateCartRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	sess.UpdateActivityCart(req.Activities)
	c.JSON(http.StatusOK, sessionState(sess))
}

// GET /api/checkout/sessions/:id/form
func GetCheckoutForm(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"form":      sess.FormDefaults(),
		"persisted": sess.HasFormData(),
	})
}

// PUT /api/checkout/sessions/:id/form
func UpdateCheckoutForm(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	var form checkout.CheckoutFormData
	if !BindJSONOrError(c, &form) {
		return
	}
	sess.UpdateFormData(form)
	c.JSON(http.StatusOK, gin.H{
		"form":       sess.FormDefaults(),
		"validation": sess.ValidateAssignments(),
	})
}

// POST /api/checkout/sessions/:id/steps/next
func NextCheckoutStep(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": sess.NextStep()})
}

// POST /api/checkout/sessions/:id/steps/prev
func PrevCheckoutStep(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": sess.PrevStep()})
}

type setStepRequest struct {
	Step int `json:"step"`
}

// PUT /api/checkout/sessions/:id/step
func SetCheckoutStep(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	var req setStepRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"step": sess.SetStep(req.Step)})
}

// POST /api/checkout/sessions/:id/submit
// Validates and assembles the payment payload. The caller forwards it to the
// gateway and reports the outcome through the payment callback endpoints.
func SubmitCheckout(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}

	payload, _, err := sess.Submit()
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "checkout", "submit", "session_id="+sess.ID())
	c.JSON(http.StatusOK, gin.H{"payload": payload})
}

type paymentSuccessRequest struct {
	PaymentID string `json:"payment_id"`
	Method    string `json:"method"`
}

// POST /api/checkout/sessions/:id/payment/success
// Gateway callback contract: at most one of success/error/cancel settles a
// submission; later calls get a conflict.
func PaymentSuccess(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	var req paymentSuccessRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	conf, err := sess.SettleSuccess(checkout.PaymentResult{PaymentID: req.PaymentID, Method: req.Method})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	reqID := middleware.GetRequestID(c)
	confirmSvc := services.ConfirmationService{
		Repo:      repositories.ConfirmationRepo{},
		RequestID: reqID,
	}
	if err := confirmSvc.Record(sess.ID(), conf, bookingTypeOf(sess), sess.TotalPrice()); err != nil {
		// persistence is best-effort; the in-memory confirmation stands
		utils.LogEvent(reqID, "checkout", "payment_success", "record confirmation warning: "+err.Error())
	}

	c.JSON(http.StatusOK, gin.H{"confirmation": conf, "step": sess.Step()})
}

type paymentFailureRequest struct {
	Message string `json:"message"`
}

// POST /api/checkout/sessions/:id/payment/error
func PaymentFailure(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	var req paymentFailureRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := sess.SettleFailure(req.Message); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error_message": sess.LastError(), "step": sess.Step()})
}

// POST /api/checkout/sessions/:id/payment/cancel
func PaymentCancel(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	if err := sess.SettleCancel(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error_message": sess.LastError(), "step": sess.Step()})
}

// POST /api/checkout/sessions/:id/reset
// Full reset: clears everything including the confirmation.
func ResetCheckoutSession(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	sess.CompleteReset()
	c.JSON(http.StatusOK, sessionState(sess))
}

// DELETE /api/checkout/sessions/:id
// Discards the session entirely; distinct from reset, which keeps the
// session alive with empty state.
func DeleteCheckoutSession(c *gin.Context) {
	if _, ok := lookupSession(c); !ok {
		return
	}
	sessionStore.Delete(c.Param("id"))
	utils.LogEvent(middleware.GetRequestID(c), "checkout", "delete_session", "session_id="+c.Param("id"))
	c.Status(http.StatusNoContent)
}

// GET /api/checkout/sessions/:id/confirmation-message
func GetConfirmationMessage(c *gin.Context) {
	sess, ok := lookupSession(c)
	if !ok {
		return
	}
	svc := services.NotifyService{RequestID: middleware.GetRequestID(c)}
	msg, err := svc.ConfirmationMessage(sess)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func lookupSession(c *gin.Context) (*checkout.Session, bool) {
	sess, err := sessionStore.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return nil, false
	}
	return sess, true
}

func sessionState(sess *checkout.Session) gin.H {
	return gin.H{
		"session_id":        sess.ID(),
		"step":              sess.Step(),
		"total_price":       sess.TotalPrice(),
		"activity_metadata": sess.ActivityMetadata(),
		"ferry_metadata":    sess.FerryMetadata(),
		"minimum_members":   sess.MinimumMembersNeeded(),
		"confirmation":      sess.Confirmation(),
		"error":             sess.LastError(),
		"loading":           sess.Loading(),
	}
}

func bookingTypeOf(sess *checkout.Session) string {
	hasActivities := len(sess.Activities()) > 0
	hasFerries := len(sess.Ferries()) > 0
	switch {
	case hasActivities && hasFerries:
		return "mixed"
	case hasFerries:
		return "ferry"
	default:
		return "activity"
	}
}
