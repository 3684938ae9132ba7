package api

import (
	"log"
	stdhttp "net/http"
	"os"
	"strings"
	"time"

	intconfig "checkout-backend/internal/config"
	h "checkout-backend/internal/http/handlers"
	"checkout-backend/internal/http/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	_ = env

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), cors.New(corsConfig()))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		// Auth
		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)

		// Checkout sessions
		sessions := api.Group("/checkout/sessions")
		sessions.POST("", h.CreateCheckoutSession)
		sessions.GET("/:id", h.GetCheckoutSession)
		sessions.DELETE("/:id", h.DeleteCheckoutSession)
		sessions.PUT("/:id/cart", h.UpdateCheckoutCart)
		sessions.GET("/:id/form", h.GetCheckoutForm)
		sessions.PUT("/:id/form", h.UpdateCheckoutForm)
		sessions.POST("/:id/steps/next", h.NextCheckoutStep)
		sessions.POST("/:id/steps/prev", h.PrevCheckoutStep)
		sessions.PUT("/:id/step", h.SetCheckoutStep)
		sessions.POST("/:id/submit", h.SubmitCheckout)
		sessions.POST("/:id/reset", h.ResetCheckoutSession)
		sessions.GET("/:id/receipt", h.GetCheckoutReceipt)
		sessions.GET("/:id/confirmation-message", h.GetConfirmationMessage)
		sessions.GET("/:id/confirmations", h.GetSessionConfirmations)

		// Payment gateway callbacks
		payment := sessions.Group("/:id/payment")
		payment.POST("/success", h.PaymentSuccess)
		payment.POST("/error", h.PaymentFailure)
		payment.POST("/cancel", h.PaymentCancel)

		// Confirmations (notification subsystem)
		confirmations := api.Group("/confirmations")
		confirmations.Use(middleware.RequireAuth(), middleware.RequireRoles("admin", "service"))
		confirmations.GET("/:number", h.GetConfirmationByNumber)
	}

	h.SetRouter(r)
	return r
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
		"http://localhost:5173",
		"http://127.0.0.1:5173",
	}
	if env := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); env != "" {
		origins := []string{}
		for _, o := range strings.Split(env, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowOrigins = origins
	}
	cfg.AllowCredentials = true
	cfg.AllowHeaders = []string{"Content-Type", "Authorization", "Accept", "Origin", "X-Request-ID"}
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.MaxAge = 24 * time.Hour
	return cfg
}
