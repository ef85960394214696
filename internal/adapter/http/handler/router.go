package handler

import (
	"cash-register/internal/adapter/http/middleware"
	"cash-register/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const maxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	RegisterSvc    ports.RegisterService
	TokenSvc       ports.TokenService
	RateLimitStore middleware.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(maxBodyBytes))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()
	rl := func(group string) gin.HandlerFunc {
		rule, ok := rules[group]
		if deps.RateLimitStore == nil || !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	v1 := r.Group("/api/v1")

	authHandler := NewAuthHandler(deps.AuthSvc)
	v1.POST("/auth/token", rl("auth_token"), authHandler.Token)

	// --- Payments (public, like the till) ---
	paymentHandler := NewPaymentHandler(deps.RegisterSvc)
	payments := v1.Group("/payments")
	{
		payments.POST("", rl("payments"), paymentHandler.CreatePayment)
		payments.GET("/:id", rl("queries"), paymentHandler.GetPayment)
	}

	// --- Catalog ---
	denomHandler := NewDenominationHandler(deps.RegisterSvc)
	denoms := v1.Group("/denominations")
	{
		denoms.GET("", rl("queries"), denomHandler.List)
		denoms.POST("", jwtAuth, rl("admin"), denomHandler.Register)
		denoms.DELETE("/:value", jwtAuth, rl("admin"), denomHandler.Remove)
	}

	// --- Restock (JWT) ---
	inventoryHandler := NewInventoryHandler(deps.RegisterSvc)
	inventory := v1.Group("/inventory", jwtAuth)
	{
		inventory.PUT("/:value", rl("admin"), inventoryHandler.Set)
		inventory.PATCH("/:value", rl("admin"), inventoryHandler.Adjust)
	}

	// --- Register views ---
	registerHandler := NewRegisterHandler(deps.RegisterSvc)
	register := v1.Group("/register")
	{
		register.GET("/state", rl("queries"), registerHandler.State)
		register.GET("/history", rl("queries"), registerHandler.History)
		register.POST("/empty", jwtAuth, rl("admin"), registerHandler.Empty)
	}

	return r
}
