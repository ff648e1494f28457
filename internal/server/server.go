// Package server wires the HTTP API: route registration, request
// validation and translation between HTTP and the domain packages.
package server

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rdevang/smartsplit/internal/auth"
	"github.com/rdevang/smartsplit/internal/cache"
	"github.com/rdevang/smartsplit/internal/config"
	"github.com/rdevang/smartsplit/internal/middleware"
	"github.com/rdevang/smartsplit/internal/storage"
)

// Server holds the dependencies shared by all handlers.
type Server struct {
	store         storage.Store
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	balanceCache  *cache.TTLCache[string, *BalanceSummary]
	limiter       *middleware.RateLimiter
	logger        *slog.Logger
}

// New builds a Server from loaded configuration and an opened store.
func New(cfg *config.Config, store storage.Store) *Server {
	return &Server{
		store:         store,
		authenticator: auth.NewPasswordAuthenticator(store),
		jwtManager:    auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		balanceCache:  cache.New[string, *BalanceSummary](cfg.BalanceCacheTTL),
		limiter:       middleware.NewRateLimiter(cfg.RateLimit, cfg.RateLimitWindow),
		logger:        slog.Default(),
	}
}

// Router builds the gin engine with all routes and middleware mounted.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(s.logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimit(s.limiter))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/health", s.health)
	api.GET("/cache/health", s.cacheHealth)

	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)

	api.POST("/feedback", s.submitFeedback)

	authed := api.Group("", middleware.RequireAuth(s.jwtManager))
	authed.GET("/auth/me", s.me)
	authed.GET("/feedback", s.listFeedback)

	authed.POST("/groups", s.createGroup)
	authed.GET("/groups", s.listGroups)
	authed.GET("/groups/:groupID", s.getGroup)
	authed.PATCH("/groups/:groupID", s.updateGroup)
	authed.DELETE("/groups/:groupID", s.deleteGroup)
	authed.POST("/groups/:groupID/members", s.addMembers)

	authed.POST("/groups/:groupID/expenses", s.createExpense)
	authed.GET("/groups/:groupID/expenses", s.listExpenses)
	authed.DELETE("/groups/:groupID/expenses/:expenseID", s.deleteExpense)

	authed.POST("/groups/:groupID/settlements", s.createSettlement)
	authed.GET("/groups/:groupID/settlements", s.listSettlements)
	authed.POST("/groups/:groupID/settlements/:settlementID/confirm", s.confirmSettlement)
	authed.DELETE("/groups/:groupID/settlements/:settlementID", s.deleteSettlement)

	authed.GET("/groups/:groupID/balances", s.getBalances)

	return router
}
