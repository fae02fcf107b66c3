// Package router assembles the HTTP surface: middleware, the route table and
// the outer CORS layer.
package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	"github.com/onside-finance/onside/internal/app"
	"github.com/onside-finance/onside/internal/auth"
	"github.com/onside-finance/onside/internal/handlers"
	"github.com/onside-finance/onside/internal/middleware"
	"github.com/onside-finance/onside/internal/schemas"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/onside-finance/onside/docs"
)

const sessionName = "onside_session"

// New returns the complete HTTP handler for a.
func New(a *app.App, logger *zap.Logger) http.Handler {
	return withCORS(a, NewEngine(a, logger))
}

// NewEngine builds the gin engine without the CORS wrapper.
func NewEngine(a *app.App, logger *zap.Logger) *gin.Engine {
	schemas.RegisterValidators()
	cfg := a.Cfg

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(logger, "/api/health", "/metrics"),
		middleware.Recovery(logger),
	)

	if a.Metrics != nil {
		r.Use(a.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(a.Metrics.Handler()))
	}

	authMiddleware := middleware.NewAuthMiddleware(a.TokenService, a.UserService, cfg.TestMode)
	adminMiddleware := middleware.NewAdminMiddleware(cfg.AdminUsers)

	if cfg.Logto.Enabled() {
		store := cookie.NewStore([]byte(cfg.Session.Secret))
		store.Options(sessions.Options{
			Path:     "/",
			MaxAge:   86400 * 7,
			HttpOnly: true,
			Secure:   cfg.Session.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		r.Use(sessions.Sessions(sessionName, store))

		logtoHandler := auth.NewLogtoHandler(&cfg.Logto, a.UserService)
		authMiddleware.WithSessions(logtoHandler)

		authRoutes := r.Group("/auth")
		{
			authRoutes.GET("/login", logtoHandler.Login)
			authRoutes.GET("/callback", logtoHandler.Callback)
			authRoutes.GET("/logout", logtoHandler.Logout)
		}
	}

	userHandler := handlers.NewUserHandler(a.UserService, a.TokenService, a.Metrics)
	transactionHandler := handlers.NewTransactionHandler(a.TransactionService, a.Metrics)
	subscriptionHandler := handlers.NewSubscriptionHandler(a.SubscriptionService, a.Metrics)
	goalHandler := handlers.NewGoalHandler(a.GoalService, a.Metrics)
	tokenHandler := handlers.NewTokenHandler(a.TokenService)
	adminHandler := handlers.NewAdminHandler(a.UserService, a.TransactionService)
	publicHandler := handlers.NewPublicHandler(a.DB, a.SummaryService)
	exportHandler := handlers.NewExportHandler(a.ExportService)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/docs", handlers.SwaggerUI("/swagger/doc.json"))

	r.POST("/api-token-auth/", userHandler.ObtainToken)

	api := r.Group("/api")
	{
		api.GET("/health", publicHandler.Health)
		api.POST("/users/", userHandler.Register)

		authenticated := api.Group("")
		authenticated.Use(authMiddleware.RequireAuth())
		{
			authenticated.GET("/users/", userHandler.List)
			authenticated.GET("/users/me/", userHandler.Me)
			authenticated.GET("/users/:id/", userHandler.Get)
			authenticated.PUT("/users/:id/", userHandler.Replace)
			authenticated.PATCH("/users/:id/", userHandler.Patch)
			authenticated.DELETE("/users/:id/", userHandler.Delete)

			authenticated.GET("/transactions/", transactionHandler.List)
			authenticated.POST("/transactions/", transactionHandler.Create)
			authenticated.GET("/transactions/:id/", transactionHandler.Get)
			authenticated.PUT("/transactions/:id/", transactionHandler.Replace)
			authenticated.PATCH("/transactions/:id/", transactionHandler.Patch)
			authenticated.DELETE("/transactions/:id/", transactionHandler.Delete)

			authenticated.GET("/subscriptions/", subscriptionHandler.List)
			authenticated.POST("/subscriptions/", subscriptionHandler.Create)
			authenticated.GET("/subscriptions/:id/", subscriptionHandler.Get)
			authenticated.PUT("/subscriptions/:id/", subscriptionHandler.Replace)
			authenticated.PATCH("/subscriptions/:id/", subscriptionHandler.Patch)
			authenticated.DELETE("/subscriptions/:id/", subscriptionHandler.Delete)

			authenticated.GET("/goals/", goalHandler.List)
			authenticated.POST("/goals/", goalHandler.Create)
			authenticated.GET("/goals/:id/", goalHandler.Get)
			authenticated.PUT("/goals/:id/", goalHandler.Replace)
			authenticated.PATCH("/goals/:id/", goalHandler.Patch)
			authenticated.DELETE("/goals/:id/", goalHandler.Delete)

			authenticated.POST("/tokens/", tokenHandler.CreateToken)
			authenticated.GET("/tokens/", tokenHandler.ListTokens)
			authenticated.DELETE("/tokens/:id/", tokenHandler.DeleteToken)

			authenticated.GET("/summary/", publicHandler.Summary)
			authenticated.GET("/export/", exportHandler.Export)
			authenticated.POST("/export/verify/", exportHandler.VerifyExport)
		}

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), adminMiddleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.ListUsers)
			admin.GET("/transactions", adminHandler.ListTransactions)
		}
	}

	return r
}

func withCORS(a *app.App, h http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   a.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader, middleware.TestUserHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(h)
}
