package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/perkmart/perkmart/internal/config"
	"github.com/perkmart/perkmart/internal/server/http/handlers"
	"github.com/perkmart/perkmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RewardsFacade, cfg *config.Config, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	balanceHandler := handlers.NewBalanceHandler(facade)
	earnHandler := handlers.NewEarnHandler(facade)
	withdrawalHandler := handlers.NewWithdrawalHandler(facade)
	adminHandler := handlers.NewAdminHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)

	userAuth := user.Group("")
	userAuth.Use(middleware.AuthRequired(facade))
	userAuth.POST("/verify", authHandler.Verify)
	userAuth.GET("/balance", balanceHandler.Summary)
	userAuth.GET("/history", balanceHandler.History)
	userAuth.GET("/tasks", earnHandler.Tasks)
	userAuth.POST("/tasks/:id/complete", earnHandler.CompleteTask)
	userAuth.POST("/scratch", earnHandler.Scratch)
	userAuth.POST("/withdrawals", withdrawalHandler.Submit)
	userAuth.GET("/withdrawals", withdrawalHandler.List)

	admin := api.Group("/admin")
	admin.Use(middleware.AdminRequired(cfg.AdminKey))
	admin.GET("/withdrawals/pending", adminHandler.Pending)
	admin.POST("/withdrawals/resolve", adminHandler.ResolveBatch)
	admin.POST("/codes", adminHandler.AddCodes)
	admin.PUT("/users/:id/standing", adminHandler.SetStanding)
	admin.PUT("/redemption", adminHandler.SetRedemptionPaused)
	admin.POST("/tasks", adminHandler.CreateTask)

	return engine
}
