package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/shelvit/backend/internal/auth"
	"github.com/shelvit/backend/internal/handlers"
	"github.com/shelvit/backend/internal/middleware"
	"github.com/shelvit/backend/internal/models"
	"github.com/shelvit/backend/internal/repositories"
	"github.com/shelvit/backend/pkg/config"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *mongo.Database, cfg *config.Config) {
	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewMongoUserRepository(db)
	boardRepo := repositories.NewMongoBoardRepository(db)
	itemRepo := repositories.NewMongoItemRepository(db)
	tokenRepo := repositories.NewMongoTokenRepository(db)

	tokenService := auth.NewTokenService(cfg.JWTSecret, tokenRepo)
	accessGuard := middleware.JWTAuth(tokenService, tokenRepo, models.TokenTypeAccess)
	refreshGuard := middleware.JWTAuth(tokenService, tokenRepo, models.TokenTypeRefresh)

	// --- Authentication routes ---
	authGroup := e.Group("/auth")
	authGroup.Use(eMiddleware.RateLimiter(eMiddleware.NewRateLimiterMemoryStore(rate.Limit(20))))
	authHandler := handlers.NewAuthHandler(userRepo, tokenService, tokenRepo)
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh, refreshGuard)
	authGroup.DELETE("/logout", authHandler.Logout, accessGuard)
	authGroup.DELETE("/revoke", authHandler.RevokeRefresh, refreshGuard)
	log.Println("Auth routes configured.")

	// --- Protected routes (require a non-revoked access token) ---
	api := e.Group("", accessGuard)

	boardHandler := handlers.NewBoardHandler(boardRepo, userRepo)
	api.GET("/boards", boardHandler.ListBoards)
	api.POST("/boards", boardHandler.CreateBoard)
	api.GET("/board/:id", boardHandler.GetBoard)
	api.PUT("/board/:id", boardHandler.UpdateBoard)
	api.DELETE("/board/:id", boardHandler.DeleteBoard)
	log.Println("Board routes configured.")

	itemHandler := handlers.NewItemHandler(itemRepo, boardRepo, userRepo)
	api.GET("/items", itemHandler.ListItems)
	api.POST("/items", itemHandler.CreateItem)
	api.GET("/item/:id", itemHandler.GetItem)
	api.PUT("/item/:id", itemHandler.UpdateItem)
	api.DELETE("/item/:id", itemHandler.DeleteItem)
	api.POST("/item/:id/like", itemHandler.LikeItem)
	api.DELETE("/item/:id/like", itemHandler.UnlikeItem)
	api.GET("/by-board/:slug", itemHandler.ListByBoard)
	log.Println("Item routes configured.")

	importHandler := handlers.NewImportHandler(itemRepo, boardRepo, userRepo)
	api.POST("/UploadURLs", importHandler.Import)
	log.Println("Import route configured.")

	log.Println("All routes configured.")
}
