package main

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/hyejinmoon/fashion-shop-backend/internal/address"
	"github.com/hyejinmoon/fashion-shop-backend/internal/auth"
	"github.com/hyejinmoon/fashion-shop-backend/internal/cart"
	"github.com/hyejinmoon/fashion-shop-backend/internal/category"
	"github.com/hyejinmoon/fashion-shop-backend/internal/chat"
	"github.com/hyejinmoon/fashion-shop-backend/internal/config"
	"github.com/hyejinmoon/fashion-shop-backend/internal/dashboard"
	"github.com/hyejinmoon/fashion-shop-backend/internal/logger"
	"github.com/hyejinmoon/fashion-shop-backend/internal/middleware"
	"github.com/hyejinmoon/fashion-shop-backend/internal/order"
	"github.com/hyejinmoon/fashion-shop-backend/internal/product"
	"github.com/hyejinmoon/fashion-shop-backend/internal/review"
	"github.com/hyejinmoon/fashion-shop-backend/internal/user"
)

func main() {
	cfg := config.Load()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := ensureSchema(db); err != nil {
		logger.L().Fatal("schema bootstrap failed", zap.Error(err))
	}

	app := fiber.New()
	setupCORS(app)
	app.Use(logger.RequestID)
	app.Use(logger.Logging)
	app.Use(middleware.RateLimit(cfg.JWTSecret))

	// product images uploaded through the admin panel
	app.Static("/uploads", "./uploads")

	// services
	categoryService := category.NewService(category.NewPostgresRepository(db))
	productService := product.NewService(product.NewPostgresRepository(db), categoryService)
	userService := user.NewService(user.NewPostgresRepository(db))
	cartService := cart.NewService(cart.NewPostgresRepository(db), productService)
	orderService := order.NewService(order.NewPostgresRepository(db))
	reviewService := review.NewService(review.NewPostgresRepository(db), productService)
	addressService := address.NewService(address.NewPostgresRepository(db))
	dashboardService := dashboard.NewService(dashboard.NewPostgresRepository(db))

	hub := chat.NewHub()
	go hub.Run()
	chatService := chat.NewService(chat.NewPostgresRepository(db), hub, userService)

	// handlers
	userHandler := user.NewHandler(userService, cfg.JWTSecret)
	productHandler := product.NewHandler(productService)
	categoryHandler := category.NewHandler(categoryService)
	cartHandler := cart.NewHandler(cartService)
	orderHandler := order.NewHandler(orderService)
	reviewHandler := review.NewHandler(reviewService)
	addressHandler := address.NewHandler(addressService)
	dashboardHandler := dashboard.NewHandler(dashboardService)
	chatHandler := chat.NewHandler(chatService, hub, cfg.JWTSecret)

	// public routes, registered before the jwt middleware
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)

	// the websocket upgrade verifies its own token from the query string
	chatHandler.RegisterWebsocketRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		Filter:     isPublicRoute,
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	reviewHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	chatHandler.RegisterProtectedRoutes(app)

	admin := app.Group("/api/v1/admin", auth.RequireAdmin)
	productHandler.RegisterAdminRoutes(admin)
	categoryHandler.RegisterAdminRoutes(admin)
	orderHandler.RegisterAdminRoutes(admin)
	userHandler.RegisterAdminRoutes(admin)
	dashboardHandler.RegisterAdminRoutes(admin)

	logger.L().Info("listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}

// isPublicRoute skips jwt verification for the unauthenticated surface:
// sign-up/sign-in, catalog browsing and the websocket upgrade.
func isPublicRoute(c *fiber.Ctx) bool {
	p := c.Path()
	switch p {
	case "/api/v1/sign-up", "/api/v1/sign-in":
		return true
	case "/api/v1/chat/ws":
		return true
	}
	if c.Method() != fiber.MethodGet {
		return false
	}
	if p == "/api/v1/categories" {
		return true
	}
	if strings.HasPrefix(p, "/api/v1/products") {
		// product detail reviews are public too; POST reviews is not a GET
		return true
	}
	return false
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(url string) *sql.DB {
	db, err := sql.Open("pgx", url)
	if err != nil {
		logger.L().Fatal("open database", zap.Error(err))
	}
	if err := db.Ping(); err != nil {
		logger.L().Fatal("ping database", zap.Error(err))
	}
	return db
}
