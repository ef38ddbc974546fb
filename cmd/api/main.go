package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/AlejandroCopponi/esencia-retro/internal/aicopy"
	"github.com/AlejandroCopponi/esencia-retro/internal/auth"
	"github.com/AlejandroCopponi/esencia-retro/internal/cart"
	"github.com/AlejandroCopponi/esencia-retro/internal/catalog"
	"github.com/AlejandroCopponi/esencia-retro/internal/categories"
	"github.com/AlejandroCopponi/esencia-retro/internal/checkout"
	"github.com/AlejandroCopponi/esencia-retro/internal/config"
	"github.com/AlejandroCopponi/esencia-retro/internal/db"
	"github.com/AlejandroCopponi/esencia-retro/internal/favorites"
	"github.com/AlejandroCopponi/esencia-retro/internal/logging"
	"github.com/AlejandroCopponi/esencia-retro/internal/mq"
	"github.com/AlejandroCopponi/esencia-retro/internal/products"
	"github.com/AlejandroCopponi/esencia-retro/internal/session"
	"github.com/AlejandroCopponi/esencia-retro/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := logging.Init(cfg.AppEnv)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	pool, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		zap.L().Fatal("postgres connect failed", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(context.Background(), pool); err != nil {
		zap.L().Fatal("migrate failed", zap.Error(err))
	}

	rdb, err := db.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zap.L().Fatal("redis connect failed", zap.Error(err))
	}
	defer rdb.Close()

	// Events are optional: without a broker the shop still sells, it
	// just doesn't feed the remarketing worker.
	var events checkout.Publisher
	if cfg.AMQPURL != "" {
		pub, err := mq.Dial(cfg.AMQPURL)
		if err != nil {
			zap.L().Warn("rabbitmq unavailable, events disabled", zap.Error(err))
		} else {
			defer pub.Close()
			events = pub
		}
	}

	jwtMgr := auth.NewJWTManager(auth.JWTConfig{
		Issuer:       cfg.JWTIssuer,
		Secret:       cfg.JWTSecret,
		AccessTTLMin: cfg.AccessTokenTTLMin,
	})
	authHandler := auth.NewHandler(cfg.AdminEmail, cfg.AdminPasswordHash, jwtMgr)

	// Session-scoped durable state
	sessionTTL := time.Duration(cfg.SessionTTLDays) * 24 * time.Hour
	cartStore := session.NewRedisStore(rdb, "cart:", sessionTTL)
	favStore := session.NewRedisStore(rdb, "favorites:", sessionTTL)
	checkoutStore := session.NewRedisStore(rdb, "checkout:", sessionTTL)

	// Repos/handlers
	prodRepo := products.NewRepo(pool)
	prodHandler := products.NewHandler(prodRepo)

	catRepo := categories.NewRepo(pool)
	catHandler := categories.NewHandler(catRepo)

	catalogHandler := catalog.NewHandler(prodRepo)

	cartHandler := cart.NewHandler(cartStore, prodRepo)
	favHandler := favorites.NewHandler(favStore, prodRepo)

	checkoutRepo := checkout.NewRepo(pool)
	wizard := checkout.NewWizard(checkoutStore, checkoutRepo, events)
	checkoutHandler := checkout.NewHandler(wizard, cartStore, checkoutRepo)

	objects := storage.NewDiskStore(cfg.UploadDir, cfg.PublicBaseURL)
	uploadHandler := storage.NewHandler(objects, cfg.UploadBucket)

	aiClient := aicopy.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	aiHandler := aicopy.NewHandler(aiClient, catRepo)

	r := gin.Default()
	r.Use(session.Middleware())
	r.Static("/uploads", cfg.UploadDir)

	api := r.Group("/api")

	api.POST("/auth/login", authHandler.Login)

	// Public catalog
	api.GET("/categories", catHandler.ListPublic)
	api.GET("/products", catalogHandler.List)
	api.GET("/products/:id", prodHandler.GetPublic)

	// Cart (session-scoped, no login)
	api.GET("/cart", cartHandler.Get)
	api.POST("/cart/items", cartHandler.AddItem)
	api.POST("/cart/items/increase", cartHandler.IncreaseQty)
	api.POST("/cart/items/decrease", cartHandler.DecreaseQty)
	api.DELETE("/cart/items", cartHandler.RemoveItem)
	api.DELETE("/cart", cartHandler.Clear)

	// Favorites
	api.GET("/favorites", favHandler.List)
	api.POST("/favorites/toggle", favHandler.Toggle)

	// Checkout wizard
	api.GET("/checkout", checkoutHandler.GetState)
	api.POST("/checkout/contact", checkoutHandler.SubmitContact)
	api.POST("/checkout/shipping", checkoutHandler.SubmitShipping)
	api.POST("/checkout/shipping/select", checkoutHandler.SelectShipping)
	api.POST("/checkout/finalize", checkoutHandler.Finalize)

	// Admin back-office
	admin := api.Group("/admin")
	admin.Use(auth.AuthMiddleware(jwtMgr), auth.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/products", prodHandler.AdminList)
		admin.POST("/products", prodHandler.AdminCreate)
		admin.PUT("/products/:id", prodHandler.AdminUpdate)
		admin.DELETE("/products/:id", prodHandler.AdminDelete)

		admin.GET("/categories", catHandler.AdminList)
		admin.POST("/categories", catHandler.AdminCreate)
		admin.PUT("/categories/:id", catHandler.AdminUpdate)
		admin.DELETE("/categories/:id", catHandler.AdminDelete)

		admin.POST("/uploads", uploadHandler.Upload)
		admin.POST("/ai/generate", aiHandler.Generate)

		admin.GET("/orders", checkoutHandler.AdminListOrders)
		admin.GET("/abandoned-checkouts", checkoutHandler.AdminListAbandoned)
	}

	zap.L().Info("listening", zap.String("addr", cfg.HTTPAddr))
	if err := r.Run(cfg.HTTPAddr); err != nil {
		zap.L().Fatal("server stopped", zap.Error(err))
	}
}
