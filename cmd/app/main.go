package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/productshopwm/shop-backend/internal/cart"
	"github.com/productshopwm/shop-backend/internal/category"
	"github.com/productshopwm/shop-backend/internal/config"
	"github.com/productshopwm/shop-backend/internal/favorite"
	"github.com/productshopwm/shop-backend/internal/notifier"
	"github.com/productshopwm/shop-backend/internal/order"
	"github.com/productshopwm/shop-backend/internal/pickup"
	"github.com/productshopwm/shop-backend/internal/product"
	"github.com/productshopwm/shop-backend/internal/storage"
	"github.com/productshopwm/shop-backend/internal/user"
	"github.com/productshopwm/shop-backend/internal/verification"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	app := fiber.New()
	setupCORS(app)
	app.Use(requestLogger)

	db := mustOpenDB(cfg.DatabaseURL)
	defer db.Close()

	if err := storage.EnsureSchema(db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	// Email is optional in dev: without a sender address the checkout
	// and confirmation flows still work, they just skip the emails.
	var emailSender *notifier.EmailSender
	if cfg.SenderEmail != "" {
		var err error
		emailSender, err = notifier.NewEmailSender(context.Background(),
			cfg.AWSRegion, cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.SenderEmail)
		if err != nil {
			log.Fatalf("ses: %v", err)
		}
	} else {
		log.Println("SENDER_EMAIL not set, outbound email disabled")
	}

	userService := user.NewService(user.NewPostgresRepository(db))
	userHandler := user.NewHandler(userService)

	productService := product.NewService(product.NewPostgresRepository(db))
	productHandler := product.NewHandler(productService)

	categoryHandler := category.NewHandler(category.NewService(category.NewPostgresRepository(db)))

	pickupService := pickup.NewService(pickup.NewPostgresRepository(db))
	pickupHandler := pickup.NewHandler(pickupService)

	cartService := cart.NewService(cart.NewPostgresRepository(db), userService, productService)
	cartHandler := cart.NewHandler(cartService)

	favoriteService := favorite.NewService(favorite.NewPostgresRepository(db), userService, productService)
	favoriteHandler := favorite.NewHandler(favoriteService)

	var receiptNotifier order.ReceiptNotifier
	var codeSender verification.CodeSender
	if emailSender != nil {
		receiptNotifier = emailSender
		codeSender = emailSender
	}

	orderService := order.NewService(
		order.NewPostgresRepository(db, cfg.TxTimeout),
		userService, productService, pickupService, cartService,
		receiptNotifier,
		order.Options{RestockOnCancel: cfg.RestockOnCancel},
	)
	orderHandler := order.NewHandler(orderService)

	verificationService := verification.NewService(
		verification.NewRedisStore(redisClient), codeSender, userService)
	verificationHandler := verification.NewHandler(verificationService)

	// Public surface first: sign-in/up, confirmation codes, catalog
	// browsing, pickup-point listing.
	userHandler.RegisterPublicRoutes(app)
	verificationHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	pickupHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	userHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterProtectedRoutes(app)
	categoryHandler.RegisterProtectedRoutes(app)
	pickupHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	favoriteHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.Fatal(app.Listen(cfg.Addr))
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(dbURL string) *sql.DB {
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}
	return db
}

func requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	log.Printf("%s %s %d %v", c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
	return err
}
