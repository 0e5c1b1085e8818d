package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"go.uber.org/zap"

	"github.com/delivers/marketplace-service/config"
	"github.com/delivers/marketplace-service/internal/auth"
	"github.com/delivers/marketplace-service/internal/model"
	"github.com/delivers/marketplace-service/internal/pkg/cache"
	"github.com/delivers/marketplace-service/internal/pkg/database"
	"github.com/delivers/marketplace-service/internal/pkg/logger"

	orderH "github.com/delivers/marketplace-service/internal/order/handler"
	orderRepoPkg "github.com/delivers/marketplace-service/internal/order/repository"
	orderUCPkg "github.com/delivers/marketplace-service/internal/order/usecase"

	paymentH "github.com/delivers/marketplace-service/internal/payment/handler"
	paymentRepoPkg "github.com/delivers/marketplace-service/internal/payment/repository"
	paymentUCPkg "github.com/delivers/marketplace-service/internal/payment/usecase"

	productH "github.com/delivers/marketplace-service/internal/product/handler"
	productRepoPkg "github.com/delivers/marketplace-service/internal/product/repository"
	productUCPkg "github.com/delivers/marketplace-service/internal/product/usecase"

	userH "github.com/delivers/marketplace-service/internal/user/handler"
	userRepoPkg "github.com/delivers/marketplace-service/internal/user/repository"
	userUCPkg "github.com/delivers/marketplace-service/internal/user/usecase"
)

func main() {
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     false,
		DisableStacktrace: false,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
		logConfig.DisableCaller = cfg.Logger.DisableCaller
		logConfig.DisableStacktrace = cfg.Logger.DisableStacktrace
	}
	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	db, err := database.NewPostgres(&database.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	if err := database.ApplySchema(context.Background(), db); err != nil {
		appLogger.Fatal("Could not apply database schema", zap.Error(err))
	}

	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		// Catalog caching and stock locks degrade gracefully without redis.
		appLogger.Warn("Could not connect to Redis, running without cache", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
		appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	}

	tokens := auth.NewTokenManager(cfg.JWT.SecretKey, cfg.JWT.TokenTTL)

	userRepo := userRepoPkg.NewPGRepository(db)
	productRepo := productRepoPkg.NewPGRepository(db)
	orderRepo := orderRepoPkg.NewPGRepository(db)
	paymentRepo := paymentRepoPkg.NewPGRepository(db)

	userUC := userUCPkg.NewUserUseCase(userRepo, tokens, appLogger)
	productUC := productUCPkg.NewProductUseCase(productRepo, redisClient, appLogger)
	orderUC := orderUCPkg.NewOrderUseCase(orderRepo, appLogger)
	paymentUC := paymentUCPkg.NewPaymentUseCase(paymentRepo, appLogger)

	userHandler := userH.NewUserHandler(userUC, appLogger)
	productHandler := productH.NewProductHandler(productUC, appLogger)
	orderHandler := orderH.NewOrderHandler(orderUC, appLogger)
	paymentHandler := paymentH.NewPaymentHandler(paymentUC, appLogger)

	e := echo.New()
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(requestLogger(appLogger))

	authn := auth.Middleware(tokens)
	consumerOnly := auth.RequireAccountType(model.AccountTypeConsumer)
	businessOnly := auth.RequireAccountType(model.AccountTypeBusiness)
	adminOnly := auth.RequireAccountType(model.AccountTypeAdmin)

	api := e.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", func(c *echo.Context) error { return userHandler.Register(c) })
		authGroup.POST("/login", func(c *echo.Context) error { return userHandler.Login(c) })
		authGroup.GET("/me", func(c *echo.Context) error { return userHandler.Me(c) }, authn)
	}

	api.GET("/products", func(c *echo.Context) error { return productHandler.ListPublic(c) })
	api.GET("/products/:id", func(c *echo.Context) error { return productHandler.GetProduct(c) })
	api.POST("/qr/scan", func(c *echo.Context) error { return productHandler.ScanQR(c) })

	business := api.Group("/business")
	business.Use(authn, businessOnly)
	{
		business.GET("/products", func(c *echo.Context) error { return productHandler.ListMine(c) })
		business.POST("/products", func(c *echo.Context) error { return productHandler.Create(c) })
		business.PUT("/products/:id", func(c *echo.Context) error { return productHandler.Update(c) })
		business.DELETE("/products/:id", func(c *echo.Context) error { return productHandler.Delete(c) })
		business.POST("/products/:id/stock", func(c *echo.Context) error { return productHandler.AdjustStock(c) })
		business.POST("/documents", func(c *echo.Context) error { return userHandler.SubmitDocument(c) })
		business.GET("/documents", func(c *echo.Context) error { return userHandler.ListDocuments(c) })
		business.GET("/payments", func(c *echo.Context) error { return paymentHandler.ListPayments(c) })
	}

	admin := api.Group("/admin")
	admin.Use(authn, adminOnly)
	{
		admin.GET("/pending-sellers", func(c *echo.Context) error { return userHandler.PendingSellers(c) })
		admin.POST("/verify-seller", func(c *echo.Context) error { return userHandler.VerifySeller(c) })
		admin.PUT("/orders/:id/status", func(c *echo.Context) error { return orderHandler.UpdateStatus(c) })
	}

	orders := api.Group("/orders")
	orders.Use(authn, consumerOnly)
	{
		orders.POST("", func(c *echo.Context) error { return orderHandler.PlaceOrder(c) })
		orders.GET("", func(c *echo.Context) error { return orderHandler.ListOrders(c) })
		orders.GET("/:id", func(c *echo.Context) error { return orderHandler.GetOrder(c) })
	}

	e.GET("/health", func(c *echo.Context) error {
		return (*c).JSON(http.StatusOK, map[string]string{"status": "healthy"})
	})

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, e, port, appLogger); err != nil {
		appLogger.Fatal("failed to serve", zap.Error(err))
	}
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight
// requests before returning.
func serve(ctx context.Context, e *echo.Echo, address string, log logger.ZapLogger) error {
	log.Info("Starting HTTP server", zap.String("address", address))

	sc := echo.StartConfig{
		Address:         address,
		GracefulTimeout: 10 * time.Second,
	}
	if err := sc.Start(ctx, e); err != nil && err != http.ErrServerClosed {
		return err
	}

	log.Info("Server stopped")
	return nil
}

func requestLogger(log logger.ZapLogger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			start := time.Now()

			err := next(c)

			req := (*c).Request()
			log.Info("request",
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.Int64("latency_ms", time.Since(start).Milliseconds()),
				zap.String("request_id", (*c).Response().Header().Get(echo.HeaderXRequestID)),
				zap.String("remote_ip", (*c).RealIP()),
			)

			return err
		}
	}
}
