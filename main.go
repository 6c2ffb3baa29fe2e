package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Alice-Yoon/Katachii-Back--sample/configs"
	cartctl "github.com/Alice-Yoon/Katachii-Back--sample/controllers/cart"
	paymentsctl "github.com/Alice-Yoon/Katachii-Back--sample/controllers/payments"
	productsctl "github.com/Alice-Yoon/Katachii-Back--sample/controllers/products"
	"github.com/Alice-Yoon/Katachii-Back--sample/middlewares"
	"github.com/Alice-Yoon/Katachii-Back--sample/routes"
	"github.com/Alice-Yoon/Katachii-Back--sample/services"
	"github.com/Alice-Yoon/Katachii-Back--sample/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := configs.Load()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := configs.ConnectDB(ctx, cfg.MongoURI)
	if err != nil {
		sugar.Fatalw("database initialization error", "error", err.Error())
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			sugar.Errorw("mongodb disconnect error", "error", err.Error())
		}
	}()

	productStore := store.NewProductStore(configs.GetCollection(client, cfg.DBName, "products"))
	userStore := store.NewUserStore(configs.GetCollection(client, cfg.DBName, "users"))
	paymentStore := store.NewPaymentStore(configs.GetCollection(client, cfg.DBName, "payments"))

	settlement := services.NewSettlementService(productStore, userStore, paymentStore, logger)
	lifecycle := services.NewLifecycleService(productStore, userStore, paymentStore, logger)
	account := services.NewAccountService(productStore, userStore, logger)

	auth := middlewares.NewAuth(cfg.JWTSecret)

	app := fiber.New()
	app.Use(recover.New())

	routes.PaymentRoutes(app, auth, paymentsctl.NewController(settlement, lifecycle, logger))
	routes.UserRoutes(app, auth, cartctl.NewController(account, logger))
	routes.ProductRoutes(app, auth, productsctl.NewController(productStore, logger))

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sugar.Infow("starting server", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")
		if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
