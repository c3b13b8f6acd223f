package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/stock-core/internal/application/stock"
	"github.com/jhoicas/stock-core/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stock-core/internal/interfaces/http"
	"github.com/jhoicas/stock-core/pkg/config"
	"github.com/jhoicas/stock-core/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas fuera de transacción).
	stockRepo := postgres.NewStockRepository(pool)
	stockProductRepo := postgres.NewStockProductRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Puntos de extensión: se registran aquí, en el punto de composición.
	// Sin registro global ni lookup ambiental dentro del motor.
	var (
		updateHandlers  []stock.UpdateHandler
		postCreateHooks []stock.PostCreateHook
		postUpdateHooks []stock.PostUpdateHook
		expanders       []stock.CollectionExpander
	)

	reader := stock.NewReader(stockRepo, stockProductRepo, expanders)
	productReader := stock.NewProductReader(stockRepo, stockProductRepo, productRepo)
	calculator := stock.NewCalculator(productReader)
	writer := stock.NewWriter(txRunner, productReader, updateHandlers)
	creator := stock.NewCreator(txRunner, postCreateHooks)
	updater := stock.NewUpdater(txRunner, postUpdateHooks)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Reader:        reader,
		ProductReader: productReader,
		Calculator:    calculator,
		Writer:        writer,
		Creator:       creator,
		Updater:       updater,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
