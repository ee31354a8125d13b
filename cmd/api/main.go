package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/storefront-api/internal/application/authentication"
	"github.com/jhoicas/storefront-api/internal/application/usecase"
	"github.com/jhoicas/storefront-api/internal/infrastructure/identityprovider"
	"github.com/jhoicas/storefront-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/storefront-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/storefront-api/internal/interfaces/http"
	"github.com/jhoicas/storefront-api/pkg/config"
	"github.com/jhoicas/storefront-api/pkg/logger"
)

// @title                       Storefront API
// @version                     1.0
// @description                 Reconciliación de identidad y sesiones de clientes del storefront.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("identity_mode", cfg.Identity.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	redisClient, err := infraredis.New(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisClient.Close()

	verifier, err := identityprovider.New(ctx, cfg.Identity)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de identidad")
	}

	customerRepo := postgres.NewCustomerRepository(pool)
	attributeRepo := postgres.NewAttributeRepository(pool)

	reconciler := authentication.NewReconciler(customerRepo, attributeRepo, log)
	sessions := authentication.NewSessionService(infraredis.NewSessionStore(redisClient), customerRepo, authentication.SessionConfig{
		Secret:        cfg.JWT.Secret,
		Issuer:        cfg.JWT.Issuer,
		TTL:           cfg.JWT.SessionTTL,
		PersistentTTL: cfg.JWT.PersistentTTL,
	}, log)
	customerUC := usecase.NewCustomerUseCase(attributeRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	// El mismo documento lo sirve el registro de swag en /swagger/doc.json.
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Storefront API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:    cfg.App.Name,
		Verifier:   verifier,
		Reconciler: reconciler,
		Sessions:   sessions,
		CustomerUC: customerUC,
		Logger:     log,
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

	log.Info().Msg("aplicación detenida")
}
