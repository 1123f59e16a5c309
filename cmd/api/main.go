package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/Panneaux-api/internal/application/auth"
	"github.com/jhoicas/Panneaux-api/internal/application/billing"
	"github.com/jhoicas/Panneaux-api/internal/application/usecase"
	"github.com/jhoicas/Panneaux-api/internal/infrastructure/cache"
	"github.com/jhoicas/Panneaux-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Panneaux-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Panneaux-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Panneaux-api/internal/interfaces/http"
	"github.com/jhoicas/Panneaux-api/migrations"
	"github.com/jhoicas/Panneaux-api/pkg/config"
	"github.com/jhoicas/Panneaux-api/pkg/logger"
)

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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(pool, migrations.FS, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	// Redis es opcional: sin REDIS_ADDR las tasas se leen siempre de PostgreSQL.
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, se usará PostgreSQL")
		}
		defer redisClient.Close()
	}

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	taxRateRepo := postgres.NewTaxRateRepository(pool)
	lessorRepo := postgres.NewLessorRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	rateCache := cache.NewTaxRateCache(redisClient, taxRateRepo, cfg.Redis.TTL, log)
	calcMetrics := metrics.NewCalculationMetrics(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)
	httpMetrics := metrics.NewHTTPMetrics(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	moduleSvc := usecase.NewModuleService(companyRepo)
	taxRateUC := usecase.NewTaxRateUseCase(taxRateRepo, rateCache, rateCache, log)
	lessorUC := usecase.NewLessorUseCase(lessorRepo)

	calculateUC := billing.NewCalculateUseCase(companyRepo, rateCache, calcMetrics, log)
	documentUC := billing.NewDocumentUseCase(calculateUC, txRunner, documentRepo, log)
	pdfUC := billing.NewPDFUseCase(documentUC, companyRepo, infrapdf.NewMarotoPDFGenerator())

	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(httpRouter.Metrics(httpMetrics))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Panneaux API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:   companyUC,
		UserUC:      userUC,
		AuthUC:      authUC,
		TaxRateUC:   taxRateUC,
		CalculateUC: calculateUC,
		DocumentUC:  documentUC,
		PDFUC:       pdfUC,
		LessorUC:    lessorUC,
		Modules:     moduleSvc,
		JWTSecret:   cfg.JWT.Secret,
		Log:         log,
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
