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

	appanalytics "github.com/jhoicas/Rental-api/internal/application/analytics"
	"github.com/jhoicas/Rental-api/internal/application/auth"
	"github.com/jhoicas/Rental-api/internal/application/billing"
	"github.com/jhoicas/Rental-api/internal/application/usecase"
	"github.com/jhoicas/Rental-api/internal/infrastructure/cache"
	"github.com/jhoicas/Rental-api/internal/infrastructure/catalog"
	"github.com/jhoicas/Rental-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/Rental-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Rental-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Rental-api/internal/interfaces/http"
	"github.com/jhoicas/Rental-api/pkg/config"
	"github.com/jhoicas/Rental-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("catalog", cfg.Catalog.Source).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, log); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	buildingRepo := postgres.NewBuildingRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Lookup de habitación/contrato y catálogo de servicios: Postgres o datos de ejemplo.
	contractUC := usecase.NewContractUseCase(contractRepo, roomRepo)
	var source catalog.Source = postgres.NewCatalog(pool)
	if cfg.Catalog.Source == config.CatalogMemory {
		source = catalog.NewMemory(cfg.Catalog.Latency)
	}
	if cfg.Cache.TTL > 0 {
		var store cache.Store = cache.NewMemoryStore()
		if cfg.Cache.RedisAddr != "" {
			rs, err := cache.NewRedisStore(ctx, cache.RedisConfig{
				Addr:     cfg.Cache.RedisAddr,
				Password: cfg.Cache.RedisPassword,
				DB:       cfg.Cache.RedisDB,
			})
			if err != nil {
				log.Warn().Err(err).Msg("redis no disponible, se usa caché en memoria")
			} else {
				store = rs
				defer rs.Close()
			}
		}
		cached := catalog.NewCached(source, store, cfg.Cache.TTL, log.Component("catalog"))
		contractUC.WithRoomCache(cached)
		source = cached
	}

	var publisher billing.InvoicePublisher = events.NopPublisher{}
	if cfg.MQTT.Enabled {
		mqttPub, err := events.NewMQTTPublisher(events.MQTTConfig{
			Broker:      cfg.MQTT.Broker,
			Username:    cfg.MQTT.Username,
			Password:    cfg.MQTT.Password,
			ClientID:    cfg.MQTT.ClientID,
			TopicPrefix: cfg.MQTT.TopicPrefix,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión MQTT")
		}
		if !mqttPub.Connected() {
			log.Warn().Str("broker", cfg.MQTT.Broker).Msg("broker MQTT sin respuesta, se reintenta en segundo plano")
		}
		mqttPub.WithPublishTimeout(cfg.MQTT.PublishTimeout)
		defer mqttPub.Close()
		publisher = mqttPub
	}

	draftUC := billing.NewDraftUseCase(source, source, invoiceRepo, billing.Rates{
		Electricity: cfg.Billing.DefaultElectricityRate,
		Water:       cfg.Billing.DefaultWaterRate,
	})
	createInvoiceUC := billing.NewCreateInvoiceUseCase(txRunner, source, invoiceRepo, publisher, log.Component("billing")).
		WithPublishTimeout(cfg.MQTT.PublishTimeout)
	// PDF: re-deriva desde el snapshot guardado
	invoicePDFUC := billing.NewPDFUseCase(invoiceRepo, infrapdf.NewMarotoPDFGenerator(), log.Component("pdf"))

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Rental API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		BuildingUC:    usecase.NewBuildingUseCase(buildingRepo),
		RoomUC:        usecase.NewRoomUseCase(roomRepo, buildingRepo, source),
		ContractUC:    contractUC,
		ServiceUC:     usecase.NewServiceUseCase(source),
		DraftUC:       draftUC,
		CreateInvoice: createInvoiceUC,
		PDFUC:         invoicePDFUC,
		DashboardUC:   appanalytics.NewDashboardUseCase(dashboardRepo),
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

	log.Info().Msg("aplicación detenida")
}
