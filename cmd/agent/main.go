package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Inventario-patio/internal/application/inventory"
	"github.com/jhoicas/Inventario-patio/internal/application/qrcode"
	"github.com/jhoicas/Inventario-patio/internal/application/receiving"
	syncapp "github.com/jhoicas/Inventario-patio/internal/application/sync"
	"github.com/jhoicas/Inventario-patio/internal/infrastructure/localdb"
	"github.com/jhoicas/Inventario-patio/internal/infrastructure/postgres"
	infras3 "github.com/jhoicas/Inventario-patio/internal/infrastructure/s3"
	httpRouter "github.com/jhoicas/Inventario-patio/internal/interfaces/http"
	"github.com/jhoicas/Inventario-patio/pkg/config"
	"github.com/jhoicas/Inventario-patio/pkg/logger"
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
		Msg("iniciando agente de sincronización")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Almacenamiento local del dispositivo (cola offline + caché)
	store, err := localdb.Open(cfg.Local.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("base de datos local")
	}
	defer store.Close()

	// Pool remoto sin ping: el agente puede arrancar sin conectividad
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de PostgreSQL")
	}
	defer pool.Close()

	materialRepo := postgres.NewMaterialRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	qrRepo := postgres.NewQRCodeRepository(pool)
	receivingRepo := postgres.NewReceivingRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	issueRepo := postgres.NewIssueRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	uploader, err := infras3.NewUploader(cfg.S3)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de fotos")
	}

	inventoryUC := inventory.NewUseCase(
		txRunner, materialRepo, locationRepo, movementRepo,
		issueRepo, shipmentRepo, auditRepo, log,
	)
	receivingUC := receiving.NewUseCase(
		txRunner, qrRepo, receivingRepo, auditRepo, uploader, log,
	)
	qrCodeUC := qrcode.NewUseCase(qrRepo, materialRepo)

	// Subsistema de sincronización
	queue := syncapp.NewQueue(store)
	cache := syncapp.NewCache(store, time.Duration(cfg.Sync.CacheTTLMinutes)*time.Minute)
	prober := postgres.NewProber(pool, 5*time.Second)
	monitor := syncapp.NewMonitor(prober, time.Duration(cfg.Sync.ProbeIntervalSeconds)*time.Second)
	executor := syncapp.NewActionExecutor(inventoryUC, receivingUC)
	manager := syncapp.NewManager(queue, executor, time.Duration(cfg.Sync.ActionTimeoutSeconds)*time.Second, log)
	dispatcher := syncapp.NewDispatcher(monitor, queue, executor, log)

	unwatch := manager.Watch(monitor)
	defer unwatch()
	go monitor.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		InventoryUC:   inventoryUC,
		ReceivingUC:   receivingUC,
		QRCodeUC:      qrCodeUC,
		AuditRepo:     auditRepo,
		DashboardRepo: dashboardRepo,
		Cache:         cache,
		Queue:         queue,
		Monitor:       monitor,
		Manager:       manager,
		Dispatcher:    dispatcher,
		Log:           log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando agente...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("agente detenido")
}
