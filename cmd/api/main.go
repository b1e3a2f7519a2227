package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"uhs-recruit/internal/handler"
	"uhs-recruit/internal/model"
	"uhs-recruit/internal/repository"
	"uhs-recruit/internal/service"
	"uhs-recruit/internal/ws"
	"uhs-recruit/pkg/config"
	"uhs-recruit/pkg/database"
	"uhs-recruit/pkg/jwt"
	"uhs-recruit/pkg/logger"
	"uhs-recruit/pkg/razorpay"
	"uhs-recruit/pkg/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	if envErr != nil {
		log.Warn().Msg(".env file not found, relying on system env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 2. Setup Database
	db, err := database.ConnectDB(cfg.DB, cfg.App.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatal().Err(err).Msg("auto migrate failed")
	}

	// 3. Repositories
	adminRepo := repository.NewAdminUserRepo(db)
	userRepo := repository.NewUserRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	statusRepo := repository.NewCandidateStatusRepo(db)
	hrRepo := repository.NewHrRepo(db)
	candidateRepo := repository.NewCandidateRepo(db)
	menuRepo := repository.NewMenuPermissionRepo(db)
	paymentRepo := repository.NewPaymentRepo(db)

	// 4. Infrastructure
	wsHub := ws.NewHub(log)
	go wsHub.Run(ctx)

	store, err := storage.New(ctx, cfg.Upload)
	if err != nil {
		log.Fatal().Err(err).Msg("storage setup failed")
	}
	gateway := razorpay.New(cfg.Razorpay)
	signer := jwt.NewSigner(cfg.CVLink.Secret, cfg.CVLink.TTL)

	// 5. Services
	authService := service.NewAuthService(adminRepo, userRepo, sessionRepo, cfg.Session.TTL)
	statusService := service.NewCandidateStatusService(statusRepo)
	candidateService := service.NewCandidateService(candidateRepo, hrRepo, signer, wsHub)
	applicationService := service.NewApplicationService(candidateRepo, userRepo, adminRepo, cfg.Apply)
	hrService := service.NewHrService(hrRepo)
	incentiveService := service.NewIncentiveService(hrRepo, candidateRepo)
	menuService := service.NewMenuPermissionService(menuRepo, adminRepo, hrRepo)
	vendorService := service.NewVendorService(adminRepo, hrRepo, candidateRepo, paymentRepo)
	paymentService := service.NewPaymentService(paymentRepo, gateway)
	uploadService := service.NewUploadService(store, cfg.Upload.MaxBytes)
	dashService := service.NewDashboardService(candidateRepo, hrRepo)

	// 6. Seed
	seed(ctx, log, cfg, statusRepo, vendorService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: handler.ErrorHandler(log),
		BodyLimit:    int(cfg.Upload.MaxBytes) + 1<<20,
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	if cfg.Upload.Provider == "local" {
		app.Static(cfg.Upload.PublicPath, cfg.Upload.Dir)
	}

	handler.Register(app, handler.Routes{
		ServiceName: cfg.App.Name,
		InternalKey: cfg.Session.InternalAPIKey,
		AuthService: authService,
		Hub:         wsHub,
		Log:         log,
		Auth:        handler.NewAuthHandler(authService, log),
		Statuses:    handler.NewCandidateStatusHandler(statusService, log),
		Candidates:  handler.NewCandidateHandler(candidateService, applicationService, log),
		Vendor:      handler.NewVendorHandler(hrService, incentiveService, menuService, log),
		Billing:     handler.NewBillingHandler(paymentService, vendorService, log),
		Uploads:     handler.NewUploadHandler(uploadService, log),
		Dashboard:   handler.NewDashboardHandler(dashService, log),
		Locations:   handler.NewLookupHandler(service.NewLookupService(repository.NewLocationRepo(db), "Location"), "Location", log),
		OutletTypes: handler.NewLookupHandler(service.NewLookupService(repository.NewOutletTypeRepo(db), "Outlet type"), "Outlet type", log),
		Positions:   handler.NewLookupHandler(service.NewLookupService(repository.NewPositionRepo(db), "Position"), "Position", log),
	})

	// 8. Graceful Shutdown
	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("listening")
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("server exited")
}

// seed installs the default candidate statuses and the bootstrap super admin. Failures are logged, not fatal.
func seed(ctx context.Context, log *logger.Logger, cfg *config.Config, statuses repository.CandidateStatusRepository, vendors service.VendorService) {
	if err := statuses.SeedDefaults(ctx); err != nil {
		log.Warn().Err(err).Msg("seed candidate statuses failed")
	}

	if cfg.SuperUser.Email == "" || cfg.SuperUser.Password == "" {
		return
	}
	created, err := vendors.EnsureSuperAdmin(ctx, cfg.SuperUser.Email, cfg.SuperUser.Password)
	switch {
	case err != nil:
		log.Warn().Err(err).Msg("seed super admin failed")
	case created:
		log.Info().Str("email", cfg.SuperUser.Email).Msg("super admin created")
	}
}
