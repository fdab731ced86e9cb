package main

import (
	"fmt"
	"log"

	"lesenhub/internal/audit"
	"lesenhub/internal/config"
	"lesenhub/internal/event"
	"lesenhub/internal/handler"
	"lesenhub/internal/notify"
	"lesenhub/internal/notify/noop"
	"lesenhub/internal/notify/ses"
	"lesenhub/internal/port"
	"lesenhub/internal/repository/postgres"
	"lesenhub/internal/router"
	"lesenhub/internal/service"
	s3storage "lesenhub/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	companyRepo := postgres.NewCompanyRepo(db)
	licenseTypeRepo := postgres.NewLicenseTypeRepo(db)
	requirementRepo := postgres.NewRequirementRepo(db)
	appRepo := postgres.NewApplicationRepo(db)
	documentRepo := postgres.NewDocumentRepo(db)
	auditRepo := postgres.NewAuditRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Event sinks: audit trail plus applicant notifications, both best-effort.
	var notifier port.Notifier
	switch cfg.Email.Provider {
	case "ses":
		notifier, err = ses.NewSESNotifier(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.FrontendURL)
		if err != nil {
			return fmt.Errorf("failed to initialize SES notifier: %w", err)
		}
	default:
		notifier = noop.NewNoopNotifier()
	}
	auditSink := audit.NewSink(auditRepo)
	notifySink := notify.NewSink(notifier)
	events := event.Fanout(auditSink, notifySink)

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	appSvc := service.NewApplicationService(appRepo, documentRepo, requirementRepo, licenseTypeRepo, companyRepo, userRepo, events)
	docSvc := service.NewDocumentService(appRepo, documentRepo, requirementRepo, s3Client, events, &cfg.S3)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	appH := handler.NewApplicationHandler(appSvc)
	docH := handler.NewDocumentHandler(docSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, appH, docH, healthH)

	if !cfg.Features.ApplicationsEnabled {
		log.Printf("application surface is disabled; /permohonan routes answer 404")
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
