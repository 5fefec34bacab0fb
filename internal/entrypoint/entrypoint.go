package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cwahlfeldt/bulk-post-importer/internal/audit"
	"github.com/cwahlfeldt/bulk-post-importer/internal/config"
	"github.com/cwahlfeldt/bulk-post-importer/internal/database"
	http_controllers "github.com/cwahlfeldt/bulk-post-importer/internal/http"
	"github.com/cwahlfeldt/bulk-post-importer/internal/importer"
	"github.com/cwahlfeldt/bulk-post-importer/internal/notices"
	"github.com/cwahlfeldt/bulk-post-importer/internal/pluginfields"
	"github.com/cwahlfeldt/bulk-post-importer/internal/scheduler"
	"github.com/cwahlfeldt/bulk-post-importer/internal/staging"
)

// DefaultAuthorID is the operator identity attached to every created post;
// there is no user model, requests run as a single operator.
const DefaultAuthorID = uint(1)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until interrupted, then shuts down gracefully.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires every component together and serves until interrupted.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Bulk Post Importer v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	stagingStore := staging.NewStore(db.DB, cfg.Staging.TTL)
	fieldService := pluginfields.NewService(db.DB, cfg.PluginFields.Enabled)
	runner := importer.NewRunner(db, fieldService, DefaultAuthorID)
	auditor := audit.NewAuditor(cfg.Audit.Dir)

	// Session-backed notices share the SQLite database
	var noticeManager *notices.Manager
	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Printf("WARNING: Failed to get SQL DB for sessions, notices disabled: %v", err)
	} else {
		noticeManager, err = notices.NewManager(sqlDB, cfg.Session.Lifetime, cfg.Session.SecureCookies)
		if err != nil {
			log.Printf("WARNING: Failed to initialize session manager, notices disabled: %v", err)
			noticeManager = nil
		}
	}

	// Staged uploads expire after the TTL; the cron purges the leftovers
	cleanup := scheduler.NewStagingCleanupScheduler(stagingStore, cfg.Staging.CleanupSchedule)
	if err := cleanup.Start(); err != nil {
		log.Printf("WARNING: Failed to start staging cleanup scheduler: %v", err)
	}

	var csrfSecret []byte
	if cfg.Session.CSRFSecret != "" {
		csrfSecret, err = hex.DecodeString(cfg.Session.CSRFSecret)
		if err != nil {
			csrfSecret = []byte(cfg.Session.CSRFSecret)
		}
	} else {
		log.Printf("WARNING: CSRF_SECRET is not set. CSRF protection is disabled.")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Staging:        stagingStore,
		Runner:         runner,
		Fields:         fieldService,
		Auditor:        auditor,
		NoticeManager:  noticeManager,
		UploadMaxBytes: cfg.Upload.MaxBytes,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Session.SecureCookies,
		Version:        version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		cleanup.Stop()
	})
}
