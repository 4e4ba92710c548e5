// Command corridord is the corridor analysis service. It serves the REST
// API, applies schema migrations and seeds the corridor data on startup.
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/analysis"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/api"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/archive"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/platform"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/profile"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/recalc"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/internal/registry"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/config"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/corridor"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/fragility"
	"github.com/sanjujohn8055/berlin-hamburg-corridor-analysis-sub001/pkg/scoring"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "corridord.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := registry.NewStore(db)
	if seedPath := cfg.Analysis.SeedPath; seedPath != "" {
		if _, err := os.Stat(seedPath); err == nil {
			seed, err := corridor.LoadSeed(seedPath)
			if err != nil {
				log.Fatalf("load corridor seed: %v", err)
			}
			if err := store.ApplySeed(ctx, seed); err != nil {
				log.Fatalf("apply corridor seed: %v", err)
			}
			log.Printf("seeded %d stations, %d connections", len(seed.Stations), len(seed.Connections))
		}
	}

	arc, err := newArchive(ctx, cfg.Archive)
	if err != nil {
		log.Fatalf("configure archive: %v", err)
	}

	engine := scoring.NewEngine(store, time.Duration(cfg.Analysis.ThrottleMs)*time.Millisecond)
	analyzer := fragility.NewAnalyzer(store, store)

	coordinator := recalc.NewCoordinator()
	profileSvc := profile.NewService(db, coordinator)
	analysisSvc := analysis.NewService(db, store, store, engine, analyzer, arc)
	profileSvc.RegisterRecalculationSubscriber(analysisSvc)

	handler := api.NewHandler(db, profileSvc, analysisSvc, store, nil)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Reload tunables when the config file changes on disk.
	go func() {
		err := config.Watch(ctx, configPath, func(next *config.Config) {
			engine.SetThrottle(time.Duration(next.Analysis.ThrottleMs) * time.Millisecond)
		})
		if err != nil {
			log.Printf("config watch disabled: %v", err)
		}
	}()

	go func() {
		log.Printf("starting corridord on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

// newArchive selects the report archive backend from config.
func newArchive(ctx context.Context, cfg config.ArchiveConfig) (archive.Client, error) {
	switch cfg.Backend {
	case "gcs":
		return archive.NewGCSArchive(ctx, cfg.GCSBucket)
	case "s3":
		return archive.NewS3Archive(ctx, archive.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		})
	default:
		dir := cfg.LocalDir
		if dir == "" {
			dir = "/tmp/corridor-reports"
		}
		return archive.NewLocalArchive(dir), nil
	}
}
