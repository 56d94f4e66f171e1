package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/senyabanana/solosphere/internal/db"
	"github.com/senyabanana/solosphere/internal/handlers"
	"github.com/senyabanana/solosphere/internal/repository"
	"github.com/senyabanana/solosphere/internal/router"
	"github.com/senyabanana/solosphere/internal/router/config"
	"github.com/senyabanana/solosphere/internal/services"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal("cannot load config:", err)
	}
	if err = cfg.Validate(); err != nil {
		log.Fatal("invalid config:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stdout, "INFO: ", log.LstdFlags)

	var (
		jobRepo repository.JobRepository
		bidRepo repository.BidRepository
		store   handlers.Pinger
	)
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		mem := repository.NewMemoryStore()
		jobRepo, bidRepo, store = mem, mem, mem
		log.Println("using in-memory storage")
	default:
		if err = db.RunMigrations(cfg.MigrationURL, db.ConnString(cfg)); err != nil {
			log.Fatal(err)
		}
		log.Println("db migrated successfully")

		dbPool, err := db.InitDb(ctx, cfg)
		if err != nil {
			log.Fatalf("error initializing database: %v", err)
		}
		defer dbPool.Close()
		log.Println("pinged database, connection is ready")

		jobRepo = repository.NewPostgresJobRepository(dbPool)
		bidRepo = repository.NewPostgresBidRepository(dbPool)
		store = dbPool
	}

	session := services.NewSessionService(cfg.SecretKey, cfg.TokenTTL, cfg.Production())
	jobService := services.NewJobService(jobRepo)
	bidService := services.NewBidService(bidRepo)

	routes := router.InitRoutes(router.Handlers{
		Auth:    handlers.NewAuthHandler(session, logger),
		Jobs:    handlers.NewJobHandler(jobService, logger, cfg.RequestTimeout),
		Bids:    handlers.NewBidHandler(bidService, logger, cfg.RequestTimeout),
		Session: session,
		Store:   store,
		Logger:  logger,
		Timeout: cfg.RequestTimeout,
		Origins: cfg.Origins(),
	})

	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           routes,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("server is listening on %s...", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
