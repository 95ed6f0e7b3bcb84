package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/wealthmate/wealthmate/internal/advisor"
	"github.com/wealthmate/wealthmate/internal/api/handlers"
	"github.com/wealthmate/wealthmate/internal/api/middleware"
	"github.com/wealthmate/wealthmate/internal/categorize"
	"github.com/wealthmate/wealthmate/internal/config"
	"github.com/wealthmate/wealthmate/internal/ingest"
	"github.com/wealthmate/wealthmate/internal/jobs"
	"github.com/wealthmate/wealthmate/internal/jobs/inmemory"
	"github.com/wealthmate/wealthmate/internal/logger"
	"github.com/wealthmate/wealthmate/internal/store"
	"github.com/wealthmate/wealthmate/internal/textgen"
	"github.com/wealthmate/wealthmate/internal/textgen/gemini"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New()
		l.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.NewWithLevel(cfg.Logger.Level)

	ctx := context.Background()

	// Transaction store
	var txStore store.TransactionStore
	switch cfg.Store.Backend {
	case "postgres":
		pg, err := store.NewPostgres(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to postgres")
		}
		defer pg.Close()
		txStore = pg
		log.Info().Str("backend", "postgres").Msg("Transaction store ready")
	case "memory":
		txStore = store.NewMemory()
		log.Warn().Msg("Using in-memory transaction store - data is lost on restart")
	default:
		log.Fatal().Str("backend", cfg.Store.Backend).Msg("Unknown store backend")
	}

	// Text generator, shared by the categorizer and the advisor
	var gen textgen.Generator
	if cfg.Gemini.APIKey != "" {
		gen = gemini.NewClient(cfg.Gemini.Model)
		log.Info().Str("model", cfg.Gemini.Model).Msg("AI tier enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set - using fallback rules and simulated advice")
	}

	categorizer := categorize.New(gen, cfg.Ingest.MaxDescriptors, log)
	ingestor := ingest.New(txStore, categorizer, ingest.Options{
		MinKeywordHits: cfg.Ingest.MinKeywordHits,
		SkipDuplicates: cfg.Ingest.SkipDuplicates,
	}, log)

	// Job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job *jobs.IngestStatementJob) error {
		log.Info().
			Str("job_id", job.JobID).
			Str("owner_id", job.OwnerID).
			Str("file_name", job.FileName).
			Msg("Processing ingestion job")

		res, err := ingestor.Ingest(ctx, job.OwnerID, job.Payload)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", job.JobID).
				Msg("Ingestion failed")
			return err
		}

		job.Committed = len(res.Transactions)
		job.SkippedRows = res.SkippedRows
		job.DuplicateRows = res.DuplicateRows
		job.FailedCommits = res.FailedCommits
		job.Tier = string(res.Tier)

		log.Info().
			Str("job_id", job.JobID).
			Int("committed", job.Committed).
			Msg("Ingestion completed")
		return nil
	}

	go func() {
		log.Info().Msg("Starting ingestion worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Ingestion worker stopped with error")
		}
	}()

	// Handlers
	statementsHandler := handlers.NewStatementsHandler(jobQueue, 0, log)
	transactionsHandler := handlers.NewTransactionsHandler(txStore, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)
	adviceHandler := handlers.NewAdviceHandler(advisor.New(gen, log), txStore, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/statements", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			statementsHandler.Upload(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.List(w, r)
		case http.MethodPost:
			transactionsHandler.Create(w, r)
		case http.MethodDelete:
			transactionsHandler.Purge(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
			if id == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
				return
			}
			transactionsHandler.Delete(w, r, id)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobID := strings.TrimPrefix(r.URL.Path, "/api/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/advice", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			adviceHandler.Get(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(
					middleware.Owner(mux),
				),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
