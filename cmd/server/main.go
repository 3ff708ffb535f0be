package main

import (
	"context"
	"errors"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"docstudio/internal/auth"
	"docstudio/internal/catalog"
	"docstudio/internal/config"
	models "docstudio/internal/domain/models/docgen"
	"docstudio/internal/domain/repositories"
	docgenRepo "docstudio/internal/domain/repositories/docgen"
	"docstudio/internal/handler"
	"docstudio/internal/middleware"
	"docstudio/internal/repository/memory"
	"docstudio/internal/repository/postgres"
	postgresDocgen "docstudio/internal/repository/postgres/docgen"
	serviceDocgen "docstudio/internal/service/docgen"
	serviceLLM "docstudio/internal/service/llm"
)

// stores groups the repositories the services need
type stores struct {
	rules     docgenRepo.RuleRepository
	documents docgenRepo.DocumentRepository
	history   docgenRepo.HistoryRepository
	txManager repositories.TransactionManager
	close     func()
}

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	var logOut io.Writer = os.Stdout
	if cfg.LogDir != "" {
		logFile, err := config.SetupLogFile(cfg.LogDir, "server", cfg.LogMaxFiles)
		if err != nil {
			log.Fatalf("Failed to setup log file: %v", err)
		}
		defer logFile.Close()
		logOut = io.MultiWriter(os.Stdout, logFile)
	}

	logger := config.NewLogger(logOut, cfg.Debug)
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
		"storage", storageKind(cfg),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer st.close()

	if err := seedRulesIfEmpty(ctx, st.rules, cat.Rules(), logger); err != nil {
		log.Fatalf("Failed to seed rules: %v", err)
	}

	generators := serviceLLM.NewGeneratorRegistry(cfg, logger)

	docgenHandler := handler.NewDocgenHandler(
		serviceDocgen.NewRuleService(st.rules, logger),
		serviceDocgen.NewGenerationService(st.rules, st.documents, st.history, st.txManager, cat, generators, logger),
		serviceDocgen.NewDocumentService(st.documents, st.txManager, logger),
		serviceDocgen.NewGraphService(st.documents, logger),
		serviceDocgen.NewHistoryService(st.history, st.documents, logger),
		cfg.DefaultAuthor,
		logger,
	)

	logger.Info("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	docgenHandler.Register(mux)

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Logger → Auth → Routes
	var h http.Handler = mux

	if cfg.SupabaseJWKSURL != "" {
		jwtVerifier, err := auth.NewJWTVerifier(ctx, cfg.SupabaseJWKSURL, logger)
		if err != nil {
			log.Fatalf("Failed to create JWT verifier: %v", err)
		}
		defer jwtVerifier.Close()
		h = middleware.Auth(jwtVerifier, cfg.Environment == "prod", logger)(h)
	} else {
		logger.Warn("SUPABASE_URL not set, requests are not authenticated")
	}

	h = middleware.RequestLogger(logger)(h)
	h = middleware.Recovery(logger)(h)

	// CORS - must be outermost to answer OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation waits on the LLM
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}

func storageKind(cfg *config.Config) string {
	if cfg.DatabaseURL == "" {
		return "memory"
	}
	return "postgres"
}

// openStores connects to PostgreSQL when DATABASE_URL is set, otherwise keeps everything in memory
func openStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*stores, error) {
	if cfg.DatabaseURL == "" {
		store := memory.NewStore()
		return &stores{
			rules:     store.Rules(),
			documents: store.Documents(),
			history:   store.History(),
			txManager: store,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.EnsureSchema(ctx, pool, tables); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("database connected",
		"max_conns", pool.Config().MaxConns,
		"min_conns", pool.Config().MinConns,
	)

	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	return &stores{
		rules:     postgresDocgen.NewRuleRepository(repoConfig),
		documents: postgresDocgen.NewDocumentRepository(repoConfig),
		history:   postgresDocgen.NewHistoryRepository(repoConfig),
		txManager: postgres.NewTransactionManager(pool, logger),
		close:     pool.Close,
	}, nil
}

// seedRulesIfEmpty loads the embedded rule set into an empty rule table
func seedRulesIfEmpty(ctx context.Context, repo docgenRepo.RuleRepository, rules []models.RuleBase, logger *slog.Logger) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for i := range rules {
		if err := repo.Upsert(ctx, &rules[i]); err != nil {
			return err
		}
	}
	logger.Info("rule catalog seeded", "count", len(rules))
	return nil
}
