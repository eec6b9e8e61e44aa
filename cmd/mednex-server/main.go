package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mednex/mednex/internal/config"
	"github.com/mednex/mednex/internal/domain/admin"
	"github.com/mednex/mednex/internal/domain/chat"
	"github.com/mednex/mednex/internal/domain/explanation"
	"github.com/mednex/mednex/internal/domain/extraction"
	"github.com/mednex/mednex/internal/domain/graph"
	"github.com/mednex/mednex/internal/domain/history"
	"github.com/mednex/mednex/internal/domain/identity"
	"github.com/mednex/mednex/internal/domain/matcher"
	"github.com/mednex/mednex/internal/platform/auth"
	"github.com/mednex/mednex/internal/platform/db"
	"github.com/mednex/mednex/internal/platform/llm"
	"github.com/mednex/mednex/internal/platform/middleware"
)

// catalogScanLimit bounds how many catalog entries the treatment lookup
// scans per request. The curated disease catalog is small; anything past
// this is ignored.
const catalogScanLimit = 500

// CatalogTreatments adapts an admin.DiseaseRepository to the
// graph.TreatmentSource interface, avoiding circular imports between the
// graph and admin packages.
type CatalogTreatments struct {
	diseases admin.DiseaseRepository
}

// NewCatalogTreatments creates a new adapter.
func NewCatalogTreatments(diseases admin.DiseaseRepository) *CatalogTreatments {
	return &CatalogTreatments{diseases: diseases}
}

// TreatmentsForDisease implements graph.TreatmentSource. The catalog stores
// treatment as one comma-separated text field; each entry becomes a graph
// node of its own.
func (t *CatalogTreatments) TreatmentsForDisease(ctx context.Context, disease string) ([]string, error) {
	all, err := t.diseases.List(ctx, 0, catalogScanLimit)
	if err != nil {
		return nil, err
	}

	want := strings.ToLower(strings.TrimSpace(disease))
	for _, d := range all {
		if strings.ToLower(strings.TrimSpace(d.Name)) != want {
			continue
		}
		var list []string
		for _, part := range strings.Split(d.Treatment, ",") {
			if part = strings.TrimSpace(part); part != "" {
				list = append(list, part)
			}
		}
		return list, nil
	}
	return nil, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "mednex-server",
		Short: "MedNex symptom checker API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(adminCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MedNex API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	// migrate up
	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL must be set to run migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	// migrate status
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL must be set to inspect migrations")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	// migrate down - keep as warning
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Rollback last migration (not supported)",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("WARNING: migrate down is destructive and not supported by the built-in runner.")
			fmt.Println("Restore the database from a backup instead.")
			return nil
		},
	})

	return cmd
}

func adminCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage admin accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL must be set to create an admin account")
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			tokens := auth.TokenConfig{
				Secret: []byte(cfg.JWTSecret),
				TTL:    time.Duration(cfg.TokenTTL()) * time.Minute,
			}
			svc := identity.NewService(identity.NewRepoPG(pool), tokens, zerolog.Nop())

			user, err := svc.Register(ctx, email, name, password, "admin")
			if err != nil {
				return fmt.Errorf("failed to create admin account: %w", err)
			}

			fmt.Printf("Admin account created.\n")
			fmt.Printf("  Email: %s\n", user.Email)
			fmt.Printf("  Role:  %s\n", user.Role)
			fmt.Println("Change the password after first login.")
			return nil
		},
	}
	createCmd.Flags().String("email", "", "Admin email address (required)")
	createCmd.Flags().String("password", "", "Admin password (required)")
	createCmd.Flags().String("name", "Admin User", "Admin full name")
	createCmd.MarkFlagRequired("email")
	createCmd.MarkFlagRequired("password")
	cmd.AddCommand(createCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	// Database (optional; in-memory storage otherwise)
	ctx := context.Background()
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
	} else {
		logger.Warn().Msg("DATABASE_URL not set; accounts and history are stored in memory")
	}

	// Repositories
	var (
		userRepo    identity.Repository
		diseaseRepo admin.DiseaseRepository
		symptomRepo admin.SymptomRepository
		recordRepo  history.Repository
		explainRepo explanation.Repo
	)
	if pool != nil {
		userRepo = identity.NewRepoPG(pool)
		diseaseRepo = admin.NewDiseaseRepoPG(pool)
		symptomRepo = admin.NewSymptomRepoPG(pool)
		recordRepo = history.NewRepoPG(pool)
		explainRepo = explanation.NewRepoPG(pool)
	} else {
		userRepo = identity.NewRepoMem()
		diseaseRepo = admin.NewDiseaseRepoMem()
		symptomRepo = admin.NewSymptomRepoMem()
		recordRepo = history.NewRepoMem()
		// explainRepo stays nil; the explanation service then serves its
		// built-in dictionary only.
	}

	// Disease dataset and matcher
	records := matcher.LoadDataset(cfg.DatasetPath, logger)
	matcherSvc := matcher.NewService(records, logger)

	// Symptom extraction
	extractionSvc := extraction.NewService(extraction.NewRuleEngine(), extraction.DefaultVocabulary(), logger)

	// LLM chat client
	llmClient, err := llm.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure llm client")
	}
	if llmClient == nil {
		logger.Warn().Msg("no LLM provider configured; chat runs on canned responses")
	}
	chatSvc := chat.NewService(llmClient, logger)

	// Knowledge graph, with optional Neo4j snapshot persistence
	var snapshots graph.SnapshotStore
	if cfg.GraphDBURI != "" {
		store, err := graph.NewNeo4jStore(ctx, cfg.GraphDBURI, cfg.GraphDBUser, cfg.GraphDBPassword)
		if err != nil {
			logger.Warn().Err(err).Msg("graph database unavailable; snapshots disabled")
		} else {
			snapshots = store
			defer store.Close(ctx)
			logger.Info().Str("uri", cfg.GraphDBURI).Msg("connected to graph database")
		}
	}
	graphSvc := graph.NewService(NewCatalogTreatments(diseaseRepo), snapshots, logger)

	// Remaining services
	explanationSvc := explanation.NewService(explainRepo, logger)
	tokens := auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    time.Duration(cfg.TokenTTL()) * time.Minute,
	}
	identitySvc := identity.NewService(userRepo, tokens, logger)
	historySvc := history.NewService(recordRepo, logger)
	adminSvc := admin.NewService(diseaseRepo, symptomRepo, identitySvc, historySvc, logger)

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
	}))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.SanitizeWithLogger(logger))
	e.Use(middleware.BodyLimit("1M", "2M"))
	e.Use(middleware.RequestTimeout(30 * time.Second))

	// Auth middleware for the protected groups
	requireAuth := auth.JWTMiddleware([]byte(cfg.JWTSecret))
	if cfg.IsDev() {
		requireAuth = auth.DevAuthMiddleware([]byte(cfg.JWTSecret))
	}

	// API groups
	api := e.Group("/api")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	api.Use(middleware.RateLimit(rateLimitCfg))

	authGroup := api.Group("/auth")
	adminGroup := api.Group("/admin", requireAuth, auth.RequireRole("admin"))
	customerGroup := api.Group("/customer", requireAuth)

	// Public endpoints
	matcher.NewHandler(matcherSvc).RegisterRoutes(api)
	extraction.NewHandler(extractionSvc).RegisterRoutes(api)
	graph.NewHandler(graphSvc).RegisterRoutes(api)
	chat.NewHandler(chatSvc).RegisterRoutes(api)
	explanation.NewHandler(explanationSvc).RegisterRoutes(api)

	// Protected endpoints
	identity.NewHandler(identitySvc).RegisterRoutes(authGroup, requireAuth)
	admin.NewHandler(adminSvc).RegisterRoutes(adminGroup)
	history.NewHandler(historySvc).RegisterRoutes(customerGroup)

	// Root and health endpoints
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"message":    "MedNex API - AI-Powered Medical Symptom Checker",
			"version":    "1.0.0",
			"status":     "active",
			"disclaimer": "This is an educational tool, not a medical diagnostic system. Always consult healthcare professionals for medical advice.",
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"message": "API is running",
		})
	})
	if pool != nil {
		e.GET("/health/db", db.HealthHandler(pool))
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
