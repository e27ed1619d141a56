package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/FrancoBrice/sales-metrics-sub001/internal/common"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/core"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/entity"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/export"
	"github.com/FrancoBrice/sales-metrics-sub001/internal/llm/openai"
	repo "github.com/FrancoBrice/sales-metrics-sub001/internal/repository"
)

func main() {
	var (
		inmem       = flag.Bool("inmem", false, "use in-memory SQLite database")
		transcripts = flag.String("transcripts", "", "directory of .txt transcripts to seed as meetings (optional)")
		out         = flag.String("out", "", "output XLSX file path (optional, defaults to extractions.xlsx)")
		workers     = flag.Int("workers", 0, "worker pool size override")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := common.LoadConfig()
	if *workers > 0 {
		cfg.Extraction.Workers = *workers
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if *out == "" {
		*out = "extractions.xlsx"
	}

	// Open storage: postgres when DB_URL is set, sqlite otherwise
	var (
		db      *sql.DB
		pool    *pgxpool.Pool
		dialect repo.Dialect
		err     error
	)
	if *inmem || cfg.Database.DSN == "" || strings.HasPrefix(cfg.Database.DSN, "file:") {
		dialect = repo.DialectSQLite
		dsn := cfg.Database.DSN
		if *inmem {
			dsn = ""
		}
		db, err = repo.OpenSQLite(dsn, logger)
	} else {
		dialect = repo.DialectPostgres
		db, pool, err = repo.Open(ctx, repo.Config{
			DSN:             cfg.Database.DSN,
			MaxConns:        cfg.Database.MaxConns,
			MinConns:        cfg.Database.MinConns,
			MaxConnLifetime: cfg.Database.MaxConnLifetime,
			MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
			DialTimeout:     cfg.Database.DialTimeout,
		}, logger)
	}
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(db, pool, logger)

	runBatch(ctx, logger, cfg, db, dialect, *transcripts, *out)
}

func runBatch(ctx context.Context, logger *slog.Logger, cfg *common.Config, db *sql.DB, dialect repo.Dialect, transcriptsDir, out string) {
	if err := repo.EnsureSchema(ctx, db); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	extractions := repo.NewExtractionRepository(db, dialect, logger)
	meetings := repo.NewMeetingRepository(db, dialect, logger)

	if transcriptsDir != "" {
		seeded, err := seedTranscripts(ctx, meetings, transcriptsDir)
		if err != nil {
			logger.Error("failed to seed transcripts", "dir", transcriptsDir, "error", err)
			os.Exit(1)
		}
		logger.Info("transcripts seeded", "dir", transcriptsDir, "count", seeded)
	}

	client := openai.NewClient(openai.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	logger.Info("OpenAI client initialized", "model", cfg.LLM.Model)

	orchestrator := core.NewOrchestrator(logger, client, extractions, meetings,
		core.WithWorkers(cfg.Extraction.Workers),
		core.WithCallTimeout(cfg.Extraction.CallTimeout),
		core.WithMergePolicy(core.ParseMergePolicy(cfg.Extraction.MergePolicy)),
		core.WithMinDetectorConfidence(cfg.Extraction.MinDetectorConfidence),
	)

	progress, err := orchestrator.ExtractAll(ctx)
	if err != nil {
		logger.Error("batch run interrupted", "error", err,
			"completed", progress.Completed, "pending", progress.Pending)
	}

	// export whatever finished, even after an interrupt
	results, err := extractions.ListResults(context.Background())
	if err != nil {
		logger.Error("failed to list results", "error", err)
		os.Exit(1)
	}

	xlsxBytes, err := export.NewService(logger).ResultsXLSX(results)
	if err != nil {
		logger.Error("failed to export results", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "path", out, "error", err)
		os.Exit(1)
	}

	fmt.Printf("Batch extraction complete!\n")
	fmt.Printf("- Total:   %d\n", progress.Total)
	fmt.Printf("- Success: %d\n", progress.Success)
	fmt.Printf("- Failed:  %d\n", progress.Failed)
	fmt.Printf("- Retried: %d\n", progress.Retried)
	fmt.Printf("- Pending: %d\n", progress.Pending)
	fmt.Printf("- Output:  %s\n", out)
}

// seedTranscripts inserts every .txt file in dir as one meeting.
func seedTranscripts(ctx context.Context, meetings repo.MeetingRepository, dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	seeded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".txt") {
			continue
		}
		b, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return seeded, err
		}
		m := &entity.Meeting{ID: uuid.New(), Transcript: string(b)}
		if err := meetings.Insert(ctx, m); err != nil {
			return seeded, err
		}
		seeded++
	}
	return seeded, nil
}
