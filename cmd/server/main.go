// Package main provides the server entry point.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/alecthomas/kingpin/v2"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"gopkg.in/yaml.v3"

	apiconnect "github.com/osa030/ytplaylen/internal/api/connect"
	"github.com/osa030/ytplaylen/internal/app/pipeline"
	"github.com/osa030/ytplaylen/internal/app/report"
	"github.com/osa030/ytplaylen/internal/domain/duration"
	"github.com/osa030/ytplaylen/internal/domain/playlist"
	"github.com/osa030/ytplaylen/internal/infra/config"
	"github.com/osa030/ytplaylen/internal/infra/logger"
	"github.com/osa030/ytplaylen/internal/infra/youtube"
)

var (
	app        = kingpin.New("ytplaylen-server", "YouTube playlist length server")
	configPath = app.Flag("config", "Path to config file (default: environment only)").Envar("YTPLAYLEN_CONFIG").String()
	verbose    = app.Flag("verbose", "Enable verbose (DEBUG) logging").Short('v').Bool()
	logfile    = app.Flag("logfile", "Path to log file (default: stderr)").String()
	logJSON    = app.Flag("log-json", "Write JSON log lines to stderr instead of console output").Envar("YTPLAYLEN_LOG_JSON").Bool()

	// fetch command
	fetchCmd    = app.Command("fetch", "Fetch one playlist and print its report")
	fetchURL    = fetchCmd.Arg("url", "Playlist URL").Required().String()
	fetchStart  = fetchCmd.Flag("start", "First position of the range (1-based)").Int()
	fetchEnd    = fetchCmd.Flag("end", "Last position of the range (inclusive)").Int()
	fetchUnit   = fetchCmd.Flag("unit", "Display unit: hrs, min or sec").String()
	fetchSpeed  = fetchCmd.Flag("speed", "Playback speed, e.g. 1.5x").String()
	fetchOutput = fetchCmd.Flag("output", "Output format").Short('o').Default("text").Enum("text", "json", "yaml")
	fetchTime   = fetchCmd.Flag("timeout", "Overall deadline for the fetch").Default("2m").Duration()
)

func init() {
	// start command (default) - no need to store the command
	app.Command("start", "Start the server (default)").Default()
}

func main() {
	// Load .env file if it exists (errors are ignored)
	_ = godotenv.Load()

	// Parse command
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// Initialize logger
	loggerConfig := logger.Config{
		Output: "stderr",
		Level:  "info",
		JSON:   *logJSON,
	}
	// Override with command-line flags if specified
	if *verbose {
		loggerConfig.Level = "debug"
	}
	if *logfile != "" {
		loggerConfig.Output = *logfile
	}
	closeLog, err := logger.Init(loggerConfig)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer closeLog()

	// Load config
	zlog.Info().Msgf("Loading config from %s", describePath(*configPath))
	cfg, err := config.Load(*configPath)
	if err != nil {
		zlog.Fatal().Msgf("Failed to load config: %v", err)
	}

	switch command {
	case fetchCmd.FullCommand():
		err = fetch(cfg)
	default:
		err = run(cfg)
	}
	if err != nil {
		if hints := errors.FlattenHints(err); hints != "" {
			zlog.Error().Msgf("Hint: %s", hints)
		}
		zlog.Error().Msgf("Error: %v", err)
		closeLog()
		os.Exit(1)
	}
}

func describePath(path string) string {
	if path == "" {
		return "environment"
	}
	return path
}

// newPipeline wires the YouTube client into the pipeline service.
func newPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Service, error) {
	client, err := youtube.New(ctx, youtube.Config{
		APIKey:         cfg.YouTube.APIKey,
		BaseURL:        cfg.YouTube.BaseURL,
		RequestTimeout: cfg.YouTube.RequestTimeout,
		MaxAttempts:    cfg.YouTube.MaxAttempts,
		RetryDelay:     cfg.YouTube.RetryDelay,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create YouTube client")
	}

	return pipeline.New(client, pipeline.Options{
		PageSize:       cfg.YouTube.PageSize,
		BatchSize:      cfg.YouTube.BatchSize,
		MaxConcurrency: cfg.YouTube.MaxConcurrency,
		AllowPartial:   cfg.YouTube.AllowPartialDetails,
	}), nil
}

// run executes the main server logic. Using a separate function ensures
// defer statements are executed even when returning with an error.
func run(cfg *config.Config) error {
	ctx := context.Background()

	svc, err := newPipeline(ctx, cfg)
	if err != nil {
		return err
	}
	unit, _ := cfg.ReportUnit()
	speed, _ := cfg.ReportSpeed()

	// Create RPC service
	playlistService := apiconnect.NewPlaylistService(svc, unit, speed)

	// Create HTTP mux
	mux := http.NewServeMux()
	path, handler := apiconnect.NewPlaylistServiceHandler(
		playlistService,
		connect.WithInterceptors(apiconnect.NewRequestIDInterceptor()),
	)
	mux.Handle(path, handler)

	// Create server with h2c (HTTP/2 cleartext) support
	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to capture server startup errors
	serverErrCh := make(chan error, 1)

	go func() {
		zlog.Info().Msgf("Starting server: addr=%s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		zlog.Info().Msg("Received shutdown signal...")
	case err := <-serverErrCh:
		return errors.Wrap(err, "server error")
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zlog.Error().Msgf("Failed to shutdown server: %v", err)
	}

	zlog.Info().Msg("Server stopped")
	return nil
}

// fetch runs the pipeline once and prints the report to stdout.
func fetch(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *fetchTime)
	defer cancel()

	unit, _ := cfg.ReportUnit()
	if *fetchUnit != "" {
		u, err := duration.ParseUnit(*fetchUnit)
		if err != nil {
			return err
		}
		unit = u
	}
	speed, _ := cfg.ReportSpeed()
	if *fetchSpeed != "" {
		s, err := duration.ParseSpeed(*fetchSpeed)
		if err != nil {
			return err
		}
		speed = s
	}

	svc, err := newPipeline(ctx, cfg)
	if err != nil {
		return err
	}

	var result *playlist.Result
	if *fetchStart == 0 && *fetchEnd == 0 {
		result, err = svc.FetchPlaylist(ctx, *fetchURL)
	} else {
		result, err = svc.FetchPlaylistRange(ctx, *fetchURL, *fetchStart, *fetchEnd)
	}
	if err != nil {
		return err
	}

	r := report.Build(result, unit, speed)
	switch *fetchOutput {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return r.WriteText(os.Stdout)
	}
}
