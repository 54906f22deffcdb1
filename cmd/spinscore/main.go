package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/MalcolmSlaney/GoogleSIN/internal/batch"
	"github.com/MalcolmSlaney/GoogleSIN/internal/config"
	"github.com/MalcolmSlaney/GoogleSIN/internal/keyword"
	"github.com/MalcolmSlaney/GoogleSIN/internal/recognizer"
	"github.com/MalcolmSlaney/GoogleSIN/internal/resultstore"
	"github.com/MalcolmSlaney/GoogleSIN/internal/telemetry"
)

var version = "0.1.0-dev"

func main() {
	var (
		configPath      string
		showVersion     bool
		listRecognizers bool
		debug           bool
	)

	flag.StringVar(&configPath, "config", "", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Print version and exit")
	flag.BoolVar(&listRecognizers, "list-recognizers", false, "List the project's recognizers and exit")
	flag.BoolVar(&debug, "debug", false, "Log per-file transcripts")
	flag.Parse()

	if showVersion {
		fmt.Println(version)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level := parseLevel(cfg.Telemetry.LogLevel)
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger, listRecognizers, flag.Args()); err != nil {
		logger.Error("spinscore failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger, listRecognizers bool, files []string) error {
	shutdownTelemetry, metricsHandler, err := telemetry.Setup(cfg, logger)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", slog.String("error", err.Error()))
		}
	}()

	if bind := cfg.Telemetry.PrometheusBind; bind != "" && metricsHandler != nil {
		srv := &http.Server{Addr: bind, Handler: metricsHandler, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", slog.String("error", err.Error()))
			}
		}()
		defer srv.Close()
		logger.Info("serving metrics", slog.String("addr", bind))
	}

	rec, err := recognizer.New(ctx, cfg.Recognizer)
	if err != nil {
		return fmt.Errorf("create recognizer: %w", err)
	}
	if closer, ok := rec.(io.Closer); ok {
		defer closer.Close()
	}

	if listRecognizers {
		g, ok := rec.(*recognizer.GoogleRecognizer)
		if !ok {
			return fmt.Errorf("listing recognizers requires recognizer.mode=google")
		}
		names, err := g.ListRecognizers(ctx)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	if len(files) == 0 {
		return fmt.Errorf("no audio files given")
	}

	store, err := resultstore.Open(ctx, cfg.Results, logger)
	if err != nil {
		return fmt.Errorf("open result store: %w", err)
	}
	defer store.Close()

	table := keyword.BuiltinTable()
	runner := batch.NewRunner(rec, store, cfg.Recognizer.Model, logger)

	transcripts, err := runner.RecognizeAll(ctx, files)
	if err != nil {
		return err
	}

	for _, score := range runner.ScoreAll(table, transcripts) {
		fmt.Printf("%s: list %d, %d/%d keywords, SNR loss %.1f dB\n",
			score.File, score.List+1, score.TotalCorrect,
			len(score.Sentences)*keyword.SlotsPerSentence, score.SNRLoss())
		for _, s := range score.Sentences {
			fmt.Printf("  S%d %d/%d\n", s.Key.Sentence, s.Correct, len(s.Hits))
		}
	}

	logger.Info("batch complete", slog.Int("files", len(transcripts)))
	return nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
