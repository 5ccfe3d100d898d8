package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/bilgisen/spacetraveling/internal/config"
	"github.com/bilgisen/spacetraveling/internal/content"
	"github.com/bilgisen/spacetraveling/internal/export"
	"github.com/bilgisen/spacetraveling/internal/logger"
	"github.com/bilgisen/spacetraveling/internal/storage"
	"github.com/bilgisen/spacetraveling/internal/views"
)

var CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Export struct {
		Output  string `short:"o" help:"Output directory (defaults to OUTPUT_DIR)"`
		Publish bool   `help:"Upload the exported files to the configured R2 bucket"`
	} `cmd:"" help:"Render the post list and error pages into static files"`

	Publish struct {
		Output string `short:"o" help:"Directory to upload (defaults to OUTPUT_DIR)"`
	} `cmd:"" help:"Upload a previously exported directory to the configured R2 bucket"`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("spacetraveling-web"),
		kong.Description("Static export of the spacetraveling blog."),
	)

	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}

	level := cfg.LogLevel
	if CLI.Verbose {
		level = "debug"
	}
	if err := logger.Init(logger.Config{Level: level, Output: "stderr", Pretty: true}); err != nil {
		logger.Get().Warn().Err(err).Msg("Falling back to stdout logging")
	}
	log := logger.Get()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch kctx.Command() {
	case "export":
		err = runExport(ctx, cfg, outputDir(CLI.Export.Output, cfg), CLI.Export.Publish)
	case "publish":
		err = runPublish(ctx, cfg, outputDir(CLI.Publish.Output, cfg))
	}
	if err != nil {
		log.Error().Err(err).Str("command", kctx.Command()).Msg("Command failed")
		os.Exit(1)
	}
}

func outputDir(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	return cfg.OutputDir
}

func runExport(ctx context.Context, cfg *config.Config, out string, publish bool) error {
	dir, err := storage.NewDir(out)
	if err != nil {
		return err
	}

	fetcher, err := content.NewFetcher(cfg)
	if err != nil {
		return err
	}
	resolver := content.NewResolver(fetcher, content.NewParser(cfg.Locale), cfg.PostType, cfg.PageSize)

	written, err := export.New(resolver, views.New(cfg.Site, cfg.Locale), dir).Export(ctx)
	if err != nil {
		return err
	}
	logger.Get().Info().Str("output", out).Strs("files", written).Msg("Export finished")

	if !publish {
		return nil
	}
	return runPublish(ctx, cfg, out)
}

func runPublish(ctx context.Context, cfg *config.Config, out string) error {
	dir, err := storage.NewDir(out)
	if err != nil {
		return err
	}
	bucket, err := storage.NewBucket(ctx, cfg)
	if err != nil {
		return err
	}

	n, err := storage.Publish(ctx, dir, bucket)
	if err != nil {
		return err
	}
	logger.Get().Info().
		Int("files", n).
		Str("bucket", cfg.R2Bucket).
		Msg("Published export")
	return nil
}
