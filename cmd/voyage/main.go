// cmd/voyage/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-voyage/pkg/config"
	"github.com/opd-ai/go-voyage/pkg/engine"
	"github.com/opd-ai/go-voyage/pkg/event"
	"github.com/opd-ai/go-voyage/pkg/logging"
	"github.com/opd-ai/go-voyage/pkg/report"
)

func main() {
	logger := logging.NewLogger()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			logger.Error(ctx, "Voyage failed", err)
		}
		logger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *logging.Logger, args []string, stdout io.Writer) error {
	flags := flag.NewFlagSet("voyage", flag.ContinueOnError)
	configPath := flags.String("config", "voyage.yaml", "Path to configuration file (JSON or YAML)")
	createDefault := flags.Bool("default", false, "Create default configuration file and exit")
	seed := flags.Uint64("seed", 0, "Random seed, overrides the configuration")
	template := flags.String("template", "", "Sector template to fly through")
	listTemplates := flags.Bool("templates", false, "List sector templates and exit")
	printJSON := flags.Bool("json", false, "Print the final voyage state as JSON")
	progress := flags.Duration("progress", 5*time.Second, "Interval between progress log entries")
	if err := flags.Parse(args); err != nil {
		return err
	}

	if *listTemplates {
		return writeTemplates(stdout)
	}

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			return logging.WrapError(err, "create default configuration %s", *configPath)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return nil
	}

	voyageConfig, err := buildConfig(ctx, logger, *configPath, *template)
	if err != nil {
		return err
	}
	flags.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			voyageConfig.Seed = seed
		}
	})

	runSeed, seedSource := voyageConfig.ResolveSeed(time.Now)
	ctx = logging.WithCorrelationID(ctx, logging.GenerateCorrelationID())
	logger.Info(ctx, "Random seed resolved",
		"seed", runSeed,
		"source", seedSource,
	)

	bus := event.NewEventBus()
	report.NewReporter(ctx, logger).Attach(bus)

	voyage, err := engine.Launch(voyageConfig, config.DefaultUnits(), config.NewRand(runSeed), bus)
	if err != nil {
		return logging.WrapError(err, "launch voyage with seed %d", runSeed)
	}

	result, err := fly(ctx, logger, voyage, *progress)
	logger.Info(ctx, "Voyage ended",
		"status", result.Status.String(),
		"summary", report.Summary(result),
		"elapsed", result.Elapsed.String(),
	)

	if *printJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(voyage.GetState()); encErr != nil {
			return errors.Join(err, encErr)
		}
	}
	return err
}

// buildConfig assembles the voyage configuration. Later sources win: the
// file (or the default voyage), then the sector template, then VOYAGE_*
// environment variables. Command line flags are applied by the caller.
func buildConfig(ctx context.Context, logger *logging.Logger, path, template string) (*config.VoyageConfig, error) {
	voyageConfig, err := loadConfig(ctx, logger, path)
	if err != nil {
		return nil, err
	}

	if template != "" {
		if err := config.ApplySectorTemplate(voyageConfig, template); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnvironmentOverrides(voyageConfig); err != nil {
		return nil, logging.WrapError(err, "apply environment configuration")
	}
	return voyageConfig, nil
}

// loadConfig reads the configuration file, falling back to the default
// voyage when the file does not exist.
func loadConfig(ctx context.Context, logger *logging.Logger, path string) (*config.VoyageConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", path,
		)
		return config.DefaultConfig(), nil
	}

	voyageConfig, err := config.LoadConfig(path)
	if err != nil {
		return nil, logging.WrapError(err, "load configuration %s", path)
	}
	return voyageConfig, nil
}

// fly runs the voyage until it ends or ctx is cancelled, logging progress
// at the given interval from a second goroutine.
func fly(ctx context.Context, logger *logging.Logger, voyage *engine.Voyage, interval time.Duration) (engine.Result, error) {
	var tick atomic.Uint64
	voyage.EventBus.Subscribe(event.StepCompleted, func(e event.Event) {
		tick.Store(e.(*event.StepEvent).Tick)
	})

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	var result engine.Result
	g.Go(func() error {
		defer close(done)
		var err error
		result, err = voyage.RunContext(gctx)
		return err
	})

	g.Go(func() error {
		if interval <= 0 {
			return nil
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return nil
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				logger.Info(ctx, "Voyage in progress", "tick", tick.Load())
			}
		}
	})

	err := g.Wait()
	return result, err
}

func writeTemplates(w io.Writer) error {
	templates := config.ListSectorTemplates()
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if _, err := fmt.Fprintf(w, "%-16s %s\n", name, templates[name]); err != nil {
			return err
		}
	}
	return nil
}
