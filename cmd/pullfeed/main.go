package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/pullfeed/internal/config"
	"github.com/mmcdole/pullfeed/internal/feed"
	"github.com/mmcdole/pullfeed/internal/log"
	"github.com/mmcdole/pullfeed/internal/store"
	"github.com/mmcdole/pullfeed/internal/tui"
	"github.com/mmcdole/pullfeed/internal/tui/styles"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var (
		showVersion bool
		showHistory bool
		clearCache  bool
		configDir   string
	)
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.BoolVar(&showHistory, "history", false, "print recent refreshes and exit")
	flag.BoolVar(&clearCache, "clear-cache", false, "remove cached items and history")
	flag.StringVar(&configDir, "config", "", "directory containing config.yaml")
	flag.Parse()

	if showVersion {
		fmt.Printf("pullfeed %s\n", Version)
		return
	}

	if err := run(configDir, showHistory, clearCache); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir string, showHistory, clearCache bool) error {
	// Load configuration
	var (
		cfg *config.Config
		err error
	)
	if configDir != "" {
		cfg, err = config.LoadConfigFrom(configDir)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if clearCache {
		if err := cfg.ClearCache(); err != nil {
			return err
		}
		fmt.Println("✓ Cache cleared")
		return nil
	}

	// Setup logger
	logger, logFile, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	} else {
		defer logFile.Close()
	}
	slog.SetDefault(logger)

	logger.Info("starting pullfeed", "version", Version)

	st, err := store.NewFeedStore(cfg.Store.Path, cfg.Feed.Name)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	clock := clockz.RealClock
	source := feed.NewGenerator(cfg.Feed.Name, cfg.Feed.BatchSize, cfg.Feed.Latency, cfg.Feed.Seed, clock)
	svc := feed.NewService(source, st, clock, cfg.Feed.MaxItems, logger)

	if showHistory {
		return printHistory(svc, cfg.UI.HistorySize)
	}

	styles.UseTheme(cfg.UI.Theme)

	events := capitan.New()
	defer events.Shutdown()
	unhook := watchAttacher(events, logger)
	defer unhook()

	// Create TUI model
	model, err := tui.NewModel(tui.Options{
		Feed:        svc,
		Pull:        cfg.ToPull(),
		Clock:       clock,
		Logger:      logger,
		Events:      events,
		HistorySize: cfg.UI.HistorySize,
	})
	if err != nil {
		return fmt.Errorf("failed to create UI: %w", err)
	}
	defer model.Close()

	// Run the TUI
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

func printHistory(svc *feed.Service, limit int) error {
	records, err := svc.History(limit)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No refreshes recorded.")
		return nil
	}
	for _, r := range records {
		status := fmt.Sprintf("+%d", r.Added)
		if r.Error != "" {
			status = "failed: " + r.Error
		}
		fmt.Printf("%s  %-6s  %8s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Trigger, r.Duration().Round(time.Millisecond), status)
	}
	return nil
}
