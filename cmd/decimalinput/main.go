package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/decimalinput/internal/config"
	"github.com/jask/decimalinput/internal/database"
	"github.com/jask/decimalinput/internal/database/repository"
	"github.com/jask/decimalinput/internal/scenario"
	"github.com/jask/decimalinput/internal/tui"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, closeLog, err := openLogger(cfg.Log)
	if err != nil {
		log.Fatalf("log: %v", err)
	}
	defer closeLog()

	scenarios, err := scenario.Load(cfg.Scenarios.Path)
	if err != nil {
		log.Fatalf("scenarios: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("mkdir db dir: %v", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	app, err := tui.New(ctx, scenarios, repository.NewEntryRepo(db), tui.Options{
		Defaults: scenario.Defaults{
			Precision: cfg.UI.DefaultPrecision,
			Scale:     cfg.UI.Scale(),
			Locale:    cfg.UI.Tag(),
		},
		Placeholder: cfg.UI.Placeholder,
		Logger:      logger,
	})
	if err != nil {
		log.Fatalf("scenarios: %v", err)
	}
	logger.Info("starting", "scenarios", len(scenarios), "db", cfg.Database.Path)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

// openLogger writes text records to the configured file; the terminal is
// taken by the TUI.
func openLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	return logger, func() { _ = f.Close() }, nil
}
