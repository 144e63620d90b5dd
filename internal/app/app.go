package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cole/shophours/internal/config"
	"github.com/cole/shophours/internal/service"
	"github.com/cole/shophours/internal/store"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Store  *store.Store

	// Services
	ClientService   service.ClientService
	TimerService    service.TimerService
	EntryService    service.EntryService
	JobService      service.JobService
	ChargeService   service.ChargeService
	ScheduleService service.ScheduleService
	InvoiceService  service.InvoiceService
	ReportService   service.ReportService
}

// New creates a new App instance, initializing all dependencies.
// It handles:
// 1. Loading config
// 2. Opening and migrating the state file
// 3. Creating services
// 4. Running the startup job backfill
func New(ctx context.Context) (*App, error) {
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	st, err := store.Open(cfg.Data.Path, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open state: %w", err)
	}

	a := &App{
		Config:          cfg,
		Log:             log,
		Store:           st,
		ClientService:   service.NewClientService(st),
		TimerService:    service.NewTimerService(st),
		EntryService:    service.NewEntryService(st),
		JobService:      service.NewJobService(st),
		ChargeService:   service.NewChargeService(st),
		ScheduleService: service.NewScheduleService(st),
		InvoiceService:  service.NewInvoiceService(st, cfg.Invoice.NumberPrefix),
		ReportService:   service.NewReportService(st),
	}

	// Retrofit jobs for entries recorded before the job list existed,
	// and repair dangling job references. Safe to run on every startup.
	if _, err := a.JobService.Backfill(ctx); err != nil {
		return nil, fmt.Errorf("failed to reconcile jobs: %w", err)
	}

	return a, nil
}

// Close flushes the state to disk
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Save()
	}
	return nil
}

// SaveConfig saves the current configuration to disk
func (a *App) SaveConfig() error {
	return a.Config.Save(config.DefaultConfigPath())
}
