package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/movie-booth/internal/data/dispatcher"
	"github.com/atomicstack/movie-booth/internal/lifecycle"
	"github.com/atomicstack/movie-booth/internal/logging"
	"github.com/atomicstack/movie-booth/internal/logging/events"
	"github.com/atomicstack/movie-booth/internal/store"
	"github.com/atomicstack/movie-booth/internal/task"
	"github.com/atomicstack/movie-booth/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	DBPath        string
	CustomerID    int
	SeedPath      string
	Workers       int
	FetchTimeout  time.Duration
	ClockInterval time.Duration
	Width         int
	Height        int
	ShowFooter    bool
	Verbose       bool
}

// Run opens the store, starts the background machinery and executes the
// Bubble Tea program until the customer quits.
func Run(ctx context.Context, cfg Config) error {
	st, err := store.Open(store.Config{
		Path:     cfg.DBPath,
		PoolSize: cfg.Workers,
		Logger:   logging.Logger(),
	})
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if cfg.SeedPath != "" {
		fixture, err := store.LoadFixture(cfg.SeedPath)
		if err != nil {
			return err
		}
		if err := st.Seed(ctx, fixture); err != nil {
			return fmt.Errorf("seed store: %w", err)
		}
	}

	disp := dispatcher.New()
	gate := lifecycle.NewGate()
	runner := task.New(disp, task.Options{Workers: cfg.Workers, Timeout: cfg.FetchTimeout})

	model := ui.NewModel(ui.Config{
		Services:   st.Services(),
		Dispatcher: disp,
		Runner:     runner,
		Gate:       gate,
		CustomerID: cfg.CustomerID,
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Verbose:    cfg.Verbose,
	})
	clock := lifecycle.StartClock(gate, disp, cfg.ClockInterval, model.Tick)

	// The gate closes before the producers stop.
	defer func() {
		gate.Shutdown()
		runner.Close()
		clock.Wait()
		runner.Wait()
		disp.Close()
	}()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	reason := "quit"
	if err != nil {
		reason = err.Error()
	}
	events.App.Stop(reason)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
