package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mvx-app/mvx/internal/session"
	"github.com/mvx-app/mvx/internal/shared"
	"github.com/mvx-app/mvx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for searching and saving movies.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireCatalog(); err != nil {
		return err
	}

	manager, ledger, closeStore, err := r.openAccounts()
	if err != nil {
		return err
	}
	defer closeStore()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/mvx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	sess := session.New(r.catalog, fileLogger)
	bridge := session.NewBridge()

	model := ui.NewModel(ctx, r.catalog, sess, bridge, manager, ledger)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
