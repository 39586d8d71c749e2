package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/trackers/internal/logger"
	"github.com/mesh-intelligence/trackers/internal/menu"
	"github.com/mesh-intelligence/trackers/pkg/backend"
	"github.com/mesh-intelligence/trackers/pkg/types"
)

// controller runs one tracker's menu loop.
type controller interface {
	Run(ctx context.Context) error
}

// tracker describes one menu subcommand and how to build its controller
// from an attached backend.
type tracker struct {
	name  string
	short string
	build func(b types.Backend, p *menu.Prompter, log *zap.Logger) (controller, error)
}

var trackerCommands = []tracker{
	{
		name:  "inventory",
		short: "Track products, prices, and stock",
		build: func(b types.Backend, p *menu.Prompter, log *zap.Logger) (controller, error) {
			s, err := b.Inventory()
			if err != nil {
				return nil, err
			}
			return menu.NewInventory(s, p, log), nil
		},
	},
	{
		name:  "library",
		short: "Borrow and check in library books",
		build: func(b types.Backend, p *menu.Prompter, log *zap.Logger) (controller, error) {
			s, err := b.Library()
			if err != nil {
				return nil, err
			}
			return menu.NewLibrary(s, p, log), nil
		},
	},
	{
		name:  "grades",
		short: "Record students and their grades",
		build: func(b types.Backend, p *menu.Prompter, log *zap.Logger) (controller, error) {
			s, err := b.Gradebook()
			if err != nil {
				return nil, err
			}
			return menu.NewGrades(s, p, log), nil
		},
	},
	{
		name:  "tasks",
		short: "Keep a task list",
		build: func(b types.Backend, p *menu.Prompter, log *zap.Logger) (controller, error) {
			s, err := b.Tasks()
			if err != nil {
				return nil, err
			}
			return menu.NewTasks(s, p, log), nil
		},
	},
}

func newTrackerCmd(flags *rootFlags, t tracker) *cobra.Command {
	return &cobra.Command{
		Use:   t.name,
		Short: t.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTracker(cmd, flags, t)
		},
	}
}

// runTracker attaches a backend, runs the tracker's menu on the command's
// streams, and detaches when the menu ends.
func runTracker(cmd *cobra.Command, flags *rootFlags, t tracker) error {
	cfg, _, err := loadConfig(cmd, flags)
	if err != nil {
		return userError(err)
	}

	log, err := logger.New(t.name, cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return userError(err)
	}
	defer func() { _ = log.Sync() }()

	session, err := uuid.NewV7()
	if err != nil {
		return sysError(fmt.Errorf("generating session id: %w", err))
	}
	log = log.With(
		zap.String("tracker", t.name),
		zap.String("session", session.String()),
		zap.String("backend", cfg.Backend),
	)

	b, err := backend.New(cfg.Backend)
	if err != nil {
		return userError(err)
	}
	if err := b.Attach(cfg); err != nil {
		return sysError(fmt.Errorf("attach backend: %w", err))
	}
	defer func() {
		if err := b.Detach(); err != nil {
			log.Warn("detach failed", zap.Error(err))
		}
	}()

	p := menu.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	ctrl, err := t.build(b, p, log)
	if err != nil {
		return sysError(err)
	}

	log.Info("session started")
	if err := ctrl.Run(cmd.Context()); err != nil {
		log.Error("session failed", zap.Error(err))
		return sysError(err)
	}
	log.Info("session ended")
	return nil
}
