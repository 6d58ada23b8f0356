// Package cli is the planner command-line front end. Every data command
// opens the configured store, applies pending migrations, calls one service
// operation, and prints the result as a table or, with --json, as JSON.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/service"
	"github.com/pkordes/trip-planner/internal/store"
)

// app carries state shared by every command of one invocation.
type app struct {
	cfg        config.Config
	log        *slog.Logger
	jsonOutput bool
}

// services bundles the domain services built over one open store.
type services struct {
	trips  *service.TripService
	days   *service.DayService
	items  *service.ItemService
	export *service.ExportService
}

// NewRootCmd builds the full planner command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "planner",
		Short: "Plan trips day by day with time-boxed items",
		Long: `planner keeps trips, their days, and the items scheduled on each day.

It rejects or reports overlapping items, warns about tight connections
between consecutive items, and exports a trip as CSV, JSON, or XLSX.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level, _ := cfg.SlogLevel()
			a.cfg = cfg
			a.log = newLogger(cmd.ErrOrStderr(), cfg.LogFormat, level).
				With("run_id", uuid.NewString(), "command", cmd.CommandPath())
			slog.SetDefault(a.log)
			return nil
		},
	}
	root.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output in JSON format")

	root.AddGroup(
		&cobra.Group{ID: "plan", Title: "Planning:"},
		&cobra.Group{ID: "ops", Title: "Operations:"},
	)
	for _, c := range []*cobra.Command{newTripCmd(a), newDayCmd(a), newItemCmd(a), newExportCmd(a)} {
		c.GroupID = "plan"
		root.AddCommand(c)
	}
	for _, c := range []*cobra.Command{newMigrateCmd(a), newServeCmd(a)} {
		c.GroupID = "ops"
		root.AddCommand(c)
	}
	return root
}

// Execute runs the planner command tree with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// newLogger builds the invocation's slog logger.
func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// openStore opens the configured backend and migrates it.
func (a *app) openStore(ctx context.Context) (*store.Store, error) {
	st, err := store.Open(ctx, a.cfg.StoreDriver, a.cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}
	a.log.DebugContext(ctx, "store ready", "driver", st.Driver())
	return st, nil
}

func (a *app) newServices(st *store.Store) *services {
	return &services{
		trips:  service.NewTripService(st.Trips),
		days:   service.NewDayService(st.Trips, st.Days),
		items:  service.NewItemService(st.Trips, st.Days, st.Items, service.WithMaxCost(a.cfg.MaxCost)),
		export: service.NewExportService(st.Trips, st.Days, st.Items),
	}
}

// withServices wraps a command body with store setup and teardown.
func (a *app) withServices(fn func(cmd *cobra.Command, args []string, s *services) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st, err := a.openStore(cmd.Context())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		return fn(cmd, args, a.newServices(st))
	}
}

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := a.openStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
			st.Close()
			printSuccess(cmd.OutOrStdout(), "database is up to date")
			return nil
		},
	}
}
