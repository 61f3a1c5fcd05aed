// Package cli wires the dashboard runtime to cobra commands.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/mpc-dashboard/internal/app"
	"github.com/samvad-hq/mpc-dashboard/internal/config"
	"github.com/samvad-hq/mpc-dashboard/internal/logger"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// runtime holds per-invocation state shared by every command.
type runtime struct {
	out     io.Writer
	format  string
	baseURL string

	cfg  *config.Config
	log  *logger.Zap
	dash *app.Dashboard
}

// Execute runs the CLI with the process arguments.
func Execute(ctx context.Context) error {
	return Run(ctx, os.Args[1:], os.Stdout)
}

// Run executes the command tree against args, writing command output to out.
func Run(ctx context.Context, args []string, out io.Writer) error {
	rt := &runtime{out: out}
	defer rt.close()

	root := newRootCmd(rt)
	root.SetArgs(args)
	root.SetOut(out)
	return root.ExecuteContext(ctx)
}

func newRootCmd(rt *runtime) *cobra.Command {
	root := &cobra.Command{
		Use:   "dashboard",
		Short: "Browse the MPC dashboard backend from the terminal",
		Long: `dashboard talks to the MPC dashboard API: it lists films, actors and
customers, shows rental statistics, runs natural language analysis and
generates pages that are archived locally and announced to configured notifiers.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rt.initialize,
	}

	root.PersistentFlags().StringVarP(&rt.format, "output", "o", formatTable, "output format (table|json)")
	root.PersistentFlags().StringVar(&rt.baseURL, "api-base-url", "", "override API_BASE_URL")

	root.AddCommand(
		newResourceCmd(rt, filmsResource),
		newResourceCmd(rt, actorsResource),
		newResourceCmd(rt, customersResource),
		newStatsCmd(rt),
		newMPCCmd(rt),
		newPagesCmd(rt),
	)
	return root
}

// initialize loads config, sets up logging and builds the dashboard runtime.
func (rt *runtime) initialize(cmd *cobra.Command, _ []string) error {
	switch rt.format = strings.ToLower(strings.TrimSpace(rt.format)); rt.format {
	case formatTable, formatJSON:
	default:
		return fmt.Errorf("invalid --output %q (expected table or json)", rt.format)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	rt.log = log

	if cmd.Flags().Changed("api-base-url") {
		if cfg, err = cfg.WithAPIBaseURL(rt.baseURL); err != nil {
			return err
		}
		logger.InfoObj("api base url overridden", "api_base_url", cfg.APIBaseURL)
	}
	rt.cfg = cfg
	logger.DebugObj("dashboard starting", "config", cfg)

	dash, err := app.NewDashboard(cmd.Context(), cfg, log)
	if err != nil {
		logger.ErrorObj("failed to initialize dashboard", "error", err)
		return err
	}
	rt.dash = dash
	return nil
}

func (rt *runtime) close() {
	if rt.dash != nil {
		if err := rt.dash.Close(); err != nil {
			logger.WarnObj("shutdown failed", "error", err)
		}
	}
	if rt.log != nil {
		_ = logger.Close()
	}
}
