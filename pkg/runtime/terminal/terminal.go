package terminal

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/audit-atlas/pkg/report"
	"github.com/de-tools/audit-atlas/pkg/report/theme"
	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/audit-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/audit-atlas/pkg/services/audit"
	"github.com/de-tools/audit-atlas/pkg/services/config"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb/events"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	settings config.Settings
	logger   zerolog.Logger
	open     commands.Opener
	reporter *export.Reporter
	rootCmd  *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Settings *config.Settings
	Logger   *zerolog.Logger
	Output   io.Writer
	// Opener replaces the DuckDB-backed service, mostly for tests.
	Opener commands.Opener
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		logger:   zerolog.Nop(),
		reporter: export.NewReporter(opts.Output),
	}
	if opts.Settings != nil {
		cli.settings = *opts.Settings
	}
	if opts.Logger != nil {
		cli.logger = *opts.Logger
	}
	cli.open = opts.Opener
	if cli.open == nil {
		cli.open = cli.openService
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.ExecuteContext(context.Background())
}

func (cli *CLI) ExecuteContext(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(cli.logger.WithContext(ctx))
}

// SetArgs overrides os.Args[1:], as cobra.Command.SetArgs does.
func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	s := cli.settings
	cmd := &cobra.Command{
		Use:           "audit",
		Short:         "Audit report generator for treasury ledger events",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(commands.NewImportCmd(cli.open, s.DbPath))
	cmd.AddCommand(commands.NewGenerateCmd(cli.open, commands.GenerateDefaults{
		DbPath:    s.DbPath,
		Profiles:  s.Profiles,
		OutputDir: s.OutputDir,
		S3: commands.S3Options{
			Bucket:  s.S3.Bucket,
			Prefix:  s.S3.Prefix,
			Profile: s.S3.Profile,
			Region:  s.S3.Region,
		},
	}))
	cmd.AddCommand(commands.NewSummaryCmd(cli.open, cli.reporter, s.DbPath))
	cmd.AddCommand(commands.NewProfilesCmd(cli.open, s.Profiles))

	return cmd
}

// openService wires the DuckDB event store and the profile registry named by src.
func (cli *CLI) openService(ctx context.Context, src commands.Source) (audit.Service, func() error, error) {
	logger := zerolog.Ctx(ctx)
	opts := audit.Options{
		Builder: report.NewGenerator(report.Options{
			Branding: cli.settings.Branding.Apply(theme.DefaultBranding()),
			Logger:   logger,
		}),
	}
	closeFn := func() error { return nil }

	if src.Profiles != "" {
		registry, err := config.NewRegistry(src.Profiles)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create config registry: %w", err)
		}
		opts.Registry = registry
	}

	if src.DbPath != "" {
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: src.DbPath})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		store, err := events.NewStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to create event store: %w", err)
		}
		opts.DB = db
		opts.Store = store
		closeFn = db.Close
	}

	logger.Debug().Str("db", src.DbPath).Str("profiles", src.Profiles).Msg("audit service ready")
	return audit.NewService(opts), closeFn, nil
}
