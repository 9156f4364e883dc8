package main

import (
	"fmt"
	"net"
	"os"
	"os/user"
	"path/filepath"

	"github.com/de-tools/audit-atlas/pkg/report"
	"github.com/de-tools/audit-atlas/pkg/report/theme"
	"github.com/de-tools/audit-atlas/pkg/server"
	"github.com/de-tools/audit-atlas/pkg/services/audit"
	"github.com/de-tools/audit-atlas/pkg/services/config"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb"
	"github.com/de-tools/audit-atlas/pkg/store/duckdb/events"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	profilesPath string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the audit report web server",
		RunE:  runServer,
	}

	defaultPath := ""
	if usr, err := user.Current(); err == nil {
		defaultPath = filepath.Join(usr.HomeDir, ".auditcfg")
	}

	rootCmd.Flags().StringVarP(&settingsPath, "config", "c", "", "Path to a settings file (yaml, json or toml)")
	rootCmd.Flags().StringVarP(&profilesPath, "profiles", "p", defaultPath,
		"Path to the report profiles file (default is $HOME/.auditcfg)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	settings, err := config.LoadSettings(settingsPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if !cmd.Flags().Changed("profiles") && settings.Profiles != "" {
		profilesPath = settings.Profiles
	}

	var registry config.Registry
	if _, err := os.Stat(profilesPath); err == nil {
		registry, err = config.NewRegistry(profilesPath)
		if err != nil {
			return fmt.Errorf("failed to create config registry: %w", err)
		}
		logger.Info().Msgf("Profiles found at `%s` successfully loaded.", profilesPath)
		profiles, _ := registry.GetProfiles(ctx)
		for _, profile := range profiles {
			logger.Info().Msgf("Profile: `%s`", profile)
		}
	} else {
		logger.Warn().Str("path", profilesPath).Msg("no report profiles file, only the default profile is served")
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: settings.DbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	eventStore, err := events.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create event store: %w", err)
	}
	if stats, err := eventStore.Stats(ctx); err == nil {
		logger.Info().Int64("events", stats.Events).Str("db", settings.DbPath).Msg("event store opened")
	}

	svc := audit.NewService(audit.Options{
		DB:       db,
		Store:    eventStore,
		Registry: registry,
		Builder: report.NewGenerator(report.Options{
			Branding: settings.Branding.Apply(theme.DefaultBranding()),
			Logger:   &logger,
		}),
	})

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(settings.Server.Host, settings.Server.Port),
		Dependencies: server.Dependencies{
			Audit:  svc,
			Logger: logger,
		},
	})

	return api.Start()
}
