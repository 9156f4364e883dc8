package main

import (
	"fmt"
	"os"

	"github.com/de-tools/audit-atlas/pkg/runtime/terminal"
	"github.com/de-tools/audit-atlas/pkg/services/config"
	"github.com/rs/zerolog"
)

func main() {
	settings, err := config.LoadSettings(os.Getenv("AUDIT_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.WarnLevel).
		With().Timestamp().Logger()

	cli := terminal.NewCLI(terminal.Options{
		Settings: settings,
		Logger:   &logger,
		Output:   os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
