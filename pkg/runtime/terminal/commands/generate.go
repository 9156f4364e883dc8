package commands

import (
	"fmt"

	reportexport "github.com/de-tools/audit-atlas/pkg/report/export"
	"github.com/spf13/cobra"
)

// S3Options selects the archive bucket; an empty Bucket writes to the local output directory.
type S3Options struct {
	Bucket  string
	Prefix  string
	Profile string
	Region  string
}

type GenerateCmd struct {
	dbPath       string
	input        string
	profilesPath string
	profile      string
	from, to     string
	outDir       string
	s3           S3Options
	open         Opener
}

type GenerateDefaults struct {
	DbPath    string
	Profiles  string
	OutputDir string
	S3        S3Options
}

func NewGenerateCmd(open Opener, defaults GenerateDefaults) *cobra.Command {
	gc := &GenerateCmd{open: open}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render the audit report PDF",
		RunE:  gc.run,
	}

	cmd.Flags().StringVar(&gc.dbPath, "db", defaults.DbPath, "Path to the DuckDB event store")
	cmd.Flags().StringVar(&gc.input, "input", "", "Read events from this JSON file instead of the store")
	cmd.Flags().StringVar(&gc.profilesPath, "profiles", defaults.Profiles, "Path to the report profiles file")
	cmd.Flags().StringVar(&gc.profile, "profile", "", "Report profile name")
	addRangeFlags(cmd, &gc.from, &gc.to)
	cmd.Flags().StringVar(&gc.outDir, "out", defaults.OutputDir, "Directory the report is written to")
	cmd.Flags().StringVar(&gc.s3.Bucket, "s3-bucket", defaults.S3.Bucket, "Upload the report to this S3 bucket")
	cmd.Flags().StringVar(&gc.s3.Prefix, "s3-prefix", defaults.S3.Prefix, "Key prefix inside the bucket")
	cmd.Flags().StringVar(&gc.s3.Profile, "aws-profile", defaults.S3.Profile, "AWS shared config profile")
	cmd.Flags().StringVar(&gc.s3.Region, "region", defaults.S3.Region, "AWS region")

	return cmd
}

func (gc *GenerateCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	rng, err := dateRange(gc.from, gc.to)
	if err != nil {
		return err
	}

	src := Source{Profiles: gc.profilesPath}
	if gc.input == "" {
		src.DbPath = gc.dbPath
	}
	svc, closeFn, err := gc.open(ctx, src)
	if err != nil {
		return fmt.Errorf("failed to open event store: %w", err)
	}
	defer closeFn()

	cfg, err := svc.ReportConfig(ctx, gc.profile, rng)
	if err != nil {
		return fmt.Errorf("failed to resolve report profile: %w", err)
	}

	txs, err := loadTransactions(ctx, svc, gc.input, cfg.DateRange)
	if err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}

	var sink reportexport.Sink = reportexport.NewFileSink(gc.outDir)
	if gc.s3.Bucket != "" {
		awsCfg, err := reportexport.LoadAWSConfig(ctx, gc.s3.Profile, gc.s3.Region)
		if err != nil {
			return err
		}
		sink = reportexport.NewS3SinkFromConfig(awsCfg, gc.s3.Bucket, gc.s3.Prefix)
	}

	location, err := svc.Publish(ctx, sink, txs, cfg)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Audit report with %d transactions written to %s\n", len(txs), location)
	return nil
}
