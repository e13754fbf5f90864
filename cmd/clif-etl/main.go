package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/openclif/clif-etl/internal/config"
	"github.com/openclif/clif-etl/internal/domain/etl"
	"github.com/openclif/clif-etl/internal/domain/mapping"
	"github.com/openclif/clif-etl/internal/platform/db"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clif-etl",
		Short: "Normalize open ICU datasets into the CLIF schema",
	}

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(sourcesCmd())
	rootCmd.AddCommand(mappingsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger
}

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the ETL pipeline for one source dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, _ := cmd.Flags().GetString("source")
			path, _ := cmd.Flags().GetString("path")
			output, _ := cmd.Flags().GetString("output")
			sink, _ := cmd.Flags().GetString("sink")
			strict, _ := cmd.Flags().GetBool("strict")
			return runETL(source, path, output, sink, strict, cmd.Flags().Changed("strict"))
		},
	}
	cmd.Flags().StringP("source", "s", "", "Source dataset name ("+strings.Join(etl.Sources, ", ")+")")
	cmd.Flags().StringP("path", "p", "", "Path to the source dataset directory")
	cmd.Flags().StringP("output", "o", "", "Output directory (default: <path>/clif_output)")
	cmd.Flags().String("sink", "", "Output backend: parquet or postgres (default: config SINK)")
	cmd.Flags().Bool("strict", false, "Fail on duplicate identifier claims within a domain")
	cmd.MarkFlagRequired("source")
	cmd.MarkFlagRequired("path")
	return cmd
}

func runETL(source, dataPath, output, sink string, strict, strictSet bool) error {
	logger := newLogger()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if sink != "" {
		cfg.Sink = sink
	}
	if strictSet {
		cfg.StrictMapping = strict
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !etl.SupportedSource(source) {
		return fmt.Errorf("unsupported source dataset: %s (known: %s)", source, strings.Join(etl.Sources, ", "))
	}
	if _, err := os.Stat(dataPath); err != nil {
		return fmt.Errorf("source path does not exist: %s", dataPath)
	}

	if output == "" {
		output = cfg.OutputDir
	}
	if output == "" {
		output = dataPath + "/clif_output"
	}

	ctx := context.Background()
	var writer etl.Writer
	switch cfg.Sink {
	case "postgres":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		logger.Info().Msg("connected to database")
		writer = etl.NewPostgresWriter(pool)
	default:
		writer = etl.NewParquetWriter(output)
	}

	svc := etl.NewService(mapping.NewFileRepository(cfg.MappingsDir), writer, logger, cfg.StrictMapping)
	results, err := svc.Run(ctx, source, dataPath)
	if err != nil {
		logger.Error().Err(err).Msg("run failed")
		return err
	}

	for _, r := range results {
		switch r.Status {
		case etl.StatusWritten:
			fmt.Printf("%-20s written  %8d rows  %s\n", r.Domain, r.Rows, r.Location)
		case etl.StatusSkipped:
			fmt.Printf("%-20s skipped  (%s)\n", r.Domain, r.Note)
		}
	}
	return nil
}

func sourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List supported source datasets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, s := range etl.Sources {
				fmt.Println(s)
			}
		},
	}
}

func mappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Inspect mapping artifacts",
	}

	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate mapping artifacts for every concept domain",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return checkMappings(cfg.MappingsDir)
		},
	}
	cmd.AddCommand(checkCmd)
	return cmd
}

// checkMappings loads every domain artifact and reports, per dataset,
// identifier lists that resolve cleanly vs duplicate claims.
func checkMappings(dir string) error {
	repo := mapping.NewFileRepository(dir)
	failed := false

	fmt.Printf("%-20s %-10s %-8s %s\n", "DOMAIN", "ENTRIES", "STATUS", "DETAIL")
	fmt.Println("-------------------- ---------- -------- --------------------")
	for _, domain := range mapping.Domains() {
		entries, err := repo.Load(domain)
		if err != nil {
			failed = true
			fmt.Printf("%-20s %-10s %-8s %v\n", domain, "-", "error", err)
			continue
		}
		var problems []string
		for _, dataset := range etl.Sources {
			if dataset == "eicu" && domain == mapping.Labs {
				_, err = mapping.ResolveLabels(entries, dataset, true)
			} else {
				_, err = mapping.ResolveNumeric(entries, dataset, true)
			}
			if err != nil {
				problems = append(problems, err.Error())
			}
		}
		if len(problems) > 0 {
			failed = true
			fmt.Printf("%-20s %-10d %-8s %s\n", domain, len(entries), "dup", strings.Join(problems, "; "))
			continue
		}
		fmt.Printf("%-20s %-10d %-8s\n", domain, len(entries), "ok")
	}

	if failed {
		return fmt.Errorf("mapping check failed")
	}
	return nil
}
