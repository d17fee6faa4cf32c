// Package main provides the plancheck binary entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsawler/plancheck"
	"github.com/tsawler/plancheck/config"
	"github.com/tsawler/plancheck/export"
	"github.com/tsawler/plancheck/rules"
)

const (
	Version = "0.1.0"
	appName = "plancheck"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Building-plan compliance checker",
		Long: `Plancheck extracts compliance components (rooms, setbacks, openings,
parking, egress, fire safety, accessibility) from vector architectural PDF
drawings and grades them against a building-code rule set.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(logLevel)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(extractCmd())
	cmd.AddCommand(checkCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	})

	return cmd
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

func extractCmd() *cobra.Command {
	var (
		configPath string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "extract <plan.pdf>",
		Short: "Extract compliance components without evaluating them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := buildChecker(args[0], configPath)
			if err != nil {
				return err
			}

			result, warnings, err := checker.Components()
			if err != nil {
				return err
			}
			logWarnings(warnings)

			report := export.BuildComponentsReport(args[0], result.Registry, result.DrawingTypes)
			out := filepath.Join(outDir, "components.json")
			if err := export.WriteFile(out, report); err != nil {
				return err
			}

			summary := result.Registry.Summarize()
			slog.Info("Extraction complete",
				"sheets", summary.SheetCount,
				"components", summary.ComponentCount,
				"output", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	return cmd
}

func checkCmd() *cobra.Command {
	var (
		configPath string
		rulesPath  string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:   "check <plan.pdf>",
		Short: "Extract components and grade them against a rule set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ruleSet, err := rules.LoadRuleFile(rulesPath)
			if err != nil {
				return err
			}
			slog.Info("Rules loaded", "count", len(ruleSet), "file", rulesPath)

			checker, err := buildChecker(args[0], configPath)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			report, warnings, err := checker.Evaluate(ctx, rules.NewMemoryStore(ruleSet))
			if err != nil {
				return err
			}
			logWarnings(warnings)

			componentsOut := filepath.Join(outDir, "components.json")
			if err := export.WriteFile(componentsOut, export.BuildComponentsReport(args[0], report.Result.Registry, report.Result.DrawingTypes)); err != nil {
				return err
			}
			complianceOut := filepath.Join(outDir, "compliance.json")
			if err := export.WriteFile(complianceOut, report.Compliance); err != nil {
				return err
			}

			meta := report.Compliance.Metadata
			slog.Info("Compliance run complete",
				"run_id", meta.RunID,
				"components", meta.TotalComponents,
				"evaluations", len(report.Evaluations),
				"pass_rate", fmt.Sprintf("%.0f%%", meta.PassRate*100),
				"output", complianceOut)

			if meta.StatusBreakdown["FAIL"] > 0 {
				slog.Warn("Compliance failures found", "count", meta.StatusBreakdown["FAIL"])
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "rules.json", "Rule set file path (JSON)")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Output directory")
	return cmd
}

func buildChecker(filename, configPath string) (*plancheck.Checker, error) {
	checker := plancheck.Open(filename)
	if configPath == "" {
		return checker, nil
	}

	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	slog.Debug("Config loaded", "file", configPath)
	return checker.WithConfig(cfg), nil
}

func logWarnings(warnings []plancheck.Warning) {
	for _, w := range warnings {
		if w.Sheet > 0 {
			slog.Warn(w.Message, "code", w.Code, "sheet", w.Sheet)
		} else {
			slog.Warn(w.Message, "code", w.Code)
		}
	}
}
