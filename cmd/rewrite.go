package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/nsxbet/sql-uidx/pkg/config"
	"github.com/nsxbet/sql-uidx/pkg/logger"
	"github.com/nsxbet/sql-uidx/pkg/pgapply"
	"github.com/nsxbet/sql-uidx/pkg/pgparser"
	"github.com/nsxbet/sql-uidx/pkg/rewriter"
	"github.com/nsxbet/sql-uidx/pkg/types"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [flags] <sql-file>",
	Short: "Replace UNIQUE constraints with filtered unique indexes",
	Long: `Rewrite a DDL script. Every CREATE TABLE loses its UNIQUE constraints
and one CREATE UNIQUE INDEX ... WHERE ... per constraint is appended to the
script. Use "-" to read the script from stdin.

Conditions come from the config file ("conditions" mapping) or from
repeated --condition flags, e.g. --condition is_deleted=false
--condition deleted_at=null --condition "status='active'".`,
	Args: cobra.ExactArgs(1),
	RunE: runRewrite,
}

func init() {
	rootCmd.AddCommand(rewriteCmd)

	rewriteCmd.Flags().StringP("output", "o", "-", "output file, - for stdout")
	rewriteCmd.Flags().Bool("force", false, "overwrite the output file if it exists")
	rewriteCmd.Flags().StringP("dialect", "d", "", "target dialect (postgres)")
	rewriteCmd.Flags().StringArrayP("condition", "c", nil, "WHERE condition column=value, repeatable; replaces configured conditions")
	rewriteCmd.Flags().Bool("no-conditions", false, "generate indexes without a WHERE clause")
	rewriteCmd.Flags().Bool("check-syntax", false, "parse the rewritten script with the PostgreSQL grammar")
	rewriteCmd.Flags().String("verify-dsn", "", "apply the rewritten script to this PostgreSQL database and roll back")
	rewriteCmd.Flags().Duration("verify-timeout", 30*time.Second, "timeout for --verify-dsn")
	rewriteCmd.Flags().String("report", "text", "report format (text, json, yaml, none)")

	_ = viper.BindPFlag("output", rewriteCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("force", rewriteCmd.Flags().Lookup("force"))
	_ = viper.BindPFlag("dialect", rewriteCmd.Flags().Lookup("dialect"))
	_ = viper.BindPFlag("no-conditions", rewriteCmd.Flags().Lookup("no-conditions"))
	_ = viper.BindPFlag("check-syntax", rewriteCmd.Flags().Lookup("check-syntax"))
	_ = viper.BindPFlag("verify-dsn", rewriteCmd.Flags().Lookup("verify-dsn"))
	_ = viper.BindPFlag("verify-timeout", rewriteCmd.Flags().Lookup("verify-timeout"))
	_ = viper.BindPFlag("report", rewriteCmd.Flags().Lookup("report"))
}

// rewriteReport is the machine readable report.
type rewriteReport struct {
	Summary   rewriter.Summary        `yaml:"summary" json:"summary"`
	Tables    []rewriter.TableSummary `yaml:"tables" json:"tables"`
	Indexes   []string                `yaml:"indexes" json:"indexes"`
	Inventory *pgparser.Inventory     `yaml:"inventory,omitempty" json:"inventory,omitempty"`
	Verified  *pgapply.Report         `yaml:"verified,omitempty" json:"verified,omitempty"`
}

func runRewrite(cmd *cobra.Command, args []string) error {
	logLevel := slog.LevelInfo
	if viper.GetBool("debug") || viper.GetBool("verbose") {
		logLevel = slog.LevelDebug
	}
	logger.NewWithLevel(logLevel).SetDefault()

	slog.Debug("Starting rewrite command", "args", args)

	input, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	slog.Debug("Script read", "size", len(input))

	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return err
	}

	r, err := rewriter.New()
	if err != nil {
		return err
	}
	if err := r.WithConfigObject(cfg); err != nil {
		return err
	}

	result, err := r.Rewrite(string(input))
	if err != nil {
		return errors.Wrapf(err, "failed to rewrite %s", args[0])
	}
	slog.Info(result.String())

	report := &rewriteReport{Summary: result.Summary, Tables: result.Tables}
	for _, idx := range result.Indexes {
		report.Indexes = append(report.Indexes, idx.Name)
	}

	if viper.GetBool("check-syntax") {
		inv, err := pgparser.Inspect(result.Script)
		if err != nil {
			return errors.Wrap(err, "rewritten script does not parse")
		}
		if len(inv.Constraints) > 0 {
			slog.Warn("UNIQUE constraints remain after rewrite", "count", len(inv.Constraints))
		}
		report.Inventory = inv
	}

	if dsn := viper.GetString("verify-dsn"); dsn != "" {
		ctx, cancel := context.WithTimeout(cmd.Context(), viper.GetDuration("verify-timeout"))
		defer cancel()
		verified, err := pgapply.Apply(ctx, dsn, result.Script, report.Indexes...)
		if err != nil {
			return errors.Wrap(err, "verification failed")
		}
		if len(verified.Missing) > 0 {
			return errors.Errorf("verification failed: indexes not created: %s", strings.Join(verified.Missing, ", "))
		}
		report.Verified = verified
	}

	outPath := viper.GetString("output")
	if err := writeOutput(cmd, outPath, result.Script, viper.GetBool("force")); err != nil {
		return err
	}

	reportOut := cmd.OutOrStdout()
	if outPath == "" || outPath == "-" {
		reportOut = cmd.ErrOrStderr()
	}
	return outputReport(reportOut, report, viper.GetString("report"))
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read SQL from stdin")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read SQL file: %s", path)
	}
	return data, nil
}

func loadConfiguration(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	path := cfgFile
	if path == "" {
		// a discovered file is optional
		if used := viper.ConfigFileUsed(); used != "" {
			if _, err := os.Stat(used); err == nil {
				path = used
			}
		}
	}
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if d := viper.GetString("dialect"); d != "" {
		cfg.Dialect = d
	}

	pairs, err := cmd.Flags().GetStringArray("condition")
	if err != nil {
		return nil, err
	}
	if len(pairs) > 0 {
		conditions, err := parseConditions(pairs)
		if err != nil {
			return nil, err
		}
		cfg.Conditions = conditions
	}
	if viper.GetBool("no-conditions") {
		cfg.Conditions = types.NewConditionMap()
	}

	slog.Debug("Configuration loaded", "dialect", cfg.Dialect, "conditions", cfg.Conditions.Keys())
	return cfg, cfg.Validate()
}

// parseConditions turns column=value pairs into a ConditionMap, keeping the
// order of the flags.
func parseConditions(pairs []string) (*types.ConditionMap, error) {
	conditions := types.NewConditionMap()
	for _, pair := range pairs {
		column, value, ok := strings.Cut(pair, "=")
		column = strings.TrimSpace(column)
		if !ok || column == "" {
			return nil, types.InvalidArgument("condition %q is not column=value", pair)
		}
		conditions.Set(column, types.ParseValue(value))
	}
	return conditions, nil
}

func writeOutput(cmd *cobra.Command, path, script string, force bool) error {
	if path == "" || path == "-" {
		_, err := io.WriteString(cmd.OutOrStdout(), script)
		return err
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.Errorf("output file already exists: %s (use --force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write output file: %s", path)
	}
	slog.Debug("Output written", "file", path, "size", len(script))
	return nil
}

func outputReport(w io.Writer, report *rewriteReport, format string) error {
	switch format {
	case "none":
		return nil
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		return encoder.Encode(report)
	case "text":
		return outputText(w, report)
	default:
		return errors.Errorf("unsupported report format: %s", format)
	}
}

func outputText(w io.Writer, report *rewriteReport) error {
	if len(report.Indexes) == 0 {
		_, err := fmt.Fprintln(w, "No UNIQUE constraints found.")
		return err
	}

	for _, table := range report.Tables {
		fmt.Fprintf(w, "%s: %d single-column, %d composite\n", table.Name, table.SingleColumn, table.Composite)
	}
	for _, name := range report.Indexes {
		fmt.Fprintf(w, "  + %s\n", name)
	}
	if report.Verified != nil {
		fmt.Fprintf(w, "Verified: %d statements applied and rolled back\n", report.Verified.Executed)
	}
	_, err := fmt.Fprintf(w, "Summary: %d index(es) from %d of %d table(s)\n",
		len(report.Indexes), report.Summary.RewrittenTables, report.Summary.Tables)
	return err
}
