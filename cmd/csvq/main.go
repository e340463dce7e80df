// Package main provides the CLI entry point for csvq.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vegasq/csvq/internal/config"
	"github.com/vegasq/csvq/internal/logger"
	"github.com/vegasq/csvq/output"
	"github.com/vegasq/csvq/query"
	"github.com/vegasq/csvq/reader"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// profileSamples is the number of distinct values shown per column in
// schema mode
const profileSamples = 3

// Build information (set via ldflags during build)
var version = "dev"

// options holds the parsed command-line flags
type options struct {
	file      onceString
	where     onceString
	aggregate onceString
	orderBy   onceString

	format     string
	limit      int
	schema     bool
	configPath string
	verbose    bool
	quiet      bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command with args and returns the process exit code
func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		reportError(stderr, err)
		return ExitFailure
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "csvq --file <path> [flags]",
		Short: "csvq - filter, sort and aggregate CSV files",
		Long: `csvq queries a CSV file (or Parquet, optionally compressed) from the
command line: filter rows by one condition, sort by one column and compute
avg, min or max over a numeric column.

Expressions:
  --where     <column><op><value>   op is one of =, >, <
  --aggregate <column>=<op>         op is one of avg, min, max
  --order-by  <column>=<dir>        dir is one of asc, desc

Examples:
  csvq -f products.csv
  csvq -f products.csv --where "price>100" --order-by "price=desc"
  csvq -f products.csv --where "brand=apple" --aggregate "rating=avg"
  csvq -f "sales/*.csv.gz" --format json --limit 20
  csvq -f products.parquet --schema`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.VarP(&opts.file, "file", "f", "Path to the CSV or Parquet file (glob patterns allowed)")
	flags.Var(&opts.where, "where", `Filter condition, e.g. "price>100"`)
	flags.Var(&opts.aggregate, "aggregate", `Aggregation, e.g. "rating=avg"`)
	flags.Var(&opts.orderBy, "order-by", `Sort order, e.g. "price=desc"`)
	flags.StringVar(&opts.format, "format", "", "Output format: table, csv, json (default from config, table)")
	flags.IntVar(&opts.limit, "limit", 0, "Limit number of rows listed (0 = unlimited)")
	flags.BoolVar(&opts.schema, "schema", false, "Show column profiles instead of data")
	flags.StringVar(&opts.configPath, "config", "", "Path to a YAML configuration file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug diagnostics")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Only report errors")
	_ = cmd.MarkFlagRequired("file")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	if opts.schema && (opts.where.set || opts.aggregate.set || opts.orderBy.set) {
		return fmt.Errorf("--schema cannot be combined with --where, --aggregate or --order-by")
	}

	q, err := parseQuery(opts, cfg.Output.Limit)
	if err != nil {
		return err
	}

	formatter, err := output.New(cfg.Output.Format, cmd.OutOrStdout(), output.Options{
		MaxCellWidth: cfg.Output.MaxCellWidth,
	})
	if err != nil {
		return err
	}

	ds, err := loadDataset(opts.file.value, cfg, log)
	if err != nil {
		return err
	}

	if opts.schema {
		return formatter.FormatProfile(query.Profile(ds, profileSamples))
	}

	log.Debug("executing query", "where", q.Where, "aggregate", q.Aggregate, "order_by", q.OrderBy, "limit", q.Limit)
	res, err := q.Execute(ds, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if q.Where != nil && res.Rows.Len() == 0 {
		_, err := fmt.Fprintln(out, "no rows matched the filter condition")
		return err
	}

	if res.Aggregated {
		if res.Aggregate == nil {
			_, err := fmt.Fprintln(out, "aggregation produced no result: no numeric values")
			return err
		}
		return formatter.FormatAggregate(res.Aggregate)
	}

	if res.Rows.Len() == 0 {
		_, err := fmt.Fprintln(out, "no data to display")
		return err
	}
	return formatter.Format(res.Rows)
}

// loadConfig layers the YAML file, the environment and explicit flags
func loadConfig(cmd *cobra.Command, opts *options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("format") {
		cfg.Output.Format = opts.format
	}
	if cmd.Flags().Changed("limit") {
		if opts.limit < 0 {
			return cfg, fmt.Errorf("--limit must be non-negative, got %d", opts.limit)
		}
		cfg.Output.Limit = opts.limit
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "table"
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config, opts *options, w io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	switch {
	case opts.verbose:
		level = slog.LevelDebug
	case opts.quiet:
		level = slog.LevelError
	}

	lc := logger.DefaultConfig()
	lc.Level = level
	lc.Format = cfg.Log.Format
	lc.Writer = w

	log, _ := logger.WithRun(logger.New(lc))
	return log, nil
}

func parseQuery(opts *options, limit int) (*query.Query, error) {
	q := &query.Query{Limit: limit}

	where, err := query.ParseCondition(opts.where.value)
	if err != nil {
		return nil, err
	}
	q.Where = where

	if opts.aggregate.set {
		agg, err := query.ParseAggregation(opts.aggregate.value)
		if err != nil {
			return nil, err
		}
		q.Aggregate = &agg
	}

	if opts.orderBy.set {
		spec, err := query.ParseSort(opts.orderBy.value)
		if err != nil {
			return nil, err
		}
		q.OrderBy = &spec
	}

	return q, nil
}

func loadDataset(path string, cfg config.Config, log *slog.Logger) (*query.Dataset, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("--file must not be empty")
	}

	var readerOpts []reader.Option
	delim, err := cfg.Reader.DelimiterRune()
	if err != nil {
		return nil, err
	}
	if delim != 0 {
		readerOpts = append(readerOpts, reader.WithDelimiter(delim))
	}

	if !reader.IsGlob(path) && !reader.KnownExtension(path) {
		log.Warn("unrecognised file extension, reading as CSV", "path", path)
	}

	ds, err := reader.LoadGlob(path, readerOpts...)
	if err != nil {
		return nil, err
	}
	log.Debug("dataset loaded", "path", path, "rows", ds.Len(), "columns", len(ds.Columns()))
	return ds, nil
}

// reportError prints err and, for query errors, a hint on how to fix it
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)

	var exprErr *query.ExpressionError
	var colErr *query.ColumnError
	switch {
	case errors.As(err, &exprErr):
		fmt.Fprintf(w, "\n%s\n", expressionHint(exprErr.Kind))
	case errors.As(err, &colErr):
		fmt.Fprintf(w, "\nColumn names are case-sensitive and must match the header exactly.\nAvailable columns: %s\n",
			strings.Join(colErr.Available, ", "))
	case errors.Is(err, reader.ErrSourceUnavailable):
		fmt.Fprintf(w, "Please check the file path and try again.\n")
	}
}

func expressionHint(kind query.ExprKind) string {
	switch kind {
	case query.KindCondition:
		return "Condition format: <column><op><value>, op one of =, >, <\nExample: --where \"price>100\""
	case query.KindAggregation:
		return "Aggregation format: <column>=<op>, op one of avg, min, max\nExample: --aggregate \"rating=avg\""
	case query.KindSort:
		return "Sort format: <column>=<direction>, direction one of asc, desc\nExample: --order-by \"price=desc\""
	default:
		return ""
	}
}
