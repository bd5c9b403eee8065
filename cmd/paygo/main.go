package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paygo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

// runOptions are the effective settings after flags are layered over the
// PAYGO_* environment
type runOptions struct {
	format string
	tables string
	debug  bool
	save   bool
}

func resolveOptions(cmd *cobra.Command) (runOptions, error) {
	env, err := config.LoadEnvOverrides()
	if err != nil {
		return runOptions{}, err
	}
	opts := runOptions{format: env.Format, tables: env.Tables, debug: env.Debug}

	flags := cmd.Flags()
	if flags.Changed("tables") {
		opts.tables, _ = flags.GetString("tables")
	}
	if flags.Changed("debug") {
		opts.debug, _ = flags.GetBool("debug")
	}
	if f := flags.Lookup("format"); f != nil && f.Changed {
		opts.format = f.Value.String()
	}
	if f := flags.Lookup("save"); f != nil {
		opts.save, _ = flags.GetBool("save")
	}
	return opts, nil
}

func (o runOptions) logger() calculation.Logger {
	if o.debug {
		return simpleCLILogger{}
	}
	return calculation.NopLogger{}
}

// loadCalculator builds the paycheck calculator from the selected tables
func loadCalculator(opts runOptions) (*calculation.PaycheckCalculator, *domain.TaxTables, error) {
	tables, err := config.LoadTaxTables(opts.tables)
	if err != nil {
		return nil, nil, err
	}
	calc, err := config.NewPaycheckCalculator(tables)
	if err != nil {
		return nil, nil, err
	}
	calc.SetLogger(opts.logger())
	return calc, tables, nil
}

// emit renders report to stdout, or to a timestamped file with --save
func emit(cmd *cobra.Command, opts runOptions, report *output.Report) error {
	f := output.GetFormatterByName(opts.format)
	if f == nil {
		return fmt.Errorf("unknown format %q (available: %s; aliases: %s)", opts.format,
			strings.Join(output.AvailableFormatterNames(), ", "),
			strings.Join(output.AvailableFormatAliases(), ", "))
	}
	if opts.save {
		filename, err := output.WriteFormatted(f, report, output.FileExtension(f))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report saved to %s\n", filename)
		return nil
	}
	data, err := f.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func withholdingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withholding [input-file]",
		Short: "Estimate the withholding on the next paycheck",
		Long: `Estimate federal, Social Security, Medicare and state withholding for one
paycheck. The pre-tax 401(k) deduction uses contribution_percent from the input,
or the contribution schedule's next pay period when it is not set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}
			input, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			calc, tables, err := loadCalculator(opts)
			if err != nil {
				return err
			}
			breakdown, err := calc.Compute(*input)
			if err != nil {
				return err
			}
			return emit(cmd, opts, &output.Report{Input: input, Tables: tables.Metadata, Paycheck: breakdown})
		},
	}
	addOutputFlags(cmd)
	return cmd
}

func scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule [input-file]",
		Short: "Plan 401(k) contributions for every pay period of the year",
		Long: `Front-load contributions at the maximum percent, then drop to the minimum so
the individual cap is reached by the last pay period. Remaining room under the
total cap is filled with after-tax contributions.

Examples:
  paygo schedule plan.yaml
  paygo schedule plan.yaml --format csv
  paygo schedule plan.yaml --paycheck --format pdf --save`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}
			input, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			calc, tables, err := loadCalculator(opts)
			if err != nil {
				return err
			}
			schedule, err := calc.Scheduler.Generate(input.Contribution)
			if err != nil {
				return err
			}
			report := &output.Report{Input: input, Tables: tables.Metadata, Schedule: schedule}

			if withPaycheck, _ := cmd.Flags().GetBool("paycheck"); withPaycheck {
				if report.Paycheck, err = calc.Compute(*input); err != nil {
					return err
				}
			}
			return emit(cmd, opts, report)
		},
	}
	addOutputFlags(cmd)
	cmd.Flags().Bool("paycheck", false, "Include the next paycheck's withholding breakdown")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate an input file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Input file %s is valid\n", args[0])
			return nil
		},
	}
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "paygo",
		Short: "Paycheck withholding and 401(k) contribution planner",
		Long: `Estimate paycheck withholding and plan 401(k) contributions so the annual
deferral cap is reached exactly on the last paycheck of the year.

Defaults can be set with PAYGO_TABLES, PAYGO_FORMAT and PAYGO_DEBUG; flags win.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("tables", "", "Path to a tax tables YAML file (default: built-in tables)")
	root.PersistentFlags().Bool("debug", false, "Enable debug output for detailed calculations")

	root.AddCommand(withholdingCmd())
	root.AddCommand(scheduleCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(statesCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
