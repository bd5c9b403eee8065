package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare the input plan against alternative contribution strategies",
		Long: `Schedule the input plan and each alternative, then compare individual,
employer and after-tax totals.

Examples:
  paygo compare plan.yaml --with match_floor,even_spread
  paygo compare plan.yaml --transform set_max_percent:percent=30 --format csv
  paygo compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				templates := transform.CreateBuiltInTemplates()
				fmt.Fprintln(out, "Available templates:")
				for _, name := range templates.List() {
					t, _ := templates.Get(name)
					fmt.Fprintf(out, "  %-14s %s\n", t.Name, t.Description)
				}
				fmt.Fprintln(out, "\nAvailable transforms (use with --transform name:key=value):")
				for _, name := range transform.NewTransformRegistry().List() {
					fmt.Fprintf(out, "  %s\n", name)
				}
				return nil
			}

			if len(args) != 1 {
				return fmt.Errorf("an input file is required")
			}
			withStr, _ := cmd.Flags().GetString("with")
			specs, _ := cmd.Flags().GetStringArray("transform")
			if withStr == "" && len(specs) == 0 {
				return fmt.Errorf("--with or --transform is required")
			}

			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}
			formatter, err := compare.GetFormatter(comparisonFormat(cmd, opts))
			if err != nil {
				return err
			}

			input, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			scheduler := calculation.NewContributionScheduler()
			scheduler.SetLogger(opts.logger())
			engine := compare.NewCompareEngine(scheduler)

			var templates []string
			for _, name := range strings.Split(withStr, ",") {
				if name = strings.TrimSpace(name); name != "" {
					templates = append(templates, name)
				}
			}

			baseName := input.Name
			if baseName == "" {
				baseName = "base"
			}
			set, err := engine.Compare(cmd.Context(), input.Contribution, compare.CompareOptions{
				BasePlanName: baseName,
				Templates:    templates,
				Transforms:   specs,
			})
			if err != nil {
				return err
			}
			set.InputPath = args[0]

			text, err := formatter.Format(set)
			if err != nil {
				return err
			}
			fmt.Fprint(out, text)
			return nil
		},
	}
	cmd.Flags().String("with", "", "Comma-separated list of templates to compare")
	cmd.Flags().StringArray("transform", nil, "Ad hoc transform spec (name:key=value), repeatable")
	cmd.Flags().StringP("format", "f", "table", "Output format ("+strings.Join(compare.FormatNames, ", ")+")")
	cmd.Flags().Bool("list-templates", false, "List all available templates and transforms")
	return cmd
}

// comparisonFormat prefers the flag, then PAYGO_FORMAT, then the table
func comparisonFormat(cmd *cobra.Command, opts runOptions) string {
	if cmd.Flags().Changed("format") {
		return opts.format
	}
	if opts.format == "" || opts.format == "console" {
		return "table"
	}
	return opts.format
}
