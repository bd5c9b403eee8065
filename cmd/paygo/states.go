package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/spf13/cobra"
)

func statesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "states",
		Short: "List the state withholding rules in the tax tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd)
			if err != nil {
				return err
			}
			tables, err := config.LoadTaxTables(opts.tables)
			if err != nil {
				return err
			}
			states, err := calculation.NewStateWithholdingCalculatorFromConfig(tables.States)
			if err != nil {
				return fmt.Errorf("state tables: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tRULES")
			counts := map[calculation.VariantKind]int{}
			for _, s := range states.States() {
				kind := s.Variant.Kind()
				counts[kind]++
				fmt.Fprintf(w, "%s\t%s\t%s\n", s.Code, s.Name, kind)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d flat, %d bracketed, %d without data (tax year %d)\n",
				counts[calculation.VariantFlatRate], counts[calculation.VariantBracketed],
				counts[calculation.VariantUnknown], tables.Metadata.TaxYear)
			return nil
		},
	}
}
