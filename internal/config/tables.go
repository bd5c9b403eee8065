package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed tax_tables.yaml
var defaultTaxTables []byte

// DefaultTaxTables returns the built-in withholding tables
func DefaultTaxTables() (*domain.TaxTables, error) {
	tables, err := ParseTaxTables(defaultTaxTables)
	if err != nil {
		return nil, fmt.Errorf("built-in tax tables: %w", err)
	}
	return tables, nil
}

// LoadTaxTables reads tables from path, or returns the built-in tables when
// path is empty
func LoadTaxTables(path string) (*domain.TaxTables, error) {
	if path == "" {
		return DefaultTaxTables()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tax tables %s: %w", path, err)
	}
	return ParseTaxTables(data)
}

// ParseTaxTables decodes a tax table document. Bracket shape is checked when
// the calculators are built.
func ParseTaxTables(data []byte) (*domain.TaxTables, error) {
	var tables domain.TaxTables
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("failed to parse tax tables: %w", err)
	}
	if len(tables.Federal) == 0 {
		return nil, fmt.Errorf("tax tables have no federal section")
	}
	for status := range tables.Federal {
		if !status.Valid() {
			return nil, fmt.Errorf("federal table for unknown filing status %q", status)
		}
	}
	return &tables, nil
}

// NewPaycheckCalculator builds every calculator from tables
func NewPaycheckCalculator(tables *domain.TaxTables) (*calculation.PaycheckCalculator, error) {
	federalTables, err := calculation.FilingStatusTablesFromConfig(tables.Federal)
	if err != nil {
		return nil, fmt.Errorf("federal tables: %w", err)
	}
	federal, err := calculation.NewFederalWithholdingCalculator(federalTables)
	if err != nil {
		return nil, err
	}

	ssTables, err := calculation.FilingStatusTablesFromConfig(tables.SocialSecurity)
	if err != nil {
		return nil, fmt.Errorf("social security tables: %w", err)
	}
	ss, err := calculation.NewPayrollTaxCalculator("social security", ssTables)
	if err != nil {
		return nil, err
	}

	medicareTables, err := calculation.FilingStatusTablesFromConfig(tables.Medicare)
	if err != nil {
		return nil, fmt.Errorf("medicare tables: %w", err)
	}
	medicare, err := calculation.NewPayrollTaxCalculator("medicare", medicareTables)
	if err != nil {
		return nil, err
	}

	states, err := calculation.NewStateWithholdingCalculatorFromConfig(tables.States)
	if err != nil {
		return nil, err
	}

	return calculation.NewPaycheckCalculator(federal, ss, medicare, states), nil
}
