package domain

import (
	"github.com/shopspring/decimal"
)

// TaxTables contains all withholding data that applies uniformly to every
// paycheck. Loaded from tax_tables.yaml and turned into calculators by the
// config package.
type TaxTables struct {
	Metadata       TableMetadata                    `yaml:"metadata" json:"metadata"`
	Federal        map[FilingStatus][]BracketConfig `yaml:"federal" json:"federal"`
	SocialSecurity map[FilingStatus][]BracketConfig `yaml:"social_security" json:"social_security"`
	Medicare       map[FilingStatus][]BracketConfig `yaml:"medicare" json:"medicare"`
	States         map[string]StateTaxConfig        `yaml:"states" json:"states"`
}

// TableMetadata describes where the tables came from
type TableMetadata struct {
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	Source      string `yaml:"source" json:"source"`
	Description string `yaml:"description" json:"description"`
}

// BracketConfig is a single marginal-rate row. A nil Max marks the open
// top bracket.
type BracketConfig struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// StateTaxConfig holds one state's withholding rules. A state with neither a
// flat rate nor brackets is listed but has no data.
type StateTaxConfig struct {
	Name                     string           `yaml:"name" json:"name"`
	FlatRate                 *decimal.Decimal `yaml:"flat_rate,omitempty" json:"flat_rate,omitempty"`
	Brackets                 []BracketConfig  `yaml:"brackets,omitempty" json:"brackets,omitempty"`
	MarriedBrackets          []BracketConfig  `yaml:"married_brackets,omitempty" json:"married_brackets,omitempty"`
	StandardDeduction        *decimal.Decimal `yaml:"standard_deduction,omitempty" json:"standard_deduction,omitempty"`
	MarriedStandardDeduction *decimal.Decimal `yaml:"married_standard_deduction,omitempty" json:"married_standard_deduction,omitempty"`
}
