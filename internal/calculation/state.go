package calculation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
)

// VariantKind names the shape of a state's withholding rules
type VariantKind int

const (
	VariantUnknown VariantKind = iota
	VariantFlatRate
	VariantBracketed
)

func (k VariantKind) String() string {
	switch k {
	case VariantFlatRate:
		return "flat"
	case VariantBracketed:
		return "bracketed"
	default:
		return "undefined"
	}
}

// TaxVariant is one of Unknown, FlatRate or Bracketed
type TaxVariant interface {
	Kind() VariantKind
	deductions() Deductions
}

// Deductions are subtracted from gross income before any rate applies
type Deductions struct {
	Standard *decimal.Decimal
	Married  *decimal.Decimal
}

// For picks the married deduction for joint filers when one is defined
func (d Deductions) For(status domain.FilingStatus) decimal.Decimal {
	if status == domain.MarriedFilingJointly && d.Married != nil {
		return *d.Married
	}
	if d.Standard != nil {
		return *d.Standard
	}
	return decimal.Zero
}

// Unknown marks a jurisdiction without withholding data
type Unknown struct{}

func (Unknown) Kind() VariantKind      { return VariantUnknown }
func (Unknown) deductions() Deductions { return Deductions{} }

// FlatRate applies a single rate to taxable income
type FlatRate struct {
	Rate decimal.Decimal
	Deductions
}

func (FlatRate) Kind() VariantKind        { return VariantFlatRate }
func (f FlatRate) deductions() Deductions { return f.Deductions }

// Bracketed applies a progressive table; joint filers use Married when set
type Bracketed struct {
	Brackets *BracketTable
	Married  *BracketTable
	Deductions
}

func (Bracketed) Kind() VariantKind        { return VariantBracketed }
func (b Bracketed) deductions() Deductions { return b.Deductions }

func (b Bracketed) tableFor(status domain.FilingStatus) *BracketTable {
	if status == domain.MarriedFilingJointly && b.Married != nil {
		return b.Married
	}
	return b.Brackets
}

var ErrAmbiguousStateVariant = errors.New("state defines both a flat rate and brackets")

// StateVariantFromConfig turns a YAML entry into its variant
func StateVariantFromConfig(cfg domain.StateTaxConfig) (TaxVariant, error) {
	ded := Deductions{Standard: cfg.StandardDeduction, Married: cfg.MarriedStandardDeduction}
	switch {
	case cfg.FlatRate != nil && len(cfg.Brackets) > 0:
		return nil, ErrAmbiguousStateVariant
	case cfg.FlatRate != nil:
		if len(cfg.MarriedBrackets) > 0 {
			return nil, errors.New("married brackets given for a flat-rate state")
		}
		return FlatRate{Rate: *cfg.FlatRate, Deductions: ded}, nil
	case len(cfg.Brackets) > 0:
		single, err := BracketTableFromConfig(cfg.Brackets)
		if err != nil {
			return nil, fmt.Errorf("brackets: %w", err)
		}
		v := Bracketed{Brackets: single, Deductions: ded}
		if len(cfg.MarriedBrackets) > 0 {
			if v.Married, err = BracketTableFromConfig(cfg.MarriedBrackets); err != nil {
				return nil, fmt.Errorf("married brackets: %w", err)
			}
		}
		return v, nil
	case len(cfg.MarriedBrackets) > 0:
		return nil, errors.New("married brackets given without default brackets")
	default:
		return Unknown{}, nil
	}
}

// StateEntry is a registered jurisdiction
type StateEntry struct {
	Code    string
	Name    string
	Variant TaxVariant
}

// StateResult is the outcome of a state lookup. Undefined is informational:
// an undefined jurisdiction withholds zero, same as a no-tax state.
type StateResult struct {
	Amount        decimal.Decimal
	TaxableIncome decimal.Decimal
	Kind          VariantKind
	Undefined     bool
}

// StateWithholdingCalculator dispatches on a state's TaxVariant
type StateWithholdingCalculator struct {
	states map[string]StateEntry
	Logger Logger
}

// NewStateWithholdingCalculator registers entries by upper-cased code
func NewStateWithholdingCalculator(entries []StateEntry) *StateWithholdingCalculator {
	states := make(map[string]StateEntry, len(entries))
	for _, e := range entries {
		e.Code = normalizeStateCode(e.Code)
		if e.Variant == nil {
			e.Variant = Unknown{}
		}
		states[e.Code] = e
	}
	return &StateWithholdingCalculator{states: states, Logger: NopLogger{}}
}

// NewStateWithholdingCalculatorFromConfig validates and registers every state
func NewStateWithholdingCalculatorFromConfig(cfg map[string]domain.StateTaxConfig) (*StateWithholdingCalculator, error) {
	entries := make([]StateEntry, 0, len(cfg))
	for code, sc := range cfg {
		v, err := StateVariantFromConfig(sc)
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", code, err)
		}
		entries = append(entries, StateEntry{Code: code, Name: sc.Name, Variant: v})
	}
	return NewStateWithholdingCalculator(entries), nil
}

// SetLogger installs l, or the no-op logger for nil
func (sc *StateWithholdingCalculator) SetLogger(l Logger) {
	sc.Logger = loggerOrNop(l)
}

// Compute returns annual state withholding; undefined jurisdictions yield zero
func (sc *StateWithholdingCalculator) Compute(code string, income decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	return sc.Withholding(code, income, status).Amount
}

// Withholding is Compute plus the variant kind and the undefined marker
func (sc *StateWithholdingCalculator) Withholding(code string, income decimal.Decimal, status domain.FilingStatus) StateResult {
	variant := sc.Variant(code)
	if variant.Kind() == VariantUnknown {
		sc.Logger.Infof("no withholding data for state %q, using zero", code)
		return StateResult{Amount: decimal.Zero, TaxableIncome: decimal.Zero, Kind: VariantUnknown, Undefined: true}
	}

	taxable := income.Sub(variant.deductions().For(status))
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	res := StateResult{TaxableIncome: taxable, Kind: variant.Kind()}
	switch v := variant.(type) {
	case FlatRate:
		res.Amount = taxable.Mul(v.Rate)
	case Bracketed:
		res.Amount = v.tableFor(status).Evaluate(taxable)
	}
	return res
}

// Variant returns the registered variant, Unknown for unregistered codes
func (sc *StateWithholdingCalculator) Variant(code string) TaxVariant {
	if e, ok := sc.states[normalizeStateCode(code)]; ok {
		return e.Variant
	}
	return Unknown{}
}

// States lists registered jurisdictions sorted by code
func (sc *StateWithholdingCalculator) States() []StateEntry {
	out := make([]StateEntry, 0, len(sc.states))
	for _, e := range sc.states {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func normalizeStateCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
