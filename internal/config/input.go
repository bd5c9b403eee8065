package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var hundred = decimal.NewFromInt(100)

// InputParser handles parsing of paycheck input documents
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a paycheck input from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.PaycheckInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a paycheck input document
func (ip *InputParser) Parse(data []byte) (*domain.PaycheckInput, error) {
	var input domain.PaycheckInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateConfiguration(&input); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &input, nil
}

// ValidateConfiguration checks the input for internal consistency and
// normalizes the filing status and state code in place. Reaching the caps is
// not required; those outcomes are reported on the schedule.
func (ip *InputParser) ValidateConfiguration(input *domain.PaycheckInput) error {
	status, err := domain.ParseFilingStatus(string(input.FilingStatus))
	if err != nil {
		return err
	}
	input.FilingStatus = status
	input.State = strings.ToUpper(strings.TrimSpace(input.State))

	if err := ip.validateContribution(&input.Contribution); err != nil {
		return fmt.Errorf("contribution validation failed: %w", err)
	}
	if input.ContributionPercent != nil {
		if err := validatePercent("contribution percent", *input.ContributionPercent); err != nil {
			return err
		}
	}
	if err := validatePercent("after-tax percent", input.AfterTaxPercent); err != nil {
		return err
	}
	return nil
}

// validateContribution validates the 401(k) parameters
func (ip *InputParser) validateContribution(p *domain.ContributionParameters) error {
	if p.Salary.LessThan(decimal.Zero) {
		return fmt.Errorf("salary cannot be negative")
	}
	if p.TotalPayPeriods <= 0 {
		return fmt.Errorf("total pay periods must be positive")
	}
	if p.PayPeriodsElapsed < 0 || p.PayPeriodsElapsed >= p.TotalPayPeriods {
		return fmt.Errorf("pay periods elapsed must be between 0 and %d", p.TotalPayPeriods-1)
	}

	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{"individual contributed so far", p.IndividualContributedSoFar},
		{"employer contributed so far", p.EmployerContributedSoFar},
		{"after-tax contributed so far", p.AfterTaxContributedSoFar},
		{"individual cap amount", p.IndividualCapAmount},
		{"total cap amount", p.TotalCapAmount},
	}
	for _, a := range amounts {
		if a.value.LessThan(decimal.Zero) {
			return fmt.Errorf("%s cannot be negative", a.name)
		}
	}

	percents := []struct {
		name  string
		value decimal.Decimal
	}{
		{"minimum contribution percent", p.MinContributionPercent},
		{"maximum contribution percent", p.MaxContributionPercent},
		{"employer match base percent", p.EmployerMatchBasePercent},
		{"employer match percent", p.EmployerMatchPercent},
		{"employer match up to percent", p.EmployerMatchUpToPercent},
	}
	for _, pc := range percents {
		if err := validatePercent(pc.name, pc.value); err != nil {
			return err
		}
	}

	if p.MinContributionPercent.GreaterThan(p.MaxContributionPercent) {
		return fmt.Errorf("minimum contribution percent cannot exceed maximum")
	}
	return nil
}

func validatePercent(name string, v decimal.Decimal) error {
	if v.LessThan(decimal.Zero) || v.GreaterThan(hundred) {
		return fmt.Errorf("%s must be between 0 and 100", name)
	}
	return nil
}
