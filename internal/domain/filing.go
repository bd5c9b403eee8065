package domain

import (
	"fmt"
	"strings"
)

// FilingStatus is the federal filing status a withholding table is keyed by
type FilingStatus string

const (
	Single                  FilingStatus = "single"
	MarriedFilingJointly    FilingStatus = "married_filing_jointly"
	MarriedFilingSeparately FilingStatus = "married_filing_separately"
	HeadOfHousehold         FilingStatus = "head_of_household"
)

// FilingStatuses lists the supported statuses in display order
var FilingStatuses = []FilingStatus{Single, MarriedFilingJointly, MarriedFilingSeparately, HeadOfHousehold}

// ParseFilingStatus accepts the canonical names and the common short forms
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "s":
		return Single, nil
	case "married_filing_jointly", "mfj", "married":
		return MarriedFilingJointly, nil
	case "married_filing_separately", "mfs":
		return MarriedFilingSeparately, nil
	case "head_of_household", "hoh":
		return HeadOfHousehold, nil
	}
	return "", fmt.Errorf("unknown filing status %q", s)
}

// Valid reports whether fs is one of the four supported statuses
func (fs FilingStatus) Valid() bool {
	switch fs {
	case Single, MarriedFilingJointly, MarriedFilingSeparately, HeadOfHousehold:
		return true
	}
	return false
}

// Label returns a human readable name
func (fs FilingStatus) Label() string {
	switch fs {
	case Single:
		return "Single"
	case MarriedFilingJointly:
		return "Married Filing Jointly"
	case MarriedFilingSeparately:
		return "Married Filing Separately"
	case HeadOfHousehold:
		return "Head of Household"
	default:
		return string(fs)
	}
}
