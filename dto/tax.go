package dto

import "strings"

type FilingStatus string

const (
	StatusSingle                FilingStatus = "single"
	StatusMarriedFilingJointly  FilingStatus = "married_filing_jointly"
	StatusMarriedFilingSeparate FilingStatus = "married_filing_separately"
	StatusHeadOfHousehold       FilingStatus = "head_of_household"
)

// ParseFilingStatus normalizes a selector value. Unrecognized input falls back
// to single-filer semantics rather than erroring.
func ParseFilingStatus(s string) FilingStatus {
	switch FilingStatus(strings.ToLower(strings.TrimSpace(s))) {
	case StatusMarriedFilingJointly:
		return StatusMarriedFilingJointly
	case StatusMarriedFilingSeparate:
		return StatusMarriedFilingSeparate
	case StatusHeadOfHousehold:
		return StatusHeadOfHousehold
	default:
		return StatusSingle
	}
}

// Label returns the human-readable form used in the rendered return.
func (s FilingStatus) Label() string {
	switch s {
	case StatusMarriedFilingJointly:
		return "Married Filing Jointly"
	case StatusMarriedFilingSeparate:
		return "Married Filing Separately"
	case StatusHeadOfHousehold:
		return "Head of Household"
	default:
		return "Single"
	}
}

// TaxSummary is the computed result record. Name, employer and year are
// sanitized at computation time; currency fields are rounded to cents.
// RefundOrDue is signed: positive means refund, zero or negative means owed.
type TaxSummary struct {
	EmployeeName      string  `json:"employee_name"`
	EmployerName      string  `json:"employer_name"`
	FilingYear        string  `json:"filing_year"`
	FilingStatus      string  `json:"filing_status"`
	TotalIncome       float64 `json:"total_income"`
	StandardDeduction float64 `json:"standard_deduction"`
	TaxableIncome     float64 `json:"taxable_income"`
	EstimatedTax      float64 `json:"estimated_tax"`
	TaxWithheld       float64 `json:"tax_withheld"`
	RefundOrDue       float64 `json:"refund_or_due"`
	StatusMessage     string  `json:"status_message"`
}
