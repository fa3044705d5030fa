package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/greengrowth-cpas/tax-agent/dto"
	"github.com/greengrowth-cpas/tax-agent/utils"
	"go.uber.org/zap"
)

// 2023 base standard deductions by filing status.
var standardDeductions = map[dto.FilingStatus]float64{
	dto.StatusSingle:                13850,
	dto.StatusMarriedFilingJointly:  27700,
	dto.StatusMarriedFilingSeparate: 13850,
	dto.StatusHeadOfHousehold:       20800,
}

// 2023 single-filer bracket schedule, applied for every filing status.
// A known simplification carried over from the original product behavior.
var brackets = []struct {
	upTo float64
	base float64
	rate float64
	over float64
}{
	{upTo: 11000, base: 0, rate: 0.10, over: 0},
	{upTo: 44725, base: 1100, rate: 0.12, over: 11000},
	{upTo: 95375, base: 5147, rate: 0.22, over: 44725},
	{upTo: math.Inf(1), base: 16290, rate: 0.24, over: 95375},
}

type TaxService struct {
	logger *zap.Logger
}

func NewTaxService(logger *zap.Logger) *TaxService {
	return &TaxService{logger: logger}
}

// ComputeSummary turns extracted W-2 fields into a full tax summary. It is a
// pure function of its inputs, never raises, and substitutes zeros for missing
// required fields while reporting them as warnings. A nil summary with a
// non-nil error signals total computation failure.
func (s *TaxService) ComputeSummary(
	fields dto.ExtractedFields,
	status dto.FilingStatus,
	additionalDeductions float64,
) (summary *dto.TaxSummary, warnings []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tax computation panicked", zap.Any("cause", r))
			summary = nil
			warnings = nil
			err = fmt.Errorf("tax computation failed: %v", r)
		}
	}()

	if missing := missingRequiredFields(fields); len(missing) > 0 {
		warning := "missing W-2 fields, using 0 for: " + strings.Join(missing, ", ")
		warnings = append(warnings, warning)
		s.logger.Warn("required W-2 fields missing", zap.Strings("fields", missing))
	}

	base, ok := standardDeductions[status]
	if !ok {
		base = standardDeductions[dto.StatusSingle]
	}
	deduction := base + additionalDeductions

	income := utils.SafeFloat(fields.Get(dto.FieldWages))
	withheld := utils.SafeFloat(fields.Get(dto.FieldFederalWithheld))

	taxable := math.Max(0, income-deduction)
	tax := math.Max(0, bracketTax(taxable))
	refundOrDue := round2(withheld - tax)

	statusMessage := fmt.Sprintf("You owe an estimated $%.2f in additional tax.", round2(tax-withheld))
	if refundOrDue > 0 {
		statusMessage = fmt.Sprintf("You are estimated to receive a refund of $%.2f.", refundOrDue)
	}

	summary = &dto.TaxSummary{
		EmployeeName:      utils.Sanitize(fields.Get(dto.FieldEmployeeName)),
		EmployerName:      utils.Sanitize(fields.Get(dto.FieldEmployerName)),
		FilingYear:        utils.Sanitize(fields.Get(dto.FieldFilingYear)),
		FilingStatus:      status.Label(),
		TotalIncome:       round2(income),
		StandardDeduction: round2(deduction),
		TaxableIncome:     round2(taxable),
		EstimatedTax:      round2(tax),
		TaxWithheld:       round2(withheld),
		RefundOrDue:       refundOrDue,
		StatusMessage:     statusMessage,
	}

	s.logger.Info("tax summary computed",
		zap.String("filing_status", string(status)),
		zap.Float64("taxable_income", summary.TaxableIncome),
		zap.Float64("refund_or_due", summary.RefundOrDue))

	return summary, warnings, nil
}

// bracketTax applies the progressive schedule to taxable income.
func bracketTax(taxable float64) float64 {
	for _, b := range brackets {
		if taxable <= b.upTo {
			return b.base + b.rate*(taxable-b.over)
		}
	}
	return 0
}

// missingRequiredFields reports required keys that are absent or falsy.
func missingRequiredFields(fields dto.ExtractedFields) []string {
	var missing []string
	for _, key := range dto.RequiredFields {
		switch v := fields.Get(key).(type) {
		case nil:
			missing = append(missing, key)
		case string:
			if v == "" {
				missing = append(missing, key)
			}
		case float64:
			if v == 0 {
				missing = append(missing, key)
			}
		case bool:
			if !v {
				missing = append(missing, key)
			}
		}
	}
	return missing
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
