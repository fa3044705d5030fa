package service

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/greengrowth-cpas/tax-agent/dto"
)

// Summary fields were sanitized at computation time; the template escapes
// again on render. Double-escaping an entity is cosmetic, not a correctness
// problem, for this document.
const reportTemplateText = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Tax Return Summary {{.FilingYear}}</title>
<style>
body { font-family: Arial, sans-serif; max-width: 640px; margin: 2em auto; color: #222; }
h1 { color: #2e7d32; }
table { width: 100%; border-collapse: collapse; }
td { padding: 8px 4px; border-bottom: 1px solid #ddd; }
td:last-child { text-align: right; }
.status { margin-top: 1.5em; font-weight: bold; }
.disclaimer { margin-top: 2em; font-size: 0.8em; color: #777; }
</style>
</head>
<body>
<h1>Federal Tax Return Summary</h1>
<table>
<tr><td>Employee Name</td><td>{{.EmployeeName}}</td></tr>
<tr><td>Employer Name</td><td>{{.EmployerName}}</td></tr>
<tr><td>Filing Year</td><td>{{.FilingYear}}</td></tr>
<tr><td>Filing Status</td><td>{{.FilingStatus}}</td></tr>
<tr><td>Total Income</td><td>${{printf "%.2f" .TotalIncome}}</td></tr>
<tr><td>Standard Deduction + Additional</td><td>${{printf "%.2f" .StandardDeduction}}</td></tr>
<tr><td>Taxable Income</td><td>${{printf "%.2f" .TaxableIncome}}</td></tr>
<tr><td>Estimated Tax Owed</td><td>${{printf "%.2f" .EstimatedTax}}</td></tr>
<tr><td>Tax Withheld</td><td>${{printf "%.2f" .TaxWithheld}}</td></tr>
<tr><td>Refund or Amount Due</td><td>${{printf "%.2f" .RefundOrDue}}</td></tr>
</table>
<p class="status">{{.StatusMessage}}</p>
<p class="disclaimer">This is a simplified estimate generated from your W-2. It is not professional tax advice.</p>
</body>
</html>
`

var reportTemplate = template.Must(template.New("report").Parse(reportTemplateText))

// ReportService formats a computed summary into the downloadable HTML return.
type ReportService struct{}

func NewReportService() *ReportService {
	return &ReportService{}
}

// Render always succeeds for a well-formed summary.
func (r *ReportService) Render(summary *dto.TaxSummary) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, summary); err != nil {
		return nil, fmt.Errorf("failed to render return summary: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename follows the tax_return_<FilingYear>.html download pattern.
func (r *ReportService) Filename(summary *dto.TaxSummary) string {
	return fmt.Sprintf("tax_return_%s.html", summary.FilingYear)
}
