package service

import (
	"testing"

	"github.com/greengrowth-cpas/tax-agent/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() *dto.TaxSummary {
	return &dto.TaxSummary{
		EmployeeName:      "John Doe",
		EmployerName:      "Acme Corp",
		FilingYear:        "2023",
		FilingStatus:      "Single",
		TotalIncome:       50000,
		StandardDeduction: 13850,
		TaxableIncome:     36150,
		EstimatedTax:      4118,
		TaxWithheld:       6000,
		RefundOrDue:       1882,
		StatusMessage:     "You are estimated to receive a refund of $1882.00.",
	}
}

func TestRenderEmbedsEveryField(t *testing.T) {
	doc, err := NewReportService().Render(sampleSummary())

	require.NoError(t, err)
	html := string(doc)
	assert.Contains(t, html, "John Doe")
	assert.Contains(t, html, "Acme Corp")
	assert.Contains(t, html, "2023")
	assert.Contains(t, html, "Single")
	assert.Contains(t, html, "$50000.00")
	assert.Contains(t, html, "$13850.00")
	assert.Contains(t, html, "$36150.00")
	assert.Contains(t, html, "$4118.00")
	assert.Contains(t, html, "$6000.00")
	assert.Contains(t, html, "$1882.00")
	assert.Contains(t, html, "refund")
}

func TestRenderEscapesHostileText(t *testing.T) {
	summary := sampleSummary()
	// Simulates a field that slipped through unsanitized.
	summary.EmployeeName = "<script>alert(1)</script>"

	doc, err := NewReportService().Render(summary)

	require.NoError(t, err)
	assert.NotContains(t, string(doc), "<script>alert")
}

func TestFilenamePattern(t *testing.T) {
	svc := NewReportService()
	assert.Equal(t, "tax_return_2023.html", svc.Filename(sampleSummary()))
}
