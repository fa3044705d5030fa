package dto

import "errors"

// CalculateRequest carries the user-chosen filing status and any manual
// deduction adjustment on top of the standard deduction.
type CalculateRequest struct {
	FilingStatus         string  `json:"filing_status"`
	AdditionalDeductions float64 `json:"additional_deductions"`
}

// Validate performs basic validation on the request
func (r *CalculateRequest) Validate() error {
	if r.AdditionalDeductions < 0 {
		return errors.New("additional deductions cannot be negative")
	}
	return nil
}

// ChatRequest is one user question for the conversation endpoint.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}
