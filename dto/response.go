package dto

import "errors"

// Custom errors
var (
	ErrNoExtractedFields = errors.New("no extracted W-2 fields in session; upload a form first")
	ErrNoSummary         = errors.New("no tax summary in session; run a calculation first")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// UploadResponse reports the outcome of a W-2 upload and extraction pass.
type UploadResponse struct {
	Fields       ExtractedFields `json:"fields"`
	RawTextChars int             `json:"raw_text_chars"`
	Warnings     []string        `json:"warnings,omitempty"`
	ProcessedAt  string          `json:"processed_at"`
}

// CalculateResponse wraps the computed summary with any non-fatal warnings
// (typically missing required W-2 fields).
type CalculateResponse struct {
	Summary  *TaxSummary `json:"summary"`
	Warnings []string    `json:"warnings,omitempty"`
}

// ChatResponse is the assistant reply to one question.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// SessionStateResponse is the snapshot the front end uses for view selection.
// HasSummary is the sole discriminator between upload and Q&A views.
type SessionStateResponse struct {
	SessionID  string `json:"session_id"`
	HasRawText bool   `json:"has_raw_text"`
	HasFields  bool   `json:"has_fields"`
	HasSummary bool   `json:"has_summary"`
	Messages   int    `json:"messages"`
}
