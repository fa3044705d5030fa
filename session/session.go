package session

import (
	"sync"
	"time"

	"github.com/greengrowth-cpas/tax-agent/dto"
)

// Session holds all per-visitor state for one browser session: the extracted
// document text, the parsed W-2 fields, the computed summary, and the chat
// transcript. The presence of a summary is the sole discriminator between the
// upload flow and the data-aware Q&A flow. Accessors are goroutine-safe; one
// logical actor drives a session, but the HTTP server is concurrent.
type Session struct {
	ID string

	mu       sync.RWMutex
	lastSeen time.Time
	rawText  string
	fields   dto.ExtractedFields
	summary  *dto.TaxSummary
	history  []dto.ChatMessage
}

func newSession(id string) *Session {
	return &Session{
		ID:       id,
		lastSeen: time.Now(),
		history:  dto.NewTranscript(),
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) SetRawText(text string) {
	s.mu.Lock()
	s.rawText = text
	s.mu.Unlock()
}

func (s *Session) RawText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rawText
}

func (s *Session) SetFields(fields dto.ExtractedFields) {
	s.mu.Lock()
	s.fields = fields
	s.mu.Unlock()
}

func (s *Session) Fields() dto.ExtractedFields {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fields
}

// SetSummary stores the computed summary. Summaries are immutable once stored;
// a recalculation replaces the record wholesale.
func (s *Session) SetSummary(summary *dto.TaxSummary) {
	s.mu.Lock()
	s.summary = summary
	s.mu.Unlock()
}

func (s *Session) Summary() *dto.TaxSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}

// AppendMessage adds one transcript entry. The transcript is append-only.
func (s *Session) AppendMessage(role, content string) {
	s.mu.Lock()
	s.history = append(s.history, dto.ChatMessage{Role: role, Content: content})
	s.mu.Unlock()
}

// History returns a copy of the transcript.
func (s *Session) History() []dto.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]dto.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}
