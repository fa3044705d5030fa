package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/greengrowth-cpas/tax-agent/client"
	"github.com/greengrowth-cpas/tax-agent/dto"
	"github.com/greengrowth-cpas/tax-agent/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type completionCall struct {
	system   string
	messages []client.Message
}

// stubCompleter replays canned results and records every call.
type stubCompleter struct {
	calls   []completionCall
	results []stubResult
}

type stubResult struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(_ context.Context, systemPrompt string, messages []client.Message) (string, error) {
	s.calls = append(s.calls, completionCall{system: systemPrompt, messages: messages})
	if len(s.results) == 0 {
		return "", errors.New("stub exhausted")
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r.reply, r.err
}

func newChatSession(t *testing.T) *session.Session {
	t.Helper()
	return session.NewStore(time.Hour, zap.NewNop()).Create()
}

func TestRespondGeneralModeIncludesTranscript(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{{reply: "Upload your W-2 to get started."}}}
	svc := NewChatService(stub, false, zap.NewNop())
	sess := newChatSession(t)

	reply := svc.Respond(context.Background(), sess, "how do I begin?")

	assert.Equal(t, "Upload your W-2 to get started.", reply)
	require.Len(t, stub.calls, 1)
	assert.Equal(t, generalSystemPrompt, stub.calls[0].system)
	// Seeded greeting plus the new question.
	require.Len(t, stub.calls[0].messages, 2)
	assert.Equal(t, dto.Greeting, stub.calls[0].messages[0].Content)
	assert.Equal(t, "how do I begin?", stub.calls[0].messages[1].Content)

	history := sess.History()
	require.Len(t, history, 3)
	assert.Equal(t, dto.RoleUser, history[1].Role)
	assert.Equal(t, "how do I begin?", history[1].Content)
	assert.Equal(t, dto.RoleAssistant, history[2].Role)
	assert.Equal(t, reply, history[2].Content)
}

func TestRespondDataAwareModeEmbedsSessionData(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{{reply: "Your refund is $1882.00."}}}
	svc := NewChatService(stub, false, zap.NewNop())
	sess := newChatSession(t)
	sess.AppendMessage(dto.RoleUser, "earlier question")
	sess.SetFields(dto.ExtractedFields{dto.FieldWages: "50,000"})
	sess.SetSummary(&dto.TaxSummary{RefundOrDue: 1882.00, EmployeeName: "John Doe"})

	reply := svc.Respond(context.Background(), sess, "what is my refund?")

	assert.Equal(t, "Your refund is $1882.00.", reply)
	require.Len(t, stub.calls, 1)
	assert.Equal(t, dataAwareSystemPrompt, stub.calls[0].system)
	// Data-aware mode sends the session data plus the question, not the transcript.
	require.Len(t, stub.calls[0].messages, 1)
	assert.Contains(t, stub.calls[0].messages[0].Content, "50,000")
	assert.Contains(t, stub.calls[0].messages[0].Content, "John Doe")
	assert.Contains(t, stub.calls[0].messages[0].Content, "what is my refund?")
	assert.NotContains(t, stub.calls[0].messages[0].Content, "earlier question")
}

func TestRespondModePredicateEvaluatedPerCall(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{reply: "general answer"},
		{reply: "data answer"},
	}}
	svc := NewChatService(stub, false, zap.NewNop())
	sess := newChatSession(t)

	svc.Respond(context.Background(), sess, "first")
	sess.SetSummary(&dto.TaxSummary{})
	svc.Respond(context.Background(), sess, "second")

	require.Len(t, stub.calls, 2)
	assert.Equal(t, generalSystemPrompt, stub.calls[0].system)
	assert.Equal(t, dataAwareSystemPrompt, stub.calls[1].system)
}

func TestRespondAPIErrorBecomesFormattedReply(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{err: &client.APIError{Status: 500, Body: "upstream exploded"}},
	}}
	svc := NewChatService(stub, false, zap.NewNop())
	sess := newChatSession(t)

	reply := svc.Respond(context.Background(), sess, "hello?")

	assert.Contains(t, reply, "500")
	assert.Contains(t, reply, "upstream exploded")
	// The failure text still lands in the transcript as the assistant turn.
	history := sess.History()
	assert.Equal(t, reply, history[len(history)-1].Content)
}

func TestRespondTransportErrorBecomesWarning(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{err: errors.New("dial tcp: connection refused")},
	}}
	svc := NewChatService(stub, false, zap.NewNop())
	sess := newChatSession(t)

	reply := svc.Respond(context.Background(), sess, "hello?")

	assert.Contains(t, reply, "unavailable")
	assert.Contains(t, reply, "connection refused")
}

func TestRespondCleanupPassRewritesReply(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{reply: "messy  reply"},
		{reply: "tidy reply"},
	}}
	svc := NewChatService(stub, true, zap.NewNop())
	sess := newChatSession(t)

	reply := svc.Respond(context.Background(), sess, "question")

	assert.Equal(t, "tidy reply", reply)
	require.Len(t, stub.calls, 2)
	assert.Equal(t, cleanupSystemPrompt, stub.calls[1].system)
	assert.Contains(t, stub.calls[1].messages[0].Content, "messy  reply")
}

func TestRespondCleanupFailureKeepsOriginal(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{reply: "original reply"},
		{err: errors.New("timeout")},
	}}
	svc := NewChatService(stub, true, zap.NewNop())
	sess := newChatSession(t)

	reply := svc.Respond(context.Background(), sess, "question")

	assert.Equal(t, "original reply", reply)
	assert.Equal(t, "original reply", sess.History()[2].Content)
}

func TestRespondNoCleanupAfterFailure(t *testing.T) {
	stub := &stubCompleter{results: []stubResult{
		{err: &client.APIError{Status: 429, Body: "rate limited"}},
	}}
	svc := NewChatService(stub, true, zap.NewNop())
	sess := newChatSession(t)

	reply := svc.Respond(context.Background(), sess, "question")

	// A failure message is never sent through the cleanup model.
	require.Len(t, stub.calls, 1)
	assert.Contains(t, reply, "429")
}
