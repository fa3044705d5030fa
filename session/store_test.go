package session

import (
	"testing"
	"time"

	"github.com/greengrowth-cpas/tax-agent/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateSeedsGreeting(t *testing.T) {
	store := NewStore(time.Hour, zap.NewNop())

	sess := store.Create()

	require.NotEmpty(t, sess.ID)
	history := sess.History()
	require.Len(t, history, 1)
	assert.Equal(t, dto.RoleAssistant, history[0].Role)
	assert.Equal(t, dto.Greeting, history[0].Content)
}

func TestGetUnknownSession(t *testing.T) {
	store := NewStore(time.Hour, zap.NewNop())

	_, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestSessionStateRoundTrip(t *testing.T) {
	store := NewStore(time.Hour, zap.NewNop())
	sess := store.Create()

	assert.Nil(t, sess.Summary())

	sess.SetRawText("W-2 Wage and Tax Statement")
	sess.SetFields(dto.ExtractedFields{dto.FieldWages: "50000"})
	sess.SetSummary(&dto.TaxSummary{TotalIncome: 50000})

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, "W-2 Wage and Tax Statement", got.RawText())
	assert.Equal(t, "50000", got.Fields().Get(dto.FieldWages))
	assert.Equal(t, 50000.0, got.Summary().TotalIncome)
}

func TestHistoryAppendOnlyAndCopied(t *testing.T) {
	store := NewStore(time.Hour, zap.NewNop())
	sess := store.Create()

	sess.AppendMessage(dto.RoleUser, "how do I start?")
	sess.AppendMessage(dto.RoleAssistant, "upload your W-2")

	history := sess.History()
	require.Len(t, history, 3)

	// Mutating the returned slice must not touch session state.
	history[0].Content = "tampered"
	assert.Equal(t, dto.Greeting, sess.History()[0].Content)
}

func TestEvictIdle(t *testing.T) {
	store := NewStore(time.Millisecond, zap.NewNop())
	sess := store.Create()
	require.Equal(t, 1, store.Len())

	time.Sleep(5 * time.Millisecond)
	store.evictIdle()

	assert.Equal(t, 0, store.Len())
	_, ok := store.Get(sess.ID)
	assert.False(t, ok)
}

func TestGetRefreshesIdleTimer(t *testing.T) {
	store := NewStore(50*time.Millisecond, zap.NewNop())
	sess := store.Create()

	time.Sleep(30 * time.Millisecond)
	_, ok := store.Get(sess.ID)
	require.True(t, ok)

	time.Sleep(30 * time.Millisecond)
	store.evictIdle()

	// Touched at ~30ms, so at ~60ms the session is still inside the TTL.
	_, ok = store.Get(sess.ID)
	assert.True(t, ok)
}
