package memory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/quorum-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/quorum-agent/internal/domain"
)

func record(id string, createdAt time.Time) *domain.Deliberation {
	return &domain.Deliberation{
		ID:             domain.DeliberationID(id),
		Title:          "title " + id,
		OriginalPrompt: "prompt " + id,
		Mode:           domain.ModeFull,
		Minutes: []domain.Minute{
			{PersonaID: "p1", Round: 1, Text: "minute one"},
		},
		CreatedAt: createdAt,
	}
}

func TestHistoryStoreUpsertAndGet(t *testing.T) {
	store := memory.NewHistoryStore()
	now := time.Now()

	require.NoError(t, store.Upsert(record("a", now)))

	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "title a", got.Title)

	_, err = store.Get("missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHistoryStoreUpsertReplaces(t *testing.T) {
	store := memory.NewHistoryStore()
	now := time.Now()

	first := record("a", now)
	require.NoError(t, store.Upsert(first))

	second := record("a", now)
	second.FinalDecision = "approved"
	second.Minutes = append(second.Minutes, domain.Minute{PersonaID: "p2", Round: 1, Text: "minute two"})
	require.NoError(t, store.Upsert(second))

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 1, "upsert with the same id replaces")
	assert.Equal(t, "approved", list[0].FinalDecision)
	assert.Len(t, list[0].Minutes, 2)
}

func TestHistoryStoreListNewestFirst(t *testing.T) {
	store := memory.NewHistoryStore()
	base := time.Now()

	require.NoError(t, store.Upsert(record("old", base.Add(-2*time.Hour))))
	require.NoError(t, store.Upsert(record("new", base)))
	require.NoError(t, store.Upsert(record("mid", base.Add(-time.Hour))))

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, domain.DeliberationID("new"), list[0].ID)
	assert.Equal(t, domain.DeliberationID("mid"), list[1].ID)
	assert.Equal(t, domain.DeliberationID("old"), list[2].ID)
}

func TestHistoryStoreIsolatesRecords(t *testing.T) {
	store := memory.NewHistoryStore()
	original := record("a", time.Now())

	require.NoError(t, store.Upsert(original))

	// Mutating what we put in or got out must not reach the store.
	original.Minutes[0].Text = "tampered"

	got, err := store.Get("a")
	require.NoError(t, err)
	assert.Equal(t, "minute one", got.Minutes[0].Text)

	got.FinalDecision = "tampered too"
	again, err := store.Get("a")
	require.NoError(t, err)
	assert.Empty(t, again.FinalDecision)
}

func TestChatLogAppendOnly(t *testing.T) {
	log := memory.NewChatLog()

	require.NoError(t, log.Append(domain.ChatMessage{ID: "1", Sender: domain.SenderUser, Text: "hi"}))
	require.NoError(t, log.Append(domain.ChatMessage{ID: "2", Sender: domain.SenderAssistant, Text: "hello"}))

	msgs, err := log.Messages()
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.MessageID("1"), msgs[0].ID)
	assert.Equal(t, domain.MessageID("2"), msgs[1].ID)
}
