package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"careerboard/internal/model"
)

func TestDecodeUserSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("unknown fields are stripped by the typed decode", func(t *testing.T) {
		raw := json.RawMessage(`{
			"id": "u-1",
			"email": "ada@example.com",
			"username": "ada",
			"password_hash": "$2a$12$abc",
			"role": "student",
			"follower_count": 42,
			"applications": [{"id": "app-1"}],
			"profile": {"full_name": "Ada Lovelace", "headline": "Engineer"}
		}`)

		snap, err := decodeUserSnapshot("u-1", raw)
		require.NoError(t, err)
		require.Equal(t, "ada@example.com", snap.User.Email)
		require.Equal(t, "$2a$12$abc", snap.User.PasswordHash)
		require.NotNil(t, snap.Profile)
		require.Equal(t, "Ada Lovelace", snap.Profile.FullName)

		// Re-encoding the decoded snapshot must not resurrect derived fields.
		out, err := json.Marshal(snap)
		require.NoError(t, err)
		require.NotContains(t, string(out), "follower_count")
		require.NotContains(t, string(out), "applications")
	})

	t.Run("missing id falls back to the trash record item id", func(t *testing.T) {
		snap, err := decodeUserSnapshot("u-9", json.RawMessage(`{"email":"x@y.z","profile":{"full_name":"X"}}`))
		require.NoError(t, err)
		require.Equal(t, "u-9", snap.User.ID)
		require.Equal(t, "u-9", snap.Profile.UserID)
	})

	t.Run("malformed JSON is an error", func(t *testing.T) {
		_, err := decodeUserSnapshot("u-1", json.RawMessage(`{"email":`))
		require.Error(t, err)
	})
}

func TestDecodeJobPostSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("tags survive the round trip deduplicated", func(t *testing.T) {
		original := jobPostSnapshot{
			JobPost: model.JobPost{ID: "post-1", Title: "Backend Engineer"},
			Tags:    []string{"golang", "remote"},
		}
		raw, err := json.Marshal(original)
		require.NoError(t, err)

		snap, err := decodeJobPostSnapshot("post-1", raw)
		require.NoError(t, err)
		require.Equal(t, original.JobPost.Title, snap.JobPost.Title)
		require.Equal(t, []string{"golang", "remote"}, snap.Tags)
	})

	t.Run("duplicate and blank tags collapse", func(t *testing.T) {
		raw := json.RawMessage(`{"id":"post-1","title":"T","tags":["Go","go","  ","remote","GO"]}`)
		snap, err := decodeJobPostSnapshot("post-1", raw)
		require.NoError(t, err)
		require.Equal(t, []string{"Go", "remote"}, snap.Tags)
	})
}

func TestDecodeThreadSnapshot(t *testing.T) {
	t.Parallel()

	raw := json.RawMessage(`{
		"id": "th-1",
		"title": "Interview prep",
		"posts": [
			{"id": "p-1", "thread_id": "stale", "body": "first"},
			{"id": "p-2", "body": "second"}
		]
	}`)

	snap, err := decodeThreadSnapshot("th-1", raw)
	require.NoError(t, err)
	require.Len(t, snap.Posts, 2)
	for _, post := range snap.Posts {
		require.Equal(t, "th-1", post.ThreadID)
	}
}

func TestDedupeTags(t *testing.T) {
	t.Parallel()

	require.Empty(t, dedupeTags(nil))
	require.Empty(t, dedupeTags([]string{"", "  "}))
	require.Equal(t, []string{"sql", "go"}, dedupeTags([]string{"sql", "SQL", "go", "sql "}))
}

func TestStrategyRegistryLookup(t *testing.T) {
	t.Parallel()

	strategy := &mockStrategy{kind: model.ItemKindChallenge}
	registry := NewStrategyRegistry(strategy)

	got, ok := registry.Lookup(model.ItemKindChallenge)
	require.True(t, ok)
	require.Equal(t, strategy, got)

	_, ok = registry.Lookup("Invoice")
	require.False(t, ok)
}
