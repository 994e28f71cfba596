package repository_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/coffee-roastery/internal/event"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/model"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/repository"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage"
	"github.com/tuanvumaihuynh/coffee-roastery/internal/storage/db"
)

// newTestDB connects to POSTGRES_TEST_URL and applies the migrations. Tests
// using it are skipped when the variable is unset.
func newTestDB(t *testing.T) *db.Client {
	t.Helper()

	url := os.Getenv("POSTGRES_TEST_URL")
	if url == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	fsys, err := db.MigrationsFS("")
	require.NoError(t, err)
	_, err = db.Migrate(ctx, pool, fsys)
	require.NoError(t, err)

	return db.NewClient(pool)
}

func TestDocumentRepository(t *testing.T) {
	client := newTestDB(t)
	ctx := context.Background()

	outboxRepo := repository.NewOutboxRepository(client)
	docs := repository.NewDocumentRepository(client, repository.WithOutbox(outboxRepo))

	created, err := docs.Create(ctx, model.GreenCoffeeTable, json.RawMessage(`{"name":"Yirgacheffe"}`))
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, model.GreenCoffeeTable, created.ID.Table)
	assert.JSONEq(t, `{"name":"Yirgacheffe"}`, string(created.Content))
	t.Cleanup(func() {
		_, _ = docs.Delete(context.Background(), model.GreenCoffeeTable, created.ID.Key)
	})

	t.Run("Should get and list", func(t *testing.T) {
		got, err := docs.Get(ctx, model.GreenCoffeeTable, created.ID.Key)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, created.ID, got.ID)

		all, err := docs.List(ctx, model.GreenCoffeeTable)
		require.NoError(t, err)
		assert.Contains(t, keys(all), created.ID.Key)
	})

	t.Run("Should report absent record", func(t *testing.T) {
		got, err := docs.Get(ctx, model.GreenCoffeeTable, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = docs.Update(ctx, model.GreenCoffeeTable, "missing", json.RawMessage(`{}`), time.Now())
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = docs.Delete(ctx, model.GreenCoffeeTable, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Should replace content and keep created at", func(t *testing.T) {
		updatedAt := created.CreatedAt.Add(time.Minute)
		got, err := docs.Update(ctx, model.GreenCoffeeTable, created.ID.Key, json.RawMessage(`{"name":"Sidamo"}`), updatedAt)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.JSONEq(t, `{"name":"Sidamo"}`, string(got.Content))
		assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, updatedAt.Equal(got.UpdatedAt))
	})

	t.Run("Should write change events", func(t *testing.T) {
		msgs, err := outboxRepo.ClaimPending(ctx, 1000)
		require.NoError(t, err)

		var ops []storage.Operation
		for _, msg := range msgs {
			var ev event.RecordChangedEvent
			require.NoError(t, json.Unmarshal(msg.Payload, &ev))
			if ev.ID == created.ID.String() {
				assert.Equal(t, event.TopicRecordChanged, msg.Topic)
				ops = append(ops, ev.Operation)
			}
		}
		assert.Equal(t, []storage.Operation{storage.OperationCreate, storage.OperationUpdate}, ops)
	})
}

func keys(docs []storage.Document) []string {
	out := make([]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, doc.ID.Key)
	}
	return out
}
