package repository

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
)

func sampleDocument() *entities.Document {
	return &entities.Document{
		Orders: []entities.Order{
			{
				ID:        1703123456789,
				PlanID:    2,
				PlanName:  "Professional",
				PlanPrice: 599,
				CustomerInfo: entities.CustomerInfo{
					Name:    "John Smith",
					Email:   "john@example.com",
					Company: "TechStart Inc.",
				},
				Date:   time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
				Status: entities.OrderStatusPending,
			},
		},
		Team: []entities.TeamMember{
			{
				ID:         1,
				Name:       "Alex Johnson",
				Role:       "Founder & Lead Developer",
				Experience: 8,
				Image:      "https://images.pexels.com/photos/2182970/pexels-photo-2182970.jpeg",
				Social:     map[string]string{"github": "https://github.com/alexjohnson"},
			},
		},
	}
}

func TestFileStore_InitializeCreatesEmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "mainServer.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Initialize(ctx))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"orders":[],"team":[]}`, string(data))
}

func TestFileStore_InitializeIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mainServer.json")
	store := NewFileStore(path)
	ctx := context.Background()

	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Write(ctx, sampleDocument()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, store.Initialize(ctx))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFileStore_WriteThenRead(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(filepath.Join(dir, "mainServer.json"))
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, sampleDocument()))

	doc, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleDocument(), doc)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_ReadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))

	_, err := store.Read(context.Background())

	var readErr *entities.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStore_ReadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mainServer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"orders": [`), 0o644))

	_, err := NewFileStore(path).Read(context.Background())

	var readErr *entities.ReadError
	require.ErrorAs(t, err, &readErr)
	assert.Contains(t, err.Error(), "parse")
}

func TestFileStore_ReadNormalizesNullCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mainServer.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"orders": null}`), 0o644))

	doc, err := NewFileStore(path).Read(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, doc.Orders)
	assert.NotNil(t, doc.Team)
}

func TestFileStore_FailedWriteKeepsPreviousContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mainServer.json")
	store := NewFileStore(path)
	ctx := context.Background()
	require.NoError(t, store.Write(ctx, sampleDocument()))
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	broken := sampleDocument()
	broken.Orders[0].PlanPrice = math.NaN()
	err = store.Write(ctx, broken)

	var writeErr *entities.WriteError
	require.ErrorAs(t, err, &writeErr)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFileStore_WriteToMissingDirectory(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "missing", "mainServer.json"))

	err := store.Write(context.Background(), entities.NewDocument())

	var writeErr *entities.WriteError
	assert.ErrorAs(t, err, &writeErr)
}

func TestFileStore_Ping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mainServer.json")
	store := NewFileStore(path)
	ctx := context.Background()

	assert.Error(t, store.Ping(ctx))
	require.NoError(t, store.Initialize(ctx))
	assert.NoError(t, store.Ping(ctx))
}
