package repository

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/logger"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/metrics"
)

func TestMemoryStore_ReadBeforeInitialize(t *testing.T) {
	store := NewMemoryStore(nil)

	_, err := store.Read(context.Background())

	var readErr *entities.ReadError
	assert.ErrorAs(t, err, &readErr)
}

func TestMemoryStore_InitializeKeepsSeed(t *testing.T) {
	store := NewMemoryStore(sampleDocument())
	ctx := context.Background()

	require.NoError(t, store.Initialize(ctx))

	doc, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Orders, 1)
	assert.Len(t, doc.Team, 1)
}

func TestMemoryStore_ReadReturnsPrivateCopy(t *testing.T) {
	store := NewMemoryStore(sampleDocument())
	ctx := context.Background()

	doc, err := store.Read(ctx)
	require.NoError(t, err)
	doc.Orders = nil
	doc.Team[0].Social["github"] = "changed"

	again, err := store.Read(ctx)
	require.NoError(t, err)
	assert.Len(t, again.Orders, 1)
	assert.Equal(t, "https://github.com/alexjohnson", again.Team[0].Social["github"])
}

func TestInstrumentedStore_RecordsOperations(t *testing.T) {
	m := metrics.New()
	store := NewInstrumentedStore(NewMemoryStore(nil), m, logger.NewNop())
	ctx := context.Background()

	_, err := store.Read(ctx)
	require.Error(t, err)
	require.NoError(t, store.Initialize(ctx))
	require.NoError(t, store.Write(ctx, sampleDocument()))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("read", "error")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StoreOperations.WithLabelValues("write", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CollectionSize.WithLabelValues("orders")))
	assert.Equal(t, "memory", store.Describe())
}
