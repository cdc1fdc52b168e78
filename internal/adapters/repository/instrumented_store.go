package repository

import (
	"context"
	"errors"
	"time"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/logger"
	"github.com/weblinkcreator/siteapi/internal/infrastructure/metrics"
	"github.com/weblinkcreator/siteapi/internal/ports"
)

var errNotInitialized = errors.New("document not initialized")

// InstrumentedStore records metrics and logs around another store
type InstrumentedStore struct {
	next    ports.DocumentStore
	metrics *metrics.Metrics
	logger  *logger.Logger
}

// NewInstrumentedStore wraps next. A nil metrics only logs.
func NewInstrumentedStore(next ports.DocumentStore, m *metrics.Metrics, log *logger.Logger) ports.DocumentStore {
	return &InstrumentedStore{
		next:    next,
		metrics: m,
		logger:  log.WithComponent("document_store"),
	}
}

func (s *InstrumentedStore) Describe() string {
	return s.next.Describe()
}

func (s *InstrumentedStore) Initialize(ctx context.Context) error {
	start := time.Now()
	err := s.next.Initialize(ctx)
	s.observe("initialize", start, err)
	return err
}

func (s *InstrumentedStore) Read(ctx context.Context) (*entities.Document, error) {
	start := time.Now()
	doc, err := s.next.Read(ctx)
	s.observe("read", start, err)
	return doc, err
}

func (s *InstrumentedStore) Write(ctx context.Context, doc *entities.Document) error {
	start := time.Now()
	err := s.next.Write(ctx, doc)
	s.observe("write", start, err)

	if err == nil && s.metrics != nil {
		s.metrics.CollectionSize.WithLabelValues("orders").Set(float64(len(doc.Orders)))
		s.metrics.CollectionSize.WithLabelValues("team").Set(float64(len(doc.Team)))
	}
	return err
}

func (s *InstrumentedStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	elapsed := time.Since(start)
	s.logger.LogStoreOperation(op, s.next.Describe(), float64(elapsed.Microseconds())/1000, err)

	if s.metrics == nil {
		return
	}

	result := "success"
	if err != nil {
		result = "error"
	}
	s.metrics.StoreOperations.WithLabelValues(op, result).Inc()
	s.metrics.StoreDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}
