package services

import (
	"context"
	"errors"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/pkg/prom"
)

var (
	ErrNotFound = errors.New("record not found")
)

// ValidationError marks a payload problem the caller should report as a
// client error rather than retry.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IsValidationError reports whether err is a payload validation failure.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

type TransactionStore interface {
	Upsert(ctx context.Context, t *model.Transaction) (*model.Transaction, bool, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error)
	List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error)
}

// IngestService validates inbound telemetry envelopes and persists them with
// idempotent upsert semantics.
type IngestService struct {
	transactions TransactionStore
}

func NewIngestService(transactions TransactionStore) *IngestService {
	return &IngestService{transactions: transactions}
}

// Ingest flattens the envelope and upserts the resulting record. The bool
// result distinguishes a fresh insert from an update of an already-delivered
// transaction id.
func (s *IngestService) Ingest(ctx context.Context, env *model.TelemetryEnvelope) (*model.Transaction, bool, error) {
	t, err := env.Normalize()
	if err != nil {
		field := "devID"
		if errors.Is(err, model.ErrNoDiscriminator) || errors.Is(err, model.ErrAmbiguousDiscriminator) {
			field = "bowser|stan|tank"
		}
		prom.IncCounter(prom.SystemIngest, prom.MetricTransactions, "unknown", "rejected")
		return nil, false, &ValidationError{Field: field, Err: err}
	}

	saved, created, err := s.transactions.Upsert(ctx, t)
	if err != nil {
		prom.IncCounter(prom.SystemIngest, prom.MetricTransactions, string(t.Type), "error")
		return nil, false, err
	}

	result := "updated"
	if created {
		result = "created"
	}
	prom.IncCounter(prom.SystemIngest, prom.MetricTransactions, string(t.Type), result)

	return saved, created, nil
}

func (s *IngestService) GetByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	t, err := s.transactions.GetByTransactionID(ctx, transactionID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return t, nil
}

func (s *IngestService) List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	return s.transactions.List(ctx, f)
}
