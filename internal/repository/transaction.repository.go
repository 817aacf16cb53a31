package repository

import (
	"context"
	"errors"

	"github.com/ssafuel/station-gateway/internal/model"
	"github.com/ssafuel/station-gateway/pkg/pg"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
)

type TransactionRepository struct {
	*pg.DB
}

func NewTransactionRepository(db *pg.DB) *TransactionRepository {
	return &TransactionRepository{
		db,
	}
}

// Create always inserts a new row. Used for events that carry no
// transaction id, such as tank level snapshots.
func (r *TransactionRepository) Create(ctx context.Context, t *model.Transaction) (*model.Transaction, error) {
	entity := toTransactionEntity(t)
	entity.ID = 0

	if err := r.Write(ctx).WithContext(ctx).Create(entity).Error; err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

// Upsert inserts the transaction, or updates the existing row when one
// already holds the same transaction id. Only fields present in t (non-nil
// pointers) are written on update; everything else keeps its stored value.
// The returned bool is true when a new row was inserted.
func (r *TransactionRepository) Upsert(ctx context.Context, t *model.Transaction) (*model.Transaction, bool, error) {
	if t.TransactionID == nil || *t.TransactionID == "" {
		created, err := r.Create(ctx, t)
		return created, true, err
	}

	var existing TransactionEntity
	err := r.Write(ctx).WithContext(ctx).
		Where("transaction_id = ?", *t.TransactionID).
		First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		created, err := r.Create(ctx, t)
		return created, true, err
	}
	if err != nil {
		return nil, false, err
	}

	patch := toTransactionEntity(t)
	patch.ID = 0
	patch.CreatedAt = existing.CreatedAt

	// Updates with a struct skips nil pointer fields, which gives the
	// partial-update semantics re-sent payloads rely on.
	if err := r.Write(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Where("id = ?", existing.ID).
		Updates(patch).Error; err != nil {
		return nil, false, err
	}

	var updated TransactionEntity
	if err := r.Write(ctx).WithContext(ctx).First(&updated, existing.ID).Error; err != nil {
		return nil, false, err
	}

	return toTransactionModel(&updated), false, nil
}

func (r *TransactionRepository) GetByTransactionID(ctx context.Context, transactionID string) (*model.Transaction, error) {
	var entity TransactionEntity
	err := r.Read(ctx).WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		First(&entity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toTransactionModel(&entity), nil
}

func (r *TransactionRepository) List(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error) {
	q := r.Read(ctx).WithContext(ctx).Model(&TransactionEntity{})

	if f.DeviceID != nil && *f.DeviceID != "" {
		q = q.Where("device_id = ?", *f.DeviceID)
	}
	if f.StationID != nil && *f.StationID != "" {
		q = q.Where("station_id = ?", *f.StationID)
	}
	if f.Type != nil {
		q = q.Where("type = ?", string(*f.Type))
	}
	if f.TransactionID != nil && *f.TransactionID != "" {
		q = q.Where("transaction_id = ?", *f.TransactionID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	// Count before pagination
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at"
	if f.Desc {
		order += " DESC"
	} else {
		order += " ASC"
	}

	limit := f.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	var entities []*TransactionEntity
	if err := q.Order(order).Limit(limit).Offset(offset).Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return toTransactionModels(entities), total, nil
}
