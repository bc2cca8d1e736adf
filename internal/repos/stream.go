package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/types"
)

type StreamRepo interface {
	Create(ctx context.Context, tx *gorm.DB, streams []*types.Stream) ([]*types.Stream, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Stream, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, streamIDs []uuid.UUID) ([]*types.Stream, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, streamID uuid.UUID) (bool, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, streamIDs []uuid.UUID) (int64, error)
}

type streamRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStreamRepo(db *gorm.DB, baseLog *logger.Logger) StreamRepo {
	return &streamRepo{db: db, log: baseLog.With("repo", "StreamRepo")}
}

func (sr *streamRepo) Create(ctx context.Context, tx *gorm.DB, streams []*types.Stream) ([]*types.Stream, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(streams) == 0 {
		return []*types.Stream{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&streams).Error; err != nil {
		return nil, err
	}
	return streams, nil
}

func (sr *streamRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Stream, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Stream
	if err := transaction.WithContext(ctx).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *streamRepo) GetByIDs(ctx context.Context, tx *gorm.DB, streamIDs []uuid.UUID) ([]*types.Stream, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Stream
	if len(streamIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", streamIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *streamRepo) ExistsByID(ctx context.Context, tx *gorm.DB, streamID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Stream{}).
		Where("id = ?", streamID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (sr *streamRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, streamIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(streamIDs) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("id IN ?", streamIDs).
		Delete(&types.Stream{})
	return res.RowsAffected, res.Error
}
