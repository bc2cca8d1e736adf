package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/types"
)

type SemesterRepo interface {
	Create(ctx context.Context, tx *gorm.DB, semesters []*types.Semester) ([]*types.Semester, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, semesterIDs []uuid.UUID) ([]*types.Semester, error)
	GetByStreamIDs(ctx context.Context, tx *gorm.DB, streamIDs []uuid.UUID) ([]*types.Semester, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) (bool, error)
	DeleteByIDs(ctx context.Context, tx *gorm.DB, semesterIDs []uuid.UUID) (int64, error)
}

type semesterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSemesterRepo(db *gorm.DB, baseLog *logger.Logger) SemesterRepo {
	return &semesterRepo{db: db, log: baseLog.With("repo", "SemesterRepo")}
}

func (sr *semesterRepo) Create(ctx context.Context, tx *gorm.DB, semesters []*types.Semester) ([]*types.Semester, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(semesters) == 0 {
		return []*types.Semester{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&semesters).Error; err != nil {
		return nil, err
	}
	return semesters, nil
}

func (sr *semesterRepo) GetByIDs(ctx context.Context, tx *gorm.DB, semesterIDs []uuid.UUID) ([]*types.Semester, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Semester
	if len(semesterIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", semesterIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *semesterRepo) GetByStreamIDs(ctx context.Context, tx *gorm.DB, streamIDs []uuid.UUID) ([]*types.Semester, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.Semester
	if len(streamIDs) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(ctx).
		Where("stream_id IN ?", streamIDs).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *semesterRepo) ExistsByID(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Semester{}).
		Where("id = ?", semesterID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (sr *semesterRepo) DeleteByIDs(ctx context.Context, tx *gorm.DB, semesterIDs []uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(semesterIDs) == 0 {
		return 0, nil
	}
	res := transaction.WithContext(ctx).
		Where("id IN ?", semesterIDs).
		Delete(&types.Semester{})
	return res.RowsAffected, res.Error
}
