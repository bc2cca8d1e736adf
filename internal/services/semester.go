package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/repos"
	"github.com/notehive/notehive-backend/internal/types"
)

// SemesterService. Duplicate semester numbers within a stream are
// allowed by the schema; nothing here rejects them.
type SemesterService interface {
	Create(ctx context.Context, tx *gorm.DB, streamID uuid.UUID, number int) (*types.Semester, error)
	GetByID(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) (*types.Semester, error)
	GetByStreamID(ctx context.Context, tx *gorm.DB, streamID uuid.UUID) ([]*types.Semester, error)
	Delete(ctx context.Context, semesterID uuid.UUID) error
	DeleteByStreamIDs(ctx context.Context, tx *gorm.DB, streamIDs []uuid.UUID) ([]string, error)
}

type semesterService struct {
	db             *gorm.DB
	log            *logger.Logger
	semesterRepo   repos.SemesterRepo
	streamRepo     repos.StreamRepo
	subjectService SubjectService
	fileService    FileService
}

func NewSemesterService(
	db *gorm.DB,
	baseLog *logger.Logger,
	semesterRepo repos.SemesterRepo,
	streamRepo repos.StreamRepo,
	subjectService SubjectService,
	fileService FileService,
) SemesterService {
	return &semesterService{
		db:             db,
		log:            baseLog.With("service", "SemesterService"),
		semesterRepo:   semesterRepo,
		streamRepo:     streamRepo,
		subjectService: subjectService,
		fileService:    fileService,
	}
}

func (ss *semesterService) Create(ctx context.Context, tx *gorm.DB, streamID uuid.UUID, number int) (*types.Semester, error) {
	if number <= 0 {
		return nil, apierr.InvalidInput("semester number must be a positive integer")
	}
	exists, err := ss.streamRepo.ExistsByID(ctx, tx, streamID)
	if err != nil {
		return nil, fmt.Errorf("check stream: %w", err)
	}
	if !exists {
		return nil, apierr.ParentNotFound("stream not found")
	}
	semester := &types.Semester{
		ID:       uuid.New(),
		Number:   number,
		StreamID: streamID,
	}
	if _, err := ss.semesterRepo.Create(ctx, tx, []*types.Semester{semester}); err != nil {
		ss.log.Error("Create semester failed", "error", err)
		return nil, fmt.Errorf("create semester: %w", err)
	}
	return semester, nil
}

func (ss *semesterService) GetByID(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) (*types.Semester, error) {
	semesters, err := ss.semesterRepo.GetByIDs(ctx, tx, []uuid.UUID{semesterID})
	if err != nil {
		return nil, fmt.Errorf("load semester: %w", err)
	}
	if len(semesters) == 0 || semesters[0] == nil {
		return nil, apierr.NotFound("semester not found")
	}
	return semesters[0], nil
}

func (ss *semesterService) GetByStreamID(ctx context.Context, tx *gorm.DB, streamID uuid.UUID) ([]*types.Semester, error) {
	semesters, err := ss.semesterRepo.GetByStreamIDs(ctx, tx, []uuid.UUID{streamID})
	if err != nil {
		return nil, fmt.Errorf("load semesters: %w", err)
	}
	if semesters == nil {
		semesters = []*types.Semester{}
	}
	return semesters, nil
}

func (ss *semesterService) Delete(ctx context.Context, semesterID uuid.UUID) error {
	var keys []string
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := ss.semesterRepo.ExistsByID(ctx, tx, semesterID)
		if err != nil {
			return fmt.Errorf("check semester: %w", err)
		}
		if !exists {
			return apierr.NotFound("semester not found")
		}
		keys, err = ss.subjectService.DeleteBySemesterIDs(ctx, tx, []uuid.UUID{semesterID})
		if err != nil {
			return err
		}
		if _, err := ss.semesterRepo.DeleteByIDs(ctx, tx, []uuid.UUID{semesterID}); err != nil {
			return fmt.Errorf("delete semester: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	ss.fileService.CleanupBlobs(ctx, keys)
	return nil
}

func (ss *semesterService) DeleteByStreamIDs(ctx context.Context, tx *gorm.DB, streamIDs []uuid.UUID) ([]string, error) {
	if len(streamIDs) == 0 {
		return nil, nil
	}
	semesters, err := ss.semesterRepo.GetByStreamIDs(ctx, tx, streamIDs)
	if err != nil {
		return nil, fmt.Errorf("load semesters for cascade: %w", err)
	}
	if len(semesters) == 0 {
		return nil, nil
	}
	semesterIDs := make([]uuid.UUID, 0, len(semesters))
	for _, s := range semesters {
		semesterIDs = append(semesterIDs, s.ID)
	}
	keys, err := ss.subjectService.DeleteBySemesterIDs(ctx, tx, semesterIDs)
	if err != nil {
		return nil, err
	}
	if _, err := ss.semesterRepo.DeleteByIDs(ctx, tx, semesterIDs); err != nil {
		return nil, fmt.Errorf("cascade delete semesters: %w", err)
	}
	return keys, nil
}
