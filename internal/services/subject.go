package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/normalization"
	"github.com/notehive/notehive-backend/internal/repos"
	"github.com/notehive/notehive-backend/internal/types"
)

type SubjectService interface {
	Create(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID, name string) (*types.Subject, error)
	GetByID(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID) (*types.Subject, error)
	GetBySemesterID(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) ([]*types.Subject, error)
	Delete(ctx context.Context, subjectID uuid.UUID) error
	DeleteBySemesterIDs(ctx context.Context, tx *gorm.DB, semesterIDs []uuid.UUID) ([]string, error)
}

type subjectService struct {
	db           *gorm.DB
	log          *logger.Logger
	subjectRepo  repos.SubjectRepo
	semesterRepo repos.SemesterRepo
	noteService  NoteService
	fileService  FileService
}

func NewSubjectService(
	db *gorm.DB,
	baseLog *logger.Logger,
	subjectRepo repos.SubjectRepo,
	semesterRepo repos.SemesterRepo,
	noteService NoteService,
	fileService FileService,
) SubjectService {
	return &subjectService{
		db:           db,
		log:          baseLog.With("service", "SubjectService"),
		subjectRepo:  subjectRepo,
		semesterRepo: semesterRepo,
		noteService:  noteService,
		fileService:  fileService,
	}
}

func (ss *subjectService) Create(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID, name string) (*types.Subject, error) {
	name = normalization.TrimInputString(name)
	if name == "" {
		return nil, apierr.InvalidInput("a subject name is required")
	}
	exists, err := ss.semesterRepo.ExistsByID(ctx, tx, semesterID)
	if err != nil {
		return nil, fmt.Errorf("check semester: %w", err)
	}
	if !exists {
		return nil, apierr.ParentNotFound("semester not found")
	}
	subject := &types.Subject{
		ID:         uuid.New(),
		Name:       name,
		SemesterID: semesterID,
	}
	if _, err := ss.subjectRepo.Create(ctx, tx, []*types.Subject{subject}); err != nil {
		ss.log.Error("Create subject failed", "error", err)
		return nil, fmt.Errorf("create subject: %w", err)
	}
	return subject, nil
}

func (ss *subjectService) GetByID(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID) (*types.Subject, error) {
	subjects, err := ss.subjectRepo.GetByIDs(ctx, tx, []uuid.UUID{subjectID})
	if err != nil {
		return nil, fmt.Errorf("load subject: %w", err)
	}
	if len(subjects) == 0 || subjects[0] == nil {
		return nil, apierr.NotFound("subject not found")
	}
	return subjects[0], nil
}

// GetBySemesterID does not validate the parent: listing for a
// nonexistent semester returns an empty slice.
func (ss *subjectService) GetBySemesterID(ctx context.Context, tx *gorm.DB, semesterID uuid.UUID) ([]*types.Subject, error) {
	subjects, err := ss.subjectRepo.GetBySemesterIDs(ctx, tx, []uuid.UUID{semesterID})
	if err != nil {
		return nil, fmt.Errorf("load subjects: %w", err)
	}
	if subjects == nil {
		subjects = []*types.Subject{}
	}
	return subjects, nil
}

func (ss *subjectService) Delete(ctx context.Context, subjectID uuid.UUID) error {
	var keys []string
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := ss.subjectRepo.ExistsByID(ctx, tx, subjectID)
		if err != nil {
			return fmt.Errorf("check subject: %w", err)
		}
		if !exists {
			return apierr.NotFound("subject not found")
		}
		keys, err = ss.noteService.DeleteBySubjectIDs(ctx, tx, []uuid.UUID{subjectID})
		if err != nil {
			return err
		}
		if _, err := ss.subjectRepo.DeleteByIDs(ctx, tx, []uuid.UUID{subjectID}); err != nil {
			return fmt.Errorf("delete subject: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	ss.fileService.CleanupBlobs(ctx, keys)
	return nil
}

// DeleteBySemesterIDs cascades notes-then-subjects inside the caller's
// transaction and hands back the note storage keys.
func (ss *subjectService) DeleteBySemesterIDs(ctx context.Context, tx *gorm.DB, semesterIDs []uuid.UUID) ([]string, error) {
	if len(semesterIDs) == 0 {
		return nil, nil
	}
	subjects, err := ss.subjectRepo.GetBySemesterIDs(ctx, tx, semesterIDs)
	if err != nil {
		return nil, fmt.Errorf("load subjects for cascade: %w", err)
	}
	if len(subjects) == 0 {
		return nil, nil
	}
	subjectIDs := make([]uuid.UUID, 0, len(subjects))
	for _, s := range subjects {
		subjectIDs = append(subjectIDs, s.ID)
	}
	keys, err := ss.noteService.DeleteBySubjectIDs(ctx, tx, subjectIDs)
	if err != nil {
		return nil, err
	}
	if _, err := ss.subjectRepo.DeleteByIDs(ctx, tx, subjectIDs); err != nil {
		return nil, fmt.Errorf("cascade delete subjects: %w", err)
	}
	return keys, nil
}
