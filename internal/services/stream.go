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

// StreamService is the root of the hierarchy. Delete cascades through
// every descendant level in one transaction (records only); blob
// cleanup happens after commit, best-effort. A create racing the
// cascade under the same parent can still slip in an orphan; that race
// is accepted, not mitigated.
type StreamService interface {
	Create(ctx context.Context, tx *gorm.DB, name string) (*types.Stream, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Stream, error)
	GetByID(ctx context.Context, tx *gorm.DB, streamID uuid.UUID) (*types.Stream, error)
	Delete(ctx context.Context, streamID uuid.UUID) error
}

type streamService struct {
	db              *gorm.DB
	log             *logger.Logger
	streamRepo      repos.StreamRepo
	semesterService SemesterService
	fileService     FileService
}

func NewStreamService(
	db *gorm.DB,
	baseLog *logger.Logger,
	streamRepo repos.StreamRepo,
	semesterService SemesterService,
	fileService FileService,
) StreamService {
	return &streamService{
		db:              db,
		log:             baseLog.With("service", "StreamService"),
		streamRepo:      streamRepo,
		semesterService: semesterService,
		fileService:     fileService,
	}
}

func (ss *streamService) Create(ctx context.Context, tx *gorm.DB, name string) (*types.Stream, error) {
	name = normalization.TrimInputString(name)
	if name == "" {
		return nil, apierr.InvalidInput("a stream name is required")
	}
	stream := &types.Stream{
		ID:   uuid.New(),
		Name: name,
	}
	if _, err := ss.streamRepo.Create(ctx, tx, []*types.Stream{stream}); err != nil {
		ss.log.Error("Create stream failed", "error", err)
		return nil, fmt.Errorf("create stream: %w", err)
	}
	return stream, nil
}

func (ss *streamService) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Stream, error) {
	streams, err := ss.streamRepo.GetAll(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("load streams: %w", err)
	}
	if streams == nil {
		streams = []*types.Stream{}
	}
	return streams, nil
}

func (ss *streamService) GetByID(ctx context.Context, tx *gorm.DB, streamID uuid.UUID) (*types.Stream, error) {
	streams, err := ss.streamRepo.GetByIDs(ctx, tx, []uuid.UUID{streamID})
	if err != nil {
		return nil, fmt.Errorf("load stream: %w", err)
	}
	if len(streams) == 0 || streams[0] == nil {
		return nil, apierr.NotFound("stream not found")
	}
	return streams[0], nil
}

func (ss *streamService) Delete(ctx context.Context, streamID uuid.UUID) error {
	var keys []string
	err := ss.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := ss.streamRepo.ExistsByID(ctx, tx, streamID)
		if err != nil {
			return fmt.Errorf("check stream: %w", err)
		}
		if !exists {
			return apierr.NotFound("stream not found")
		}
		keys, err = ss.semesterService.DeleteByStreamIDs(ctx, tx, []uuid.UUID{streamID})
		if err != nil {
			return err
		}
		if _, err := ss.streamRepo.DeleteByIDs(ctx, tx, []uuid.UUID{streamID}); err != nil {
			return fmt.Errorf("delete stream: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	ss.fileService.CleanupBlobs(ctx, keys)
	return nil
}
