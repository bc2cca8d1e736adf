package services

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/logger"
	"github.com/notehive/notehive-backend/internal/normalization"
	"github.com/notehive/notehive-backend/internal/repos"
	"github.com/notehive/notehive-backend/internal/types"
)

// NoteService is the leaf of the hierarchy and the only level that
// touches the blob store on create. The object key is derived from the
// full ancestor chain, so a create reads three ancestor levels before
// uploading; the upload always precedes the record insert so a failed
// upload can never leave a Note behind.
type NoteService interface {
	Create(ctx context.Context, subjectID uuid.UUID, title, originalFilename, contentType string, file io.Reader) (*types.NoteResponse, error)
	GetByID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.NoteResponse, error)
	GetBySubjectID(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID) ([]*types.NoteResponse, error)
	Delete(ctx context.Context, noteID uuid.UUID) error
	// DeleteBySubjectIDs removes all notes under the given subjects
	// inside the caller's transaction and returns the storage keys for
	// post-commit blob cleanup.
	DeleteBySubjectIDs(ctx context.Context, tx *gorm.DB, subjectIDs []uuid.UUID) ([]string, error)
}

type noteService struct {
	db            *gorm.DB
	log           *logger.Logger
	noteRepo      repos.NoteRepo
	subjectRepo   repos.SubjectRepo
	semesterRepo  repos.SemesterRepo
	streamRepo    repos.StreamRepo
	bucketService BucketService
	fileService   FileService
}

func NewNoteService(
	db *gorm.DB,
	baseLog *logger.Logger,
	noteRepo repos.NoteRepo,
	subjectRepo repos.SubjectRepo,
	semesterRepo repos.SemesterRepo,
	streamRepo repos.StreamRepo,
	bucketService BucketService,
	fileService FileService,
) NoteService {
	return &noteService{
		db:            db,
		log:           baseLog.With("service", "NoteService"),
		noteRepo:      noteRepo,
		subjectRepo:   subjectRepo,
		semesterRepo:  semesterRepo,
		streamRepo:    streamRepo,
		bucketService: bucketService,
		fileService:   fileService,
	}
}

func (ns *noteService) Create(ctx context.Context, subjectID uuid.UUID, title, originalFilename, contentType string, file io.Reader) (*types.NoteResponse, error) {
	title = normalization.TrimInputString(title)
	if title == "" {
		return nil, apierr.InvalidInput("a title is required")
	}
	if originalFilename == "" {
		return nil, apierr.InvalidInput("a file is required")
	}

	subjects, err := ns.subjectRepo.GetByIDs(ctx, nil, []uuid.UUID{subjectID})
	if err != nil {
		return nil, fmt.Errorf("load subject: %w", err)
	}
	if len(subjects) == 0 || subjects[0] == nil {
		return nil, apierr.ParentNotFound("subject not found")
	}
	subject := subjects[0]

	semesters, err := ns.semesterRepo.GetByIDs(ctx, nil, []uuid.UUID{subject.SemesterID})
	if err != nil {
		return nil, fmt.Errorf("load semester: %w", err)
	}
	if len(semesters) == 0 || semesters[0] == nil {
		return nil, apierr.ParentNotFound("semester not found for subject")
	}
	semester := semesters[0]

	streams, err := ns.streamRepo.GetByIDs(ctx, nil, []uuid.UUID{semester.StreamID})
	if err != nil {
		return nil, fmt.Errorf("load stream: %w", err)
	}
	if len(streams) == 0 || streams[0] == nil {
		return nil, apierr.ParentNotFound("stream not found for semester")
	}
	stream := streams[0]

	key := fmt.Sprintf("%s/%d/%s/%s", stream.Name, semester.Number, subject.Name, originalFilename)
	if err := ns.bucketService.UploadFile(ctx, key, contentType, file); err != nil {
		ns.log.Error("Note upload failed", "key", key, "error", err)
		return nil, apierr.StorageFailure(fmt.Errorf("upload note file: %w", err))
	}

	note := &types.Note{
		ID:         uuid.New(),
		Title:      title,
		FileURL:    ns.bucketService.GetPublicURL(key),
		StorageKey: key,
		SubjectID:  subject.ID,
	}
	if _, err := ns.noteRepo.Create(ctx, nil, []*types.Note{note}); err != nil {
		// the blob is already up; try to take it back down, log if we can't
		ns.log.Error("Note persist failed after upload, cleaning up blob", "key", key, "error", err)
		ns.fileService.CleanupBlobs(ctx, []string{key})
		return nil, fmt.Errorf("create note: %w", err)
	}
	return toNoteResponse(note, subject.Name), nil
}

func (ns *noteService) GetByID(ctx context.Context, tx *gorm.DB, noteID uuid.UUID) (*types.NoteResponse, error) {
	notes, err := ns.noteRepo.GetByIDs(ctx, tx, []uuid.UUID{noteID})
	if err != nil {
		return nil, fmt.Errorf("load note: %w", err)
	}
	if len(notes) == 0 || notes[0] == nil {
		return nil, apierr.NotFound("note not found")
	}
	note := notes[0]

	subjectName := ""
	subjects, err := ns.subjectRepo.GetByIDs(ctx, tx, []uuid.UUID{note.SubjectID})
	if err != nil {
		return nil, fmt.Errorf("load subject: %w", err)
	}
	if len(subjects) > 0 && subjects[0] != nil {
		subjectName = subjects[0].Name
	}
	return toNoteResponse(note, subjectName), nil
}

// GetBySubjectID returns the notes under a subject in insertion order.
// A nonexistent subject yields an empty list, not an error.
func (ns *noteService) GetBySubjectID(ctx context.Context, tx *gorm.DB, subjectID uuid.UUID) ([]*types.NoteResponse, error) {
	subjects, err := ns.subjectRepo.GetByIDs(ctx, tx, []uuid.UUID{subjectID})
	if err != nil {
		return nil, fmt.Errorf("load subject: %w", err)
	}
	if len(subjects) == 0 || subjects[0] == nil {
		return []*types.NoteResponse{}, nil
	}
	subject := subjects[0]

	notes, err := ns.noteRepo.GetBySubjectIDs(ctx, tx, []uuid.UUID{subjectID})
	if err != nil {
		return nil, fmt.Errorf("load notes: %w", err)
	}
	out := make([]*types.NoteResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteResponse(n, subject.Name))
	}
	return out, nil
}

func (ns *noteService) Delete(ctx context.Context, noteID uuid.UUID) error {
	var key string
	err := ns.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		notes, err := ns.noteRepo.GetByIDs(ctx, tx, []uuid.UUID{noteID})
		if err != nil {
			return fmt.Errorf("load note: %w", err)
		}
		if len(notes) == 0 || notes[0] == nil {
			return apierr.NotFound("note not found")
		}
		key = notes[0].StorageKey
		if _, err := ns.noteRepo.DeleteByIDs(ctx, tx, []uuid.UUID{noteID}); err != nil {
			return fmt.Errorf("delete note: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	ns.fileService.CleanupBlobs(ctx, []string{key})
	return nil
}

func (ns *noteService) DeleteBySubjectIDs(ctx context.Context, tx *gorm.DB, subjectIDs []uuid.UUID) ([]string, error) {
	if len(subjectIDs) == 0 {
		return nil, nil
	}
	notes, err := ns.noteRepo.GetBySubjectIDs(ctx, tx, subjectIDs)
	if err != nil {
		return nil, fmt.Errorf("load notes for cascade: %w", err)
	}
	if len(notes) == 0 {
		return nil, nil
	}
	noteIDs := make([]uuid.UUID, 0, len(notes))
	keys := make([]string, 0, len(notes))
	for _, n := range notes {
		noteIDs = append(noteIDs, n.ID)
		keys = append(keys, n.StorageKey)
	}
	if _, err := ns.noteRepo.DeleteByIDs(ctx, tx, noteIDs); err != nil {
		return nil, fmt.Errorf("cascade delete notes: %w", err)
	}
	return keys, nil
}

func toNoteResponse(note *types.Note, subjectName string) *types.NoteResponse {
	return &types.NoteResponse{
		ID:          note.ID,
		Title:       note.Title,
		FileURL:     note.FileURL,
		SubjectID:   note.SubjectID,
		SubjectName: subjectName,
	}
}
