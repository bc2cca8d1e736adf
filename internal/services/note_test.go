package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/repos"
	"github.com/notehive/notehive-backend/internal/repos/testutil"
	"github.com/notehive/notehive-backend/internal/types"
)

func TestNoteCreateBuildsKeyFromAncestors(t *testing.T) {
	t.Parallel()
	ts := newTestStack(t)
	ctx := context.Background()

	stream := testutil.SeedStream(t, ts.gdb, "engineering")
	semester := testutil.SeedSemester(t, ts.gdb, stream.ID, 3)
	subject := testutil.SeedSubject(t, ts.gdb, semester.ID, "algorithms")

	note, err := ts.noteService.Create(ctx, subject.ID, "lecture 1", "intro.pdf", "application/pdf", strings.NewReader("pdf-bytes"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wantKey := "engineering/3/algorithms/intro.pdf"
	if !ts.bucket.hasObject(wantKey) {
		t.Fatalf("blob not uploaded under key %q", wantKey)
	}
	if note.SubjectName != "algorithms" {
		t.Fatalf("SubjectName: got=%q want=%q", note.SubjectName, "algorithms")
	}
	if note.FileURL != ts.bucket.GetPublicURL(wantKey) {
		t.Fatalf("FileURL: got=%q want=%q", note.FileURL, ts.bucket.GetPublicURL(wantKey))
	}

	var stored types.Note
	if err := ts.gdb.First(&stored, "id = ?", note.ID).Error; err != nil {
		t.Fatalf("load stored note: %v", err)
	}
	if stored.StorageKey != wantKey {
		t.Fatalf("StorageKey: got=%q want=%q", stored.StorageKey, wantKey)
	}
}

func TestNoteCreateMissingSubject(t *testing.T) {
	t.Parallel()
	ts := newTestStack(t)

	_, err := ts.noteService.Create(context.Background(), uuid.New(), "lecture", "a.pdf", "application/pdf", strings.NewReader("x"))
	if !apierr.Is(err, apierr.CodeParentNotFound) {
		t.Fatalf("expected parent_not_found, got %v", err)
	}
	if ts.bucket.objectCount() != 0 {
		t.Fatalf("no blob should be uploaded, got %d", ts.bucket.objectCount())
	}
}

func TestNoteCreateUploadFailureLeavesNoRecord(t *testing.T) {
	t.Parallel()
	ts := newTestStack(t)
	ctx := context.Background()

	stream := testutil.SeedStream(t, ts.gdb, "science")
	semester := testutil.SeedSemester(t, ts.gdb, stream.ID, 1)
	subject := testutil.SeedSubject(t, ts.gdb, semester.ID, "physics")

	ts.bucket.failUpload = true
	_, err := ts.noteService.Create(ctx, subject.ID, "lecture", "a.pdf", "application/pdf", strings.NewReader("x"))
	if !apierr.Is(err, apierr.CodeStorageFailure) {
		t.Fatalf("expected upstream_storage_failure, got %v", err)
	}
	if got := ts.count(t, &types.Note{}); got != 0 {
		t.Fatalf("note records after failed upload: got=%d want=0", got)
	}
}

// failingCreateNoteRepo rejects every insert; reads and deletes pass
// through to the real repo.
type failingCreateNoteRepo struct {
	repos.NoteRepo
}

func (r *failingCreateNoteRepo) Create(ctx context.Context, tx *gorm.DB, notes []*types.Note) ([]*types.Note, error) {
	return nil, fmt.Errorf("insert rejected")
}

func TestNoteCreatePersistFailureCleansUpBlob(t *testing.T) {
	t.Parallel()
	ts := newTestStack(t)
	ctx := context.Background()

	stream := testutil.SeedStream(t, ts.gdb, "science")
	semester := testutil.SeedSemester(t, ts.gdb, stream.ID, 2)
	subject := testutil.SeedSubject(t, ts.gdb, semester.ID, "chemistry")

	log := testutil.Logger(t)
	noteRepo := &failingCreateNoteRepo{NoteRepo: repos.NewNoteRepo(ts.gdb, log)}
	ns := NewNoteService(ts.gdb, log, noteRepo,
		repos.NewSubjectRepo(ts.gdb, log),
		repos.NewSemesterRepo(ts.gdb, log),
		repos.NewStreamRepo(ts.gdb, log),
		ts.bucket, ts.fileService)

	_, err := ns.Create(ctx, subject.ID, "lecture", "lecture.pdf", "application/pdf", strings.NewReader("x"))
	if err == nil {
		t.Fatalf("expected error from failed persist")
	}

	// the already-uploaded blob must be taken back down
	key := "science/2/chemistry/lecture.pdf"
	if ts.bucket.hasObject(key) {
		t.Fatalf("blob %q survived failed persist", key)
	}
	deleted := ts.bucket.deletedKeys()
	if len(deleted) != 1 || deleted[0] != key {
		t.Fatalf("cleanup deletions: got=%v want=[%s]", deleted, key)
	}
	if got := ts.count(t, &types.Note{}); got != 0 {
		t.Fatalf("note records after failed persist: got=%d want=0", got)
	}
}

func TestNoteCreateRejectsEmptyTitle(t *testing.T) {
	t.Parallel()
	ts := newTestStack(t)

	_, err := ts.noteService.Create(context.Background(), uuid.New(), "   ", "a.pdf", "application/pdf", strings.NewReader("x"))
	if !apierr.Is(err, apierr.CodeInvalidInput) {
		t.Fatalf("expected invalid_input, got %v", err)
	}
}

func TestNoteGetBySubjectIDNonexistentParent(t *testing.T) {
	t.Parallel()
	ts := newTestStack(t)

	notes, err := ts.noteService.GetBySubjectID(context.Background(), nil, uuid.New())
	if err != nil {
		t.Fatalf("GetBySubjectID: %v", err)
	}
	if len(notes) != 0 {
		t.Fatalf("expected empty list, got %d", len(notes))
	}
}

func TestNoteGetBySubjectIDInsertionOrder(t *testing.T) {
	t.Parallel()
	ts := newTestStack(t)
	ctx := context.Background()

	stream := testutil.SeedStream(t, ts.gdb, "arts")
	semester := testutil.SeedSemester(t, ts.gdb, stream.ID, 2)
	subject := testutil.SeedSubject(t, ts.gdb, semester.ID, "history")

	first, err := ts.noteService.Create(ctx, subject.ID, "week 1", "w1.pdf", "application/pdf", strings.NewReader("a"))
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := ts.noteService.Create(ctx, subject.ID, "week 2", "w2.pdf", "application/pdf", strings.NewReader("b"))
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	notes, err := ts.noteService.GetBySubjectID(ctx, nil, subject.ID)
	if err != nil {
		t.Fatalf("GetBySubjectID: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("notes: got=%d want=2", len(notes))
	}
	if notes[0].ID != first.ID || notes[1].ID != second.ID {
		t.Fatalf("order wrong: got=[%s %s] want=[%s %s]", notes[0].ID, notes[1].ID, first.ID, second.ID)
	}
}

func TestNoteDeleteRemovesRecordAndBlob(t *testing.T) {
	t.Parallel()
	ts := newTestStack(t)
	ctx := context.Background()

	stream := testutil.SeedStream(t, ts.gdb, "law")
	semester := testutil.SeedSemester(t, ts.gdb, stream.ID, 1)
	subject := testutil.SeedSubject(t, ts.gdb, semester.ID, "contracts")

	note, err := ts.noteService.Create(ctx, subject.ID, "cases", "cases.pdf", "application/pdf", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := ts.noteService.Delete(ctx, note.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := ts.noteService.GetByID(ctx, nil, note.ID); !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
	if ts.bucket.hasObject("law/1/contracts/cases.pdf") {
		t.Fatalf("blob survived delete")
	}
}

func TestNoteDeleteUnknownID(t *testing.T) {
	t.Parallel()
	ts := newTestStack(t)

	err := ts.noteService.Delete(context.Background(), uuid.New())
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
