package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"gorm.io/gorm"

	"github.com/notehive/notehive-backend/internal/repos"
	"github.com/notehive/notehive-backend/internal/repos/testutil"
)

// fakeBucketService is an in-memory BucketService. It is safe for
// concurrent use because CleanupBlobs deletes in parallel.
type fakeBucketService struct {
	mu         sync.Mutex
	objects    map[string]string
	deleted    []string
	failUpload bool
	failDelete bool
}

func newFakeBucketService() *fakeBucketService {
	return &fakeBucketService{objects: map[string]string{}}
}

func (fb *fakeBucketService) UploadFile(ctx context.Context, key, contentType string, file io.Reader) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.failUpload {
		return fmt.Errorf("bucket unavailable")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	fb.objects[key] = string(data)
	return nil
}

func (fb *fakeBucketService) DeleteFile(ctx context.Context, key string) error {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.failDelete {
		return fmt.Errorf("bucket unavailable")
	}
	delete(fb.objects, key)
	fb.deleted = append(fb.deleted, key)
	return nil
}

func (fb *fakeBucketService) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if _, ok := fb.objects[key]; !ok {
		return "", fmt.Errorf("attrs for %q: %w", key, storage.ErrObjectNotExist)
	}
	return "https://signed.example.com/" + key, nil
}

func (fb *fakeBucketService) GetPublicURL(key string) string {
	return "https://storage.googleapis.com/test-bucket/" + key
}

func (fb *fakeBucketService) hasObject(key string) bool {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	_, ok := fb.objects[key]
	return ok
}

func (fb *fakeBucketService) objectCount() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return len(fb.objects)
}

func (fb *fakeBucketService) deletedKeys() []string {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]string, len(fb.deleted))
	copy(out, fb.deleted)
	return out
}

// testStack wires the full service graph over an in-memory database and
// the fake bucket.
type testStack struct {
	gdb             *gorm.DB
	bucket          *fakeBucketService
	fileService     FileService
	noteService     NoteService
	subjectService  SubjectService
	semesterService SemesterService
	streamService   StreamService
}

func newTestStack(t *testing.T) *testStack {
	t.Helper()
	gdb := testutil.DB(t)
	log := testutil.Logger(t)

	streamRepo := repos.NewStreamRepo(gdb, log)
	semesterRepo := repos.NewSemesterRepo(gdb, log)
	subjectRepo := repos.NewSubjectRepo(gdb, log)
	noteRepo := repos.NewNoteRepo(gdb, log)

	bucket := newFakeBucketService()
	fileService := NewFileService(log, bucket)
	noteService := NewNoteService(gdb, log, noteRepo, subjectRepo, semesterRepo, streamRepo, bucket, fileService)
	subjectService := NewSubjectService(gdb, log, subjectRepo, semesterRepo, noteService, fileService)
	semesterService := NewSemesterService(gdb, log, semesterRepo, streamRepo, subjectService, fileService)
	streamService := NewStreamService(gdb, log, streamRepo, semesterService, fileService)

	return &testStack{
		gdb:             gdb,
		bucket:          bucket,
		fileService:     fileService,
		noteService:     noteService,
		subjectService:  subjectService,
		semesterService: semesterService,
		streamService:   streamService,
	}
}

func (ts *testStack) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := ts.gdb.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
