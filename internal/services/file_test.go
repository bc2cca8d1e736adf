package services

import (
	"context"
	"strings"
	"testing"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/repos/testutil"
)

func TestUploadStandalone(t *testing.T) {
	t.Parallel()
	bucket := newFakeBucketService()
	fs := NewFileService(testutil.Logger(t), bucket)

	url, err := fs.UploadStandalone(context.Background(), "report.pdf", "application/pdf", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("UploadStandalone: %v", err)
	}
	if !strings.HasSuffix(url, "-report.pdf") {
		t.Fatalf("url should end with uuid-prefixed filename, got %q", url)
	}
	if bucket.objectCount() != 1 {
		t.Fatalf("objects: got=%d want=1", bucket.objectCount())
	}
}

func TestUploadStandaloneFailure(t *testing.T) {
	t.Parallel()
	bucket := newFakeBucketService()
	bucket.failUpload = true
	fs := NewFileService(testutil.Logger(t), bucket)

	_, err := fs.UploadStandalone(context.Background(), "report.pdf", "application/pdf", strings.NewReader("bytes"))
	if !apierr.Is(err, apierr.CodeStorageFailure) {
		t.Fatalf("expected upstream_storage_failure, got %v", err)
	}
}

func TestSignedURLForMissingObject(t *testing.T) {
	t.Parallel()
	bucket := newFakeBucketService()
	fs := NewFileService(testutil.Logger(t), bucket)

	_, err := fs.SignedURL(context.Background(), "absent.pdf")
	if !apierr.Is(err, apierr.CodeNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestSignedURLForPresentObject(t *testing.T) {
	t.Parallel()
	bucket := newFakeBucketService()
	fs := NewFileService(testutil.Logger(t), bucket)
	ctx := context.Background()

	if err := bucket.UploadFile(ctx, "present.pdf", "application/pdf", strings.NewReader("x")); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	url, err := fs.SignedURL(ctx, "present.pdf")
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	if url == "" {
		t.Fatalf("empty signed url")
	}
}

func TestCleanupBlobsSwallowsEmptyKeys(t *testing.T) {
	t.Parallel()
	bucket := newFakeBucketService()
	fs := NewFileService(testutil.Logger(t), bucket)
	ctx := context.Background()

	if err := bucket.UploadFile(ctx, "a", "text/plain", strings.NewReader("x")); err != nil {
		t.Fatalf("seed blob: %v", err)
	}
	fs.CleanupBlobs(ctx, []string{"", "a", ""})
	if bucket.hasObject("a") {
		t.Fatalf("blob survived cleanup")
	}
	if got := len(bucket.deletedKeys()); got != 1 {
		t.Fatalf("deletions: got=%d want=1", got)
	}
}
