package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/logger"
)

const signedURLTTL = 1 * time.Hour

// blobCleanupLimit caps concurrent best-effort deletions after a cascade.
const blobCleanupLimit = 8

// FileService covers blob operations that are not tied to a Note
// record: the standalone admin upload, signed-URL lookup, and the
// best-effort cleanup the cascade deletes run after commit.
type FileService interface {
	UploadStandalone(ctx context.Context, originalFilename, contentType string, file io.Reader) (string, error)
	SignedURL(ctx context.Context, fileName string) (string, error)
	CleanupBlobs(ctx context.Context, keys []string)
}

type fileService struct {
	log           *logger.Logger
	bucketService BucketService
}

func NewFileService(baseLog *logger.Logger, bucketService BucketService) FileService {
	return &fileService{
		log:           baseLog.With("service", "FileService"),
		bucketService: bucketService,
	}
}

// UploadStandalone stores a file under a random uuid-prefixed key and
// returns the public URL.
func (fs *fileService) UploadStandalone(ctx context.Context, originalFilename, contentType string, file io.Reader) (string, error) {
	if originalFilename == "" {
		return "", apierr.InvalidInput("a file is required")
	}
	key := fmt.Sprintf("%s-%s", uuid.New().String(), originalFilename)
	if err := fs.bucketService.UploadFile(ctx, key, contentType, file); err != nil {
		fs.log.Error("UploadStandalone failed", "key", key, "error", err)
		return "", apierr.StorageFailure(fmt.Errorf("upload %q: %w", key, err))
	}
	return fs.bucketService.GetPublicURL(key), nil
}

func (fs *fileService) SignedURL(ctx context.Context, fileName string) (string, error) {
	if fileName == "" {
		return "", apierr.InvalidInput("file name is required")
	}
	u, err := fs.bucketService.SignedURL(ctx, fileName, signedURLTTL)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", apierr.NotFound("file %q not found", fileName)
		}
		fs.log.Error("SignedURL failed", "file_name", fileName, "error", err)
		return "", apierr.StorageFailure(fmt.Errorf("sign url for %q: %w", fileName, err))
	}
	return u, nil
}

// CleanupBlobs deletes blobs best-effort after their records are gone.
// Failures are logged and swallowed: storage cleanup is eventually
// consistent and never blocks record deletion.
func (fs *fileService) CleanupBlobs(ctx context.Context, keys []string) {
	if len(keys) == 0 {
		return
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(blobCleanupLimit)
	for _, key := range keys {
		key := key
		if key == "" {
			continue
		}
		g.Go(func() error {
			if err := fs.bucketService.DeleteFile(gctx, key); err != nil {
				fs.log.Warn("Blob cleanup failed, leaving orphaned object", "key", key, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
