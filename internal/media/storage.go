package media

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"devcollab/pkg/database"
	errprocess "devcollab/pkg/err"
	"devcollab/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxUploadSize = 20 << 20 // 20 MiB

// PresignExpiry how long a presigned GET link stays valid
const PresignExpiry = 15 * time.Minute

// Object a stored media object: the durable URL clients embed and the opaque
// key the owner needs for later deletion.
type Object struct {
	URL       string `json:"url"`
	ObjectKey string `json:"objectKey"`
}

// Store object storage for avatars and post media
type Store interface {
	Upload(ctx context.Context, ownerID, fileName, contentType string, reader io.Reader, size int64) (*Object, error)
	Remove(ctx context.Context, objectKey string) error
	PresignURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}

type minioStore struct {
	client *database.MinIOClient
}

// NewStore create a minio-backed media store
func NewStore(client *database.MinIOClient) Store {
	return &minioStore{client: client}
}

// Upload stream the file into the bucket under a fresh key scoped by owner.
// The key is random so uploads never collide or overwrite.
func (s *minioStore) Upload(ctx context.Context, ownerID, fileName, contentType string, reader io.Reader, size int64) (*Object, error) {
	if size <= 0 {
		return nil, errprocess.BadRequest("file is empty")
	}
	if size > maxUploadSize {
		return nil, errprocess.BadRequest("file exceeds the upload limit")
	}

	objectKey := fmt.Sprintf("%s/%s%s", ownerID, uuid.New().String(), path.Ext(fileName))
	if err := s.client.UploadStream(ctx, objectKey, reader, size, contentType); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("http://%s/%s/%s", database.MinIOEndpoint, s.client.BucketName, objectKey)
	logger.Log.Info("media uploaded", zap.String("object_key", objectKey), zap.Int64("size", size))

	return &Object{URL: url, ObjectKey: objectKey}, nil
}

func (s *minioStore) Remove(ctx context.Context, objectKey string) error {
	return s.client.RemoveObject(ctx, objectKey)
}

func (s *minioStore) PresignURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return s.client.PresignGetURL(ctx, objectKey, expiry)
}
