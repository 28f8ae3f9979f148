package uploadservice

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/xw1nchester/tca-backend/internal/apperror"
	"github.com/xw1nchester/tca-backend/internal/backend"
	"github.com/xw1nchester/tca-backend/internal/upload"
	"go.uber.org/zap"
)

//go:generate mockgen -destination=mocks/mock.go -package=mockstorage . Storage
type Storage interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

type service struct {
	storage   Storage
	bucket    string
	staticURL string
	logger    *zap.Logger
}

// New returns a logo uploader. With a nil storage logos are returned inline
// as data URLs instead of being stored.
func New(storage Storage, bucket, staticURL string, logger *zap.Logger) *service {
	return &service{
		storage:   storage,
		bucket:    bucket,
		staticURL: staticURL,
		logger:    logger,
	}
}

func (s *service) UploadLogo(ctx context.Context, userID string, reader io.Reader) (*upload.File, error) {
	data, mime, err := upload.ReadImage(reader)
	if err != nil {
		if errors.Is(err, upload.ErrNotImage) || errors.Is(err, upload.ErrLogoTooBig) || errors.Is(err, upload.ErrEmptyUpload) {
			return nil, apperror.NewCodedError(backend.KindValidation, err.Error())
		}
		s.logger.Error("unexpected error when reading uploaded logo", zap.Error(err))
		return nil, err
	}

	if s.storage == nil {
		return &upload.File{
			ContentType: mime.String(),
			Size:        int64(len(data)),
			URL:         upload.InlineURL(data, mime),
		}, nil
	}

	key := userID + "/" + uuid.NewString() + mime.Extension()

	info, err := s.storage.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: mime.String()},
	)
	if err != nil {
		s.logger.Error("unexpected error when storing logo", zap.Error(err))
		return nil, err
	}

	s.logger.Info("uploaded logo",
		zap.String("bucket", info.Bucket),
		zap.String("key", info.Key),
		zap.Int64("size", info.Size),
	)

	return &upload.File{
		Name:        key,
		ContentType: mime.String(),
		Size:        int64(len(data)),
		URL:         s.staticURL + "/" + s.bucket + "/" + key,
	}, nil
}
