package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"serviceplan/internal/utils"
	"serviceplan/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type ObjectPresigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// MediaRecorder persists the metadata of stored objects and issues file ids.
type MediaRecorder interface {
	CreateMediaFile(ctx context.Context, file *types.MediaFile) (int64, error)
	MediaFile(ctx context.Context, id int64) (*types.MediaFile, error)
}

// S3MediaStore keeps uploaded binaries in an S3 bucket and hands out integer
// file ids backed by the media_files table.
type S3MediaStore struct {
	client    ObjectPutter
	presigner ObjectPresigner
	media     MediaRecorder

	bucket     string
	prefix     string
	presignTTL time.Duration

	now func() time.Time
}

func NewS3MediaStore(client ObjectPutter, presigner ObjectPresigner, media MediaRecorder, bucket, prefix string, presignTTL time.Duration) *S3MediaStore {
	return &S3MediaStore{
		client:     client,
		presigner:  presigner,
		media:      media,
		bucket:     bucket,
		prefix:     prefix,
		presignTTL: presignTTL,
		now:        time.Now,
	}
}

// NewS3Client builds an S3 client, pointing it at baseEndpoint with path
// style addressing when one is configured (MinIO and friends).
func NewS3Client(cfg aws.Config, baseEndpoint string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if baseEndpoint != "" {
			o.BaseEndpoint = aws.String(baseEndpoint)
			o.UsePathStyle = true
		}
	})
}

// StorageKey returns the object key for fileName. The random segment keeps
// identically named uploads apart.
func (s *S3MediaStore) StorageKey(fileName string) string {
	d := s.now()
	return path.Join(s.prefix, fmt.Sprintf("%04d", d.Year()), fmt.Sprintf("%02d", d.Month()), utils.NanoIDSize(12), fileName)
}

// Store uploads body and returns the id of its media record.
func (s *S3MediaStore) Store(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (int64, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := s.StorageKey(fileName)

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return 0, fmt.Errorf("failed to put object %s: %w", key, err)
	}

	file := &types.MediaFile{
		StorageKey:  key,
		FileName:    fileName,
		ContentType: contentType,
		SizeBytes:   size,
	}

	id, err := s.media.CreateMediaFile(ctx, file)
	if err != nil {
		return 0, utils.ErrorWrapOrNil(err, "failed to record media file")
	}

	return id, nil
}

// URL returns a time limited download link for the file.
func (s *S3MediaStore) URL(ctx context.Context, fileID int64) (string, error) {
	file, err := s.media.MediaFile(ctx, fileID)
	if err != nil {
		return "", err
	}

	req, err := s.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket:                     aws.String(s.bucket),
		Key:                        aws.String(file.StorageKey),
		ResponseContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", file.FileName)),
	}, s3.WithPresignExpires(s.presignTTL))
	if err != nil {
		return "", fmt.Errorf("failed to presign object %s: %w", file.StorageKey, err)
	}

	return req.URL, nil
}
