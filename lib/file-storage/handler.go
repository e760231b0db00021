package filestorage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"

	"job-board-backend/config"
	s3client "job-board-backend/s3"
)

// downloadURLTTL bounds the presigned links stored on application documents.
const downloadURLTTL = 7 * 24 * time.Hour

// Provider uploads applicant files to blob storage and returns durable
// download references. Object paths are namespaced by user and job id to
// avoid collisions; there is no deduplication.
type Provider interface {
	UploadResume(ctx context.Context, userID, jobID, fileName string, data []byte) (url string, err error)
	UploadFieldFile(ctx context.Context, userID, jobID, fieldID, fileName string, data []byte) (url string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		client: s3client.Client,
		bucket: config.Conf.S3.BucketName,
	}
}

type impl struct {
	client *minio.Client
	bucket string
}

func (i *impl) UploadResume(ctx context.Context, userID, jobID, fileName string, data []byte) (string, error) {
	objectName := fmt.Sprintf("resumes/%s/%s_%d_%s", userID, jobID, time.Now().UnixMilli(), fileName)
	return i.upload(ctx, objectName, data, "application/pdf")
}

func (i *impl) UploadFieldFile(ctx context.Context, userID, jobID, fieldID, fileName string, data []byte) (string, error) {
	objectName := fmt.Sprintf("custom-fields/%s/%s/%s_%d_%s", userID, jobID, fieldID, time.Now().UnixMilli(), fileName)
	return i.upload(ctx, objectName, data, "application/octet-stream")
}

func (i *impl) upload(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	_, err := i.client.PutObject(ctx, i.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "file upload failed")
	}
	url, err := i.client.PresignedGetObject(ctx, i.bucket, objectName, downloadURLTTL, nil)
	if err != nil {
		return "", errors.Wrap(err, "download url generation failed")
	}
	return url.String(), nil
}
