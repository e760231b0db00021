package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"

	s3client "job-board-backend/s3"
)

func InitS3() {
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("S3 client init failed")
		return
	}

	if err = s3client.EnsureBucket(context.Background(), minioClient); err != nil {
		log.WithError(err).Error("S3 bucket check failed")
	}

	s3client.Client = minioClient
	log.Info("S3 client initialized")
}
