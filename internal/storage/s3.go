package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage stores document files in an S3 bucket.
type S3Storage struct {
	client     *s3.Client
	bucketName string
	// publicBase, when set, is the URL prefix joined with the object path
	// to form the public reference (a CDN or website endpoint).
	publicBase string
}

func NewS3Storage(client *s3.Client, bucketName, publicBase string) *S3Storage {
	return &S3Storage{
		client:     client,
		bucketName: bucketName,
		publicBase: strings.TrimSuffix(publicBase, "/"),
	}
}

func (s *S3Storage) Upload(ctx context.Context, path, contentType string, data []byte) (string, error) {

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", path, err)
	}

	return s.publicURL(path), nil
}

func (s *S3Storage) Delete(ctx context.Context, path string) error {

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", path, err)
	}

	return nil
}

func (s *S3Storage) publicURL(path string) string {
	if s.publicBase != "" {
		return fmt.Sprintf("%s/%s", s.publicBase, path)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucketName, path)
}
