package s3

import (
	"bytes"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"dept-service/internal/config"
)

const documentExtension = ".pdf"

const (
	errCreateSessionFmt = "failed to create AWS session: %w"
	errUploadObjectFmt  = "failed to upload object %s: %w"
	errDeleteObjectFmt  = "failed to delete object %s: %w"
	errPresignObjectFmt = "failed to presign object %s: %w"
)

// Store holds project documents. Objects are keyed by the project's
// document path plus the pdf extension.
type Store struct {
	bucketName string
	urlExpiry  time.Duration
	svc        *s3.S3
}

func NewStore(cfg *config.AWSConfig, urlExpiry time.Duration) (*Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf(errCreateSessionFmt, err)
	}

	return &Store{
		bucketName: cfg.BucketName,
		urlExpiry:  urlExpiry,
		svc:        s3.New(sess),
	}, nil
}

func objectKey(documentPath string) string {
	return documentPath + documentExtension
}

// UploadDocument stores the memory-buffered document under the path's key.
func (s *Store) UploadDocument(documentPath string, body []byte, contentType string) error {
	key := objectKey(documentPath)

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.svc.PutObject(input); err != nil {
		return fmt.Errorf(errUploadObjectFmt, key, err)
	}

	return nil
}

func (s *Store) DeleteDocument(documentPath string) error {
	key := objectKey(documentPath)

	_, err := s.svc.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf(errDeleteObjectFmt, key, err)
	}

	return nil
}

// SignedDownloadURL returns a time-limited GET link for the document.
func (s *Store) SignedDownloadURL(documentPath string) (string, error) {
	key := objectKey(documentPath)

	req, _ := s.svc.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})

	url, err := req.Presign(s.urlExpiry)
	if err != nil {
		return "", fmt.Errorf(errPresignObjectFmt, key, err)
	}

	return url, nil
}
