package imagestore

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/logger"
)

// S3Storage stores images in an S3-compatible bucket (AWS S3, DigitalOcean Spaces, MinIO)
type S3Storage struct {
	client   *s3.S3
	bucket   string
	endpoint string
	region   string
	cdnURL   string
	maxSize  int64
}

func NewS3Storage(cfg config.StorageConfig, maxSize int64) (*S3Storage, error) {
	awsConfig := &aws.Config{
		Region: aws.String(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("S3 세션 생성 실패: %w", err)
	}

	return &S3Storage{
		client:   s3.New(sess),
		bucket:   cfg.Bucket,
		endpoint: strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://"),
		region:   cfg.Region,
		cdnURL:   strings.TrimSuffix(cfg.CDNURL, "/"),
		maxSize:  maxSize,
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, header *multipart.FileHeader, folder string) (*Image, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded image: %w", err)
	}
	defer file.Close()

	contentType, name, err := inspect(file, header, s.maxSize)
	if err != nil {
		return nil, err
	}

	key := objectKey(folder, name)
	_, err = s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file,
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload image %s: %w", key, err)
	}

	logger.FromContext(ctx).Info("이미지 업로드 완료", "bucket", s.bucket, "key", key)
	return &Image{Key: key, URL: s.publicURL(key)}, nil
}

func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("delete image %s: %w", key, err)
	}
	return nil
}

func (s *S3Storage) publicURL(key string) string {
	switch {
	case s.cdnURL != "":
		return fmt.Sprintf("%s/%s", s.cdnURL, key)
	case s.endpoint != "":
		return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
}
