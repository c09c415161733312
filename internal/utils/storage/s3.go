package storage

import (
	"Cook-App-Backend/domain"
	"Cook-App-Backend/internal/utils"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

var ErrMediaStoreDisabled = errors.New("media store is not configured")

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

type (
	// MediaStore stores image bytes and hands back a public URL.
	MediaStore interface {
		UploadFile(ctx context.Context, payload *domain.ImagePayload, folder string) (string, error)
		DeleteFile(ctx context.Context, key string) error
		GetPublicLinkKey(key string) string
		GetObjectKeyFromLink(link string) string
	}

	AwsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

// AllowImage reports whether contentType is an image type the store accepts.
func AllowImage(contentType string) bool {
	_, ok := imageExtensions[strings.ToLower(contentType)]
	return ok
}

func NewAwsS3() *AwsS3 {
	bucket := utils.GetConfig("AWS_S3_BUCKET")
	region := utils.GetConfig("AWS_S3_REGION")
	if bucket == "" {
		return &AwsS3{}
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if ak := utils.GetConfig("AWS_ACCESS_KEY"); ak != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ak, utils.GetConfig("AWS_SECRET_KEY"), ""),
		))
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Printf("Error loading AWS config: %v", err)
		return &AwsS3{}
	}

	return &AwsS3{
		client: s3.NewFromConfig(cfg),
		bucket: bucket,
		region: region,
	}
}

func (a *AwsS3) UploadFile(ctx context.Context, payload *domain.ImagePayload, folder string) (string, error) {
	if a.client == nil {
		return "", ErrMediaStoreDisabled
	}
	if payload == nil || len(payload.Data) == 0 {
		return "", domain.ErrInvalidImage
	}
	contentType := strings.ToLower(payload.ContentType)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", domain.ErrUnsupportedImage
	}

	key := fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(payload.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}
	return a.GetPublicLinkKey(key), nil
}

func (a *AwsS3) DeleteFile(ctx context.Context, key string) error {
	if a.client == nil {
		return ErrMediaStoreDisabled
	}
	_, err := a.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	return err
}

func (a *AwsS3) GetPublicLinkKey(key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", a.bucket, a.region, key)
}

func (a *AwsS3) GetObjectKeyFromLink(link string) string {
	prefix := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", a.bucket, a.region)
	return strings.TrimPrefix(link, prefix)
}

// UploadBase64 decodes an inline image and stores it under folder. An empty
// encoded string uploads nothing and returns "".
func UploadBase64(ctx context.Context, store MediaStore, encoded string, mime string, folder string) (string, error) {
	if strings.TrimSpace(encoded) == "" {
		return "", nil
	}
	payload, err := domain.DecodeBase64Image(encoded, mime)
	if err != nil {
		return "", err
	}
	if !AllowImage(payload.ContentType) {
		return "", domain.ErrUnsupportedImage
	}
	url, err := store.UploadFile(ctx, payload, folder)
	if err != nil {
		if domain.KindOf(err) == domain.KindValidation {
			return "", err
		}
		return "", domain.Wrap(domain.KindDependency, domain.ErrImageUploadFailed.Message, err)
	}
	return url, nil
}
