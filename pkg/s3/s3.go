package s3

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

// ItfS3 stores blog images. Every upload persists three objects under one
// base key: the original, a 200x200 cropped thumbnail and an 800x600
// max-bounded medium variant. Deletion removes all three.
type ItfS3 interface {
	UploadImage(file *multipart.FileHeader) (string, error)
	PresignURL(key string) (string, error)
	DeleteImage(baseKey string) error
}

type s3Client struct {
	client     *s3.S3
	session    *session.Session
	bucketName string
}

func New() (ItfS3, error) {
	sess, err := newSession()
	if err != nil {
		return nil, err
	}

	return &s3Client{
		client:     s3.New(sess),
		session:    sess,
		bucketName: os.Getenv("AWS_BUCKET_NAME"),
	}, nil
}

func (s *s3Client) UploadImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func(src multipart.File) {
		if err := src.Close(); err != nil {
			fmt.Println("Failed to close file")
		}
	}(src)

	raw, err := io.ReadAll(src)
	if err != nil {
		return "", err
	}

	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("file is not a valid image: %w", err)
	}

	ext := strings.ToLower(path.Ext(file.Filename))
	if ext == "" {
		ext = "." + format
	}
	baseKey := fmt.Sprintf("blogs/%s%s", uuid.NewString(), ext)

	thumbBytes, err := encodeImage(makeThumbnail(img), format)
	if err != nil {
		return "", err
	}

	mediumBytes, err := encodeImage(makeMedium(img), format)
	if err != nil {
		return "", err
	}

	uploader := s3manager.NewUploader(s.session)

	variants := map[string][]byte{
		baseKey:                        raw,
		variantKey(baseKey, "_thumb"):  thumbBytes,
		variantKey(baseKey, "_medium"): mediumBytes,
	}

	for key, body := range variants {
		_, err := uploader.Upload(&s3manager.UploadInput{
			Bucket: aws.String(s.bucketName),
			Key:    aws.String(key),
			Body:   bytes.NewReader(body),
		})
		if err != nil {
			return "", err
		}
	}

	return baseKey, nil
}

func (s *s3Client) PresignURL(key string) (string, error) {
	decodedKey, err := url.QueryUnescape(key)
	if err != nil {
		return "", fmt.Errorf("failed to decode S3 key: %w", err)
	}

	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(decodedKey),
	})

	urlStr, err := req.Presign(15 * time.Minute)
	if err != nil {
		return "", err
	}

	return urlStr, nil
}

func (s *s3Client) DeleteImage(baseKey string) error {
	decodedKey, err := url.QueryUnescape(baseKey)
	if err != nil {
		return fmt.Errorf("failed to decode S3 key: %w", err)
	}

	keys := []string{
		decodedKey,
		variantKey(decodedKey, "_thumb"),
		variantKey(decodedKey, "_medium"),
	}

	for _, key := range keys {
		_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(s.bucketName),
			Key:    aws.String(key),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func variantKey(baseKey string, suffix string) string {
	ext := path.Ext(baseKey)
	return strings.TrimSuffix(baseKey, ext) + suffix + ext
}

func newSession() (*session.Session, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		),
	})

	if err != nil {
		return nil, err
	}

	return sess, nil
}
