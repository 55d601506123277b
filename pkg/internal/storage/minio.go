package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

var Client *minio.Client

const MaxImageSize = 5 << 20

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif"}

var imageContentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
}

var (
	ErrUnsupportedMediaType = errors.New("unsupported file type, allowed: jpg, jpeg, png, gif")
	ErrPayloadTooLarge      = errors.New("file too large (max 5MB)")
)

func Setup() error {
	var err error
	Client, err = minio.New(viper.GetString("storage.endpoint"), &minio.Options{
		Creds: credentials.NewStaticV4(
			viper.GetString("storage.access_key"),
			viper.GetString("storage.secret_key"),
			"",
		),
		Secure: viper.GetBool("storage.use_ssl"),
	})
	if err != nil {
		return fmt.Errorf("unable to connect object storage: %v", err)
	}

	bucket := viper.GetString("storage.bucket")
	exists, err := Client.BucketExists(context.Background(), bucket)
	if err != nil {
		return fmt.Errorf("unable to check bucket: %v", err)
	}
	if !exists {
		if err := Client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("unable to create bucket: %v", err)
		}

		policy := fmt.Sprintf(`{
			"Version": "2012-10-17",
			"Statement": [
				{
					"Effect": "Allow",
					"Principal": "*",
					"Action": "s3:GetObject",
					"Resource": "arn:aws:s3:::%s/*"
				}
			]
		}`, bucket)
		if err := Client.SetBucketPolicy(context.Background(), bucket, policy); err != nil {
			return fmt.Errorf("unable to set bucket policy: %v", err)
		}
	}

	return nil
}

// UploadImage stores an uploaded image under uploads/<category>/ with an
// opaque name and returns its public URL. The write happens outside any
// database transaction; an orphaned object after a later rollback is
// tolerated.
func UploadImage(ctx context.Context, category, filename string, src io.Reader, size int64) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !lo.Contains(allowedImageExtensions, ext) {
		return "", ErrUnsupportedMediaType
	}
	if size > MaxImageSize {
		return "", ErrPayloadTooLarge
	}

	object := fmt.Sprintf("uploads/%s/%s%s", category, uuid.New().String(), ext)
	_, err := Client.PutObject(
		ctx,
		viper.GetString("storage.bucket"),
		object,
		src,
		size,
		minio.PutObjectOptions{ContentType: imageContentTypes[ext]},
	)
	if err != nil {
		return "", fmt.Errorf("unable to upload file: %v", err)
	}

	return PublicUrl(object), nil
}

func PublicUrl(object string) string {
	return fmt.Sprintf(
		"%s/%s/%s",
		viper.GetString("storage.public_endpoint"),
		viper.GetString("storage.bucket"),
		object,
	)
}
