package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jhoicas/Inventario-patio/internal/application/receiving"
	"github.com/jhoicas/Inventario-patio/pkg/config"
)

var _ receiving.PhotoUploader = (*Uploader)(nil)

// Uploader sube fotos de inspección al bucket de S3 y devuelve la URL pública.
type Uploader struct {
	client *s3.Client
	bucket string
	region string
}

func NewUploader(cfg config.S3Config) (*Uploader, error) {
	sdkConfig, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración AWS: %w", err)
	}

	return &Uploader{
		client: s3.NewFromConfig(sdkConfig),
		bucket: cfg.Bucket,
		region: cfg.Region,
	}, nil
}

// Upload sube el contenido bajo objectKey y devuelve la URL del objeto.
// Todas las fotos de inspección se capturan como JPEG.
func (u *Uploader) Upload(ctx context.Context, data []byte, objectKey string) (string, error) {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("subir foto a S3: %w", err)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, objectKey), nil
}
