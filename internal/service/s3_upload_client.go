package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"pdf-uploader/internal/domain"
	apperrors "pdf-uploader/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectPutter is the part of the S3 client used for uploads.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3UploadClient stores documents in an S3 (or S3-compatible) bucket.
type S3UploadClient struct {
	client ObjectPutter
	bucket string
	prefix string
	logger domain.Logger
}

func NewS3UploadClient(client ObjectPutter, bucket, prefix string, logger domain.Logger) *S3UploadClient {
	return &S3UploadClient{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

// NewS3Client builds an S3 client from static settings. A custom endpoint
// switches to path-style addressing for S3-compatible stores.
func NewS3Client(region, endpoint, accessKeyID, secretAccessKey string) *s3.Client {
	opts := s3.Options{
		Region: region,
	}
	if accessKeyID != "" && secretAccessKey != "" {
		opts.Credentials = aws.NewCredentialsCache(aws.CredentialsProviderFunc(
			func(context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     accessKeyID,
					SecretAccessKey: secretAccessKey,
					Source:          "environment",
				}, nil
			},
		))
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
	}
	return s3.New(opts)
}

// UploadDocument implements domain.UploadClient
func (c *S3UploadClient) UploadDocument(ctx context.Context, file *domain.File) (*domain.UploadResult, error) {
	src, err := file.Open()
	if err != nil {
		return nil, apperrors.NewProcessingError("Could not read the selected file.", err)
	}
	defer src.Close()

	// The signer needs a seekable body.
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return nil, apperrors.NewProcessingError("Could not read the selected file.", err)
	}

	key := objectKey(c.prefix, file.Name)
	contentType := file.MediaType
	if contentType == "" {
		contentType = domain.PDFMediaType
	}

	_, err = c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"original-filename": file.Name,
			"upload-time":       time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		c.logger.Error("S3 upload failed", err, "bucket", c.bucket, "key", key)

		var apiErr interface{ ErrorMessage() string }
		if errors.As(err, &apiErr) {
			return nil, apperrors.NewUpstreamError(0, "Could not store the document.", apiErr.ErrorMessage())
		}
		return nil, apperrors.NewNetworkError("Could not reach the document store.", err)
	}

	return &domain.UploadResult{
		Backend:  domain.BackendS3,
		Location: "s3://" + c.bucket + "/" + key,
		Filename: file.Name,
	}, nil
}
