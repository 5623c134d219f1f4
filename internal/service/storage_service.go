package service

import (
	"context"
	"io"
	"path"
	"strings"

	"pdf-uploader/internal/domain"
	apperrors "pdf-uploader/pkg/errors"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"
)

// ObjectUploader is the part of the Supabase storage client used for uploads.
type ObjectUploader interface {
	UploadFile(bucketId string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
}

// SupabaseUploadClient stores documents in a Supabase Storage bucket.
type SupabaseUploadClient struct {
	storage ObjectUploader
	bucket  string
	logger  domain.Logger
}

func NewSupabaseUploadClient(storage ObjectUploader, bucket string, logger domain.Logger) *SupabaseUploadClient {
	return &SupabaseUploadClient{
		storage: storage,
		bucket:  bucket,
		logger:  logger,
	}
}

// UploadDocument implements domain.UploadClient. The storage client has no
// context support, so ctx is only checked before the transfer starts.
func (s *SupabaseUploadClient) UploadDocument(ctx context.Context, file *domain.File) (*domain.UploadResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewNetworkError("Upload cancelled.", err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.NewProcessingError("Could not read the selected file.", err)
	}
	defer src.Close()

	objectPath := objectKey("", file.Name)
	contentType := file.MediaType
	if contentType == "" {
		contentType = domain.PDFMediaType
	}
	upsert := false

	_, err = s.storage.UploadFile(s.bucket, objectPath, src, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		s.logger.Error("Supabase storage upload failed", err, "bucket", s.bucket, "path", objectPath)
		return nil, apperrors.NewUpstreamError(0, "Could not store the document.", err.Error())
	}

	return &domain.UploadResult{
		Backend:  domain.BackendSupabase,
		Location: s.bucket + "/" + objectPath,
		Filename: file.Name,
	}, nil
}

// objectKey builds a collision-free object path that keeps the original name.
func objectKey(prefix, name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "document" + domain.PDFExtension
	}
	return prefix + uuid.New().String() + "/" + base
}
