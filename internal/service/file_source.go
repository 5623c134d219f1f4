package service

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"pdf-uploader/internal/domain"
)

// FileFromBytes wraps an in-memory payload.
func FileFromBytes(name, mediaType string, data []byte) *domain.File {
	return domain.NewFile(name, mediaType, int64(len(data)), func() (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

// FileFromPath describes a local file the way a browser describes a picked
// one: the media type is derived from the extension only.
func FileFromPath(path string) (*domain.File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}

	name := filepath.Base(path)
	mediaType := mediaTypeFromName(name)

	return domain.NewFile(name, mediaType, info.Size(), func() (io.ReadCloser, error) {
		return os.Open(path)
	}), nil
}

// FileFromMultipart reads an uploaded form file into memory so the payload
// outlives the request that carried it. Files above maxSize are refused.
func FileFromMultipart(header *multipart.FileHeader, maxSize int64) (*domain.File, error) {
	if maxSize > 0 && header.Size > maxSize {
		return nil, domain.ErrFileTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open form file: %w", err)
	}
	defer src.Close()

	reader := io.Reader(src)
	if maxSize > 0 {
		reader = io.LimitReader(src, maxSize+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read form file: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, domain.ErrFileTooLarge
	}

	name := strings.TrimSpace(filepath.Base(header.Filename))
	if name == "." || name == string(filepath.Separator) {
		name = ""
	}

	return FileFromBytes(name, header.Header.Get("Content-Type"), data), nil
}

func mediaTypeFromName(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return ""
	}
	mediaType := mime.TypeByExtension(ext)
	if parsed, _, err := mime.ParseMediaType(mediaType); err == nil {
		return parsed
	}
	return mediaType
}
