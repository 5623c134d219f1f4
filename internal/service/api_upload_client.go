package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"pdf-uploader/internal/domain"
	apperrors "pdf-uploader/pkg/errors"
)

// APIUploadClient posts the document as multipart/form-data to the indexing
// backend.
type APIUploadClient struct {
	endpoint   string
	fileField  string
	httpClient *http.Client
	logger     domain.Logger
}

// indexResponse is the backend's reply to an accepted document.
type indexResponse struct {
	Filename      string `json:"filename"`
	DocName       string `json:"doc_name"`
	ChunksIndexed int    `json:"chunks_indexed"`
}

// errorResponse covers the failure bodies the backend and its proxies send.
// detail is either a string or a list of validation entries.
type errorResponse struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// NewAPIUploadClient creates a client for baseURL+uploadPath. A zero timeout
// leaves the transfer unbounded.
func NewAPIUploadClient(baseURL, uploadPath, fileField string, timeout time.Duration, logger domain.Logger) *APIUploadClient {
	if fileField == "" {
		fileField = "file"
	}
	if uploadPath != "" && !strings.HasPrefix(uploadPath, "/") {
		uploadPath = "/" + uploadPath
	}
	return &APIUploadClient{
		endpoint:   strings.TrimRight(baseURL, "/") + uploadPath,
		fileField:  fileField,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// UploadDocument implements domain.UploadClient
func (c *APIUploadClient) UploadDocument(ctx context.Context, file *domain.File) (*domain.UploadResult, error) {
	body, contentType, err := c.buildBody(file)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, apperrors.NewInternalError("Could not prepare the upload request.", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("Uploading document", "endpoint", c.endpoint, "name", file.Name, "size", file.Size)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewNetworkError("Could not reach the upload service.", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.NewNetworkError("Could not read the upload response.", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstreamError(
			resp.StatusCode,
			fmt.Sprintf("Upload rejected with status %d.", resp.StatusCode),
			serverMessage(payload),
		)
	}

	result := &domain.UploadResult{
		Backend:  domain.BackendAPI,
		Location: c.endpoint,
		Filename: file.Name,
	}
	var decoded indexResponse
	if len(bytes.TrimSpace(payload)) > 0 {
		if err := json.Unmarshal(payload, &decoded); err != nil {
			c.logger.Warn("Upload response is not JSON", "status", resp.StatusCode)
			return result, nil
		}
		if decoded.Filename != "" {
			result.Filename = decoded.Filename
		}
		result.DocName = decoded.DocName
		result.ChunksIndexed = decoded.ChunksIndexed
	}
	return result, nil
}

func (c *APIUploadClient) buildBody(file *domain.File) (io.Reader, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", apperrors.NewProcessingError("Could not read the selected file.", err)
	}
	defer src.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	mediaType := file.MediaType
	if mediaType == "" {
		mediaType = domain.PDFMediaType
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		escapeQuotes(c.fileField), escapeQuotes(file.Name)))
	header.Set("Content-Type", mediaType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", apperrors.NewInternalError("Could not prepare the upload request.", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", apperrors.NewProcessingError("Could not read the selected file.", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", apperrors.NewInternalError("Could not prepare the upload request.", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// serverMessage extracts the human readable message from a failure body.
func serverMessage(payload []byte) string {
	var body errorResponse
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}

	if len(body.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(body.Detail, &detail); err == nil && detail != "" {
			return detail
		}
		var entries []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &entries); err == nil {
			msgs := make([]string, 0, len(entries))
			for _, entry := range entries {
				if entry.Msg != "" {
					msgs = append(msgs, entry.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
