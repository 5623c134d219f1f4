package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pdf-uploader/internal/domain"
	apperrors "pdf-uploader/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type receivedUpload struct {
	path        string
	filename    string
	contentType string
	data        string
}

func newIndexServer(t *testing.T, status int, body string) (*httptest.Server, *receivedUpload) {
	t.Helper()
	got := &receivedUpload{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			if headers := r.MultipartForm.File["file"]; len(headers) > 0 {
				got.filename = headers[0].Filename
				got.contentType = headers[0].Header.Get("Content-Type")
				src, _ := headers[0].Open()
				data, _ := io.ReadAll(src)
				src.Close()
				got.data = string(data)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestAPIUploadClient_Success(t *testing.T) {
	srv, got := newIndexServer(t, http.StatusOK, `{"filename":"report.pdf","doc_name":"report","chunks_indexed":12}`)
	client := NewAPIUploadClient(srv.URL+"/", "index", "file", 5*time.Second, NewMockLogger())

	result, err := client.UploadDocument(context.Background(), FileFromBytes("report.pdf", "application/pdf", []byte("%PDF-1.7")))
	require.NoError(t, err)

	assert.Equal(t, "/index", got.path)
	assert.Equal(t, "report.pdf", got.filename)
	assert.Equal(t, "application/pdf", got.contentType)
	assert.Equal(t, "%PDF-1.7", got.data)

	assert.Equal(t, domain.BackendAPI, result.Backend)
	assert.Equal(t, "report", result.DocName)
	assert.Equal(t, 12, result.ChunksIndexed)
}

func TestAPIUploadClient_DefaultsContentTypeToPDF(t *testing.T) {
	srv, got := newIndexServer(t, http.StatusOK, ``)
	client := NewAPIUploadClient(srv.URL, "/index", "", 0, NewMockLogger())

	result, err := client.UploadDocument(context.Background(), FileFromBytes("notes.pdf", "", []byte("x")))
	require.NoError(t, err)

	assert.Equal(t, "application/pdf", got.contentType)
	assert.Equal(t, "notes.pdf", result.Filename)
}

func TestAPIUploadClient_NonJSONSuccess(t *testing.T) {
	srv, _ := newIndexServer(t, http.StatusCreated, `accepted`)
	client := NewAPIUploadClient(srv.URL, "/index", "file", 0, NewMockLogger())

	result, err := client.UploadDocument(context.Background(), FileFromBytes("a.pdf", "application/pdf", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "a.pdf", result.Filename)
}

func TestAPIUploadClient_Failures(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{"detail string", http.StatusRequestEntityTooLarge, `{"detail":"too large"}`, "too large"},
		{"detail list", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"},{"msg":"bad type"}]}`, "field required; bad type"},
		{"message field", http.StatusBadRequest, `{"message":"Only PDF files are supported."}`, "Only PDF files are supported."},
		{"error field", http.StatusBadGateway, `{"error":"index unavailable"}`, "index unavailable"},
		{"no body", http.StatusInternalServerError, ``, "Upload rejected with status 500."},
		{"html body", http.StatusServiceUnavailable, `<html>down</html>`, "Upload rejected with status 503."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newIndexServer(t, tt.status, tt.body)
			client := NewAPIUploadClient(srv.URL, "/index", "file", 0, NewMockLogger())

			_, err := client.UploadDocument(context.Background(), FileFromBytes("a.pdf", "application/pdf", []byte("x")))
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUpstream))
			assert.Equal(t, tt.expected, UploadErrorMessage(err))
		})
	}
}

func TestAPIUploadClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewAPIUploadClient(url, "/index", "file", time.Second, NewMockLogger())
	_, err := client.UploadDocument(context.Background(), FileFromBytes("a.pdf", "application/pdf", []byte("x")))

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNetwork))
	assert.Equal(t, "Could not reach the upload service.", UploadErrorMessage(err))
}

func TestAPIUploadClient_UnreadableFile(t *testing.T) {
	client := NewAPIUploadClient("http://127.0.0.1:1", "/index", "file", 0, NewMockLogger())

	_, err := client.UploadDocument(context.Background(), &domain.File{Name: "a.pdf"})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProcessing))
}
