package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"pdf-uploader/internal/domain"
	"pdf-uploader/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	names []string
	err   error
}

func (s *stubClient) UploadDocument(ctx context.Context, file *domain.File) (*domain.UploadResult, error) {
	s.names = append(s.names, file.Name)
	if s.err != nil {
		return nil, s.err
	}
	return &domain.UploadResult{Backend: "stub", Filename: file.Name}, nil
}

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func quietLogger() domain.Logger {
	return logger.NewLoggerWithWriter("error", io.Discard)
}

func TestRunUpload_PickedPDF(t *testing.T) {
	client := &stubClient{}
	var out bytes.Buffer

	err := runUpload(context.Background(), &out, client, quietLogger(), writeTempFile(t, "report.pdf", make([]byte, 1024)), false)

	require.NoError(t, err)
	assert.Equal(t, []string{"report.pdf"}, client.names)
	assert.Contains(t, out.String(), "report.pdf (1.0 KB)")
	assert.Contains(t, out.String(), domain.MsgUploadSuccess)
}

func TestRunUpload_RejectsNonPDF(t *testing.T) {
	tests := []struct {
		name     string
		drop     bool
		expected string
	}{
		{"picker", false, domain.MsgPickerNotPDF},
		{"drop", true, domain.MsgDropNotPDF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &stubClient{}
			var out bytes.Buffer

			err := runUpload(context.Background(), &out, client, quietLogger(), writeTempFile(t, "notes.txt", []byte("hi")), tt.drop)

			assert.ErrorIs(t, err, errUploadRejected)
			assert.Contains(t, out.String(), tt.expected)
			assert.Empty(t, client.names)
		})
	}
}

func TestRunUpload_NoFile(t *testing.T) {
	client := &stubClient{}
	var out bytes.Buffer

	err := runUpload(context.Background(), &out, client, quietLogger(), "", false)

	assert.ErrorIs(t, err, errUploadRejected)
	assert.Contains(t, out.String(), domain.MsgNoFileSelected)
	assert.Empty(t, client.names)
}

func TestRunUpload_ClientFailure(t *testing.T) {
	client := &stubClient{err: errors.New("index unavailable")}
	var out bytes.Buffer

	err := runUpload(context.Background(), &out, client, quietLogger(), writeTempFile(t, "a.pdf", []byte("%PDF")), true)

	assert.ErrorIs(t, err, errUploadRejected)
	assert.Contains(t, out.String(), "index unavailable")
}

func TestRunUpload_MissingPath(t *testing.T) {
	err := runUpload(context.Background(), io.Discard, &stubClient{}, quietLogger(), filepath.Join(t.TempDir(), "gone.pdf"), false)

	require.Error(t, err)
	assert.NotErrorIs(t, err, errUploadRejected)
}

func TestRootCmd_UsesConfiguredClient(t *testing.T) {
	client := &stubClient{}
	original := clientFactory
	clientFactory = func(cfg domain.Config, log domain.Logger) (domain.UploadClient, error) {
		return client, nil
	}
	t.Cleanup(func() { clientFactory = original })

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--drop", writeTempFile(t, "dropped.pdf", []byte("%PDF"))})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, []string{"dropped.pdf"}, client.names)
	assert.Contains(t, out.String(), domain.MsgUploadSuccess)
}

func TestVersionCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := versionCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--short"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "dev\n", out.String())
}
