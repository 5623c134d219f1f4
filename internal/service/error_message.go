package service

import (
	"errors"
	"strings"

	"pdf-uploader/internal/domain"
	apperrors "pdf-uploader/pkg/errors"
)

// UploadErrorMessage derives the text shown after a failed submission. It
// probes, in order, the server-supplied message, the error's own message and
// finally falls back to a fixed string.
func UploadErrorMessage(err error) string {
	if err == nil {
		return domain.MsgUploadFailed
	}

	var server domain.ServerMessager
	if errors.As(err, &server) {
		if msg := strings.TrimSpace(server.ServerMessage()); msg != "" {
			return msg
		}
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if msg := strings.TrimSpace(appErr.Message); msg != "" {
			return msg
		}
		return domain.MsgUploadFailed
	}

	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return domain.MsgUploadFailed
}
