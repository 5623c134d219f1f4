package domain

import (
	"context"
	"time"
)

// UploadClient transfers a selected file to a backend.
type UploadClient interface {
	UploadDocument(ctx context.Context, file *File) (*UploadResult, error)
}

// PickerInput is the file-picker control whose displayed value can be reset.
type PickerInput interface {
	Value() string
	Set(value string)
	Reset()
}

// DragEvent is a drag-over or drop event delivered by a drop target.
type DragEvent interface {
	PreventDefault()
	StopPropagation()
}

// ServerMessager is implemented by errors that carry a message supplied by
// the remote server.
type ServerMessager interface {
	ServerMessage() string
}

// WorkflowMetrics records workflow outcomes
type WorkflowMetrics interface {
	RecordRejection(source string)
	RecordSubmission(outcome string, elapsed time.Duration)
	SetActiveSessions(n int)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	With(fields ...interface{}) Logger
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMaxFileSize() int64
	GetUploadBackend() string
	GetAPIBaseURL() string
	GetAPIUploadPath() string
	GetAPIFileField() string
	GetUploadTimeout() time.Duration
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetSupabaseBucket() string
	GetS3Bucket() string
	GetS3Region() string
	GetS3Endpoint() string
	GetS3Prefix() string
	GetAWSAccessKeyID() string
	GetAWSSecretAccessKey() string
	GetSessionTTL() time.Duration
	GetAllowedOrigins() []string
}
