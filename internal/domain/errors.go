package domain

import "errors"

// Domain errors
var (
	ErrUploadInProgress = errors.New("upload already in progress")
	ErrSessionNotFound  = errors.New("session not found")
	ErrFileTooLarge     = errors.New("file too large")
	ErrNoPayload        = errors.New("file has no payload")
	ErrUnknownBackend   = errors.New("unknown upload backend")
)

// Upload backends
const (
	BackendAPI      = "api"
	BackendSupabase = "supabase"
	BackendS3       = "s3"
)

// Rejection sources and submission outcomes reported to WorkflowMetrics.
const (
	SourcePicker = "picker"
	SourceDrop   = "drop"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeNoFile  = "no_file"
	OutcomeBusy    = "busy"
)
