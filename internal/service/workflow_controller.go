package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pdf-uploader/internal/domain"
	apperrors "pdf-uploader/pkg/errors"
)

// WorkflowController owns the selection and submission state of one upload
// session. Every operation runs its transition under the lock; Submit
// releases it while the upload client is working.
type WorkflowController struct {
	client  domain.UploadClient
	picker  domain.PickerInput
	logger  domain.Logger
	metrics domain.WorkflowMetrics
	now     func() time.Time

	mu           sync.Mutex
	file         *domain.File
	message      domain.UIMessage
	phase        domain.UploadPhase
	lastActivity time.Time
}

// NewWorkflowController creates a controller in the idle, no-file state. A nil
// picker gets an in-memory PickerField; nil metrics and logger are ignored.
func NewWorkflowController(
	client domain.UploadClient,
	picker domain.PickerInput,
	logger domain.Logger,
	metrics domain.WorkflowMetrics,
) *WorkflowController {
	if picker == nil {
		picker = NewPickerField()
	}
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	c := &WorkflowController{
		client:  client,
		picker:  picker,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
		phase:   domain.PhaseIdle,
	}
	c.lastActivity = c.now()
	return c
}

// SelectFromPicker handles the picker's change event. A nil candidate means
// the user cancelled the dialog. Ignored while an upload is in flight.
func (c *WorkflowController) SelectFromPicker(candidate *domain.File) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == domain.PhaseUploading {
		c.logger.Debug("Selection ignored during upload")
		return
	}
	c.touch()

	c.message = domain.UIMessage{}

	if candidate == nil {
		c.file = nil
		c.logger.Debug("Picker cancelled")
		return
	}

	if !IsPDF(candidate) {
		c.message.ErrorText = domain.MsgPickerNotPDF
		c.file = nil
		c.picker.Reset()
		c.metrics.RecordRejection(domain.SourcePicker)
		c.logger.Info("Rejected picked file", "name", candidate.Name, "media_type", candidate.MediaType)
		return
	}

	c.file = candidate
	c.logger.Debug("File selected", "name", candidate.Name, "size", candidate.Size)
}

// DropFile handles a drop on the drop target. Only the first file of the
// payload is considered. A rejected drop keeps any existing selection. The
// default handling is suppressed even while an upload is in flight, but the
// drop itself is ignored then.
func (c *WorkflowController) DropFile(event domain.DragEvent, files []*domain.File) {
	suppressDefault(event)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == domain.PhaseUploading {
		c.logger.Debug("Drop ignored during upload")
		return
	}
	c.touch()

	c.message = domain.UIMessage{}

	if len(files) == 0 || files[0] == nil {
		return
	}
	dropped := files[0]

	if !IsPDF(dropped) {
		c.message.ErrorText = domain.MsgDropNotPDF
		c.metrics.RecordRejection(domain.SourceDrop)
		c.logger.Info("Rejected dropped file", "name", dropped.Name, "media_type", dropped.MediaType)
		return
	}

	c.file = dropped
	c.picker.Reset()
	c.logger.Debug("File dropped", "name", dropped.Name, "size", dropped.Size)
}

// DragOver suppresses the default handling so the drop event is delivered.
func (c *WorkflowController) DragOver(event domain.DragEvent) {
	suppressDefault(event)
}

// Clear removes the selection and any message. Ignored while an upload is
// in flight.
func (c *WorkflowController) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.phase == domain.PhaseUploading {
		return
	}
	c.touch()

	c.file = nil
	c.message = domain.UIMessage{}
	c.picker.Reset()
}

// Submit hands the selected file to the upload client and maps the outcome
// back into the state. Failures are absorbed into the error message; the only
// returned error is ErrUploadInProgress when a submission is already running.
func (c *WorkflowController) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.phase == domain.PhaseUploading {
		c.mu.Unlock()
		c.metrics.RecordSubmission(domain.OutcomeBusy, 0)
		return domain.ErrUploadInProgress
	}
	c.touch()
	c.message = domain.UIMessage{}

	if c.file == nil {
		c.message.ErrorText = domain.MsgNoFileSelected
		c.mu.Unlock()
		c.metrics.RecordSubmission(domain.OutcomeNoFile, 0)
		return nil
	}

	file := c.file
	c.phase = domain.PhaseUploading
	c.mu.Unlock()

	started := c.now()
	result, err := c.upload(ctx, file)
	elapsed := c.now().Sub(started)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	c.phase = domain.PhaseIdle

	if err != nil {
		c.message = domain.UIMessage{ErrorText: UploadErrorMessage(err)}
		c.metrics.RecordSubmission(domain.OutcomeFailure, elapsed)
		c.logger.Error("Upload failed", err, "name", file.Name, "elapsed", elapsed)
		return nil
	}

	c.message = domain.UIMessage{SuccessText: domain.MsgUploadSuccess}
	if c.file == file {
		c.file = nil
		c.picker.Reset()
	}
	c.metrics.RecordSubmission(domain.OutcomeSuccess, elapsed)

	fields := []interface{}{"name", file.Name, "elapsed", elapsed}
	if result != nil {
		fields = append(fields, "backend", result.Backend, "location", result.Location)
	}
	c.logger.Info("Document uploaded", fields...)
	return nil
}

// upload calls the client and turns a panic into an error so the phase is
// always restored.
func (c *WorkflowController) upload(ctx context.Context, file *domain.File) (result *domain.UploadResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &apperrors.AppError{
				Type:  apperrors.ErrorTypeInternal,
				Cause: fmt.Errorf("upload client panic: %v", r),
			}
		}
	}()
	return c.client.UploadDocument(ctx, file)
}

// Snapshot returns the current state for rendering.
func (c *WorkflowController) Snapshot() domain.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	label := domain.SubmitLabelIdle
	if c.phase == domain.PhaseUploading {
		label = domain.SubmitLabelUploading
	}

	return domain.Snapshot{
		File:         domain.SummarizeFile(c.file),
		Message:      c.message,
		Phase:        c.phase,
		CanSubmit:    c.file != nil && c.phase == domain.PhaseIdle,
		SubmitLabel:  label,
		PickerValue:  c.picker.Value(),
		PickerAccept: domain.PickerAccept,
	}
}

// SelectedFile returns the file staged for submission, or nil.
func (c *WorkflowController) SelectedFile() *domain.File {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.file
}

// Picker returns the picker control the controller resets.
func (c *WorkflowController) Picker() domain.PickerInput {
	return c.picker
}

// IsUploading reports whether a submission is in flight
func (c *WorkflowController) IsUploading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase == domain.PhaseUploading
}

// LastActivity returns the time of the last state-changing operation
func (c *WorkflowController) LastActivity() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActivity
}

// touch must be called with mu held.
func (c *WorkflowController) touch() {
	c.lastActivity = c.now()
}

func suppressDefault(event domain.DragEvent) {
	if event == nil {
		return
	}
	event.PreventDefault()
	event.StopPropagation()
}

type noopMetrics struct{}

func (noopMetrics) RecordRejection(string)                 {}
func (noopMetrics) RecordSubmission(string, time.Duration) {}
func (noopMetrics) SetActiveSessions(int)                  {}

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})         {}
func (noopLogger) Error(string, error, ...interface{}) {}
func (noopLogger) Debug(string, ...interface{})        {}
func (noopLogger) Warn(string, ...interface{})         {}
func (l noopLogger) With(...interface{}) domain.Logger { return l }
