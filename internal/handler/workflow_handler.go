// Package handler provides HTTP handlers for the API.
package handler

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"pdf-uploader/internal/domain"
	"pdf-uploader/internal/service"
	apperrors "pdf-uploader/pkg/errors"

	"github.com/gorilla/mux"
)

// multipartOverhead is the slack allowed on top of the file size for the
// multipart envelope.
const multipartOverhead = 1 << 20

// WorkflowHandler exposes the upload workflow of each session over HTTP.
// Every endpoint answers with the session state after the transition.
type WorkflowHandler struct {
	sessions    *service.SessionRegistry
	maxFileSize int64
	logger      domain.Logger
}

// sessionResponse is the body returned by every workflow endpoint
type sessionResponse struct {
	SessionID        string          `json:"session_id"`
	State            domain.Snapshot `json:"state"`
	DefaultPrevented *bool           `json:"default_prevented,omitempty"`
}

// NewWorkflowHandler creates a new workflow handler
func NewWorkflowHandler(sessions *service.SessionRegistry, maxFileSize int64, logger domain.Logger) *WorkflowHandler {
	return &WorkflowHandler{
		sessions:    sessions,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// CreateSession starts a new upload workflow
func (h *WorkflowHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	session := h.sessions.Create()
	h.writeState(w, http.StatusCreated, session, nil)
}

// GetSession returns the current state
func (h *WorkflowHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.writeState(w, http.StatusOK, session, nil)
}

// DeleteSession discards the workflow
func (h *WorkflowHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Delete(mux.Vars(r)["id"]); err != nil {
		writeAppError(w, apperrors.NewNotFoundError("Session not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectFromPicker handles the picker's change event. The form field "file"
// carries the chosen file; a form without it means the picker was cancelled.
func (h *WorkflowHandler) SelectFromPicker(w http.ResponseWriter, r *http.Request) {
	session, ok := h.idleSession(w, r)
	if !ok {
		return
	}

	headers, err := h.formFiles(w, r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var candidate *domain.File
	if len(headers) > 0 {
		candidate, err = service.FileFromMultipart(headers[0], h.maxFileSize)
		if err != nil {
			writeAppError(w, h.fileError(err))
			return
		}
	}

	picker := session.Controller.Picker()
	if candidate != nil {
		picker.Set(candidate.Name)
	} else {
		picker.Set("")
	}
	session.Controller.SelectFromPicker(candidate)

	h.writeState(w, http.StatusOK, session, nil)
}

// DropFile handles a drop on the drop target. Only the first file counts.
func (h *WorkflowHandler) DropFile(w http.ResponseWriter, r *http.Request) {
	session, ok := h.idleSession(w, r)
	if !ok {
		return
	}

	headers, err := h.formFiles(w, r)
	if err != nil {
		writeAppError(w, err)
		return
	}

	var files []*domain.File
	if len(headers) > 0 {
		dropped, err := service.FileFromMultipart(headers[0], h.maxFileSize)
		if err != nil {
			writeAppError(w, h.fileError(err))
			return
		}
		files = append(files, dropped)
	}

	event := &requestEvent{}
	session.Controller.DropFile(event, files)

	h.writeState(w, http.StatusOK, session, event)
}

// DragOver acknowledges a drag over the drop target
func (h *WorkflowHandler) DragOver(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	event := &requestEvent{}
	session.Controller.DragOver(event)

	h.writeState(w, http.StatusOK, session, event)
}

// ClearFile removes the selected file
func (h *WorkflowHandler) ClearFile(w http.ResponseWriter, r *http.Request) {
	session, ok := h.idleSession(w, r)
	if !ok {
		return
	}

	session.Controller.Clear()
	h.writeState(w, http.StatusOK, session, nil)
}

// Submit uploads the selected file and returns the resulting state. The
// upload is not tied to the request lifetime: a client that disconnects does
// not cancel the transfer.
func (h *WorkflowHandler) Submit(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	err := session.Controller.Submit(context.WithoutCancel(r.Context()))
	if errors.Is(err, domain.ErrUploadInProgress) {
		writeAppError(w, apperrors.NewConflictError("An upload is already in progress", err))
		return
	}

	h.writeState(w, http.StatusOK, session, nil)
}

func (h *WorkflowHandler) session(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	session, err := h.sessions.Get(mux.Vars(r)["id"])
	if err != nil {
		writeAppError(w, apperrors.NewNotFoundError("Session not found"))
		return nil, false
	}
	return session, true
}

// idleSession resolves the session and refuses selection changes while its
// upload is in flight.
func (h *WorkflowHandler) idleSession(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	session, ok := h.session(w, r)
	if !ok {
		return nil, false
	}
	if session.Controller.IsUploading() {
		writeAppError(w, apperrors.NewConflictError("An upload is already in progress", domain.ErrUploadInProgress))
		return nil, false
	}
	return session, true
}

// formFiles parses the multipart body and returns the "file" entries. A body
// that is not multipart is treated as carrying no file.
func (h *WorkflowHandler) formFiles(w http.ResponseWriter, r *http.Request) ([]*multipart.FileHeader, error) {
	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+multipartOverhead)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return nil, apperrors.NewTooLargeError("File too large", err)
		case errors.Is(err, http.ErrNotMultipart):
			return nil, nil
		default:
			return nil, apperrors.NewValidationError("Invalid upload form", err.Error())
		}
	}
	return r.MultipartForm.File["file"], nil
}

func (h *WorkflowHandler) fileError(err error) error {
	if errors.Is(err, domain.ErrFileTooLarge) {
		return apperrors.NewTooLargeError("File too large", err)
	}
	h.logger.Error("Failed to read uploaded file", err)
	return apperrors.NewProcessingError("Could not read the uploaded file", err)
}

func (h *WorkflowHandler) writeState(w http.ResponseWriter, status int, session *service.Session, event *requestEvent) {
	resp := sessionResponse{
		SessionID: session.ID,
		State:     session.Controller.Snapshot(),
	}
	if event != nil {
		prevented := event.defaultPrevented
		resp.DefaultPrevented = &prevented
	}
	writeJSON(w, status, resp)
}

// requestEvent is the drag event of a drop or dragover request. The flags are
// reported back so the page can confirm it must not navigate to the file.
type requestEvent struct {
	defaultPrevented   bool
	propagationStopped bool
}

func (e *requestEvent) PreventDefault() {
	e.defaultPrevented = true
}

func (e *requestEvent) StopPropagation() {
	e.propagationStopped = true
}
