package service

import (
	"sync"
	"time"

	"pdf-uploader/internal/domain"

	"github.com/google/uuid"
)

// Session is one user's upload workflow
type Session struct {
	ID         string
	Controller *WorkflowController
	CreatedAt  time.Time
}

// SessionRegistry keeps a workflow controller per session ID.
type SessionRegistry struct {
	client  domain.UploadClient
	logger  domain.Logger
	metrics domain.WorkflowMetrics

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionRegistry creates an empty registry whose sessions upload through client.
func NewSessionRegistry(client domain.UploadClient, logger domain.Logger, metrics domain.WorkflowMetrics) *SessionRegistry {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if logger == nil {
		logger = noopLogger{}
	}
	return &SessionRegistry{
		client:   client,
		logger:   logger,
		metrics:  metrics,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session with its own controller and picker.
func (r *SessionRegistry) Create() *Session {
	id := uuid.New().String()
	session := &Session{
		ID:         id,
		Controller: NewWorkflowController(r.client, NewPickerField(), r.logger.With("session_id", id), r.metrics),
		CreatedAt:  time.Now(),
	}

	r.mu.Lock()
	r.sessions[id] = session
	count := len(r.sessions)
	r.mu.Unlock()

	r.metrics.SetActiveSessions(count)
	r.logger.Debug("Session created", "session_id", id)
	return session
}

// Get returns the session with the given ID.
func (r *SessionRegistry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session. A session that is uploading is removed too; the
// in-flight submission finishes on its own controller.
func (r *SessionRegistry) Delete(id string) error {
	r.mu.Lock()
	if _, ok := r.sessions[id]; !ok {
		r.mu.Unlock()
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	count := len(r.sessions)
	r.mu.Unlock()

	r.metrics.SetActiveSessions(count)
	r.logger.Debug("Session deleted", "session_id", id)
	return nil
}

// Len returns the number of live sessions
func (r *SessionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// CleanupIdle removes sessions without activity for longer than maxAge.
// Sessions with an upload in flight are kept.
func (r *SessionRegistry) CleanupIdle(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)

	r.mu.Lock()
	removed := 0
	for id, session := range r.sessions {
		if session.Controller.IsUploading() {
			continue
		}
		if session.Controller.LastActivity().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	count := len(r.sessions)
	r.mu.Unlock()

	if removed > 0 {
		r.metrics.SetActiveSessions(count)
		r.logger.Info("Cleaned up idle sessions", "removed", removed, "remaining", count)
	}
	return removed
}
