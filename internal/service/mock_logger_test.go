package service

import (
	"fmt"
	"sync"

	"pdf-uploader/internal/domain"
)

type mockLog struct {
	mu       sync.Mutex
	messages []string
}

// MockLogger records messages; children created by With share the record.
type MockLogger struct {
	log    *mockLog
	fields []interface{}
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		log: &mockLog{messages: []string{}},
	}
}

func (m *MockLogger) record(line string) {
	m.log.mu.Lock()
	defer m.log.mu.Unlock()
	m.log.messages = append(m.log.messages, line)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO: " + msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.record(fmt.Sprintf("ERROR: %s - %v", msg, err))
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG: " + msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN: " + msg)
}

func (m *MockLogger) With(fields ...interface{}) domain.Logger {
	return &MockLogger{
		log:    m.log,
		fields: append(append([]interface{}{}, m.fields...), fields...),
	}
}

func (m *MockLogger) Messages() []string {
	m.log.mu.Lock()
	defer m.log.mu.Unlock()
	return append([]string(nil), m.log.messages...)
}
