package handler

import "pdf-uploader/internal/domain"

// Mock logger used by handler package tests.
type MockHandlerLogger struct {
	warnings []string
}

func NewMockHandlerLogger() *MockHandlerLogger {
	return &MockHandlerLogger{}
}

func (l *MockHandlerLogger) Info(msg string, fields ...interface{})             {}
func (l *MockHandlerLogger) Error(msg string, err error, fields ...interface{}) {}
func (l *MockHandlerLogger) Debug(msg string, fields ...interface{})            {}
func (l *MockHandlerLogger) Warn(msg string, fields ...interface{}) {
	l.warnings = append(l.warnings, msg)
}
func (l *MockHandlerLogger) With(fields ...interface{}) domain.Logger { return l }
