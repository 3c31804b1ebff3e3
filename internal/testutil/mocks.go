// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/runoshun/gantt/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// UpdateCall records one DataSource.Update invocation.
type UpdateCall struct {
	ID        string
	Mode      domain.Mode
	StartDate string
	EndDate   string
}

// MockDataSource is a test double for domain.DataSource.
// Fields are ordered to minimize memory padding.
type MockDataSource struct {
	Rows      map[domain.Mode][]domain.RawRecord
	ListErr   error
	UpdateErr error
	Updates   []UpdateCall
	ListCalls []domain.Mode
	mu        sync.Mutex
}

// NewMockDataSource creates a new MockDataSource with initialized maps.
func NewMockDataSource() *MockDataSource {
	return &MockDataSource{
		Rows: make(map[domain.Mode][]domain.RawRecord),
	}
}

// List returns the configured rows for mode.
func (m *MockDataSource) List(_ context.Context, mode domain.Mode) ([]domain.RawRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls = append(m.ListCalls, mode)
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	return m.Rows[mode], nil
}

// Update records the call.
func (m *MockDataSource) Update(_ context.Context, id string, mode domain.Mode, startDate, endDate string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Updates = append(m.Updates, UpdateCall{ID: id, Mode: mode, StartDate: startDate, EndDate: endDate})
	return m.UpdateErr
}

// ListCallCount returns how many times List was called.
func (m *MockDataSource) ListCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ListCalls)
}

// RawRow builds a positional row with the given identity, status and planned dates.
func RawRow(id, name, status string, start, end time.Time) domain.RawRecord {
	raw := domain.NewRawRecord()
	raw[domain.FieldID] = id
	raw[domain.FieldName] = name
	raw[domain.FieldStatus] = status
	raw.SetDate(domain.FieldStart, start)
	raw.SetDate(domain.FieldEnd, end)
	raw[domain.FieldResponsible] = ""
	raw[domain.FieldProject] = ""
	raw[domain.FieldSector] = ""
	raw[domain.FieldClassification] = ""
	return raw
}

// LogEntry is one message captured by MockLogger.
type LogEntry struct {
	Level    string
	Mode     domain.Mode
	Category string
	Msg      string
}

// MockLogger is a test double for domain.Logger.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

func (m *MockLogger) add(level string, mode domain.Mode, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Mode: mode, Category: category, Msg: msg})
}

// Debug records a debug message.
func (m *MockLogger) Debug(mode domain.Mode, category, msg string) { m.add("DEBUG", mode, category, msg) }

// Info records an info message.
func (m *MockLogger) Info(mode domain.Mode, category, msg string) { m.add("INFO", mode, category, msg) }

// Warn records a warning message.
func (m *MockLogger) Warn(mode domain.Mode, category, msg string) { m.add("WARN", mode, category, msg) }

// Error records an error message.
func (m *MockLogger) Error(mode domain.Mode, category, msg string) { m.add("ERROR", mode, category, msg) }

// Count returns the number of entries at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
}

// Load returns the configured config.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Config == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.Config, nil
}

// LoadGlobal returns the configured global config.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.GlobalConfig == nil {
		return domain.NewDefaultConfig(), nil
	}
	return m.GlobalConfig, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitGlobalErr    error
	InitLocalErr     error
	GlobalConfigInfo domain.ConfigInfo
	LocalConfigInfo  domain.ConfigInfo
	InitGlobalCalled bool
	InitLocalCalled  bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{}
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// GetLocalConfigInfo returns the configured local config info.
func (m *MockConfigManager) GetLocalConfigInfo() domain.ConfigInfo {
	return m.LocalConfigInfo
}

// InitGlobalConfig records the call.
func (m *MockConfigManager) InitGlobalConfig(_ *domain.Config) error {
	m.InitGlobalCalled = true
	if m.InitGlobalErr != nil {
		return m.InitGlobalErr
	}
	if m.GlobalConfigInfo.Exists {
		return domain.ErrConfigExists
	}
	return nil
}

// InitLocalConfig records the call.
func (m *MockConfigManager) InitLocalConfig(_ *domain.Config) error {
	m.InitLocalCalled = true
	if m.InitLocalErr != nil {
		return m.InitLocalErr
	}
	if m.LocalConfigInfo.Exists {
		return domain.ErrConfigExists
	}
	return nil
}

// Ensure mocks implement their ports.
var (
	_ domain.DataSource    = (*MockDataSource)(nil)
	_ domain.Logger        = (*MockLogger)(nil)
	_ domain.ConfigLoader  = (*MockConfigLoader)(nil)
	_ domain.ConfigManager = (*MockConfigManager)(nil)
	_ domain.Clock         = (*MockClock)(nil)
)

// ErrMock is a generic error for tests.
var ErrMock = errors.New("mock error")
