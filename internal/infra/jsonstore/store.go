// Package jsonstore provides a JSON file-based implementation of DataSource.
//
// The file holds the positional rows of both collections:
//
//	{"tasks": [[...], ...], "projects": [[...], ...]}
package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/runoshun/gantt/internal/domain"
)

// storeData represents the JSON file structure.
type storeData struct {
	Tasks    []domain.RawRecord `json:"tasks"`
	Projects []domain.RawRecord `json:"projects"`
}

func (d *storeData) rows(mode domain.Mode) *[]domain.RawRecord {
	if mode == domain.ModeProjects {
		return &d.Projects
	}
	return &d.Tasks
}

// Store implements domain.DataSource using a JSON file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; Initialize creates it.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// List returns the rows stored for mode.
func (s *Store) List(_ context.Context, mode domain.Mode) ([]domain.RawRecord, error) {
	var rows []domain.RawRecord
	err := s.withLock(func(data *storeData) error {
		rows = *data.rows(mode)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []domain.RawRecord{}
	}
	return rows, nil
}

// Update rewrites the editable date pair of the row with the given ID.
// Tasks store the real start and the deadline; projects the planned range.
func (s *Store) Update(_ context.Context, id string, mode domain.Mode, startDate, endDate string) error {
	startPos := domain.FieldRealStart
	if mode == domain.ModeProjects {
		startPos = domain.FieldStart
	}

	start, err := storeDate(startDate, startPos)
	if err != nil {
		return err
	}
	end, err := storeDate(endDate, domain.FieldEnd)
	if err != nil {
		return err
	}

	return s.withLockWrite(func(data *storeData) error {
		rows := *data.rows(mode)
		for i, row := range rows {
			if row.ID() != id {
				continue
			}
			if len(row) < domain.RawRecordLen {
				padded := domain.NewRawRecord()
				copy(padded, row)
				row = padded
				rows[i] = row
			}
			row.SetDate(startPos, start)
			row.SetDate(domain.FieldEnd, end)
			return nil
		}
		return &domain.UpdateFailure{Message: fmt.Sprintf("ID %s not found", id), Err: domain.ErrRecordNotFound}
	})
}

// storeDate parses an update date written at pos. An empty value clears an
// optional date; the planned dates every record needs cannot be cleared.
func storeDate(s string, pos int) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		if pos == domain.FieldRealStart {
			return time.Time{}, nil
		}
		return time.Time{}, &domain.UpdateFailure{Message: "planned dates cannot be cleared", Err: domain.ErrValidation}
	}
	t, err := domain.ParseUpdateDate(s)
	if err != nil {
		return time.Time{}, &domain.UpdateFailure{Message: err.Error()}
	}
	return t, nil
}

// Replace overwrites the rows of one collection.
func (s *Store) Replace(mode domain.Mode, rows []domain.RawRecord) error {
	return s.withLockWrite(func(data *storeData) error {
		*data.rows(mode) = rows
		return nil
	})
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates an empty store file if it doesn't exist.
func (s *Store) Initialize() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil // Already exists
	}

	return s.write(&storeData{
		Tasks:    []domain.RawRecord{},
		Projects: []domain.RawRecord{},
	})
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotReady, s.path)
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}
	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements DataSource.
var _ domain.DataSource = (*Store)(nil)
