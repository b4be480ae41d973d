// Package jsonlog persists the investigator feedback log as a single JSON
// array file, one object per record, rewritten in full on every append or
// update. It is a deliberately dumb log: reads are fail-open (a missing or
// corrupt file reads as empty) and there is no locking, which limits it to a
// single-writer deployment.
package jsonlog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fraud-investigation-system/internal/domain/feedback"
)

// Store implements feedback.Store on a whole-file JSON array
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the given file path. The file is created
// lazily on first append.
func New(path string) *Store {
	return &Store{path: path}
}

// Append reads the full log, appends the record, and rewrites the file.
// Write-through: the record is durable when Append returns.
func (s *Store) Append(ctx context.Context, rec feedback.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.read()
	records = append(records, rec)
	return s.write(records)
}

// All returns every record in insertion order. Read failures are absorbed
// here: a missing or unparseable file yields an empty slice and no error, so
// corruption never blocks the alert queue.
func (s *Store) All(ctx context.Context) ([]feedback.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(), nil
}

// AttachPattern scans from the end for the account's most recent record and
// sets its knowledge pattern, then rewrites the file. No other field of any
// record is touched.
func (s *Store) AttachPattern(ctx context.Context, accountID string, pattern feedback.KnowledgePattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := s.read()
	for i := len(records) - 1; i >= 0; i-- {
		if records[i].AccountID == accountID {
			p := pattern
			records[i].KnowledgePattern = &p
			return s.write(records)
		}
	}
	return feedback.ErrNoDecisionForAccount
}

func (s *Store) read() []feedback.Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var records []feedback.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil
	}
	return records
}

func (s *Store) write(records []feedback.Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create feedback data dir: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode feedback log: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write feedback log: %w", err)
	}
	return nil
}
