// Package store holds the injectable persistence behind the admin
// moderation queue and sessions.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lodnet/luach/internal/models"
)

var ErrNotFound = errors.New("submission not found")

// SubmissionStore persists pending submissions. Approval and rejection
// both end in Delete; no other state transition is stored.
type SubmissionStore interface {
	List(ctx context.Context) ([]models.Submission, error)
	Add(ctx context.Context, submission models.Submission) error
	Get(ctx context.Context, id string) (models.Submission, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// FileStore keeps submissions in one pretty-printed JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating submissions directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) load() ([]models.Submission, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.Submission{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading submissions file: %w", err)
	}
	var submissions []models.Submission
	if err := json.Unmarshal(data, &submissions); err != nil {
		return nil, fmt.Errorf("parsing submissions file: %w", err)
	}
	return submissions, nil
}

func (s *FileStore) save(submissions []models.Submission) error {
	data, err := json.MarshalIndent(submissions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling submissions: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing submissions file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Add(ctx context.Context, submission models.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	submissions, err := s.load()
	if err != nil {
		return err
	}
	return s.save(append(submissions, submission))
}

func (s *FileStore) Get(ctx context.Context, id string) (models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	submissions, err := s.load()
	if err != nil {
		return models.Submission{}, err
	}
	for _, sub := range submissions {
		if sub.ID == id {
			return sub, nil
		}
	}
	return models.Submission{}, ErrNotFound
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	submissions, err := s.load()
	if err != nil {
		return err
	}
	for i, sub := range submissions {
		if sub.ID == id {
			return s.save(append(submissions[:i], submissions[i+1:]...))
		}
	}
	return ErrNotFound
}

func (s *FileStore) Close() error {
	return nil
}
