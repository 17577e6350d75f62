package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrDisabled = errors.New("history is disabled")

// Job is one recorded generation, successful or not.
type Job struct {
	ID          string    `json:"id"`
	Prompt      string    `json:"prompt"`
	Model       string    `json:"model"`
	AspectRatio string    `json:"aspect_ratio"`
	ImageURLs   []string  `json:"image_urls,omitempty"`
	CreditsUsed float64   `json:"credits_used,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Error       string    `json:"error,omitempty"`
}

func NewJob(prompt, model, aspectRatio string) Job {
	return Job{
		ID:          uuid.NewString(),
		Prompt:      prompt,
		Model:       model,
		AspectRatio: aspectRatio,
		CreatedAt:   time.Now(),
	}
}

// Store persists jobs to a JSON file, newest last, trimmed to maxEntries.
// maxEntries <= 0 disables the store entirely.
type Store struct {
	mu         sync.Mutex
	path       string
	maxEntries int
}

func NewStore(path string, maxEntries int) *Store {
	return &Store{
		path:       path,
		maxEntries: maxEntries,
	}
}

func (s *Store) Add(job Job) error {
	if s.maxEntries <= 0 {
		return ErrDisabled
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.load()
	if err != nil {
		return err
	}

	jobs = append(jobs, job)
	if len(jobs) > s.maxEntries {
		jobs = jobs[len(jobs)-s.maxEntries:]
	}

	return s.save(jobs)
}

// Recent returns up to n jobs, newest first. n <= 0 means all.
func (s *Store) Recent(n int) ([]Job, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.load()
	if err != nil {
		return nil, err
	}

	reversed := make([]Job, len(jobs))
	for i, job := range jobs {
		reversed[len(jobs)-1-i] = job
	}

	if n > 0 && len(reversed) > n {
		reversed = reversed[:n]
	}
	return reversed, nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove history file: %w", err)
	}
	return nil
}

// load reads the file; a missing file is an empty history.
func (s *Store) load() ([]Job, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var jobs []Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, fmt.Errorf("parse history file: %w", err)
	}
	return jobs, nil
}

// save writes atomically via a temp file rename.
func (s *Store) save(jobs []Job) error {
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}
