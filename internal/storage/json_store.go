package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/haikegani/QuitSmoke/internal/models"
)

// document is the on-disk layout of a JSONStore.
type document struct {
	Version  int                            `json:"version"`
	Settings models.Settings                `json:"settings"`
	Plans    map[string]models.QuitPlan     `json:"plans"`
	Events   map[string][]models.UsageEvent `json:"events"`
}

// JSONStore keeps everything in a single JSON file. It suits a single user
// on one machine; every write rewrites the file.
type JSONStore struct {
	path string

	mu  sync.Mutex
	doc *document
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{
		path: path,
	}
}

func (s *JSONStore) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.doc = &document{
		Version:  1,
		Settings: models.DefaultSettings(),
		Plans:    make(map[string]models.QuitPlan),
		Events:   make(map[string][]models.UsageEvent),
	}
	return s.save()
}

func (s *JSONStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := &document{}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Plans == nil {
		doc.Plans = make(map[string]models.QuitPlan)
	}
	if doc.Events == nil {
		doc.Events = make(map[string][]models.UsageEvent)
	}
	models.ApplyDefaultSettings(&doc.Settings)

	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

// save writes the document atomically. Callers must hold mu.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return models.Settings{}, ErrNotLoaded
	}
	return s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNotLoaded
	}
	prev := s.doc.Settings
	s.doc.Settings = settings
	if err := s.save(); err != nil {
		s.doc.Settings = prev
		return err
	}
	return nil
}

func (s *JSONStore) GetPlan(userID string) (models.QuitPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return models.QuitPlan{}, ErrNotLoaded
	}
	plan, ok := s.doc.Plans[userID]
	if !ok {
		return models.QuitPlan{}, fmt.Errorf("plan for %q: %w", userID, ErrNotFound)
	}
	return plan, nil
}

func (s *JSONStore) PutPlan(plan models.QuitPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNotLoaded
	}
	prev, had := s.doc.Plans[plan.UserID]
	s.doc.Plans[plan.UserID] = plan
	if err := s.save(); err != nil {
		if had {
			s.doc.Plans[plan.UserID] = prev
		} else {
			delete(s.doc.Plans, plan.UserID)
		}
		return err
	}
	return nil
}

func (s *JSONStore) AppendEvent(event models.UsageEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNotLoaded
	}
	for _, e := range s.doc.Events[event.UserID] {
		if e.ID == event.ID {
			return fmt.Errorf("event %s already exists", event.ID)
		}
	}

	prev, had := s.doc.Events[event.UserID]
	events := make([]models.UsageEvent, 0, len(prev)+1)
	events = append(append(events, prev...), event)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})
	s.doc.Events[event.UserID] = events
	if err := s.save(); err != nil {
		if had {
			s.doc.Events[event.UserID] = prev
		} else {
			delete(s.doc.Events, event.UserID)
		}
		return err
	}
	return nil
}

func (s *JSONStore) ListEvents(userID string, since time.Time) ([]models.UsageEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, ErrNotLoaded
	}

	all := s.doc.Events[userID]
	out := make([]models.UsageEvent, 0, len(all))
	for _, e := range all {
		if !since.IsZero() && e.OccurredAt.Before(since) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
