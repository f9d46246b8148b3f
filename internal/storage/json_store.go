package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/RugvedaRao/StudyLog/internal/models"
)

type Store struct {
	Version   int                   `json:"version"`
	Profile   *models.Profile       `json:"profile,omitempty"`
	Theme     models.Theme          `json:"theme"`
	ExamDate  string                `json:"exam_date,omitempty"` // YYYY-MM-DD
	Todos     []string              `json:"todos"`
	Checklist models.ChecklistState `json:"checklist"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(dataPath string) *JSONStore {
	return &JSONStore{
		path: dataPath,
	}
}

func defaultStore() *Store {
	return &Store{
		Version:   1,
		Theme:     models.ThemeDark,
		Todos:     []string{},
		Checklist: models.ChecklistState{},
	}
}

func (s *JSONStore) Init() error {
	// Create data directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = defaultStore()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'studylog init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		// Corrupt state is never fatal: fall back to defaults and let the
		// next save overwrite the bad file.
		s.store = defaultStore()
		return nil
	}

	if s.store.Theme != models.ThemeLight && s.store.Theme != models.ThemeDark {
		s.store.Theme = models.ThemeDark
	}
	if s.store.Todos == nil {
		s.store.Todos = []string{}
	}
	if s.store.Checklist == nil {
		s.store.Checklist = models.ChecklistState{}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) GetProfile() (models.Profile, bool, error) {
	if s.store == nil {
		return models.Profile{}, false, fmt.Errorf("storage not loaded")
	}
	if s.store.Profile == nil {
		return models.Profile{}, false, nil
	}
	return *s.store.Profile, true, nil
}

func (s *JSONStore) SaveProfile(p models.Profile) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Profile = &p
	return s.save()
}

func (s *JSONStore) ResetProfile() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Profile = nil
	return s.save()
}

func (s *JSONStore) GetTheme() (models.Theme, error) {
	if s.store == nil {
		return models.ThemeDark, fmt.Errorf("storage not loaded")
	}
	return s.store.Theme, nil
}

func (s *JSONStore) SaveTheme(t models.Theme) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Theme = t
	return s.save()
}

func (s *JSONStore) GetExamDate() (string, bool, error) {
	if s.store == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	return s.store.ExamDate, s.store.ExamDate != "", nil
}

func (s *JSONStore) SaveExamDate(iso string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.ExamDate = iso
	return s.save()
}

func (s *JSONStore) GetTodos() ([]string, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	todos := make([]string, len(s.store.Todos))
	copy(todos, s.store.Todos)
	return todos, nil
}

func (s *JSONStore) SaveTodos(todos []string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Todos = make([]string, len(todos))
	copy(s.store.Todos, todos)
	return s.save()
}

func (s *JSONStore) GetChecklist() (models.ChecklistState, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	state := models.ChecklistState{}
	for subj, flags := range s.store.Checklist {
		arr := make([]bool, len(flags))
		copy(arr, flags)
		state[subj] = arr
	}
	return state, nil
}

func (s *JSONStore) SaveChecklist(state models.ChecklistState) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Checklist = models.ChecklistState{}
	for subj, flags := range state {
		arr := make([]bool, len(flags))
		copy(arr, flags)
		s.store.Checklist[subj] = arr
	}
	return s.save()
}

func (s *JSONStore) DataPath() string {
	return s.path
}
