package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/RugvedaRao/StudyLog/internal/models"
)

// Namespaced keys, carried over from the original tracker so an export of one
// backend maps one-to-one onto the other.
const (
	keyProfile   = "ca_user_v1"
	keyTheme     = "ca_theme_v1"
	keyExamDate  = "ca_exam_date_v3"
	keyTodos     = "ca_todo_list_v1"
	keyChecklist = "ca_foundation_tracker_v2"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.createSchema(); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Seed defaults so a fresh database behaves like a fresh JSON store.
	if _, ok, _ := s.getRaw(keyTheme); !ok {
		if err := s.SaveTheme(models.ThemeDark); err != nil {
			return fmt.Errorf("failed to save default theme: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'studylog init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.createSchema()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS prefs (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`)
	return err
}

func (s *SQLiteStore) getRaw(key string) (string, bool, error) {
	if s.db == nil {
		return "", false, fmt.Errorf("storage not loaded")
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM prefs WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) putRaw(key, value string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec(
		"INSERT INTO prefs (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

func (s *SQLiteStore) deleteRaw(key string) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}
	_, err := s.db.Exec("DELETE FROM prefs WHERE key = ?", key)
	return err
}

// getJSON unmarshals the stored value into out. A malformed value is treated
// the same as an absent one: the caller falls back to defaults.
func (s *SQLiteStore) getJSON(key string, out any) (bool, error) {
	raw, ok, err := s.getRaw(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *SQLiteStore) putJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", key, err)
	}
	return s.putRaw(key, string(data))
}

func (s *SQLiteStore) GetProfile() (models.Profile, bool, error) {
	var p models.Profile
	ok, err := s.getJSON(keyProfile, &p)
	if err != nil {
		return models.Profile{}, false, err
	}
	return p, ok, nil
}

func (s *SQLiteStore) SaveProfile(p models.Profile) error {
	return s.putJSON(keyProfile, p)
}

func (s *SQLiteStore) ResetProfile() error {
	return s.deleteRaw(keyProfile)
}

func (s *SQLiteStore) GetTheme() (models.Theme, error) {
	raw, ok, err := s.getRaw(keyTheme)
	if err != nil {
		return models.ThemeDark, err
	}
	theme := models.Theme(raw)
	if !ok || (theme != models.ThemeLight && theme != models.ThemeDark) {
		return models.ThemeDark, nil
	}
	return theme, nil
}

func (s *SQLiteStore) SaveTheme(t models.Theme) error {
	return s.putRaw(keyTheme, string(t))
}

func (s *SQLiteStore) GetExamDate() (string, bool, error) {
	return s.getRaw(keyExamDate)
}

func (s *SQLiteStore) SaveExamDate(iso string) error {
	return s.putRaw(keyExamDate, iso)
}

func (s *SQLiteStore) GetTodos() ([]string, error) {
	var todos []string
	ok, err := s.getJSON(keyTodos, &todos)
	if err != nil {
		return nil, err
	}
	if !ok || todos == nil {
		return []string{}, nil
	}
	return todos, nil
}

func (s *SQLiteStore) SaveTodos(todos []string) error {
	return s.putJSON(keyTodos, todos)
}

func (s *SQLiteStore) GetChecklist() (models.ChecklistState, error) {
	var state models.ChecklistState
	ok, err := s.getJSON(keyChecklist, &state)
	if err != nil {
		return nil, err
	}
	if !ok || state == nil {
		return models.ChecklistState{}, nil
	}
	return state, nil
}

func (s *SQLiteStore) SaveChecklist(state models.ChecklistState) error {
	return s.putJSON(keyChecklist, state)
}

func (s *SQLiteStore) DataPath() string {
	return s.path
}
