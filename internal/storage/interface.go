package storage

import "github.com/RugvedaRao/StudyLog/internal/models"

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Profile
	GetProfile() (models.Profile, bool, error)
	SaveProfile(models.Profile) error
	ResetProfile() error

	// Preferences
	GetTheme() (models.Theme, error)
	SaveTheme(models.Theme) error
	GetExamDate() (string, bool, error)
	SaveExamDate(iso string) error

	// To-dos
	GetTodos() ([]string, error)
	SaveTodos([]string) error

	// Checklist
	GetChecklist() (models.ChecklistState, error)
	SaveChecklist(models.ChecklistState) error

	// Utils
	DataPath() string
}
