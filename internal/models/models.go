package models

// Profile identifies the local user. Captured once on first run and read-only
// afterwards except via an explicit reset.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ChecklistState maps subject name to per-topic completion flags,
// index-aligned to the catalog topic list for that subject.
type ChecklistState map[string][]bool
