package cli

import (
	"regexp"
	"strings"

	"github.com/RugvedaRao/StudyLog/internal/backup"
	"github.com/RugvedaRao/StudyLog/internal/forum"
	"github.com/RugvedaRao/StudyLog/internal/logger"
	"github.com/RugvedaRao/StudyLog/internal/storage"
)

type Context struct {
	Store      storage.Provider
	Forum      forum.Store
	WebhookURL string
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.DataPath())
	_, err := mgr.CreateBackup()
	if err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailRe.MatchString(email)
}

// renderBar draws a fixed-width text progress bar for pct in [0,100].
func renderBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
