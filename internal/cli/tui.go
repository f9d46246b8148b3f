package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RugvedaRao/StudyLog/internal/forum"
	"github.com/RugvedaRao/StudyLog/internal/tui"
)

type TuiCmd struct {
	Room string `help:"Join a private room by code or share link instead of the public board."`
}

func (c *TuiCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	scope := forum.PublicScope
	if c.Room != "" {
		code, err := forum.ParseShareLink(c.Room)
		if err != nil {
			return err
		}
		scope = code
	}

	m := tui.NewModel(ctx.Store, ctx.Forum, tui.Options{
		Scope:      scope,
		WebhookURL: ctx.WebhookURL,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Alas, there's been an error: %v", err)
		os.Exit(1)
	}
	return nil
}
