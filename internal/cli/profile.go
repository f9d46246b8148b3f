package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/RugvedaRao/StudyLog/internal/constants"
	"github.com/RugvedaRao/StudyLog/internal/models"
	"github.com/RugvedaRao/StudyLog/internal/webhook"
)

type ProfileSetCmd struct {
	Name  string `arg:"" help:"Display name."`
	Email string `arg:"" help:"Email address."`
}

func (c *ProfileSetCmd) Run(ctx *Context) error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return fmt.Errorf("please enter your name")
	}
	if runes := []rune(name); len(runes) > constants.MaxNameLen {
		name = string(runes[:constants.MaxNameLen])
	}

	email := strings.TrimSpace(c.Email)
	if !validEmail(email) {
		return fmt.Errorf("please enter a valid email")
	}

	if err := ctx.Store.Load(); err != nil {
		return err
	}

	profile := models.Profile{Name: name, Email: email}
	if err := ctx.Store.SaveProfile(profile); err != nil {
		return err
	}

	// Sign-up logging is best effort and never blocks or fails the capture.
	logCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := webhook.New(ctx.WebhookURL).LogProfile(logCtx, profile, ctx.Store.DataPath()); err != nil {
		fmt.Fprintf(os.Stderr, "sign-up log failed: %v\n", err)
	}

	fmt.Printf("Saved profile for %s\n", name)
	return nil
}

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	profile, ok, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("No profile set. Use 'studylog profile set <name> <email>'.")
		return nil
	}

	fmt.Printf("Name:  %s\nEmail: %s\n", profile.Name, profile.Email)
	return nil
}

type ProfileResetCmd struct{}

func (c *ProfileResetCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	if err := ctx.Store.ResetProfile(); err != nil {
		return err
	}
	fmt.Println("Profile cleared. You will be asked again on next launch.")
	return nil
}
