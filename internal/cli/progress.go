package cli

import (
	"fmt"

	"github.com/RugvedaRao/StudyLog/internal/catalog"
	"github.com/RugvedaRao/StudyLog/internal/progress"
)

type ProgressCmd struct {
	Subject string `arg:"" optional:"" help:"Show one subject instead of the full overview."`
}

func (c *ProgressCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tracker := progress.New(ctx.Store)
	state, err := tracker.Load()
	if err != nil {
		return err
	}

	if c.Subject != "" {
		if !catalog.Valid(c.Subject) {
			return fmt.Errorf("unknown subject: %s", c.Subject)
		}
		s := progress.StatsFor(state, c.Subject)
		fmt.Printf("%s  %s %3d%%  (%d/%d done)\n", renderBar(s.Pct, 20), c.Subject, s.Pct, s.Done, s.Total)
		return nil
	}

	for _, subject := range catalog.Subjects() {
		s := progress.StatsFor(state, subject)
		fmt.Printf("%s  %-22s %3d%%  (%d/%d done)\n", renderBar(s.Pct, 20), subject, s.Pct, s.Done, s.Total)
	}

	overall := progress.Overall(state)
	fmt.Printf("\nOverall: %d%% (%d/%d)\n", overall.Pct, overall.Done, overall.Total)
	return nil
}

type TopicsCmd struct {
	Subject string `arg:"" help:"Subject whose topics to list."`
}

func (c *TopicsCmd) Run(ctx *Context) error {
	if !catalog.Valid(c.Subject) {
		return fmt.Errorf("unknown subject: %s", c.Subject)
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tracker := progress.New(ctx.Store)
	state, err := tracker.Load()
	if err != nil {
		return err
	}

	flags := state[c.Subject]
	for i, topic := range catalog.Topics(c.Subject) {
		mark := " "
		if flags[i] {
			mark = "x"
		}
		fmt.Printf("%2d. [%s] %s\n", i+1, mark, topic)
	}
	return nil
}

type MarkCmd struct {
	Subject string `arg:"" help:"Subject to update."`
	Topic   int    `arg:"" optional:"" help:"1-based topic number."`
	Undo    bool   `help:"Mark the topic as not done."`
	All     bool   `help:"Apply to every topic of the subject."`
}

func (c *MarkCmd) Validate() error {
	if !c.All && c.Topic < 1 {
		return fmt.Errorf("either a topic number or --all is required")
	}
	return nil
}

func (c *MarkCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	tracker := progress.New(ctx.Store)

	if c.All {
		if c.Undo {
			if err := tracker.ClearAll(c.Subject); err != nil {
				return err
			}
			fmt.Printf("Cleared all topics for %s\n", c.Subject)
			return nil
		}
		if err := tracker.MarkAll(c.Subject); err != nil {
			return err
		}
		fmt.Printf("Marked all topics for %s\n", c.Subject)
		return nil
	}

	if err := tracker.Toggle(c.Subject, c.Topic-1, !c.Undo); err != nil {
		return err
	}

	state, err := tracker.Load()
	if err != nil {
		return err
	}
	s := progress.StatsFor(state, c.Subject)
	fmt.Printf("%s: %d/%d done (%d%%)\n", c.Subject, s.Done, s.Total, s.Pct)
	return nil
}
