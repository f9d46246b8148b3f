package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/RugvedaRao/StudyLog/internal/cli"
	"github.com/RugvedaRao/StudyLog/internal/forum"
	"github.com/RugvedaRao/StudyLog/internal/logger"
	"github.com/RugvedaRao/StudyLog/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Data file path." type:"path" default:"~/.config/studylog/studylog.db"`
	Board   string `help:"Shared board directory." type:"path" default:"~/.config/studylog/board"`
	Webhook string `help:"Profile log webhook URL." env:"STUDYLOG_WEBHOOK"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize studylog storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run diagnostics."`
	Progress cli.ProgressCmd `cmd:"" help:"Show syllabus progress."`
	Topics   cli.TopicsCmd   `cmd:"" help:"List a subject's topics."`
	Mark     cli.MarkCmd     `cmd:"" help:"Mark topics as studied."`
	Todo     struct {
		Add  cli.TodoAddCmd  `cmd:"" help:"Add a to-do."`
		List cli.TodoListCmd `cmd:"" help:"List to-dos."`
		Rm   cli.TodoRmCmd   `cmd:"" help:"Remove a to-do."`
	} `cmd:"" help:"Manage the to-do list."`
	Exam struct {
		Set  cli.ExamSetCmd  `cmd:"" help:"Set the exam date."`
		Show cli.ExamShowCmd `cmd:"" help:"Show the exam countdown."`
	} `cmd:"" help:"Manage the exam date."`
	Profile struct {
		Set   cli.ProfileSetCmd   `cmd:"" help:"Set name and email."`
		Show  cli.ProfileShowCmd  `cmd:"" help:"Show the stored profile."`
		Reset cli.ProfileResetCmd `cmd:"" help:"Clear the stored profile."`
	} `cmd:"" help:"Manage the local profile."`
	Room struct {
		New cli.RoomNewCmd `cmd:"" help:"Create a private room."`
	} `cmd:"" help:"Manage private rooms."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage data backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("studylog"),
		kong.Description("CA Foundation study tracker / exam countdown companion"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := logger.Init(logger.Config{
		Debug:   CLI.Debug,
		DataDir: filepath.Dir(CLI.Config),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging unavailable: %v\n", err)
	}

	// Determine storage type based on extension
	var store storage.Provider
	if len(CLI.Config) > 5 && CLI.Config[len(CLI.Config)-5:] == ".json" {
		store = storage.NewJSONStore(CLI.Config)
	} else {
		store = storage.NewSQLiteStore(CLI.Config)
	}

	appCtx := &cli.Context{
		Store:      store,
		Forum:      forum.NewDiskStore(CLI.Board),
		WebhookURL: CLI.Webhook,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
