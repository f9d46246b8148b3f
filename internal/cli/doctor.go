package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/RugvedaRao/StudyLog/internal/backup"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: data file loadable
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Data file loadable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Data file loadable: OK\n")
	}

	// Check 2: backups present (warning only)
	mgr := backup.NewManager(ctx.Store.DataPath())
	if backups, err := mgr.ListBackups(); err != nil || len(backups) == 0 {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   No backups found; run 'studylog backup create'\n")
	} else {
		fmt.Printf("✓ Backups present: OK (%d)\n", len(backups))
	}

	// Check 3: no other running instance sharing the data file. The store is
	// not safe for concurrent writers.
	if n, err := countInstances(); err != nil {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   Could not enumerate processes: %v\n", err)
	} else if n > 1 {
		fmt.Printf("⚠ Single instance: WARNING\n")
		fmt.Printf("   %d studylog processes running; concurrent writers may corrupt data\n", n)
	} else {
		fmt.Printf("✓ Single instance: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics reported failures")
	}
	fmt.Println("All checks passed.")
	return nil
}

func countInstances() (int, error) {
	procs, err := ps.Processes()
	if err != nil {
		return 0, err
	}

	self := filepath.Base(os.Args[0])
	count := 0
	for _, p := range procs {
		if strings.EqualFold(p.Executable(), self) {
			count++
		}
	}
	return count, nil
}
