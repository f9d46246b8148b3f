package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// findBinary locates a prebuilt studylog binary. The e2e suite is skipped
// entirely when none exists; it never builds one itself.
func findBinary(t *testing.T) string {
	t.Helper()

	if dir := os.Getenv("STUDYLOG_BIN_DIR"); dir != "" {
		return filepath.Join(dir, "studylog")
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get cwd: %v", err)
	}
	bin := filepath.Join(cwd, "..", "..", "bin", "studylog")
	if _, err := os.Stat(bin); err != nil {
		t.Skipf("studylog binary not found at %s; build it first", bin)
	}
	return bin
}

func run(t *testing.T, bin string, env []string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(bin, args...)
	cmd.Env = append(os.Environ(), env...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

func TestEndToEndWorkflow(t *testing.T) {
	bin := findBinary(t)

	dir := t.TempDir()
	dataPath := filepath.Join(dir, "studylog.json")
	boardPath := filepath.Join(dir, "board")
	base := []string{}

	configArgs := func(rest ...string) []string {
		return append([]string{"--config", dataPath, "--board", boardPath}, rest...)
	}

	// 1. Initialize storage.
	out, err := run(t, bin, base, configArgs("init")...)
	if err != nil {
		t.Fatalf("init failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Initialized") {
		t.Errorf("unexpected init output: %s", out)
	}

	// 2. Set a profile.
	out, err = run(t, bin, base, configArgs("profile", "set", "Asha", "asha@example.com")...)
	if err != nil {
		t.Fatalf("profile set failed: %v\n%s", err, out)
	}

	// 3. Set the exam date and read the countdown back.
	out, err = run(t, bin, base, configArgs("exam", "set", "15-05-2030")...)
	if err != nil {
		t.Fatalf("exam set failed: %v\n%s", err, out)
	}
	out, err = run(t, bin, base, configArgs("exam", "show")...)
	if err != nil {
		t.Fatalf("exam show failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "15-05-2030") {
		t.Errorf("exam show should echo the date: %s", out)
	}

	// 4. Invalid date is rejected.
	if _, err = run(t, bin, base, configArgs("exam", "set", "31-02-2030")...); err == nil {
		t.Error("expected failure for impossible date")
	}

	// 5. Mark syllabus topics and confirm progress moves.
	out, err = run(t, bin, base, configArgs("mark", "Accounting", "1")...)
	if err != nil {
		t.Fatalf("mark failed: %v\n%s", err, out)
	}
	out, err = run(t, bin, base, configArgs("progress", "Accounting")...)
	if err != nil {
		t.Fatalf("progress failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "1/11") {
		t.Errorf("expected 1/11 done for Accounting: %s", out)
	}

	// 6. To-do round trip.
	if out, err = run(t, bin, base, configArgs("todo", "add", "revise", "chapter", "4")...); err != nil {
		t.Fatalf("todo add failed: %v\n%s", err, out)
	}
	out, err = run(t, bin, base, configArgs("todo", "list")...)
	if err != nil {
		t.Fatalf("todo list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "revise chapter 4") {
		t.Errorf("todo list missing entry: %s", out)
	}
	if out, err = run(t, bin, base, configArgs("todo", "rm", "1")...); err != nil {
		t.Fatalf("todo rm failed: %v\n%s", err, out)
	}

	// 7. Create a room and verify the share link parses back.
	out, err = run(t, bin, base, configArgs("room", "new")...)
	if err != nil {
		t.Fatalf("room new failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "studylog://room?code=") {
		t.Errorf("room new should print a share link: %s", out)
	}

	// 8. Backups.
	if out, err = run(t, bin, base, configArgs("backup", "create")...); err != nil {
		t.Fatalf("backup create failed: %v\n%s", err, out)
	}
	out, err = run(t, bin, base, configArgs("backup", "list")...)
	if err != nil {
		t.Fatalf("backup list failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "studylog-") {
		t.Errorf("backup list should show a backup: %s", out)
	}
}
