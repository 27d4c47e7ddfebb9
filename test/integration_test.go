// ABOUTME: Integration tests for pullups CLI.
// ABOUTME: Builds the binary and runs a guest workflow against temp directories.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	pullupsBinary := filepath.Join(projectRoot, "pullups")

	buildCmd := exec.Command("go", "build", "-o", pullupsBinary, "./cmd/pullups")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(pullupsBinary)

	// Use temp config and data directories
	configDir := t.TempDir()
	dataDir := t.TempDir()

	run := func(args ...string) (string, error) {
		cmd := exec.Command(pullupsBinary, args...)
		cmd.Env = append(os.Environ(),
			"XDG_CONFIG_HOME="+configDir,
			"XDG_DATA_HOME="+dataDir,
			"NO_COLOR=1",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Test logging sets
	output, err := run("log", "8")
	if err != nil {
		t.Fatalf("Failed to log set: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Logged 8 reps") {
		t.Errorf("Expected 'Logged 8 reps' in output, got: %s", output)
	}

	output, err = run("log", "12")
	if err != nil {
		t.Fatalf("Failed to log set: %v\n%s", err, output)
	}
	if !strings.Contains(output, "20") {
		t.Errorf("Expected running total 20, got: %s", output)
	}

	// Test goal
	output, err = run("goal", "set", "40")
	if err != nil {
		t.Fatalf("Failed to set goal: %v\n%s", err, output)
	}

	output, err = run("today")
	if err != nil {
		t.Fatalf("Failed to show today: %v\n%s", err, output)
	}
	if !strings.Contains(output, "50%") {
		t.Errorf("Expected 50%% progress in today output, got: %s", output)
	}

	// Test stats
	output, err = run("stats")
	if err != nil {
		t.Fatalf("Failed to show stats: %v\n%s", err, output)
	}
	if !strings.Contains(output, "10.0") {
		t.Errorf("Expected average 10.0 in stats output, got: %s", output)
	}

	// Test zero reps is rejected
	output, err = run("log", "0")
	if err == nil {
		t.Errorf("Expected error logging 0 reps, got: %s", output)
	}

	// Test export
	output, err = run("export", "json")
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if !strings.Contains(output, `"mode": "guest"`) {
		t.Errorf("Expected guest mode in export, got: %s", output)
	}

	// Test reset
	output, err = run("reset", "--yes")
	if err != nil {
		t.Fatalf("Failed to reset: %v\n%s", err, output)
	}
	output, err = run("today")
	if err != nil {
		t.Fatalf("Failed to show today: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No pull-ups logged yet") {
		t.Errorf("Expected empty day after reset, got: %s", output)
	}
}
