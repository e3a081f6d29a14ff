package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestManagePIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.pid")

	cleanup, err := managePIDFile(path, true)
	if err != nil {
		t.Fatalf("managePIDFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != strconv.Itoa(os.Getpid()) {
		t.Errorf("PID file holds %q", data)
	}

	// Our own process is alive, so a locked second start is refused
	if _, err := managePIDFile(path, true); err == nil {
		t.Error("second locked start should fail")
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("PID file not removed: %v", err)
	}
}

func TestCorruptPIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.pid")
	if err := os.WriteFile(path, []byte("not-a-pid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := managePIDFile(path, true); err == nil || !strings.Contains(err.Error(), "corrupted") {
		t.Errorf("corrupt PID file = %v", err)
	}

	// Without locking the file is simply overwritten
	cleanup, err := managePIDFile(path, false)
	if err != nil {
		t.Fatalf("unlocked start: %v", err)
	}
	cleanup()
}
