package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetup_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	logger, file, err := Setup(path)
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	logger.Printf("reconciled %d rows", 42)
	if err := file.Close(); err != nil {
		t.Fatalf("Failed to close log file: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "[doi] ") {
		t.Errorf("Expected the doi prefix in %q", data)
	}
	if !strings.Contains(string(data), "reconciled 42 rows") {
		t.Errorf("Expected the log line in %q", data)
	}
}

func TestSetup_StderrWhenNoPath(t *testing.T) {
	logger, file, err := Setup("")
	if err != nil {
		t.Fatalf("Setup failed: %v", err)
	}
	if logger == nil {
		t.Fatal("Expected a logger")
	}
	if file != nil {
		t.Error("Expected no file handle for stderr logging")
	}
}
