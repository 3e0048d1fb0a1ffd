package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFailingCommandClosesLogFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "missing.json")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"html", "--in", missing, "--log-dir", dir})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		inPath, logDir, logFile = "", "", nil
	})

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing input file")
	}

	if logFile == nil {
		t.Fatal("log file was never opened")
	}
	if _, err := logFile.WriteString("late"); !errors.Is(err, os.ErrClosed) {
		t.Errorf("log file still open after failing command: write error = %v", err)
	}

	logs, _ := filepath.Glob(filepath.Join(dir, "draftconv-*.log"))
	if len(logs) != 1 {
		t.Errorf("log files = %v, want one", logs)
	}
}
