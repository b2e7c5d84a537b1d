package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSettingsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultSettingsFile)
	s := NewFileSettings(path)

	got, err := s.ProjectPath()
	if err != nil {
		t.Fatalf("ProjectPath failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty project path, got %q", got)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected settings file to be created: %v", err)
	}
}

func TestFileSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultSettingsFile)
	s := NewFileSettings(path)

	if err := s.SetProjectPath("/work/board.ini"); err != nil {
		t.Fatalf("SetProjectPath failed: %v", err)
	}

	got, err := NewFileSettings(path).ProjectPath()
	if err != nil {
		t.Fatalf("ProjectPath failed: %v", err)
	}
	if got != "/work/board.ini" {
		t.Errorf("expected /work/board.ini, got %q", got)
	}
}

func TestFileSettingsMissingKeyIsReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultSettingsFile)
	if err := os.WriteFile(path, []byte("[other]\nx = 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	got, err := NewFileSettings(path).ProjectPath()
	if err != nil {
		t.Fatalf("ProjectPath failed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty project path, got %q", got)
	}
}

func TestNewFileSettingsDefaultPath(t *testing.T) {
	if got := NewFileSettings("").Path(); got != DefaultSettingsFile {
		t.Errorf("expected %s, got %s", DefaultSettingsFile, got)
	}
}

func TestFileSettingsCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "espdfu", DefaultSettingsFile)

	if err := NewFileSettings(path).SetProjectPath("/work/board.ini"); err != nil {
		t.Fatalf("SetProjectPath failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected settings file in new directory: %v", err)
	}
}
