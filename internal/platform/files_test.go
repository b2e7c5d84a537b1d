package platform

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIsBinaryFile(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/fw/app.bin", true},
		{"/fw/APP.BIN", true},
		{"bootloader.bin", true},
		{"/fw/app.elf", false},
		{"/fw/bin", false},
		{"", false},
	}

	for _, test := range tests {
		if got := IsBinaryFile(test.path); got != test.expected {
			t.Errorf("IsBinaryFile(%q) = %v, expected %v", test.path, got, test.expected)
		}
	}
}

func TestIsProjectFile(t *testing.T) {
	if !IsProjectFile("board.ini") || IsProjectFile("board.txt") {
		t.Error("IsProjectFile should accept only *.ini")
	}
}

func TestCheckBinaryFile(t *testing.T) {
	tempDir := t.TempDir()
	binPath := filepath.Join(tempDir, "app.bin")
	if err := os.WriteFile(binPath, []byte{0xE9}, 0644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	abs, err := CheckBinaryFile(binPath)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !filepath.IsAbs(abs) {
		t.Errorf("Expected absolute path, got %s", abs)
	}

	if _, err := CheckBinaryFile(filepath.Join(tempDir, "missing.bin")); err == nil {
		t.Error("Expected error for missing file")
	}

	txtPath := filepath.Join(tempDir, "notes.txt")
	os.WriteFile(txtPath, []byte("x"), 0644)
	if _, err := CheckBinaryFile(txtPath); !errors.Is(err, ErrNotBinary) {
		t.Errorf("Expected ErrNotBinary, got %v", err)
	}

	dirPath := filepath.Join(tempDir, "dir.bin")
	os.Mkdir(dirPath, 0755)
	if _, err := CheckBinaryFile(dirPath); err == nil {
		t.Error("Expected error for directory")
	}
}

func TestCreateDirectoryIfNotExists(t *testing.T) {
	tempDir := t.TempDir()
	testDir := filepath.Join(tempDir, "a", "b")

	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if _, err := os.Stat(testDir); os.IsNotExist(err) {
		t.Fatalf("Directory was not created: %s", testDir)
	}
	if err := CreateDirectoryIfNotExists(testDir); err != nil {
		t.Fatalf("Failed to handle existing directory: %v", err)
	}
}

func TestOpenFileInManager_NonExistentFile(t *testing.T) {
	err := OpenFileInManager(filepath.Join(t.TempDir(), "nonexistent.bin"))
	if err == nil {
		t.Fatal("Expected error for non-existent file, got nil")
	}
	if !strings.Contains(err.Error(), "file does not exist:") {
		t.Errorf("Error message should contain 'file does not exist:', got: %v", err)
	}
}

func TestFindEsptool_EmptyPath(t *testing.T) {
	t.Setenv("PATH", t.TempDir())
	_, err := FindEsptool()
	if err == nil {
		t.Fatal("Expected error with empty PATH")
	}
	if !strings.Contains(err.Error(), "esptool.py") {
		t.Errorf("Expected tried commands in error, got %v", err)
	}
}
