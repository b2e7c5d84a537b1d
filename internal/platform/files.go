package platform

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// File selection filters
const (
	BinaryFileExtension  = ".bin"
	ProjectFileExtension = ".ini"
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// EsptoolCommands are tried in order when no esptool command is configured
var EsptoolCommands = []string{"esptool.py", "esptool"}

// ErrNotBinary is returned for files that do not match the firmware filter
var ErrNotBinary = errors.New("not a firmware binary")

// IsBinaryFile reports whether path matches the *.bin filter
func IsBinaryFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), BinaryFileExtension)
}

// IsProjectFile reports whether path matches the *.ini filter
func IsProjectFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ProjectFileExtension)
}

// AbsPath returns the cleaned absolute form of path
func AbsPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}
	return abs, nil
}

// CheckBinaryFile verifies that path names an existing regular *.bin file and
// returns its absolute path.
func CheckBinaryFile(path string) (string, error) {
	if !IsBinaryFile(path) {
		return "", fmt.Errorf("%s: %w", path, ErrNotBinary)
	}
	abs, err := AbsPath(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("file does not exist: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file", abs)
	}
	return abs, nil
}

// CreateDirectoryIfNotExists creates the directory (and parents) if needed
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// FindEsptool returns the first esptool executable found on PATH
func FindEsptool() (string, error) {
	for _, name := range EsptoolCommands {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("esptool not found in PATH (tried %s)", strings.Join(EsptoolCommands, ", "))
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	if _, err := os.Stat(filePath); err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := AbsPath(filePath)
	if err != nil {
		return err
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens the directory containing file on Linux.
// File selection is not standardized on Linux, so only the parent is opened.
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}
