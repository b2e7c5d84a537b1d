package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang/glog"
	"gopkg.in/ini.v1"

	"github.com/espdfu/espdfu/internal/platform"
)

// DefaultSettingsFile is the settings file name used when none is given
const DefaultSettingsFile = "espdfu.ini"

// SettingsStore remembers the last project file across runs
type SettingsStore interface {
	ProjectPath() (string, error)
	SetProjectPath(path string) error
}

// FileSettings keeps the last project path in an INI file at a fixed path
type FileSettings struct {
	path string
}

// NewFileSettings creates a settings store backed by the file at path
func NewFileSettings(path string) *FileSettings {
	if path == "" {
		path = DefaultSettingsFile
	}
	return &FileSettings{path: path}
}

// Path returns the settings file location
func (s *FileSettings) Path() string {
	return s.path
}

// ProjectPath returns the remembered project file, or "" when none is
// remembered. A missing or unreadable settings file is recreated empty.
func (s *FileSettings) ProjectPath() (string, error) {
	cfg, err := ini.LoadSources(loadOptions, s.path)
	if err == nil {
		if sec, err := cfg.GetSection(SectionFiles); err == nil && sec.HasKey(KeyProjFile) {
			return sec.Key(KeyProjFile).String(), nil
		}
	}

	if err != nil && !os.IsNotExist(err) {
		glog.Warningf("settings file %s unreadable, recreating: %v", s.path, err)
	}
	if err := s.SetProjectPath(""); err != nil {
		return "", err
	}
	return "", nil
}

// SetProjectPath records path as the last project file. The settings
// file's directory is created if needed.
func (s *FileSettings) SetProjectPath(path string) error {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	cfg := ini.Empty(loadOptions)
	sec, err := cfg.NewSection(SectionFiles)
	if err != nil {
		return fmt.Errorf("failed to create section %s: %w", SectionFiles, err)
	}
	if _, err := sec.NewKey(KeyProjFile, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", KeyProjFile, err)
	}
	if err := cfg.SaveTo(s.path); err != nil {
		return fmt.Errorf("failed to save settings file: %w", err)
	}
	return nil
}
