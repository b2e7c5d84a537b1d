package project

import (
	"fmt"

	"github.com/golang/glog"
	"gopkg.in/ini.v1"

	"github.com/espdfu/espdfu/internal/model"
)

// Store persists project records
type Store interface {
	Load(path string) (model.ProjectRecord, error)
	Save(path string, record model.ProjectRecord) error
}

// FileStore keeps project records in INI files
type FileStore struct{}

// NewFileStore creates a project store backed by INI files
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Load reads a project file. Every key must be present and the baud rate
// must be supported; otherwise a *LoadError is returned and no record.
func (FileStore) Load(path string) (model.ProjectRecord, error) {
	var rec model.ProjectRecord

	cfg, err := ini.LoadSources(loadOptions, path)
	if err != nil {
		return rec, &LoadError{Path: path, Err: err}
	}

	get := func(section, key string) (string, error) {
		sec, err := cfg.GetSection(section)
		if err != nil {
			return "", fmt.Errorf("missing section [%s]", section)
		}
		k, err := sec.GetKey(key)
		if err != nil {
			return "", fmt.Errorf("missing key %q in [%s]", key, section)
		}
		return k.String(), nil
	}

	port, err := get(SectionComPort, KeyPort)
	if err != nil {
		return rec, &LoadError{Path: path, Err: err}
	}
	baudStr, err := get(SectionComPort, KeyBaudRate)
	if err != nil {
		return rec, &LoadError{Path: path, Err: err}
	}
	baud, err := model.ParseBaudRate(baudStr)
	if err != nil {
		return rec, &LoadError{Path: path, Err: err}
	}

	out := model.ProjectRecord{Port: port, Baud: baud}
	for kind, keys := range keysByKind {
		file, err := get(SectionFiles, keys.file)
		if err != nil {
			return rec, &LoadError{Path: path, Err: err}
		}
		sel, err := get(SectionFiles, keys.sel)
		if err != nil {
			return rec, &LoadError{Path: path, Err: err}
		}
		out.Artifacts[kind] = model.ArtifactRecord{Path: file, Include: parseBool(sel)}
	}

	glog.V(1).Infof("loaded project %s: port=%s baud=%s", path, out.Port, out.Baud)
	return out, nil
}

// Save writes record to path, replacing any existing file
func (FileStore) Save(path string, record model.ProjectRecord) error {
	if path == "" {
		return fmt.Errorf("no project file selected")
	}

	cfg := ini.Empty(loadOptions)

	files, err := cfg.NewSection(SectionFiles)
	if err != nil {
		return fmt.Errorf("failed to create section %s: %w", SectionFiles, err)
	}
	for _, kind := range fileKeyOrder {
		if _, err := files.NewKey(keysByKind[kind].file, record.Artifacts[kind].Path); err != nil {
			return fmt.Errorf("failed to write %s: %w", keysByKind[kind].file, err)
		}
	}
	for _, kind := range fileKeyOrder {
		if _, err := files.NewKey(keysByKind[kind].sel, formatBool(record.Artifacts[kind].Include)); err != nil {
			return fmt.Errorf("failed to write %s: %w", keysByKind[kind].sel, err)
		}
	}

	com, err := cfg.NewSection(SectionComPort)
	if err != nil {
		return fmt.Errorf("failed to create section %s: %w", SectionComPort, err)
	}
	if _, err := com.NewKey(KeyPort, record.Port); err != nil {
		return fmt.Errorf("failed to write %s: %w", KeyPort, err)
	}
	if _, err := com.NewKey(KeyBaudRate, record.Baud.String()); err != nil {
		return fmt.Errorf("failed to write %s: %w", KeyBaudRate, err)
	}

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save project file: %w", err)
	}
	glog.V(1).Infof("saved project %s", path)
	return nil
}
