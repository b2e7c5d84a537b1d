package config

import (
	"strings"

	"fyne.io/fyne/v2"

	"github.com/espdfu/espdfu/internal/model"
)

// Settings keys for Fyne preferences
const (
	KeyEsptoolCommand = "esptool_command"
	KeyLanguage       = "app_language"
	KeyLastBaud       = "last_baud"
)

// Default values
const (
	DefaultEsptoolCommand = "esptool.py"
	DefaultLanguage       = "system"
	DefaultLastBaud       = model.DefaultBaudRate
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetEsptoolCommand returns the executable used to run esptool
func (s *Settings) GetEsptoolCommand() string {
	cmd := strings.TrimSpace(s.app.Preferences().String(KeyEsptoolCommand))
	if cmd == "" {
		s.SetEsptoolCommand(DefaultEsptoolCommand)
		return DefaultEsptoolCommand
	}
	return cmd
}

// SetEsptoolCommand sets the esptool executable; empty restores the default
func (s *Settings) SetEsptoolCommand(cmd string) {
	cmd = strings.TrimSpace(cmd)
	if cmd == "" {
		cmd = DefaultEsptoolCommand
	}
	s.app.Preferences().SetString(KeyEsptoolCommand, cmd)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLastBaud returns the baud rate used last, falling back to the default
// when the stored value is missing or no longer supported
func (s *Settings) GetLastBaud() model.BaudRate {
	b := model.BaudRate(s.app.Preferences().IntWithFallback(KeyLastBaud, int(DefaultLastBaud)))
	if !b.Valid() {
		return DefaultLastBaud
	}
	return b
}

// SetLastBaud remembers the baud rate; unsupported rates are ignored
func (s *Settings) SetLastBaud(b model.BaudRate) {
	if !b.Valid() {
		return
	}
	s.app.Preferences().SetInt(KeyLastBaud, int(b))
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
