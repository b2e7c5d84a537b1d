package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/espdfu/espdfu/internal/esptool"
	"github.com/espdfu/espdfu/internal/model"
	"github.com/espdfu/espdfu/internal/project"
)

func TestPromptConfirmer(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\n", false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var prompt bytes.Buffer
			p := promptConfirmer{in: strings.NewReader(tt.input), out: &prompt}

			var got, called bool
			p.Confirm("continue?", func(ok bool) {
				called = true
				got = ok
			})

			if !called {
				t.Fatal("answer was not called")
			}
			if got != tt.expected {
				t.Errorf("input %q: expected %v, got %v", tt.input, tt.expected, got)
			}
			if !strings.HasPrefix(prompt.String(), "continue? [y/N]") {
				t.Errorf("unexpected prompt %q", prompt.String())
			}
		})
	}
}

func TestRunArgsUnknownOperation(t *testing.T) {
	err := runArgs(argsCmd, []string{"reboot"})
	if err == nil || !strings.Contains(err.Error(), "unknown operation") {
		t.Errorf("expected unknown operation error, got %v", err)
	}
}

func TestArgsFlashFromProject(t *testing.T) {
	dir := t.TempDir()
	proj := filepath.Join(dir, "board.ini")
	app := filepath.Join(dir, "app.bin")

	var rec model.ProjectRecord
	rec.Port = "COM9"
	rec.Baud = 460800
	rec.Artifacts[model.ArtifactApplication] = model.ArtifactRecord{Path: app, Include: true}
	if err := project.NewFileStore().Save(proj, rec); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{
		"args", "flash",
		"--project", proj,
		"--port", "/dev/ttyUSB9",
		"--baud", "115200",
		"--settings", filepath.Join(dir, project.DefaultSettingsFile),
	})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	want := esptool.FormatCommand([]string{
		"--baud", "115200",
		"--port", "/dev/ttyUSB9",
		"write_flash", model.DefaultApplicationOffset, app,
	})
	if got := strings.TrimSpace(out.String()); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}
