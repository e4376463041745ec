package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automator.json")

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("missing file should yield defaults, got %+v", s)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automator.json")

	saved := Settings{
		BaseSize:     1440,
		Quality:      92,
		Format:       "png",
		Mode43:       "landscape",
		Preset:       "standard",
		ExportSquare: true,
		Export43:     false,
		Enhance:      false,
		SmartCrop:    true,
		NoUpscale:    true,
		SkipExisting: false,
		InputDir:     "/tmp/photos",
	}
	if err := SaveSettings(path, saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != saved {
		t.Errorf("round trip mismatch:\n saved  %+v\n loaded %+v", saved, loaded)
	}
}

func TestLoadSettingsNormalizesBadValues(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Settings
	}{
		{
			// Absent fields keep their defaults; out-of-range values are
			// pulled back to defaults.
			name: "out of range numbers",
			json: `{"base_size": 20, "quality": 5}`,
			want: DefaultSettings(),
		},
		{
			name: "unknown enum values",
			json: `{"format": "gif", "mode_43": "portrait", "preset": "vivid"}`,
			want: DefaultSettings(),
		},
		{
			name: "valid overrides survive",
			json: `{"base_size": 2000, "format": "png", "no_upscale": true}`,
			want: func() Settings {
				s := DefaultSettings()
				s.BaseSize = 2000
				s.Format = "png"
				s.NoUpscale = true
				return s
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "automator.json")
			if err := os.WriteFile(path, []byte(tt.json), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			got, err := LoadSettings(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLoadSettingsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "automator.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	s, err := LoadSettings(path)
	if err == nil {
		t.Error("expected error for corrupt file")
	}
	if s != DefaultSettings() {
		t.Errorf("corrupt file should fall back to defaults, got %+v", s)
	}
}
