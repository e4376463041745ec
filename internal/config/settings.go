package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Settings holds the persisted image automator options.
type Settings struct {
	BaseSize     int    `json:"base_size"`
	Quality      int    `json:"quality"`
	Format       string `json:"format"`  // "jpg" or "png"
	Mode43       string `json:"mode_43"` // "auto" or "landscape"
	Preset       string `json:"preset"`  // "standard" or "adoption"
	ExportSquare bool   `json:"export_square"`
	Export43     bool   `json:"export_43"`
	Enhance      bool   `json:"enhance"`
	SmartCrop    bool   `json:"smart_crop"`
	NoUpscale    bool   `json:"no_upscale"`
	SkipExisting bool   `json:"skip_existing"`
	InputDir     string `json:"input_dir"`
}

// DefaultSettings returns the settings used before the user saves any.
func DefaultSettings() Settings {
	return Settings{
		BaseSize:     1080,
		Quality:      80,
		Format:       "jpg",
		Mode43:       "auto",
		Preset:       "adoption",
		ExportSquare: true,
		Export43:     true,
		Enhance:      true,
		SmartCrop:    true,
		SkipExisting: true,
	}
}

// LoadSettings reads settings from path. A missing file yields defaults.
// Out-of-range values are pulled back to defaults so a hand-edited file
// cannot put the automator in an invalid state.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse settings: %w", err)
	}

	return s.normalized(), nil
}

// SaveSettings writes settings as indented JSON.
func SaveSettings(path string, s Settings) error {
	data, err := json.MarshalIndent(s.normalized(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

func (s Settings) normalized() Settings {
	if s.BaseSize < 400 || s.BaseSize > 4000 {
		s.BaseSize = 1080
	}
	if s.Quality < 70 || s.Quality > 100 {
		s.Quality = 80
	}
	if s.Format != "jpg" && s.Format != "png" {
		s.Format = "jpg"
	}
	if s.Mode43 != "auto" && s.Mode43 != "landscape" {
		s.Mode43 = "auto"
	}
	if s.Preset != "standard" && s.Preset != "adoption" {
		s.Preset = "adoption"
	}
	return s
}
