package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ExportSettings controls the PDF layout. The width factors are the assumed
// average glyph width in mm per text style; they drive the line estimation
// heuristic used instead of real font metrics.
type ExportSettings struct {
	FontPath            string  `json:"fontPath"`
	QuestionFontSize    float64 `json:"questionFontSize"`
	OptionFontSize      float64 `json:"optionFontSize"`
	QuestionWidthFactor float64 `json:"questionWidthFactor"`
	PartWidthFactor     float64 `json:"partWidthFactor"`
	OptionWidthFactor   float64 `json:"optionWidthFactor"`
	TrailingGap         float64 `json:"trailingGap"`
}

// UISettings contains UI configuration.
type UISettings struct {
	Theme         string `json:"theme"`
	DarkMode      bool   `json:"darkMode"`
	ShowStatusBar bool   `json:"showStatusBar"`
	PreviewInline bool   `json:"previewInline"`
}

// Settings is the main configuration structure.
type Settings struct {
	Export ExportSettings `json:"export"`
	UI     UISettings     `json:"ui"`
}

// DefaultSettings returns the default configuration.
func DefaultSettings() *Settings {
	return &Settings{
		Export: ExportSettings{
			FontPath:            "",
			QuestionFontSize:    12,
			OptionFontSize:      11,
			QuestionWidthFactor: 2.0,
			PartWidthFactor:     2.0,
			OptionWidthFactor:   1.8,
			TrailingGap:         4.0,
		},
		UI: UISettings{
			Theme:         "default-light",
			DarkMode:      false,
			ShowStatusBar: true,
			PreviewInline: true,
		},
	}
}

// SettingsManager handles configuration persistence.
type SettingsManager struct {
	settings    *Settings
	settingsDir string
	configFile  string
}

// NewSettingsManager creates a new SettingsManager.
func NewSettingsManager() *SettingsManager {
	settingsDir := getSettingsDir()
	return &SettingsManager{
		settings:    DefaultSettings(),
		settingsDir: settingsDir,
		configFile:  filepath.Join(settingsDir, "settings.json"),
	}
}

// Load reads settings from disk or creates defaults.
func (sm *SettingsManager) Load() error {
	if err := os.MkdirAll(sm.settingsDir, 0755); err != nil {
		return err
	}

	data, err := os.ReadFile(sm.configFile)
	if err != nil {
		if os.IsNotExist(err) {
			return sm.Save()
		}
		return err
	}

	var loaded Settings
	if err := json.Unmarshal(data, &loaded); err != nil {
		return err
	}

	sm.settings = &loaded
	return nil
}

// Save writes current settings to disk.
func (sm *SettingsManager) Save() error {
	if err := os.MkdirAll(sm.settingsDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(sm.settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(sm.configFile, data, 0644)
}

// Get returns the current settings.
func (sm *SettingsManager) Get() *Settings {
	return sm.settings
}

// Update updates settings and saves to disk.
func (sm *SettingsManager) Update(newSettings *Settings) error {
	sm.settings = newSettings
	return sm.Save()
}

// UpdateExport updates export settings.
func (sm *SettingsManager) UpdateExport(export ExportSettings) error {
	sm.settings.Export = export
	return sm.Save()
}

// UpdateUI updates UI settings.
func (sm *SettingsManager) UpdateUI(ui UISettings) error {
	sm.settings.UI = ui
	return sm.Save()
}

// ResetToDefaults resets all settings to defaults.
func (sm *SettingsManager) ResetToDefaults() error {
	sm.settings = DefaultSettings()
	return sm.Save()
}
