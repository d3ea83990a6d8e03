// Package settings provides JSON-persisted user settings.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const settingsFile = "settings.json"

// Settings holds the user-tunable parameters persisted across sessions.
// The core engine consumes the snapping fields; the UI consumes the rest.
type Settings struct {
	// GridSpacing is the background grid pitch in canvas units.
	GridSpacing float64 `json:"grid_spacing"`
	// SnapToleranceDeg is the angular window for ruler snapping.
	SnapToleranceDeg float64 `json:"snap_tolerance_deg"`
	// SnapAngles lists the canonical ruler angles in degrees.
	SnapAngles []float64 `json:"snap_angles"`
	// PixelsPerCentimeter calibrates the HUD's real-world length readout.
	PixelsPerCentimeter float64 `json:"pixels_per_cm"`
	// Haptics toggles snap feedback on platforms that support it.
	Haptics bool `json:"haptics"`

	path string
}

// Default returns the stock settings.
func Default() *Settings {
	return &Settings{
		GridSpacing:         50,
		SnapToleranceDeg:    15,
		SnapAngles:          []float64{0, 90, -90, 180, 45, -45, 135},
		PixelsPerCentimeter: 40,
		Haptics:             true,
	}
}

// Load reads settings from <UserConfigDir>/snappyruler/settings.json,
// returning defaults if the file doesn't exist or can't be parsed.
func Load() *Settings {
	s := Default()

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	s.path = filepath.Join(configDir, "snappyruler", settingsFile)

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, s); err != nil {
		return Default().withPath(s.path)
	}
	if s.GridSpacing <= 0 || s.SnapToleranceDeg <= 0 || s.PixelsPerCentimeter <= 0 {
		return Default().withPath(s.path)
	}
	return s
}

func (s *Settings) withPath(path string) *Settings {
	s.path = path
	return s
}

// Save writes the settings to disk, creating the config directory as
// needed.
func (s *Settings) Save() error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
