// Copyright (c) 2024, The Frames Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package core

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Settings holds the interaction defaults a graph applies to every new
// frame. It can be loaded from and saved to a TOML file so applications
// can ship tuned interaction profiles.
type Settings struct {
	// RotationSensitivity is the gain of rotation gestures.
	RotationSensitivity float32 `toml:"rotation-sensitivity"`

	// TranslationSensitivity is the gain of translation gestures.
	TranslationSensitivity float32 `toml:"translation-sensitivity"`

	// ScalingSensitivity is the gain of scaling gestures.
	ScalingSensitivity float32 `toml:"scaling-sensitivity"`

	// WheelSensitivity is the gain of wheel deltas.
	WheelSensitivity float32 `toml:"wheel-sensitivity"`

	// KeySensitivity is the step in pixels of keyboard gestures.
	KeySensitivity float32 `toml:"key-sensitivity"`

	// SpinningSensitivity is the minimum release speed that starts an
	// undamped spin.
	SpinningSensitivity float32 `toml:"spinning-sensitivity"`

	// Damping is the spin decay factor in [0..1].
	Damping float32 `toml:"damping"`

	// FlyUpdatePeriod is the fly animation tick period in milliseconds.
	FlyUpdatePeriod float32 `toml:"fly-update-period"`

	// Precision is the default picking precision mode.
	Precision Precision `toml:"precision"`

	// PrecisionThreshold is the default picking threshold in pixels.
	PrecisionThreshold float32 `toml:"precision-threshold"`

	// AlignThreshold is the axis-parallelism threshold of the align
	// gesture.
	AlignThreshold float32 `toml:"align-threshold"`
}

// DefaultSettings returns the stock interaction settings.
func DefaultSettings() Settings {
	return Settings{
		RotationSensitivity:    1,
		TranslationSensitivity: 1,
		ScalingSensitivity:     1,
		WheelSensitivity:       15,
		KeySensitivity:         10,
		SpinningSensitivity:    0.3,
		Damping:                0.5,
		FlyUpdatePeriod:        20,
		Precision:              Fixed,
		PrecisionThreshold:     20,
		AlignThreshold:         0.85,
	}
}

// OpenSettings loads settings from the given TOML file.
func OpenSettings(filename string) (Settings, error) {
	s := DefaultSettings()
	b, err := os.ReadFile(filename)
	if err != nil {
		return s, err
	}
	err = toml.Unmarshal(b, &s)
	return s, err
}

// Save writes the settings to the given TOML file.
func (s *Settings) Save(filename string) error {
	b, err := toml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0666)
}
