package config

import (
	"fmt"

	"github.com/lixenwraith/vi-snake/constants"
)

// Settings is the game configuration consumed by a session
type Settings struct {
	HidePauseButton bool `toml:"hide_pause_button" msgpack:"hide_pause_button"`
	StartPaused     bool `toml:"start_paused" msgpack:"start_paused"`
	ShowGridSquares bool `toml:"show_grid_squares" msgpack:"show_grid_squares"`
	GridSize        int  `toml:"grid_size" msgpack:"grid_size"`
	StartLength     int  `toml:"start_length" msgpack:"start_length"`
	TicksPerSecond  int  `toml:"ticks_per_second" msgpack:"ticks_per_second"`
}

// Default returns the settings written when no configuration exists
func Default() Settings {
	return Settings{
		GridSize:       constants.DefaultGridSize,
		StartLength:    constants.DefaultStartLength,
		TicksPerSecond: constants.DefaultTicksPerSecond,
	}
}

// ValidationError reports the first settings field out of range
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Validate checks ranges in a fixed order: lower bounds first, then upper bounds
func (s Settings) Validate() error {
	maxLength := s.GridSize - constants.StartLengthMargin

	switch {
	case s.GridSize < constants.MinGridSize:
		return &ValidationError{"grid_size", fmt.Sprintf("grid must be at least %d cells wide", constants.MinGridSize)}
	case s.StartLength < constants.MinStartLength:
		return &ValidationError{"start_length", fmt.Sprintf("snake must start with at least %d segments", constants.MinStartLength)}
	case s.TicksPerSecond < constants.MinTicksPerSecond:
		return &ValidationError{"ticks_per_second", fmt.Sprintf("speed must be at least %d move per second", constants.MinTicksPerSecond)}
	case s.GridSize > constants.MaxGridSize:
		return &ValidationError{"grid_size", fmt.Sprintf("grid can be at most %d cells wide", constants.MaxGridSize)}
	case s.StartLength > maxLength:
		return &ValidationError{"start_length", fmt.Sprintf("snake can start with at most %d segments on this grid", maxLength)}
	case s.TicksPerSecond > constants.MaxTicksPerSecond:
		return &ValidationError{"ticks_per_second", fmt.Sprintf("speed can be at most %d moves per second", constants.MaxTicksPerSecond)}
	}
	return nil
}
