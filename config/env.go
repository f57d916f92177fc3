package config

import (
	"os"
	"strconv"
)

// ApplyEnv overrides file values from VI_SNAKE_* environment variables
// Unparseable values are ignored
func ApplyEnv(f *File) {
	envInt("VI_SNAKE_GRID_SIZE", &f.Game.GridSize)
	envInt("VI_SNAKE_START_LENGTH", &f.Game.StartLength)
	envInt("VI_SNAKE_TPS", &f.Game.TicksPerSecond)
	envBool("VI_SNAKE_START_PAUSED", &f.Game.StartPaused)
	envBool("VI_SNAKE_AUDIO_ENABLED", &f.Audio.Enabled)

	// Master volume as 0-100 converted to 0.0-1.0
	if volume := os.Getenv("VI_SNAKE_MASTER_VOLUME"); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			f.Audio.MasterVolume = float64(val) / 100.0
			if f.Audio.MasterVolume < 0 {
				f.Audio.MasterVolume = 0
			}
			if f.Audio.MasterVolume > 1 {
				f.Audio.MasterVolume = 1
			}
		}
	}
}

func envInt(name string, dst *int) {
	if s := os.Getenv(name); s != "" {
		if val, err := strconv.Atoi(s); err == nil {
			*dst = val
		}
	}
}

func envBool(name string, dst *bool) {
	if s := os.Getenv(name); s != "" {
		if val, err := strconv.ParseBool(s); err == nil {
			*dst = val
		}
	}
}
