// Package config persists operator-tunable settings as JSON. Loading never
// fails startup: a missing or malformed file just yields defaults.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bep/debounce"
	"github.com/jsphweid/airpiano/constants"
	"github.com/jsphweid/airpiano/util"
	"go.uber.org/zap"
)

type Config struct {
	CurrentScale       string  `json:"current_scale"`
	CurrentInstrument  int     `json:"current_instrument"`
	VelocityMultiplier float64 `json:"velocity_multiplier"`
	SustainTime        float64 `json:"sustain_time"` // seconds
	EchoEnabled        bool    `json:"echo_enabled"`
	ReverbEnabled      bool    `json:"reverb_enabled"`
	PinchThreshold     float64 `json:"pinch_threshold"` // pixels
	ScreenWidth        int     `json:"screen_width"`
	ScreenHeight       int     `json:"screen_height"`
}

func Default() Config {
	return Config{
		CurrentScale:       "D_Major",
		CurrentInstrument:  0,
		VelocityMultiplier: 1.0,
		SustainTime:        0.8,
		EchoEnabled:        false,
		ReverbEnabled:      true,
		PinchThreshold:     constants.DefaultPinchThreshold,
		ScreenWidth:        1280,
		ScreenHeight:       720,
	}
}

// Load reads path, layering the file's keys over defaults. Missing file and
// malformed JSON both fall back entirely to defaults, logged, never fatal.
func Load(path string, log *zap.Logger) Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Info("no config file, using defaults", zap.String("path", path))
		} else {
			log.Warn("config unreadable, using defaults", zap.String("path", path), zap.Error(err))
		}
		return cfg
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Warn("config malformed, using defaults", zap.String("path", path), zap.Error(err))
		return Default()
	}

	cfg.clamp()
	log.Info("config loaded", zap.String("path", path), zap.String("scale", cfg.CurrentScale))
	return cfg
}

// clamp keeps hand-edited files inside operable ranges.
func (c *Config) clamp() {
	c.VelocityMultiplier = util.Clamp(c.VelocityMultiplier, constants.MinMultiplier, constants.MaxMultiplier)
	if c.SustainTime <= 0 {
		c.SustainTime = Default().SustainTime
	}
	if c.PinchThreshold <= 0 {
		c.PinchThreshold = constants.DefaultPinchThreshold
	}
	if c.ScreenWidth <= 0 {
		c.ScreenWidth = Default().ScreenWidth
	}
	if c.ScreenHeight <= 0 {
		c.ScreenHeight = Default().ScreenHeight
	}
	if c.CurrentInstrument < 0 || c.CurrentInstrument > 127 {
		c.CurrentInstrument = 0
	}
}

func Save(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Saver coalesces bursts of settings changes (volume hammering, instrument
// hopping) into one write.
type Saver struct {
	path      string
	log       *zap.Logger
	debounced func(func())
}

func NewSaver(path string, log *zap.Logger) *Saver {
	return &Saver{
		path:      path,
		log:       log,
		debounced: debounce.New(constants.ConfigSaveDebounce),
	}
}

// Schedule queues a debounced save of the given snapshot.
func (s *Saver) Schedule(cfg Config) {
	s.debounced(func() {
		if err := Save(s.path, cfg); err != nil {
			s.log.Warn("config autosave failed", zap.Error(err))
		}
	})
}

// Flush writes immediately (shutdown path).
func (s *Saver) Flush(cfg Config) {
	if err := Save(s.path, cfg); err != nil {
		s.log.Warn("config save failed", zap.Error(err))
	}
}
