package calculator

import (
	"errors"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// DefaultConfigPath is where the binary looks for the ini file.
const DefaultConfigPath = "conf/config.ini"

// Config holds the model constants. The zero value is not usable; start from
// DefaultConfig or LoadConfig.
type Config struct {
	// Deal-Grove, μm and μm²/min
	OxidationA float64
	OxidationB float64
	// oxidation saturation, nm and 1/min
	OxidationMax   float64
	OxidationDecay float64

	DepositionCoefficient float64 // nm/min per 100°C
	DepositionOvershoot   float64 // bound relative to the linear endpoint
	DepositionDecay       float64 // 1/min

	EtchCoefficient float64 // nm/min per 100°C
	EtchDecay       float64 // 1/min

	Addr     string
	LogLevel string
}

func DefaultConfig() Config {
	return Config{
		OxidationA:     0.1,
		OxidationB:     0.0117,
		OxidationMax:   500,
		OxidationDecay: 0.05,

		DepositionCoefficient: 0.08,
		DepositionOvershoot:   1.1,
		DepositionDecay:       0.05,

		EtchCoefficient: 0.05,
		EtchDecay:       0.03,

		Addr:     ":9000",
		LogLevel: "info",
	}
}

// LoadConfig reads path. A missing file is not an error: the defaults are
// returned instead.
func LoadConfig(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.WithField("path", path).Info("config file not found, using defaults")
		return DefaultConfig(), nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg := loadCfg(file)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func loadCfg(file *ini.File) Config {
	def := DefaultConfig()
	m := file.Section("model")
	return Config{
		OxidationA:     m.Key("oxidation_a").MustFloat64(def.OxidationA),
		OxidationB:     m.Key("oxidation_b").MustFloat64(def.OxidationB),
		OxidationMax:   m.Key("oxidation_max").MustFloat64(def.OxidationMax),
		OxidationDecay: m.Key("oxidation_decay").MustFloat64(def.OxidationDecay),

		DepositionCoefficient: m.Key("deposition_coefficient").MustFloat64(def.DepositionCoefficient),
		DepositionOvershoot:   m.Key("deposition_overshoot").MustFloat64(def.DepositionOvershoot),
		DepositionDecay:       m.Key("deposition_decay").MustFloat64(def.DepositionDecay),

		EtchCoefficient: m.Key("etch_coefficient").MustFloat64(def.EtchCoefficient),
		EtchDecay:       m.Key("etch_decay").MustFloat64(def.EtchDecay),

		Addr:     file.Section("server").Key("addr").MustString(def.Addr),
		LogLevel: file.Section("log").Key("level").MustString(def.LogLevel),
	}
}

func (c Config) Validate() error {
	positive := map[string]float64{
		"oxidation_a":            c.OxidationA,
		"oxidation_b":            c.OxidationB,
		"oxidation_max":          c.OxidationMax,
		"oxidation_decay":        c.OxidationDecay,
		"deposition_coefficient": c.DepositionCoefficient,
		"deposition_overshoot":   c.DepositionOvershoot,
		"deposition_decay":       c.DepositionDecay,
		"etch_coefficient":       c.EtchCoefficient,
		"etch_decay":             c.EtchDecay,
	}
	for name, v := range positive {
		if !(v > 0) {
			return fmt.Errorf("%s must be positive, got %v", name, v)
		}
	}
	return nil
}
