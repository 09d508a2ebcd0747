package calculator

import (
	"fmt"
	"math"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"fabsim/model"
)

// Calculator evaluates process curves.
type Calculator interface {
	// Evaluate samples the curve of an already clamped request.
	Evaluate(req model.SimulationRequest) (model.Curve, error)

	// Simulate normalizes req and evaluates it.
	Simulate(req model.SimulationRequest) (*model.Result, error)

	// SaturationBound is the value a realistic curve tends to, +Inf for the
	// theoretical variant.
	SaturationBound(req model.SimulationRequest) (float64, error)

	Config() Config

	// SetConfig swaps the model constants. An invalid cfg is refused and
	// the previous constants stay in place.
	SetConfig(cfg Config) error
}

type calculator struct {
	cfg atomic.Pointer[Config]
}

// NewCalculator falls back to DefaultConfig when cfg does not validate.
func NewCalculator(cfg Config) Calculator {
	c := &calculator{}
	if err := c.SetConfig(cfg); err != nil {
		log.WithField("err", err).Warn("invalid model config, using defaults")
		def := DefaultConfig()
		c.cfg.Store(&def)
	}
	return c
}

func (c *calculator) Config() Config {
	return *c.cfg.Load()
}

func (c *calculator) SetConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg.Store(&cfg)
	return nil
}

func (c *calculator) Evaluate(req model.SimulationRequest) (model.Curve, error) {
	cfg := c.Config()
	f, err := curveFor(cfg, req)
	if err != nil {
		return nil, err
	}
	grid := timeGrid(req.Duration, Samples)
	curve := make(model.Curve, len(grid))
	for i, t := range grid {
		curve[i] = model.Sample{Time: t, Value: f(t)}
	}
	return curve, nil
}

func (c *calculator) Simulate(req model.SimulationRequest) (*model.Result, error) {
	req, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	curve, err := c.Evaluate(req)
	if err != nil {
		return nil, err
	}
	res := &model.Result{
		Request:  req,
		Quantity: req.Process.Quantity(),
		Unit:     "nm",
		Final:    curve.Final(),
		Curve:    curve,
	}
	log.WithFields(log.Fields{
		"process":     req.Process,
		"variant":     req.Variant,
		"temperature": req.Temperature,
		"duration":    req.Duration,
		"final":       res.Final,
	}).Debug("simulated")
	return res, nil
}

func (c *calculator) SaturationBound(req model.SimulationRequest) (float64, error) {
	cfg := c.Config()
	if _, err := curveFor(cfg, req); err != nil {
		return 0, err
	}
	if req.Variant != model.Realistic {
		return math.Inf(1), nil
	}
	switch req.Process {
	case model.Oxidation:
		return cfg.OxidationMax, nil
	case model.Deposition:
		return depositionBound(cfg, req), nil
	default:
		return temperatureRate(cfg.EtchCoefficient, req.Temperature) / cfg.EtchDecay, nil
	}
}

func depositionBound(cfg Config, req model.SimulationRequest) float64 {
	rate := temperatureRate(cfg.DepositionCoefficient, req.Temperature)
	return cfg.DepositionOvershoot * rate * req.Duration
}

func curveFor(cfg Config, req model.SimulationRequest) (curveFunc, error) {
	switch req.Variant {
	case model.Theoretical, model.Realistic:
	default:
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownVariant, req.Variant)
	}
	realistic := req.Variant == model.Realistic

	switch req.Process {
	case model.Oxidation:
		// oxide growth uses fixed dry-O2 constants, temperature does not enter
		if realistic {
			return saturation(cfg.OxidationMax, cfg.OxidationDecay), nil
		}
		return dealGrove(cfg.OxidationA, cfg.OxidationB), nil
	case model.Deposition:
		if realistic {
			return saturation(depositionBound(cfg, req), cfg.DepositionDecay), nil
		}
		return linear(temperatureRate(cfg.DepositionCoefficient, req.Temperature)), nil
	case model.Etch:
		rate := temperatureRate(cfg.EtchCoefficient, req.Temperature)
		if realistic {
			return saturation(rate/cfg.EtchDecay, cfg.EtchDecay), nil
		}
		return linear(rate), nil
	}
	return nil, fmt.Errorf("%w: %q", model.ErrUnknownProcess, req.Process)
}
