package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Process is one of the simulated fabrication steps.
type Process string

const (
	Oxidation  Process = "oxidation"
	Etch       Process = "etch"
	Deposition Process = "deposition"
)

// Variant selects which formula family is evaluated for a process.
type Variant string

const (
	Theoretical Variant = "theoretical"
	Realistic   Variant = "realistic"
)

// Slider bounds and defaults of the input collector.
const (
	MinTemperature     = 200.0
	MaxTemperature     = 1000.0
	TemperatureStep    = 50.0
	DefaultTemperature = 600.0

	MinDuration     = 1.0
	MaxDuration     = 120.0
	DefaultDuration = 30.0

	DefaultProcess = Oxidation
	DefaultVariant = Theoretical
)

var (
	ErrUnknownProcess = errors.New("unknown process")
	ErrUnknownVariant = errors.New("unknown variant")
)

// Processes lists the selectable processes in menu order.
var Processes = []Process{Oxidation, Etch, Deposition}

// Variants lists the selectable model variants in menu order.
var Variants = []Variant{Theoretical, Realistic}

func ParseProcess(s string) (Process, error) {
	p := Process(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case Oxidation, Etch, Deposition:
		return p, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownProcess, s)
}

// ParseVariant accepts an empty string as the theoretical variant.
func ParseVariant(s string) (Variant, error) {
	v := Variant(strings.ToLower(strings.TrimSpace(s)))
	switch v {
	case "":
		return Theoretical, nil
	case Theoretical, Realistic:
		return v, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Quantity names what the process curve measures.
func (p Process) Quantity() string {
	switch p {
	case Oxidation:
		return "oxide thickness"
	case Etch:
		return "etch depth"
	case Deposition:
		return "deposited thickness"
	}
	return "thickness"
}

// SimulationRequest is what the input collector hands to the evaluator.
type SimulationRequest struct {
	Process     Process `json:"process" yaml:"process" mapstructure:"process"`
	Variant     Variant `json:"variant" yaml:"variant" mapstructure:"variant"`
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"` // °C
	Duration    float64 `json:"duration" yaml:"duration" mapstructure:"duration"`          // min
}

func DefaultRequest() SimulationRequest {
	return SimulationRequest{
		Process:     DefaultProcess,
		Variant:     DefaultVariant,
		Temperature: DefaultTemperature,
		Duration:    DefaultDuration,
	}
}

// Normalize parses the process and variant names and clamps the numbers.
func (r SimulationRequest) Normalize() (SimulationRequest, error) {
	p, err := ParseProcess(string(r.Process))
	if err != nil {
		return r, err
	}
	v, err := ParseVariant(string(r.Variant))
	if err != nil {
		return r, err
	}
	r.Process = p
	r.Variant = v
	return r.Clamp(), nil
}

// Clamp pins temperature and duration to the slider bounds. NaN falls back
// to the slider default.
func (r SimulationRequest) Clamp() SimulationRequest {
	r.Temperature = clamp(r.Temperature, MinTemperature, MaxTemperature, DefaultTemperature)
	r.Duration = clamp(r.Duration, MinDuration, MaxDuration, DefaultDuration)
	return r
}

func clamp(v, lo, hi, def float64) float64 {
	switch {
	case math.IsNaN(v):
		return def
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// Sample is one point of a curve: minutes on the x axis, nanometres on y.
type Sample struct {
	Time  float64 `json:"time" yaml:"time"`
	Value float64 `json:"value" yaml:"value"`
}

// Curve is ordered by time.
type Curve []Sample

// Final returns the value at the end of the process, 0 for an empty curve.
func (c Curve) Final() float64 {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1].Value
}

// Result is one evaluated request, ready for presentation.
type Result struct {
	Request  SimulationRequest `json:"request" yaml:"request"`
	Quantity string            `json:"quantity" yaml:"quantity"`
	Unit     string            `json:"unit" yaml:"unit"`
	Final    float64           `json:"final" yaml:"final"`
	Curve    Curve             `json:"curve" yaml:"curve"`
}

// Msg is the envelope exchanged with the live page over websocket.
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}
