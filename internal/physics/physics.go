// Package physics implements the closed-form ultrasound formulas used by
// the calculators. Units follow SPI convention: speeds in m/s,
// frequencies in MHz, distances in mm or cm as named, times in µs.
package physics

import (
	"errors"
	"fmt"
	"math"
)

// SoftTissueSpeed is the average propagation speed assumed by scanners.
const SoftTissueSpeed = 1540.0

// DefaultAttenuationCoefficient is the soft-tissue rule of thumb,
// in dB/cm/MHz.
const DefaultAttenuationCoefficient = 0.5

// RoundTripMicrosPerCm is the 13 µs/cm rule: time for a pulse to reach
// 1 cm of depth and return in soft tissue.
const RoundTripMicrosPerCm = 13.0

// ErrInvalidInput is wrapped by every argument error.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the offending parameter.
type InputError struct {
	Param string
	Value float64
	Rule  string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %g: %s", e.Param, e.Value, e.Rule)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func positive(name string, v float64) error {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return &InputError{Param: name, Value: v, Rule: "must be positive"}
	}
	return nil
}

func within(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return &InputError{Param: name, Value: v, Rule: fmt.Sprintf("must be between %g and %g", lo, hi)}
	}
	return nil
}

// Wavelength returns the wavelength in mm for speed (m/s) and
// frequency (MHz).
func Wavelength(speed, freqMHz float64) (float64, error) {
	if err := errors.Join(positive("speed", speed), positive("frequency", freqMHz)); err != nil {
		return 0, err
	}
	// m/s ÷ MHz = µm; ÷1000 for mm.
	return speed / freqMHz / 1000, nil
}

// Period returns the period in µs for a frequency in MHz.
func Period(freqMHz float64) (float64, error) {
	if err := positive("frequency", freqMHz); err != nil {
		return 0, err
	}
	return 1 / freqMHz, nil
}

// Attenuation returns the total attenuation in dB over distCm at freqMHz,
// using coefficient dB/cm/MHz. A zero coefficient means
// DefaultAttenuationCoefficient.
func Attenuation(freqMHz, distCm, coefficient float64) (float64, error) {
	if coefficient == 0 {
		coefficient = DefaultAttenuationCoefficient
	}
	if err := errors.Join(positive("frequency", freqMHz), positive("distance", distCm), positive("coefficient", coefficient)); err != nil {
		return 0, err
	}
	return coefficient * freqMHz * distCm, nil
}

// HalfValueLayer returns the depth in cm at which intensity halves
// (3 dB of attenuation).
func HalfValueLayer(freqMHz, coefficient float64) (float64, error) {
	if coefficient == 0 {
		coefficient = DefaultAttenuationCoefficient
	}
	if err := errors.Join(positive("frequency", freqMHz), positive("coefficient", coefficient)); err != nil {
		return 0, err
	}
	return 3 / (coefficient * freqMHz), nil
}

// SpatialPulseLength returns the pulse length in mm: cycles × wavelength.
func SpatialPulseLength(cycles, speed, freqMHz float64) (float64, error) {
	if err := positive("cycles", cycles); err != nil {
		return 0, err
	}
	wl, err := Wavelength(speed, freqMHz)
	if err != nil {
		return 0, err
	}
	return cycles * wl, nil
}

// AxialResolution returns the axial resolution in mm: half the spatial
// pulse length.
func AxialResolution(cycles, speed, freqMHz float64) (float64, error) {
	spl, err := SpatialPulseLength(cycles, speed, freqMHz)
	if err != nil {
		return 0, err
	}
	return spl / 2, nil
}

// NearZoneLength returns the focal depth in mm of an unfocused disc
// transducer with aperture diameterMM: D² f / (4c).
func NearZoneLength(diameterMM, speed, freqMHz float64) (float64, error) {
	if err := errors.Join(positive("diameter", diameterMM), positive("speed", speed), positive("frequency", freqMHz)); err != nil {
		return 0, err
	}
	c := speed / 1000 // mm/µs
	return diameterMM * diameterMM * freqMHz / (4 * c), nil
}

// PulseRepetitionPeriod returns the PRP in µs for an imaging depth in cm.
func PulseRepetitionPeriod(depthCm float64) (float64, error) {
	if err := positive("depth", depthCm); err != nil {
		return 0, err
	}
	return RoundTripMicrosPerCm * depthCm, nil
}

// PulseRepetitionFrequency returns the maximum PRF in Hz for an imaging
// depth in cm.
func PulseRepetitionFrequency(depthCm float64) (float64, error) {
	prp, err := PulseRepetitionPeriod(depthCm)
	if err != nil {
		return 0, err
	}
	return 1e6 / prp, nil
}

// DutyFactor returns the percentage of time the transducer transmits.
func DutyFactor(pulseDurationMicros, prpMicros float64) (float64, error) {
	if err := errors.Join(positive("pulse duration", pulseDurationMicros), positive("PRP", prpMicros)); err != nil {
		return 0, err
	}
	if pulseDurationMicros > prpMicros {
		return 0, &InputError{Param: "pulse duration", Value: pulseDurationMicros, Rule: "must not exceed the PRP"}
	}
	return 100 * pulseDurationMicros / prpMicros, nil
}

// DopplerShift returns the shift in Hz for a transmitted frequency in
// MHz, reflector velocity in m/s, insonation angle in degrees and
// propagation speed in m/s: 2 f₀ v cosθ / c.
func DopplerShift(freqMHz, velocity, angleDeg, speed float64) (float64, error) {
	if err := errors.Join(
		positive("frequency", freqMHz),
		positive("speed", speed),
		within("angle", angleDeg, 0, 90),
	); err != nil {
		return 0, err
	}
	if math.IsNaN(velocity) || math.IsInf(velocity, 0) {
		return 0, &InputError{Param: "velocity", Value: velocity, Rule: "must be finite"}
	}
	f0 := freqMHz * 1e6
	return 2 * f0 * velocity * math.Cos(angleDeg*math.Pi/180) / speed, nil
}

// Tissue is a medium with its typical propagation speed.
type Tissue struct {
	Name  string
	Speed float64 // m/s
}

// Tissues lists typical propagation speeds, slowest first.
var Tissues = []Tissue{
	{"air", 330},
	{"lung", 500},
	{"fat", 1450},
	{"water", 1480},
	{"soft tissue", SoftTissueSpeed},
	{"liver", 1560},
	{"blood", 1570},
	{"muscle", 1580},
	{"tendon", 1850},
	{"bone", 3500},
}

// TissueSpeed returns the speed for a tissue name.
func TissueSpeed(name string) (float64, bool) {
	for _, t := range Tissues {
		if t.Name == name {
			return t.Speed, true
		}
	}
	return 0, false
}
