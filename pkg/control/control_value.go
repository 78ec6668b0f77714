// Package control provides the scalar and telemetry primitives the
// controller (pkg/controller) adapts: a clipped, noisy ControlValue for
// rate/concurrency, and the SessionProfile/SessionHistory telemetry window
// those adjustments are computed from.
package control

import "math/rand/v2"

// Value is a bounded scalar with additive-up/multiplicative-down adjustment
// operators and optional Gaussian noise, used for both the request rate and
// the concurrency width in pkg/controller. It is the only place noise enters
// the controller: callers decide when to call AddNoise, Increase, or
// Decrease, and Value clips every result to [Min, Max].
type Value struct {
	current        float64
	initial        float64
	min            float64
	max            float64
	additive       float64
	multiplicative float64
	temperature    float64
}

// Options configures a new Value. Zero-valued Multiplicative defaults to 1
// (no decay) so callers that only need additive increase don't have to
// remember to set it.
type Options struct {
	Initial        float64
	Min            float64
	Max            float64
	Additive       float64
	Multiplicative float64
	Temperature    float64
}

// New constructs a Value from Options, defaulting Multiplicative to 1 when
// left at its zero value.
func New(opts Options) *Value {
	mult := opts.Multiplicative
	if mult == 0 {
		mult = 1
	}
	return &Value{
		current:        opts.Initial,
		initial:        opts.Initial,
		min:            opts.Min,
		max:            opts.Max,
		additive:       opts.Additive,
		multiplicative: mult,
		temperature:    opts.Temperature,
	}
}

// Current returns the current value.
func (v *Value) Current() float64 { return v.current }

// Set overrides the current value without clipping — used when a later
// controller stage inherits the exact final value of a prior stage.
func (v *Value) Set(value float64) { v.current = value }

// SetClipped overrides the current value, clipping it to [min, max]. Used by
// the Exploit stage's closed-form update, whose k/m sensitivities are
// unbounded in the source formula.
func (v *Value) SetClipped(value float64) float64 {
	v.current = v.clip(value)
	return v.current
}

func (v *Value) clip(value float64) float64 {
	if value < v.min {
		return v.min
	}
	if value > v.max {
		return v.max
	}
	return value
}

func (v *Value) noise() float64 {
	if v.temperature == 0 {
		return 0
	}
	return rand.NormFloat64() * v.temperature
}

// Increase applies the additive step plus noise, clipped to [min, max].
func (v *Value) Increase() float64 {
	v.current = v.clip(v.current + v.additive + v.noise())
	return v.current
}

// Decrease applies the multiplicative decay plus noise, clipped to [min, max].
func (v *Value) Decrease() float64 {
	v.current = v.clip(v.current*v.multiplicative + v.noise())
	return v.current
}

// AddNoise perturbs the current value with noise alone, clipped to [min, max].
func (v *Value) AddNoise() float64 {
	v.current = v.clip(v.current + v.noise())
	return v.current
}

// Reset restores the value to its initial setting.
func (v *Value) Reset() float64 {
	v.current = v.initial
	return v.current
}
