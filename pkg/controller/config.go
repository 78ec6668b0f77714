package controller

import "time"

// Range bounds a rate or concurrency control value.
type Range struct {
	Base float64
	Min  float64
	Max  float64
}

// StageConfig configures one Adapter stage. The same shape is reused across
// all four stages; a given deployment may supply distinct values per stage
// or share one config across the cycle.
type StageConfig struct {
	Rate        Range
	Concurrency Range
	Temperature float64

	ResponseTime     time.Duration
	StepResponseTime time.Duration
	StepIncrease     float64
	StepDecrease     float64
	Threshold        float64
	WindowSize       time.Duration

	// K, M are Exploit-only sensitivities for the latency-ratio and
	// cv-ratio terms of the closed-form rate update.
	K float64
	M float64
}
