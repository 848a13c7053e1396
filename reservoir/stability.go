// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import "github.com/cpmech/gosl/chk"

// cflSlack is the safety margin applied to a just-failing step's
// admissibility factor before retrying, so the retried dt lands just
// inside the limit rather than exactly on it.
const cflSlack = 0.9

// maxAttempts bounds the cutback loop for one target dt.
const maxAttempts = 10

// minDtDays is the smallest dt a cutback returns, unless the remaining dt
// is itself not larger than this floor.
const minDtDays = 1e-6

// StabilityLimits bounds the admissible per-substep change used by the
// adaptive controller, grounded on original_source/.../step.rs's
// multi-criterion CFL check (saturation, pressure, rate).
type StabilityLimits struct {
	MaxSaturationChangePerStep float64 // e.g. 0.2
	MaxPressureChangeBar       float64 // e.g. 50
	MaxRateChangeFraction      float64 // e.g. 0.5
}

// DefaultStabilityLimits returns the conservative defaults used when the
// caller does not override them.
func DefaultStabilityLimits() StabilityLimits {
	return StabilityLimits{
		MaxSaturationChangePerStep: 0.2,
		MaxPressureChangeBar:       50.0,
		MaxRateChangeFraction:      0.5,
	}
}

func (l StabilityLimits) validate() error {
	if !finite(l.MaxSaturationChangePerStep) || l.MaxSaturationChangePerStep <= 0 {
		return chk.Err("max saturation change per step must be positive and finite, got %g", l.MaxSaturationChangePerStep)
	}
	if !finite(l.MaxPressureChangeBar) || l.MaxPressureChangeBar <= 0 {
		return chk.Err("max pressure change per step must be positive and finite, got %g", l.MaxPressureChangeBar)
	}
	if !finite(l.MaxRateChangeFraction) || l.MaxRateChangeFraction <= 0 {
		return chk.Err("max rate change fraction must be positive and finite, got %g", l.MaxRateChangeFraction)
	}
	return nil
}

// StepOutcome is what one candidate sub-step produced, used by the
// controller to judge admissibility. Simulator.trySubStep keeps the
// resulting cell state separate; Simulator.commitSubStep applies it only
// once the sub-step is accepted.
type StepOutcome struct {
	SatChangeMax            float64
	PressureChangeMax       float64
	RateChangeFracMax       float64
	SolverConverged         bool
	SolverIterations        int
	MaterialBalanceResidual float64
}

const epsAdmissibility = 1e-12

func admissibilityFactor(o StepOutcome, limits StabilityLimits) float64 {
	fs := ratio(limits.MaxSaturationChangePerStep, o.SatChangeMax)
	fp := ratio(limits.MaxPressureChangeBar, o.PressureChangeMax)
	fr := ratio(limits.MaxRateChangeFraction, o.RateChangeFracMax)
	factor := fs
	if fp < factor {
		factor = fp
	}
	if fr < factor {
		factor = fr
	}
	return factor
}

func ratio(limit, actual float64) float64 {
	if actual <= epsAdmissibility {
		return 1e12
	}
	return limit / actual
}

// cutBackDt shrinks remainingDt by the worst admissibility factor (times
// cflSlack) for one rejected sub-step attempt, floored at minDtDays; if
// that result is not strictly smaller than remainingDt, half of
// remainingDt is returned instead. The outer loop that
// drives target_dt_days to exhaustion across possibly many committed
// sub-steps lives in Simulator.Step, mirroring
// original_source/.../step.rs's step_internal while loop (time_stepped <
// target_dt_days && attempts < MAX_ATTEMPTS).
func cutBackDt(remainingDt, factor float64) float64 {
	dt := remainingDt * factor * cflSlack
	if dt < minDtDays {
		dt = minDtDays
	}
	if dt >= remainingDt {
		dt = remainingDt * 0.5
	}
	return dt
}
