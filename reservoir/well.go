// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ressim/grid"
)

// peacemanConst converts mD·m²/(m·cP) to m³/(day·bar) (1 mD, 1 cP, 1 bar,
// 1 day in SI); it equals flux.Const.
const peacemanConst = 8.527e-5

// gravityAccel is g in m/s².
const gravityAccel = 9.80665

// Well is a single injection or production well, completed in exactly one
// grid cell. Wells reference cells by index only, never by pointer.
type Well struct {
	I, J, K   int     // cell indices
	Bhp       float64 // bottom-hole pressure [bar]
	WellRadius float64 // wellbore radius r_w [m]
	Skin      float64 // skin factor (finite)
	Injector  bool     // true: injector, false: producer

	ProductivityIndex float64 // dynamic PI [m³/(day·bar)], recomputed every sub-step
}

// validate checks the independent field-level invariants from
// original_source/.../well.rs: bounds, BHP range/finiteness, radius,
// skin, and PI non-negativity/finiteness. Each violated field produces
// its own descriptive error, per SPEC_FULL §4's supplement.
func (w Well) validate(nx, ny, nz int) error {
	if w.I < 0 || w.I >= nx {
		return chk.Err("well index i=%d out of bounds (nx=%d)", w.I, nx)
	}
	if w.J < 0 || w.J >= ny {
		return chk.Err("well index j=%d out of bounds (ny=%d)", w.J, ny)
	}
	if w.K < 0 || w.K >= nz {
		return chk.Err("well index k=%d out of bounds (nz=%d)", w.K, nz)
	}
	if !finite(w.Bhp) {
		return chk.Err("well BHP must be finite, got %g", w.Bhp)
	}
	if w.Bhp < -100 || w.Bhp > 2000 {
		return chk.Err("well BHP out of reasonable range [-100, 2000] bar, got %g", w.Bhp)
	}
	if !finite(w.WellRadius) || w.WellRadius <= 0 {
		return chk.Err("well radius must be positive and finite, got %g", w.WellRadius)
	}
	if !finite(w.Skin) {
		return chk.Err("well skin factor must be finite, got %g", w.Skin)
	}
	if !finite(w.ProductivityIndex) || w.ProductivityIndex < 0 {
		return chk.Err("well productivity index must be non-negative and finite, got %g", w.ProductivityIndex)
	}
	return nil
}

// productivityIndex computes the Peaceman productivity index for this
// well from the current host cell's permeabilities and total mobility,
// returning a descriptive error on geometric rejection.
func productivityIndex(cell grid.Cell, dx, dy, dz, wellRadius, skin, totalMobility float64) (float64, error) {
	kx, ky := cell.PermX, cell.PermY
	if !finite(kx) || !finite(ky) || kx <= 0 || ky <= 0 {
		return 0, chk.Err("cell permeability must be positive and finite for well PI calculation, got kx=%g, ky=%g", kx, ky)
	}

	rEq := 0.28 * math.Sqrt(math.Sqrt(kx/ky)*dx*dx+math.Sqrt(ky/kx)*dy*dy) /
		(math.Pow(kx/ky, 0.25) + math.Pow(ky/kx, 0.25))
	if !finite(rEq) || rEq <= 0 {
		return 0, chk.Err("equivalent radius must be positive and finite, got %g", rEq)
	}
	if rEq <= wellRadius {
		return 0, chk.Err("equivalent radius must be greater than well radius for valid PI: r_eq=%g, r_w=%g", rEq, wellRadius)
	}

	kAvg := math.Sqrt(kx * ky)
	if !finite(kAvg) || kAvg <= 0 {
		return 0, chk.Err("average permeability must be positive and finite, got %g", kAvg)
	}
	if !finite(totalMobility) || totalMobility < 0 {
		return 0, chk.Err("total mobility must be finite and non-negative, got %g", totalMobility)
	}

	denom := math.Log(rEq/wellRadius) + skin
	if !finite(denom) || nearZero(denom) {
		return 0, chk.Err("invalid PI denominator ln(r_eq/r_w)+skin = %g; check well radius and skin", denom)
	}

	return (peacemanConst * 2.0 * math.Pi * kAvg * dz * totalMobility) / denom, nil
}

func nearZero(x float64) bool {
	const eps = 2.220446049250313e-16
	return math.Abs(x) <= eps
}

// wellControlDecision is the resolved control mode for one well at one
// evaluated cell pressure, within a single sub-step.
type wellControlDecision struct {
	kind wellControlKind
	// for kind==controlRate
	rateM3Day float64
	// for kind==controlBHP
	bhpBar float64
}

type wellControlKind int

const (
	controlDisabled wellControlKind = iota
	controlRate
	controlBHP
)

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// WellControlParams is the field-wide control-mode configuration shared
// by all wells of one kind (injector or producer) for a sub-step.
type WellControlParams struct {
	RateControlled  bool    // true: honor TargetRateM3Day; false: honor Well.Bhp
	TargetRateM3Day float64 // reservoir-volume rate magnitude, always >= 0
	BhpMin, BhpMax  float64 // allowable BHP envelope [bar] for rate-controlled wells
}

// resolveWellControl decides, for one well at the cell pressure it sees
// going into a sub-step, whether it operates under rate or BHP control.
// A rate-controlled well switches to BHP control for this sub-step if its
// implied BHP would breach [BhpMin, BhpMax]: an injector is capped at
// BhpMax (fracture-pressure guard), a producer floored at BhpMin
// (minimum-lift guard). Mirrors the voidage-constraint switching in
// original_source/.../well.rs.
func resolveWellControl(w Well, cellPressureBar, pi float64, params WellControlParams) wellControlDecision {
	if !params.RateControlled {
		return wellControlDecision{kind: controlBHP, bhpBar: w.Bhp}
	}
	if pi <= 0 || !finite(pi) {
		return wellControlDecision{kind: controlBHP, bhpBar: w.Bhp}
	}

	qTarget := params.TargetRateM3Day
	if !w.Injector {
		qTarget = -qTarget
	}
	impliedBhp := cellPressureBar + qTarget/pi

	if w.Injector && impliedBhp > params.BhpMax {
		return wellControlDecision{kind: controlBHP, bhpBar: params.BhpMax}
	}
	if !w.Injector && impliedBhp < params.BhpMin {
		return wellControlDecision{kind: controlBHP, bhpBar: params.BhpMin}
	}
	return wellControlDecision{kind: controlRate, rateM3Day: qTarget}
}

// wellTermDiagRHS converts a resolved decision and PI into the (diag, rhs)
// contribution this well adds at its host cell in the pressure system:
// a BHP-controlled well adds PI to the diagonal and PI*bhp to the RHS; a
// rate-controlled well adds only its target rate to the RHS.
func wellTermDiagRHS(decision wellControlDecision, pi float64) (diag, rhs float64) {
	switch decision.kind {
	case controlBHP:
		return pi, pi * decision.bhpBar
	case controlRate:
		return 0, decision.rateM3Day
	default:
		return 0, 0
	}
}
