// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pvt implements the oil/water fluid property set (viscosities,
// compressibilities, densities, formation-volume factors) used by the
// pressure and saturation equations.
package pvt

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Fluid holds the two-phase (oil-water) PVT properties. Units: cP
// (viscosity), 1/bar (compressibility), kg/m³ (density), dimensionless
// formation-volume factors.
type Fluid struct {
	MuO  float64 // oil viscosity [cP]
	MuW  float64 // water viscosity [cP]
	Co   float64 // oil compressibility [1/bar]
	Cw   float64 // water compressibility [1/bar]
	RhoO float64 // oil density [kg/m³]
	RhoW float64 // water density [kg/m³]
	Bo   float64 // oil formation-volume factor
	Bw   float64 // water formation-volume factor
}

// DefaultFluid returns typical default oil-field PVT properties.
func DefaultFluid() Fluid {
	return Fluid{
		MuO: 2.0, MuW: 0.5,
		Co: 1.0e-5, Cw: 4.5e-5,
		RhoO: 800.0, RhoW: 1000.0,
		Bo: 1.2, Bw: 1.0,
	}
}

// SetViscosities validates and sets muO, muW (both must be positive,
// finite).
func (o *Fluid) SetViscosities(muO, muW float64) error {
	if !finite(muO) || muO <= 0 {
		return chk.Err("pvt: oil viscosity must be positive and finite, got %g", muO)
	}
	if !finite(muW) || muW <= 0 {
		return chk.Err("pvt: water viscosity must be positive and finite, got %g", muW)
	}
	o.MuO, o.MuW = muO, muW
	return nil
}

// SetCompressibilities validates and sets cO, cW (both must be
// non-negative, finite).
func (o *Fluid) SetCompressibilities(cO, cW float64) error {
	if !finite(cO) || cO < 0 {
		return chk.Err("pvt: oil compressibility must be non-negative and finite, got %g", cO)
	}
	if !finite(cW) || cW < 0 {
		return chk.Err("pvt: water compressibility must be non-negative and finite, got %g", cW)
	}
	o.Co, o.Cw = cO, cW
	return nil
}

// SetDensities validates and sets rhoO, rhoW (both must be positive,
// finite).
func (o *Fluid) SetDensities(rhoO, rhoW float64) error {
	if !finite(rhoO) || rhoO <= 0 {
		return chk.Err("pvt: oil density must be positive and finite, got %g", rhoO)
	}
	if !finite(rhoW) || rhoW <= 0 {
		return chk.Err("pvt: water density must be positive and finite, got %g", rhoW)
	}
	o.RhoO, o.RhoW = rhoO, rhoW
	return nil
}

// SetFormationVolumeFactors validates and sets Bo, Bw (both must be
// positive, finite).
func (o *Fluid) SetFormationVolumeFactors(bo, bw float64) error {
	if !finite(bo) || bo <= 0 {
		return chk.Err("pvt: Bo must be positive and finite, got %g", bo)
	}
	if !finite(bw) || bw <= 0 {
		return chk.Err("pvt: Bw must be positive and finite, got %g", bw)
	}
	o.Bo, o.Bw = bo, bw
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
