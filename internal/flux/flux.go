// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package flux implements the face-level physics of the two-phase flow
// problem: mobility, fractional flow, geometric and upstream-weighted
// transmissibility, gravity head, and capillary diffusion. Grounded on
// original_source/src/lib/ressim/src/step.rs.
package flux

import (
	"github.com/cpmech/ressim/grid"
	"github.com/cpmech/ressim/pvt"
	"github.com/cpmech/ressim/rockfluid"
)

// Const is the unit-conversion constant from mD·m²/(m·cP) to m³/(day·bar).
const Const = 8.527e-5

// Gravity is g in m/s².
const Gravity = 9.80665

const epsilon = 2.220446049250313e-16

// PhaseMobilities returns (λ_w, λ_o) [1/cP] for a cell.
func PhaseMobilities(c grid.Cell, scal rockfluid.Corey, fl pvt.Fluid) (lamW, lamO float64) {
	lamW = scal.Krw(c.SatWater) / fl.MuW
	lamO = scal.Kro(c.SatWater) / fl.MuO
	return
}

// TotalMobility returns λ_t = λ_w + λ_o [1/cP] for a cell.
func TotalMobility(c grid.Cell, scal rockfluid.Corey, fl pvt.Fluid) float64 {
	lamW, lamO := PhaseMobilities(c, scal, fl)
	return lamW + lamO
}

// FracFlowWater returns f_w = λ_w/λ_t, clamped to [0,1]. Returns 0 if
// λ_t<=0.
func FracFlowWater(c grid.Cell, scal rockfluid.Corey, fl pvt.Fluid) float64 {
	lamW, lamO := PhaseMobilities(c, scal, fl)
	lamT := lamW + lamO
	if lamT <= 0 {
		return 0
	}
	f := lamW / lamT
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// TotalDensityFace returns the mobility-weighted average of water and oil
// densities across a face between two cells, used for the gravity term.
func TotalDensityFace(ci, cj grid.Cell, scal rockfluid.Corey, fl pvt.Fluid) float64 {
	lamWi, lamOi := PhaseMobilities(ci, scal, fl)
	lamWj, lamOj := PhaseMobilities(cj, scal, fl)
	lamWavg := 0.5 * (lamWi + lamWj)
	lamOavg := 0.5 * (lamOi + lamOj)
	lamTavg := lamWavg + lamOavg
	if lamTavg <= epsilon {
		return 0.5 * (fl.RhoW + fl.RhoO)
	}
	return (lamWavg*fl.RhoW + lamOavg*fl.RhoO) / lamTavg
}

// GravityHeadBar returns the gravity head term [bar] between two depths
// (positive if depthI > depthJ, i.e. cell i is deeper), using the given
// face density. Returns 0 if gravity is disabled.
func GravityHeadBar(depthI, depthJ, densityFace float64, gravityEnabled bool) float64 {
	if !gravityEnabled {
		return 0
	}
	return densityFace * Gravity * (depthI - depthJ) * 1e-5
}

// Dim identifies the grid axis a face lies on.
type Dim byte

const (
	DimX Dim = 'x'
	DimY Dim = 'y'
	DimZ Dim = 'z'
)

// GeometricTransmissibility returns T_geom [mD·m²/m], the harmonic
// permeability/area/distance factor that depends only on rock properties
// and grid geometry (no mobility).
func GeometricTransmissibility(c1, c2 grid.Cell, dim Dim, dx, dy, dz float64) float64 {
	var perm1, perm2, dist, area float64
	switch dim {
	case DimX:
		perm1, perm2, dist, area = c1.PermX, c2.PermX, dx, dy*dz
	case DimY:
		perm1, perm2, dist, area = c1.PermY, c2.PermY, dy, dx*dz
	case DimZ:
		perm1, perm2, dist, area = c1.PermZ, c2.PermZ, dz, dx*dy
	default:
		return 0
	}
	if perm1+perm2 == 0 {
		return 0
	}
	kH := 2.0 * perm1 * perm2 / (perm1 + perm2)
	if kH == 0 {
		return 0
	}
	return kH * area / dist
}

// TransmissibilityUpstream returns the full transmissibility [m³/day/bar]
// with the total mobility taken from the upstream cell, as determined by
// the sign of the full potential difference (p_i - p_j) - gravHeadBar.
func TransmissibilityUpstream(c1, c2 grid.Cell, scal rockfluid.Corey, fl pvt.Fluid, dim Dim, dx, dy, dz, pI, pJ, gravHeadBar float64) float64 {
	tGeom := GeometricTransmissibility(c1, c2, dim, dx, dy, dz)
	if tGeom == 0 {
		return 0
	}
	potentialDiff := (pI - pJ) - gravHeadBar
	var mobUpstream float64
	if potentialDiff >= 0 {
		mobUpstream = TotalMobility(c1, scal, fl)
	} else {
		mobUpstream = TotalMobility(c2, scal, fl)
	}
	return Const * tGeom * mobUpstream
}

// CapillaryFlux returns q_cap [m³/day], the mobility-weighted capillary
// diffusion term across a face. Returns 0 if λ̄_t is indistinguishable
// from zero.
func CapillaryFlux(geomT, lamWavg, lamOavg, lamTavg, pcI, pcJ float64) float64 {
	if lamTavg <= epsilon {
		return 0
	}
	return -Const * geomT * (lamWavg * lamOavg / lamTavg) * (pcI - pcJ)
}
