// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"math"

	"github.com/cpmech/ressim/grid"
	"github.com/cpmech/ressim/internal/flux"
	"github.com/cpmech/ressim/pvt"
	"github.com/cpmech/ressim/rockfluid"
)

// faceWaterRate returns the net water volumetric rate [m³/day] that one
// face of one cell contributes, viscous (upstream mobility) plus
// capillary (mobility-weighted diffusion).
func faceWaterRate(ci, cj grid.Cell, scal rockfluid.Corey, cap rockfluid.Capillary, fl pvt.Fluid, dim flux.Dim, dx, dy, dz, pI, pJ, gravHeadBar float64) float64 {
	tGeom := flux.GeometricTransmissibility(ci, cj, dim, dx, dy, dz)
	if tGeom == 0 {
		return 0
	}

	potentialDiff := (pI - pJ) - gravHeadBar
	var upstream grid.Cell
	if potentialDiff >= 0 {
		upstream = ci
	} else {
		upstream = cj
	}
	lamWUp, _ := flux.PhaseMobilities(upstream, scal, fl)

	viscous := flux.Const * tGeom * lamWUp * potentialDiff

	lamWi, lamOi := flux.PhaseMobilities(ci, scal, fl)
	lamWj, lamOj := flux.PhaseMobilities(cj, scal, fl)
	lamWavg := 0.5 * (lamWi + lamWj)
	lamOavg := 0.5 * (lamOi + lamOj)
	lamTavg := lamWavg + lamOavg

	pcI := cap.Pc(ci.SatWater, scal)
	pcJ := cap.Pc(cj.SatWater, scal)
	capillary := flux.CapillaryFlux(tGeom, lamWavg, lamOavg, lamTavg, pcI, pcJ)

	return viscous + capillary
}

// netWaterRates returns, per cell, the net water volumetric rate
// [m³/day] flowing INTO the cell from its six neighbor faces (viscous
// plus capillary), evaluated at the post-solve pressure field.
func netWaterRates(cells []grid.Cell, g geometry3D, scal rockfluid.Corey, cap rockfluid.Capillary, fl pvt.Fluid, gravityEnabled bool) []float64 {
	n := len(cells)
	net := make([]float64, n)

	type face struct {
		a, b int
		dim  flux.Dim
		ka   int
		kb   int
	}
	var faces []face
	for k := 0; k < g.nz; k++ {
		for j := 0; j < g.ny; j++ {
			for i := 0; i < g.nx; i++ {
				id := g.idx(i, j, k)
				if i < g.nx-1 {
					faces = append(faces, face{id, g.idx(i+1, j, k), flux.DimX, k, k})
				}
				if j < g.ny-1 {
					faces = append(faces, face{id, g.idx(i, j+1, k), flux.DimY, k, k})
				}
				if k < g.nz-1 {
					faces = append(faces, face{id, g.idx(i, j, k+1), flux.DimZ, k, k + 1})
				}
			}
		}
	}

	for _, f := range faces {
		ci, cj := cells[f.a], cells[f.b]
		depthI := g.depthAt(f.ka)
		depthJ := g.depthAt(f.kb)
		rhoT := flux.TotalDensityFace(ci, cj, scal, fl)
		gravHead := flux.GravityHeadBar(depthI, depthJ, rhoT, gravityEnabled)

		q := faceWaterRate(ci, cj, scal, cap, fl, f.dim, g.dx, g.dy, g.dz, ci.Pressure, cj.Pressure, gravHead)
		// q > 0 means flow from a to b (downstream b gains, a loses)
		net[f.a] -= q
		net[f.b] += q
	}

	return net
}

// geometry3D is the minimal grid shape needed for face enumeration and
// depth lookup, shared by assembly.Geometry's fields.
type geometry3D struct {
	nx, ny, nz int
	dx, dy, dz float64
	depthRef   float64
}

func (g geometry3D) idx(i, j, k int) int {
	return i + j*g.nx + k*g.nx*g.ny
}

func (g geometry3D) depthAt(k int) float64 {
	return g.depthRef + (float64(k)+0.5)*g.dz
}

// updateSaturations advances each cell's water saturation explicitly by
// dtDays using the net water rate (inter-cell faces plus well source,
// already converted to a per-cell reservoir-volume water rate), clamps
// to [Swc, 1-Sor], and enforces Sw+So=1. Returns the material-balance
// residual |(waterInjRes-waterProdRes)*dtDays - ΣδV_w| [m³]: the gap
// between the volume wells say they moved and the volume that actually
// ended up in the cells, grounded on
// original_source/.../step.rs's net_added_m3/actual_change_m3/mb_error.
func updateSaturations(cells []grid.Cell, g geometry3D, scal rockfluid.Corey, dtDays float64, netWaterRateM3Day []float64, waterInjRes, waterProdRes float64) (residual float64) {
	var actualChangeM3 float64

	for id := range cells {
		vp := cells[id].PoreVolume(g.dx, g.dy, g.dz)
		if vp <= 0 {
			continue
		}
		dVol := dtDays * netWaterRateM3Day[id]
		actualChangeM3 += dVol
		swNew := cells[id].SatWater + dVol/vp

		lo, hi := scal.Swc, 1-scal.Sor
		if swNew < lo {
			swNew = lo
		} else if swNew > hi {
			swNew = hi
		}

		cells[id].SatWater = swNew
		cells[id].SatOil = 1 - swNew
	}

	netAddedM3 := (waterInjRes - waterProdRes) * dtDays
	return math.Abs(netAddedM3 - actualChangeM3)
}
