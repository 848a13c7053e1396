// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package assembly builds the seven-point-stencil pressure system A·p=b
// for one sub-step. Grounded on
// original_source/src/lib/ressim/src/step.rs (calculate_fluxes, assembly
// half) with the sparse-assembly call shape (Triplet.Start/Put,
// ToMatrix) taken from the teacher's fem/domain.go global Jacobian
// pattern (d.Kb = new(la.Triplet); element.AddToKb(Kb, ...)).
package assembly

import (
	"github.com/cpmech/gosl/la"

	"github.com/cpmech/ressim/grid"
	"github.com/cpmech/ressim/internal/flux"
	"github.com/cpmech/ressim/pvt"
	"github.com/cpmech/ressim/rockfluid"
)

const epsilon = 2.220446049250313e-16

// WellTerm is a single well's contribution to the pressure system at its
// host cell, pre-resolved by the caller (the well-control state machine
// lives in package reservoir; this package only sums pre-resolved terms,
// so that coincident wells in the same cell are summed exactly as
// original_source's unconditional per-well loop does).
type WellTerm struct {
	CellID int
	Diag   float64 // added to the diagonal (PI for a BHP-controlled well)
	RHS    float64 // added to the RHS (PI*BHP for BHP; the signed rate, positive for injection, for rate control)
}

// Geometry bundles the grid dimensions needed for transmissibility and
// depth computations.
type Geometry struct {
	Nx, Ny, Nz      int
	Dx, Dy, Dz      float64
	DepthReferenceM float64
	GravityEnabled  bool
}

func (g Geometry) idx(i, j, k int) int {
	return i + j*g.Nx + k*g.Nx*g.Ny
}

func (g Geometry) depthAt(k int) float64 {
	return g.DepthReferenceM + (float64(k)+0.5)*g.Dz
}

// System is the assembled pressure equation, ready for the PCG solver.
type System struct {
	A       *la.CCMatrix
	RHS     []float64
	DiagInv []float64
}

// Build assembles A·p=b for the given committed cell state, rock
// compressibility, fluid PVT, rock-fluid closure, dt (days), and
// pre-resolved well terms.
func Build(cells []grid.Cell, g Geometry, rockCompressibility float64, fl pvt.Fluid, scal rockfluid.Corey, dtDays float64, wells []WellTerm) System {
	n := len(cells)
	tri := new(la.Triplet)
	tri.Init(n, n, n*7+len(wells))
	tri.Start()

	rhs := make([]float64, n)
	diag := make([]float64, n)

	dtSafe := dtDays
	if dtSafe <= 0 {
		dtSafe = 1e-12
	}

	for k := 0; k < g.Nz; k++ {
		for j := 0; j < g.Ny; j++ {
			for i := 0; i < g.Nx; i++ {
				id := g.idx(i, j, k)
				cell := cells[id]

				vp := cell.PoreVolume(g.Dx, g.Dy, g.Dz)
				ct := fl.Co*cell.SatOil + fl.Cw*cell.SatWater + rockCompressibility
				accum := (vp * ct) / dtSafe
				diag[id] += accum
				rhs[id] += accum * cell.Pressure

				type neighbor struct {
					id  int
					dim flux.Dim
					k   int
				}
				var neighbors []neighbor
				if i > 0 {
					neighbors = append(neighbors, neighbor{g.idx(i-1, j, k), flux.DimX, k})
				}
				if i < g.Nx-1 {
					neighbors = append(neighbors, neighbor{g.idx(i+1, j, k), flux.DimX, k})
				}
				if j > 0 {
					neighbors = append(neighbors, neighbor{g.idx(i, j-1, k), flux.DimY, k})
				}
				if j < g.Ny-1 {
					neighbors = append(neighbors, neighbor{g.idx(i, j+1, k), flux.DimY, k})
				}
				if k > 0 {
					neighbors = append(neighbors, neighbor{g.idx(i, j, k-1), flux.DimZ, k - 1})
				}
				if k < g.Nz-1 {
					neighbors = append(neighbors, neighbor{g.idx(i, j, k+1), flux.DimZ, k + 1})
				}

				for _, nb := range neighbors {
					depthI := g.depthAt(k)
					depthJ := g.depthAt(nb.k)
					rhoT := flux.TotalDensityFace(cell, cells[nb.id], scal, fl)
					gravHead := flux.GravityHeadBar(depthI, depthJ, rhoT, g.GravityEnabled)

					t := flux.TransmissibilityUpstream(cell, cells[nb.id], scal, fl, nb.dim, g.Dx, g.Dy, g.Dz, cell.Pressure, cells[nb.id].Pressure, gravHead)
					diag[id] += t
					tri.Put(id, nb.id, -t)

					rhs[id] += t * gravHead
				}
			}
		}
	}

	for _, w := range wells {
		diag[w.CellID] += w.Diag
		rhs[w.CellID] += w.RHS
	}

	diagInv := make([]float64, n)
	for id := 0; id < n; id++ {
		tri.Put(id, id, diag[id])
		if abs(diag[id]) > epsilon {
			diagInv[id] = 1.0 / diag[id]
		} else {
			diagInv[id] = 1.0
		}
	}

	return System{A: tri.ToMatrix(nil), RHS: rhs, DiagInv: diagInv}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
