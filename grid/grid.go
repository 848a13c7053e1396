// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

// Cell holds the per-cell rock and fluid state of one grid block.
// Invariant: SatWater+SatOil == 1 after every committed step.
type Cell struct {
	Porosity float64 // ϕ, dimensionless (0,1]
	PermX    float64 // k_x [mD]
	PermY    float64 // k_y [mD]
	PermZ    float64 // k_z [mD]
	Pressure float64 // p [bar]
	SatWater float64 // S_w, dimensionless [S_wc, 1-S_or]
	SatOil   float64 // S_o = 1 - S_w
}

// DefaultCell returns the default per-cell record used to initialise every
// slot of a newly constructed grid.
func DefaultCell() Cell {
	return Cell{
		Porosity: 0.2,
		PermX:    100.0,
		PermY:    100.0,
		PermZ:    10.0,
		Pressure: 300.0,
		SatWater: 0.3,
		SatOil:   0.7,
	}
}

// PoreVolume returns the pore volume [m³] of the cell given the grid's
// cell dimensions dx, dy, dz [m].
func (c Cell) PoreVolume(dx, dy, dz float64) float64 {
	return dx * dy * dz * c.Porosity
}
