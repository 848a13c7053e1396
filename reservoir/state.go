// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ressim/grid"
	"github.com/cpmech/ressim/pvt"
	"github.com/cpmech/ressim/rockfluid"
)

// State is the full serialisable state of a Simulator at one point in
// time. The package snapshot handles its JSON encoding; State itself
// carries the json tags so that package stays a thin file-IO wrapper.
type State struct {
	Nx              int     `json:"nx"`
	Ny              int     `json:"ny"`
	Nz              int     `json:"nz"`
	Dx              float64 `json:"dx"`
	Dy              float64 `json:"dy"`
	Dz              float64 `json:"dz"`
	DepthReferenceM float64 `json:"depth_reference_m"`
	GravityEnabled  bool    `json:"gravity_enabled"`

	RockCompressibility float64 `json:"rock_compressibility"`

	Corey     rockfluid.Corey     `json:"corey"`
	Capillary rockfluid.Capillary `json:"capillary"`
	Fluid     pvt.Fluid           `json:"fluid"`

	Cells []grid.Cell `json:"cells"`
	Wells []Well      `json:"wells"`

	TimeDays    float64      `json:"time_days"`
	RateHistory []RateRecord `json:"rate_history"`
}

// ExportState returns a defensive snapshot of the simulator's full
// physical state and rate history, suitable for JSON persistence. Solver
// tuning parameters, stability limits and well-control settings are not
// part of State.
func (s *Simulator) ExportState() State {
	cells := make([]grid.Cell, len(s.cells))
	copy(cells, s.cells)
	wells := make([]Well, len(s.wells))
	copy(wells, s.wells)
	return State{
		Nx: s.nx, Ny: s.ny, Nz: s.nz,
		Dx: s.dx, Dy: s.dy, Dz: s.dz,
		DepthReferenceM:     s.depthReferenceM,
		GravityEnabled:      s.gravityEnabled,
		RockCompressibility: s.rockCompressibility,
		Corey:               s.scal,
		Capillary:           s.cap,
		Fluid:               s.fl,
		Cells:               cells,
		Wells:               wells,
		TimeDays:            s.timeDays,
		RateHistory:         s.hist.snapshot(),
	}
}

// ImportState reconstructs a Simulator from a previously exported State.
// Wells are re-validated against the restored grid shape.
func ImportState(st State) (*Simulator, error) {
	if st.Nx <= 0 || st.Ny <= 0 || st.Nz <= 0 {
		return nil, chk.Err("snapshot state has invalid grid dimensions nx=%d ny=%d nz=%d", st.Nx, st.Ny, st.Nz)
	}
	if len(st.Cells) != st.Nx*st.Ny*st.Nz {
		return nil, chk.Err("snapshot state has %d cells, expected %d", len(st.Cells), st.Nx*st.Ny*st.Nz)
	}
	if err := st.Corey.Validate(); err != nil {
		return nil, err
	}
	if err := st.Capillary.Validate(); err != nil {
		return nil, err
	}

	s, err := New(st.Nx, st.Ny, st.Nz)
	if err != nil {
		return nil, err
	}
	if err := s.SetCellDimensions(st.Dx, st.Dy, st.Dz); err != nil {
		return nil, err
	}
	if err := s.SetReferenceDepth(st.DepthReferenceM); err != nil {
		return nil, err
	}
	s.SetGravityEnabled(st.GravityEnabled)
	if err := s.SetRockCompressibility(st.RockCompressibility); err != nil {
		return nil, err
	}
	s.scal = st.Corey
	s.cap = st.Capillary
	if err := s.SetFluidProperties(st.Fluid); err != nil {
		return nil, err
	}

	cells := make([]grid.Cell, len(st.Cells))
	copy(cells, st.Cells)
	s.cells = cells

	for _, w := range st.Wells {
		if err := s.AddWell(w); err != nil {
			return nil, err
		}
	}

	s.timeDays = st.TimeDays

	// Rehydrate cumulative injection/production from the last history
	// record so the next Step's cumulative totals continue rather than
	// silently restarting from zero.
	if n := len(st.RateHistory); n > 0 {
		records := make([]RateRecord, n)
		copy(records, st.RateHistory)
		last := records[n-1]
		s.hist = history{
			records:               records,
			cumOilProdSurface:     last.OilProducedSurfaceM3,
			cumOilProdReservoir:   last.OilProducedReservoirM3,
			cumWaterProdSurface:   last.WaterProducedSurfaceM3,
			cumWaterProdReservoir: last.WaterProducedReservoirM3,
			cumWaterInjSurface:    last.WaterInjectedSurfaceM3,
			cumWaterInjReservoir:  last.WaterInjectedReservoirM3,
		}
	}

	return s, nil
}
