// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package reservoir is the facade for the two-phase (oil-water) IMPES
// black-oil simulator core: grid state, rock-fluid and PVT closures,
// dynamic wells, the pressure/saturation sub-step, the adaptive CFL
// controller, and rate-history accounting. Grounded on
// original_source/src/lib/ressim/src/*.rs; the validated-setter and
// defensive-copy idioms follow the teacher's package conventions.
package reservoir

import (
	"fmt"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/rnd"

	"github.com/cpmech/ressim/grid"
	"github.com/cpmech/ressim/internal/assembly"
	"github.com/cpmech/ressim/internal/flux"
	"github.com/cpmech/ressim/internal/pcg"
	"github.com/cpmech/ressim/pvt"
	"github.com/cpmech/ressim/rockfluid"
)

// Simulator owns the full reservoir state and advances it sub-step by
// sub-step under IMPES.
type Simulator struct {
	nx, ny, nz      int
	dx, dy, dz      float64
	depthReferenceM float64
	gravityEnabled  bool

	cells               []grid.Cell
	scal                rockfluid.Corey
	cap                 rockfluid.Capillary
	fl                  pvt.Fluid
	rockCompressibility float64

	wells           []Well
	injectorControl WellControlParams
	producerControl WellControlParams
	haveLastRates   bool
	lastWellRates   []float64

	limits     StabilityLimits
	pcgTol     float64
	pcgMaxIter int

	timeDays          float64
	hist              history
	lastSolverWarning string
}

// New creates a simulator over an nx×ny×nz grid, with default rock-fluid,
// PVT, stability, and well-control parameters. Cell dimensions must be
// set with SetCellDimensions before the first Step.
func New(nx, ny, nz int) (*Simulator, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, chk.Err("grid dimensions must be positive, got nx=%d ny=%d nz=%d", nx, ny, nz)
	}
	n := nx * ny * nz
	cells := make([]grid.Cell, n)
	for i := range cells {
		cells[i] = grid.DefaultCell()
	}
	return &Simulator{
		nx: nx, ny: ny, nz: nz,
		dx: 1, dy: 1, dz: 1,
		cells:               cells,
		scal:                rockfluid.DefaultCorey(),
		cap:                 rockfluid.DefaultCapillary(),
		fl:                  pvt.DefaultFluid(),
		rockCompressibility: 4.5e-5,
		limits:              DefaultStabilityLimits(),
		pcgTol:              pcg.DefaultTolerance,
		pcgMaxIter:          pcg.DefaultMaxIterations,
		injectorControl:     WellControlParams{RateControlled: false},
		producerControl:     WellControlParams{RateControlled: false},
	}, nil
}

func (s *Simulator) cellID(i, j, k int) int {
	return i + j*s.nx + k*s.nx*s.ny
}

// SetCellDimensions sets the uniform cell size [m] in each direction.
func (s *Simulator) SetCellDimensions(dx, dy, dz float64) error {
	if !finite(dx) || dx <= 0 {
		return chk.Err("dx must be positive and finite, got %g", dx)
	}
	if !finite(dy) || dy <= 0 {
		return chk.Err("dy must be positive and finite, got %g", dy)
	}
	if !finite(dz) || dz <= 0 {
		return chk.Err("dz must be positive and finite, got %g", dz)
	}
	s.dx, s.dy, s.dz = dx, dy, dz
	return nil
}

// SetReferenceDepth sets the depth [m] of the top of layer k=0, used for
// the gravity head term.
func (s *Simulator) SetReferenceDepth(depthM float64) error {
	if !finite(depthM) {
		return chk.Err("reference depth must be finite, got %g", depthM)
	}
	s.depthReferenceM = depthM
	return nil
}

// SetGravityEnabled toggles the gravity head term in the flux equations.
func (s *Simulator) SetGravityEnabled(enabled bool) {
	s.gravityEnabled = enabled
}

// SetInitialPressure sets a uniform initial pressure [bar] in all cells.
func (s *Simulator) SetInitialPressure(pBar float64) error {
	if !finite(pBar) {
		return chk.Err("initial pressure must be finite, got %g", pBar)
	}
	for i := range s.cells {
		s.cells[i].Pressure = pBar
	}
	return nil
}

// SetInitialPressureByLayer sets the initial pressure [bar] per k-layer.
func (s *Simulator) SetInitialPressureByLayer(pBarPerLayer []float64) error {
	if len(pBarPerLayer) != s.nz {
		return chk.Err("expected %d layer pressures, got %d", s.nz, len(pBarPerLayer))
	}
	for k, p := range pBarPerLayer {
		if !finite(p) {
			return chk.Err("layer %d initial pressure must be finite, got %g", k, p)
		}
	}
	for k := 0; k < s.nz; k++ {
		for j := 0; j < s.ny; j++ {
			for i := 0; i < s.nx; i++ {
				s.cells[s.cellID(i, j, k)].Pressure = pBarPerLayer[k]
			}
		}
	}
	return nil
}

// SetInitialSaturation sets a uniform initial water saturation in all
// cells (oil saturation is set to 1-Sw).
func (s *Simulator) SetInitialSaturation(sw float64) error {
	if !finite(sw) || sw < 0 || sw > 1 {
		return chk.Err("initial water saturation must be in [0,1] and finite, got %g", sw)
	}
	for i := range s.cells {
		s.cells[i].SatWater = sw
		s.cells[i].SatOil = 1 - sw
	}
	return nil
}

// SetInitialSaturationByLayer sets initial water saturation per k-layer.
func (s *Simulator) SetInitialSaturationByLayer(swPerLayer []float64) error {
	if len(swPerLayer) != s.nz {
		return chk.Err("expected %d layer saturations, got %d", s.nz, len(swPerLayer))
	}
	for k, sw := range swPerLayer {
		if !finite(sw) || sw < 0 || sw > 1 {
			return chk.Err("layer %d initial water saturation must be in [0,1] and finite, got %g", k, sw)
		}
	}
	for k := 0; k < s.nz; k++ {
		for j := 0; j < s.ny; j++ {
			for i := 0; i < s.nx; i++ {
				id := s.cellID(i, j, k)
				s.cells[id].SatWater = swPerLayer[k]
				s.cells[id].SatOil = 1 - swPerLayer[k]
			}
		}
	}
	return nil
}

// SetCoreyParams validates and sets the relative-permeability closure.
func (s *Simulator) SetCoreyParams(c rockfluid.Corey) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.scal = c
	return nil
}

// SetCapillaryParams validates and sets the capillary-pressure closure.
func (s *Simulator) SetCapillaryParams(c rockfluid.Capillary) error {
	if err := c.Validate(); err != nil {
		return err
	}
	s.cap = c
	return nil
}

// SetFluidProperties validates and sets the PVT property set.
func (s *Simulator) SetFluidProperties(fl pvt.Fluid) error {
	if err := fl.SetViscosities(fl.MuO, fl.MuW); err != nil {
		return err
	}
	if err := fl.SetCompressibilities(fl.Co, fl.Cw); err != nil {
		return err
	}
	if err := fl.SetDensities(fl.RhoO, fl.RhoW); err != nil {
		return err
	}
	if err := fl.SetFormationVolumeFactors(fl.Bo, fl.Bw); err != nil {
		return err
	}
	s.fl = fl
	return nil
}

// SetRockCompressibility validates and sets the rock compressibility
// [1/bar].
func (s *Simulator) SetRockCompressibility(c float64) error {
	if !finite(c) || c < 0 {
		return chk.Err("rock compressibility must be non-negative and finite, got %g", c)
	}
	s.rockCompressibility = c
	return nil
}

// SetPermeabilityUniform sets kx,ky,kz [mD] uniformly in all cells.
func (s *Simulator) SetPermeabilityUniform(kx, ky, kz float64) error {
	if !finite(kx) || kx <= 0 || !finite(ky) || ky <= 0 || !finite(kz) || kz <= 0 {
		return chk.Err("permeabilities must be positive and finite, got kx=%g ky=%g kz=%g", kx, ky, kz)
	}
	for i := range s.cells {
		s.cells[i].PermX, s.cells[i].PermY, s.cells[i].PermZ = kx, ky, kz
	}
	return nil
}

// SetPermeabilityByLayer sets kx,ky,kz [mD] per k-layer.
func (s *Simulator) SetPermeabilityByLayer(kxPerLayer, kyPerLayer, kzPerLayer []float64) error {
	if len(kxPerLayer) != s.nz || len(kyPerLayer) != s.nz || len(kzPerLayer) != s.nz {
		return chk.Err("expected %d layer permeabilities per axis", s.nz)
	}
	for k := 0; k < s.nz; k++ {
		if !finite(kxPerLayer[k]) || kxPerLayer[k] <= 0 ||
			!finite(kyPerLayer[k]) || kyPerLayer[k] <= 0 ||
			!finite(kzPerLayer[k]) || kzPerLayer[k] <= 0 {
			return chk.Err("layer %d permeabilities must be positive and finite", k)
		}
	}
	for k := 0; k < s.nz; k++ {
		for j := 0; j < s.ny; j++ {
			for i := 0; i < s.nx; i++ {
				id := s.cellID(i, j, k)
				s.cells[id].PermX = kxPerLayer[k]
				s.cells[id].PermY = kyPerLayer[k]
				s.cells[id].PermZ = kzPerLayer[k]
			}
		}
	}
	return nil
}

// SetPermeabilityRandom draws kx (and ky=kz=kx) uniformly from
// [kMin,kMax] per cell, seeded for reproducibility, using gosl/rnd.
func (s *Simulator) SetPermeabilityRandom(kMin, kMax float64, seed int) error {
	if !finite(kMin) || !finite(kMax) || kMin <= 0 || kMax <= kMin {
		return chk.Err("permeability range must satisfy 0 < kMin < kMax, got kMin=%g kMax=%g", kMin, kMax)
	}
	rnd.Init(seed)
	for i := range s.cells {
		k := rnd.Float64(kMin, kMax)
		s.cells[i].PermX, s.cells[i].PermY, s.cells[i].PermZ = k, k, k
	}
	return nil
}

// SetPorosity sets a uniform porosity in all cells.
func (s *Simulator) SetPorosity(phi float64) error {
	if !finite(phi) || phi <= 0 || phi >= 1 {
		return chk.Err("porosity must be in (0,1) and finite, got %g", phi)
	}
	for i := range s.cells {
		s.cells[i].Porosity = phi
	}
	return nil
}

// SetStabilityLimits validates and sets the adaptive-CFL admissibility
// bounds.
func (s *Simulator) SetStabilityLimits(l StabilityLimits) error {
	if err := l.validate(); err != nil {
		return err
	}
	s.limits = l
	return nil
}

// SetSolverTolerance validates and sets the PCG relative-residual
// tolerance and iteration cap (<=0 falls back to the package defaults).
func (s *Simulator) SetSolverTolerance(tol float64, maxIter int) error {
	if tol < 0 {
		return chk.Err("solver tolerance must be non-negative, got %g", tol)
	}
	if maxIter < 0 {
		return chk.Err("solver max iterations must be non-negative, got %d", maxIter)
	}
	s.pcgTol, s.pcgMaxIter = tol, maxIter
	return nil
}

// SetWellControl sets the field-wide rate/BHP control mode applied to
// all injectors (isInjector=true) or all producers (isInjector=false).
func (s *Simulator) SetWellControl(isInjector bool, p WellControlParams) error {
	if p.RateControlled {
		if !finite(p.TargetRateM3Day) || p.TargetRateM3Day < 0 {
			return chk.Err("target rate must be non-negative and finite, got %g", p.TargetRateM3Day)
		}
		if !finite(p.BhpMin) || !finite(p.BhpMax) || p.BhpMin >= p.BhpMax {
			return chk.Err("BHP envelope must satisfy BhpMin < BhpMax, got [%g, %g]", p.BhpMin, p.BhpMax)
		}
	}
	if isInjector {
		s.injectorControl = p
	} else {
		s.producerControl = p
	}
	return nil
}

// AddWell validates and appends a well completion.
func (s *Simulator) AddWell(w Well) error {
	if err := w.validate(s.nx, s.ny, s.nz); err != nil {
		return err
	}
	s.wells = append(s.wells, w)
	s.haveLastRates = false
	return nil
}

// GetTime returns the simulated time [days].
func (s *Simulator) GetTime() float64 { return s.timeDays }

// GetDimensions returns the grid shape.
func (s *Simulator) GetDimensions() (nx, ny, nz int) { return s.nx, s.ny, s.nz }

// GetGridState returns a defensive copy of the current per-cell state.
func (s *Simulator) GetGridState() []grid.Cell {
	out := make([]grid.Cell, len(s.cells))
	copy(out, s.cells)
	return out
}

// GetWellState returns a defensive copy of the current well
// completions, including their last-computed productivity index.
func (s *Simulator) GetWellState() []Well {
	out := make([]Well, len(s.wells))
	copy(out, s.wells)
	return out
}

// GetRateHistory returns a defensive copy of the append-only rate
// history.
func (s *Simulator) GetRateHistory() []RateRecord {
	return s.hist.snapshot()
}

// GetLastSolverWarning returns the warning from the most recent Step, or
// "" if the last step fully converged within stability limits.
func (s *Simulator) GetLastSolverWarning() string {
	return s.lastSolverWarning
}

func (s *Simulator) averages() (avgPressure, avgSw float64) {
	var sumP, sumSw float64
	for _, c := range s.cells {
		sumP += c.Pressure
		sumSw += c.SatWater
	}
	n := float64(len(s.cells))
	return sumP / n, sumSw / n
}

// subStepResult is what one candidate sub-step produced, staged outside
// committed simulator state until the controller accepts it.
type subStepResult struct {
	cells        []grid.Cell
	rates        []float64
	pis          []float64
	solver       pcg.Result
	oilProdRes   float64
	waterProdRes float64
	waterInjRes  float64
}

// trySubStep assembles and solves the pressure equation for one candidate
// sub-step of size dt, then advances saturations explicitly. It never
// mutates s.cells/s.wells; the caller commits the returned state only
// once the sub-step is accepted.
func (s *Simulator) trySubStep(dt float64) (StepOutcome, subStepResult, error) {
	cells := make([]grid.Cell, len(s.cells))
	copy(cells, s.cells)

	g := assembly.Geometry{
		Nx: s.nx, Ny: s.ny, Nz: s.nz,
		Dx: s.dx, Dy: s.dy, Dz: s.dz,
		DepthReferenceM: s.depthReferenceM,
		GravityEnabled:  s.gravityEnabled,
	}

	decisions := make([]wellControlDecision, len(s.wells))
	pis := make([]float64, len(s.wells))
	wellTerms := make([]assembly.WellTerm, 0, len(s.wells))
	for wi, w := range s.wells {
		id := s.cellID(w.I, w.J, w.K)
		totalMob := flux.TotalMobility(cells[id], s.scal, s.fl)
		pi, err := productivityIndex(cells[id], s.dx, s.dy, s.dz, w.WellRadius, w.Skin, totalMob)
		if err != nil {
			return StepOutcome{}, subStepResult{}, err
		}
		params := s.producerControl
		if w.Injector {
			params = s.injectorControl
		}
		decision := resolveWellControl(w, cells[id].Pressure, pi, params)
		diag, rhs := wellTermDiagRHS(decision, pi)

		decisions[wi] = decision
		pis[wi] = pi
		wellTerms = append(wellTerms, assembly.WellTerm{CellID: id, Diag: diag, RHS: rhs})
	}

	sys := assembly.Build(cells, g, s.rockCompressibility, s.fl, s.scal, dt, wellTerms)

	x0 := make([]float64, len(cells))
	for i, c := range cells {
		x0[i] = c.Pressure
	}
	result := pcg.Solve(sys.A, sys.RHS, sys.DiagInv, x0, s.pcgTol, s.pcgMaxIter)

	pressureChangeMax := 0.0
	for i := range cells {
		d := math.Abs(result.Solution[i] - cells[i].Pressure)
		if d > pressureChangeMax {
			pressureChangeMax = d
		}
		cells[i].Pressure = result.Solution[i]
	}

	g3 := geometry3D{nx: s.nx, ny: s.ny, nz: s.nz, dx: s.dx, dy: s.dy, dz: s.dz, depthRef: s.depthReferenceM}
	netRates := netWaterRates(cells, g3, s.scal, s.cap, s.fl, s.gravityEnabled)

	rates := make([]float64, len(s.wells))
	oilProd, waterProd, waterInj := 0.0, 0.0, 0.0
	for wi, w := range s.wells {
		id := s.cellID(w.I, w.J, w.K)
		var total float64
		switch decisions[wi].kind {
		case controlBHP:
			total = pis[wi] * (decisions[wi].bhpBar - cells[id].Pressure)
		case controlRate:
			total = decisions[wi].rateM3Day
		}
		rates[wi] = total

		if w.Injector {
			netRates[id] += total
			waterInj += total
		} else {
			fw := flux.FracFlowWater(cells[id], s.scal, s.fl)
			waterComp := total * fw
			oilComp := total * (1 - fw)
			netRates[id] += waterComp
			waterProd += -waterComp
			oilProd += -oilComp
		}
	}

	swBefore := make([]float64, len(cells))
	for i, c := range cells {
		swBefore[i] = c.SatWater
	}
	residual := updateSaturations(cells, g3, s.scal, dt, netRates, waterInj, waterProd)

	satChangeMax := 0.0
	for i := range cells {
		d := math.Abs(cells[i].SatWater - swBefore[i])
		if d > satChangeMax {
			satChangeMax = d
		}
	}

	rateChangeFracMax := 0.0
	if s.haveLastRates && len(s.lastWellRates) == len(rates) {
		for wi := range rates {
			prev := s.lastWellRates[wi]
			denom := math.Abs(prev)
			if denom < 1e-9 {
				denom = 1e-9
			}
			f := math.Abs(rates[wi]-prev) / denom
			if f > rateChangeFracMax {
				rateChangeFracMax = f
			}
		}
	}

	outcome := StepOutcome{
		SatChangeMax:            satChangeMax,
		PressureChangeMax:       pressureChangeMax,
		RateChangeFracMax:       rateChangeFracMax,
		SolverConverged:         result.Converged,
		SolverIterations:        result.Iterations,
		MaterialBalanceResidual: residual,
	}
	return outcome, subStepResult{
		cells:        cells,
		rates:        rates,
		pis:          pis,
		solver:       result,
		oilProdRes:   oilProd,
		waterProdRes: waterProd,
		waterInjRes:  waterInj,
	}, nil
}

// commitSubStep applies an accepted candidate sub-step of size dt to the
// committed simulator state and appends its RateRecord.
func (s *Simulator) commitSubStep(dt float64, outcome StepOutcome, result subStepResult, attempts int) {
	s.cells = result.cells
	s.lastWellRates = result.rates
	s.haveLastRates = true
	for wi := range s.wells {
		s.wells[wi].ProductivityIndex = result.pis[wi]
	}
	s.timeDays += dt

	if !outcome.SolverConverged {
		s.lastSolverWarning = fmt.Sprintf("PCG solver did not converge within %d iterations at t=%.6f days", outcome.SolverIterations, s.timeDays)
	}

	avgPressure, avgSw := s.averages()
	oilRateSurface := result.oilProdRes / s.fl.Bo
	waterRateSurface := result.waterProdRes / s.fl.Bw
	injRateSurface := result.waterInjRes / s.fl.Bw

	s.hist.append(s.timeDays, oilRateSurface, waterRateSurface, injRateSurface,
		result.oilProdRes, result.waterProdRes, result.waterInjRes, dt, avgPressure, avgSw,
		outcome.MaterialBalanceResidual, attempts)
}

// Step drives sub-steps of the pressure/saturation update until either
// targetDtDays of simulated time has been covered or maxAttempts
// consecutive CFL-cutback sub-steps have been rejected in a row, matching
// original_source/.../step.rs's step_internal loop: every sub-step
// (full-size or cut back) is committed and recorded, and the rejection
// counter resets to zero on a sub-step that needed no cutback.
func (s *Simulator) Step(targetDtDays float64) error {
	if !finite(targetDtDays) || targetDtDays <= 0 {
		return chk.Err("target dt must be positive and finite, got %g", targetDtDays)
	}

	timeStepped := 0.0
	attempts := 0
	s.lastSolverWarning = ""

	for timeStepped < targetDtDays && attempts < maxAttempts {
		remainingDt := targetDtDays - timeStepped

		outcome, result, err := s.trySubStep(remainingDt)
		if err != nil {
			return err
		}

		actualDt := remainingDt
		if factor := admissibilityFactor(outcome, s.limits); factor < 1.0 {
			actualDt = cutBackDt(remainingDt, factor)
			attempts++
			outcome, result, err = s.trySubStep(actualDt)
			if err != nil {
				return err
			}
		} else {
			attempts = 0
		}

		s.commitSubStep(actualDt, outcome, result, attempts)
		timeStepped += actualDt
	}

	if attempts >= maxAttempts {
		s.lastSolverWarning = fmt.Sprintf("stability limits not satisfied after %d consecutive cutback attempts at t=%.6f days", maxAttempts, s.timeDays)
	}

	return nil
}
