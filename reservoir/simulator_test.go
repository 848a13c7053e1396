// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func newTestSimulator(tst *testing.T) *Simulator {
	sim, err := New(4, 4, 1)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	if err := sim.SetCellDimensions(30, 30, 10); err != nil {
		tst.Fatalf("SetCellDimensions failed: %v", err)
	}
	if err := sim.SetInitialPressure(250); err != nil {
		tst.Fatalf("SetInitialPressure failed: %v", err)
	}
	if err := sim.SetInitialSaturation(0.2); err != nil {
		tst.Fatalf("SetInitialSaturation failed: %v", err)
	}
	if err := sim.SetPermeabilityUniform(100, 100, 10); err != nil {
		tst.Fatalf("SetPermeabilityUniform failed: %v", err)
	}
	if err := sim.SetPorosity(0.2); err != nil {
		tst.Fatalf("SetPorosity failed: %v", err)
	}
	if err := sim.SetWellControl(true, WellControlParams{RateControlled: true, TargetRateM3Day: 50, BhpMin: 0, BhpMax: 450}); err != nil {
		tst.Fatalf("SetWellControl(injector) failed: %v", err)
	}
	if err := sim.SetWellControl(false, WellControlParams{RateControlled: true, TargetRateM3Day: 50, BhpMin: 50, BhpMax: 10000}); err != nil {
		tst.Fatalf("SetWellControl(producer) failed: %v", err)
	}
	if err := sim.AddWell(Well{I: 0, J: 0, K: 0, Bhp: 450, WellRadius: 0.1, Injector: true}); err != nil {
		tst.Fatalf("AddWell(injector) failed: %v", err)
	}
	if err := sim.AddWell(Well{I: 3, J: 3, K: 0, Bhp: 50, WellRadius: 0.1, Injector: false}); err != nil {
		tst.Fatalf("AddWell(producer) failed: %v", err)
	}
	return sim
}

func Test_simulator01(tst *testing.T) {

	chk.PrintTitle("simulator01. saturations stay within bounds and time advances")

	sim := newTestSimulator(tst)

	for i := 0; i < 5; i++ {
		if err := sim.Step(1.0); err != nil {
			tst.Fatalf("Step %d failed: %v", i, err)
		}
	}

	if sim.GetTime() <= 0 {
		tst.Errorf("expected simulated time to advance, got %g", sim.GetTime())
	}

	scal := sim.scal
	for _, c := range sim.GetGridState() {
		if c.SatWater < scal.Swc-1e-9 || c.SatWater > 1-scal.Sor+1e-9 {
			tst.Errorf("water saturation out of bounds: %g", c.SatWater)
		}
		chk.Scalar(tst, "Sw+So", 1e-9, c.SatWater+c.SatOil, 1)
	}

	hist := sim.GetRateHistory()
	if len(hist) != 5 {
		tst.Errorf("expected 5 rate records, got %d", len(hist))
	}
}

func Test_simulator02(tst *testing.T) {

	chk.PrintTitle("simulator02. export/import state round trip preserves grid and time")

	sim := newTestSimulator(tst)
	for i := 0; i < 3; i++ {
		if err := sim.Step(1.0); err != nil {
			tst.Fatalf("Step %d failed: %v", i, err)
		}
	}

	st := sim.ExportState()
	restored, err := ImportState(st)
	if err != nil {
		tst.Fatalf("ImportState failed: %v", err)
	}

	chk.Scalar(tst, "time", 1e-12, restored.GetTime(), sim.GetTime())

	orig := sim.GetGridState()
	back := restored.GetGridState()
	if len(orig) != len(back) {
		tst.Fatalf("expected %d cells, got %d", len(orig), len(back))
	}
	for i := range orig {
		if math.Abs(orig[i].Pressure-back[i].Pressure) > 1e-9 {
			tst.Errorf("cell %d pressure mismatch: %g vs %g", i, orig[i].Pressure, back[i].Pressure)
		}
	}

	origHist := sim.GetRateHistory()
	backHist := restored.GetRateHistory()
	if len(backHist) != len(origHist) {
		tst.Fatalf("expected %d restored rate records, got %d", len(origHist), len(backHist))
	}
	lastOrig := origHist[len(origHist)-1]
	lastBack := backHist[len(backHist)-1]
	chk.Scalar(tst, "cumulative water injected", 1e-9, lastBack.WaterInjectedReservoirM3, lastOrig.WaterInjectedReservoirM3)

	// cumulative totals must continue from the snapshot, not restart at zero
	if err := restored.Step(1.0); err != nil {
		tst.Fatalf("Step after restore failed: %v", err)
	}
	restoredHist := restored.GetRateHistory()
	next := restoredHist[len(restoredHist)-1]
	if next.WaterInjectedReservoirM3 < lastOrig.WaterInjectedReservoirM3 {
		tst.Errorf("expected cumulative injection to continue growing from %g, got %g", lastOrig.WaterInjectedReservoirM3, next.WaterInjectedReservoirM3)
	}
}

func Test_simulator03(tst *testing.T) {

	chk.PrintTitle("simulator03. rejects a non-positive target dt")

	sim := newTestSimulator(tst)
	if err := sim.Step(0); err == nil {
		tst.Errorf("expected zero dt to be rejected")
	}
	if err := sim.Step(-1); err == nil {
		tst.Errorf("expected negative dt to be rejected")
	}
}

func Test_simulator04(tst *testing.T) {

	chk.PrintTitle("simulator04. a large target dt is covered by multiple committed sub-steps")

	sim := newTestSimulator(tst)
	if err := sim.Step(30.0); err != nil {
		tst.Fatalf("Step failed: %v", err)
	}

	hist := sim.GetRateHistory()
	if len(hist) <= 1 {
		tst.Errorf("expected internal CFL cutback to produce more than one committed sub-step, got %d", len(hist))
	}
	chk.Scalar(tst, "simulated time covers the target dt", 1e-9, sim.GetTime(), 30)

	// every committed sub-step's dt must sum to the simulated time
	var sumDt float64
	for _, r := range hist {
		sumDt += r.DtDays
	}
	chk.Scalar(tst, "sum of sub-step dt equals simulated time", 1e-9, sumDt, sim.GetTime())
}

func Test_simulator05(tst *testing.T) {

	chk.PrintTitle("simulator05. coincident wells in the same cell both contribute to the pressure system")

	sim, err := New(2, 1, 1)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	if err := sim.SetCellDimensions(30, 30, 10); err != nil {
		tst.Fatalf("SetCellDimensions failed: %v", err)
	}
	if err := sim.SetInitialPressure(250); err != nil {
		tst.Fatalf("SetInitialPressure failed: %v", err)
	}
	if err := sim.SetInitialSaturation(0.3); err != nil {
		tst.Fatalf("SetInitialSaturation failed: %v", err)
	}
	if err := sim.SetPermeabilityUniform(100, 100, 10); err != nil {
		tst.Fatalf("SetPermeabilityUniform failed: %v", err)
	}
	if err := sim.SetPorosity(0.2); err != nil {
		tst.Fatalf("SetPorosity failed: %v", err)
	}
	// two coincident injectors in the same cell: combined PI should drive
	// a larger pressure response than either alone
	if err := sim.AddWell(Well{I: 0, J: 0, K: 0, Bhp: 400, WellRadius: 0.1, Injector: true}); err != nil {
		tst.Fatalf("AddWell failed: %v", err)
	}
	if err := sim.AddWell(Well{I: 0, J: 0, K: 0, Bhp: 400, WellRadius: 0.1, Injector: true}); err != nil {
		tst.Fatalf("AddWell failed: %v", err)
	}
	if err := sim.Step(1.0); err != nil {
		tst.Fatalf("Step failed: %v", err)
	}

	cells := sim.GetGridState()
	if cells[0].Pressure <= 250 {
		tst.Errorf("expected coincident injectors to raise cell pressure above initial, got %g", cells[0].Pressure)
	}
}
