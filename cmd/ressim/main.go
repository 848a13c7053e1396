// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/cpmech/ressim/reservoir"
	"github.com/cpmech/ressim/snapshot"
)

func main() {
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nressim -- two-phase IMPES reservoir simulator\n\n")
	io.Pf("Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	nx := flag.Int("nx", 10, "number of cells in x")
	ny := flag.Int("ny", 10, "number of cells in y")
	nz := flag.Int("nz", 1, "number of cells in z")
	dx := flag.Float64("dx", 30, "cell size in x [m]")
	dy := flag.Float64("dy", 30, "cell size in y [m]")
	dz := flag.Float64("dz", 10, "cell size in z [m]")
	nsteps := flag.Int("nsteps", 50, "number of steps to run (each may be split into sub-steps)")
	dt := flag.Float64("dt", 5, "target step size [days]")
	gravity := flag.Bool("gravity", false, "enable gravity head term")
	injRate := flag.Float64("inj-rate", 100, "injector target rate [m3/day]")
	prodRate := flag.Float64("prod-rate", 100, "producer target rate [m3/day]")
	bhpMin := flag.Float64("bhp-min", 50, "producer minimum BHP [bar]")
	bhpMax := flag.Float64("bhp-max", 450, "injector maximum BHP [bar]")
	in := flag.String("in", "", "load initial state from this JSON file instead of building a default scenario")
	out := flag.String("out", "ressim_state.json", "write the final state to this JSON file")
	flag.Parse()

	var sim *reservoir.Simulator
	if *in != "" {
		st, err := snapshot.Load(*in)
		if err != nil {
			chk.Panic("cannot load initial state: %v", err)
		}
		sim, err = reservoir.ImportState(st)
		if err != nil {
			chk.Panic("cannot import state: %v", err)
		}
	} else {
		var err error
		sim, err = buildDefaultScenario(*nx, *ny, *nz, *dx, *dy, *dz, *gravity, *injRate, *prodRate, *bhpMin, *bhpMax)
		if err != nil {
			chk.Panic("cannot build scenario: %v", err)
		}
	}

	for i := 0; i < *nsteps; i++ {
		if err := sim.Step(*dt); err != nil {
			chk.Panic("step %d failed: %v", i, err)
		}
		if w := sim.GetLastSolverWarning(); w != "" {
			io.Pfyel("warning: %s\n", w)
		}
	}

	hist := sim.GetRateHistory()
	io.Pf("\n%12s %12s %12s %12s %12s\n", "time[days]", "oil[m3/d]", "water[m3/d]", "inj[m3/d]", "avgP[bar]")
	for _, r := range hist {
		io.Pf("%12.3f %12.3f %12.3f %12.3f %12.3f\n", r.TimeDays, r.OilRateSurfaceM3Day, r.WaterRateSurfaceM3Day, r.InjectionRateSurfaceM3Day, r.AveragePressureBar)
	}

	if err := snapshot.Save(*out, sim.ExportState()); err != nil {
		chk.Panic("cannot save final state: %v", err)
	}
	io.Pf("\nfinal state written to %s\n", *out)
}

// buildDefaultScenario sets up a simple quarter five-spot-style scenario:
// one water injector in the first cell, one producer in the last cell.
func buildDefaultScenario(nx, ny, nz int, dx, dy, dz float64, gravity bool, injRate, prodRate, bhpMin, bhpMax float64) (*reservoir.Simulator, error) {
	sim, err := reservoir.New(nx, ny, nz)
	if err != nil {
		return nil, err
	}
	if err := sim.SetCellDimensions(dx, dy, dz); err != nil {
		return nil, err
	}
	sim.SetGravityEnabled(gravity)
	if err := sim.SetInitialPressure(250); err != nil {
		return nil, err
	}
	if err := sim.SetInitialSaturation(0.2); err != nil {
		return nil, err
	}
	if err := sim.SetPermeabilityUniform(100, 100, 10); err != nil {
		return nil, err
	}
	if err := sim.SetPorosity(0.2); err != nil {
		return nil, err
	}
	if err := sim.SetWellControl(true, reservoir.WellControlParams{
		RateControlled:  true,
		TargetRateM3Day: injRate,
		BhpMin:          0,
		BhpMax:          bhpMax,
	}); err != nil {
		return nil, err
	}
	if err := sim.SetWellControl(false, reservoir.WellControlParams{
		RateControlled:  true,
		TargetRateM3Day: prodRate,
		BhpMin:          bhpMin,
		BhpMax:          10000,
	}); err != nil {
		return nil, err
	}
	if err := sim.AddWell(reservoir.Well{I: 0, J: 0, K: 0, Bhp: bhpMax, WellRadius: 0.1, Skin: 0, Injector: true}); err != nil {
		return nil, err
	}
	if err := sim.AddWell(reservoir.Well{I: nx - 1, J: ny - 1, K: nz - 1, Bhp: bhpMin, WellRadius: 0.1, Skin: 0, Injector: false}); err != nil {
		return nil, err
	}
	return sim, nil
}
