// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ressim/pvt"
	"github.com/cpmech/ressim/reservoir"
	"github.com/cpmech/ressim/rockfluid"
)

func Test_snapshot01(tst *testing.T) {

	chk.PrintTitle("snapshot01. encode/decode round trip preserves all fields")

	sim, err := reservoir.New(2, 2, 1)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	if err := sim.SetCellDimensions(10, 10, 5); err != nil {
		tst.Fatalf("SetCellDimensions failed: %v", err)
	}
	if err := sim.SetFluidProperties(pvt.DefaultFluid()); err != nil {
		tst.Fatalf("SetFluidProperties failed: %v", err)
	}
	if err := sim.SetCoreyParams(rockfluid.DefaultCorey()); err != nil {
		tst.Fatalf("SetCoreyParams failed: %v", err)
	}
	if err := sim.AddWell(reservoir.Well{I: 0, J: 0, K: 0, Bhp: 200, WellRadius: 0.1, Injector: true}); err != nil {
		tst.Fatalf("AddWell failed: %v", err)
	}
	if err := sim.Step(1.0); err != nil {
		tst.Fatalf("Step failed: %v", err)
	}

	st := sim.ExportState()
	b, err := Encode(st)
	if err != nil {
		tst.Fatalf("Encode failed: %v", err)
	}

	back, err := Decode(b)
	if err != nil {
		tst.Fatalf("Decode failed: %v", err)
	}

	if back.Nx != st.Nx || back.Ny != st.Ny || back.Nz != st.Nz {
		tst.Errorf("grid shape mismatch: got (%d,%d,%d), want (%d,%d,%d)", back.Nx, back.Ny, back.Nz, st.Nx, st.Ny, st.Nz)
	}
	chk.Scalar(tst, "Dx", 1e-12, back.Dx, st.Dx)
	if len(back.Cells) != len(st.Cells) {
		tst.Errorf("expected %d cells, got %d", len(st.Cells), len(back.Cells))
	}
	if len(back.Wells) != 1 {
		tst.Errorf("expected 1 well, got %d", len(back.Wells))
	}
	if len(back.RateHistory) != len(st.RateHistory) {
		tst.Errorf("expected %d restored rate records, got %d", len(st.RateHistory), len(back.RateHistory))
	}

	if _, err := reservoir.ImportState(back); err != nil {
		tst.Errorf("expected decoded state to import cleanly, got %v", err)
	}
}
