// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ressim/grid"
)

func Test_well01(tst *testing.T) {

	chk.PrintTitle("well01. validate rejects out-of-bounds and non-finite fields")

	w := Well{I: 0, J: 0, K: 0, Bhp: 250, WellRadius: 0.1, Skin: 0}
	if err := w.validate(2, 2, 2); err != nil {
		tst.Errorf("expected a valid well to pass, got %v", err)
	}

	bad := w
	bad.I = 5
	if err := bad.validate(2, 2, 2); err == nil {
		tst.Errorf("expected out-of-bounds index to fail")
	}

	bad = w
	bad.WellRadius = -1
	if err := bad.validate(2, 2, 2); err == nil {
		tst.Errorf("expected negative well radius to fail")
	}

	bad = w
	bad.Bhp = 1e9
	if err := bad.validate(2, 2, 2); err == nil {
		tst.Errorf("expected out-of-range BHP to fail")
	}
}

func Test_well02(tst *testing.T) {

	chk.PrintTitle("well02. Peaceman PI is positive for a reasonable completion")

	cell := grid.DefaultCell()
	cell.PermX, cell.PermY = 100, 100
	pi, err := productivityIndex(cell, 30, 30, 10, 0.1, 0, 5.0)
	if err != nil {
		tst.Errorf("expected PI to compute, got %v", err)
	}
	if pi <= 0 {
		tst.Errorf("expected positive PI, got %g", pi)
	}

	_, err = productivityIndex(cell, 30, 30, 10, 1000, 0, 5.0)
	if err == nil {
		tst.Errorf("expected rejection when well radius exceeds equivalent radius")
	}
}

func Test_well03(tst *testing.T) {

	chk.PrintTitle("well03. rate control switches to BHP when the envelope is breached")

	w := Well{I: 0, J: 0, K: 0, Bhp: 400, WellRadius: 0.1, Injector: true}
	params := WellControlParams{RateControlled: true, TargetRateM3Day: 1000, BhpMin: 0, BhpMax: 300}

	// a small PI means a large implied BHP for the requested rate: must clamp to BhpMax
	decision := resolveWellControl(w, 250, 0.5, params)
	if decision.kind != controlBHP {
		tst.Errorf("expected control to switch to BHP, got kind=%v", decision.kind)
	}
	chk.Scalar(tst, "clamped bhp", 1e-12, decision.bhpBar, params.BhpMax)

	// a large PI keeps the implied BHP inside the envelope: stays on rate control
	decision = resolveWellControl(w, 250, 500, params)
	if decision.kind != controlRate {
		tst.Errorf("expected control to stay on rate, got kind=%v", decision.kind)
	}
	chk.Scalar(tst, "rate", 1e-12, decision.rateM3Day, params.TargetRateM3Day)
}
