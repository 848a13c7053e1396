// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package anasol

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ressim/rockfluid"
)

func Test_bl01(tst *testing.T) {

	chk.PrintTitle("bl01. Welge shock-front saturation lies strictly inside (Swc, 1-Sor)")

	var bl BuckleyLeverett
	bl.Init(rockfluid.DefaultCorey(), 0.5, 2.0)

	swf, err := bl.ShockFrontSaturation()
	if err != nil {
		tst.Fatalf("ShockFrontSaturation failed: %v", err)
	}
	if swf <= bl.Scal.Swc || swf >= 1-bl.Scal.Sor {
		tst.Errorf("expected Swc < Swf < 1-Sor, got Swf=%g (Swc=%g, 1-Sor=%g)", swf, bl.Scal.Swc, 1-bl.Scal.Sor)
	}
}

func Test_bl02(tst *testing.T) {

	chk.PrintTitle("bl02. fractional flow is monotonically increasing and bounded in [0,1]")

	var bl BuckleyLeverett
	bl.Init(rockfluid.DefaultCorey(), 0.5, 2.0)

	prev := bl.FracFlow(bl.Scal.Swc)
	for sw := bl.Scal.Swc + 0.05; sw <= 1-bl.Scal.Sor; sw += 0.05 {
		f := bl.FracFlow(sw)
		if f < prev-1e-12 {
			tst.Errorf("expected fractional flow to be non-decreasing, got f(%g)=%g < prev=%g", sw, f, prev)
		}
		if f < 0 || f > 1 {
			tst.Errorf("fractional flow out of [0,1]: %g", f)
		}
		prev = f
	}
}

func Test_bl03(tst *testing.T) {

	chk.PrintTitle("bl03. front position grows linearly with time")

	var bl BuckleyLeverett
	bl.Init(rockfluid.DefaultCorey(), 0.5, 2.0)
	swf, err := bl.ShockFrontSaturation()
	if err != nil {
		tst.Fatalf("ShockFrontSaturation failed: %v", err)
	}

	v := 1.0
	x1 := bl.FrontPosition(swf, v, 10)
	x2 := bl.FrontPosition(swf, v, 20)
	chk.Scalar(tst, "front position doubles when time doubles", 1e-9, x2, 2*x1)
}
