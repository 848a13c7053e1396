// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rockfluid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_capillary01(tst *testing.T) {

	chk.PrintTitle("capillary01. Brooks-Corey capillary pressure endpoints")

	cap := DefaultCapillary()
	scal := DefaultCorey()

	chk.Scalar(tst, "Pc(1-Sor)", 1e-15, cap.Pc(1-scal.Sor, scal), 0)
	chk.Scalar(tst, "Pc(Swc)", 1e-15, cap.Pc(scal.Swc, scal), 1000)

	mid := 0.5 * (scal.Swc + 1 - scal.Sor)
	pcMid := cap.Pc(mid, scal)
	if pcMid <= 0 || pcMid > 500 {
		tst.Errorf("Pc at mid-saturation should be clamped to (0,500], got %g", pcMid)
	}
}

func Test_capillary02(tst *testing.T) {

	chk.PrintTitle("capillary02. Brooks-Corey validation")

	bad := []Capillary{
		{Pe: -1, Lambda: 2},
		{Pe: 1, Lambda: 0},
		{Pe: 1, Lambda: -1},
	}
	for i, c := range bad {
		if err := c.Validate(); err == nil {
			tst.Errorf("case %d: expected Validate to fail for %+v", i, c)
		}
	}
}
