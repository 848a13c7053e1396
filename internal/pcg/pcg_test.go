// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pcg

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Test_pcg01 solves the tridiagonal SPD system
//
//	 4 -1  0   x1   1
//	-1  4 -1 · x2 = 2
//	 0 -1  4   x3   3
//
// whose solution was obtained by hand Gaussian elimination.
func Test_pcg01(tst *testing.T) {

	chk.PrintTitle("pcg01. tridiagonal SPD system")

	tri := new(la.Triplet)
	tri.Init(3, 3, 7)
	tri.Start()
	tri.Put(0, 0, 4)
	tri.Put(0, 1, -1)
	tri.Put(1, 0, -1)
	tri.Put(1, 1, 4)
	tri.Put(1, 2, -1)
	tri.Put(2, 1, -1)
	tri.Put(2, 2, 4)
	a := tri.ToMatrix(nil)

	b := []float64{1, 2, 3}
	diagInv := []float64{0.25, 0.25, 0.25}
	x0 := []float64{0, 0, 0}

	res := Solve(a, b, diagInv, x0, 1e-12, 100)
	if !res.Converged {
		tst.Errorf("expected convergence, got iterations=%d", res.Iterations)
	}

	chk.Scalar(tst, "x1", 1e-6, res.Solution[0], 0.4642857142857143)
	chk.Scalar(tst, "x2", 1e-6, res.Solution[1], 0.8571428571428571)
	chk.Scalar(tst, "x3", 1e-6, res.Solution[2], 0.9642857142857143)
}

func Test_pcg02(tst *testing.T) {

	chk.PrintTitle("pcg02. zero RHS converges immediately")

	tri := new(la.Triplet)
	tri.Init(2, 2, 2)
	tri.Start()
	tri.Put(0, 0, 2)
	tri.Put(1, 1, 2)
	a := tri.ToMatrix(nil)

	b := []float64{0, 0}
	diagInv := []float64{0.5, 0.5}
	x0 := []float64{0, 0}

	res := Solve(a, b, diagInv, x0, 1e-10, 50)
	if !res.Converged || res.Iterations != 0 {
		tst.Errorf("expected immediate convergence at iteration 0, got converged=%v iterations=%d", res.Converged, res.Iterations)
	}
	chk.Scalar(tst, "x1", 1e-15, res.Solution[0], 0)
	chk.Scalar(tst, "x2", 1e-15, res.Solution[1], 0)
}

func Test_pcg03(tst *testing.T) {

	chk.PrintTitle("pcg03. warm start from a good initial guess converges in fewer iterations")

	tri := new(la.Triplet)
	tri.Init(3, 3, 7)
	tri.Start()
	tri.Put(0, 0, 4)
	tri.Put(0, 1, -1)
	tri.Put(1, 0, -1)
	tri.Put(1, 1, 4)
	tri.Put(1, 2, -1)
	tri.Put(2, 1, -1)
	tri.Put(2, 2, 4)
	a := tri.ToMatrix(nil)

	b := []float64{1, 2, 3}
	diagInv := []float64{0.25, 0.25, 0.25}

	cold := Solve(a, b, diagInv, []float64{0, 0, 0}, 1e-12, 100)
	warm := Solve(a, b, diagInv, []float64{0.46, 0.85, 0.96}, 1e-12, 100)

	if warm.Iterations > cold.Iterations {
		tst.Errorf("expected warm start to need no more iterations than cold start: warm=%d cold=%d", warm.Iterations, cold.Iterations)
	}
}
