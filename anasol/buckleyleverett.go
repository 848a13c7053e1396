// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package anasol provides closed-form analytic solutions used as test
// oracles for the numerical scheme, in the spirit of the teacher's
// ana/colpresfluid.go (an analytic column-pressure profile checked
// against the FEM solution).
package anasol

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/ressim/rockfluid"
)

// BuckleyLeverett holds the rock-fluid and viscosity data needed to
// construct the Welge shock-front solution of the one-dimensional
// waterflood displacement problem: water injected into a linear core at
// the connate water saturation ahead of the front.
type BuckleyLeverett struct {
	Scal rockfluid.Corey
	MuW  float64
	MuO  float64
}

// Init sets the closure and viscosities.
func (o *BuckleyLeverett) Init(scal rockfluid.Corey, muW, muO float64) {
	o.Scal, o.MuW, o.MuO = scal, muW, muO
}

// FracFlow returns the water fractional-flow f_w(Sw).
func (o BuckleyLeverett) FracFlow(sw float64) float64 {
	krw := o.Scal.Krw(sw)
	kro := o.Scal.Kro(sw)
	lamW := krw / o.MuW
	lamO := kro / o.MuO
	if lamW+lamO <= 0 {
		return 0
	}
	return lamW / (lamW + lamO)
}

// fracFlowDerivative returns df_w/dSw by central difference.
func (o BuckleyLeverett) fracFlowDerivative(sw float64) float64 {
	const h = 1e-5
	return (o.FracFlow(sw+h) - o.FracFlow(sw-h)) / (2 * h)
}

// ShockFrontSaturation solves the Welge tangent condition
// f_w'(Swf) = f_w(Swf)/(Swf-Swc) for the shock-front water saturation,
// by bisection on (Swc, 1-Sor). Returns an error if the tangent
// construction has no root in that interval (degenerate mobility ratio).
func (o BuckleyLeverett) ShockFrontSaturation() (swf float64, err error) {
	const eps = 1e-6
	lo := o.Scal.Swc + eps
	hi := 1 - o.Scal.Sor - eps
	if hi <= lo {
		return 0, chk.Err("anasol: degenerate saturation span for shock-front search")
	}

	welgeGap := func(sw float64) float64 {
		return o.fracFlowDerivative(sw) - o.FracFlow(sw)/(sw-o.Scal.Swc)
	}

	gLo, gHi := welgeGap(lo), welgeGap(hi)
	if gLo == 0 {
		return lo, nil
	}
	if gHi == 0 {
		return hi, nil
	}
	if (gLo > 0) == (gHi > 0) {
		return 0, chk.Err("anasol: Welge tangent condition has no sign change in (%g, %g)", lo, hi)
	}

	for i := 0; i < 100; i++ {
		mid := 0.5 * (lo + hi)
		gMid := welgeGap(mid)
		if math.Abs(gMid) < 1e-10 {
			return mid, nil
		}
		if (gMid > 0) == (gLo > 0) {
			lo, gLo = mid, gMid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi), nil
}

// FrontVelocity returns the shock-front saturation velocity
// [length/time] dXf/dt = (q/(A·phi))·f_w'(Swf), given the interstitial
// velocity q/(A·phi) [length/time].
func (o BuckleyLeverett) FrontVelocity(swf, interstitialVelocity float64) float64 {
	return interstitialVelocity * o.fracFlowDerivative(swf)
}

// FrontPosition returns the shock-front position [length] at time t
// [time], given the constant interstitial velocity q/(A·phi).
func (o BuckleyLeverett) FrontPosition(swf, interstitialVelocity, t float64) float64 {
	return o.FrontVelocity(swf, interstitialVelocity) * t
}

// AverageSaturationBehindFront returns the Welge-averaged water
// saturation behind the shock at breakthrough, Sw_avg = Swf + (1-f_w(Swf))/f_w'(Swf).
func (o BuckleyLeverett) AverageSaturationBehindFront(swf float64) float64 {
	deriv := o.fracFlowDerivative(swf)
	if deriv == 0 {
		return swf
	}
	return swf + (1-o.FracFlow(swf))/deriv
}
