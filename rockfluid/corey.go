// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package rockfluid implements the Corey relative-permeability and
// Brooks-Corey capillary-pressure closures used by the two-phase
// pressure/saturation equations.
package rockfluid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Corey holds the rock-fluid (SCAL) parameters for a Corey relative
// permeability model.
type Corey struct {
	Swc float64 // connate water saturation
	Sor float64 // residual oil saturation
	Nw  float64 // water Corey exponent
	No  float64 // oil Corey exponent
}

// DefaultCorey returns the default SCAL parameters used to initialise a
// new grid cell's rock-fluid behaviour.
func DefaultCorey() Corey {
	return Corey{Swc: 0.1, Sor: 0.1, Nw: 2.0, No: 2.0}
}

// Init sets the Corey parameters from a parameter list and validates them.
func (o *Corey) Init(prms fun.Prms) (err error) {
	c := *o
	for _, p := range prms {
		switch p.N {
		case "swc":
			c.Swc = p.V
		case "sor":
			c.Sor = p.V
		case "nw":
			c.Nw = p.V
		case "no":
			c.No = p.V
		default:
			return chk.Err("rockfluid: parameter named %q is incorrect\n", p.N)
		}
	}
	if err = c.Validate(); err != nil {
		return err
	}
	*o = c
	return nil
}

// GetPrms returns the current (or example) parameters.
func (o Corey) GetPrms(example bool) fun.Prms {
	if example {
		d := DefaultCorey()
		return fun.Prms{
			&fun.Prm{N: "swc", V: d.Swc},
			&fun.Prm{N: "sor", V: d.Sor},
			&fun.Prm{N: "nw", V: d.Nw},
			&fun.Prm{N: "no", V: d.No},
		}
	}
	return fun.Prms{
		&fun.Prm{N: "swc", V: o.Swc},
		&fun.Prm{N: "sor", V: o.Sor},
		&fun.Prm{N: "nw", V: o.Nw},
		&fun.Prm{N: "no", V: o.No},
	}
}

// Validate checks the invariants from the data model: 0≤Swc, 0≤Sor,
// Swc+Sor<1, Nw>0, No>0.
func (o Corey) Validate() error {
	if !finite(o.Swc) || !finite(o.Sor) || !finite(o.Nw) || !finite(o.No) {
		return chk.Err("rockfluid: Swc, Sor, Nw, No must all be finite")
	}
	if o.Swc < 0 {
		return chk.Err("rockfluid: Swc must be >= 0, got %g", o.Swc)
	}
	if o.Sor < 0 {
		return chk.Err("rockfluid: Sor must be >= 0, got %g", o.Sor)
	}
	if o.Swc+o.Sor >= 1 {
		return chk.Err("rockfluid: Swc+Sor must be < 1, got Swc=%g Sor=%g", o.Swc, o.Sor)
	}
	if o.Nw <= 0 {
		return chk.Err("rockfluid: Nw must be > 0, got %g", o.Nw)
	}
	if o.No <= 0 {
		return chk.Err("rockfluid: No must be > 0, got %g", o.No)
	}
	return nil
}

// span returns the effective-saturation normalisation range 1-Swc-Sor.
func (o Corey) span() float64 {
	return 1.0 - o.Swc - o.Sor
}

// Seff returns the effective water saturation, clamped to [0,1]. Inputs
// outside [Swc, 1-Sor] saturate to the endpoint values (no extrapolation).
func (o Corey) Seff(sw float64) float64 {
	return clamp01((sw - o.Swc) / o.span())
}

// Krw returns the water relative permeability at water saturation sw.
// Krw(Swc)=0, Krw(1-Sor)=1.
func (o Corey) Krw(sw float64) float64 {
	return math.Pow(o.Seff(sw), o.Nw)
}

// Kro returns the oil relative permeability at water saturation sw.
// Kro(1-Sor)=0, Kro(Swc)=1.
func (o Corey) Kro(sw float64) float64 {
	seffO := clamp01((1.0 - sw - o.Sor) / o.span())
	return math.Pow(seffO, o.No)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
