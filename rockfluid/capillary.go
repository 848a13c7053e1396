// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rockfluid

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Capillary holds the Brooks-Corey capillary-pressure parameters.
type Capillary struct {
	Pe     float64 // entry (displacement) pressure [bar]
	Lambda float64 // Brooks-Corey exponent
}

// DefaultCapillary returns the default capillary closure.
func DefaultCapillary() Capillary {
	return Capillary{Pe: 5.0, Lambda: 2.0}
}

// Init sets the capillary parameters from a parameter list and validates
// them: Pe>=0, Lambda>0.
func (o *Capillary) Init(prms fun.Prms) (err error) {
	c := *o
	for _, p := range prms {
		switch p.N {
		case "pe":
			c.Pe = p.V
		case "lambda":
			c.Lambda = p.V
		default:
			return chk.Err("rockfluid: capillary parameter named %q is incorrect\n", p.N)
		}
	}
	if err = c.Validate(); err != nil {
		return err
	}
	*o = c
	return nil
}

// GetPrms returns the current (or example) parameters.
func (o Capillary) GetPrms(example bool) fun.Prms {
	if example {
		d := DefaultCapillary()
		return fun.Prms{&fun.Prm{N: "pe", V: d.Pe}, &fun.Prm{N: "lambda", V: d.Lambda}}
	}
	return fun.Prms{&fun.Prm{N: "pe", V: o.Pe}, &fun.Prm{N: "lambda", V: o.Lambda}}
}

// Validate checks Pe>=0, Lambda>0, both finite.
func (o Capillary) Validate() error {
	if !finite(o.Pe) || !finite(o.Lambda) {
		return chk.Err("rockfluid: capillary Pe and Lambda must be finite")
	}
	if o.Pe < 0 {
		return chk.Err("rockfluid: capillary entry pressure Pe must be >= 0, got %g", o.Pe)
	}
	if o.Lambda <= 0 {
		return chk.Err("rockfluid: capillary exponent Lambda must be > 0, got %g", o.Lambda)
	}
	return nil
}

// Pc returns the oil-water capillary pressure [bar] at water saturation sw,
// given the Corey closure that defines effective saturation. For 0<Seff<1
// the result is clamped to [0, 500] bar; Pc=0 at Seff>=1, and Pc=1000 at
// Seff<=0, returned without that clamp.
func (o Capillary) Pc(sw float64, scal Corey) float64 {
	seff := scal.Seff(sw)
	if seff >= 1.0 {
		return 0.0
	}
	if seff <= 0.0 {
		return 1000.0 // matches original_source: returned ahead of the [0,500] clamp below
	}
	pc := o.Pe * math.Pow(seff, -1.0/o.Lambda)
	return clampRange(pc, 0, 500)
}

func clampRange(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
