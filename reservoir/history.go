// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package reservoir

// RateRecord is one committed sub-step's production/injection summary,
// appended to the simulator's append-only rate history. Grounded on
// original_source/.../well.rs's TimePointRates and the teacher's out/
// package convention of one flat record per reported time.
type RateRecord struct {
	TimeDays float64

	OilProducedSurfaceM3     float64 // cumulative
	OilProducedReservoirM3   float64 // cumulative
	WaterProducedSurfaceM3   float64
	WaterProducedReservoirM3 float64
	WaterInjectedSurfaceM3   float64
	WaterInjectedReservoirM3 float64

	OilRateSurfaceM3Day       float64 // instantaneous, this sub-step
	WaterRateSurfaceM3Day     float64
	InjectionRateSurfaceM3Day float64

	AveragePressureBar      float64
	AverageWaterSaturation  float64
	MaterialBalanceResidual float64

	DtDays   float64
	Attempts int
}

// history is the simulator's append-only rate-history buffer plus the
// running cumulative totals it needs to produce the next RateRecord.
type history struct {
	records []RateRecord

	cumOilProdSurface, cumOilProdReservoir     float64
	cumWaterProdSurface, cumWaterProdReservoir float64
	cumWaterInjSurface, cumWaterInjReservoir   float64
}

func (h *history) append(timeDays float64, oilRateSurface, waterRateSurface, injRateSurface, oilRateReservoir, waterRateReservoir, injRateReservoir, dtDays float64, avgPressure, avgSw, residual float64, attempts int) {
	h.cumOilProdSurface += oilRateSurface * dtDays
	h.cumOilProdReservoir += oilRateReservoir * dtDays
	h.cumWaterProdSurface += waterRateSurface * dtDays
	h.cumWaterProdReservoir += waterRateReservoir * dtDays
	h.cumWaterInjSurface += injRateSurface * dtDays
	h.cumWaterInjReservoir += injRateReservoir * dtDays

	h.records = append(h.records, RateRecord{
		TimeDays: timeDays,

		OilProducedSurfaceM3:     h.cumOilProdSurface,
		OilProducedReservoirM3:   h.cumOilProdReservoir,
		WaterProducedSurfaceM3:   h.cumWaterProdSurface,
		WaterProducedReservoirM3: h.cumWaterProdReservoir,
		WaterInjectedSurfaceM3:   h.cumWaterInjSurface,
		WaterInjectedReservoirM3: h.cumWaterInjReservoir,

		OilRateSurfaceM3Day:       oilRateSurface,
		WaterRateSurfaceM3Day:     waterRateSurface,
		InjectionRateSurfaceM3Day: injRateSurface,

		AveragePressureBar:      avgPressure,
		AverageWaterSaturation:  avgSw,
		MaterialBalanceResidual: residual,

		DtDays:   dtDays,
		Attempts: attempts,
	})
}

// snapshot returns a defensive copy of the recorded history.
func (h *history) snapshot() []RateRecord {
	out := make([]RateRecord, len(h.records))
	copy(out, h.records)
	return out
}
