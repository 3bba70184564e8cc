package tcpexport

import (
	"math"

	"tcp-export/metalyzer"
)

// AggregatedSample is one downsampled bucket of the measurement stream,
// labeled by the right edge of its time interval.
type AggregatedSample struct {
	TSeconds float64            `json:"t_seconds"`
	Values   map[string]float64 `json:"values"`
}

// aggregateSkipColumns are annotations, not plottable series.
var aggregateSkipColumns = map[string]bool{
	"Phase":    true,
	"Marqueur": true,
}

// AggregateMeasurements buckets samples into fixed-width time intervals
// and averages each numeric column per bucket. Null and non-numeric cells
// do not contribute; a column with no numeric data in a bucket is omitted
// from that bucket. Averages are rounded to two decimals. Relies on the
// source guarantee that elapsed time never decreases.
func AggregateMeasurements(measurements []metalyzer.Sample, intervalSec int) []AggregatedSample {
	if len(measurements) == 0 || intervalSec <= 0 {
		return nil
	}

	out := make([]AggregatedSample, 0, int(measurements[len(measurements)-1].ElapsedSeconds)/intervalSec+1)
	acc := map[string][]float64{}
	count := 0
	currentEnd := 0.0

	flush := func(bucketEnd float64) {
		if count == 0 {
			return
		}
		agg := AggregatedSample{TSeconds: bucketEnd, Values: make(map[string]float64, len(acc))}
		for key, vals := range acc {
			if len(vals) == 0 {
				continue
			}
			sum := 0.0
			for _, v := range vals {
				sum += v
			}
			agg.Values[key] = math.Round(sum/float64(len(vals))*100) / 100
		}
		out = append(out, agg)
	}

	for _, m := range measurements {
		bucketEnd := math.Floor(m.ElapsedSeconds/float64(intervalSec))*float64(intervalSec) + float64(intervalSec)
		if bucketEnd != currentEnd {
			flush(currentEnd)
			currentEnd = bucketEnd
			acc = map[string][]float64{}
			count = 0
		}
		for key, val := range m.Values {
			if aggregateSkipColumns[key] {
				continue
			}
			if f, ok := val.Float64(); ok {
				acc[key] = append(acc[key], f)
			}
		}
		count++
	}
	flush(currentEnd)
	return out
}
