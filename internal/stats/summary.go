package stats

import (
	mstats "github.com/montanaflynn/stats"
)

// Summary describes a series at a glance.
type Summary struct {
	Total         int
	Mean          float64
	Median        float64
	Best          int
	BestLabel     string
	ActiveBuckets int
}

// Summarize computes totals and averages over every bucket of s, including
// empty ones. An empty series yields a zero Summary.
func Summarize(s Series) Summary {
	if len(s.Values) == 0 {
		return Summary{}
	}

	data := make(mstats.Float64Data, len(s.Values))
	sum := Summary{Total: s.Total()}
	for i, v := range s.Values {
		data[i] = float64(v)
		if v > 0 {
			sum.ActiveBuckets++
		}
		if v > sum.Best {
			sum.Best = v
			sum.BestLabel = s.Labels[i]
		}
	}

	// Errors only signal empty input, which is handled above.
	sum.Mean, _ = mstats.Mean(data)
	sum.Median, _ = mstats.Median(data)
	return sum
}
