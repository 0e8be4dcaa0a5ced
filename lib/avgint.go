// Package lib supply utilities shared by allocation strategies and
// the memory manager.
package lib

import "math"

// AverageInt64 keeps running statistics over a stream of int64
// samples, allocation sizes in this module, without retaining the
// samples. Add is O(1) so it is safe to call from allocation paths.
type AverageInt64 struct {
	n      int64
	minval int64
	maxval int64
	sum    int64
	sumsq  float64
	init   bool
}

// Add a sample.
func (av *AverageInt64) Add(sample int64) {
	av.n++
	av.sum += sample
	f := float64(sample)
	av.sumsq += f * f
	if av.init == false || sample < av.minval {
		av.minval = sample
		av.init = true
	}
	if av.maxval < sample {
		av.maxval = sample
	}
}

// Samples return number of samples accumulated so far.
func (av *AverageInt64) Samples() int64 {
	return av.n
}

// Min return smallest sample seen so far.
func (av *AverageInt64) Min() int64 {
	return av.minval
}

// Max return largest sample seen so far.
func (av *AverageInt64) Max() int64 {
	return av.maxval
}

// Mean return statistical mean of samples.
func (av *AverageInt64) Mean() int64 {
	if av.n == 0 {
		return 0
	}
	return int64(float64(av.sum) / float64(av.n))
}

// Variance return statistical variance of samples.
func (av *AverageInt64) Variance() float64 {
	if av.n == 0 {
		return 0
	}
	nf, meanf := float64(av.n), float64(av.Mean())
	return (av.sumsq / nf) - (meanf * meanf)
}

// SD return standard deviation of samples.
func (av *AverageInt64) SD() float64 {
	if av.n == 0 {
		return 0
	}
	return math.Sqrt(av.Variance())
}

// Stats return a snapshot of the running statistics, suitable for
// merging into strategy and manager stats maps.
func (av *AverageInt64) Stats() map[string]interface{} {
	return map[string]interface{}{
		"samples":  av.Samples(),
		"min":      av.Min(),
		"max":      av.Max(),
		"mean":     av.Mean(),
		"variance": av.Variance(),
		"stddev":   av.SD(),
	}
}
