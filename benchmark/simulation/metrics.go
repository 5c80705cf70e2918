package simulation

import (
	"sort"
)

// Metrics contains computed metrics from simulation results.
type Metrics struct {
	// Core metrics.
	TotalRequests int
	UpstreamCalls int64
	HitRate       float64

	// Session latency distribution, in milliseconds.
	MeanSessionMillis   float64
	MedianSessionMillis float64
	P90SessionMillis    float64
	P99SessionMillis    float64
	MinSessionMillis    float64
	MaxSessionMillis    float64

	// Traffic shape metrics.
	UniqueProducts int
	ViewSkew       float64 // Gini coefficient of product view counts.
	TopProductPct  float64 // Share of views going to the top 10% of products.
}

// ComputeMetrics computes detailed metrics from an aggregate result.
func ComputeMetrics(result *AggregateResult) *Metrics {
	m := &Metrics{
		TotalRequests:  result.TotalRequests,
		UpstreamCalls:  result.UpstreamCalls,
		HitRate:        result.HitRate(),
		UniqueProducts: len(result.ViewsPerID),
	}

	if len(result.SessionMillis) > 0 {
		sorted := make([]float64, len(result.SessionMillis))
		copy(sorted, result.SessionMillis)
		sort.Float64s(sorted)

		var sum float64
		for _, v := range sorted {
			sum += v
		}
		m.MeanSessionMillis = sum / float64(len(sorted))
		m.MinSessionMillis = sorted[0]
		m.MaxSessionMillis = sorted[len(sorted)-1]
		m.MedianSessionMillis = percentile(sorted, 50)
		m.P90SessionMillis = percentile(sorted, 90)
		m.P99SessionMillis = percentile(sorted, 99)
	}

	if len(result.ViewsPerID) > 0 {
		views := 0
		for _, v := range result.ViewsPerID {
			views += v
		}
		m.ViewSkew = computeGini(result.ViewsPerID)
		m.TopProductPct = computeTopProductPct(result.ViewsPerID, views, 0.1)
	}

	return m
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func computeGini(views map[string]int) float64 {
	if len(views) == 0 {
		return 0
	}

	values := make([]int, 0, len(views))
	for _, v := range views {
		values = append(values, v)
	}
	sort.Ints(values)

	n := float64(len(values))
	var sum, cumulativeSum float64
	for i, v := range values {
		sum += float64(v)
		cumulativeSum += float64(i+1) * float64(v)
	}

	if sum == 0 {
		return 0
	}

	// Gini coefficient formula.
	return (2*cumulativeSum)/(n*sum) - (n+1)/n
}

func computeTopProductPct(views map[string]int, total int, topFraction float64) float64 {
	if total == 0 || len(views) == 0 {
		return 0
	}

	counts := make([]int, 0, len(views))
	for _, v := range views {
		counts = append(counts, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))

	topCount := int(float64(len(counts)) * topFraction)
	if topCount < 1 {
		topCount = 1
	}

	var topViews int
	for i := 0; i < topCount && i < len(counts); i++ {
		topViews += counts[i]
	}

	return float64(topViews) / float64(total) * 100
}

// MetricsComparison compares metrics between two configurations.
type MetricsComparison struct {
	Config1 string
	Config2 string

	MeanMillisDiff    float64 // Positive means Config1 is slower.
	MeanMillisDiffPct float64
	HitRateDiff       float64
	UpstreamCallsDiff int64
}

// Compare compares two metrics and returns the differences.
func Compare(m1, m2 *Metrics, name1, name2 string) *MetricsComparison {
	return &MetricsComparison{
		Config1:           name1,
		Config2:           name2,
		MeanMillisDiff:    m1.MeanSessionMillis - m2.MeanSessionMillis,
		MeanMillisDiffPct: safeDiffPct(m1.MeanSessionMillis, m2.MeanSessionMillis),
		HitRateDiff:       m1.HitRate - m2.HitRate,
		UpstreamCallsDiff: m1.UpstreamCalls - m2.UpstreamCalls,
	}
}

func safeDiffPct(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}
