package analysis

import (
	"fmt"

	"github.com/JvrTrvjn/mobile-shop-app/benchmark/simulation"
)

// ConfigComparison contains a full statistical comparison between two
// cache configurations.
type ConfigComparison struct {
	Config1         string
	Config2         string
	Stats1          *DescriptiveStats
	Stats2          *DescriptiveStats
	MannWhitney     *MannWhitneyResult
	EffectSize      *EffectSize
	BootstrapCI     *BootstrapResult
	Winner          string // Name of the faster configuration, or "tie".
	WinnerConfident bool   // True if statistically significant.
}

// CompareConfigs performs a full statistical comparison of the session
// latencies produced by two configurations.
func CompareConfigs(
	result1, result2 *simulation.AggregateResult,
	bootstrapIterations int,
	confidence float64,
) *ConfigComparison {
	sample1 := result1.SessionMillis
	sample2 := result2.SessionMillis

	mw := MannWhitneyU(sample1, sample2)
	es := ComputeEffectSize(sample1, sample2)
	bs := BootstrapConfidenceInterval(sample1, sample2, bootstrapIterations, confidence)

	// Determine winner: lower mean session latency wins.
	stats1 := Describe(sample1)
	stats2 := Describe(sample2)

	var winner string
	var confident bool

	if stats1.Mean < stats2.Mean {
		winner = result1.ConfigName
		confident = mw.Significant
	} else if stats2.Mean < stats1.Mean {
		winner = result2.ConfigName
		confident = mw.Significant
	} else {
		winner = "tie"
		confident = false
	}

	return &ConfigComparison{
		Config1:         result1.ConfigName,
		Config2:         result2.ConfigName,
		Stats1:          stats1,
		Stats2:          stats2,
		MannWhitney:     mw,
		EffectSize:      es,
		BootstrapCI:     bs,
		Winner:          winner,
		WinnerConfident: confident,
	}
}

// Summary returns a human-readable summary of the comparison.
func (c *ConfigComparison) Summary() string {
	sig := "not statistically significant"
	if c.MannWhitney.Significant {
		sig = fmt.Sprintf("statistically significant (p=%.4f)", c.MannWhitney.PValue)
	}

	return fmt.Sprintf(
		"%s vs %s:\n"+
			"  %s: mean=%.2fms, median=%.2fms, std=%.2fms\n"+
			"  %s: mean=%.2fms, median=%.2fms, std=%.2fms\n"+
			"  Difference: %.2fms/session (%.1f%%)\n"+
			"  Effect size: %.2f (%s)\n"+
			"  Result: %s, %s",
		c.Config1, c.Config2,
		c.Config1, c.Stats1.Mean, c.Stats1.Median, c.Stats1.StdDev,
		c.Config2, c.Stats2.Mean, c.Stats2.Median, c.Stats2.StdDev,
		c.Stats1.Mean-c.Stats2.Mean,
		safePctDiff(c.Stats1.Mean, c.Stats2.Mean),
		c.EffectSize.CohensD, c.EffectSize.Interpretation,
		c.Winner, sig,
	)
}

func safePctDiff(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

// MultiConfigComparison compares multiple configurations against a baseline.
type MultiConfigComparison struct {
	Baseline    string
	Comparisons []*ConfigComparison
}

// CompareAll compares all configurations against the named baseline.
func CompareAll(
	results map[string]*simulation.AggregateResult,
	baseline string,
	bootstrapIterations int,
	confidence float64,
) *MultiConfigComparison {
	baseResult, ok := results[baseline]
	if !ok {
		return nil
	}

	multi := &MultiConfigComparison{
		Baseline: baseline,
	}

	for name, result := range results {
		if name == baseline {
			continue
		}
		comp := CompareConfigs(baseResult, result, bootstrapIterations, confidence)
		multi.Comparisons = append(multi.Comparisons, comp)
	}

	return multi
}
