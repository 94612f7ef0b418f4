package scoring

import "sort"

// FeatureWeight is one feature importance entry in its original producer order.
type FeatureWeight struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

// RankedImportance pairs a feature weight with its proportional bar width.
type RankedImportance struct {
	Name       string  `json:"name"`
	Weight     float64 `json:"weight"`
	BarPercent float64 `json:"bar_percent"`
}

// RankImportances sorts importances by weight descending. Equal weights keep
// their original order. Bar widths are scaled against the largest weight with
// a floor of 1, so an all-zero map renders empty bars instead of dividing by
// zero; stored weights are never altered.
func RankImportances(entries []FeatureWeight) []RankedImportance {
	if len(entries) == 0 {
		return nil
	}

	ranked := make([]FeatureWeight, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})

	max := MaxWeight(entries)
	out := make([]RankedImportance, 0, len(ranked))
	for _, e := range ranked {
		out = append(out, RankedImportance{
			Name:       e.Name,
			Weight:     e.Weight,
			BarPercent: e.Weight / max * 100,
		})
	}
	return out
}

// MaxWeight returns the largest weight, never less than 1.
func MaxWeight(entries []FeatureWeight) float64 {
	max := 1.0
	for _, e := range entries {
		if e.Weight > max {
			max = e.Weight
		}
	}
	return max
}
