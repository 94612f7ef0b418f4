package scoring

import (
	"math"
	"testing"
)

func TestRankImportances(t *testing.T) {
	entries := []FeatureWeight{
		{Name: "A", Weight: 10},
		{Name: "B", Weight: 30},
		{Name: "C", Weight: 30},
	}

	ranked := RankImportances(entries)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 entries got %d", len(ranked))
	}

	// B and C tie; B keeps its original position ahead of C.
	if ranked[0].Name != "B" || ranked[1].Name != "C" || ranked[2].Name != "A" {
		t.Fatalf("unexpected order: %s, %s, %s", ranked[0].Name, ranked[1].Name, ranked[2].Name)
	}

	if ranked[0].BarPercent != 100 || ranked[1].BarPercent != 100 {
		t.Fatalf("expected full bars for tied max, got %f and %f", ranked[0].BarPercent, ranked[1].BarPercent)
	}
	if math.Abs(ranked[2].BarPercent-100.0/3) > 0.01 {
		t.Fatalf("expected ~33%% bar for A, got %f", ranked[2].BarPercent)
	}

	// Stored weights are never altered by scaling.
	if ranked[2].Weight != 10 {
		t.Fatalf("weight mutated: %f", ranked[2].Weight)
	}
}

func TestRankImportancesZeroWeights(t *testing.T) {
	ranked := RankImportances([]FeatureWeight{
		{Name: "A", Weight: 0},
		{Name: "B", Weight: 0},
	})
	// Max floor of 1 keeps the scale finite for all-zero maps.
	for _, r := range ranked {
		if r.BarPercent != 0 {
			t.Fatalf("expected empty bar got %f", r.BarPercent)
		}
	}
	if ranked[0].Name != "A" || ranked[1].Name != "B" {
		t.Fatalf("tie order not preserved: %s, %s", ranked[0].Name, ranked[1].Name)
	}
}

func TestRankImportancesEmpty(t *testing.T) {
	if got := RankImportances(nil); got != nil {
		t.Fatalf("expected nil got %v", got)
	}
}

func TestMaxWeight(t *testing.T) {
	tests := []struct {
		name     string
		entries  []FeatureWeight
		expected float64
	}{
		{"empty floors at one", nil, 1},
		{"sub-one floors at one", []FeatureWeight{{Name: "A", Weight: 0.4}}, 1},
		{"max wins", []FeatureWeight{{Name: "A", Weight: 3}, {Name: "B", Weight: 7}}, 7},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MaxWeight(tc.entries); got != tc.expected {
				t.Fatalf("expected %f got %f", tc.expected, got)
			}
		})
	}
}

func TestInterpret(t *testing.T) {
	interp := Interpret(0.65, 0.35, 0.65, []FeatureWeight{{Name: "Overtime", Weight: 20}})
	if interp.Tier.Label != "Low Risk" {
		t.Fatalf("expected Low Risk got %s", interp.Tier.Label)
	}
	if interp.LeavePercent != 35 || interp.StayPercent != 65 || interp.ConfidencePercent != 65 {
		t.Fatalf("unexpected percents: leave=%d stay=%d confidence=%d",
			interp.LeavePercent, interp.StayPercent, interp.ConfidencePercent)
	}
	if len(interp.Importances) != 1 || interp.Importances[0].BarPercent != 100 {
		t.Fatalf("unexpected importances: %+v", interp.Importances)
	}
}
