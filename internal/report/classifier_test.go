package report

import "testing"

func TestClassifyBoundaryExactness(t *testing.T) {
	// Each threshold classifies into the tier whose inclusive upper bound
	// it is; a hair above falls into the next tier.
	boundaries := []struct {
		threshold float64
		at        Tier
		above     Tier
	}{
		{50, TierIdeal, TierAcceptable},
		{60, TierAcceptable, TierFair},
		{70, TierFair, TierConcerning},
		{80, TierConcerning, TierVeryConcerning},
		{90, TierVeryConcerning, TierSevereRisk},
		{95, TierSevereRisk, TierUnacceptable},
		{100, TierUnacceptable, TierCritical},
	}

	for _, b := range boundaries {
		if got := Classify(b.threshold, 1000, b.threshold*10); got != b.at {
			t.Errorf("Classify(%v) = %v, want %v", b.threshold, got, b.at)
		}
		if got := Classify(b.threshold+0.01, 1000, b.threshold*10); got != b.above {
			t.Errorf("Classify(%v) = %v, want %v", b.threshold+0.01, got, b.above)
		}
	}
}

func TestClassifyZeroIncome(t *testing.T) {
	tests := []struct {
		name            string
		ratio           float64
		income, expense float64
		want            Tier
	}{
		{name: "no income no spending", ratio: 0, income: 0, expense: 0, want: TierNoSpending},
		{name: "no income with spending", ratio: 0, income: 0, expense: 100, want: TierCritical},
		{name: "income without spending", ratio: 0, income: 500, expense: 0, want: TierNoSpending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ratio, tt.income, tt.expense); got != tt.want {
				t.Errorf("Classify(%v, %v, %v) = %v, want %v", tt.ratio, tt.income, tt.expense, got, tt.want)
			}
		})
	}
}

func TestClassifySeverityMonotonic(t *testing.T) {
	order := []Tier{
		TierNoSpending, TierIdeal, TierAcceptable, TierFair, TierConcerning,
		TierVeryConcerning, TierSevereRisk, TierUnacceptable, TierCritical,
	}
	for i := 1; i < len(order); i++ {
		if order[i].Severity() <= order[i-1].Severity() {
			t.Errorf("severity not monotonic: %v (%d) <= %v (%d)",
				order[i], order[i].Severity(), order[i-1], order[i-1].Severity())
		}
	}
}

func TestClassifyTarget(t *testing.T) {
	tests := []struct {
		pct  float64
		want Tier
	}{
		{30, TierIdeal},
		{50, TierIdeal},
		{60, TierAcceptable},
		{70, TierFair},
		{80, TierConcerning},
		{90, TierVeryConcerning},
		{95, TierSevereRisk},
		// Targets above 95 read as unacceptable; a pure target has no
		// critical degenerate case.
		{96, TierUnacceptable},
		{120, TierUnacceptable},
	}

	for _, tt := range tests {
		if got := ClassifyTarget(tt.pct); got != tt.want {
			t.Errorf("ClassifyTarget(%v) = %v, want %v", tt.pct, got, tt.want)
		}
	}
}

func TestTierLabels(t *testing.T) {
	for tier := TierNoSpending; tier <= TierCritical; tier++ {
		if tier.Label() == "Unknown" {
			t.Errorf("tier %d has no label", tier)
		}
	}
	if Tier(99).Label() != "Unknown" {
		t.Error("out-of-range tier should label as Unknown")
	}
}
