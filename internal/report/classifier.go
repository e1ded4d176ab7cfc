package report

// Tier is a discrete budget-health severity classification. The numeric
// value is the severity ordinal: it increases monotonically with badness,
// so tiers compare directly in alerting code.
type Tier int

const (
	TierNoSpending Tier = iota
	TierIdeal
	TierAcceptable
	TierFair
	TierConcerning
	TierVeryConcerning
	TierSevereRisk
	TierUnacceptable
	TierCritical
)

var tierLabels = map[Tier]string{
	TierNoSpending:     "No spending",
	TierIdeal:          "Ideal",
	TierAcceptable:     "Acceptable",
	TierFair:           "Fair",
	TierConcerning:     "Concerning",
	TierVeryConcerning: "Very concerning",
	TierSevereRisk:     "Severe risk",
	TierUnacceptable:   "Unacceptable",
	TierCritical:       "Critical - action required",
}

// Label returns the display label for the tier.
func (t Tier) Label() string {
	if label, ok := tierLabels[t]; ok {
		return label
	}
	return "Unknown"
}

// Severity returns the tier's ordinal for comparisons.
func (t Tier) Severity() int { return int(t) }

// ratioBuckets maps a ratio to a tier by inclusive upper bound, ascending.
var ratioBuckets = []struct {
	upper float64
	tier  Tier
}{
	{50, TierIdeal},
	{60, TierAcceptable},
	{70, TierFair},
	{80, TierConcerning},
	{90, TierVeryConcerning},
	{95, TierSevereRisk},
	{100, TierUnacceptable},
}

// Classify maps the monthly expense ratio to a budget-health tier. Rules
// apply in order, first match wins:
//
//  1. no expenses and a non-positive ratio classify as TierNoSpending
//  2. any spending against zero income is TierCritical, regardless of ratio
//  3. the ratio buckets apply with inclusive upper bounds
//  4. anything above 100 is TierCritical
func Classify(ratioPct, monthlyIncome, monthlyExpense float64) Tier {
	if ratioPct <= 0 && monthlyExpense == 0 {
		return TierNoSpending
	}
	if monthlyIncome == 0 && monthlyExpense > 0 {
		return TierCritical
	}
	for _, b := range ratioBuckets {
		if ratioPct <= b.upper {
			return b.tier
		}
	}
	return TierCritical
}

// ClassifyTarget labels a stored goal's target percentage with the same
// buckets. A target is aspirational, so the zero-income and no-spending
// cases do not apply, and everything above the 95 bucket reads as
// TierUnacceptable rather than critical.
func ClassifyTarget(targetPct float64) Tier {
	for _, b := range ratioBuckets[:len(ratioBuckets)-1] {
		if targetPct <= b.upper {
			return b.tier
		}
	}
	return TierUnacceptable
}
