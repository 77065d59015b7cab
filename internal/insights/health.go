package insights

import "adpulse/internal/domain"

// Thresholds are the policy constants behind health classification. They are
// configuration, not derived values.
type Thresholds struct {
	// SpendFloor is the spend above which zero conversions becomes a problem.
	SpendFloor float64
	// ClickFloor is the click count below which spend without conversions
	// counts as getting no results.
	ClickFloor float64
	// CTRFloor is the CTR percentage separating good engagement from low.
	CTRFloor float64
	// ImpressionFloor is the volume above which a low CTR is significant.
	ImpressionFloor float64
}

// DefaultThresholds returns the stock policy: $50 spend, 10 clicks, 1% CTR,
// 1000 impressions.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SpendFloor:      50,
		ClickFloor:      10,
		CTRFloor:        1,
		ImpressionFloor: 1000,
	}
}

type healthRule struct {
	match  func(agg domain.AggregateRecord, d domain.DerivedMetrics) bool
	result domain.HealthResult
}

// Classifier evaluates an ordered rule list top to bottom; the first match
// wins. Rule order is part of the contract: "conversions > 0" must fire
// before the low-CTR rule, so a converting entity with poor CTR still reads
// as getting results.
type Classifier struct {
	thresholds Thresholds
	rules      []healthRule
}

// NewClassifier builds a classifier with the given thresholds.
func NewClassifier(t Thresholds) *Classifier {
	c := &Classifier{thresholds: t}
	c.rules = []healthRule{
		{
			// No spend is neutral, not alarming.
			match: func(agg domain.AggregateRecord, _ domain.DerivedMetrics) bool {
				return agg.Spend == 0
			},
			result: domain.HealthResult{Status: domain.HealthGreat, Reason: domain.ReasonLookingGood},
		},
		{
			match: func(agg domain.AggregateRecord, _ domain.DerivedMetrics) bool {
				return agg.Spend > t.SpendFloor && agg.Conversions == 0 && agg.Clicks < t.ClickFloor
			},
			result: domain.HealthResult{Status: domain.HealthProblem, Reason: domain.ReasonNoResults},
		},
		{
			match: func(agg domain.AggregateRecord, _ domain.DerivedMetrics) bool {
				return agg.Conversions > 0
			},
			result: domain.HealthResult{Status: domain.HealthGreat, Reason: domain.ReasonGettingResults},
		},
		{
			match: func(_ domain.AggregateRecord, d domain.DerivedMetrics) bool {
				return d.CTR > t.CTRFloor
			},
			result: domain.HealthResult{Status: domain.HealthGreat, Reason: domain.ReasonGoodEngagement},
		},
		{
			match: func(agg domain.AggregateRecord, d domain.DerivedMetrics) bool {
				return d.CTR < t.CTRFloor && agg.Impressions > t.ImpressionFloor
			},
			result: domain.HealthResult{Status: domain.HealthAttention, Reason: domain.ReasonLowCTR},
		},
	}
	return c
}

// Classify evaluates the rules against an aggregate. The fallthrough result
// is {attention, no_conversions}.
func (c *Classifier) Classify(agg domain.AggregateRecord) domain.HealthResult {
	derived := Derive(agg.PeriodCounters)
	for _, rule := range c.rules {
		if rule.match(agg, derived) {
			return rule.result
		}
	}
	return domain.HealthResult{Status: domain.HealthAttention, Reason: domain.ReasonNoConversions}
}

// ClassifyAccount rolls entity health up to the account level. Only active
// entities count toward problems and attention; paused or archived entities
// cannot drag the account down.
func ClassifyAccount(entities []domain.EntityHealth) domain.AccountStatus {
	if len(entities) == 0 {
		return domain.AccountNewUser
	}

	attention := 0
	for _, e := range entities {
		if e.Status != domain.StatusActive {
			continue
		}
		if e.Health.Status == domain.HealthProblem {
			return domain.AccountIssues
		}
		if e.Health.Status == domain.HealthAttention {
			attention++
		}
	}
	if attention >= 2 {
		return domain.AccountAttention
	}
	return domain.AccountGood
}
