package insights

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"adpulse/internal/domain"
)

func TestDerive(t *testing.T) {
	d := Derive(domain.PeriodCounters{
		Spend:           100,
		Impressions:     10000,
		Clicks:          250,
		Conversions:     10,
		ConversionValue: 400,
	})

	assert.InDelta(t, 2.5, d.CTR, 0.0001)  // 250/10000 * 100
	assert.InDelta(t, 0.4, d.CPC, 0.0001)  // 100/250
	assert.InDelta(t, 10.0, d.CPA, 0.0001) // 100/10
	assert.InDelta(t, 4.0, d.ROAS, 0.0001) // 400/100
	assert.InDelta(t, 4.0, d.ConversionRate, 0.0001)
}

func TestDerive_ZeroDenominators(t *testing.T) {
	tests := []struct {
		name     string
		counters domain.PeriodCounters
	}{
		{"all zero", domain.PeriodCounters{}},
		{"impressions only", domain.PeriodCounters{Impressions: 5000}},
		{"spend only", domain.PeriodCounters{Spend: 120}},
		{"clicks without conversions", domain.PeriodCounters{Spend: 50, Impressions: 1000, Clicks: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Derive(tt.counters)
			for _, v := range []float64{d.CTR, d.CPC, d.CPA, d.ROAS, d.ConversionRate} {
				assert.False(t, math.IsNaN(v), "no NaN may escape derivation")
				assert.False(t, math.IsInf(v, 0), "no Inf may escape derivation")
				assert.GreaterOrEqual(t, v, 0.0)
			}
		})
	}
}

func TestDerive_NoConversions(t *testing.T) {
	d := Derive(domain.PeriodCounters{Spend: 80, Impressions: 2000, Clicks: 40})
	assert.Equal(t, 0.0, d.CPA, "zero conversions must not produce a misleading CPA")
	assert.Equal(t, 0.0, d.ConversionRate)
	assert.InDelta(t, 2.0, d.CPC, 0.0001)
}

func TestDerive_Idempotent(t *testing.T) {
	c := domain.PeriodCounters{Spend: 33.3, Impressions: 777, Clicks: 21, Conversions: 3, ConversionValue: 99}
	assert.Equal(t, Derive(c), Derive(c))
}

func TestHasConversionValue(t *testing.T) {
	assert.False(t, HasConversionValue(nil))
	assert.False(t, HasConversionValue([]domain.PerformanceRecord{
		{PeriodCounters: domain.PeriodCounters{Spend: 10, Clicks: 5}},
	}))
	assert.True(t, HasConversionValue([]domain.PerformanceRecord{
		{PeriodCounters: domain.PeriodCounters{Spend: 10}},
		{PeriodCounters: domain.PeriodCounters{ConversionValue: 1}},
	}))
	// previous-period value alone keeps the column alive
	assert.True(t, HasConversionValue([]domain.PerformanceRecord{
		{Previous: &domain.PeriodCounters{ConversionValue: 50}},
	}))
}

func TestMetricValue(t *testing.T) {
	c := domain.PeriodCounters{Spend: 200, Impressions: 10000, Clicks: 500, Conversions: 20, ConversionValue: 800}

	assert.Equal(t, 200.0, MetricValue(c, domain.MetricSpend))
	assert.Equal(t, 500.0, MetricValue(c, domain.MetricClicks))
	assert.InDelta(t, 5.0, MetricValue(c, domain.MetricCTR), 0.0001)
	assert.InDelta(t, 0.4, MetricValue(c, domain.MetricCPC), 0.0001)
	assert.InDelta(t, 10.0, MetricValue(c, domain.MetricCPA), 0.0001)
	assert.InDelta(t, 4.0, MetricValue(c, domain.MetricROAS), 0.0001)
	assert.Equal(t, 0.0, MetricValue(c, domain.Metric("bogus")))
}
