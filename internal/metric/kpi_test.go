package metric

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeDerived(t *testing.T) {
	t.Run("all denominators positive", func(t *testing.T) {
		d := ComputeDerived(200, 50, 1000, 4000)

		if d.CostPerApplication == nil || !almostEqual(*d.CostPerApplication, 5) {
			t.Errorf("unexpected cost per application: %v", d.CostPerApplication)
		}
		if d.ConversionRate == nil || !almostEqual(*d.ConversionRate, 25) {
			t.Errorf("unexpected conversion rate: %v", d.ConversionRate)
		}
		if d.CostPerEnrolled == nil || !almostEqual(*d.CostPerEnrolled, 20) {
			t.Errorf("unexpected cost per enrolled: %v", d.CostPerEnrolled)
		}
		if d.ROI == nil || !almostEqual(*d.ROI, 300) {
			t.Errorf("unexpected return on investment: %v", d.ROI)
		}
	})

	t.Run("zero applications leaves lead indicators undefined", func(t *testing.T) {
		d := ComputeDerived(0, 0, 1000, 4000)

		if d.CostPerApplication != nil {
			t.Errorf("expected nil cost per application, got %v", *d.CostPerApplication)
		}
		if d.ConversionRate != nil {
			t.Errorf("expected nil conversion rate, got %v", *d.ConversionRate)
		}
		if d.CostPerEnrolled != nil {
			t.Errorf("expected nil cost per enrolled, got %v", *d.CostPerEnrolled)
		}
		if d.ROI == nil || !almostEqual(*d.ROI, 300) {
			t.Errorf("unexpected return on investment: %v", d.ROI)
		}
	})

	t.Run("zero costs leaves roi undefined but keeps rates", func(t *testing.T) {
		d := ComputeDerived(100, 10, 0, 500)

		if d.ROI != nil {
			t.Errorf("expected nil return on investment, got %v", *d.ROI)
		}
		if d.CostPerApplication == nil || !almostEqual(*d.CostPerApplication, 0) {
			t.Errorf("unexpected cost per application: %v", d.CostPerApplication)
		}
		if d.ConversionRate == nil || !almostEqual(*d.ConversionRate, 10) {
			t.Errorf("unexpected conversion rate: %v", d.ConversionRate)
		}
		if d.CostPerEnrolled == nil || !almostEqual(*d.CostPerEnrolled, 0) {
			t.Errorf("unexpected cost per enrolled: %v", d.CostPerEnrolled)
		}
	})

	t.Run("zero enrolled leaves acquisition cost undefined", func(t *testing.T) {
		d := ComputeDerived(100, 0, 1000, 0)

		if d.CostPerEnrolled != nil {
			t.Errorf("expected nil cost per enrolled, got %v", *d.CostPerEnrolled)
		}
		if d.ConversionRate == nil || !almostEqual(*d.ConversionRate, 0) {
			t.Errorf("unexpected conversion rate: %v", d.ConversionRate)
		}
		if d.ROI == nil || !almostEqual(*d.ROI, -100) {
			t.Errorf("unexpected return on investment: %v", d.ROI)
		}
	})

	t.Run("revenue alone defines nothing", func(t *testing.T) {
		d := ComputeDerived(0, 0, 0, 500)

		if d.CostPerApplication != nil || d.ConversionRate != nil || d.CostPerEnrolled != nil || d.ROI != nil {
			t.Errorf("expected all indicators nil, got %+v", d)
		}
	})
}

func TestIsKnownField(t *testing.T) {
	for _, f := range KnownFields {
		if !IsKnownField(f) {
			t.Errorf("expected %q to be known", f)
		}
	}
	for _, f := range []string{"", "budget", "campaignBudget", "TotalApplications", "cost_per_lead"} {
		if IsKnownField(f) {
			t.Errorf("expected %q to be unknown", f)
		}
	}
}
