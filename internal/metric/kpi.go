package metric

// DerivedMetrics holds the indicators computed from the tracked figures.
// A nil field means the indicator is undefined for the given figures.
type DerivedMetrics struct {
	CostPerApplication *float64
	ConversionRate     *float64
	CostPerEnrolled    *float64
	ROI                *float64
}

// ComputeDerived computes every derived indicator from the tracked
// figures in one pass. Each indicator is nil when its denominator is
// zero, which keeps "no data" distinguishable from "zero effect".
// The campaign budget feeds none of them.
//
//	costPerApplication = advertisingCosts / applications   (applications > 0)
//	conversionRate     = enrolled / applications * 100     (applications > 0)
//	costPerEnrolled    = advertisingCosts / enrolled       (enrolled > 0)
//	roi                = (revenue - advertisingCosts) / advertisingCosts * 100 (advertisingCosts > 0)
func ComputeDerived(applications, enrolled int, advertisingCosts, revenue float64) DerivedMetrics {
	var d DerivedMetrics

	if applications > 0 {
		cpl := advertisingCosts / float64(applications)
		d.CostPerApplication = &cpl

		cr := float64(enrolled) / float64(applications) * 100
		d.ConversionRate = &cr
	}

	if enrolled > 0 {
		cpa := advertisingCosts / float64(enrolled)
		d.CostPerEnrolled = &cpa
	}

	if advertisingCosts > 0 {
		roi := (revenue - advertisingCosts) / advertisingCosts * 100
		d.ROI = &roi
	}

	return d
}
