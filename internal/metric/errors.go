package metric

import "errors"

var (
	ErrMetricNotFound   = errors.New("metric not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrNegativeValue    = errors.New("metric values must be non-negative")
	ErrInvalidDate      = errors.New("invalid metric date")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
)
