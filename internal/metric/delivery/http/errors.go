package http

import (
	"errors"

	"admissions-srv/internal/metric"
	pkgErrors "admissions-srv/pkg/errors"
)

var (
	errMetricNotFound   = pkgErrors.NewHTTPError(404, "Metric not found")
	errCampaignNotFound = pkgErrors.NewHTTPError(404, "Campaign not found")
	errNegativeValue    = pkgErrors.NewHTTPError(400, "Metric values must be non-negative")
	errInvalidDate      = pkgErrors.NewHTTPError(400, "Invalid date, expected YYYY-MM-DD")
	errInvalidDateRange = pkgErrors.NewHTTPError(400, "End date must not be before start date")
	errInvalidID        = pkgErrors.NewHTTPError(400, "Invalid identifier")
	errWrongBody        = pkgErrors.NewHTTPError(400, "Invalid request body")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, metric.ErrMetricNotFound):
		return errMetricNotFound
	case errors.Is(err, metric.ErrCampaignNotFound):
		return errCampaignNotFound
	case errors.Is(err, metric.ErrNegativeValue):
		return errNegativeValue
	case errors.Is(err, metric.ErrInvalidDate):
		return errInvalidDate
	case errors.Is(err, metric.ErrInvalidDateRange):
		return errInvalidDateRange
	default:
		panic(err)
	}
}
