package http

import (
	"errors"

	"admissions-srv/internal/report"
	pkgErrors "admissions-srv/pkg/errors"
)

var (
	errReportNotFound     = pkgErrors.NewHTTPError(404, "Report not found")
	errCampaignNotFound   = pkgErrors.NewHTTPError(404, "Campaign not found")
	errReportNotReady     = pkgErrors.NewHTTPError(422, "Report is not ready for download")
	errInvalidName        = pkgErrors.NewHTTPError(400, "Report name must be between 3 and 255 characters")
	errInvalidType        = pkgErrors.NewHTTPError(400, "Report type must be between 3 and 50 characters")
	errInvalidParameters  = pkgErrors.NewHTTPError(400, "Report parameters are invalid")
	errUnknownMetricField = pkgErrors.NewHTTPError(400, "Unknown metric field requested")
	errInvalidDate        = pkgErrors.NewHTTPError(400, "Invalid date, expected YYYY-MM-DD")
	errInvalidDateRange   = pkgErrors.NewHTTPError(400, "End date must not be before start date")
	errInvalidStatus      = pkgErrors.NewHTTPError(400, "Invalid report status")
	errFilePathRequired   = pkgErrors.NewHTTPError(400, "File path is required for completed reports")
	errInvalidID          = pkgErrors.NewHTTPError(400, "Invalid identifier")
	errWrongBody          = pkgErrors.NewHTTPError(400, "Invalid request body")
)

func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, report.ErrReportNotFound):
		return errReportNotFound
	case errors.Is(err, report.ErrCampaignNotFound):
		return errCampaignNotFound
	case errors.Is(err, report.ErrReportNotReady):
		return errReportNotReady
	case errors.Is(err, report.ErrInvalidName):
		return errInvalidName
	case errors.Is(err, report.ErrInvalidType):
		return errInvalidType
	case errors.Is(err, report.ErrInvalidParameters):
		return errInvalidParameters
	case errors.Is(err, report.ErrUnknownMetricField):
		return errUnknownMetricField
	case errors.Is(err, report.ErrInvalidDate):
		return errInvalidDate
	case errors.Is(err, report.ErrInvalidDateRange):
		return errInvalidDateRange
	case errors.Is(err, report.ErrInvalidStatus):
		return errInvalidStatus
	case errors.Is(err, report.ErrFilePathRequired):
		return errFilePathRequired
	default:
		panic(err)
	}
}
