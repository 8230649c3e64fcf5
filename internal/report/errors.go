package report

import "errors"

var (
	ErrReportNotFound     = errors.New("report not found")
	ErrReportNotReady     = errors.New("report file is not ready for download")
	ErrInvalidName        = errors.New("report name must be between 3 and 255 characters")
	ErrInvalidType        = errors.New("report type must be between 3 and 50 characters")
	ErrInvalidParameters  = errors.New("report parameters are invalid")
	ErrUnknownMetricField = errors.New("unknown metric field requested")
	ErrCampaignNotFound   = errors.New("campaign not found")
	ErrInvalidDate        = errors.New("invalid date format, expected YYYY-MM-DD")
	ErrInvalidDateRange   = errors.New("start date must not be after end date")
	ErrInvalidStatus      = errors.New("invalid report status")
	ErrFilePathRequired   = errors.New("file path is required for completed reports")
)
