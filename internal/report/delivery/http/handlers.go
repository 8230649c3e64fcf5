package http

import (
	"admissions-srv/internal/report"
	"admissions-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary Request a report
// @Description Validate and freeze the report request, then queue it for asynchronous generation
// @Tags Report
// @Accept json
// @Produce json
// @Param body body createReportReq true "Report request"
// @Success 202 {object} reportResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports [post]
func (h *handler) CreateReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processCreateReportRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.CreateReport: processCreateReportRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	rp, err := h.uc.CreateReport(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.CreateReport: usecase CreateReport failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.Accepted(c, h.newReportResp(rp))
}

// @Summary Get a report
// @Description Fetch one report request with its generation state
// @Tags Report
// @Produce json
// @Param report_id path int true "Report ID"
// @Success 200 {object} reportResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/{report_id} [get]
func (h *handler) GetReport(c *gin.Context) {
	ctx := c.Request.Context()

	reportID, sc, err := h.processGetReportRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GetReport: processGetReportRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	rp, err := h.uc.GetReport(ctx, sc, report.GetReportInput{ReportID: reportID})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.GetReport: usecase GetReport failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newReportResp(rp))
}

// @Summary List reports
// @Description List report requests, optionally filtered by type and status
// @Tags Report
// @Produce json
// @Param type query string false "Report type"
// @Param status query string false "Report status"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} listReportsResp
// @Failure 400 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports [get]
func (h *handler) ListReports(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processListReportsRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListReports: processListReportsRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	out, err := h.uc.ListReports(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ListReports: usecase ListReports failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newListReportsResp(out))
}

// @Summary Download a report
// @Description Issue a short-lived presigned URL for the generated file of a completed report
// @Tags Report
// @Produce json
// @Param report_id path int true "Report ID"
// @Success 200 {object} downloadReportResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 422 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/{report_id}/download [get]
func (h *handler) DownloadReport(c *gin.Context) {
	ctx := c.Request.Context()

	reportID, sc, err := h.processGetReportRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DownloadReport: processGetReportRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	out, err := h.uc.DownloadReport(ctx, sc, report.DownloadReportInput{ReportID: reportID})
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DownloadReport: usecase DownloadReport failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newDownloadReportResp(out))
}

// @Summary Delete a report
// @Description Delete a report request and its generated file
// @Tags Report
// @Param report_id path int true "Report ID"
// @Success 204
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/{report_id} [delete]
func (h *handler) DeleteReport(c *gin.Context) {
	ctx := c.Request.Context()

	reportID, sc, err := h.processGetReportRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DeleteReport: processGetReportRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	if err := h.uc.DeleteReport(ctx, sc, report.DeleteReportInput{ReportID: reportID}); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.DeleteReport: usecase DeleteReport failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.NoContent(c)
}

// @Summary Report completion webhook
// @Description Worker callback marking a report as completed or cancelled; duplicate callbacks are absorbed
// @Tags Report
// @Accept json
// @Produce json
// @Param body body completeReportReq true "Completion payload"
// @Success 200 {object} completeReportResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/reports/webhooks/completion [post]
func (h *handler) CompleteReport(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCompleteReportRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.CompleteReport: processCompleteReportRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	out, err := h.uc.FinalizeReport(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.CompleteReport: usecase FinalizeReport failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newCompleteReportResp(out))
}
