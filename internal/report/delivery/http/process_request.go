package http

import (
	"strconv"

	"admissions-srv/internal/model"
	"admissions-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

func (h *handler) processCreateReportRequest(c *gin.Context) (createReportReq, model.Scope, error) {
	var req createReportReq

	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processCreateReportRequest: ShouldBindJSON failed: %v", err)
		return req, model.Scope{}, errWrongBody
	}

	sc := scope.GetScopeFromContext(ctx)
	return req, sc, nil
}

func (h *handler) processGetReportRequest(c *gin.Context) (int64, model.Scope, error) {
	reportID, err := parseIDParam(c, "report_id")
	if err != nil {
		return 0, model.Scope{}, err
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return reportID, sc, nil
}

func (h *handler) processListReportsRequest(c *gin.Context) (listReportsReq, model.Scope, error) {
	var req listReportsReq

	ctx := c.Request.Context()

	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processListReportsRequest: ShouldBindQuery failed: %v", err)
		return req, model.Scope{}, errWrongBody
	}

	sc := scope.GetScopeFromContext(ctx)
	return req, sc, nil
}

func (h *handler) processCompleteReportRequest(c *gin.Context) (completeReportReq, error) {
	var req completeReportReq

	ctx := c.Request.Context()

	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processCompleteReportRequest: ShouldBindJSON failed: %v", err)
		return req, errWrongBody
	}

	if err := req.validate(); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processCompleteReportRequest: validate failed: %v", err)
		return req, errWrongBody
	}

	return req, nil
}
