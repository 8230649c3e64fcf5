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

func (h *handler) processCreateMetricRequest(c *gin.Context) (createMetricReq, int64, model.Scope, error) {
	var req createMetricReq

	ctx := c.Request.Context()

	campaignID, err := parseIDParam(c, "campaign_id")
	if err != nil {
		return req, 0, model.Scope{}, err
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.processCreateMetricRequest: ShouldBindJSON failed: %v", err)
		return req, 0, model.Scope{}, errWrongBody
	}

	sc := scope.GetScopeFromContext(ctx)
	return req, campaignID, sc, nil
}

func (h *handler) processUpdateMetricRequest(c *gin.Context) (updateMetricReq, int64, model.Scope, error) {
	var req updateMetricReq

	ctx := c.Request.Context()

	metricID, err := parseIDParam(c, "metric_id")
	if err != nil {
		return req, 0, model.Scope{}, err
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.processUpdateMetricRequest: ShouldBindJSON failed: %v", err)
		return req, 0, model.Scope{}, errWrongBody
	}

	sc := scope.GetScopeFromContext(ctx)
	return req, metricID, sc, nil
}

func (h *handler) processDeleteMetricRequest(c *gin.Context) (int64, model.Scope, error) {
	metricID, err := parseIDParam(c, "metric_id")
	if err != nil {
		return 0, model.Scope{}, err
	}

	sc := scope.GetScopeFromContext(c.Request.Context())
	return metricID, sc, nil
}

func (h *handler) processListMetricsRequest(c *gin.Context) (listMetricsReq, int64, model.Scope, error) {
	var req listMetricsReq

	ctx := c.Request.Context()

	campaignID, err := parseIDParam(c, "campaign_id")
	if err != nil {
		return req, 0, model.Scope{}, err
	}

	if err := c.ShouldBindQuery(&req); err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.processListMetricsRequest: ShouldBindQuery failed: %v", err)
		return req, 0, model.Scope{}, errWrongBody
	}

	sc := scope.GetScopeFromContext(ctx)
	return req, campaignID, sc, nil
}
