package http

import (
	"admissions-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

// @Summary Record campaign metrics
// @Description Record the tracked figures for a campaign day; derived indicators are computed server-side
// @Tags Metric
// @Accept json
// @Produce json
// @Param campaign_id path int true "Campaign ID"
// @Param body body createMetricReq true "Metric figures"
// @Success 200 {object} metricResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/campaigns/{campaign_id}/metrics [post]
func (h *handler) CreateMetric(c *gin.Context) {
	ctx := c.Request.Context()

	req, campaignID, sc, err := h.processCreateMetricRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.CreateMetric: processCreateMetricRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	m, err := h.uc.CreateMetric(ctx, sc, req.toInput(campaignID))
	if err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.CreateMetric: usecase CreateMetric failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newMetricResp(m))
}

// @Summary Update campaign metrics
// @Description Partially update the tracked figures; all derived indicators are recomputed together
// @Tags Metric
// @Accept json
// @Produce json
// @Param metric_id path int true "Metric ID"
// @Param body body updateMetricReq true "Figures to change"
// @Success 200 {object} metricResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/metrics/{metric_id} [put]
func (h *handler) UpdateMetric(c *gin.Context) {
	ctx := c.Request.Context()

	req, metricID, sc, err := h.processUpdateMetricRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.UpdateMetric: processUpdateMetricRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	m, err := h.uc.UpdateMetric(ctx, sc, req.toInput(metricID))
	if err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.UpdateMetric: usecase UpdateMetric failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newMetricResp(m))
}

// @Summary Delete campaign metrics
// @Description Remove one metric record
// @Tags Metric
// @Produce json
// @Param metric_id path int true "Metric ID"
// @Success 204
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/metrics/{metric_id} [delete]
func (h *handler) DeleteMetric(c *gin.Context) {
	ctx := c.Request.Context()

	metricID, sc, err := h.processDeleteMetricRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.DeleteMetric: processDeleteMetricRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	if err := h.uc.DeleteMetric(ctx, sc, metricID); err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.DeleteMetric: usecase DeleteMetric failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.NoContent(c)
}

// @Summary List campaign metrics
// @Description List metric records for a campaign, oldest first, with optional date range
// @Tags Metric
// @Produce json
// @Param campaign_id path int true "Campaign ID"
// @Param start_date query string false "Range start (YYYY-MM-DD)"
// @Param end_date query string false "Range end (YYYY-MM-DD)"
// @Success 200 {object} listMetricsResp
// @Failure 400 {object} response.Resp
// @Failure 404 {object} response.Resp
// @Failure 500 {object} response.Resp
// @Router /api/v1/campaigns/{campaign_id}/metrics [get]
func (h *handler) ListMetrics(c *gin.Context) {
	ctx := c.Request.Context()

	req, campaignID, sc, err := h.processListMetricsRequest(c)
	if err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.ListMetrics: processListMetricsRequest failed: %v", err)
		response.Error(c, err, h.discord)
		return
	}

	metrics, err := h.uc.ListByCampaign(ctx, sc, req.toInput(campaignID))
	if err != nil {
		h.l.Errorf(ctx, "metric.delivery.http.ListMetrics: usecase ListByCampaign failed: %v", err)
		response.Error(c, h.mapError(err), h.discord)
		return
	}

	response.OK(c, h.newListMetricsResp(metrics))
}
