package http

import (
	"encoding/json"
	"errors"

	"admissions-srv/internal/model"
	"admissions-srv/internal/report"
	"admissions-srv/pkg/paginator"
	"admissions-srv/pkg/util"
)

type selectedCampaignReq struct {
	CampaignID      int64    `json:"campaignId" binding:"required,gt=0"`
	SelectedMetrics []string `json:"selectedMetrics" binding:"required,min=1"`
}

type reportParametersReq struct {
	SelectedCampaigns []selectedCampaignReq `json:"selectedCampaigns" binding:"required,min=1,dive"`
	ReportFields      []string              `json:"reportFields" binding:"required,min=1"`
	StartDate         string                `json:"startDate"`
	EndDate           string                `json:"endDate"`
}

type createReportReq struct {
	Name       string              `json:"name" binding:"required"`
	Type       string              `json:"type" binding:"required"`
	Parameters reportParametersReq `json:"parameters" binding:"required"`
}

func (r createReportReq) toInput() report.CreateReportInput {
	params := report.ReportParameters{
		SelectedCampaigns: make([]report.SelectedCampaign, 0, len(r.Parameters.SelectedCampaigns)),
		ReportFields:      r.Parameters.ReportFields,
		StartDate:         r.Parameters.StartDate,
		EndDate:           r.Parameters.EndDate,
	}
	for _, sel := range r.Parameters.SelectedCampaigns {
		params.SelectedCampaigns = append(params.SelectedCampaigns, report.SelectedCampaign{
			CampaignID:      sel.CampaignID,
			SelectedMetrics: sel.SelectedMetrics,
		})
	}

	return report.CreateReportInput{
		Name:       r.Name,
		Type:       r.Type,
		Parameters: params,
	}
}

type listReportsReq struct {
	Type   string `form:"type"`
	Status string `form:"status"`
	paginator.PaginateQuery
}

func (r listReportsReq) toInput() report.ListReportsInput {
	return report.ListReportsInput{
		Type:          r.Type,
		Status:        r.Status,
		PaginateQuery: r.PaginateQuery,
	}
}

// completeReportReq is the worker callback payload. The field names follow
// the worker task contract.
type completeReportReq struct {
	ReportID int64  `json:"reportId" binding:"required"`
	TaskID   string `json:"taskId"`
	Status   string `json:"status" binding:"required"`
	FilePath string `json:"filePath"`
	Error    string `json:"error"`
}

// validate - Custom validation
func (r completeReportReq) validate() error {
	status := model.ReportStatus(r.Status)
	if !status.IsTerminal() {
		return errors.New("status must be completed or cancelled")
	}
	if status == model.ReportStatusCompleted && r.FilePath == "" {
		return errors.New("filePath is required when status is completed")
	}
	return nil
}

func (r completeReportReq) toInput() report.FinalizeReportInput {
	return report.FinalizeReportInput{
		ReportID:      r.ReportID,
		TaskID:        r.TaskID,
		Status:        model.ReportStatus(r.Status),
		FilePath:      r.FilePath,
		FailureReason: r.Error,
	}
}

type reportResp struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Type          string          `json:"type"`
	Status        string          `json:"status"`
	TaskID        string          `json:"task_id"`
	Parameters    json.RawMessage `json:"parameters"`
	FilePath      *string         `json:"file_path"`
	FailureReason *string         `json:"failure_reason"`
	RequestedBy   string          `json:"requested_by"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
	CompletedAt   *string         `json:"completed_at"`
}

func (h *handler) newReportResp(rp *model.Report) reportResp {
	resp := reportResp{
		ID:            rp.ID,
		Name:          rp.Name,
		Type:          rp.Type,
		Status:        string(rp.Status),
		TaskID:        rp.TaskID,
		Parameters:    rp.Parameters,
		FilePath:      rp.FilePath,
		FailureReason: rp.FailureReason,
		RequestedBy:   rp.RequestedBy,
		CreatedAt:     util.DateTimeToStr(rp.CreatedAt),
		UpdatedAt:     util.DateTimeToStr(rp.UpdatedAt),
	}
	if rp.CompletedAt != nil {
		completedAt := util.DateTimeToStr(*rp.CompletedAt)
		resp.CompletedAt = &completedAt
	}
	return resp
}

type listReportsResp struct {
	Items     []reportResp                `json:"items"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func (h *handler) newListReportsResp(out report.ListReportsOutput) listReportsResp {
	return listReportsResp{
		Items:     util.MapSlice(out.Reports, h.newReportResp),
		Paginator: out.Paginator.ToResponse(),
	}
}

type downloadReportResp struct {
	ReportID    int64  `json:"report_id"`
	FileName    string `json:"file_name"`
	DownloadURL string `json:"download_url"`
	ExpiresAt   string `json:"expires_at"`
}

func (h *handler) newDownloadReportResp(out report.DownloadReportOutput) downloadReportResp {
	return downloadReportResp{
		ReportID:    out.ReportID,
		FileName:    out.FileName,
		DownloadURL: out.DownloadURL,
		ExpiresAt:   util.DateTimeToStr(out.ExpiresAt),
	}
}

type completeReportResp struct {
	ID           int64  `json:"id"`
	Status       string `json:"status"`
	AlreadyFinal bool   `json:"already_final"`
}

func (h *handler) newCompleteReportResp(out report.FinalizeReportOutput) completeReportResp {
	return completeReportResp{
		ID:           out.Report.ID,
		Status:       string(out.Report.Status),
		AlreadyFinal: out.AlreadyFinal,
	}
}
