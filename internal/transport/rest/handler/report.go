package handler

import (
	"bytes"
	"net/http"

	"github.com/gorilla/mux"

	"leadstyle/internal/model"
	"leadstyle/internal/service"
)

// ReportHandler handles supervisor report endpoints
type ReportHandler struct {
	reportSvc *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// ListResults handles GET /v1/results
func (h *ReportHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	views, err := h.reportSvc.ListResults(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// GetResult handles GET /v1/results/{respondentId}
func (h *ReportHandler) GetResult(w http.ResponseWriter, r *http.Request) {
	view, err := h.reportSvc.GetResult(r.Context(), mux.Vars(r)["respondentId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetResponses handles GET /v1/results/{respondentId}/responses
func (h *ReportHandler) GetResponses(w http.ResponseWriter, r *http.Request) {
	responses, err := h.reportSvc.GetResponses(r.Context(), mux.Vars(r)["respondentId"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, responses)
}

// Summary handles GET /v1/reports/summary
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reportSvc.Summary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Compare handles POST /v1/reports/compare
func (h *ReportHandler) Compare(w http.ResponseWriter, r *http.Request) {
	var req model.CompareRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entries, err := h.reportSvc.Compare(r.Context(), req.RespondentIDs)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ExportCSV handles GET /v1/reports/export.csv
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	// buffered: a failed export must not leave a partial file
	var buf bytes.Buffer
	if err := h.reportSvc.ExportCSV(r.Context(), &buf); err != nil {
		writeServiceError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="assessment_results.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
