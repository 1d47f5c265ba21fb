package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/DRSN-tech/pos-backend/internal/usecase"
	"github.com/DRSN-tech/pos-backend/pkg/logger"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUC
	logger        logger.Logger
}

func NewReportHandler(reportUsecase usecase.ReportUC, logger logger.Logger) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase, logger: logger}
}

// salesReport отдаёт сводку продаж: итоги за день, за месяц и последние чеки.
func (h *ReportHandler) salesReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUsecase.SalesReport(r.Context(), time.Now())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, reportView{
		Daily:   totalsView{Total: report.Daily.Total, Count: report.Daily.Count},
		Monthly: totalsView{Total: report.Monthly.Total, Count: report.Monthly.Count},
		History: newSaleViews(report.History),
	})
}

// exportExcel выгружает всю историю продаж одним xlsx-файлом.
func (h *ReportHandler) exportExcel(w http.ResponseWriter, r *http.Request) {
	export, err := h.reportUsecase.ExportSales(r.Context())
	if err != nil {
		h.logger.Warnf("%s", err.Error())
		WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(export.Data)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(export.Data); err != nil {
		h.logger.Errorf(err, "не удалось отдать файл выгрузки %s", export.FileName)
	}
}
