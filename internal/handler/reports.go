package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradecore/internal/apierror"
	"tradecore/internal/dto"
	"tradecore/internal/service"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) SalesSummary(c *gin.Context) {
	var filter dto.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.SalesSummary(c.Request.Context(), filter)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportPDF renders the summary to a PDF file and streams it back.
func (h *ReportsHandler) ExportPDF(c *gin.Context) {
	var filter dto.SalesReportFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ExportSalesPDF(c.Request.Context(), filter)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.FileAttachment(resp.PDFPath, "reporte_ventas.pdf")
}
