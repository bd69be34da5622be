package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradecore/internal/apierror"
	"tradecore/internal/dto"
	"tradecore/internal/service"
)

// AuditHandler exposes the audit trail to admins.
type AuditHandler struct {
	svc          service.AuditService
	retentionAge time.Duration
}

func NewAuditHandler(svc service.AuditService, retentionAge time.Duration) *AuditHandler {
	return &AuditHandler{svc: svc, retentionAge: retentionAge}
}

func (h *AuditHandler) List(c *gin.Context) {
	var filter dto.AuditFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Purge triggers the retention sweep on demand, ahead of the daily janitor.
func (h *AuditHandler) Purge(c *gin.Context) {
	deleted, err := h.svc.PurgeOlderThan(c.Request.Context(), h.retentionAge)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
