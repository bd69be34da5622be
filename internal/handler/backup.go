package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradecore/internal/apierror"
	"tradecore/internal/infra"
)

// BackupHandler exposes manual backup operations to admins; the cron covers
// the scheduled path.
type BackupHandler struct{ mgr *infra.BackupManager }

func NewBackupHandler(mgr *infra.BackupManager) *BackupHandler {
	return &BackupHandler{mgr: mgr}
}

func (h *BackupHandler) Create(c *gin.Context) {
	info, err := h.mgr.Create()
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al crear el backup"))
		return
	}
	c.JSON(http.StatusCreated, info)
}

func (h *BackupHandler) List(c *gin.Context) {
	backups, err := h.mgr.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar backups"))
		return
	}
	c.JSON(http.StatusOK, backups)
}

func (h *BackupHandler) Restore(c *gin.Context) {
	var req struct {
		Name string `json:"name" validate:"required"`
	}
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.mgr.Restore(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
