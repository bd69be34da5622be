package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tradecore/internal/dto"
	"tradecore/internal/service"
)

type ContentHandler struct{ svc service.ContentService }

func NewContentHandler(svc service.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// PublicPage serves only published blocks of one page, unauthenticated.
func (h *ContentHandler) PublicPage(c *gin.Context) {
	resp, err := h.svc.GetPage(c.Request.Context(), c.Param("page"), true)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AdminPage serves all blocks of one page including drafts.
func (h *ContentHandler) AdminPage(c *gin.Context) {
	resp, err := h.svc.GetPage(c.Request.Context(), c.Param("page"), false)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) List(c *gin.Context) {
	resp, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) Upsert(c *gin.Context) {
	var req dto.UpsertContentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Upsert(c.Request.Context(), actorID(c), req, requestMeta(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actorID(c), id, requestMeta(c)); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
