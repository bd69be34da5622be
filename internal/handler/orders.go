package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tradecore/internal/apierror"
	"tradecore/internal/domain"
	"tradecore/internal/dto"
	"tradecore/internal/service"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler {
	return &OrdersHandler{svc: svc}
}

func (h *OrdersHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.CreateOrder(c.Request.Context(), actorID(c), req, requestMeta(c))
	if errors.Is(err, domain.ErrDuplicateKey) {
		// Generated order numbers collide only on same-second creations; a
		// single retry regenerates the random suffix.
		resp, err = h.svc.CreateOrder(c.Request.Context(), actorID(c), req, requestMeta(c))
	}
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListOrders(c.Request.Context(), filter)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) TransitionStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req dto.TransitionStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	err := h.svc.TransitionStatus(c.Request.Context(), id, domain.OrderStatus(req.Status), actorID(c), requestMeta(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	resp, err := h.svc.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Stats(c *gin.Context) {
	resp, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
