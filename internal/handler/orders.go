package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/apierror"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/middleware"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/service"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Commit godoc
// @Summary      Registrar venda
// @Description  Confirma o carrinho como pedido pago: itens, pagamentos, baixa de estoque e lançamentos financeiros em uma única transação.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CommitOrderRequest true "Carrinho e pagamentos"
// @Success      201  {object} dto.OrderResponse
// @Failure      409  {object} apierror.APIError
// @Failure      422  {object} apierror.APIError
// @Router       /v1/orders [post]
func (h *OrdersHandler) Commit(c *gin.Context) {
	var req dto.CommitOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	sellerID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Commit(c.Request.Context(), sellerID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cancel godoc
// @Summary      Cancelar pedido
// @Description  Cancela um pedido pago: restaura estoque e gera lançamentos de estorno. Operação terminal.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "UUID do pedido"
// @Param        body body dto.CancelOrderRequest true "Motivo do cancelamento"
// @Success      200  {object} dto.OrderResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/orders/{id}/cancel [post]
func (h *OrdersHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CancelOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	actorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Cancel(c.Request.Context(), actorID, id, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrdersHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List returns a paginated, filtered list of orders.
func (h *OrdersHandler) List(c *gin.Context) {
	var filter dto.OrderFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar pedidos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AppointmentCheckout pre-populates a POS cart from a scheduled appointment.
func (h *OrdersHandler) AppointmentCheckout(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.AppointmentCheckout(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
