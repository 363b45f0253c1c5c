package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/apierror"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/service"
)

type CustomersHandler struct{ svc service.CustomerService }

func NewCustomersHandler(svc service.CustomerService) *CustomersHandler {
	return &CustomersHandler{svc: svc}
}

// Search matches customers by name for the POS customer picker. The is_staff
// flag in each result tells the terminal whether PAYROLL_DEDUCTION applies.
func (h *CustomersHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.Search(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (h *CustomersHandler) Get(c *gin.Context) {
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

// QuickCreate registers a walk-in customer without leaving the sale screen.
func (h *CustomersHandler) QuickCreate(c *gin.Context) {
	var req dto.QuickCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.QuickCreate(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Statement godoc
// @Summary      Extrato do cliente
// @Description  Lista os lançamentos financeiros do cliente (compras, pagamentos e estornos) com o saldo corrente.
// @Tags         clientes
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "UUID do cliente"
// @Success      200 {object} dto.StatementResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/customers/{id}/statement [get]
func (h *CustomersHandler) Statement(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Statement(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
