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

type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Search godoc
// @Summary      Buscar itens
// @Description  Busca produtos e serviços de banho e tosa em uma única chamada, para a caixa de busca do PDV.
// @Tags         catalogo
// @Produce      json
// @Security     BearerAuth
// @Param        q     query string false "Texto de busca (nome ou SKU)"
// @Param        limit query int    false "Máximo de resultados por tipo (default 20)"
// @Success      200   {object} dto.SearchItemsResponse
// @Router       /v1/items/search [get]
func (h *CatalogHandler) Search(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	resp, err := h.svc.SearchItems(c.Request.Context(), c.Query("q"), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PriceCheck godoc
// @Summary      Consulta de preço
// @Description  Resolve um SKU para nome, preço e estoque atuais. Não exige autenticação — alimenta o terminal de consulta da loja.
// @Tags         catalogo
// @Produce      json
// @Param        sku path string true "SKU do produto"
// @Success      200 {object} dto.PriceCheckResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/price/{sku} [get]
func (h *CatalogHandler) PriceCheck(c *gin.Context) {
	resp, err := h.svc.PriceCheck(c.Request.Context(), c.Param("sku"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// QuickCreateProduct registers a product directly from the POS search box.
func (h *CatalogHandler) QuickCreateProduct(c *gin.Context) {
	var req dto.QuickProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.QuickCreateProduct(c.Request.Context(), req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.GetProduct(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
