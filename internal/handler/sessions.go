package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/DemianF-dev/7pet-mvp-sub000/internal/apierror"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/dto"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/middleware"
	"github.com/DemianF-dev/7pet-mvp-sub000/internal/service"
)

type SessionsHandler struct{ svc service.SessionService }

func NewSessionsHandler(svc service.SessionService) *SessionsHandler {
	return &SessionsHandler{svc: svc}
}

// Open godoc
// @Summary      Abrir caixa
// @Description  Abre uma nova sessão de caixa. Apenas uma sessão pode estar aberta por vez.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.OpenSessionRequest true "Saldo inicial"
// @Success      201  {object} dto.SessionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sessions [post]
func (h *SessionsHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Open(c.Request.Context(), operatorID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Close godoc
// @Summary      Fechar caixa
// @Description  Fecha a sessão informando o saldo contado; o esperado é calculado a partir das vendas em dinheiro.
// @Tags         caixa
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "UUID da sessão"
// @Param        body body dto.CloseSessionRequest true "Saldo de fechamento"
// @Success      200  {object} dto.SessionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/sessions/{id}/close [post]
func (h *SessionsHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CloseSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Close(c.Request.Context(), id, operatorID, req)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetActive returns the currently open session, 404 when the drawer is closed.
func (h *SessionsHandler) GetActive(c *gin.Context) {
	resp, err := h.svc.GetActive(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Nenhum caixa aberto"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SessionsHandler) Get(c *gin.Context) {
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

// History returns a paginated list of past cash sessions.
func (h *SessionsHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	resp, total, err := h.svc.History(c.Request.Context(), page, limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp, "total": total, "page": page, "limit": limit})
}
