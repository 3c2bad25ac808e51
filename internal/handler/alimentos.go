package handler

import (
	"errors"
	"net/http"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/apierror"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AlimentosHandler struct{ svc service.AlimentoService }

func NewAlimentosHandler(svc service.AlimentoService) *AlimentosHandler {
	return &AlimentosHandler{svc: svc}
}

func (h *AlimentosHandler) Crear(c *gin.Context) {
	var req dto.CrearAlimentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlimentosHandler) Listar(c *gin.Context) {
	var filter dto.AlimentoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar alimentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlimentosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Alimento no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlimentosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarAlimentoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Alimento no encontrado"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlimentosHandler) Desactivar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// AjustarStock applies a manual correction (merma, compra directa, inventario
// físico). A negative adjustment that would leave the stock below zero is
// rejected as a conflict.
func (h *AlimentosHandler) AjustarStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.AjustarStockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarStock(c.Request.Context(), id, req)
	if err != nil {
		var stockErr *service.StockInsuficienteError
		switch {
		case errors.As(err, &stockErr):
			c.JSON(http.StatusConflict, apierror.New(stockErr.Error()))
		case errors.Is(err, service.ErrNoEncontrado):
			c.JSON(http.StatusNotFound, apierror.New("Alimento no encontrado"))
		default:
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		}
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlimentosHandler) Alertas(c *gin.Context) {
	resp, err := h.svc.Alertas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al obtener alertas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
