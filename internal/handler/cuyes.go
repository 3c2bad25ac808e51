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

type CuyesHandler struct{ svc service.CuyService }

func NewCuyesHandler(svc service.CuyService) *CuyesHandler {
	return &CuyesHandler{svc: svc}
}

func (h *CuyesHandler) Crear(c *gin.Context) {
	var req dto.CrearCuyRequest
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

func (h *CuyesHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Cuy no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuyesHandler) Listar(c *gin.Context) {
	var filter dto.CuyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar cuyes"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuyesHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarCuyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Cuy no encontrado"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuyesHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CuyesHandler) CambiarProposito(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.CambiarPropositoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CambiarProposito(c.Request.Context(), id, req)
	if err != nil {
		var rechazo *service.TransicionRechazadaError
		if errors.As(err, &rechazo) {
			c.JSON(http.StatusUnprocessableEntity, apierror.New(rechazo.Error()))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Cuy no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CuyesHandler) RegistroMasivo(c *gin.Context) {
	var req dto.RegistroMasivoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearDesdeGrupos(c.Request.Context(), req)
	if err != nil {
		// El registro es por unidad: algunos animales pueden haberse creado
		// antes del fallo. Se devuelven junto con el error.
		c.JSON(http.StatusMultiStatus, gin.H{
			"creados": resp,
			"error":   err.Error(),
		})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"creados": resp, "total": len(resp)})
}
