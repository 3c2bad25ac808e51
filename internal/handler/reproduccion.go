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

type ReproduccionHandler struct{ svc service.ReproduccionService }

func NewReproduccionHandler(svc service.ReproduccionService) *ReproduccionHandler {
	return &ReproduccionHandler{svc: svc}
}

func (h *ReproduccionHandler) CrearPrenez(c *gin.Context) {
	var req dto.CrearPrenezRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearPrenez(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Cuy no encontrado"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ReproduccionHandler) ListarPreneces(c *gin.Context) {
	resp, err := h.svc.ListarPreneces(c.Request.Context(), c.Query("estado"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar preñeces"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReproduccionHandler) MarcarFallida(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req struct {
		Notas *string `json:"notas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return
	}
	resp, err := h.svc.MarcarFallida(c.Request.Context(), id, req.Notas)
	if err != nil {
		if errors.Is(err, service.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Preñez no encontrada"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RegistrarParto closes the pregnancy and registers the live pups as animals
// in the destination poza via the bulk-registration path.
func (h *ReproduccionHandler) RegistrarParto(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.RegistrarPartoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarParto(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrNoEncontrado) {
			c.JSON(http.StatusNotFound, apierror.New("Preñez no encontrada"))
			return
		}
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
