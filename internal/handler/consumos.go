package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/apierror"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ConsumosHandler struct{ svc service.ConsumoService }

func NewConsumosHandler(svc service.ConsumoService) *ConsumosHandler {
	return &ConsumosHandler{svc: svc}
}

func (h *ConsumosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarConsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), req)
	if err != nil {
		writeConsumoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ConsumosHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	var req dto.ActualizarConsumoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		writeConsumoError(c, err)
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Consumo no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsumosHandler) Eliminar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	eliminado, err := h.svc.Eliminar(c.Request.Context(), id)
	if err != nil {
		writeConsumoError(c, err)
		return
	}
	// La eliminación es idempotente: un registro ya inexistente no es un error,
	// pero el cliente puede distinguir ambos casos por el código de estado.
	if !eliminado {
		c.JSON(http.StatusNotFound, apierror.New("Consumo no encontrado"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ConsumosHandler) ObtenerPorID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Consumo no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsumosHandler) Listar(c *gin.Context) {
	var filter dto.ConsumoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar consumos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConsumosHandler) Estadisticas(c *gin.Context) {
	desde, hasta, err := parseRangoFechas(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Estadisticas(c.Request.Context(), desde, hasta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadisticas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// parseRangoFechas reads optional desde/hasta query params in YYYY-MM-DD form.
func parseRangoFechas(c *gin.Context) (*time.Time, *time.Time, error) {
	var desde, hasta *time.Time
	if s := c.Query("desde"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, errors.New("desde invalido, use YYYY-MM-DD")
		}
		desde = &t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, nil, errors.New("hasta invalido, use YYYY-MM-DD")
		}
		hasta = &t
	}
	return desde, hasta, nil
}

// writeConsumoError maps ledger errors onto HTTP codes: a stock shortfall is
// a conflict with current state, a missing alimento is a 404.
func writeConsumoError(c *gin.Context, err error) {
	var stockErr *service.StockInsuficienteError
	switch {
	case errors.As(err, &stockErr):
		c.JSON(http.StatusConflict, apierror.New(stockErr.Error()))
	case errors.Is(err, service.ErrNoEncontrado):
		c.JSON(http.StatusNotFound, apierror.New("Alimento no encontrado"))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
