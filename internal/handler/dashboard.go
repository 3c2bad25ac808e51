package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/apierror"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/infra"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type DashboardHandler struct {
	cuyes service.CuyService
	rdb   *redis.Client
}

func NewDashboardHandler(cuyes service.CuyService, rdb *redis.Client) *DashboardHandler {
	return &DashboardHandler{cuyes: cuyes, rdb: rdb}
}

// EstadisticasCuyes returns the population breakdown. A fresh result also
// refreshes the Redis snapshot; when the database query fails the last good
// snapshot is served instead, marked as stale. With no snapshot available the
// endpoint answers 503 rather than fabricating zeros.
func (h *DashboardHandler) EstadisticasCuyes(c *gin.Context) {
	ctx := c.Request.Context()

	resp, err := h.cuyes.Estadisticas(ctx)
	if err == nil {
		if h.rdb != nil {
			if payload, mErr := json.Marshal(resp); mErr == nil {
				if sErr := h.rdb.Set(ctx, infra.EstadisticasCuyesKey, payload, infra.EstadisticasTTL).Err(); sErr != nil {
					log.Warn().Err(sErr).Msg("no se pudo guardar snapshot de estadisticas")
				}
			}
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	var noDisp *service.EstadisticasNoDisponiblesError
	if !errors.As(err, &noDisp) {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadisticas"))
		return
	}

	log.Warn().Err(noDisp.Causa).Msg("estadisticas no disponibles, intentando snapshot")

	if h.rdb != nil {
		payload, rErr := h.rdb.Get(ctx, infra.EstadisticasCuyesKey).Bytes()
		if rErr == nil {
			var cached dto.EstadisticasCuyesResponse
			if uErr := json.Unmarshal(payload, &cached); uErr == nil {
				c.Header("X-Snapshot-Stale", "true")
				c.JSON(http.StatusOK, cached)
				return
			}
		}
	}

	c.JSON(http.StatusServiceUnavailable, apierror.New("Estadisticas no disponibles en este momento"))
}
