package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/apierror"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/infra"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportesHandler struct {
	consumos    service.ConsumoService
	storagePath string
}

func NewReportesHandler(consumos service.ConsumoService, storagePath string) *ReportesHandler {
	return &ReportesHandler{consumos: consumos, storagePath: storagePath}
}

// ConsumosPDF generates and streams a consumption report for the requested
// date range (defaults to the last 30 days).
func (h *ReportesHandler) ConsumosPDF(c *gin.Context) {
	desde, hasta, err := parseRangoFechas(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if desde == nil {
		d := time.Now().AddDate(0, 0, -30)
		desde = &d
	}
	if hasta == nil {
		t := time.Now()
		hasta = &t
	}

	stats, err := h.consumos.Estadisticas(c.Request.Context(), desde, hasta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al calcular estadisticas"))
		return
	}

	periodo := fmt.Sprintf("%s a %s", desde.Format("2006-01-02"), hasta.Format("2006-01-02"))
	path, err := infra.GenerateReporteConsumosPDF(stats, periodo, h.storagePath)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al generar PDF"))
		return
	}

	c.FileAttachment(path, fmt.Sprintf("consumos_%s_%s.pdf", desde.Format("20060102"), hasta.Format("20060102")))
}
