package infra

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de negocio expuestos en /metrics. Los nombres siguen la
// convención prometheus <app>_<subsistema>_<evento>_total.
var (
	ConsumosRegistrados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "granja_consumos_registrados_total",
		Help: "Consumption records successfully created.",
	})

	ConsumosRechazadosStock = promauto.NewCounter(prometheus.CounterOpts{
		Name: "granja_consumos_rechazados_stock_total",
		Help: "Consumption writes rejected for insufficient stock.",
	})

	CuyesRegistrados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "granja_cuyes_registrados_total",
		Help: "Animals registered (individual and bulk).",
	})

	TransicionesRechazadas = promauto.NewCounter(prometheus.CounterOpts{
		Name: "granja_transiciones_rechazadas_total",
		Help: "Purpose transitions rejected by age-gating rules.",
	})

	CuyesReevaluados = promauto.NewCounter(prometheus.CounterOpts{
		Name: "granja_cuyes_reevaluados_total",
		Help: "Animals whose stage was updated by the scheduled re-evaluation.",
	})
)
