package service

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNoEncontrado marks a missing referenced entity (alimento, consumo, cuy).
// Handlers map it to 404; it wraps via fmt.Errorf("%w: ...") where useful.
var ErrNoEncontrado = errors.New("no encontrado")

// StockInsuficienteError rejects a consumption whose quantity exceeds the
// available stock. The message always carries both amounts with the unit so
// the operator can correct the entry.
type StockInsuficienteError struct {
	Alimento   string
	Unidad     string
	Disponible decimal.Decimal
	Solicitado decimal.Decimal
}

func (e *StockInsuficienteError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s: disponible %s %s, solicitado %s %s",
		e.Alimento, e.Disponible.String(), e.Unidad, e.Solicitado.String(), e.Unidad)
}

// TransicionRechazadaError rejects an explicit purpose change that violates
// an age-gating rule. Motivo names the violated rule.
type TransicionRechazadaError struct {
	Motivo string
}

func (e *TransicionRechazadaError) Error() string {
	return "transición rechazada: " + e.Motivo
}

// EstadisticasNoDisponiblesError signals that the dashboard aggregate query
// failed. The caller decides whether to serve a cached snapshot instead of
// masking the failure with fabricated numbers.
type EstadisticasNoDisponiblesError struct {
	Causa error
}

func (e *EstadisticasNoDisponiblesError) Error() string {
	return "estadísticas no disponibles: " + e.Causa.Error()
}

func (e *EstadisticasNoDisponiblesError) Unwrap() error { return e.Causa }
