package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RegistrarConsumoRequest struct {
	Galpon     string          `json:"galpon"      validate:"required,min=1,max=60"`
	Fecha      string          `json:"fecha"       validate:"required,datetime=2006-01-02"`
	AlimentoID string          `json:"alimento_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad"    validate:"required,gt=0"`
}

// ActualizarConsumoRequest admite actualización parcial; el servicio revierte
// el descuento original antes de aplicar los campos nuevos.
type ActualizarConsumoRequest struct {
	Galpon     *string          `json:"galpon"      validate:"omitempty,min=1,max=60"`
	Fecha      *string          `json:"fecha"       validate:"omitempty,datetime=2006-01-02"`
	AlimentoID *string          `json:"alimento_id" validate:"omitempty,uuid"`
	Cantidad   *decimal.Decimal `json:"cantidad"    validate:"omitempty,gt=0"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type ConsumoFilter struct {
	Galpon     string `form:"galpon"`
	AlimentoID string `form:"alimento_id"`
	Desde      string `form:"desde" validate:"omitempty,datetime=2006-01-02"`
	Hasta      string `form:"hasta" validate:"omitempty,datetime=2006-01-02"`
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ConsumoResponse struct {
	ID         string          `json:"id"`
	Galpon     string          `json:"galpon"`
	Fecha      string          `json:"fecha"`
	AlimentoID string          `json:"alimento_id"`
	Alimento   string          `json:"alimento"`
	Unidad     string          `json:"unidad"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	CreatedAt  string          `json:"created_at"`
}

type ConsumoListResponse struct {
	Data  []ConsumoResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// ─── Estadísticas ────────────────────────────────────────────────────────────

type ConsumoPorGalpon struct {
	Galpon         string          `json:"galpon"`
	TotalRegistros int64           `json:"total_registros"`
	CostoTotal     decimal.Decimal `json:"costo_total"`
}

type ConsumoPorAlimento struct {
	AlimentoID     string          `json:"alimento_id"`
	Alimento       string          `json:"alimento"`
	Unidad         string          `json:"unidad"`
	CantidadTotal  decimal.Decimal `json:"cantidad_total"`
	CostoTotal     decimal.Decimal `json:"costo_total"`
	TotalRegistros int64           `json:"total_registros"`
}

type EstadisticasConsumoResponse struct {
	TotalRegistros int64                `json:"total_registros"`
	CostoTotal     decimal.Decimal      `json:"costo_total"`
	PorGalpon      []ConsumoPorGalpon   `json:"por_galpon"`
	PorAlimento    []ConsumoPorAlimento `json:"por_alimento"`
}
