package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearAlimentoRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=120"`
	Descripcion   *string         `json:"descripcion"`
	Unidad        string          `json:"unidad"         validate:"required,min=1,max=20"`
	Stock         decimal.Decimal `json:"stock"          validate:"min=0"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"   validate:"min=0"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"min=0"`
}

type ActualizarAlimentoRequest struct {
	Nombre        *string          `json:"nombre"         validate:"omitempty,min=2,max=120"`
	Descripcion   *string          `json:"descripcion"`
	Unidad        *string          `json:"unidad"         validate:"omitempty,min=1,max=20"`
	StockMinimo   *decimal.Decimal `json:"stock_minimo"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario"`
}

// AjustarStockRequest aplica un delta manual (positivo o negativo) fuera del
// ledger de consumos. El servicio rechaza ajustes que dejen el stock negativo.
type AjustarStockRequest struct {
	Delta  decimal.Decimal `json:"delta"  validate:"required"`
	Motivo string          `json:"motivo" validate:"required,min=3,max=200"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type AlimentoFilter struct {
	Nombre string `form:"nombre"`
	Activo string `form:"activo"` // "false" | "all" | default activos
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AlimentoResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Descripcion   *string         `json:"descripcion"`
	Unidad        string          `json:"unidad"`
	Stock         decimal.Decimal `json:"stock"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	Activo        bool            `json:"activo"`
}

type AlimentoListResponse struct {
	Data  []AlimentoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// AlertaStockResponse se emite cuando un alimento cae bajo su stock mínimo.
type AlertaStockResponse struct {
	AlimentoID  string          `json:"alimento_id"`
	Nombre      string          `json:"nombre"`
	Unidad      string          `json:"unidad"`
	Stock       decimal.Decimal `json:"stock"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
}
