package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumoAlimento registra un retiro de alimento para un galpón.
// Invariante: mientras el registro exista, su cantidad fue descontada
// exactamente una vez del stock del alimento referenciado; actualizar o
// eliminar el registro revierte ese descuento antes de aplicar uno nuevo.
type ConsumoAlimento struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Galpon     string          `gorm:"index;not null"`
	Fecha      time.Time       `gorm:"type:date;not null;index"`
	AlimentoID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Cantidad   decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Alimento *Alimento `gorm:"foreignKey:AlimentoID"`
}

// TableName overrides GORM's default pluralization.
func (ConsumoAlimento) TableName() string { return "consumos_alimento" }
