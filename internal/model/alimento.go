package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Alimento representa un tipo de alimento almacenado (forraje, concentrado, etc.).
// Stock nunca puede ser negativo: toda mutación pasa por el ledger de consumos
// o por un ajuste manual de inventario.
type Alimento struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"index;not null"`
	Descripcion *string
	// Unidad de medida del stock: "kg", "g", "atado", etc.
	Unidad        string          `gorm:"not null;default:'kg'"`
	Stock         decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	StockMinimo   decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	CostoUnitario decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
