package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Valores de Cuy.Sexo.
const (
	SexoMacho  = "M"
	SexoHembra = "H"
)

// Valores de Cuy.Estado.
const (
	EstadoActivo    = "Activo"
	EstadoEnfermo   = "Enfermo"
	EstadoVendido   = "Vendido"
	EstadoFallecido = "Fallecido"
)

// Etapas de vida derivadas de edad y sexo.
const (
	EtapaCria         = "Cría"
	EtapaJuvenil      = "Juvenil"
	EtapaEngorde      = "Engorde"
	EtapaReproductora = "Reproductora"
	EtapaReproductor  = "Reproductor"
)

// Propósitos productivos.
const (
	PropositoEngorde      = "Engorde"
	PropositoReproduccion = "Reproducción"
	PropositoIndefinido   = "Indefinido"
)

// Cuy es un animal individual. Etapa y Proposito se derivan de
// (FechaNacimiento, Sexo) salvo override manual; FechaEvaluacion marca la
// última vez que la derivación se aplicó.
type Cuy struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Raza            string          `gorm:"index;not null"`
	FechaNacimiento time.Time       `gorm:"type:date;not null"`
	Sexo            string          `gorm:"type:char(1);not null"` // M | H
	Peso            decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"` // kg
	Galpon          string          `gorm:"index;not null"`
	Poza            string          `gorm:"not null;default:''"`
	Estado          string          `gorm:"not null;default:'Activo'"`
	Etapa           string          `gorm:"not null"`
	Proposito       string          `gorm:"not null;default:'Indefinido'"`
	FechaEvaluacion time.Time       `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides GORM's default pluralization (cuies → cuyes).
func (Cuy) TableName() string { return "cuyes" }
