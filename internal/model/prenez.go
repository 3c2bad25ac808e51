package model

import (
	"time"

	"github.com/google/uuid"
)

// Estados de una preñez.
const (
	PrenezEnCurso    = "EnCurso"
	PrenezFinalizada = "Finalizada"
	PrenezFallida    = "Fallida"
)

// Prenez registra la gestación de una reproductora. La gestación del cuy
// dura unos 68 días; FechaProbableParto se calcula al crearla.
type Prenez struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	MadreID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	PadreID            *uuid.UUID `gorm:"type:uuid"`
	FechaPrenez        time.Time  `gorm:"type:date;not null"`
	FechaProbableParto time.Time  `gorm:"type:date;not null"`
	Estado             string     `gorm:"not null;default:'EnCurso'"`
	Notas              *string
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Madre *Cuy `gorm:"foreignKey:MadreID"`
}

// TableName overrides GORM's default pluralization.
func (Prenez) TableName() string { return "preneces" }

// Camada es el resultado de un parto. Las crías vivas se registran como
// cuyes individuales en la misma operación que crea la camada.
type Camada struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrenezID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	FechaNacimiento time.Time `gorm:"type:date;not null"`
	NumVivos        int       `gorm:"not null"`
	NumMuertos      int       `gorm:"not null;default:0"`
	CreatedAt       time.Time
}
