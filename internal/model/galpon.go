package model

import (
	"time"

	"github.com/google/uuid"
)

// Galpon es una instalación física que agrupa pozas.
type Galpon struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string    `gorm:"uniqueIndex;not null"`
	Descripcion *string
	Capacidad   int `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Pozas []Poza `gorm:"foreignKey:GalponID"`
}

// TableName overrides GORM's default pluralization.
func (Galpon) TableName() string { return "galpones" }

// Poza es una jaula dentro de un galpón.
type Poza struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	GalponID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Codigo    string    `gorm:"not null"`
	Tipo      string    `gorm:"not null;default:'engorde'"` // engorde | reproduccion | cria
	Capacidad int       `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
