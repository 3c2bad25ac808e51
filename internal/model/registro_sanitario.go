package model

import (
	"time"

	"github.com/google/uuid"
)

// RegistroSanitario documenta un evento de salud de un cuy:
// vacunación, tratamiento, desparasitación o control de rutina.
type RegistroSanitario struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CuyID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Fecha       time.Time `gorm:"type:date;not null"`
	Tipo        string    `gorm:"not null"` // vacunacion | tratamiento | desparasitacion | control
	Descripcion string    `gorm:"not null"`
	Tratamiento *string
	Veterinario *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Cuy *Cuy `gorm:"foreignKey:CuyID"`
}

// TableName overrides GORM's default pluralization.
func (RegistroSanitario) TableName() string { return "registros_sanitarios" }
