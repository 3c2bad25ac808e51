package repository

import (
	"context"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReproduccionRepository covers pregnancies and litters.
type ReproduccionRepository interface {
	CreatePrenez(ctx context.Context, p *model.Prenez) error
	FindPrenezByID(ctx context.Context, id uuid.UUID) (*model.Prenez, error)
	ListPreneces(ctx context.Context, estado string) ([]model.Prenez, error)
	UpdatePrenez(ctx context.Context, p *model.Prenez) error
	UpdatePrenezTx(tx *gorm.DB, p *model.Prenez) error

	CreateCamadaTx(tx *gorm.DB, c *model.Camada) error
	FindCamadaByPrenez(ctx context.Context, prenezID uuid.UUID) (*model.Camada, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type reproduccionRepo struct{ db *gorm.DB }

func NewReproduccionRepository(db *gorm.DB) ReproduccionRepository {
	return &reproduccionRepo{db: db}
}

func (r *reproduccionRepo) CreatePrenez(ctx context.Context, p *model.Prenez) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *reproduccionRepo) FindPrenezByID(ctx context.Context, id uuid.UUID) (*model.Prenez, error) {
	var p model.Prenez
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *reproduccionRepo) ListPreneces(ctx context.Context, estado string) ([]model.Prenez, error) {
	q := r.db.WithContext(ctx).Preload("Madre")
	if estado != "" {
		q = q.Where("estado = ?", estado)
	}
	var preneces []model.Prenez
	err := q.Order("fecha_probable_parto ASC").Find(&preneces).Error
	return preneces, err
}

func (r *reproduccionRepo) UpdatePrenez(ctx context.Context, p *model.Prenez) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *reproduccionRepo) UpdatePrenezTx(tx *gorm.DB, p *model.Prenez) error {
	return tx.Save(p).Error
}

func (r *reproduccionRepo) CreateCamadaTx(tx *gorm.DB, c *model.Camada) error {
	return tx.Create(c).Error
}

func (r *reproduccionRepo) FindCamadaByPrenez(ctx context.Context, prenezID uuid.UUID) (*model.Camada, error) {
	var c model.Camada
	err := r.db.WithContext(ctx).Where("prenez_id = ?", prenezID).First(&c).Error
	return &c, err
}

func (r *reproduccionRepo) DB() *gorm.DB { return r.db }
