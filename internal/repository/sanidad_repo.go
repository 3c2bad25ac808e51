package repository

import (
	"context"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SanidadRepository covers health-record CRUD.
type SanidadRepository interface {
	Create(ctx context.Context, rs *model.RegistroSanitario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RegistroSanitario, error)
	ListByCuy(ctx context.Context, cuyID uuid.UUID) ([]model.RegistroSanitario, error)
	Update(ctx context.Context, rs *model.RegistroSanitario) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sanidadRepo struct{ db *gorm.DB }

func NewSanidadRepository(db *gorm.DB) SanidadRepository { return &sanidadRepo{db: db} }

func (r *sanidadRepo) Create(ctx context.Context, rs *model.RegistroSanitario) error {
	return r.db.WithContext(ctx).Create(rs).Error
}

func (r *sanidadRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RegistroSanitario, error) {
	var rs model.RegistroSanitario
	err := r.db.WithContext(ctx).First(&rs, "id = ?", id).Error
	return &rs, err
}

func (r *sanidadRepo) ListByCuy(ctx context.Context, cuyID uuid.UUID) ([]model.RegistroSanitario, error) {
	var registros []model.RegistroSanitario
	err := r.db.WithContext(ctx).
		Where("cuy_id = ?", cuyID).
		Order("fecha DESC").
		Find(&registros).Error
	return registros, err
}

func (r *sanidadRepo) Update(ctx context.Context, rs *model.RegistroSanitario) error {
	return r.db.WithContext(ctx).Save(rs).Error
}

func (r *sanidadRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.RegistroSanitario{}, "id = ?", id).Error
}
