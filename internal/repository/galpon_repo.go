package repository

import (
	"context"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalponRepository covers housing (galpones y pozas) CRUD.
type GalponRepository interface {
	Create(ctx context.Context, g *model.Galpon) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Galpon, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Galpon, error)
	List(ctx context.Context) ([]model.Galpon, error)
	Update(ctx context.Context, g *model.Galpon) error
	Delete(ctx context.Context, id uuid.UUID) error

	CreatePoza(ctx context.Context, p *model.Poza) error
	FindPozaByID(ctx context.Context, id uuid.UUID) (*model.Poza, error)
	ListPozas(ctx context.Context, galponID uuid.UUID) ([]model.Poza, error)
	DeletePoza(ctx context.Context, id uuid.UUID) error
}

type galponRepo struct{ db *gorm.DB }

func NewGalponRepository(db *gorm.DB) GalponRepository { return &galponRepo{db: db} }

func (r *galponRepo) Create(ctx context.Context, g *model.Galpon) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *galponRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Galpon, error) {
	var g model.Galpon
	err := r.db.WithContext(ctx).Preload("Pozas").First(&g, "id = ?", id).Error
	return &g, err
}

func (r *galponRepo) FindByNombre(ctx context.Context, nombre string) (*model.Galpon, error) {
	var g model.Galpon
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&g).Error
	return &g, err
}

func (r *galponRepo) List(ctx context.Context) ([]model.Galpon, error) {
	var galpones []model.Galpon
	err := r.db.WithContext(ctx).Preload("Pozas").Order("nombre ASC").Find(&galpones).Error
	return galpones, err
}

func (r *galponRepo) Update(ctx context.Context, g *model.Galpon) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *galponRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Galpon{}, "id = ?", id).Error
}

func (r *galponRepo) CreatePoza(ctx context.Context, p *model.Poza) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *galponRepo) FindPozaByID(ctx context.Context, id uuid.UUID) (*model.Poza, error) {
	var p model.Poza
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return &p, err
}

func (r *galponRepo) ListPozas(ctx context.Context, galponID uuid.UUID) ([]model.Poza, error) {
	var pozas []model.Poza
	err := r.db.WithContext(ctx).Where("galpon_id = ?", galponID).Order("codigo ASC").Find(&pozas).Error
	return pozas, err
}

func (r *galponRepo) DeletePoza(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Poza{}, "id = ?", id).Error
}
