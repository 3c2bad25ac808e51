package repository

import (
	"context"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ConsumoRepository defines the data access contract for consumption records.
// All writes run inside a ledger transaction owned by ConsumoService.
type ConsumoRepository interface {
	CreateTx(tx *gorm.DB, c *model.ConsumoAlimento) error
	UpdateTx(tx *gorm.DB, c *model.ConsumoAlimento) error
	DeleteTx(tx *gorm.DB, id uuid.UUID) error
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.ConsumoAlimento, error)

	FindByID(ctx context.Context, id uuid.UUID) (*model.ConsumoAlimento, error)
	List(ctx context.Context, filter dto.ConsumoFilter) ([]model.ConsumoAlimento, int64, error)
	Estadisticas(ctx context.Context, desde, hasta *time.Time) (*dto.EstadisticasConsumoResponse, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type consumoRepo struct{ db *gorm.DB }

func NewConsumoRepository(db *gorm.DB) ConsumoRepository { return &consumoRepo{db: db} }

func (r *consumoRepo) CreateTx(tx *gorm.DB, c *model.ConsumoAlimento) error {
	return tx.Create(c).Error
}

func (r *consumoRepo) UpdateTx(tx *gorm.DB, c *model.ConsumoAlimento) error {
	return tx.Save(c).Error
}

func (r *consumoRepo) DeleteTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.ConsumoAlimento{}, "id = ?", id).Error
}

func (r *consumoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.ConsumoAlimento, error) {
	var c model.ConsumoAlimento
	err := tx.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *consumoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ConsumoAlimento, error) {
	var c model.ConsumoAlimento
	err := r.db.WithContext(ctx).Preload("Alimento").First(&c, "id = ?", id).Error
	return &c, err
}

func (r *consumoRepo) List(ctx context.Context, filter dto.ConsumoFilter) ([]model.ConsumoAlimento, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.ConsumoAlimento{}).Preload("Alimento")

	if filter.Galpon != "" {
		q = q.Where("galpon = ?", filter.Galpon)
	}
	if filter.AlimentoID != "" {
		q = q.Where("alimento_id = ?", filter.AlimentoID)
	}
	if filter.Desde != "" {
		q = q.Where("fecha >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("fecha <= ?", filter.Hasta)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	limit := filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset := (page - 1) * limit

	var consumos []model.ConsumoAlimento
	err := q.Order("fecha DESC, created_at DESC").Offset(offset).Limit(limit).Find(&consumos).Error
	return consumos, total, err
}

// Estadisticas aggregates consumption cost (Σ cantidad × costo_unitario)
// globally, per galpón and per alimento.
func (r *consumoRepo) Estadisticas(ctx context.Context, desde, hasta *time.Time) (*dto.EstadisticasConsumoResponse, error) {
	base := r.db.WithContext(ctx).Model(&model.ConsumoAlimento{}).
		Joins("JOIN alimentos ON alimentos.id = consumos_alimento.alimento_id")
	if desde != nil {
		base = base.Where("consumos_alimento.fecha >= ?", *desde)
	}
	if hasta != nil {
		base = base.Where("consumos_alimento.fecha <= ?", *hasta)
	}

	var global struct {
		Total int64
		Costo decimal.Decimal
	}
	err := base.Session(&gorm.Session{}).
		Select("COUNT(*) AS total, COALESCE(SUM(consumos_alimento.cantidad * alimentos.costo_unitario), 0) AS costo").
		Scan(&global).Error
	if err != nil {
		return nil, err
	}

	var porGalpon []dto.ConsumoPorGalpon
	err = base.Session(&gorm.Session{}).
		Select("consumos_alimento.galpon AS galpon, COUNT(*) AS total_registros, COALESCE(SUM(consumos_alimento.cantidad * alimentos.costo_unitario), 0) AS costo_total").
		Group("consumos_alimento.galpon").
		Order("galpon ASC").
		Scan(&porGalpon).Error
	if err != nil {
		return nil, err
	}

	var porAlimento []dto.ConsumoPorAlimento
	err = base.Session(&gorm.Session{}).
		Select("alimentos.id AS alimento_id, alimentos.nombre AS alimento, alimentos.unidad AS unidad, " +
			"COALESCE(SUM(consumos_alimento.cantidad), 0) AS cantidad_total, " +
			"COALESCE(SUM(consumos_alimento.cantidad * alimentos.costo_unitario), 0) AS costo_total, " +
			"COUNT(*) AS total_registros").
		Group("alimentos.id, alimentos.nombre, alimentos.unidad").
		Order("alimento ASC").
		Scan(&porAlimento).Error
	if err != nil {
		return nil, err
	}

	return &dto.EstadisticasConsumoResponse{
		TotalRegistros: global.Total,
		CostoTotal:     global.Costo,
		PorGalpon:      porGalpon,
		PorAlimento:    porAlimento,
	}, nil
}

func (r *consumoRepo) DB() *gorm.DB { return r.db }
