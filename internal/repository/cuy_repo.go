package repository

import (
	"context"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CuyRepository defines the data access contract for animals.
type CuyRepository interface {
	Create(ctx context.Context, c *model.Cuy) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cuy, error)
	List(ctx context.Context, filter dto.CuyFilter) ([]model.Cuy, int64, error)
	Update(ctx context.Context, c *model.Cuy) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Estadisticas runs the dashboard aggregate query. corteCrias is the birth
	// date cutoff under which an animal counts as cría (now − 2 months).
	Estadisticas(ctx context.Context, corteCrias time.Time) (*dto.EstadisticasCuyesResponse, error)

	// ListarParaReevaluacion returns animals eligible for the scheduled
	// stage re-derivation (estado Activo or Enfermo).
	ListarParaReevaluacion(ctx context.Context) ([]model.Cuy, error)

	CountByGalpon(ctx context.Context, galpon string) (int64, error)
	CountByPoza(ctx context.Context, galpon, poza string) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type cuyRepo struct{ db *gorm.DB }

func NewCuyRepository(db *gorm.DB) CuyRepository { return &cuyRepo{db: db} }

func (r *cuyRepo) Create(ctx context.Context, c *model.Cuy) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cuyRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cuy, error) {
	var c model.Cuy
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *cuyRepo) List(ctx context.Context, filter dto.CuyFilter) ([]model.Cuy, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Cuy{})

	if filter.Galpon != "" {
		q = q.Where("galpon = ?", filter.Galpon)
	}
	if filter.Poza != "" {
		q = q.Where("poza = ?", filter.Poza)
	}
	if filter.Raza != "" {
		q = q.Where("raza = ?", filter.Raza)
	}
	if filter.Sexo != "" {
		q = q.Where("sexo = ?", filter.Sexo)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Etapa != "" {
		q = q.Where("etapa = ?", filter.Etapa)
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

	var cuyes []model.Cuy
	err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&cuyes).Error
	return cuyes, total, err
}

func (r *cuyRepo) Update(ctx context.Context, c *model.Cuy) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *cuyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Cuy{}, "id = ?", id).Error
}

func (r *cuyRepo) Estadisticas(ctx context.Context, corteCrias time.Time) (*dto.EstadisticasCuyesResponse, error) {
	var counts struct {
		Total   int64
		Machos  int64
		Hembras int64
		Crias   int64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) AS total,
		       COUNT(*) FILTER (WHERE sexo = 'M') AS machos,
		       COUNT(*) FILTER (WHERE sexo = 'H') AS hembras,
		       COUNT(*) FILTER (WHERE fecha_nacimiento > ?) AS crias
		FROM cuyes
		WHERE estado <> 'Vendido'
	`, corteCrias).Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	var porRaza []dto.ConteoPorRaza
	err = r.db.WithContext(ctx).Raw(`
		SELECT raza, COUNT(*) AS total
		FROM cuyes
		WHERE estado <> 'Vendido'
		GROUP BY raza
		ORDER BY total DESC
	`).Scan(&porRaza).Error
	if err != nil {
		return nil, err
	}

	return &dto.EstadisticasCuyesResponse{
		Total:   counts.Total,
		Machos:  counts.Machos,
		Hembras: counts.Hembras,
		Crias:   counts.Crias,
		PorRaza: porRaza,
	}, nil
}

func (r *cuyRepo) ListarParaReevaluacion(ctx context.Context) ([]model.Cuy, error) {
	var cuyes []model.Cuy
	err := r.db.WithContext(ctx).
		Where("estado IN ?", []string{model.EstadoActivo, model.EstadoEnfermo}).
		Find(&cuyes).Error
	return cuyes, err
}

func (r *cuyRepo) CountByGalpon(ctx context.Context, galpon string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cuy{}).
		Where("galpon = ? AND estado <> 'Vendido' AND estado <> 'Fallecido'", galpon).
		Count(&n).Error
	return n, err
}

func (r *cuyRepo) CountByPoza(ctx context.Context, galpon, poza string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Cuy{}).
		Where("galpon = ? AND poza = ? AND estado <> 'Vendido' AND estado <> 'Fallecido'", galpon, poza).
		Count(&n).Error
	return n, err
}

func (r *cuyRepo) DB() *gorm.DB { return r.db }
