package repository

import (
	"context"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AlimentoRepository defines the data access contract for feed items.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via in-memory stubs.
type AlimentoRepository interface {
	Create(ctx context.Context, a *model.Alimento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Alimento, error)
	List(ctx context.Context, filter dto.AlimentoFilter) ([]model.Alimento, int64, error)
	Update(ctx context.Context, a *model.Alimento) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListBajoMinimo(ctx context.Context) ([]model.Alimento, error)

	// AjustarStock aplica un delta manual. La condición stock + delta >= 0 va
	// en el WHERE: si no afecta filas el ajuste dejaría stock negativo.
	AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (bool, error)

	// Used inside ledger transactions — callers must pass the tx instance.
	// FindByIDTxLock takes a row lock (SELECT ... FOR UPDATE) so the
	// check-then-decrement sequence serializes concurrent consumption writes.
	FindByIDTxLock(tx *gorm.DB, id uuid.UUID) (*model.Alimento, error)
	UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type alimentoRepo struct{ db *gorm.DB }

func NewAlimentoRepository(db *gorm.DB) AlimentoRepository { return &alimentoRepo{db: db} }

func (r *alimentoRepo) Create(ctx context.Context, a *model.Alimento) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *alimentoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Alimento, error) {
	var a model.Alimento
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *alimentoRepo) List(ctx context.Context, filter dto.AlimentoFilter) ([]model.Alimento, int64, error) {
	var alimentos []model.Alimento
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Alimento{})

	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
		// no filter
	default:
		q = q.Where("activo = true")
	}
	if filter.Nombre != "" {
		q = q.Where("nombre ILIKE ?", "%"+filter.Nombre+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Order("nombre ASC").Limit(filter.Limit).Offset(offset).Find(&alimentos).Error
	return alimentos, total, err
}

func (r *alimentoRepo) Update(ctx context.Context, a *model.Alimento) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *alimentoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Alimento{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *alimentoRepo) ListBajoMinimo(ctx context.Context) ([]model.Alimento, error) {
	var alimentos []model.Alimento
	err := r.db.WithContext(ctx).
		Where("activo = true AND stock < stock_minimo").
		Order("nombre ASC").
		Find(&alimentos).Error
	return alimentos, err
}

func (r *alimentoRepo) AjustarStock(ctx context.Context, id uuid.UUID, delta decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Alimento{}).
		Where("id = ? AND activo = true AND stock + ? >= 0", id, delta).
		Update("stock", gorm.Expr("stock + ?", delta))
	return res.RowsAffected > 0, res.Error
}

func (r *alimentoRepo) FindByIDTxLock(tx *gorm.DB, id uuid.UUID) (*model.Alimento, error) {
	var a model.Alimento
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *alimentoRepo) UpdateStockTx(tx *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	return tx.Model(&model.Alimento{}).Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", delta)).Error
}

func (r *alimentoRepo) DB() *gorm.DB { return r.db }
