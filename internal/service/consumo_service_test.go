package service

import (
	"context"
	"testing"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory AlimentoRepository stub ────────────────────────────────────────

type stubAlimentoRepo struct {
	alimentos map[uuid.UUID]*model.Alimento
}

func newStubAlimentoRepo() *stubAlimentoRepo {
	return &stubAlimentoRepo{alimentos: make(map[uuid.UUID]*model.Alimento)}
}

func (r *stubAlimentoRepo) Create(_ context.Context, a *model.Alimento) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.alimentos[a.ID] = a
	return nil
}

func (r *stubAlimentoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Alimento, error) {
	a, ok := r.alimentos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAlimentoRepo) List(_ context.Context, _ dto.AlimentoFilter) ([]model.Alimento, int64, error) {
	var result []model.Alimento
	for _, a := range r.alimentos {
		if a.Activo {
			result = append(result, *a)
		}
	}
	return result, int64(len(result)), nil
}

func (r *stubAlimentoRepo) Update(_ context.Context, a *model.Alimento) error {
	r.alimentos[a.ID] = a
	return nil
}

func (r *stubAlimentoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	a, ok := r.alimentos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Activo = false
	return nil
}

func (r *stubAlimentoRepo) ListBajoMinimo(_ context.Context) ([]model.Alimento, error) {
	var result []model.Alimento
	for _, a := range r.alimentos {
		if a.Activo && a.Stock.LessThan(a.StockMinimo) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (r *stubAlimentoRepo) AjustarStock(_ context.Context, id uuid.UUID, delta decimal.Decimal) (bool, error) {
	a, ok := r.alimentos[id]
	if !ok || !a.Activo || a.Stock.Add(delta).IsNegative() {
		return false, nil
	}
	a.Stock = a.Stock.Add(delta)
	return true, nil
}

func (r *stubAlimentoRepo) FindByIDTxLock(_ *gorm.DB, id uuid.UUID) (*model.Alimento, error) {
	a, ok := r.alimentos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubAlimentoRepo) UpdateStockTx(_ *gorm.DB, id uuid.UUID, delta decimal.Decimal) error {
	a, ok := r.alimentos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Stock = a.Stock.Add(delta)
	return nil
}

func (r *stubAlimentoRepo) DB() *gorm.DB { return nil }

var _ repository.AlimentoRepository = (*stubAlimentoRepo)(nil)

// ── In-memory ConsumoRepository stub ─────────────────────────────────────────

type stubConsumoRepo struct {
	consumos map[uuid.UUID]*model.ConsumoAlimento
}

func newStubConsumoRepo() *stubConsumoRepo {
	return &stubConsumoRepo{consumos: make(map[uuid.UUID]*model.ConsumoAlimento)}
}

func (r *stubConsumoRepo) CreateTx(_ *gorm.DB, c *model.ConsumoAlimento) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.consumos[c.ID] = c
	return nil
}

func (r *stubConsumoRepo) UpdateTx(_ *gorm.DB, c *model.ConsumoAlimento) error {
	r.consumos[c.ID] = c
	return nil
}

func (r *stubConsumoRepo) DeleteTx(_ *gorm.DB, id uuid.UUID) error {
	delete(r.consumos, id)
	return nil
}

func (r *stubConsumoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.ConsumoAlimento, error) {
	c, ok := r.consumos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubConsumoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.ConsumoAlimento, error) {
	c, ok := r.consumos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubConsumoRepo) List(_ context.Context, _ dto.ConsumoFilter) ([]model.ConsumoAlimento, int64, error) {
	result := make([]model.ConsumoAlimento, 0, len(r.consumos))
	for _, c := range r.consumos {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (r *stubConsumoRepo) Estadisticas(_ context.Context, _, _ *time.Time) (*dto.EstadisticasConsumoResponse, error) {
	return &dto.EstadisticasConsumoResponse{TotalRegistros: int64(len(r.consumos))}, nil
}

func (r *stubConsumoRepo) DB() *gorm.DB { return nil }

var _ repository.ConsumoRepository = (*stubConsumoRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

func seedAlimento(repo *stubAlimentoRepo, nombre string, stock int64) *model.Alimento {
	a := &model.Alimento{
		ID:            uuid.New(),
		Nombre:        nombre,
		Unidad:        "kg",
		Stock:         decimal.NewFromInt(stock),
		StockMinimo:   decimal.NewFromInt(5),
		CostoUnitario: decimal.NewFromFloat(1.80),
		Activo:        true,
	}
	repo.alimentos[a.ID] = a
	return a
}

func registrar(t *testing.T, svc ConsumoService, alimentoID string, cantidad int64) *dto.ConsumoResponse {
	t.Helper()
	resp, err := svc.Registrar(context.Background(), dto.RegistrarConsumoRequest{
		Galpon:     "G1",
		Fecha:      "2026-08-30",
		AlimentoID: alimentoID,
		Cantidad:   decimal.NewFromInt(cantidad),
	})
	require.NoError(t, err)
	return resp
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRegistrarConsumoDescuentaStock(t *testing.T) {
	alimentoRepo := newStubAlimentoRepo()
	consumoRepo := newStubConsumoRepo()
	svc := NewConsumoService(consumoRepo, alimentoRepo)

	alfalfa := seedAlimento(alimentoRepo, "Alfalfa fresca", 100)

	resp := registrar(t, svc, alfalfa.ID.String(), 30)
	assert.Equal(t, "G1", resp.Galpon)
	assert.Equal(t, "Alfalfa fresca", resp.Alimento)
	assert.Equal(t, "30", resp.Cantidad.String())
	assert.Equal(t, "70", alfalfa.Stock.String())
}

func TestRegistrarConsumoStockInsuficiente(t *testing.T) {
	alimentoRepo := newStubAlimentoRepo()
	consumoRepo := newStubConsumoRepo()
	svc := NewConsumoService(consumoRepo, alimentoRepo)

	concentrado := seedAlimento(alimentoRepo, "Concentrado inicio", 5)

	_, err := svc.Registrar(context.Background(), dto.RegistrarConsumoRequest{
		Galpon:     "G2",
		Fecha:      "2026-08-30",
		AlimentoID: concentrado.ID.String(),
		Cantidad:   decimal.NewFromInt(10),
	})

	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	// El mensaje lleva disponible y solicitado con unidad.
	assert.Contains(t, err.Error(), "disponible 5 kg")
	assert.Contains(t, err.Error(), "solicitado 10 kg")

	// El rechazo no toca ni stock ni ledger.
	assert.Equal(t, "5", concentrado.Stock.String())
	assert.Empty(t, consumoRepo.consumos)
}

func TestRegistrarConsumoAlimentoInexistente(t *testing.T) {
	svc := NewConsumoService(newStubConsumoRepo(), newStubAlimentoRepo())

	_, err := svc.Registrar(context.Background(), dto.RegistrarConsumoRequest{
		Galpon:     "G1",
		Fecha:      "2026-08-30",
		AlimentoID: uuid.NewString(),
		Cantidad:   decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, ErrNoEncontrado)
}

func TestActualizarConsumoReaplicaStock(t *testing.T) {
	alimentoRepo := newStubAlimentoRepo()
	consumoRepo := newStubConsumoRepo()
	svc := NewConsumoService(consumoRepo, alimentoRepo)

	alfalfa := seedAlimento(alimentoRepo, "Alfalfa fresca", 100)
	consumo := registrar(t, svc, alfalfa.ID.String(), 30)
	require.Equal(t, "70", alfalfa.Stock.String())

	// Subir a 50: se revierte el 30 original y se descuenta 50.
	nueva := decimal.NewFromInt(50)
	resp, err := svc.Actualizar(context.Background(), uuid.MustParse(consumo.ID), dto.ActualizarConsumoRequest{
		Cantidad: &nueva,
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, "50", resp.Cantidad.String())
	assert.Equal(t, "50", alfalfa.Stock.String())
}

func TestActualizarConsumoCambiaDeAlimento(t *testing.T) {
	alimentoRepo := newStubAlimentoRepo()
	consumoRepo := newStubConsumoRepo()
	svc := NewConsumoService(consumoRepo, alimentoRepo)

	alfalfa := seedAlimento(alimentoRepo, "Alfalfa fresca", 100)
	maiz := seedAlimento(alimentoRepo, "Maíz chala", 80)

	consumo := registrar(t, svc, alfalfa.ID.String(), 20)
	require.Equal(t, "80", alfalfa.Stock.String())

	// Mover el consumo al maíz: alfalfa recupera 20, maíz descuenta 20.
	maizID := maiz.ID.String()
	resp, err := svc.Actualizar(context.Background(), uuid.MustParse(consumo.ID), dto.ActualizarConsumoRequest{
		AlimentoID: &maizID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Maíz chala", resp.Alimento)
	assert.Equal(t, "100", alfalfa.Stock.String())
	assert.Equal(t, "60", maiz.Stock.String())
}

func TestActualizarConsumoValidaContraStockReal(t *testing.T) {
	alimentoRepo := newStubAlimentoRepo()
	consumoRepo := newStubConsumoRepo()
	svc := NewConsumoService(consumoRepo, alimentoRepo)

	// Stock 40, consumo 30 → quedan 10 visibles. La actualización valida tras
	// revertir el descuento original: subir a 35 pasa (35 ≤ 40) aunque 35 > 10,
	// y subir a 45 se rechaza contra los 40 reales.
	alfalfa := seedAlimento(alimentoRepo, "Alfalfa fresca", 40)
	consumo := registrar(t, svc, alfalfa.ID.String(), 30)
	require.Equal(t, "10", alfalfa.Stock.String())

	nueva := decimal.NewFromInt(35)
	resp, err := svc.Actualizar(context.Background(), uuid.MustParse(consumo.ID), dto.ActualizarConsumoRequest{
		Cantidad: &nueva,
	})
	require.NoError(t, err)
	assert.Equal(t, "35", resp.Cantidad.String())
	assert.Equal(t, "5", alfalfa.Stock.String())

	excesiva := decimal.NewFromInt(45)
	_, err = svc.Actualizar(context.Background(), uuid.MustParse(consumo.ID), dto.ActualizarConsumoRequest{
		Cantidad: &excesiva,
	})
	var stockErr *StockInsuficienteError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "40", stockErr.Disponible.String())
	assert.Equal(t, "45", stockErr.Solicitado.String())
}

func TestActualizarConsumoInexistente(t *testing.T) {
	svc := NewConsumoService(newStubConsumoRepo(), newStubAlimentoRepo())

	nueva := decimal.NewFromInt(10)
	resp, err := svc.Actualizar(context.Background(), uuid.New(), dto.ActualizarConsumoRequest{
		Cantidad: &nueva,
	})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestEliminarConsumoRestauraStock(t *testing.T) {
	alimentoRepo := newStubAlimentoRepo()
	consumoRepo := newStubConsumoRepo()
	svc := NewConsumoService(consumoRepo, alimentoRepo)

	alfalfa := seedAlimento(alimentoRepo, "Alfalfa fresca", 100)
	consumo := registrar(t, svc, alfalfa.ID.String(), 30)
	require.Equal(t, "70", alfalfa.Stock.String())

	eliminado, err := svc.Eliminar(context.Background(), uuid.MustParse(consumo.ID))
	require.NoError(t, err)
	assert.True(t, eliminado)
	assert.Equal(t, "100", alfalfa.Stock.String())
}

func TestEliminarConsumoIdempotente(t *testing.T) {
	alimentoRepo := newStubAlimentoRepo()
	consumoRepo := newStubConsumoRepo()
	svc := NewConsumoService(consumoRepo, alimentoRepo)

	alfalfa := seedAlimento(alimentoRepo, "Alfalfa fresca", 100)
	consumo := registrar(t, svc, alfalfa.ID.String(), 30)

	eliminado, err := svc.Eliminar(context.Background(), uuid.MustParse(consumo.ID))
	require.NoError(t, err)
	require.True(t, eliminado)

	// Segunda eliminación: no existe, no es error y no toca el stock.
	eliminado, err = svc.Eliminar(context.Background(), uuid.MustParse(consumo.ID))
	require.NoError(t, err)
	assert.False(t, eliminado)
	assert.Equal(t, "100", alfalfa.Stock.String())
}

func TestCicloCompletoDelLedger(t *testing.T) {
	alimentoRepo := newStubAlimentoRepo()
	consumoRepo := newStubConsumoRepo()
	svc := NewConsumoService(consumoRepo, alimentoRepo)

	alfalfa := seedAlimento(alimentoRepo, "Alfalfa fresca", 100)

	consumo := registrar(t, svc, alfalfa.ID.String(), 30)
	assert.Equal(t, "70", alfalfa.Stock.String())

	nueva := decimal.NewFromInt(50)
	_, err := svc.Actualizar(context.Background(), uuid.MustParse(consumo.ID), dto.ActualizarConsumoRequest{
		Cantidad: &nueva,
	})
	require.NoError(t, err)
	assert.Equal(t, "50", alfalfa.Stock.String())

	_, err = svc.Eliminar(context.Background(), uuid.MustParse(consumo.ID))
	require.NoError(t, err)
	assert.Equal(t, "100", alfalfa.Stock.String())
}
