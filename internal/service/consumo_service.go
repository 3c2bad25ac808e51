package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/infra"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConsumoService owns the feed-consumption ledger: every create/update/delete
// keeps the linked alimento's stock equal to its initial stock minus the sum
// of active consumption records. All mutations are single transactions.
type ConsumoService interface {
	Registrar(ctx context.Context, req dto.RegistrarConsumoRequest) (*dto.ConsumoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarConsumoRequest) (*dto.ConsumoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) (bool, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ConsumoResponse, error)
	Listar(ctx context.Context, filter dto.ConsumoFilter) (*dto.ConsumoListResponse, error)
	Estadisticas(ctx context.Context, desde, hasta *time.Time) (*dto.EstadisticasConsumoResponse, error)
}

type consumoService struct {
	repo         repository.ConsumoRepository
	alimentoRepo repository.AlimentoRepository
}

func NewConsumoService(repo repository.ConsumoRepository, alimentoRepo repository.AlimentoRepository) ConsumoService {
	return &consumoService{repo: repo, alimentoRepo: alimentoRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// One transaction: lock alimento row, check stock, create record, decrement.
// The row lock serializes concurrent creates against the same alimento so two
// requests cannot both pass the check and drive the stock negative.

func (s *consumoService) Registrar(ctx context.Context, req dto.RegistrarConsumoRequest) (*dto.ConsumoResponse, error) {
	alimentoID, err := uuid.Parse(req.AlimentoID)
	if err != nil {
		return nil, fmt.Errorf("alimento_id inválido: %w", err)
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", err)
	}

	var consumo model.ConsumoAlimento
	var alimento *model.Alimento
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		alimento, err = s.alimentoRepo.FindByIDTxLock(tx, alimentoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: alimento %s", ErrNoEncontrado, req.AlimentoID)
			}
			return err
		}
		if alimento.Stock.LessThan(req.Cantidad) {
			infra.ConsumosRechazadosStock.Inc()
			return &StockInsuficienteError{
				Alimento:   alimento.Nombre,
				Unidad:     alimento.Unidad,
				Disponible: alimento.Stock,
				Solicitado: req.Cantidad,
			}
		}

		consumo = model.ConsumoAlimento{
			Galpon:     req.Galpon,
			Fecha:      fecha,
			AlimentoID: alimentoID,
			Cantidad:   req.Cantidad,
		}
		if err := s.repo.CreateTx(tx, &consumo); err != nil {
			return err
		}
		return s.alimentoRepo.UpdateStockTx(tx, alimentoID, req.Cantidad.Neg())
	})
	if txErr != nil {
		return nil, txErr
	}

	infra.ConsumosRegistrados.Inc()
	return consumoToResponse(&consumo, alimento), nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────
// Reverse-then-reapply inside one transaction: restore the ORIGINAL alimento
// by the ORIGINAL quantity first (even when the alimento reference changes),
// then re-check the NEW target against the NEW quantity. Reversing before
// re-validating means a quantity increase is checked against the true
// availability, not one masked by the record's own prior deduction. Any
// failure rolls back the reversal too.

func (s *consumoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarConsumoRequest) (*dto.ConsumoResponse, error) {
	var consumo *model.ConsumoAlimento
	var alimento *model.Alimento
	notFound := false

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		consumo, err = s.repo.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				notFound = true
				return nil
			}
			return err
		}

		origAlimentoID := consumo.AlimentoID
		origCantidad := consumo.Cantidad

		// Lock the original row before touching its stock.
		if _, err := s.alimentoRepo.FindByIDTxLock(tx, origAlimentoID); err != nil {
			return err
		}
		if err := s.alimentoRepo.UpdateStockTx(tx, origAlimentoID, origCantidad); err != nil {
			return err
		}

		// Apply partial updates.
		if req.Galpon != nil {
			consumo.Galpon = *req.Galpon
		}
		if req.Fecha != nil {
			fecha, err := time.Parse("2006-01-02", *req.Fecha)
			if err != nil {
				return fmt.Errorf("fecha inválida: %w", err)
			}
			consumo.Fecha = fecha
		}
		if req.AlimentoID != nil {
			nuevoID, err := uuid.Parse(*req.AlimentoID)
			if err != nil {
				return fmt.Errorf("alimento_id inválido: %w", err)
			}
			consumo.AlimentoID = nuevoID
		}
		if req.Cantidad != nil {
			consumo.Cantidad = *req.Cantidad
		}

		// Re-read the (possibly different) target with the reversal applied.
		alimento, err = s.alimentoRepo.FindByIDTxLock(tx, consumo.AlimentoID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: alimento %s", ErrNoEncontrado, consumo.AlimentoID)
			}
			return err
		}
		if alimento.Stock.LessThan(consumo.Cantidad) {
			infra.ConsumosRechazadosStock.Inc()
			return &StockInsuficienteError{
				Alimento:   alimento.Nombre,
				Unidad:     alimento.Unidad,
				Disponible: alimento.Stock,
				Solicitado: consumo.Cantidad,
			}
		}

		if err := s.repo.UpdateTx(tx, consumo); err != nil {
			return err
		}
		return s.alimentoRepo.UpdateStockTx(tx, consumo.AlimentoID, consumo.Cantidad.Neg())
	})
	if txErr != nil {
		return nil, txErr
	}
	if notFound {
		return nil, nil
	}
	return consumoToResponse(consumo, alimento), nil
}

// ── Eliminar ──────────────────────────────────────────────────────────────────
// Restores the stock before removing the record. Deleting a nonexistent
// record is an idempotent no-op: (false, nil), never an error.

func (s *consumoService) Eliminar(ctx context.Context, id uuid.UUID) (bool, error) {
	existed := false
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		consumo, err := s.repo.FindByIDTx(tx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		existed = true

		if _, err := s.alimentoRepo.FindByIDTxLock(tx, consumo.AlimentoID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: alimento %s", ErrNoEncontrado, consumo.AlimentoID)
			}
			return err
		}
		if err := s.alimentoRepo.UpdateStockTx(tx, consumo.AlimentoID, consumo.Cantidad); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
	if txErr != nil {
		return false, txErr
	}
	return existed, nil
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *consumoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.ConsumoResponse, error) {
	consumo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return consumoToResponse(consumo, consumo.Alimento), nil
}

func (s *consumoService) Listar(ctx context.Context, filter dto.ConsumoFilter) (*dto.ConsumoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	consumos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ConsumoResponse, 0, len(consumos))
	for i := range consumos {
		items = append(items, *consumoToResponse(&consumos[i], consumos[i].Alimento))
	}
	return &dto.ConsumoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *consumoService) Estadisticas(ctx context.Context, desde, hasta *time.Time) (*dto.EstadisticasConsumoResponse, error) {
	return s.repo.Estadisticas(ctx, desde, hasta)
}

func consumoToResponse(c *model.ConsumoAlimento, a *model.Alimento) *dto.ConsumoResponse {
	resp := &dto.ConsumoResponse{
		ID:         c.ID.String(),
		Galpon:     c.Galpon,
		Fecha:      c.Fecha.Format("2006-01-02"),
		AlimentoID: c.AlimentoID.String(),
		Cantidad:   c.Cantidad,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
	if a != nil {
		resp.Alimento = a.Nombre
		resp.Unidad = a.Unidad
	}
	return resp
}
