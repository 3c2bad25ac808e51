package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AlimentoService covers feed inventory CRUD and manual stock adjustments.
// Ledger-driven mutations never go through here; see ConsumoService.
type AlimentoService interface {
	Crear(ctx context.Context, req dto.CrearAlimentoRequest) (*dto.AlimentoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.AlimentoResponse, error)
	Listar(ctx context.Context, filter dto.AlimentoFilter) (*dto.AlimentoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarAlimentoRequest) (*dto.AlimentoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.AlimentoResponse, error)
	Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error)
}

type alimentoService struct {
	repo repository.AlimentoRepository
}

func NewAlimentoService(repo repository.AlimentoRepository) AlimentoService {
	return &alimentoService{repo: repo}
}

func (s *alimentoService) Crear(ctx context.Context, req dto.CrearAlimentoRequest) (*dto.AlimentoResponse, error) {
	a := model.Alimento{
		Nombre:        req.Nombre,
		Descripcion:   req.Descripcion,
		Unidad:        req.Unidad,
		Stock:         req.Stock,
		StockMinimo:   req.StockMinimo,
		CostoUnitario: req.CostoUnitario,
		Activo:        true,
	}
	if err := s.repo.Create(ctx, &a); err != nil {
		return nil, err
	}
	return alimentoToResponse(&a), nil
}

func (s *alimentoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.AlimentoResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: alimento %s", ErrNoEncontrado, id)
		}
		return nil, err
	}
	return alimentoToResponse(a), nil
}

func (s *alimentoService) Listar(ctx context.Context, filter dto.AlimentoFilter) (*dto.AlimentoListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	alimentos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AlimentoResponse, 0, len(alimentos))
	for i := range alimentos {
		items = append(items, *alimentoToResponse(&alimentos[i]))
	}
	return &dto.AlimentoListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *alimentoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarAlimentoRequest) (*dto.AlimentoResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: alimento %s", ErrNoEncontrado, id)
		}
		return nil, err
	}

	if req.Nombre != nil {
		a.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		a.Descripcion = req.Descripcion
	}
	if req.Unidad != nil {
		a.Unidad = *req.Unidad
	}
	if req.StockMinimo != nil {
		a.StockMinimo = *req.StockMinimo
	}
	if req.CostoUnitario != nil {
		a.CostoUnitario = *req.CostoUnitario
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return alimentoToResponse(a), nil
}

func (s *alimentoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: alimento %s", ErrNoEncontrado, id)
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

// AjustarStock aplica un delta manual. El repositorio pone la condición
// stock + delta >= 0 en el WHERE; cero filas afectadas significa que el
// ajuste dejaría stock negativo o que el alimento no existe.
func (s *alimentoService) AjustarStock(ctx context.Context, id uuid.UUID, req dto.AjustarStockRequest) (*dto.AlimentoResponse, error) {
	ok, err := s.repo.AjustarStock(ctx, id, req.Delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		a, findErr := s.repo.FindByID(ctx, id)
		if findErr != nil {
			return nil, fmt.Errorf("%w: alimento %s", ErrNoEncontrado, id)
		}
		return nil, &StockInsuficienteError{
			Alimento:   a.Nombre,
			Unidad:     a.Unidad,
			Disponible: a.Stock,
			Solicitado: req.Delta.Neg(),
		}
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return alimentoToResponse(a), nil
}

func (s *alimentoService) Alertas(ctx context.Context) ([]dto.AlertaStockResponse, error) {
	alimentos, err := s.repo.ListBajoMinimo(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.AlertaStockResponse, 0, len(alimentos))
	for i := range alimentos {
		a := &alimentos[i]
		alertas = append(alertas, dto.AlertaStockResponse{
			AlimentoID:  a.ID.String(),
			Nombre:      a.Nombre,
			Unidad:      a.Unidad,
			Stock:       a.Stock,
			StockMinimo: a.StockMinimo,
		})
	}
	return alertas, nil
}

func alimentoToResponse(a *model.Alimento) *dto.AlimentoResponse {
	return &dto.AlimentoResponse{
		ID:            a.ID.String(),
		Nombre:        a.Nombre,
		Descripcion:   a.Descripcion,
		Unidad:        a.Unidad,
		Stock:         a.Stock,
		StockMinimo:   a.StockMinimo,
		CostoUnitario: a.CostoUnitario,
		Activo:        a.Activo,
	}
}
