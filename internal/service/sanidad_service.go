package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SanidadService covers health-record CRUD per animal.
type SanidadService interface {
	Crear(ctx context.Context, req dto.CrearRegistroSanitarioRequest) (*dto.RegistroSanitarioResponse, error)
	ListarPorCuy(ctx context.Context, cuyID uuid.UUID) ([]dto.RegistroSanitarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRegistroSanitarioRequest) (*dto.RegistroSanitarioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type sanidadService struct {
	repo    repository.SanidadRepository
	cuyRepo repository.CuyRepository
}

func NewSanidadService(repo repository.SanidadRepository, cuyRepo repository.CuyRepository) SanidadService {
	return &sanidadService{repo: repo, cuyRepo: cuyRepo}
}

func (s *sanidadService) Crear(ctx context.Context, req dto.CrearRegistroSanitarioRequest) (*dto.RegistroSanitarioResponse, error) {
	cuyID, err := uuid.Parse(req.CuyID)
	if err != nil {
		return nil, fmt.Errorf("cuy_id inválido: %w", err)
	}
	if _, err := s.cuyRepo.FindByID(ctx, cuyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cuy %s", ErrNoEncontrado, req.CuyID)
		}
		return nil, err
	}
	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida: %w", err)
	}

	rs := model.RegistroSanitario{
		CuyID:       cuyID,
		Fecha:       fecha,
		Tipo:        req.Tipo,
		Descripcion: req.Descripcion,
		Tratamiento: req.Tratamiento,
		Veterinario: req.Veterinario,
	}
	if err := s.repo.Create(ctx, &rs); err != nil {
		return nil, err
	}
	return registroToResponse(&rs), nil
}

func (s *sanidadService) ListarPorCuy(ctx context.Context, cuyID uuid.UUID) ([]dto.RegistroSanitarioResponse, error) {
	registros, err := s.repo.ListByCuy(ctx, cuyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.RegistroSanitarioResponse, 0, len(registros))
	for i := range registros {
		items = append(items, *registroToResponse(&registros[i]))
	}
	return items, nil
}

func (s *sanidadService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRegistroSanitarioRequest) (*dto.RegistroSanitarioResponse, error) {
	rs, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: registro sanitario %s", ErrNoEncontrado, id)
		}
		return nil, err
	}

	if req.Fecha != nil {
		fecha, err := time.Parse("2006-01-02", *req.Fecha)
		if err != nil {
			return nil, fmt.Errorf("fecha inválida: %w", err)
		}
		rs.Fecha = fecha
	}
	if req.Tipo != nil {
		rs.Tipo = *req.Tipo
	}
	if req.Descripcion != nil {
		rs.Descripcion = *req.Descripcion
	}
	if req.Tratamiento != nil {
		rs.Tratamiento = req.Tratamiento
	}
	if req.Veterinario != nil {
		rs.Veterinario = req.Veterinario
	}

	if err := s.repo.Update(ctx, rs); err != nil {
		return nil, err
	}
	return registroToResponse(rs), nil
}

func (s *sanidadService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: registro sanitario %s", ErrNoEncontrado, id)
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func registroToResponse(rs *model.RegistroSanitario) *dto.RegistroSanitarioResponse {
	return &dto.RegistroSanitarioResponse{
		ID:          rs.ID.String(),
		CuyID:       rs.CuyID.String(),
		Fecha:       rs.Fecha.Format("2006-01-02"),
		Tipo:        rs.Tipo,
		Descripcion: rs.Descripcion,
		Tratamiento: rs.Tratamiento,
		Veterinario: rs.Veterinario,
	}
}
