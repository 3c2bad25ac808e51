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

// GalponService covers housing CRUD and occupancy summaries.
type GalponService interface {
	Crear(ctx context.Context, req dto.CrearGalponRequest) (*dto.GalponResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.GalponResponse, error)
	Listar(ctx context.Context) ([]dto.GalponResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarGalponRequest) (*dto.GalponResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	CrearPoza(ctx context.Context, req dto.CrearPozaRequest) (*dto.PozaResponse, error)
	EliminarPoza(ctx context.Context, id uuid.UUID) error
}

type galponService struct {
	repo    repository.GalponRepository
	cuyRepo repository.CuyRepository
}

func NewGalponService(repo repository.GalponRepository, cuyRepo repository.CuyRepository) GalponService {
	return &galponService{repo: repo, cuyRepo: cuyRepo}
}

func (s *galponService) Crear(ctx context.Context, req dto.CrearGalponRequest) (*dto.GalponResponse, error) {
	if existing, err := s.repo.FindByNombre(ctx, req.Nombre); err == nil && existing != nil {
		return nil, errors.New("ya existe un galpón con ese nombre")
	}
	g := model.Galpon{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		Capacidad:   req.Capacidad,
	}
	if err := s.repo.Create(ctx, &g); err != nil {
		return nil, err
	}
	return s.galponToResponse(ctx, &g), nil
}

func (s *galponService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.GalponResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: galpón %s", ErrNoEncontrado, id)
		}
		return nil, err
	}
	return s.galponToResponse(ctx, g), nil
}

func (s *galponService) Listar(ctx context.Context) ([]dto.GalponResponse, error) {
	galpones, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.GalponResponse, 0, len(galpones))
	for i := range galpones {
		items = append(items, *s.galponToResponse(ctx, &galpones[i]))
	}
	return items, nil
}

func (s *galponService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarGalponRequest) (*dto.GalponResponse, error) {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: galpón %s", ErrNoEncontrado, id)
		}
		return nil, err
	}
	if req.Nombre != nil {
		g.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		g.Descripcion = req.Descripcion
	}
	if req.Capacidad != nil {
		g.Capacidad = *req.Capacidad
	}
	if err := s.repo.Update(ctx, g); err != nil {
		return nil, err
	}
	return s.galponToResponse(ctx, g), nil
}

func (s *galponService) Eliminar(ctx context.Context, id uuid.UUID) error {
	g, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: galpón %s", ErrNoEncontrado, id)
		}
		return err
	}
	ocupacion, err := s.cuyRepo.CountByGalpon(ctx, g.Nombre)
	if err != nil {
		return err
	}
	if ocupacion > 0 {
		return fmt.Errorf("el galpón %s tiene %d cuyes; reubíquelos antes de eliminarlo", g.Nombre, ocupacion)
	}
	return s.repo.Delete(ctx, id)
}

func (s *galponService) CrearPoza(ctx context.Context, req dto.CrearPozaRequest) (*dto.PozaResponse, error) {
	galponID, err := uuid.Parse(req.GalponID)
	if err != nil {
		return nil, fmt.Errorf("galpon_id inválido: %w", err)
	}
	if _, err := s.repo.FindByID(ctx, galponID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: galpón %s", ErrNoEncontrado, req.GalponID)
		}
		return nil, err
	}
	tipo := req.Tipo
	if tipo == "" {
		tipo = "engorde"
	}
	p := model.Poza{
		GalponID:  galponID,
		Codigo:    req.Codigo,
		Tipo:      tipo,
		Capacidad: req.Capacidad,
	}
	if err := s.repo.CreatePoza(ctx, &p); err != nil {
		return nil, err
	}
	return &dto.PozaResponse{
		ID:        p.ID.String(),
		GalponID:  p.GalponID.String(),
		Codigo:    p.Codigo,
		Tipo:      p.Tipo,
		Capacidad: p.Capacidad,
	}, nil
}

func (s *galponService) EliminarPoza(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindPozaByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: poza %s", ErrNoEncontrado, id)
		}
		return err
	}
	return s.repo.DeletePoza(ctx, id)
}

func (s *galponService) galponToResponse(ctx context.Context, g *model.Galpon) *dto.GalponResponse {
	ocupacion, err := s.cuyRepo.CountByGalpon(ctx, g.Nombre)
	if err != nil {
		ocupacion = 0
	}
	pozas := make([]dto.PozaResponse, 0, len(g.Pozas))
	for i := range g.Pozas {
		p := &g.Pozas[i]
		ocupacionPoza, err := s.cuyRepo.CountByPoza(ctx, g.Nombre, p.Codigo)
		if err != nil {
			ocupacionPoza = 0
		}
		pozas = append(pozas, dto.PozaResponse{
			ID:        p.ID.String(),
			GalponID:  p.GalponID.String(),
			Codigo:    p.Codigo,
			Tipo:      p.Tipo,
			Capacidad: p.Capacidad,
			Ocupacion: ocupacionPoza,
		})
	}
	return &dto.GalponResponse{
		ID:          g.ID.String(),
		Nombre:      g.Nombre,
		Descripcion: g.Descripcion,
		Capacidad:   g.Capacidad,
		Ocupacion:   ocupacion,
		Pozas:       pozas,
	}
}
