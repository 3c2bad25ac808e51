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
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// La gestación del cuy dura entre 59 y 72 días; se usa el promedio para
// estimar la fecha probable de parto.
const diasGestacion = 68

// Peso de nacimiento por defecto cuando el parto no lo reporta, en gramos.
const pesoNacimientoGramos = 100

// ReproduccionService covers pregnancies and litter registration. A litter
// registers its live pups through the Classification Engine's bulk path, so
// each pup gets a derived stage and purpose.
type ReproduccionService interface {
	CrearPrenez(ctx context.Context, req dto.CrearPrenezRequest) (*dto.PrenezResponse, error)
	ListarPreneces(ctx context.Context, estado string) ([]dto.PrenezResponse, error)
	MarcarFallida(ctx context.Context, id uuid.UUID, notas *string) (*dto.PrenezResponse, error)
	RegistrarParto(ctx context.Context, prenezID uuid.UUID, req dto.RegistrarPartoRequest) (*dto.CamadaResponse, error)
}

type reproduccionService struct {
	repo    repository.ReproduccionRepository
	cuyRepo repository.CuyRepository
	cuySvc  CuyService
	now     func() time.Time
}

func NewReproduccionService(repo repository.ReproduccionRepository, cuyRepo repository.CuyRepository, cuySvc CuyService) ReproduccionService {
	return &reproduccionService{repo: repo, cuyRepo: cuyRepo, cuySvc: cuySvc, now: time.Now}
}

func (s *reproduccionService) CrearPrenez(ctx context.Context, req dto.CrearPrenezRequest) (*dto.PrenezResponse, error) {
	madreID, err := uuid.Parse(req.MadreID)
	if err != nil {
		return nil, fmt.Errorf("madre_id inválido: %w", err)
	}
	madre, err := s.cuyRepo.FindByID(ctx, madreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: cuy %s", ErrNoEncontrado, req.MadreID)
		}
		return nil, err
	}
	if madre.Sexo != model.SexoHembra {
		return nil, errors.New("la madre debe ser una hembra")
	}

	var padreID *uuid.UUID
	if req.PadreID != nil {
		pid, err := uuid.Parse(*req.PadreID)
		if err != nil {
			return nil, fmt.Errorf("padre_id inválido: %w", err)
		}
		if _, err := s.cuyRepo.FindByID(ctx, pid); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: cuy %s", ErrNoEncontrado, *req.PadreID)
			}
			return nil, err
		}
		padreID = &pid
	}

	fechaPrenez, err := time.Parse("2006-01-02", req.FechaPrenez)
	if err != nil {
		return nil, fmt.Errorf("fecha_prenez inválida: %w", err)
	}

	p := model.Prenez{
		MadreID:            madreID,
		PadreID:            padreID,
		FechaPrenez:        fechaPrenez,
		FechaProbableParto: fechaPrenez.AddDate(0, 0, diasGestacion),
		Estado:             model.PrenezEnCurso,
		Notas:              req.Notas,
	}
	if err := s.repo.CreatePrenez(ctx, &p); err != nil {
		return nil, err
	}
	return prenezToResponse(&p), nil
}

func (s *reproduccionService) ListarPreneces(ctx context.Context, estado string) ([]dto.PrenezResponse, error) {
	preneces, err := s.repo.ListPreneces(ctx, estado)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PrenezResponse, 0, len(preneces))
	for i := range preneces {
		items = append(items, *prenezToResponse(&preneces[i]))
	}
	return items, nil
}

func (s *reproduccionService) MarcarFallida(ctx context.Context, id uuid.UUID, notas *string) (*dto.PrenezResponse, error) {
	p, err := s.repo.FindPrenezByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: preñez %s", ErrNoEncontrado, id)
		}
		return nil, err
	}
	if p.Estado != model.PrenezEnCurso {
		return nil, errors.New("la preñez ya fue cerrada")
	}
	p.Estado = model.PrenezFallida
	if notas != nil {
		p.Notas = notas
	}
	if err := s.repo.UpdatePrenez(ctx, p); err != nil {
		return nil, err
	}
	return prenezToResponse(p), nil
}

// RegistrarParto closes the pregnancy and records the camada in one
// transaction, then registers the live pups through the bulk path. Pup
// creation keeps the bulk path's per-unit semantics: a failure there leaves
// the camada recorded and is reported to the caller.
func (s *reproduccionService) RegistrarParto(ctx context.Context, prenezID uuid.UUID, req dto.RegistrarPartoRequest) (*dto.CamadaResponse, error) {
	p, err := s.repo.FindPrenezByID(ctx, prenezID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: preñez %s", ErrNoEncontrado, prenezID)
		}
		return nil, err
	}
	if p.Estado != model.PrenezEnCurso {
		return nil, errors.New("la preñez ya fue cerrada")
	}

	fechaNacimiento, err := time.Parse("2006-01-02", req.FechaNacimiento)
	if err != nil {
		return nil, fmt.Errorf("fecha_nacimiento inválida: %w", err)
	}

	var camada model.Camada
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		camada = model.Camada{
			PrenezID:        prenezID,
			FechaNacimiento: fechaNacimiento,
			NumVivos:        req.NumVivos,
			NumMuertos:      req.NumMuertos,
		}
		if err := s.repo.CreateCamadaTx(tx, &camada); err != nil {
			return err
		}
		p.Estado = model.PrenezFinalizada
		return s.repo.UpdatePrenezTx(tx, p)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.CamadaResponse{
		ID:              camada.ID.String(),
		PrenezID:        camada.PrenezID.String(),
		FechaNacimiento: fechaNacimiento.Format("2006-01-02"),
		NumVivos:        camada.NumVivos,
		NumMuertos:      camada.NumMuertos,
	}

	if req.NumVivos == 0 {
		return resp, nil
	}

	peso := req.PesoPromedio
	if peso <= 0 {
		peso = pesoNacimientoGramos
	}
	edadDias := int(s.now().Sub(fechaNacimiento).Hours() / 24)
	if edadDias < 0 {
		edadDias = 0
	}

	machos := req.NumVivos / 2
	hembras := req.NumVivos - machos
	grupos := make([]dto.GrupoRegistro, 0, 2)
	if machos > 0 {
		grupos = append(grupos, dto.GrupoRegistro{Sexo: model.SexoMacho, Cantidad: machos, EdadDias: edadDias, PesoGramos: peso})
	}
	if hembras > 0 {
		grupos = append(grupos, dto.GrupoRegistro{Sexo: model.SexoHembra, Cantidad: hembras, EdadDias: edadDias, PesoGramos: peso})
	}

	crias, err := s.cuySvc.CrearDesdeGrupos(ctx, dto.RegistroMasivoRequest{
		Galpon: req.Galpon,
		Poza:   req.Poza,
		Raza:   req.Raza,
		Grupos: grupos,
	})
	if err != nil {
		log.Error().Err(err).
			Str("prenez_id", prenezID.String()).
			Int("crias_registradas", len(crias)).
			Msg("registro parcial de crías tras el parto")
		resp.Crias = crias
		return resp, err
	}
	resp.Crias = crias
	return resp, nil
}

func prenezToResponse(p *model.Prenez) *dto.PrenezResponse {
	var padreID *string
	if p.PadreID != nil {
		s := p.PadreID.String()
		padreID = &s
	}
	return &dto.PrenezResponse{
		ID:                 p.ID.String(),
		MadreID:            p.MadreID.String(),
		PadreID:            padreID,
		FechaPrenez:        p.FechaPrenez.Format("2006-01-02"),
		FechaProbableParto: p.FechaProbableParto.Format("2006-01-02"),
		Estado:             p.Estado,
		Notas:              p.Notas,
	}
}
