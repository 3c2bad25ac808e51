package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/dto"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/infra"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"
	"github.com/Arcay322/Granja-cuyes-sub003/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Peso mínimo registrable para una cría, en kilogramos.
var pesoMinimoKg = decimal.RequireFromString("0.05")

// CuyService derives life stage and purpose from age and sex, applies
// age-gated purpose transitions and registers animals individually or in
// bulk from age/weight distributions.
type CuyService interface {
	Crear(ctx context.Context, req dto.CrearCuyRequest) (*dto.CuyResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CuyResponse, error)
	Listar(ctx context.Context, filter dto.CuyFilter) (*dto.CuyListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCuyRequest) (*dto.CuyResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	// CambiarProposito returns (nil, nil) when the animal does not exist so
	// callers can distinguish 404 from a rule rejection (400).
	CambiarProposito(ctx context.Context, id uuid.UUID, req dto.CambiarPropositoRequest) (*dto.CuyResponse, error)

	// CrearDesdeGrupos registers count animals per group sampling age and
	// weight around the given targets. Each creation is its own transaction:
	// on error, prior successes persist and the error is reported.
	CrearDesdeGrupos(ctx context.Context, req dto.RegistroMasivoRequest) ([]dto.CuyResponse, error)

	Estadisticas(ctx context.Context) (*dto.EstadisticasCuyesResponse, error)

	// Reevaluar recomputes stage/purpose for every active animal and persists
	// the ones whose derived stage changed. Returns how many were updated.
	Reevaluar(ctx context.Context) (int, error)
}

type cuyService struct {
	repo repository.CuyRepository
	// now is injected so stage derivation is testable with a fixed clock.
	now func() time.Time
}

func NewCuyService(repo repository.CuyRepository) CuyService {
	return &cuyService{repo: repo, now: time.Now}
}

// NewCuyServiceWithClock fixes the derivation clock; tests use this.
func NewCuyServiceWithClock(repo repository.CuyRepository, now func() time.Time) CuyService {
	return &cuyService{repo: repo, now: now}
}

// ── Crear ─────────────────────────────────────────────────────────────────────

func (s *cuyService) Crear(ctx context.Context, req dto.CrearCuyRequest) (*dto.CuyResponse, error) {
	nacimiento, err := time.Parse("2006-01-02", req.FechaNacimiento)
	if err != nil {
		return nil, fmt.Errorf("fecha_nacimiento inválida: %w", err)
	}

	ahora := s.now()
	etapa := req.Etapa
	proposito := req.Proposito
	if etapa == "" {
		etapa = DerivarEtapa(nacimiento, req.Sexo, ahora)
	}
	if proposito == "" {
		proposito = DerivarProposito(etapa)
	}
	estado := req.Estado
	if estado == "" {
		estado = model.EstadoActivo
	}

	cuy := model.Cuy{
		Raza:            req.Raza,
		FechaNacimiento: nacimiento,
		Sexo:            req.Sexo,
		Peso:            req.Peso,
		Galpon:          req.Galpon,
		Poza:            req.Poza,
		Estado:          estado,
		Etapa:           etapa,
		Proposito:       proposito,
		FechaEvaluacion: ahora,
	}
	if err := s.repo.Create(ctx, &cuy); err != nil {
		return nil, err
	}
	infra.CuyesRegistrados.Inc()
	return s.cuyToResponse(&cuy), nil
}

// ── Actualizar ────────────────────────────────────────────────────────────────
// Birth-date or sex changes trigger re-derivation; the derived stage wins
// over the stored one when it differs. When neither changes, an explicit
// etapa/proposito in the update is honored as a manual override.

func (s *cuyService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCuyRequest) (*dto.CuyResponse, error) {
	cuy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	derivar := false
	if req.FechaNacimiento != nil {
		nacimiento, err := time.Parse("2006-01-02", *req.FechaNacimiento)
		if err != nil {
			return nil, fmt.Errorf("fecha_nacimiento inválida: %w", err)
		}
		if !nacimiento.Equal(cuy.FechaNacimiento) {
			cuy.FechaNacimiento = nacimiento
			derivar = true
		}
	}
	if req.Sexo != nil && *req.Sexo != cuy.Sexo {
		cuy.Sexo = *req.Sexo
		derivar = true
	}
	if req.Raza != nil {
		cuy.Raza = *req.Raza
	}
	if req.Peso != nil {
		cuy.Peso = *req.Peso
	}
	if req.Galpon != nil {
		cuy.Galpon = *req.Galpon
	}
	if req.Poza != nil {
		cuy.Poza = *req.Poza
	}
	if req.Estado != nil {
		cuy.Estado = *req.Estado
	}

	if derivar {
		ahora := s.now()
		etapa := DerivarEtapa(cuy.FechaNacimiento, cuy.Sexo, ahora)
		if etapa != cuy.Etapa {
			cuy.Etapa = etapa
			cuy.Proposito = DerivarProposito(etapa)
			cuy.FechaEvaluacion = ahora
		}
	} else {
		if req.Etapa != nil {
			cuy.Etapa = *req.Etapa
		}
		if req.Proposito != nil {
			cuy.Proposito = *req.Proposito
		}
	}

	if err := s.repo.Update(ctx, cuy); err != nil {
		return nil, err
	}
	return s.cuyToResponse(cuy), nil
}

// ── CambiarProposito ──────────────────────────────────────────────────────────
// The only operation with age-gating rules, applied regardless of the
// current stage:
//   - any transition requires age ≥ 2 months
//   - to Reproducción: males ≥ 4 months, females ≥ 3 months

func (s *cuyService) CambiarProposito(ctx context.Context, id uuid.UUID, req dto.CambiarPropositoRequest) (*dto.CuyResponse, error) {
	cuy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	ahora := s.now()
	meses := EdadEnMeses(cuy.FechaNacimiento, ahora)

	if meses < 2 {
		infra.TransicionesRechazadas.Inc()
		return nil, &TransicionRechazadaError{
			Motivo: fmt.Sprintf("el cuy tiene %d meses; cualquier cambio de propósito requiere al menos 2 meses", meses),
		}
	}
	if req.Proposito == model.PropositoReproduccion {
		if cuy.Sexo == model.SexoMacho && meses < 4 {
			infra.TransicionesRechazadas.Inc()
			return nil, &TransicionRechazadaError{
				Motivo: fmt.Sprintf("los machos requieren al menos 4 meses para Reproducción (edad actual: %d meses)", meses),
			}
		}
		if cuy.Sexo == model.SexoHembra && meses < 3 {
			infra.TransicionesRechazadas.Inc()
			return nil, &TransicionRechazadaError{
				Motivo: fmt.Sprintf("las hembras requieren al menos 3 meses para Reproducción (edad actual: %d meses)", meses),
			}
		}
	}

	cuy.Proposito = req.Proposito
	cuy.Etapa = req.Etapa
	cuy.FechaEvaluacion = ahora
	if err := s.repo.Update(ctx, cuy); err != nil {
		return nil, err
	}
	return s.cuyToResponse(cuy), nil
}

// ── CrearDesdeGrupos ──────────────────────────────────────────────────────────

func (s *cuyService) CrearDesdeGrupos(ctx context.Context, req dto.RegistroMasivoRequest) ([]dto.CuyResponse, error) {
	ahora := s.now()
	creados := make([]dto.CuyResponse, 0)

	for _, grupo := range req.Grupos {
		for i := 0; i < grupo.Cantidad; i++ {
			dias := grupo.EdadDias + muestrearVariacion(grupo.VarEdadDias)
			if dias < 0 {
				dias = 0
			}
			gramos := grupo.PesoGramos + muestrearVariacion(grupo.VarPesoGramos)

			peso := decimal.NewFromInt(int64(gramos)).
				Div(decimal.NewFromInt(1000)).
				Round(3)
			if peso.LessThan(pesoMinimoKg) {
				peso = pesoMinimoKg
			}

			etapa := etapaPorDias(dias, grupo.Sexo)
			cuy := model.Cuy{
				Raza:            req.Raza,
				FechaNacimiento: ahora.AddDate(0, 0, -dias),
				Sexo:            grupo.Sexo,
				Peso:            peso,
				Galpon:          req.Galpon,
				Poza:            req.Poza,
				Estado:          model.EstadoActivo,
				Etapa:           etapa,
				Proposito:       propositoDeGrupo(etapa),
				FechaEvaluacion: ahora,
			}
			// Per-unit transaction: earlier successes persist even when a
			// later creation fails (at-least-once bulk seeding semantics).
			if err := s.repo.Create(ctx, &cuy); err != nil {
				log.Error().Err(err).
					Str("galpon", req.Galpon).
					Int("creados", len(creados)).
					Msg("registro masivo interrumpido")
				return creados, err
			}
			infra.CuyesRegistrados.Inc()
			creados = append(creados, *s.cuyToResponse(&cuy))
		}
	}
	return creados, nil
}

// muestrearVariacion samples a uniform integer in [-variacion, +variacion].
func muestrearVariacion(variacion int) int {
	if variacion <= 0 {
		return 0
	}
	return rand.Intn(2*variacion+1) - variacion
}

// ── Estadisticas ──────────────────────────────────────────────────────────────
// A failed aggregate query returns a typed error instead of fabricated
// numbers; the dashboard handler decides whether to serve a cached snapshot.

func (s *cuyService) Estadisticas(ctx context.Context) (*dto.EstadisticasCuyesResponse, error) {
	corte := s.now().AddDate(0, -2, 0)
	stats, err := s.repo.Estadisticas(ctx, corte)
	if err != nil {
		return nil, &EstadisticasNoDisponiblesError{Causa: err}
	}
	return stats, nil
}

// ── Reevaluar ─────────────────────────────────────────────────────────────────

func (s *cuyService) Reevaluar(ctx context.Context) (int, error) {
	cuyes, err := s.repo.ListarParaReevaluacion(ctx)
	if err != nil {
		return 0, err
	}

	ahora := s.now()
	actualizados := 0
	for i := range cuyes {
		cuy := &cuyes[i]
		etapa := DerivarEtapa(cuy.FechaNacimiento, cuy.Sexo, ahora)
		if etapa == cuy.Etapa {
			continue
		}
		cuy.Etapa = etapa
		cuy.Proposito = DerivarProposito(etapa)
		cuy.FechaEvaluacion = ahora
		if err := s.repo.Update(ctx, cuy); err != nil {
			return actualizados, err
		}
		infra.CuyesReevaluados.Inc()
		actualizados++
	}
	return actualizados, nil
}

// ── Lecturas ──────────────────────────────────────────────────────────────────

func (s *cuyService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.CuyResponse, error) {
	cuy, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return s.cuyToResponse(cuy), nil
}

func (s *cuyService) Listar(ctx context.Context, filter dto.CuyFilter) (*dto.CuyListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	cuyes, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CuyResponse, 0, len(cuyes))
	for i := range cuyes {
		items = append(items, *s.cuyToResponse(&cuyes[i]))
	}
	return &dto.CuyListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *cuyService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: cuy %s", ErrNoEncontrado, id)
		}
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *cuyService) cuyToResponse(c *model.Cuy) *dto.CuyResponse {
	return &dto.CuyResponse{
		ID:              c.ID.String(),
		Raza:            c.Raza,
		FechaNacimiento: c.FechaNacimiento.Format("2006-01-02"),
		Sexo:            c.Sexo,
		Peso:            c.Peso,
		Galpon:          c.Galpon,
		Poza:            c.Poza,
		Estado:          c.Estado,
		Etapa:           c.Etapa,
		Proposito:       c.Proposito,
		EdadMeses:       EdadEnMeses(c.FechaNacimiento, s.now()),
		FechaEvaluacion: c.FechaEvaluacion.Format(time.RFC3339),
	}
}
