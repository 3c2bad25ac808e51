package service

import (
	"context"
	"errors"
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

// ── In-memory CuyRepository stub ─────────────────────────────────────────────

type stubCuyRepo struct {
	cuyes map[uuid.UUID]*model.Cuy
	// failEstadisticas simula una caída del agregado del dashboard.
	failEstadisticas error
}

func newStubCuyRepo() *stubCuyRepo {
	return &stubCuyRepo{cuyes: make(map[uuid.UUID]*model.Cuy)}
}

func (r *stubCuyRepo) Create(_ context.Context, c *model.Cuy) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.cuyes[c.ID] = &cp
	return nil
}

func (r *stubCuyRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Cuy, error) {
	c, ok := r.cuyes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *stubCuyRepo) List(_ context.Context, _ dto.CuyFilter) ([]model.Cuy, int64, error) {
	result := make([]model.Cuy, 0, len(r.cuyes))
	for _, c := range r.cuyes {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (r *stubCuyRepo) Update(_ context.Context, c *model.Cuy) error {
	cp := *c
	r.cuyes[c.ID] = &cp
	return nil
}

func (r *stubCuyRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.cuyes, id)
	return nil
}

func (r *stubCuyRepo) Estadisticas(_ context.Context, corteCrias time.Time) (*dto.EstadisticasCuyesResponse, error) {
	if r.failEstadisticas != nil {
		return nil, r.failEstadisticas
	}
	resp := &dto.EstadisticasCuyesResponse{}
	for _, c := range r.cuyes {
		if c.Estado == model.EstadoVendido {
			continue
		}
		resp.Total++
		switch c.Sexo {
		case model.SexoMacho:
			resp.Machos++
		case model.SexoHembra:
			resp.Hembras++
		}
		if c.FechaNacimiento.After(corteCrias) {
			resp.Crias++
		}
	}
	return resp, nil
}

func (r *stubCuyRepo) ListarParaReevaluacion(_ context.Context) ([]model.Cuy, error) {
	var result []model.Cuy
	for _, c := range r.cuyes {
		if c.Estado == model.EstadoActivo || c.Estado == model.EstadoEnfermo {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *stubCuyRepo) CountByGalpon(_ context.Context, galpon string) (int64, error) {
	var n int64
	for _, c := range r.cuyes {
		if c.Galpon == galpon {
			n++
		}
	}
	return n, nil
}

func (r *stubCuyRepo) CountByPoza(_ context.Context, galpon, poza string) (int64, error) {
	var n int64
	for _, c := range r.cuyes {
		if c.Galpon == galpon && c.Poza == poza {
			n++
		}
	}
	return n, nil
}

func (r *stubCuyRepo) DB() *gorm.DB { return nil }

var _ repository.CuyRepository = (*stubCuyRepo)(nil)

// ── Helpers ──────────────────────────────────────────────────────────────────

// Reloj fijo para que la derivación de etapas sea determinista.
var ahora = fecha(2026, time.September, 1)

func newCuySvc(repo *stubCuyRepo) CuyService {
	return NewCuyServiceWithClock(repo, func() time.Time { return ahora })
}

func seedCuy(repo *stubCuyRepo, sexo string, nacimiento time.Time, etapa, proposito string) *model.Cuy {
	c := &model.Cuy{
		ID:              uuid.New(),
		Raza:            "Perú",
		FechaNacimiento: nacimiento,
		Sexo:            sexo,
		Peso:            decimal.NewFromFloat(0.8),
		Galpon:          "G1",
		Estado:          model.EstadoActivo,
		Etapa:           etapa,
		Proposito:       proposito,
		FechaEvaluacion: nacimiento,
	}
	repo.cuyes[c.ID] = c
	return c
}

// ── Crear / Actualizar ───────────────────────────────────────────────────────

func TestCrearCuyDerivaEtapaYProposito(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	casos := []struct {
		nombre            string
		nacimiento        string
		sexo              string
		etapaEsperada     string
		propositoEsperado string
	}{
		{"cría", "2026-08-01", "M", model.EtapaCria, model.PropositoIndefinido},
		{"juvenil", "2026-05-01", "H", model.EtapaJuvenil, model.PropositoIndefinido},
		{"macho adulto", "2026-02-01", "M", model.EtapaEngorde, model.PropositoEngorde},
		{"hembra adulta", "2026-02-01", "H", model.EtapaReproductora, model.PropositoReproduccion},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			resp, err := svc.Crear(context.Background(), dto.CrearCuyRequest{
				Raza:            "Perú",
				FechaNacimiento: c.nacimiento,
				Sexo:            c.sexo,
				Peso:            decimal.NewFromFloat(0.5),
				Galpon:          "G1",
			})
			require.NoError(t, err)
			assert.Equal(t, c.etapaEsperada, resp.Etapa)
			assert.Equal(t, c.propositoEsperado, resp.Proposito)
			assert.Equal(t, model.EstadoActivo, resp.Estado)
		})
	}
}

func TestCrearCuyRespetaOverrideExplicito(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	// Un macho de 7 meses se registraría como Engorde, pero el criador lo
	// marca explícitamente como reproductor.
	resp, err := svc.Crear(context.Background(), dto.CrearCuyRequest{
		Raza:            "Inti",
		FechaNacimiento: "2026-02-01",
		Sexo:            "M",
		Peso:            decimal.NewFromFloat(1.1),
		Galpon:          "G1",
		Etapa:           model.EtapaReproductor,
		Proposito:       model.PropositoReproduccion,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EtapaReproductor, resp.Etapa)
	assert.Equal(t, model.PropositoReproduccion, resp.Proposito)
}

func TestActualizarFechaNacimientoRederiva(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	cuy := seedCuy(repo, "M", fecha(2026, time.August, 1), model.EtapaCria, model.PropositoIndefinido)

	// Corregir la fecha de nacimiento a 7 meses atrás: pasa a Engorde.
	nueva := "2026-02-01"
	resp, err := svc.Actualizar(context.Background(), cuy.ID, dto.ActualizarCuyRequest{
		FechaNacimiento: &nueva,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EtapaEngorde, resp.Etapa)
	assert.Equal(t, model.PropositoEngorde, resp.Proposito)
}

func TestActualizarSinCambioDemograficoRespetaOverride(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	cuy := seedCuy(repo, "H", fecha(2026, time.February, 1), model.EtapaReproductora, model.PropositoReproduccion)

	// Sin tocar fecha ni sexo, un etapa/proposito explícito se acepta tal cual.
	etapa := model.EtapaEngorde
	proposito := model.PropositoEngorde
	resp, err := svc.Actualizar(context.Background(), cuy.ID, dto.ActualizarCuyRequest{
		Etapa:     &etapa,
		Proposito: &proposito,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EtapaEngorde, resp.Etapa)
	assert.Equal(t, model.PropositoEngorde, resp.Proposito)
}

func TestActualizarCuyInexistente(t *testing.T) {
	svc := newCuySvc(newStubCuyRepo())

	raza := "Andina"
	resp, err := svc.Actualizar(context.Background(), uuid.New(), dto.ActualizarCuyRequest{Raza: &raza})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

// ── CambiarProposito ─────────────────────────────────────────────────────────

func TestCambiarPropositoMenorDeDosMeses(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	cuy := seedCuy(repo, "M", fecha(2026, time.August, 1), model.EtapaCria, model.PropositoIndefinido)

	_, err := svc.CambiarProposito(context.Background(), cuy.ID, dto.CambiarPropositoRequest{
		Proposito: model.PropositoEngorde,
		Etapa:     model.EtapaEngorde,
	})
	var rechazo *TransicionRechazadaError
	require.ErrorAs(t, err, &rechazo)
	assert.Contains(t, rechazo.Motivo, "2 meses")
}

func TestCambiarPropositoReproduccionMacho(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	// 3 meses y 29 días: aún no cumple los 4 meses que exige el macho.
	joven := seedCuy(repo, "M", fecha(2026, time.May, 3), model.EtapaJuvenil, model.PropositoIndefinido)
	_, err := svc.CambiarProposito(context.Background(), joven.ID, dto.CambiarPropositoRequest{
		Proposito: model.PropositoReproduccion,
		Etapa:     model.EtapaReproductor,
	})
	var rechazo *TransicionRechazadaError
	require.ErrorAs(t, err, &rechazo)
	assert.Contains(t, rechazo.Motivo, "4 meses")

	// 4 meses exactos: pasa.
	listo := seedCuy(repo, "M", fecha(2026, time.May, 1), model.EtapaJuvenil, model.PropositoIndefinido)
	resp, err := svc.CambiarProposito(context.Background(), listo.ID, dto.CambiarPropositoRequest{
		Proposito: model.PropositoReproduccion,
		Etapa:     model.EtapaReproductor,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PropositoReproduccion, resp.Proposito)
	assert.Equal(t, model.EtapaReproductor, resp.Etapa)
}

func TestCambiarPropositoReproduccionHembra(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	// 2 meses y medio: supera el mínimo general pero no los 3 meses de la
	// hembra reproductora.
	joven := seedCuy(repo, "H", fecha(2026, time.June, 15), model.EtapaCria, model.PropositoIndefinido)
	_, err := svc.CambiarProposito(context.Background(), joven.ID, dto.CambiarPropositoRequest{
		Proposito: model.PropositoReproduccion,
		Etapa:     model.EtapaReproductora,
	})
	var rechazo *TransicionRechazadaError
	require.ErrorAs(t, err, &rechazo)
	assert.Contains(t, rechazo.Motivo, "3 meses")

	// Las hembras solo requieren 3 meses.
	hembra := seedCuy(repo, "H", fecha(2026, time.June, 1), model.EtapaJuvenil, model.PropositoIndefinido)
	resp, err := svc.CambiarProposito(context.Background(), hembra.ID, dto.CambiarPropositoRequest{
		Proposito: model.PropositoReproduccion,
		Etapa:     model.EtapaReproductora,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PropositoReproduccion, resp.Proposito)
}

func TestCambiarPropositoFueraDeReproduccionSoloExigeDosMeses(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	// Macho de 2 meses: puede ir a Engorde aunque no alcance para Reproducción.
	cuy := seedCuy(repo, "M", fecha(2026, time.July, 1), model.EtapaCria, model.PropositoIndefinido)
	resp, err := svc.CambiarProposito(context.Background(), cuy.ID, dto.CambiarPropositoRequest{
		Proposito: model.PropositoEngorde,
		Etapa:     model.EtapaEngorde,
	})
	require.NoError(t, err)
	assert.Equal(t, model.PropositoEngorde, resp.Proposito)
}

func TestCambiarPropositoInexistente(t *testing.T) {
	svc := newCuySvc(newStubCuyRepo())

	resp, err := svc.CambiarProposito(context.Background(), uuid.New(), dto.CambiarPropositoRequest{
		Proposito: model.PropositoEngorde,
		Etapa:     model.EtapaEngorde,
	})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

// ── CrearDesdeGrupos ─────────────────────────────────────────────────────────

func TestRegistroMasivoDerivaPorDias(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	creados, err := svc.CrearDesdeGrupos(context.Background(), dto.RegistroMasivoRequest{
		Galpon: "G1",
		Poza:   "P3",
		Raza:   "Perú",
		Grupos: []dto.GrupoRegistro{
			{Sexo: "M", Cantidad: 2, EdadDias: 40, PesoGramos: 400},
			{Sexo: "H", Cantidad: 1, EdadDias: 40, PesoGramos: 380},
		},
	})
	require.NoError(t, err)
	require.Len(t, creados, 3)
	for _, c := range creados {
		assert.Equal(t, model.EtapaJuvenil, c.Etapa)
		assert.Equal(t, model.EtapaJuvenil, c.Proposito)
		assert.Equal(t, "G1", c.Galpon)
		assert.Equal(t, "P3", c.Poza)
	}
	assert.Len(t, repo.cuyes, 3)
}

func TestRegistroMasivoConvierteGramosAKilos(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	creados, err := svc.CrearDesdeGrupos(context.Background(), dto.RegistroMasivoRequest{
		Galpon: "G1",
		Raza:   "Andina",
		Grupos: []dto.GrupoRegistro{
			{Sexo: "M", Cantidad: 1, EdadDias: 10, PesoGramos: 350},
		},
	})
	require.NoError(t, err)
	require.Len(t, creados, 1)
	assert.Equal(t, "0.35", creados[0].Peso.String())
	assert.Equal(t, model.EtapaCria, creados[0].Etapa)
}

func TestRegistroMasivoAplicaPesoMinimo(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	// 10 g quedaría en 0.01 kg; se eleva al mínimo registrable.
	creados, err := svc.CrearDesdeGrupos(context.Background(), dto.RegistroMasivoRequest{
		Galpon: "G1",
		Raza:   "Andina",
		Grupos: []dto.GrupoRegistro{
			{Sexo: "H", Cantidad: 1, EdadDias: 0, PesoGramos: 10},
		},
	})
	require.NoError(t, err)
	require.Len(t, creados, 1)
	assert.Equal(t, "0.05", creados[0].Peso.String())
}

func TestRegistroMasivoConVariacionMantieneRangos(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	creados, err := svc.CrearDesdeGrupos(context.Background(), dto.RegistroMasivoRequest{
		Galpon: "G2",
		Raza:   "Perú",
		Grupos: []dto.GrupoRegistro{
			{Sexo: "M", Cantidad: 20, EdadDias: 60, PesoGramos: 500, VarEdadDias: 10, VarPesoGramos: 50},
		},
	})
	require.NoError(t, err)
	require.Len(t, creados, 20)

	pesoMin := decimal.NewFromFloat(0.45)
	pesoMax := decimal.NewFromFloat(0.55)
	for _, c := range creados {
		nacimiento, err := time.Parse("2006-01-02", c.FechaNacimiento)
		require.NoError(t, err)
		dias := int(ahora.Sub(nacimiento).Hours() / 24)
		assert.GreaterOrEqual(t, dias, 50)
		assert.LessOrEqual(t, dias, 70)
		assert.True(t, c.Peso.GreaterThanOrEqual(pesoMin), "peso %s fuera de rango", c.Peso)
		assert.True(t, c.Peso.LessThanOrEqual(pesoMax), "peso %s fuera de rango", c.Peso)
	}
}

// ── Estadisticas / Reevaluar ─────────────────────────────────────────────────

func TestEstadisticasDevuelveErrorTipado(t *testing.T) {
	repo := newStubCuyRepo()
	repo.failEstadisticas = errors.New("connection refused")
	svc := newCuySvc(repo)

	_, err := svc.Estadisticas(context.Background())
	var noDisp *EstadisticasNoDisponiblesError
	require.ErrorAs(t, err, &noDisp)
	assert.ErrorContains(t, noDisp.Causa, "connection refused")
}

func TestEstadisticasCuentaPorSexoYCrias(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	seedCuy(repo, "M", fecha(2026, time.February, 1), model.EtapaEngorde, model.PropositoEngorde)
	seedCuy(repo, "H", fecha(2026, time.February, 1), model.EtapaReproductora, model.PropositoReproduccion)
	seedCuy(repo, "H", fecha(2026, time.August, 15), model.EtapaCria, model.PropositoIndefinido)
	vendido := seedCuy(repo, "M", fecha(2026, time.February, 1), model.EtapaEngorde, model.PropositoEngorde)
	vendido.Estado = model.EstadoVendido

	stats, err := svc.Estadisticas(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(1), stats.Machos)
	assert.Equal(t, int64(2), stats.Hembras)
	assert.Equal(t, int64(1), stats.Crias)
}

func TestReevaluarActualizaEtapasVencidas(t *testing.T) {
	repo := newStubCuyRepo()
	svc := newCuySvc(repo)

	// Macho de 7 meses aún marcado Cría: debe pasar a Engorde.
	desfasado := seedCuy(repo, "M", fecha(2026, time.February, 1), model.EtapaCria, model.PropositoIndefinido)
	// Hembra de 4 meses ya Juvenil: no cambia.
	alDia := seedCuy(repo, "H", fecha(2026, time.May, 1), model.EtapaJuvenil, model.PropositoIndefinido)
	// Vendido: fuera del barrido aunque esté desfasado.
	vendido := seedCuy(repo, "M", fecha(2026, time.February, 1), model.EtapaCria, model.PropositoIndefinido)
	vendido.Estado = model.EstadoVendido

	actualizados, err := svc.Reevaluar(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, actualizados)

	assert.Equal(t, model.EtapaEngorde, repo.cuyes[desfasado.ID].Etapa)
	assert.Equal(t, model.PropositoEngorde, repo.cuyes[desfasado.ID].Proposito)
	assert.Equal(t, ahora, repo.cuyes[desfasado.ID].FechaEvaluacion)
	assert.Equal(t, model.EtapaJuvenil, repo.cuyes[alDia.ID].Etapa)
	assert.Equal(t, model.EtapaCria, repo.cuyes[vendido.ID].Etapa)
}
