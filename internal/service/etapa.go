package service

// etapa.go — derivación de etapa de vida y propósito productivo.
// Reglas puras sobre (fecha de nacimiento, sexo, reloj inyectado): los
// servicios guardan un `now func() time.Time` para que los tests fijen el
// tiempo y la derivación sea determinista.

import (
	"time"

	"github.com/Arcay322/Granja-cuyes-sub003/internal/model"
)

// EdadEnMeses computes completed months between nacimiento and ref.
// The month counter decrements when the day of month has not been reached
// yet, and never goes below zero.
func EdadEnMeses(nacimiento, ref time.Time) int {
	meses := (ref.Year()-nacimiento.Year())*12 + int(ref.Month()) - int(nacimiento.Month())
	if ref.Day() < nacimiento.Day() {
		meses--
	}
	if meses < 0 {
		meses = 0
	}
	return meses
}

// DerivarEtapa applies the age/sex stage table:
//
//	< 3 meses            → Cría
//	3–5 meses            → Juvenil
//	≥ 6 meses, sexo M    → Engorde
//	≥ 6 meses, sexo H    → Reproductora
//	≥ 6 meses, sin sexo  → Juvenil
func DerivarEtapa(nacimiento time.Time, sexo string, ref time.Time) string {
	meses := EdadEnMeses(nacimiento, ref)
	switch {
	case meses < 3:
		return model.EtapaCria
	case meses < 6:
		return model.EtapaJuvenil
	case sexo == model.SexoMacho:
		return model.EtapaEngorde
	case sexo == model.SexoHembra:
		return model.EtapaReproductora
	default:
		return model.EtapaJuvenil
	}
}

// DerivarProposito maps a stage to its productive purpose.
func DerivarProposito(etapa string) string {
	switch etapa {
	case model.EtapaEngorde:
		return model.PropositoEngorde
	case model.EtapaReproductora, model.EtapaReproductor:
		return model.PropositoReproduccion
	default:
		return model.PropositoIndefinido
	}
}

// etapaPorDias is the simplified rule used by bulk registration, which works
// in days instead of calendar months (30-day months).
func etapaPorDias(dias int, sexo string) string {
	meses := dias / 30
	switch {
	case meses < 1:
		return model.EtapaCria
	case meses < 6:
		return model.EtapaJuvenil
	case sexo == model.SexoMacho:
		return model.EtapaEngorde
	default:
		return model.EtapaReproductora
	}
}

// propositoDeGrupo falls back to the stage name when the stage has no
// explicit purpose mapping, so freshly seeded juveniles read "Juvenil"
// instead of "Indefinido" in the inventory screens.
func propositoDeGrupo(etapa string) string {
	switch etapa {
	case model.EtapaEngorde:
		return model.PropositoEngorde
	case model.EtapaReproductora, model.EtapaReproductor:
		return model.PropositoReproduccion
	default:
		return etapa
	}
}
