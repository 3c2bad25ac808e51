package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCuyRequest struct {
	Raza            string          `json:"raza"             validate:"required,min=2,max=60"`
	FechaNacimiento string          `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	Sexo            string          `json:"sexo"             validate:"required,oneof=M H"`
	Peso            decimal.Decimal `json:"peso"             validate:"min=0"`
	Galpon          string          `json:"galpon"           validate:"required,min=1,max=60"`
	Poza            string          `json:"poza"`
	Estado          string          `json:"estado"           validate:"omitempty,oneof=Activo Enfermo Vendido Fallecido"`
	// Etapa y Proposito explícitos anulan la derivación automática.
	Etapa     string `json:"etapa"     validate:"omitempty,max=30"`
	Proposito string `json:"proposito" validate:"omitempty,max=30"`
}

type ActualizarCuyRequest struct {
	Raza            *string          `json:"raza"             validate:"omitempty,min=2,max=60"`
	FechaNacimiento *string          `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Sexo            *string          `json:"sexo"             validate:"omitempty,oneof=M H"`
	Peso            *decimal.Decimal `json:"peso"`
	Galpon          *string          `json:"galpon"           validate:"omitempty,min=1,max=60"`
	Poza            *string          `json:"poza"`
	Estado          *string          `json:"estado"           validate:"omitempty,oneof=Activo Enfermo Vendido Fallecido"`
	Etapa           *string          `json:"etapa"            validate:"omitempty,max=30"`
	Proposito       *string          `json:"proposito"        validate:"omitempty,max=30"`
}

type CambiarPropositoRequest struct {
	Proposito string `json:"proposito" validate:"required,max=30"`
	Etapa     string `json:"etapa"     validate:"required,max=30"`
}

// GrupoRegistro describe una distribución de edad/peso para registro masivo.
type GrupoRegistro struct {
	Sexo          string `json:"sexo"            validate:"required,oneof=M H"`
	Cantidad      int    `json:"cantidad"        validate:"required,min=1,max=500"`
	EdadDias      int    `json:"edad_dias"       validate:"min=0"`
	PesoGramos    int    `json:"peso_gramos"     validate:"required,min=1"`
	VarEdadDias   int    `json:"var_edad_dias"   validate:"min=0"`
	VarPesoGramos int    `json:"var_peso_gramos" validate:"min=0"`
}

type RegistroMasivoRequest struct {
	Galpon string          `json:"galpon" validate:"required,min=1,max=60"`
	Poza   string          `json:"poza"`
	Raza   string          `json:"raza"   validate:"required,min=2,max=60"`
	Grupos []GrupoRegistro `json:"grupos" validate:"required,min=1,dive"`
}

// ─── Filter ──────────────────────────────────────────────────────────────────

type CuyFilter struct {
	Galpon string `form:"galpon"`
	Poza   string `form:"poza"`
	Raza   string `form:"raza"`
	Sexo   string `form:"sexo"   validate:"omitempty,oneof=M H"`
	Estado string `form:"estado"`
	Etapa  string `form:"etapa"`
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CuyResponse struct {
	ID              string          `json:"id"`
	Raza            string          `json:"raza"`
	FechaNacimiento string          `json:"fecha_nacimiento"`
	Sexo            string          `json:"sexo"`
	Peso            decimal.Decimal `json:"peso"`
	Galpon          string          `json:"galpon"`
	Poza            string          `json:"poza"`
	Estado          string          `json:"estado"`
	Etapa           string          `json:"etapa"`
	Proposito       string          `json:"proposito"`
	EdadMeses       int             `json:"edad_meses"`
	FechaEvaluacion string          `json:"fecha_evaluacion"`
}

type CuyListResponse struct {
	Data  []CuyResponse `json:"data"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// ─── Estadísticas ────────────────────────────────────────────────────────────

type ConteoPorRaza struct {
	Raza  string `json:"raza"`
	Total int64  `json:"total"`
}

type EstadisticasCuyesResponse struct {
	Total   int64           `json:"total"`
	Machos  int64           `json:"machos"`
	Hembras int64           `json:"hembras"`
	Crias   int64           `json:"crias"`
	PorRaza []ConteoPorRaza `json:"por_raza"`
}
