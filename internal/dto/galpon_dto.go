package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearGalponRequest struct {
	Nombre      string  `json:"nombre"      validate:"required,min=1,max=60"`
	Descripcion *string `json:"descripcion"`
	Capacidad   int     `json:"capacidad"   validate:"min=0"`
}

type ActualizarGalponRequest struct {
	Nombre      *string `json:"nombre"      validate:"omitempty,min=1,max=60"`
	Descripcion *string `json:"descripcion"`
	Capacidad   *int    `json:"capacidad"   validate:"omitempty,min=0"`
}

type CrearPozaRequest struct {
	GalponID  string `json:"galpon_id" validate:"required,uuid"`
	Codigo    string `json:"codigo"    validate:"required,min=1,max=30"`
	Tipo      string `json:"tipo"      validate:"omitempty,oneof=engorde reproduccion cria"`
	Capacidad int    `json:"capacidad" validate:"min=0"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PozaResponse struct {
	ID        string `json:"id"`
	GalponID  string `json:"galpon_id"`
	Codigo    string `json:"codigo"`
	Tipo      string `json:"tipo"`
	Capacidad int    `json:"capacidad"`
	Ocupacion int64  `json:"ocupacion"`
}

type GalponResponse struct {
	ID          string         `json:"id"`
	Nombre      string         `json:"nombre"`
	Descripcion *string        `json:"descripcion"`
	Capacidad   int            `json:"capacidad"`
	Ocupacion   int64          `json:"ocupacion"`
	Pozas       []PozaResponse `json:"pozas,omitempty"`
}
