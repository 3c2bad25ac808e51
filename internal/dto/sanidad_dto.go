package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearRegistroSanitarioRequest struct {
	CuyID       string  `json:"cuy_id"      validate:"required,uuid"`
	Fecha       string  `json:"fecha"       validate:"required,datetime=2006-01-02"`
	Tipo        string  `json:"tipo"        validate:"required,oneof=vacunacion tratamiento desparasitacion control"`
	Descripcion string  `json:"descripcion" validate:"required,min=3,max=500"`
	Tratamiento *string `json:"tratamiento"`
	Veterinario *string `json:"veterinario"`
}

type ActualizarRegistroSanitarioRequest struct {
	Fecha       *string `json:"fecha"       validate:"omitempty,datetime=2006-01-02"`
	Tipo        *string `json:"tipo"        validate:"omitempty,oneof=vacunacion tratamiento desparasitacion control"`
	Descripcion *string `json:"descripcion" validate:"omitempty,min=3,max=500"`
	Tratamiento *string `json:"tratamiento"`
	Veterinario *string `json:"veterinario"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RegistroSanitarioResponse struct {
	ID          string  `json:"id"`
	CuyID       string  `json:"cuy_id"`
	Fecha       string  `json:"fecha"`
	Tipo        string  `json:"tipo"`
	Descripcion string  `json:"descripcion"`
	Tratamiento *string `json:"tratamiento"`
	Veterinario *string `json:"veterinario"`
}
