package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearPrenezRequest struct {
	MadreID     string  `json:"madre_id"     validate:"required,uuid"`
	PadreID     *string `json:"padre_id"     validate:"omitempty,uuid"`
	FechaPrenez string  `json:"fecha_prenez" validate:"required,datetime=2006-01-02"`
	Notas       *string `json:"notas"`
}

// RegistrarPartoRequest cierra una preñez y registra la camada. Las crías
// vivas se crean como cuyes individuales vía el registro masivo.
type RegistrarPartoRequest struct {
	FechaNacimiento string `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	NumVivos        int    `json:"num_vivos"        validate:"min=0,max=12"`
	NumMuertos      int    `json:"num_muertos"      validate:"min=0,max=12"`
	Galpon          string `json:"galpon"           validate:"required,min=1,max=60"`
	Poza            string `json:"poza"`
	Raza            string `json:"raza"             validate:"required,min=2,max=60"`
	PesoPromedio    int    `json:"peso_promedio_gramos" validate:"omitempty,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PrenezResponse struct {
	ID                 string  `json:"id"`
	MadreID            string  `json:"madre_id"`
	PadreID            *string `json:"padre_id"`
	FechaPrenez        string  `json:"fecha_prenez"`
	FechaProbableParto string  `json:"fecha_probable_parto"`
	Estado             string  `json:"estado"`
	Notas              *string `json:"notas"`
}

type CamadaResponse struct {
	ID              string        `json:"id"`
	PrenezID        string        `json:"prenez_id"`
	FechaNacimiento string        `json:"fecha_nacimiento"`
	NumVivos        int           `json:"num_vivos"`
	NumMuertos      int           `json:"num_muertos"`
	Crias           []CuyResponse `json:"crias,omitempty"`
}
