// Package apierror define el sobre de error que devuelve toda respuesta
// 4xx/5xx. Los servicios nunca serializan sus errores directamente: el
// handler los traduce aquí para no filtrar detalles internos (SQL, stack
// traces) al cliente.
package apierror

// APIError es el sobre canónico de error.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError agrupa los errores de campo de una petición rechazada
// por el validador antes de llegar al servicio.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
