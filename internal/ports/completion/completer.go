package completion

import (
	"context"
	"errors"
)

var (
	// ErrUnauthorized: credencial ausente o rechazada por el proveedor.
	ErrUnauthorized = errors.New("completion: unauthorized")
	// ErrEmptyResponse: el proveedor respondió 2xx pero sin texto.
	ErrEmptyResponse = errors.New("completion: empty response")
)

// Result es la respuesta en texto libre del servicio, sin procesar.
type Result struct {
	Text  string
	Model string
}

// Completer envía un prompt y devuelve un texto. Una llamada = un request.
type Completer interface {
	Complete(ctx context.Context, prompt string) (Result, error)

	// Verify comprueba que la credencial es aceptada (se usa al arrancar).
	Verify(ctx context.Context) error

	Model() string
}
