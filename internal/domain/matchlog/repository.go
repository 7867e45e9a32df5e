package matchlog

import "context"

// Repository guarda los logs por sesión. Solo se permite agregar al final:
// no hay edición, borrado ni reordenamiento de eventos.
type Repository interface {
	CreateSession(ctx context.Context, s Session) error
	SessionExists(ctx context.Context, id string) (bool, error)

	// Append asigna Seq y devuelve el evento tal como quedó guardado.
	Append(ctx context.Context, sessionID string, e Event) (Event, error)
	List(ctx context.Context, sessionID string) ([]Event, error)
	Count(ctx context.Context, sessionID string) (int, error)

	DeleteSession(ctx context.Context, id string) error
}
