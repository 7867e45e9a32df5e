package matchlog

import "time"

// Session es una ejecución continua del registro de un partido. Tiene exactamente un log.
type Session struct {
	ID        string
	CreatedAt time.Time
}

// Event representa una acción registrada. Es inmutable una vez creada.
type Event struct {
	// Seq es la posición (1-based) dentro del log de la sesión.
	Seq int

	Minute string
	Zone   Zone
	Action Action
	Player string

	RecordedAt time.Time
}
