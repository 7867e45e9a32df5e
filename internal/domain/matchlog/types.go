package matchlog

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// MinuteInProgress es el marcador fijo de minuto; no se modela un reloj real.
	MinuteInProgress = "En curso"

	// DefaultPlayer se usa cuando no se informa dorsal/nombre.
	DefaultPlayer = "General"
)

var (
	ErrInvalidZone   = errors.New("invalid zone")
	ErrInvalidAction = errors.New("invalid action")
)

// Zone es una de las 12 zonas fijas del campo.
type Zone string

const (
	Zone1  Zone = "Zona 1"
	Zone2  Zone = "Zona 2"
	Zone3  Zone = "Zona 3"
	Zone4  Zone = "Zona 4"
	Zone5  Zone = "Zona 5"
	Zone6  Zone = "Zona 6"
	Zone7  Zone = "Zona 7"
	Zone8  Zone = "Zona 8"
	Zone9  Zone = "Zona 9"
	Zone10 Zone = "Zona 10"
	Zone11 Zone = "Zona 11"
	Zone12 Zone = "Zona 12"
)

var zones = []Zone{
	Zone1, Zone2, Zone3, Zone4,
	Zone5, Zone6, Zone7, Zone8,
	Zone9, Zone10, Zone11, Zone12,
}

// Third agrupa las zonas por tercio del campo.
type Third string

const (
	ThirdDefense  Third = "defensa"
	ThirdMidfield Third = "medio"
	ThirdAttack   Third = "ataque"
)

// Action es una de las 6 acciones técnicas fijas.
type Action string

const (
	ActionPassCompleted Action = "Pase Correcto"
	ActionPassFailed    Action = "Pase Fallado"
	ActionRecovery      Action = "Recuperación"
	ActionLoss          Action = "Pérdida"
	ActionShotOnTarget  Action = "Tiro a Puerta"
	ActionGoal          Action = "Gol"
)

var actions = []Action{
	ActionPassCompleted,
	ActionPassFailed,
	ActionRecovery,
	ActionLoss,
	ActionShotOnTarget,
	ActionGoal,
}

// Zones devuelve las zonas en orden (copia).
func Zones() []Zone {
	out := make([]Zone, len(zones))
	copy(out, zones)
	return out
}

// Actions devuelve las acciones en el orden en que se ofrecen al usuario (copia).
func Actions() []Action {
	out := make([]Action, len(actions))
	copy(out, actions)
	return out
}

// Number devuelve el número de zona (1-12) o 0 si no es válida.
func (z Zone) Number() int {
	for i, v := range zones {
		if v == z {
			return i + 1
		}
	}
	return 0
}

func (z Zone) Valid() bool { return z.Number() > 0 }

// Third: zonas 1-4 defensa, 5-8 medio, 9-12 ataque.
func (z Zone) Third() Third {
	n := z.Number()
	switch {
	case n >= 1 && n <= 4:
		return ThirdDefense
	case n >= 5 && n <= 8:
		return ThirdMidfield
	case n >= 9:
		return ThirdAttack
	default:
		return ""
	}
}

func (a Action) Valid() bool {
	for _, v := range actions {
		if v == a {
			return true
		}
	}
	return false
}

// ParseZone acepta la etiqueta canónica y tolera mayúsculas, tildes y espacios extra
// ("zona 3", "ZONA  3").
func ParseZone(s string) (Zone, error) {
	key := foldLabel(s)
	for _, z := range zones {
		if foldLabel(string(z)) == key {
			return z, nil
		}
	}
	return "", ErrInvalidZone
}

// ParseAction acepta la etiqueta canónica y tolera mayúsculas y tildes ("perdida").
func ParseAction(s string) (Action, error) {
	key := foldLabel(s)
	for _, a := range actions {
		if foldLabel(string(a)) == key {
			return a, nil
		}
	}
	return "", ErrInvalidAction
}

// foldLabel normaliza a NFD, quita marcas diacríticas, pasa a minúsculas y colapsa espacios.
func foldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}
