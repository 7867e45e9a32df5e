package analysis

import (
	"fmt"
	"strings"
	"unicode"

	"futbol-tracker/internal/domain/matchlog"
)

// Claves del registro tal como se muestran en la tabla del partido.
const (
	keyMinute = "Minuto"
	keyZone   = "Zona"
	keyAction = "Acción"
	keyPlayer = "Jugador"
)

const promptTemplate = `
Actúa como un analista táctico de fútbol profesional.

Aquí tienes el registro de eventos del partido en tiempo real:
{{DATA}}

Basándote EXCLUSIVAMENTE en estos datos:
1. Identifica patrones (¿Por qué zona atacan más? ¿Dónde pierden el balón?).
2. Da 3 consejos tácticos urgentes para el entrenador.
3. Sé breve y directo.
`

// FormatEvents serializa el log completo como una lista literal de registros:
//
//	[{'Minuto': 'En curso', 'Zona': 'Zona 3', 'Acción': 'Pérdida', 'Jugador': '10'}, ...]
//
// La salida es determinista: mismo log => mismo texto.
func FormatEvents(items []matchlog.Event) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('{')
		writePair(&sb, keyMinute, e.Minute)
		sb.WriteString(", ")
		writePair(&sb, keyZone, string(e.Zone))
		sb.WriteString(", ")
		writePair(&sb, keyAction, string(e.Action))
		sb.WriteString(", ")
		writePair(&sb, keyPlayer, e.Player)
		sb.WriteByte('}')
	}
	sb.WriteByte(']')
	return sb.String()
}

// BuildPrompt inserta los datos tal cual en la plantilla fija del analista.
func BuildPrompt(data string) string {
	return strings.Replace(promptTemplate, "{{DATA}}", data, 1)
}

func writePair(sb *strings.Builder, k, v string) {
	sb.WriteString(quote(k))
	sb.WriteString(": ")
	sb.WriteString(quote(v))
}

// quote usa comilla simple salvo que el texto tenga ' y no ". Escapa la barra
// invertida y la comilla elegida; \t \n \r van con escape corto y el resto de
// los no imprimibles como \xHH, \uHHHH o \UHHHHHHHH.
func quote(s string) string {
	q := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteRune(q)
	for _, r := range s {
		switch {
		case r == q || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r == '\t':
			sb.WriteString(`\t`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		case unicode.IsPrint(r):
			sb.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&sb, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			fmt.Fprintf(&sb, `\U%08x`, r)
		}
	}
	sb.WriteRune(q)
	return sb.String()
}
