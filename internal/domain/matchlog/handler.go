package matchlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const emptyLogMessage = "Aún no hay datos registrados."

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/catalog", catalogHandler())

	r.Route("/sessions", func(sr chi.Router) {
		sr.Post("/", startSessionHandler(svc))
		sr.Delete("/{sessionID}", endSessionHandler(svc))

		sr.Post("/{sessionID}/events", recordEventHandler(svc))
		sr.Get("/{sessionID}/events", listEventsHandler(svc))
	})
}

// recordEventRequest es el cuerpo para registrar una jugada.
type recordEventRequest struct {
	Zone   string `json:"zone" example:"Zona 9" enums:"Zona 1,Zona 2,Zona 3,Zona 4,Zona 5,Zona 6,Zona 7,Zona 8,Zona 9,Zona 10,Zona 11,Zona 12"`
	Action string `json:"action" example:"Tiro a Puerta" enums:"Pase Correcto,Pase Fallado,Recuperación,Pérdida,Tiro a Puerta,Gol"`
	Player string `json:"player" example:"9"` // opcional, default "General"
}

type sessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

type eventResponse struct {
	Seq        int       `json:"seq"`
	Minute     string    `json:"minute"`
	Zone       Zone      `json:"zone"`
	Third      Third     `json:"third"`
	Action     Action    `json:"action"`
	Player     string    `json:"player"`
	RecordedAt time.Time `json:"recorded_at"`
}

type recordEventResponse struct {
	Event   eventResponse `json:"event"`
	Message string        `json:"message"`
}

type eventsTableResponse struct {
	Empty   bool            `json:"empty"`
	Count   int             `json:"count"`
	Events  []eventResponse `json:"events"`
	Message string          `json:"message,omitempty"`
}

type zoneOption struct {
	Label  Zone  `json:"label"`
	Number int   `json:"number"`
	Third  Third `json:"third"`
}

type catalogResponse struct {
	Zones         []zoneOption `json:"zones"`
	ZonesHelp     string       `json:"zones_help"`
	Actions       []Action     `json:"actions"`
	DefaultPlayer string       `json:"default_player"`
}

// catalogHandler godoc
// @Summary Opciones fijas de registro
// @Description Devuelve las 12 zonas (con su tercio), las 6 acciones técnicas y el jugador por defecto.
// @Tags catalog
// @Produce json
// @Success 200 {object} catalogResponse
// @Router /catalog [get]
func catalogHandler() http.HandlerFunc {
	out := catalogResponse{
		ZonesHelp:     "Zona 1-4: Defensa | 5-8: Medio | 9-12: Ataque",
		Actions:       Actions(),
		DefaultPlayer: DefaultPlayer,
	}
	for _, z := range Zones() {
		out.Zones = append(out.Zones, zoneOption{Label: z, Number: z.Number(), Third: z.Third()})
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, out)
	}
}

// startSessionHandler godoc
// @Summary Iniciar sesión de partido
// @Description Crea una sesión nueva con el registro de eventos vacío.
// @Tags sessions
// @Produce json
// @Success 201 {object} sessionResponse
// @Failure 500 {string} string "internal error"
// @Router /sessions [post]
func startSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := svc.StartSession(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, sessionResponse{ID: s.ID, CreatedAt: s.CreatedAt})
	}
}

// endSessionHandler godoc
// @Summary Terminar sesión
// @Description Termina la sesión y descarta su registro de eventos.
// @Tags sessions
// @Param sessionID path string true "ID de la sesión"
// @Success 204
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID} [delete]
func endSessionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.EndSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// recordEventHandler godoc
// @Summary Registrar jugada
// @Description Agrega una acción al final del registro. zone y action deben ser valores del catálogo; player es opcional ("General" por defecto).
// @Tags events
// @Accept json
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Param payload body recordEventRequest true "Zona, acción y jugador"
// @Success 201 {object} recordEventResponse
// @Failure 400 {string} string "invalid json / invalid zone / invalid action"
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/events [post]
func recordEventHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req recordEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		zone, err := ParseZone(req.Zone)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		action, err := ParseAction(req.Action)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		e, err := svc.Record(r.Context(), chi.URLParam(r, "sessionID"), zone, action, req.Player)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, recordEventResponse{
			Event:   toEventResponse(e),
			Message: fmt.Sprintf("Registrado: %s en %s", e.Action, e.Zone),
		})
	}
}

// listEventsHandler godoc
// @Summary Registro del partido
// @Description Devuelve todas las jugadas en el orden en que se registraron.
// @Tags events
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} eventsTableResponse
// @Failure 404 {string} string "session not found"
// @Router /sessions/{sessionID}/events [get]
func listEventsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.All(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := eventsTableResponse{
			Empty:  len(items) == 0,
			Count:  len(items),
			Events: make([]eventResponse, 0, len(items)),
		}
		for _, e := range items {
			out.Events = append(out.Events, toEventResponse(e))
		}
		if out.Empty {
			out.Message = emptyLogMessage
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toEventResponse(e Event) eventResponse {
	return eventResponse{
		Seq:        e.Seq,
		Minute:     e.Minute,
		Zone:       e.Zone,
		Third:      e.Zone.Third(),
		Action:     e.Action,
		Player:     e.Player,
		RecordedAt: e.RecordedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
