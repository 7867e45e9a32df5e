package analysis

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"futbol-tracker/internal/domain/matchlog"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/sessions/{sessionID}/analysis", func(ar chi.Router) {
		ar.Post("/", generateReportHandler(svc))
	})
}

// reportResponse es el informe del analista, tal como lo devolvió el modelo.
type reportResponse struct {
	SessionID   string    `json:"session_id"`
	Report      string    `json:"report"`
	Model       string    `json:"model"`
	EventCount  int       `json:"event_count"`
	GeneratedAt time.Time `json:"generated_at"`
	Prompt      string    `json:"prompt,omitempty"`
}

// warningResponse se devuelve cuando el análisis no se envía.
type warningResponse struct {
	Warning   string `json:"warning"`
	MinEvents int    `json:"min_events"`
}

// generateReportHandler godoc
// @Summary Generar análisis táctico
// @Description Serializa el registro completo de la sesión y lo envía al modelo. Con el registro vacío no se hace ninguna llamada y se devuelve un aviso.
// @Tags analysis
// @Produce json
// @Param sessionID path string true "ID de la sesión"
// @Success 200 {object} reportResponse
// @Failure 404 {string} string "session not found"
// @Failure 409 {string} string "analysis already in progress"
// @Failure 422 {object} warningResponse
// @Failure 502 {string} string "completion service failed"
// @Router /sessions/{sessionID}/analysis [post]
func generateReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.Generate(r.Context(), chi.URLParam(r, "sessionID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotEnoughEvents):
				writeJSON(w, http.StatusUnprocessableEntity, warningResponse{
					Warning:   NotEnoughEventsMessage(svc.MinEvents()),
					MinEvents: svc.MinEvents(),
				})
			case errors.Is(err, ErrAnalysisInProgress):
				http.Error(w, err.Error(), http.StatusConflict)
			case errors.Is(err, matchlog.ErrSessionNotFound):
				http.Error(w, "session not found", http.StatusNotFound)
			case errors.Is(err, matchlog.ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrCompletionFailed):
				// El usuario ve el error; la sesión sigue usable.
				http.Error(w, err.Error(), http.StatusBadGateway)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, reportResponse{
			SessionID:   rep.SessionID,
			Report:      rep.Text,
			Model:       rep.Model,
			EventCount:  rep.EventCount,
			GeneratedAt: rep.GeneratedAt,
			Prompt:      rep.Prompt,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
