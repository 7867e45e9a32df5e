package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"futbol-tracker/internal/domain/matchlog"
	"futbol-tracker/internal/platform/logger"
	"futbol-tracker/internal/ports/completion"
)

var (
	ErrNotEnoughEvents    = errors.New("not enough events to analyze")
	ErrAnalysisInProgress = errors.New("analysis already in progress")
	ErrCompletionFailed   = errors.New("completion service failed")
)

// Resultados para métricas.
const (
	OutcomeOK       = "ok"
	OutcomeGated    = "gated"
	OutcomeBusy     = "busy"
	OutcomeFailed   = "failed"
	OutcomeNotFound = "not_found"
)

const DefaultMinEvents = 1

// EventSource es lo que analysis necesita del log (lo cumple *matchlog.Service).
type EventSource interface {
	All(ctx context.Context, sessionID string) ([]matchlog.Event, error)
}

type Observer interface {
	AnalysisFinished(outcome string, elapsed time.Duration)
}

type nopObserver struct{}

func (nopObserver) AnalysisFinished(string, time.Duration) {}

// Report es la respuesta del servicio, sin parsear ni validar.
type Report struct {
	SessionID   string
	Text        string
	Model       string
	EventCount  int
	Prompt      string // solo si includePrompt
	GeneratedAt time.Time
}

type Service struct {
	events    EventSource
	completer completion.Completer
	log       logger.Logger
	obs       Observer
	now       func() time.Time

	minEvents     int
	includePrompt bool

	mu      sync.Mutex
	pending map[string]struct{}
}

type Option func(*Service)

func WithMinEvents(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minEvents = n
		}
	}
}

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.obs = o
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPromptInReport devuelve el prompt enviado junto al informe (depuración).
func WithPromptInReport(v bool) Option {
	return func(s *Service) { s.includePrompt = v }
}

func NewService(events EventSource, completer completion.Completer, opts ...Option) *Service {
	s := &Service{
		events:    events,
		completer: completer,
		log:       logger.Nop(),
		obs:       nopObserver{},
		now:       time.Now,
		minEvents: DefaultMinEvents,
		pending:   make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) MinEvents() int { return s.minEvents }

// Generate serializa el log completo, lo envía como un único request y devuelve
// el texto tal cual. Sin caché: cada llamada vuelve a serializar y a llamar.
//
// El control de log vacío vive aquí y solo aquí: con menos de MinEvents eventos
// devuelve ErrNotEnoughEvents sin tocar la red.
func (s *Service) Generate(ctx context.Context, sessionID string) (Report, error) {
	start := s.now()
	sessionID = strings.TrimSpace(sessionID)

	// IDLE -> AWAITING_RESPONSE
	if !s.begin(sessionID) {
		s.obs.AnalysisFinished(OutcomeBusy, 0)
		return Report{}, ErrAnalysisInProgress
	}
	defer s.end(sessionID)

	items, err := s.events.All(ctx, sessionID)
	if err != nil {
		if errors.Is(err, matchlog.ErrSessionNotFound) {
			s.obs.AnalysisFinished(OutcomeNotFound, 0)
		}
		return Report{}, err
	}

	if len(items) < s.minEvents {
		s.obs.AnalysisFinished(OutcomeGated, 0)
		return Report{}, ErrNotEnoughEvents
	}

	prompt := BuildPrompt(FormatEvents(items))

	log := s.log.With(map[string]any{
		"session_id": sessionID,
		"events":     len(items),
		"model":      s.completer.Model(),
	})
	log.Debug("analysis request", map[string]any{"prompt_bytes": len(prompt)})

	res, err := s.completer.Complete(ctx, prompt)
	elapsed := s.now().Sub(start)
	if err != nil {
		s.obs.AnalysisFinished(OutcomeFailed, elapsed)
		log.Error("analysis failed", map[string]any{"error": err.Error(), "elapsed_ms": elapsed.Milliseconds()})
		return Report{}, fmt.Errorf("%w: %w", ErrCompletionFailed, err)
	}

	s.obs.AnalysisFinished(OutcomeOK, elapsed)
	log.Info("analysis generated", map[string]any{"elapsed_ms": elapsed.Milliseconds(), "chars": len(res.Text)})

	model := res.Model
	if model == "" {
		model = s.completer.Model()
	}

	rep := Report{
		SessionID:   sessionID,
		Text:        res.Text,
		Model:       model,
		EventCount:  len(items),
		GeneratedAt: s.now(),
	}
	if s.includePrompt {
		rep.Prompt = prompt
	}
	return rep, nil
}

// InProgress indica si la sesión está en AWAITING_RESPONSE.
func (s *Service) InProgress(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[strings.TrimSpace(sessionID)]
	return ok
}

func (s *Service) begin(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.pending[sessionID]; busy {
		return false
	}
	s.pending[sessionID] = struct{}{}
	return true
}

func (s *Service) end(sessionID string) {
	s.mu.Lock()
	delete(s.pending, sessionID)
	s.mu.Unlock()
}

// NotEnoughEventsMessage es el aviso que ve el usuario cuando el análisis se bloquea.
func NotEnoughEventsMessage(minEvents int) string {
	if minEvents <= 1 {
		return "Registra al menos una jugada antes de analizar."
	}
	return fmt.Sprintf("Registra al menos %d jugadas antes de analizar.", minEvents)
}
