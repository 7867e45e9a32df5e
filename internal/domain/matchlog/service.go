package matchlog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrSessionNotFound = errors.New("session not found")
)

// Observer recibe notificaciones de lo que pasa en el log (métricas).
type Observer interface {
	SessionStarted()
	SessionEnded()
	EventRecorded(zone Zone, action Action)
}

type nopObserver struct{}

func (nopObserver) SessionStarted()            {}
func (nopObserver) SessionEnded()              {}
func (nopObserver) EventRecorded(Zone, Action) {}

type Service struct {
	repo Repository
	obs  Observer
	now  func() time.Time
}

type Option func(*Service)

func WithObserver(o Observer) Option {
	return func(s *Service) {
		if o != nil {
			s.obs = o
		}
	}
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		obs:  nopObserver{},
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartSession crea una sesión con el log vacío.
func (s *Service) StartSession(ctx context.Context) (Session, error) {
	sess := Session{
		ID:        uuid.NewString(),
		CreatedAt: s.now(),
	}
	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}
	s.obs.SessionStarted()
	return sess, nil
}

// EndSession descarta la sesión y su log completo.
func (s *Service) EndSession(ctx context.Context, sessionID string) error {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return err
	}
	if err := s.repo.DeleteSession(ctx, strings.TrimSpace(sessionID)); err != nil {
		return err
	}
	s.obs.SessionEnded()
	return nil
}

// Record agrega un evento al final del log.
// Minute siempre es MinuteInProgress; player vacío => DefaultPlayer.
func (s *Service) Record(ctx context.Context, sessionID string, zone Zone, action Action, player string) (Event, error) {
	if !zone.Valid() {
		return Event{}, fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidZone)
	}
	if !action.Valid() {
		return Event{}, fmt.Errorf("%w: %w", ErrInvalidInput, ErrInvalidAction)
	}
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return Event{}, err
	}

	player = strings.TrimSpace(player)
	if player == "" {
		player = DefaultPlayer
	}

	e, err := s.repo.Append(ctx, strings.TrimSpace(sessionID), Event{
		Minute:     MinuteInProgress,
		Zone:       zone,
		Action:     action,
		Player:     player,
		RecordedAt: s.now(),
	})
	if err != nil {
		return Event{}, err
	}

	s.obs.EventRecorded(zone, action)
	return e, nil
}

// All devuelve el log completo en orden de registro.
func (s *Service) All(ctx context.Context, sessionID string) ([]Event, error) {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, strings.TrimSpace(sessionID))
}

func (s *Service) Count(ctx context.Context, sessionID string) (int, error) {
	if err := s.ensureSession(ctx, sessionID); err != nil {
		return 0, err
	}
	return s.repo.Count(ctx, strings.TrimSpace(sessionID))
}

func (s *Service) IsEmpty(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.Count(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (s *Service) ensureSession(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrInvalidInput
	}
	ok, err := s.repo.SessionExists(ctx, sessionID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}
