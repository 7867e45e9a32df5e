package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"futbol-tracker/internal/domain/matchlog"
)

// eventRepo guarda un slice por sesión; vive lo que vive el proceso.
// Con TTL > 0 una sesión sin acceso durante TTL se descarta.
type eventRepo struct {
	mu        sync.Mutex
	bySession map[string]*sessionLog

	ttl      time.Duration
	now      func() time.Time
	onExpire func(sessionID string)
}

type sessionLog struct {
	session  matchlog.Session
	events   []matchlog.Event
	lastSeen time.Time
}

type Option func(*eventRepo)

// WithTTL descarta sesiones inactivas. 0 = nunca.
func WithTTL(d time.Duration) Option {
	return func(r *eventRepo) {
		if d > 0 {
			r.ttl = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *eventRepo) {
		if now != nil {
			r.now = now
		}
	}
}

// WithOnExpire se llama (con el lock tomado) por cada sesión descartada por TTL.
// No debe volver a llamar al repo.
func WithOnExpire(fn func(sessionID string)) Option {
	return func(r *eventRepo) { r.onExpire = fn }
}

func NewEventRepo(opts ...Option) matchlog.Repository {
	r := &eventRepo{
		bySession: make(map[string]*sessionLog),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *eventRepo) CreateSession(ctx context.Context, s matchlog.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}

	now := r.now()
	r.sweep(now)

	if _, exists := r.bySession[s.ID]; exists {
		return errors.New("session already exists")
	}
	r.bySession[s.ID] = &sessionLog{session: s, lastSeen: now}
	return nil
}

func (r *eventRepo) SessionExists(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.lookup(id)
	return ok, nil
}

func (r *eventRepo) Append(ctx context.Context, sessionID string, e matchlog.Event) (matchlog.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lookup(sessionID)
	if !ok {
		return matchlog.Event{}, matchlog.ErrSessionNotFound
	}
	e.Seq = len(l.events) + 1
	l.events = append(l.events, e)
	return e, nil
}

func (r *eventRepo) List(ctx context.Context, sessionID string) ([]matchlog.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lookup(sessionID)
	if !ok {
		return nil, matchlog.ErrSessionNotFound
	}

	// Copia: quien lee no puede tocar el log.
	out := make([]matchlog.Event, len(l.events))
	copy(out, l.events)
	return out, nil
}

func (r *eventRepo) Count(ctx context.Context, sessionID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.lookup(sessionID)
	if !ok {
		return 0, matchlog.ErrSessionNotFound
	}
	return len(l.events), nil
}

func (r *eventRepo) DeleteSession(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lookup(id); !ok {
		return matchlog.ErrSessionNotFound
	}
	delete(r.bySession, id)
	return nil
}

// lookup devuelve la sesión y renueva su último acceso. Si venció, la descarta.
// Requiere r.mu tomado.
func (r *eventRepo) lookup(id string) (*sessionLog, bool) {
	l, ok := r.bySession[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.expired(l, now) {
		r.drop(id)
		return nil, false
	}
	l.lastSeen = now
	return l, true
}

// sweep descarta todas las sesiones vencidas. Requiere r.mu tomado.
func (r *eventRepo) sweep(now time.Time) {
	if r.ttl <= 0 {
		return
	}
	for id, l := range r.bySession {
		if r.expired(l, now) {
			r.drop(id)
		}
	}
}

func (r *eventRepo) expired(l *sessionLog, now time.Time) bool {
	return r.ttl > 0 && now.Sub(l.lastSeen) >= r.ttl
}

func (r *eventRepo) drop(id string) {
	delete(r.bySession, id)
	if r.onExpire != nil {
		r.onExpire(id)
	}
}
