package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"futbol-tracker/internal/domain/matchlog"

	goredis "github.com/redis/go-redis/v9"
)

const DefaultPrefix = "futboltracker"

type Options struct {
	Prefix string

	// BootID separa los datos de cada arranque del proceso: al reiniciar se usa
	// otro BootID y los logs anteriores quedan inaccesibles hasta que expiran.
	BootID string

	// TTL de inactividad de una sesión; se renueva en cada escritura.
	TTL time.Duration
}

// EventsRepo guarda cada log como una lista (RPUSH/LRANGE) y la sesión como un hash.
type EventsRepo struct {
	rdb    goredis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewEventsRepo(rdb goredis.UniversalClient, opts Options) *EventsRepo {
	prefix := strings.TrimSpace(opts.Prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if boot := strings.TrimSpace(opts.BootID); boot != "" {
		prefix += ":" + boot
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &EventsRepo{rdb: rdb, prefix: prefix, ttl: ttl}
}

type storedEvent struct {
	Minute     string    `json:"minute"`
	Zone       string    `json:"zone"`
	Action     string    `json:"action"`
	Player     string    `json:"player"`
	RecordedAt time.Time `json:"recorded_at"`
}

func (r *EventsRepo) sessionKey(id string) string { return r.prefix + ":session:" + id }
func (r *EventsRepo) eventsKey(id string) string  { return r.prefix + ":events:" + id }

func (r *EventsRepo) CreateSession(ctx context.Context, s matchlog.Session) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	ok, err := r.rdb.SetNX(ctx, r.sessionKey(s.ID), s.CreatedAt.UTC().Format(time.RFC3339Nano), r.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("session already exists")
	}
	return nil
}

func (r *EventsRepo) SessionExists(ctx context.Context, id string) (bool, error) {
	n, err := r.rdb.Exists(ctx, r.sessionKey(id)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// appendRetries acota los reintentos cuando otra escritura toca la sesión
// entre el WATCH y el EXEC.
const appendRetries = 10

// Append: la posición devuelta por RPUSH es el Seq. La clave de la sesión se
// vigila con WATCH, así una sesión que expira o se borra a mitad de camino no
// deja una lista de eventos huérfana.
func (r *EventsRepo) Append(ctx context.Context, sessionID string, e matchlog.Event) (matchlog.Event, error) {
	b, err := json.Marshal(storedEvent{
		Minute:     e.Minute,
		Zone:       string(e.Zone),
		Action:     string(e.Action),
		Player:     e.Player,
		RecordedAt: e.RecordedAt,
	})
	if err != nil {
		return matchlog.Event{}, fmt.Errorf("marshal event: %w", err)
	}

	sessionKey, eventsKey := r.sessionKey(sessionID), r.eventsKey(sessionID)

	var push *goredis.IntCmd
	txf := func(tx *goredis.Tx) error {
		n, err := tx.Exists(ctx, sessionKey).Result()
		if err != nil {
			return err
		}
		if n == 0 {
			return matchlog.ErrSessionNotFound
		}

		_, err = tx.TxPipelined(ctx, func(p goredis.Pipeliner) error {
			push = p.RPush(ctx, eventsKey, b)
			p.Expire(ctx, eventsKey, r.ttl)
			p.Expire(ctx, sessionKey, r.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < appendRetries; i++ {
		err = r.rdb.Watch(ctx, txf, sessionKey)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		if err != nil {
			return matchlog.Event{}, err
		}
		e.Seq = int(push.Val())
		return e, nil
	}
	return matchlog.Event{}, fmt.Errorf("append to session %s: %w", sessionID, err)
}

func (r *EventsRepo) List(ctx context.Context, sessionID string) ([]matchlog.Event, error) {
	raw, err := r.rdb.LRange(ctx, r.eventsKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	out := make([]matchlog.Event, 0, len(raw))
	for i, s := range raw {
		e, err := decodeEvent(s)
		if err != nil {
			return nil, err
		}
		e.Seq = i + 1
		out = append(out, e)
	}
	return out, nil
}

func (r *EventsRepo) Count(ctx context.Context, sessionID string) (int, error) {
	n, err := r.rdb.LLen(ctx, r.eventsKey(sessionID)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *EventsRepo) DeleteSession(ctx context.Context, id string) error {
	n, err := r.rdb.Del(ctx, r.sessionKey(id), r.eventsKey(id)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return matchlog.ErrSessionNotFound
	}
	return nil
}

func decodeEvent(s string) (matchlog.Event, error) {
	var se storedEvent
	if err := json.Unmarshal([]byte(s), &se); err != nil {
		return matchlog.Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return matchlog.Event{
		Minute:     se.Minute,
		Zone:       matchlog.Zone(se.Zone),
		Action:     matchlog.Action(se.Action),
		Player:     se.Player,
		RecordedAt: se.RecordedAt,
	}, nil
}
