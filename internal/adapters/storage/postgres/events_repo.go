package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"futbol-tracker/internal/domain/matchlog"
)

// EventsRepo guarda sesiones y eventos marcados con el boot_id del proceso.
// Solo ve filas de su propio arranque; PurgeStale borra las de arranques previos.
type EventsRepo struct {
	db     *sql.DB
	bootID string
}

func NewEventsRepo(db *sql.DB, bootID string) *EventsRepo {
	return &EventsRepo{db: db, bootID: bootID}
}

// PurgeStale elimina sesiones (y en cascada sus eventos) de otros arranques.
func (r *EventsRepo) PurgeStale(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM match_sessions WHERE boot_id <> $1`, r.bootID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *EventsRepo) CreateSession(ctx context.Context, s matchlog.Session) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO match_sessions (id, boot_id, created_at)
		VALUES ($1, $2, $3)
	`, s.ID, r.bootID, s.CreatedAt)
	return err
}

func (r *EventsRepo) SessionExists(ctx context.Context, id string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM match_sessions WHERE id = $1 AND boot_id = $2)
	`, id, r.bootID).Scan(&ok)
	return ok, err
}

// Append bloquea la fila de la sesión (FOR UPDATE) y recién entonces calcula
// seq = max(seq)+1, así dos appends concurrentes sobre la misma sesión se
// serializan. Si la sesión no es de este arranque se devuelve ErrSessionNotFound.
func (r *EventsRepo) Append(ctx context.Context, sessionID string, e matchlog.Event) (matchlog.Event, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return matchlog.Event{}, err
	}
	defer func() { _ = tx.Rollback() }()

	var locked string
	err = tx.QueryRowContext(ctx, `
		SELECT id FROM match_sessions
		WHERE id = $1 AND boot_id = $2
		FOR UPDATE
	`, sessionID, r.bootID).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return matchlog.Event{}, matchlog.ErrSessionNotFound
		}
		return matchlog.Event{}, err
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO match_events (session_id, seq, minute, zone, action, player, recorded_at)
		VALUES (
			$1,
			COALESCE((SELECT MAX(seq) FROM match_events WHERE session_id = $1), 0) + 1,
			$2, $3, $4, $5, $6
		)
		RETURNING seq
	`,
		sessionID,
		e.Minute,
		string(e.Zone),
		string(e.Action),
		e.Player,
		e.RecordedAt,
	).Scan(&e.Seq)
	if err != nil {
		return matchlog.Event{}, err
	}

	if err := tx.Commit(); err != nil {
		return matchlog.Event{}, err
	}
	return e, nil
}

func (r *EventsRepo) List(ctx context.Context, sessionID string) ([]matchlog.Event, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT e.seq, e.minute, e.zone, e.action, e.player, e.recorded_at
		FROM match_events e
		JOIN match_sessions s ON s.id = e.session_id
		WHERE e.session_id = $1 AND s.boot_id = $2
		ORDER BY e.seq ASC
	`, sessionID, r.bootID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]matchlog.Event, 0)
	for rows.Next() {
		var e matchlog.Event
		var zone, action string
		if err := rows.Scan(&e.Seq, &e.Minute, &zone, &action, &e.Player, &e.RecordedAt); err != nil {
			return nil, err
		}
		e.Zone = matchlog.Zone(zone)
		e.Action = matchlog.Action(action)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventsRepo) Count(ctx context.Context, sessionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM match_events e
		JOIN match_sessions s ON s.id = e.session_id
		WHERE e.session_id = $1 AND s.boot_id = $2
	`, sessionID, r.bootID).Scan(&n)
	return n, err
}

func (r *EventsRepo) DeleteSession(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM match_sessions WHERE id = $1 AND boot_id = $2`, id, r.bootID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return matchlog.ErrSessionNotFound
	}
	return nil
}
