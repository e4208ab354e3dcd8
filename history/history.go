package history

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/gatewayops/status-index/status"
)

const schema = `
CREATE TABLE IF NOT EXISTS status_snapshots (
	id             BIGSERIAL PRIMARY KEY,
	captured_at    TIMESTAMPTZ NOT NULL,
	required_ok    INT NOT NULL,
	required_total INT NOT NULL,
	optional_ok    INT NOT NULL,
	optional_total INT NOT NULL,
	results        JSONB NOT NULL,
	models         JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS status_snapshots_captured_at_idx
	ON status_snapshots (captured_at DESC);
`

// Entry is one persisted snapshot.
type Entry struct {
	ID         int64           `json:"id"`
	CapturedAt time.Time       `json:"captured_at"`
	Snapshot   status.Snapshot `json:"snapshot"`
}

// Store persists snapshots to PostgreSQL. It is optional infrastructure:
// the index runs without it when no DSN is configured.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database behind the DSN and verifies the
// connection with a ping.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if nil != err {
		return nil, errors.Wrap(err, "unable to parse history DSN")
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if nil != err {
		return nil, errors.Wrap(err, "unable to create history pool")
	}

	if err := pool.Ping(ctx); nil != err {
		pool.Close()
		return nil, errors.Wrap(err, "unable to reach history database")
	}

	return &Store{pool: pool}, nil
}

// EnsureSchema creates the snapshot table when it does not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); nil != err {
		return errors.Wrap(err, "unable to create history schema")
	}
	log.Debug("History schema ready")

	return nil
}

// Record persists one snapshot. It satisfies the poller sink interface.
func (s *Store) Record(ctx context.Context, snap *status.Snapshot) error {
	results, models, err := encodeSnapshot(snap)
	if nil != err {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO status_snapshots (
			captured_at, required_ok, required_total,
			optional_ok, optional_total, results, models
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		snap.CapturedAt,
		snap.Summary.Required.OK, snap.Summary.Required.Total,
		snap.Summary.Optional.OK, snap.Summary.Optional.Total,
		results, models,
	)

	return errors.Wrap(err, "unable to insert snapshot")
}

// Recent returns up to limit persisted snapshots, newest first. Limits
// below 1 are clamped to 1.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	limit = clampLimit(limit)

	rows, err := s.pool.Query(ctx, `
		SELECT id, captured_at, required_ok, required_total,
		       optional_ok, optional_total, results, models
		FROM status_snapshots
		ORDER BY captured_at DESC
		LIMIT $1`, limit)
	if nil != err {
		return nil, errors.Wrap(err, "unable to query snapshots")
	}
	defer rows.Close()

	entries := make([]Entry, 0, limit)
	for rows.Next() {
		var (
			e               Entry
			results, models []byte
		)
		err := rows.Scan(&e.ID, &e.CapturedAt,
			&e.Snapshot.Summary.Required.OK, &e.Snapshot.Summary.Required.Total,
			&e.Snapshot.Summary.Optional.OK, &e.Snapshot.Summary.Optional.Total,
			&results, &models)
		if nil != err {
			return nil, errors.Wrap(err, "unable to scan snapshot row")
		}

		if err := decodeSnapshot(&e.Snapshot, results, models); nil != err {
			return nil, err
		}
		e.Snapshot.CapturedAt = e.CapturedAt
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}

func clampLimit(limit int) int {
	if limit < 1 {
		return 1
	}

	return limit
}

func encodeSnapshot(snap *status.Snapshot) (results, models []byte, err error) {
	results, err = json.Marshal(snap.Results)
	if nil != err {
		return nil, nil, errors.Wrap(err, "unable to encode results")
	}
	models, err = json.Marshal(snap.Models)
	if nil != err {
		return nil, nil, errors.Wrap(err, "unable to encode models")
	}

	return results, models, nil
}

func decodeSnapshot(snap *status.Snapshot, results, models []byte) error {
	if err := json.Unmarshal(results, &snap.Results); nil != err {
		return errors.Wrap(err, "unable to decode results")
	}
	if err := json.Unmarshal(models, &snap.Models); nil != err {
		return errors.Wrap(err, "unable to decode models")
	}

	return nil
}
