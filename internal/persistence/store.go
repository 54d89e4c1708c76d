package persistence

import (
	"bytes"
	"compress/gzip"
	"database/sql"
	"encoding/gob"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/Jaswanth994/Measuring-People-Flow-through-Doorways/internal/thermal"
)

// StoredEvent is the durable form of a thermal.CrossingEvent.
type StoredEvent struct {
	ID         string
	TrackID    int64
	Direction  thermal.Direction
	WallClock  time.Time
	FrameIndex int64
	InsertedAt time.Time
}

// BgSnapshot is a persisted copy of a Background matrix plus metadata,
// recorded for audit/debugging rather than for the pipeline's own restart
// path (which uses the raw binary file in bgfile.go).
type BgSnapshot struct {
	ID       string
	SensorID string
	Reason   string
	TakenAt  time.Time
	Grid     thermal.Background
}

// Store is a SQLite-backed history of crossing events and background
// snapshots. It sits outside the thermal core's critical path and is free
// to block or take locks.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the SQLite database at path and brings
// its schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persistence: open database: %w", err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite: serialize writers, avoid SQLITE_BUSY storms

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB exposes the underlying *sql.DB for ambient consumers (the debug SQL
// browser) that need direct query access.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database connection.
func (s *Store) Close() error { return s.db.Close() }

// InsertEvent durably records a crossing event, assigning it a UUID.
func (s *Store) InsertEvent(e thermal.CrossingEvent) (StoredEvent, error) {
	rec := StoredEvent{
		ID:         uuid.New().String(),
		TrackID:    e.TrackID,
		Direction:  e.Direction,
		WallClock:  e.WallClock,
		FrameIndex: e.FrameIndex,
		InsertedAt: time.Now(),
	}

	err := retryOnBusy(func() error {
		_, err := s.db.Exec(`
			INSERT INTO events (id, track_id, direction, wall_clock_nanos, frame_index, inserted_nanos)
			VALUES (?, ?, ?, ?, ?, ?)`,
			rec.ID, rec.TrackID, string(rec.Direction), rec.WallClock.UnixNano(), rec.FrameIndex, rec.InsertedAt.UnixNano(),
		)
		return err
	})
	if err != nil {
		return StoredEvent{}, fmt.Errorf("persistence: insert event: %w", err)
	}
	return rec, nil
}

// Recent returns the last n events in insertion order, oldest first.
func (s *Store) Recent(n int) ([]StoredEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, track_id, direction, wall_clock_nanos, frame_index, inserted_nanos
		FROM events
		ORDER BY inserted_nanos DESC, id DESC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("persistence: query recent events: %w", err)
	}
	defer rows.Close()

	var out []StoredEvent
	for rows.Next() {
		var rec StoredEvent
		var direction string
		var wallClockNanos, insertedNanos int64
		if err := rows.Scan(&rec.ID, &rec.TrackID, &direction, &wallClockNanos, &rec.FrameIndex, &insertedNanos); err != nil {
			return nil, fmt.Errorf("persistence: scan event row: %w", err)
		}
		rec.Direction = thermal.Direction(direction)
		rec.WallClock = time.Unix(0, wallClockNanos).UTC()
		rec.InsertedAt = time.Unix(0, insertedNanos).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse: the query runs newest-first for LIMIT to bound correctly,
	// callers want oldest-first like occupancy.Counter.Recent.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// EventsSince returns every event with wall clock at or after since, in
// insertion order, oldest first. Used by internal/analytics to build
// histograms over an arbitrary window rather than a fixed recent count.
func (s *Store) EventsSince(since time.Time) ([]StoredEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, track_id, direction, wall_clock_nanos, frame_index, inserted_nanos
		FROM events
		WHERE wall_clock_nanos >= ?
		ORDER BY wall_clock_nanos ASC, id ASC`, since.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("persistence: query events since %v: %w", since, err)
	}
	defer rows.Close()

	var out []StoredEvent
	for rows.Next() {
		var rec StoredEvent
		var direction string
		var wallClockNanos, insertedNanos int64
		if err := rows.Scan(&rec.ID, &rec.TrackID, &direction, &wallClockNanos, &rec.FrameIndex, &insertedNanos); err != nil {
			return nil, fmt.Errorf("persistence: scan event row: %w", err)
		}
		rec.Direction = thermal.Direction(direction)
		rec.WallClock = time.Unix(0, wallClockNanos).UTC()
		rec.InsertedAt = time.Unix(0, insertedNanos).UTC()
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// InsertSnapshot gob+gzip-encodes bg and records it, assigning a UUID.
func (s *Store) InsertSnapshot(sensorID, reason string, bg thermal.Background, takenAt time.Time) (string, error) {
	blob, err := serializeBackground(bg)
	if err != nil {
		return "", fmt.Errorf("persistence: serialize snapshot: %w", err)
	}

	id := uuid.New().String()
	err = retryOnBusy(func() error {
		_, err := s.db.Exec(`
			INSERT INTO bg_snapshots (id, sensor_id, reason, taken_nanos, grid_blob)
			VALUES (?, ?, ?, ?, ?)`,
			id, sensorID, reason, takenAt.UnixNano(), blob,
		)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("persistence: insert snapshot: %w", err)
	}
	return id, nil
}

// LatestSnapshot returns the most recently taken snapshot for sensorID, or
// nil if none has been recorded.
func (s *Store) LatestSnapshot(sensorID string) (*BgSnapshot, error) {
	row := s.db.QueryRow(`
		SELECT id, sensor_id, reason, taken_nanos, grid_blob
		FROM bg_snapshots
		WHERE sensor_id = ?
		ORDER BY taken_nanos DESC
		LIMIT 1`, sensorID)

	var snap BgSnapshot
	var blob []byte
	var takenNanos int64
	if err := row.Scan(&snap.ID, &snap.SensorID, &snap.Reason, &takenNanos, &blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("persistence: query latest snapshot: %w", err)
	}
	snap.TakenAt = time.Unix(0, takenNanos).UTC()

	bg, err := deserializeBackground(blob)
	if err != nil {
		return nil, fmt.Errorf("persistence: decode snapshot blob: %w", err)
	}
	snap.Grid = bg
	return &snap, nil
}

func serializeBackground(bg thermal.Background) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(bg); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deserializeBackground(blob []byte) (thermal.Background, error) {
	var bg thermal.Background
	if len(blob) == 0 {
		return bg, fmt.Errorf("empty snapshot blob")
	}
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return bg, fmt.Errorf("gzip reader: %w", err)
	}
	defer gz.Close()

	if err := gob.NewDecoder(gz).Decode(&bg); err != nil {
		return bg, fmt.Errorf("gob decode: %w", err)
	}
	return bg, nil
}

// retryOnBusy retries fn a handful of times with backoff on SQLITE_BUSY,
// which modernc.org/sqlite surfaces as an error string rather than a typed
// error. Writers are already serialized via SetMaxOpenConns(1), so busy
// errors here mean a long-running read holding the file lock.
func retryOnBusy(fn func() error) error {
	const attempts = 5
	backoff := 5 * time.Millisecond
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !strings.Contains(err.Error(), "SQLITE_BUSY") {
			return err
		}
		time.Sleep(backoff)
		backoff *= 2
	}
	return err
}
