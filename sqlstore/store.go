// Package sqlstore persists unit registries in SQLite.
//
// A database holds exactly one registry. Save replaces it atomically and
// Load rebuilds it in the order it was saved.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/alexshd/unitconv"
)

// ErrOpaqueTransform is returned when saving a registry that holds a Go
// function edge. Use unitconv.Formula for edges that must be stored.
var ErrOpaqueTransform = errors.New("transform function cannot be stored")

const schema = `
CREATE TABLE IF NOT EXISTS measures (
	name TEXT PRIMARY KEY,
	ord  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS systems (
	measure TEXT NOT NULL REFERENCES measures(name) ON DELETE CASCADE,
	name    TEXT NOT NULL,
	ord     INTEGER NOT NULL,
	PRIMARY KEY (measure, name)
);
CREATE TABLE IF NOT EXISTS units (
	abbr         TEXT PRIMARY KEY,
	measure      TEXT NOT NULL,
	system       TEXT NOT NULL,
	ord          INTEGER NOT NULL,
	singular     TEXT NOT NULL,
	plural       TEXT NOT NULL,
	to_anchor    REAL NOT NULL,
	anchor_shift REAL NOT NULL DEFAULT 0,
	FOREIGN KEY (measure, system) REFERENCES systems(measure, name) ON DELETE CASCADE
);
CREATE TABLE IF NOT EXISTS anchors (
	measure     TEXT NOT NULL REFERENCES measures(name) ON DELETE CASCADE,
	ord         INTEGER NOT NULL,
	from_system TEXT NOT NULL,
	to_system   TEXT NOT NULL,
	ratio       REAL,
	transform   TEXT,
	PRIMARY KEY (measure, from_system, to_system)
);
`

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Store is a SQLite-backed registry store.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// One connection keeps the pragmas on every statement.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	s := &Store{db: db, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save replaces the stored registry with reg.
func (s *Store) Save(ctx context.Context, reg *unitconv.Registry) (err error) {
	if reg == nil {
		return fmt.Errorf("registry is nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"anchors", "units", "systems", "measures"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	units := 0
	for mi, m := range reg.All() {
		if _, err = tx.ExecContext(ctx, `INSERT INTO measures (name, ord) VALUES (?, ?)`, m.Name, mi); err != nil {
			return fmt.Errorf("insert measure %s: %w", m.Name, err)
		}

		for si, sys := range m.Systems {
			if _, err = tx.ExecContext(ctx, `INSERT INTO systems (measure, name, ord) VALUES (?, ?, ?)`, m.Name, sys.Name, si); err != nil {
				return fmt.Errorf("insert system %s/%s: %w", m.Name, sys.Name, err)
			}
			for ui, u := range sys.Units {
				if _, err = tx.ExecContext(ctx,
					`INSERT INTO units (abbr, measure, system, ord, singular, plural, to_anchor, anchor_shift)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
					u.Abbr, m.Name, sys.Name, ui, u.Singular, u.Plural, u.ToAnchor, u.AnchorShift,
				); err != nil {
					return fmt.Errorf("insert unit %s: %w", u.Abbr, err)
				}
				units++
			}
		}

		for ai, a := range m.Anchors {
			var ratio sql.NullFloat64
			var transform sql.NullString
			switch e := a.Edge.(type) {
			case unitconv.Ratio:
				ratio = sql.NullFloat64{Float64: float64(e), Valid: true}
			case unitconv.Formula:
				if !e.IsZero() {
					transform = sql.NullString{String: e.String(), Valid: true}
				}
			case unitconv.Transform:
				if e != nil {
					err = fmt.Errorf("measure %s: anchor %s -> %s: %w", m.Name, a.From, a.To, ErrOpaqueTransform)
					return err
				}
			}

			if _, err = tx.ExecContext(ctx,
				`INSERT INTO anchors (measure, ord, from_system, to_system, ratio, transform) VALUES (?, ?, ?, ?, ?, ?)`,
				m.Name, ai, a.From, a.To, ratio, transform,
			); err != nil {
				return fmt.Errorf("insert anchor %s %s -> %s: %w", m.Name, a.From, a.To, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.DebugContext(ctx, "registry saved", "measures", len(reg.Measures()), "units", units)
	return nil
}

// Load rebuilds the stored registry.
func (s *Store) Load(ctx context.Context) (*unitconv.Registry, error) {
	var measures []unitconv.Measure
	index := make(map[string]int)

	rows, err := s.db.QueryContext(ctx, `SELECT name FROM measures ORDER BY ord`)
	if err != nil {
		return nil, fmt.Errorf("query measures: %w", err)
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan measure: %w", err)
		}
		index[name] = len(measures)
		measures = append(measures, unitconv.Measure{Name: name})
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("query measures: %w", err)
	}

	if len(measures) == 0 {
		return nil, &unitconv.ConfigError{Reason: "database holds no registry"}
	}

	if err := s.loadSystems(ctx, measures, index); err != nil {
		return nil, err
	}
	if err := s.loadUnits(ctx, measures, index); err != nil {
		return nil, err
	}
	if err := s.loadAnchors(ctx, measures, index); err != nil {
		return nil, err
	}

	reg, err := unitconv.NewRegistry(measures...)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}

	s.logger.DebugContext(ctx, "registry loaded", "measures", len(measures), "units", reg.Len())
	return reg, nil
}

func (s *Store) loadSystems(ctx context.Context, measures []unitconv.Measure, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx, `SELECT measure, name FROM systems ORDER BY measure, ord`)
	if err != nil {
		return fmt.Errorf("query systems: %w", err)
	}
	for rows.Next() {
		var measure, name string
		if err := rows.Scan(&measure, &name); err != nil {
			rows.Close()
			return fmt.Errorf("scan system: %w", err)
		}
		i := index[measure]
		measures[i].Systems = append(measures[i].Systems, unitconv.System{Name: name})
	}
	if err := closeRows(rows); err != nil {
		return fmt.Errorf("query systems: %w", err)
	}
	return nil
}

func (s *Store) loadUnits(ctx context.Context, measures []unitconv.Measure, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT measure, system, abbr, singular, plural, to_anchor, anchor_shift FROM units ORDER BY measure, system, ord`)
	if err != nil {
		return fmt.Errorf("query units: %w", err)
	}
	for rows.Next() {
		var measure, system string
		var u unitconv.Unit
		if err := rows.Scan(&measure, &system, &u.Abbr, &u.Singular, &u.Plural, &u.ToAnchor, &u.AnchorShift); err != nil {
			rows.Close()
			return fmt.Errorf("scan unit: %w", err)
		}
		m := &measures[index[measure]]
		for j := range m.Systems {
			if m.Systems[j].Name == system {
				m.Systems[j].Units = append(m.Systems[j].Units, u)
				break
			}
		}
	}
	if err := closeRows(rows); err != nil {
		return fmt.Errorf("query units: %w", err)
	}
	return nil
}

func (s *Store) loadAnchors(ctx context.Context, measures []unitconv.Measure, index map[string]int) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT measure, from_system, to_system, ratio, transform FROM anchors ORDER BY measure, ord`)
	if err != nil {
		return fmt.Errorf("query anchors: %w", err)
	}
	for rows.Next() {
		var measure, from, to string
		var ratio sql.NullFloat64
		var transform sql.NullString
		if err := rows.Scan(&measure, &from, &to, &ratio, &transform); err != nil {
			rows.Close()
			return fmt.Errorf("scan anchor: %w", err)
		}

		a := unitconv.Anchor{From: from, To: to}
		switch {
		case transform.Valid:
			f, err := unitconv.ParseFormula(transform.String)
			if err != nil {
				rows.Close()
				return fmt.Errorf("anchor %s %s -> %s: %w", measure, from, to, err)
			}
			a.Edge = f
		case ratio.Valid:
			a.Edge = unitconv.Ratio(ratio.Float64)
		}

		i := index[measure]
		measures[i].Anchors = append(measures[i].Anchors, a)
	}
	if err := closeRows(rows); err != nil {
		return fmt.Errorf("query anchors: %w", err)
	}
	return nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}
