package idmap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mandelsoft/goutils/errors"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // register sqlite as a database/sql driver

	"github.com/mandelsoft/ifcimport/pkg/host"
)

const (
	DRIVER_SQLITE   = "sqlite"
	DRIVER_POSTGRES = "pgx"
)

const table = `CREATE TABLE IF NOT EXISTS idmap (
	source     TEXT NOT NULL,
	global_id  TEXT NOT NULL,
	element_id TEXT NOT NULL,
	PRIMARY KEY (source, global_id)
)`

// SQL is a Store persisted in an SQL database.
type SQL struct {
	db     *sql.DB
	lookup string
	record string
}

var _ Store = (*SQL)(nil)

// OpenSQL opens a store with a database/sql driver name and data source.
// Supported drivers are sqlite and pgx.
func OpenSQL(ctx context.Context, driver, dsn string) (*SQL, error) {
	var ph func(int) string
	switch driver {
	case DRIVER_SQLITE:
		ph = func(int) string { return "?" }
	case DRIVER_POSTGRES, "postgres":
		driver = DRIVER_POSTGRES
		ph = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		return nil, fmt.Errorf("unsupported id mapping driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, table); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure id mapping table: %w", err)
	}
	log.Debug("opened id mapping {{driver}}", "driver", driver)
	return &SQL{
		db:     db,
		lookup: fmt.Sprintf("SELECT element_id FROM idmap WHERE source = %s AND global_id = %s", ph(1), ph(2)),
		record: fmt.Sprintf(`INSERT INTO idmap (source, global_id, element_id) VALUES (%s, %s, %s)
ON CONFLICT (source, global_id) DO UPDATE SET element_id = excluded.element_id`, ph(1), ph(2), ph(3)),
	}, nil
}

// Open opens a store by a location. Locations starting with
// postgres:// or postgresql:// use PostgreSQL, the empty location
// uses a memory store, all others are SQLite files.
func Open(ctx context.Context, location string) (Store, error) {
	switch {
	case location == "":
		return NewMemory(), nil
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return OpenSQL(ctx, DRIVER_POSTGRES, location)
	default:
		return OpenSQL(ctx, DRIVER_SQLITE, location)
	}
}

func (s *SQL) Lookup(source, globalId string) (host.ElementId, bool, error) {
	var id string
	err := s.db.QueryRow(s.lookup, source, globalId).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return host.NoElement, false, nil
	}
	if err != nil {
		return host.NoElement, false, fmt.Errorf("lookup %s: %w", globalId, err)
	}
	return host.ElementId(id), true, nil
}

func (s *SQL) Record(source, globalId string, id host.ElementId) error {
	if _, err := s.db.Exec(s.record, source, globalId, string(id)); err != nil {
		return fmt.Errorf("record %s: %w", globalId, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
