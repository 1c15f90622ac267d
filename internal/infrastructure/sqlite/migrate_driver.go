package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4/database"
)

const migrationsTable = "schema_migrations"

// migrationDriver runs golang-migrate against a connection opened with the
// ncruces driver. The connection is shared with the rest of the package, so
// Close leaves it open.
type migrationDriver struct {
	db       *sql.DB
	isLocked atomic.Bool
}

var _ database.Driver = (*migrationDriver)(nil)

func newMigrationDriver(db *sql.DB) (*migrationDriver, error) {
	d := &migrationDriver{db: db}
	query := `CREATE TABLE IF NOT EXISTS ` + migrationsTable + ` (version uint64, dirty bool);
CREATE UNIQUE INDEX IF NOT EXISTS version_unique ON ` + migrationsTable + ` (version);`
	if _, err := db.Exec(query); err != nil {
		return nil, &database.Error{OrigErr: err, Query: []byte(query)}
	}
	return d, nil
}

func (d *migrationDriver) Open(string) (database.Driver, error) {
	return nil, errors.New("migration driver only supports an existing connection")
}

func (d *migrationDriver) Close() error {
	return nil
}

func (d *migrationDriver) Lock() error {
	if !d.isLocked.CompareAndSwap(false, true) {
		return database.ErrLocked
	}
	return nil
}

func (d *migrationDriver) Unlock() error {
	if !d.isLocked.CompareAndSwap(true, false) {
		return database.ErrNotLocked
	}
	return nil
}

func (d *migrationDriver) Run(migration io.Reader) error {
	data, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	return d.inTx(string(data), func(tx *sql.Tx) error {
		_, err := tx.Exec(string(data))
		return err
	})
}

func (d *migrationDriver) SetVersion(version int, dirty bool) error {
	return d.inTx("set version", func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM " + migrationsTable); err != nil {
			return err
		}
		if version >= 0 || (version == database.NilVersion && dirty) {
			_, err := tx.Exec("INSERT INTO "+migrationsTable+" (version, dirty) VALUES (?, ?)", version, dirty)
			return err
		}
		return nil
	})
}

func (d *migrationDriver) Version() (int, bool, error) {
	var (
		version int
		dirty   bool
	)
	err := d.db.QueryRow("SELECT version, dirty FROM " + migrationsTable + " LIMIT 1").Scan(&version, &dirty)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return database.NilVersion, false, nil
	case err != nil:
		return 0, false, fmt.Errorf("reading schema version: %w", err)
	}
	return version, dirty, nil
}

// Drop removes every table. Only tests call it.
func (d *migrationDriver) Drop() error {
	rows, err := d.db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return err
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	if err := errors.Join(rows.Err(), rows.Close()); err != nil {
		return err
	}

	for _, name := range tables {
		if _, err := d.db.Exec(`DROP TABLE "` + name + `"`); err != nil {
			return &database.Error{OrigErr: err, Query: []byte("DROP TABLE " + name)}
		}
	}
	return nil
}

func (d *migrationDriver) inTx(query string, fn func(tx *sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return &database.Error{OrigErr: err, Err: "transaction start failed"}
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			err = errors.Join(err, rbErr)
		}
		return &database.Error{OrigErr: err, Query: []byte(query)}
	}
	if err := tx.Commit(); err != nil {
		return &database.Error{OrigErr: err, Err: "transaction commit failed"}
	}
	return nil
}
