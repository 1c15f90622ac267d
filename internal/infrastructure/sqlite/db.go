// Package sqlite stores editor state in a local SQLite database.
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/modal/internal/log"
	"github.com/zjrosen/modal/internal/positions"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB owns the connection to the state database.
type DB struct {
	conn *sql.DB
}

// NewDB opens (creating if needed) the database at path and applies pending
// migrations. An existing database is backed up to path+".bak" before any
// migration runs.
func NewDB(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)&_pragma=foreign_keys(1)"
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening state database: %w", err)
	}
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening state database: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(path, existed); err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Debug(log.CatStore, "state database ready", "path", path)
	return db, nil
}

func (db *DB) migrate(path string, existed bool) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}
	latest, err := latestVersion(src)
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	drv, err := newMigrationDriver(db.conn)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	current, dirty, err := drv.Version()
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("state database %s is dirty at version %d", path, current)
	}

	if existed && current < int(latest) {
		if err := db.backup(path + ".bak"); err != nil {
			return err
		}
	}

	m, err := migrate.NewWithInstance("iofs", src, "sqlite3", drv)
	if err != nil {
		return fmt.Errorf("preparing migrations: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("running migrations: %w", err)
	}
	if current < int(latest) {
		log.Info(log.CatStore, "migrated state database", "from", current, "to", latest)
	}
	return nil
}

// backup writes a consistent copy of the database to dest.
func (db *DB) backup(dest string) error {
	if err := os.Remove(dest); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing old backup: %w", err)
	}
	if _, err := db.conn.Exec("VACUUM INTO ?", dest); err != nil {
		return fmt.Errorf("backing up state database: %w", err)
	}
	log.Debug(log.CatStore, "backed up state database", "dest", dest)
	return nil
}

// latestVersion walks the migration source to its last version.
func latestVersion(src source.Driver) (uint, error) {
	v, err := src.First()
	if err != nil {
		return 0, err
	}
	for {
		next, err := src.Next(v)
		if errors.Is(err, fs.ErrNotExist) {
			return v, nil
		}
		if err != nil {
			return 0, err
		}
		v = next
	}
}

// Close closes the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Connection returns the underlying *sql.DB.
func (db *DB) Connection() *sql.DB {
	return db.conn
}

// PositionRepository returns the repository for remembered cursor positions.
func (db *DB) PositionRepository() positions.Repository {
	return newPositionRepository(db.conn)
}
