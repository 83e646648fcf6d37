package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"seotda-server/internal/config"

	_ "github.com/lib/pq"     // postgres driver
	_ "modernc.org/sqlite" // sqlite driver
)

// supported drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnknownDriver is returned when the driver is not postgres or sqlite
var ErrUnknownDriver = errors.New("unknown database driver")

//go:embed migrations
var migrations embed.FS

var (
	instance *sql.DB
	driver   string
)

// Instance returns a database instance
func Instance() *sql.DB {
	if instance == nil {
		LoadInstance()
	}

	return instance
}

// Driver returns the driver of the loaded instance
func Driver() string {
	return driver
}

// LoadInstance will load the database instance from the configuration
func LoadInstance() {
	cfg := config.Instance().Database
	if err := Load(cfg.Driver, cfg.DSN); err != nil {
		panic(err)
	}
}

// Load opens and pings the database and makes it the instance
func Load(driverName, dsn string) error {
	dbh, err := Open(driverName, dsn)
	if err != nil {
		return err
	}

	instance = dbh
	driver = driverName
	return nil
}

// Open opens a connection pool for the driver
// SQLite is limited to a single connection so in-memory databases are shared
func Open(driverName, dsn string) (*sql.DB, error) {
	switch driverName {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driverName)
	}

	dbh, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	if driverName == DriverSQLite {
		dbh.SetMaxOpenConns(1)
	}

	if err := dbh.Ping(); err != nil {
		_ = dbh.Close()
		return nil, err
	}

	return dbh, nil
}

// Rebind converts ? placeholders to the syntax of the loaded driver
func Rebind(query string) string {
	if driver != DriverPostgres {
		return query
	}

	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// Migrate runs the embedded migrations for the loaded driver
func Migrate() error {
	dbh := Instance()

	var (
		dbDriver database.Driver
		err      error
	)

	switch driver {
	case DriverPostgres:
		dbDriver, err = postgres.WithInstance(dbh, &postgres.Config{})
	case DriverSQLite:
		dbDriver, err = sqlite.WithInstance(dbh, &sqlite.Config{})
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDriver, driver)
	}

	if err != nil {
		return err
	}

	sub, err := fs.Sub(migrations, "migrations/"+driver)
	if err != nil {
		return err
	}

	src, err := iofs.New(sub, ".")
	if err != nil {
		return err
	}

	logrus.WithField("driver", driver).Info("running migrations")
	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Querier is satisfied by both *sql.DB and *sql.Tx
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Scanner is an interface that sql should've provided
// No snark here...
type Scanner interface {
	Scan(...interface{}) error
}
