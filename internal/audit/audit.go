// Package audit logs one row per nupy program run to an external
// database, when the CLI is given an --audit-dsn flag. DSN parsing and
// per-driver sql.Open dispatch is grounded on
// internal/database/database.go's Connect, which built a DSN per
// dbType and opened it against the four drivers this package
// blank-imports alongside modernc.org/sqlite; everything in that file about scanning hosts for open
// database ports, default-credential lists, and SQL-injection test
// harnesses belongs to a product nupy doesn't have and was dropped.
package audit

import (
	"database/sql"
	"strings"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/pkg/errors"
)

// Log appends one run's outcome to the nupy_runs table at dsn. dsn is
// "<driver>://<rest>", where driver is one of mysql, postgres, sqlite3,
// sqlite, or sqlserver, and rest is passed to the driver mostly as-is
// (sqlite/sqlite3 take a bare file path instead of a URL body).
func Log(dsn, programPath, outcome string, startedAt time.Time) error {
	driver, body, err := splitDSN(dsn)
	if err != nil {
		return err
	}
	driverName, connStr := driverDSN(driver, body)
	if driverName == "" {
		return errors.Errorf("unsupported audit driver %q", driver)
	}

	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return errors.Wrapf(err, "open audit database %q", driver)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return errors.Wrap(err, "ping audit database")
	}

	if _, err := db.Exec(createTableSQL(driverName)); err != nil {
		return errors.Wrap(err, "create nupy_runs table")
	}

	_, err = db.Exec(insertRowSQL(driverName), programPath, outcome, startedAt, time.Now())
	return errors.Wrap(err, "insert audit row")
}

func splitDSN(dsn string) (driver, body string, err error) {
	parts := strings.SplitN(dsn, "://", 2)
	if len(parts) != 2 {
		return "", "", errors.Errorf("audit DSN %q must be of the form driver://rest", dsn)
	}
	return parts[0], parts[1], nil
}

// driverDSN maps an --audit-dsn scheme to a database/sql driver name and
// connection string, mirroring Connect's per-type switch.
func driverDSN(driver, body string) (driverName, connStr string) {
	switch strings.ToLower(driver) {
	case "mysql":
		return "mysql", body
	case "postgres", "postgresql":
		return "postgres", body
	case "sqlite3":
		return "sqlite3", body
	case "sqlite":
		return "sqlite", body
	case "sqlserver", "mssql":
		return "sqlserver", body
	default:
		return "", ""
	}
}

func createTableSQL(driverName string) string {
	if driverName == "sqlserver" {
		return `IF NOT EXISTS (SELECT * FROM sysobjects WHERE name='nupy_runs' AND xtype='U')
CREATE TABLE nupy_runs (id INT IDENTITY PRIMARY KEY, program_path NVARCHAR(4000), outcome NVARCHAR(4000), started_at DATETIME2, finished_at DATETIME2)`
	}
	return `CREATE TABLE IF NOT EXISTS nupy_runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	program_path TEXT,
	outcome TEXT,
	started_at TIMESTAMP,
	finished_at TIMESTAMP
)`
}

func insertRowSQL(driverName string) string {
	switch driverName {
	case "postgres":
		return "INSERT INTO nupy_runs (program_path, outcome, started_at, finished_at) VALUES ($1, $2, $3, $4)"
	case "sqlserver":
		return "INSERT INTO nupy_runs (program_path, outcome, started_at, finished_at) VALUES (@p1, @p2, @p3, @p4)"
	default:
		return "INSERT INTO nupy_runs (program_path, outcome, started_at, finished_at) VALUES (?, ?, ?, ?)"
	}
}
