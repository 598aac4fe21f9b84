package dbstore

import (
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/hbnb/internal/paths"
	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// dialect holds what differs between the supported SQL engines.
type dialect struct {
	driver string
	dsn    string
	// upsertTail completes "INSERT INTO t (cols) VALUES (...)" so that an
	// existing row with the same id is updated in place.
	upsertTail func(cols []string) string
	// maxConns caps the pool; 0 leaves it unlimited.
	maxConns int
}

// newDialect resolves the driver and DSN for cfg. A relative SQLite file name
// is placed under dataDir.
func newDialect(cfg types.DBConfig, dataDir string) (dialect, error) {
	switch cfg.Driver {
	case types.DriverSQLite:
		path := paths.StoreFile(dataDir, cfg.SQLiteFile, paths.DefaultSQLiteFile)
		return dialect{
			driver:     "sqlite",
			dsn:        path,
			upsertTail: sqliteUpsertTail,
			maxConns:   1,
		}, nil
	case types.DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = cfg.Host
		mc.DBName = cfg.Name
		return dialect{
			driver:     "mysql",
			dsn:        mc.FormatDSN(),
			upsertTail: mysqlUpsertTail,
		}, nil
	default:
		return dialect{}, fmt.Errorf("%w: %q", types.ErrDriverUnknown, cfg.Driver)
	}
}

func sqliteUpsertTail(cols []string) string {
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if c == "id" || c == "created_at" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = excluded.%s", c, c))
	}
	return " ON CONFLICT(id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func mysqlUpsertTail(cols []string) string {
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if c == "id" || c == "created_at" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = VALUES(%s)", c, c))
	}
	return " ON DUPLICATE KEY UPDATE " + strings.Join(sets, ", ")
}

// upsertSQL builds the insert-or-update statement for a table.
func (d dialect) upsertSQL(def tableDef) string {
	placeholders := make([]string, len(def.columns))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)%s",
		def.name,
		strings.Join(def.columns, ", "),
		strings.Join(placeholders, ", "),
		d.upsertTail(def.columns))
}
