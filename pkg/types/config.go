package types

import "errors"

// Config selects and parameterizes the storage backend. Values come from the
// HBNB_* environment, with config.yaml as fallback.
type Config struct {
	Storage     string   `env:"HBNB_TYPE_STORAGE" envDefault:"file"`
	Env         string   `env:"HBNB_ENV"`
	ResetSchema bool     `env:"HBNB_RESET_SCHEMA"`
	DataDir     string   `env:"HBNB_DATA_DIR"`
	FileName    string   `env:"HBNB_FILE_NAME" envDefault:"file.json"`
	DB          DBConfig
}

// DBConfig holds the relational backend connection parameters.
type DBConfig struct {
	Driver     string `env:"HBNB_DB_DRIVER" envDefault:"mysql"`
	User       string `env:"HBNB_MYSQL_USER"`
	Password   string `env:"HBNB_MYSQL_PWD"`
	Host       string `env:"HBNB_MYSQL_HOST" envDefault:"localhost"`
	Name       string `env:"HBNB_MYSQL_DB"`
	SQLiteFile string `env:"HBNB_SQLITE_FILE" envDefault:"hbnb.db"`
}

// Storage backends.
const (
	StorageFile = "file"
	StorageDB   = "db"
)

// Relational drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// EnvTest is the environment name that permits destructive schema resets.
const EnvTest = "test"

// Config validation errors.
var (
	ErrStorageEmpty    = errors.New("storage type must not be empty")
	ErrStorageUnknown  = errors.New("unknown storage type")
	ErrDriverUnknown   = errors.New("unknown database driver")
	ErrDatabaseName    = errors.New("database name must not be empty")
	ErrResetNotAllowed = errors.New("schema reset is only allowed when HBNB_ENV=test")
)

var knownStorage = map[string]bool{
	StorageFile: true,
	StorageDB:   true,
}

var knownDrivers = map[string]bool{
	DriverSQLite: true,
	DriverMySQL:  true,
}

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Storage == "" {
		return ErrStorageEmpty
	}
	if !knownStorage[c.Storage] {
		return ErrStorageUnknown
	}
	if c.ResetSchema && c.Env != EnvTest {
		return ErrResetNotAllowed
	}
	if c.Storage != StorageDB {
		return nil
	}
	if !knownDrivers[c.DB.Driver] {
		return ErrDriverUnknown
	}
	if c.DB.Driver == DriverMySQL && c.DB.Name == "" {
		return ErrDatabaseName
	}
	return nil
}

// TestMode reports whether the process runs in the test environment.
func (c Config) TestMode() bool {
	return c.Env == EnvTest
}
