package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// DatabaseConfig selects the store. DSN, when set, is passed to the driver
// untouched; otherwise a MySQL DSN is built from the remaining fields.
type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	Server   string `yaml:"server"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	MaxOpenConns int `yaml:"maxOpenConns"`
	MaxIdleConns int `yaml:"maxIdleConns"`
}

func NewDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Driver:       DriverSQLite,
		Server:       "127.0.0.1:3306",
		Database:     "users",
		User:         "users",
		MaxOpenConns: 25,
		MaxIdleConns: 5,
	}
}

func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverMySQL, DriverSQLite:
		return nil
	default:
		return errors.Errorf("unsupported database driver %q", c.Driver)
	}
}

func (c *DatabaseConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	if c.Driver == DriverSQLite {
		return SQLiteDSN("users.db")
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", c.User, c.Password, c.Server, c.Database)
}

// SQLiteDSN opens transactions with BEGIN IMMEDIATE. Deferred transactions
// that read before writing deadlock on the lock upgrade, which busy_timeout
// cannot wait out.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=busy_timeout(5000)&_txlock=immediate"
}

func ConnectDatabase(ctx context.Context, cfg *DatabaseConfig) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, cfg.GetDSN())
	if err != nil {
		return nil, errors.Wrap(err, "error opening database")
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "error connecting to the database")
	}

	return db, nil
}
