package config

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrMissingDSN = errors.New("database connection string is not set")

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Web      ServerConfig   `yaml:"web"`
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Ledger   LedgerConfig   `yaml:"ledger"`
	Remote   RemoteConfig   `yaml:"remote"`
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	Console    bool   `yaml:"console"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig points the remote record API at its database.
// Driver is one of mysql, postgres or sqlite.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LedgerConfig struct {
	Path string `yaml:"path"`
}

// RemoteConfig is where `hydration remote` finds the record API.
type RemoteConfig struct {
	URL string `yaml:"url"`
}

func Default() *Config {
	return &Config{
		Server:   ServerConfig{Port: 5000},
		Web:      ServerConfig{Port: 8080},
		Log:      LogConfig{Level: "info", Console: true, MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 30},
		Database: DatabaseConfig{Driver: "mysql"},
		Ledger:   LedgerConfig{Path: "data/ledger.db"},
		Remote:   RemoteConfig{URL: "http://localhost:5000"},
	}
}

func Load(configFile string) *Config {
	c := Default()

	paths := []string{"etc/config.yaml", "/etc/hydration/config.yaml"}
	if configFile != "" {
		paths = []string{configFile}
	}
	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			yaml.Unmarshal(data, c)
			break
		}
	}

	// .env.local wins over .env; neither overrides the real environment.
	godotenv.Load(".env.local")
	godotenv.Load()

	envOverride(&c.Database.Driver, "DB_DRIVER")
	envOverride(&c.Database.DSN, "MONGODB_URI")
	envOverride(&c.Database.DSN, "DATABASE_URL")
	envOverride(&c.Ledger.Path, "LEDGER_PATH")
	envOverride(&c.Remote.URL, "REMOTE_URL")
	envOverride(&c.Log.Level, "LOG_LEVEL")
	envOverride(&c.Log.File, "LOG_FILE")
	envOverrideInt(&c.Server.Port, "PORT")
	envOverrideInt(&c.Web.Port, "WEB_PORT")

	return c
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func (c *Config) WebAddr() string {
	return fmt.Sprintf(":%d", c.Web.Port)
}

// OpenGormDB opens the remote record database without waiting for it to be
// reachable. A failed ping is returned alongside a usable *gorm.DB so callers
// can log it and keep serving.
func (c *Config) OpenGormDB() (*gorm.DB, error) {
	if c.Database.DSN == "" {
		return nil, ErrMissingDSN
	}

	dialector, sqlDB, err := c.dialector()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", c.Database.Driver, err)
	}

	if sqlDB == nil {
		if sqlDB, err = db.DB(); err != nil {
			return db, fmt.Errorf("get sql db: %w", err)
		}
	}
	if err := sqlDB.Ping(); err != nil {
		return db, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}

func (c *Config) dialector() (gorm.Dialector, *sql.DB, error) {
	switch strings.ToLower(c.Database.Driver) {
	case "mysql", "":
		cfg, err := gomysql.ParseDSN(strings.TrimPrefix(c.Database.DSN, "mysql://"))
		if err != nil {
			return nil, nil, fmt.Errorf("parse dsn: %w", err)
		}
		cfg.ParseTime = true
		connector, err := gomysql.NewConnector(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("create connector: %w", err)
		}
		sqlDB := sql.OpenDB(connector)
		// Skip the SELECT VERSION() probe so an unreachable server surfaces
		// at Ping instead of failing gorm.Open.
		return mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), sqlDB, nil
	case "postgres", "postgresql":
		return postgres.Open(c.Database.DSN), nil, nil
	case "sqlite", "sqlite3":
		return sqlite.Open(c.Database.DSN), nil, nil
	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
}

func envOverride(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envOverrideInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
