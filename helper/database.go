package helper

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

// DatabaseConfiguration holds the connection settings of the run store
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// Environment variables read by NewDatabaseConfiguration
const (
	EnvDatabaseHost     = "NERCHECK_DB_HOST"
	EnvDatabasePort     = "NERCHECK_DB_PORT"
	EnvDatabaseName     = "NERCHECK_DB_DATABASE"
	EnvDatabaseUsername = "NERCHECK_DB_USERNAME"
	EnvDatabasePassword = "NERCHECK_DB_PASSWORD"
	EnvDatabaseSchema   = "NERCHECK_DB_SCHEMA"
	EnvDatabaseSSLMode  = "NERCHECK_DB_SSLMODE"
)

// NewDatabaseConfiguration reads the database configuration from the environment.
// A .env file in the working directory is loaded first if present.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, NewError("load .env", err)
	}

	config := &DatabaseConfiguration{
		Host:     os.Getenv(EnvDatabaseHost),
		Port:     os.Getenv(EnvDatabasePort),
		Database: os.Getenv(EnvDatabaseName),
		Username: os.Getenv(EnvDatabaseUsername),
		Password: os.Getenv(EnvDatabasePassword),
		Schema:   os.Getenv(EnvDatabaseSchema),
		SSLMode:  os.Getenv(EnvDatabaseSSLMode),
	}
	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	if config.Host == "" || config.Port == "" || config.Database == "" || config.Username == "" {
		return nil, NewError("database configuration", fmt.Errorf("%s, %s, %s and %s must be set", EnvDatabaseHost, EnvDatabasePort, EnvDatabaseName, EnvDatabaseUsername))
	}

	return config, nil
}

// ConnectionString returns the lib/pq connection string
func (c *DatabaseConfiguration) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s dbname=%s user=%s password=%s sslmode=%s search_path=%s",
		c.Host, c.Port, c.Database, c.Username, c.Password, c.SSLMode, c.Schema,
	)
}

// Database bundles an open connection with the logger of its handlers
type Database struct {
	Name     string
	Instance *sql.DB
	Logger   *slog.Logger
}

// NewDatabase opens and pings a PostgreSQL connection
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) (*Database, error) {
	if config == nil {
		return nil, NewError("database configuration validation", fmt.Errorf("database configuration is nil"))
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	instance, err := sql.Open("postgres", config.ConnectionString())
	if err != nil {
		return nil, NewError("open database", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := instance.PingContext(ctx); err != nil {
		_ = instance.Close()
		return nil, NewError("ping database", err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("host", config.Host), slog.String("database", config.Database))

	return &Database{
		Name:     name,
		Instance: instance,
		Logger:   logger,
	}, nil
}

// NewTestDatabase opens a database for tests and aborts the test binary on failure
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	db, err := NewDatabase("test", config, nil)
	if err != nil {
		log.Fatalf("error creating test database: %v", err)
	}
	return db
}

// Close closes the connection
func (d *Database) Close() error {
	if d == nil || d.Instance == nil {
		return nil
	}
	return d.Instance.Close()
}

// SetTestDatabaseConfigEnvs points the configuration environment at a test container
func SetTestDatabaseConfigEnvs(t *testing.T, dbPort string) {
	t.Setenv(EnvDatabaseHost, "localhost")
	t.Setenv(EnvDatabasePort, dbPort)
	t.Setenv(EnvDatabaseName, "database")
	t.Setenv(EnvDatabaseUsername, "user")
	t.Setenv(EnvDatabasePassword, "password")
	t.Setenv(EnvDatabaseSchema, "public")
	t.Setenv(EnvDatabaseSSLMode, "disable")
}
