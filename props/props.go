// Package props is a durable string property store backed by MySQL. The
// mailers keep their last-sent markers here so a report is only dispatched
// once per distinct timestamp.
package props

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"auditmail/config"

	"github.com/apex/log"
	_ "github.com/go-sql-driver/mysql"
)

// Store reads and writes named string properties.
type Store struct {
	db *sql.DB
}

// New connects to the database and ensures the properties table exists.
func New(cfg *config.Config) (*Store, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Test connection with exponential backoff retry
	waitInterval := time.Second
	deadline := time.Now().Add(time.Minute)
	for {
		if err := db.Ping(); err == nil {
			break
		} else if time.Now().After(deadline) {
			return nil, fmt.Errorf("database ping timeout: %w", err)
		} else {
			log.WithError(err).Warnf("Database connection failed, retrying in %v", waitInterval)
		}
		time.Sleep(waitInterval)
		waitInterval *= 2
	}

	if err := verifyAndCreateTables(db); err != nil {
		return nil, fmt.Errorf("failed to verify/create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection. Used by tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value of a property. The second return value is false
// when the property has never been set.
func (s *Store) Get(ctx context.Context, name string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM properties WHERE name = ?", name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read property %s: %w", name, err)
	}
	return value, true, nil
}

// Set creates or overwrites a property.
func (s *Store) Set(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO properties (name, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = ?",
		name, value, value)
	if err != nil {
		return fmt.Errorf("failed to write property %s: %w", name, err)
	}
	return nil
}

// verifyAndCreateTables ensures the properties table exists
func verifyAndCreateTables(db *sql.DB) error {
	ctx := context.Background()

	var tableExists int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		AND table_name = 'properties'
	`).Scan(&tableExists)

	if err != nil {
		return fmt.Errorf("failed to check if properties table exists: %w", err)
	}

	if tableExists == 0 {
		log.Info("Creating properties table...")

		createTableSQL := `
			CREATE TABLE properties (
				name VARCHAR(128) PRIMARY KEY,
				value TEXT NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
			) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
		`

		if _, err := db.ExecContext(ctx, createTableSQL); err != nil {
			return fmt.Errorf("failed to create properties table: %w", err)
		}

		log.Info("properties table created successfully")
	} else {
		log.Info("properties table already exists")
	}

	return nil
}
