package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// NewDB creates a new MySQL database connection pool with the given DSN.
func NewDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

// Migrate creates the application tables if they do not exist. Safe to run
// on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) NOT NULL,
			phone VARCHAR(64) NOT NULL DEFAULT '',
			password_hash VARCHAR(255) NOT NULL DEFAULT '',
			login_method VARCHAR(16) NOT NULL DEFAULT 'email',
			google_id VARCHAR(255) NULL,
			role VARCHAR(16) NOT NULL DEFAULT 'user',
			is_active TINYINT(1) NOT NULL DEFAULT 1,
			last_login DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_users_email (email),
			UNIQUE KEY uq_users_google_id (google_id)
		)`,
		`CREATE TABLE IF NOT EXISTS hotels (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			city VARCHAR(255) NOT NULL,
			address VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(64) NOT NULL DEFAULT '',
			description TEXT,
			cuisine VARCHAR(128) NOT NULL DEFAULT '',
			price_range VARCHAR(8) NOT NULL DEFAULT '$$',
			open_time VARCHAR(8) NOT NULL DEFAULT '',
			close_time VARCHAR(8) NOT NULL DEFAULT '',
			capacity INT NOT NULL DEFAULT 50,
			image VARCHAR(512) NOT NULL DEFAULT '',
			rating DOUBLE NOT NULL DEFAULT 4.5,
			location_type VARCHAR(16) NOT NULL DEFAULT 'open',
			district VARCHAR(128) NOT NULL DEFAULT '',
			best_food VARCHAR(128) NOT NULL DEFAULT '',
			meal_type VARCHAR(16) NOT NULL DEFAULT 'any',
			lat DOUBLE NULL,
			lng DOUBLE NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			user_id BIGINT NOT NULL,
			hotel_id BIGINT NULL,
			restaurant_name VARCHAR(255) NOT NULL,
			restaurant_id BIGINT NULL,
			address VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(64) NOT NULL DEFAULT '',
			date DATE NOT NULL,
			time VARCHAR(8) NOT NULL,
			party_size INT NOT NULL,
			status VARCHAR(16) NOT NULL DEFAULT 'confirmed',
			confirmation_code CHAR(36) NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			KEY idx_reservations_user (user_id),
			KEY idx_reservations_hotel (hotel_id),
			CONSTRAINT fk_reservations_user FOREIGN KEY (user_id) REFERENCES users (id) ON DELETE CASCADE
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("run migration: %w", err)
		}
	}

	return nil
}
