package database

import (
	"context"
	"database/sql"
	"fmt"
)

// schema holds the DDL for every table. Statements use IF NOT EXISTS so
// Migrate is idempotent and can run at every server start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email         VARCHAR(255)    NOT NULL,
		password_hash VARCHAR(255)    NOT NULL,
		role          VARCHAR(32)     NOT NULL DEFAULT 'STAFF',
		is_active     BOOLEAN         NOT NULL DEFAULT TRUE,
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS restaurant_tables (
		id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		table_number INT UNSIGNED    NOT NULL,
		capacity     INT UNSIGNED    NOT NULL,
		status       VARCHAR(32)     NOT NULL DEFAULT 'AVAILABLE',
		location     VARCHAR(255)    NULL,
		description  TEXT            NULL,
		created_at   TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at   TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_tables_number (table_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS venues (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name           VARCHAR(255)    NOT NULL,
		capacity       INT UNSIGNED    NOT NULL,
		price_per_hour DECIMAL(10,2)   NOT NULL DEFAULT 0,
		created_at     TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_venues_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS menu_items (
		id                       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name                     VARCHAR(255)    NOT NULL,
		description              TEXT            NULL,
		price                    DECIMAL(10,2)   NOT NULL,
		category                 VARCHAR(64)     NOT NULL,
		is_available             BOOLEAN         NOT NULL DEFAULT TRUE,
		preparation_time_minutes INT UNSIGNED    NULL,
		created_at               TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at               TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_menu_items_category (category)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS restaurant_orders (
		id                   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		order_number         VARCHAR(16)     NOT NULL,
		table_id             BIGINT UNSIGNED NOT NULL,
		customer_name        VARCHAR(255)    NULL,
		status               VARCHAR(32)     NOT NULL DEFAULT 'PENDING',
		total_amount         DECIMAL(10,2)   NOT NULL DEFAULT 0,
		number_of_guests     INT UNSIGNED    NOT NULL DEFAULT 0,
		special_instructions TEXT            NULL,
		created_at           TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at           TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_orders_number (order_number),
		KEY idx_orders_table_status (table_id, status),
		CONSTRAINT fk_orders_table FOREIGN KEY (table_id) REFERENCES restaurant_tables (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS order_items (
		id               BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		order_id         BIGINT UNSIGNED NOT NULL,
		menu_item_id     BIGINT UNSIGNED NOT NULL,
		menu_item_name   VARCHAR(255)    NOT NULL,
		quantity         INT UNSIGNED    NOT NULL,
		unit_price       DECIMAL(10,2)   NOT NULL,
		subtotal         DECIMAL(10,2)   NOT NULL,
		special_requests TEXT            NULL,
		created_at       TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_order_items_order (order_id),
		CONSTRAINT fk_items_order FOREIGN KEY (order_id) REFERENCES restaurant_orders (id) ON DELETE CASCADE,
		CONSTRAINT fk_items_menu_item FOREIGN KEY (menu_item_id) REFERENCES menu_items (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		booking_number VARCHAR(16)     NOT NULL,
		venue_id       BIGINT UNSIGNED NOT NULL,
		customer_name  VARCHAR(255)    NOT NULL,
		event_date     DATE            NOT NULL,
		attendees      INT UNSIGNED    NOT NULL DEFAULT 0,
		status         VARCHAR(32)     NOT NULL DEFAULT 'CONFIRMED',
		created_at     TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at     TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_bookings_number (booking_number),
		KEY idx_bookings_venue_date (venue_id, event_date),
		CONSTRAINT fk_bookings_venue FOREIGN KEY (venue_id) REFERENCES venues (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS guests (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name       VARCHAR(255)    NOT NULL,
		email      VARCHAR(255)    NOT NULL,
		phone      VARCHAR(32)     NULL,
		address    TEXT            NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_guests_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS inventory_items (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name          VARCHAR(255)    NOT NULL,
		category      VARCHAR(64)     NOT NULL,
		quantity      BIGINT          NOT NULL DEFAULT 0,
		unit          VARCHAR(32)     NOT NULL,
		reorder_level BIGINT          NOT NULL DEFAULT 0,
		created_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_inventory_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS employees (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name       VARCHAR(255)    NOT NULL,
		role       VARCHAR(64)     NOT NULL,
		department VARCHAR(64)     NOT NULL,
		email      VARCHAR(255)    NOT NULL,
		hire_date  DATE            NOT NULL,
		created_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_employees_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS rooms (
		id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		room_number     VARCHAR(16)     NOT NULL,
		type            VARCHAR(32)     NOT NULL,
		price_per_night DECIMAL(10,2)   NOT NULL DEFAULT 0,
		status          VARCHAR(32)     NOT NULL DEFAULT 'AVAILABLE',
		created_at      TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at      TIMESTAMP       NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_rooms_number (room_number)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// Migrate creates any missing tables. It runs at server start so a fresh
// database needs no external migration step.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
