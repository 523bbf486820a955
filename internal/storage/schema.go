package storage

import "database/sql"

// EnsureSchema creates the tables the application needs. Statements are
// idempotent so startup is safe against an already-provisioned database.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id SERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT 'customer',
			avatar_pic TEXT,
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS categories (
			category_id SERIAL PRIMARY KEY,
			category_name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id SERIAL PRIMARY KEY,
			product_name TEXT NOT NULL,
			product_desc TEXT NOT NULL DEFAULT '',
			product_price NUMERIC(12,2) NOT NULL DEFAULT 0,
			stock INT NOT NULL DEFAULT 0 CHECK (stock >= 0),
			category_id INT REFERENCES categories(category_id),
			supplier TEXT NOT NULL DEFAULT '',
			country_of_origin TEXT NOT NULL DEFAULT '',
			expiration_date TEXT,
			is_deleted BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE IF NOT EXISTS product_images (
			image_id SERIAL PRIMARY KEY,
			product_id INT NOT NULL REFERENCES products(product_id) ON DELETE CASCADE,
			image_name TEXT NOT NULL DEFAULT '',
			image_data BYTEA
		)`,
		`CREATE TABLE IF NOT EXISTS carts (
			cart_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(user_id),
			product_id INT NOT NULL REFERENCES products(product_id),
			quantity INT NOT NULL CHECK (quantity > 0),
			UNIQUE (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			favorite_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(user_id),
			product_id INT NOT NULL REFERENCES products(product_id),
			added_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS pickup_points (
			pickup_point_id SERIAL PRIMARY KEY,
			address TEXT NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id SERIAL PRIMARY KEY,
			user_id INT NOT NULL REFERENCES users(user_id),
			order_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			payment_status TEXT NOT NULL DEFAULT 'pending',
			total NUMERIC(12,2) NOT NULL DEFAULT 0,
			is_pickup BOOLEAN NOT NULL DEFAULT TRUE,
			pickup_point_id INT REFERENCES pickup_points(pickup_point_id),
			pickup_date TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_item_id SERIAL PRIMARY KEY,
			order_id INT NOT NULL REFERENCES orders(order_id) ON DELETE CASCADE,
			product_id INT NOT NULL REFERENCES products(product_id),
			quantity INT NOT NULL CHECK (quantity > 0),
			price NUMERIC(12,2) NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
